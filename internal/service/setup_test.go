package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/timeplan/internal/contract"
	"github.com/alexanderramin/timeplan/internal/db"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/alexanderramin/timeplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testEnv wires every service against one in-memory database. The clock is
// fixed at noon on Wednesday 2025-01-01.
type testEnv struct {
	db       *sql.DB
	repos    txRepos
	uow      db.UnitOfWork
	clock    Clock
	projects ProjectService
	phases   PhaseService
	events   EventService
	calendar CalendarService
	timeline TimelineService
	imports  ImportService
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithPolicy(t, domain.DefaultPolicy())
}

func newTestEnvWithPolicy(t *testing.T, policy domain.Policy) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	env := &testEnv{
		db:    database,
		repos: reposFor(database),
		uow:   testutil.NewTestUoW(database),
		clock: fixedClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)),
	}
	r := env.repos
	env.projects = NewProjectService(r.projects, r.phases, r.recurring, env.uow, policy, env.clock)
	env.phases = NewPhaseService(r.phases, env.uow, policy, env.clock)
	env.events = NewEventService(r.events, env.uow)
	env.calendar = NewCalendarService(r.workHours, r.holidays, env.uow)
	env.timeline = NewTimelineService(r.projects, r.phases, r.recurring, r.events, env.calendar, nil, policy, env.clock)
	env.imports = NewImportService(env.uow, policy, env.clock)
	return env
}

func (env *testEnv) createProject(t *testing.T, name string, opts ...testutil.ProjectOption) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(name, opts...)
	require.NoError(t, env.projects.Create(context.Background(), p))
	return p
}

func (env *testEnv) createPhase(t *testing.T, projectID, name string, opts ...testutil.PhaseOption) *domain.Phase {
	t.Helper()
	ph := testutil.NewTestPhase(projectID, name, opts...)
	_, err := env.phases.Create(context.Background(), ph)
	require.NoError(t, err)
	return ph
}

func (env *testEnv) reload(t *testing.T, id string) *domain.Project {
	t.Helper()
	p, err := env.projects.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func noticeKinds(notices []contract.Notice) []contract.NoticeKind {
	out := make([]contract.NoticeKind, 0, len(notices))
	for _, n := range notices {
		out = append(out, n.Kind)
	}
	return out
}
