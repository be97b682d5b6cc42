package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/timeplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLPhaseRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	projects := NewSQLProjectRepo(database)
	phases := NewSQLPhaseRepo(database)

	p := testutil.NewTestProject("P")
	require.NoError(t, projects.Create(ctx, p))

	late := testutil.NewTestPhase(p.ID, "Build",
		testutil.WithPhaseDates(testutil.Day(2025, 1, 16), testutil.Day(2025, 1, 31)), testutil.WithPhaseHours(60))
	early := testutil.NewTestPhase(p.ID, "Design",
		testutil.WithPhaseDates(testutil.Day(2025, 1, 1), testutil.Day(2025, 1, 15)), testutil.WithPhaseHours(40))
	require.NoError(t, phases.Create(ctx, late))
	require.NoError(t, phases.Create(ctx, early))

	list, err := phases.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Design", list[0].Name)
	assert.Equal(t, 60.0, list[1].Hours)

	early.Hours = 35
	early.EndDate = testutil.Day(2025, 1, 14)
	require.NoError(t, phases.Update(ctx, early))
	got, err := phases.GetByID(ctx, early.ID)
	require.NoError(t, err)
	assert.Equal(t, 35.0, got.Hours)
	assert.True(t, got.EndDate.Equal(testutil.Day(2025, 1, 14)))

	require.NoError(t, phases.Delete(ctx, early.ID))
	_, err = phases.GetByID(ctx, early.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLPhaseRepo_CascadeOnProjectDelete(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	projects := NewSQLProjectRepo(database)
	phases := NewSQLPhaseRepo(database)

	p := testutil.NewTestProject("P")
	require.NoError(t, projects.Create(ctx, p))
	require.NoError(t, phases.Create(ctx, testutil.NewTestPhase(p.ID, "only")))

	require.NoError(t, projects.Delete(ctx, p.ID))
	list, err := phases.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
