package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/alexanderramin/timeplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLRecurringRepo_UpsertReplaces(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	projects := NewSQLProjectRepo(database)
	repo := NewSQLRecurringRepo(database)

	p := testutil.NewTestProject("Standup", testutil.WithContinuous(testutil.Day(2025, 1, 1)))
	require.NoError(t, projects.Create(ctx, p))

	rec := testutil.NewTestRecurring(p.ID, domain.RecurWeekly, 2)
	rec.Weekdays = []time.Weekday{time.Monday, time.Thursday}
	require.NoError(t, repo.Upsert(ctx, rec))

	got, err := repo.GetByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RecurWeekly, got.Pattern)
	assert.Equal(t, []time.Weekday{time.Monday, time.Thursday}, got.Weekdays)
	assert.Equal(t, 2.0, got.HoursPerOccurrence)

	second := testutil.NewTestRecurring(p.ID, domain.RecurMonthly, 6)
	second.DayOfMonth = 15
	require.NoError(t, repo.Upsert(ctx, second))

	got, err = repo.GetByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RecurMonthly, got.Pattern)
	assert.Equal(t, 15, got.DayOfMonth)
	assert.Empty(t, got.Weekdays)
	assert.Equal(t, rec.ID, got.ID, "upsert keeps the original row")

	require.NoError(t, repo.DeleteByProject(ctx, p.ID))
	_, err = repo.GetByProject(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.DeleteByProject(ctx, p.ID), ErrNotFound)
}
