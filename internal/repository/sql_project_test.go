package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/alexanderramin/timeplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLProjectRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLProjectRepo(testutil.NewTestDB(t))

	p := testutil.NewTestProject("Website", testutil.WithClient("acme"), testutil.WithEstimatedHours(80))
	p.Color = "#ff8800"
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Website", got.Name)
	assert.Equal(t, "acme", got.ClientID)
	assert.Equal(t, 80.0, got.EstimatedHours)
	assert.Equal(t, "#ff8800", got.Color)
	assert.True(t, got.StartDate.Equal(p.StartDate))
	require.NotNil(t, got.EndDate)
	assert.True(t, got.EndDate.Equal(*p.EndDate))
	assert.Equal(t, domain.AllocationNone, got.AllocationKind())
}

func TestSQLProjectRepo_Continuous(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLProjectRepo(testutil.NewTestDB(t))

	p := testutil.NewTestProject("Retainer", testutil.WithContinuous(testutil.Day(2025, 1, 1)))
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Continuous)
	assert.Nil(t, got.EndDate)
}

func TestSQLProjectRepo_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLProjectRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, testutil.NewTestProject("ghost")), ErrNotFound)
}

func TestSQLProjectRepo_UpdateListDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLProjectRepo(testutil.NewTestDB(t))

	a := testutil.NewTestProject("A")
	b := testutil.NewTestProject("B", testutil.WithDates(testutil.Day(2024, 12, 1), testutil.Day(2025, 2, 1)))
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	a.Name = "A renamed"
	a.EstimatedHours = 12
	require.NoError(t, repo.Update(ctx, a))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Name, "ordered by start date")
	assert.Equal(t, "A renamed", list[1].Name)
	assert.Equal(t, 12.0, list[1].EstimatedHours)

	require.NoError(t, repo.Delete(ctx, a.ID))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSQLProjectRepo_PrePhaseEndDate(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLProjectRepo(testutil.NewTestDB(t))
	p := testutil.NewTestProject("P")
	require.NoError(t, repo.Create(ctx, p))

	d, err := repo.GetPrePhaseEndDate(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, d)

	want := testutil.Day(2025, 3, 1)
	require.NoError(t, repo.SetPrePhaseEndDate(ctx, p.ID, &want))
	d, err = repo.GetPrePhaseEndDate(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.True(t, d.Equal(want))

	require.NoError(t, repo.SetPrePhaseEndDate(ctx, p.ID, nil))
	d, err = repo.GetPrePhaseEndDate(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = repo.GetPrePhaseEndDate(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
