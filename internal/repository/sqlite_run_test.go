package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	plan := createTestPlan(t, NewSQLitePlanRepo(db))
	repo := NewSQLiteRunRepo(db)
	ctx := context.Background()

	run := testutil.NewTestRun(plan.ID)
	require.NoError(t, repo.Create(ctx, run))

	fetched, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, fetched.ID)
	assert.Equal(t, domain.RunRunning, fetched.Status)
	assert.Nil(t, fetched.FinishedAt)
}

func TestRunRepo_Update_DiagnosticsRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	plan := createTestPlan(t, NewSQLitePlanRepo(db))
	repo := NewSQLiteRunRepo(db)
	ctx := context.Background()

	run := testutil.NewTestRun(plan.ID)
	require.NoError(t, repo.Create(ctx, run))

	finished := time.Now().UTC().Truncate(time.Second)
	run.Status = domain.RunSucceeded
	run.FinishedAt = &finished
	run.Diagnostics = domain.RunDiagnostics{
		CoveragePct:   96.5,
		SessionCount:  42,
		CountsByTier:  map[string]int{"high": 20, "low": 22},
		CountsByKind:  map[string]int{"study": 10, "review": 30, "simulation": 2},
		StudyDayCount: 60,
		FirstSession:  "2025-01-06",
		LastSession:   "2025-03-28",
		Warnings:      []string{"block ratio 2.1 exceeds tolerance 1.8"},
	}
	require.NoError(t, repo.Update(ctx, run))

	fetched, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunSucceeded, fetched.Status)
	require.NotNil(t, fetched.FinishedAt)
	assert.InDelta(t, 96.5, fetched.Diagnostics.CoveragePct, 0.001)
	assert.Equal(t, 42, fetched.Diagnostics.SessionCount)
	assert.Equal(t, 30, fetched.Diagnostics.CountsByKind["review"])
	require.Len(t, fetched.Diagnostics.Warnings, 1)
}

func TestRunRepo_GetLatestByPlan(t *testing.T) {
	db := testutil.NewTestDB(t)
	plan := createTestPlan(t, NewSQLitePlanRepo(db))
	repo := NewSQLiteRunRepo(db)
	ctx := context.Background()

	older := testutil.NewTestRun(plan.ID)
	older.StartedAt = time.Now().UTC().Add(-time.Hour)
	older.Status = domain.RunFailed
	newer := testutil.NewTestRun(plan.ID)
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	latest, err := repo.GetLatestByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)
}

func TestRunRepo_GetLatestByPlan_NoRuns(t *testing.T) {
	db := testutil.NewTestDB(t)
	plan := createTestPlan(t, NewSQLitePlanRepo(db))
	repo := NewSQLiteRunRepo(db)
	ctx := context.Background()

	_, err := repo.GetLatestByPlan(ctx, plan.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunRepo_ListByPlan_NewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	plan := createTestPlan(t, NewSQLitePlanRepo(db))
	repo := NewSQLiteRunRepo(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		run := testutil.NewTestRun(plan.ID)
		run.StartedAt = time.Now().UTC().Add(time.Duration(-i) * time.Hour)
		require.NoError(t, repo.Create(ctx, run))
	}

	runs, err := repo.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	for i := 1; i < len(runs); i++ {
		assert.False(t, runs[i].StartedAt.After(runs[i-1].StartedAt))
	}
}
