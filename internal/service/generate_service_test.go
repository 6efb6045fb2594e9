package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/examplan/internal/app"
	"github.com/alexanderramin/examplan/internal/contract"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/generation"
	"github.com/alexanderramin/examplan/internal/repository"
	"github.com/alexanderramin/examplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerateFixture(t *testing.T) (
	repository.PlanRepo,
	repository.TopicRepo,
	repository.SessionRepo,
	repository.RunRepo,
	GenerateService,
) {
	plans, topics, sessions, runs, uow := setupRepos(t)
	svc := NewGenerateService(plans, topics, sessions, runs, uow, generation.DefaultConfig())
	return plans, topics, sessions, runs, svc
}

func seedGeneratablePlan(t *testing.T, plans repository.PlanRepo, topics repository.TopicRepo) *domain.StudyPlan {
	t.Helper()
	ctx := context.Background()

	plan := testutil.NewTestPlan("Generatable")
	require.NoError(t, plans.Create(ctx, plan))
	require.NoError(t, topics.Create(ctx, testutil.NewTestTopic(plan.ID, "Statistics")))
	require.NoError(t, topics.Create(ctx, testutil.NewTestTopic(plan.ID, "Geometry")))
	return plan
}

func TestGenerateService_StartAndWait_PersistsCalendar(t *testing.T) {
	plans, topics, sessions, runs, svc := newGenerateFixture(t)
	ctx := context.Background()

	plan := seedGeneratablePlan(t, plans, topics)

	resp, err := svc.Start(ctx, contract.GenerateRequest{PlanID: plan.ShortID})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, plan.ID, resp.PlanID)
	assert.Empty(t, resp.Superseded)

	require.NoError(t, svc.Wait(ctx, resp.RunID))

	run, err := runs.GetByID(ctx, resp.RunID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunSucceeded, run.Status)
	require.NotNil(t, run.FinishedAt)
	assert.Greater(t, run.Diagnostics.SessionCount, 0)
	assert.GreaterOrEqual(t, run.Diagnostics.CoveragePct, 90.0)

	persisted, err := sessions.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Len(t, persisted, run.Diagnostics.SessionCount)

	perDay := make(map[string]int)
	for _, s := range persisted {
		assert.Equal(t, domain.SessionPending, s.Status)
		perDay[s.Date.Format("2006-01-02")] += s.Minutes
	}
	for d, minutes := range perDay {
		assert.LessOrEqual(t, minutes, 120, "day %s over budget", d)
	}
}

func TestGenerateService_Regenerate_ReplacesPreviousCalendar(t *testing.T) {
	plans, topics, sessions, _, svc := newGenerateFixture(t)
	ctx := context.Background()

	plan := seedGeneratablePlan(t, plans, topics)

	first, err := svc.Start(ctx, contract.GenerateRequest{PlanID: plan.ID})
	require.NoError(t, err)
	require.NoError(t, svc.Wait(ctx, first.RunID))

	before, err := sessions.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)

	second, err := svc.Start(ctx, contract.GenerateRequest{PlanID: plan.ID})
	require.NoError(t, err)
	require.NoError(t, svc.Wait(ctx, second.RunID))

	after, err := sessions.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Len(t, after, len(before), "regeneration must not accumulate sessions")
}

func TestGenerateService_RecordsNoAvailableDaysFailure(t *testing.T) {
	plans, topics, _, runs, svc := newGenerateFixture(t)
	ctx := context.Background()

	// The default 7-day buffer swallows this whole window.
	plan := testutil.NewTestPlan("Too Short", testutil.WithPlanDates(
		time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	))
	require.NoError(t, plans.Create(ctx, plan))
	require.NoError(t, topics.Create(ctx, testutil.NewTestTopic(plan.ID, "Statistics")))

	resp, err := svc.Start(ctx, contract.GenerateRequest{PlanID: plan.ID})
	require.NoError(t, err, "submission succeeds; the failure lands on the run")
	require.NoError(t, svc.Wait(ctx, resp.RunID))

	run, err := runs.GetByID(ctx, resp.RunID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunFailed, run.Status)
	assert.Equal(t, string(app.ErrNoAvailableDays), run.FailureCode)
	assert.NotEmpty(t, run.FailureMsg)
	require.NotNil(t, run.FinishedAt)
}

func TestGenerateService_RecordsNoTopicsFailure(t *testing.T) {
	plans, _, _, runs, svc := newGenerateFixture(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Empty Catalog")
	require.NoError(t, plans.Create(ctx, plan))

	resp, err := svc.Start(ctx, contract.GenerateRequest{PlanID: plan.ID})
	require.NoError(t, err)
	require.NoError(t, svc.Wait(ctx, resp.RunID))

	run, err := runs.GetByID(ctx, resp.RunID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunFailed, run.Status)
	assert.Equal(t, string(app.ErrNoTopics), run.FailureCode)
}

func TestGenerateService_PlanNotFound(t *testing.T) {
	_, _, _, _, svc := newGenerateFixture(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, contract.GenerateRequest{PlanID: "GHOST99"})
	require.Error(t, err)

	var genErr *app.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, app.ErrPlanNotFound, genErr.Code)
}

func TestGenerateService_PlanRulesShiftEmphasis(t *testing.T) {
	plans, topics, sessions, _, svc := newGenerateFixture(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Ruled")
	plan.Rules = []domain.WeightRule{
		{Name: "geometry-trim", Match: "geometry", ReviewMult: 0.1, TestMult: 0.1},
	}
	require.NoError(t, plans.Create(ctx, plan))
	stat := testutil.NewTestTopic(plan.ID, "Statistics")
	geo := testutil.NewTestTopic(plan.ID, "Geometry")
	require.NoError(t, topics.Create(ctx, stat))
	require.NoError(t, topics.Create(ctx, geo))

	resp, err := svc.Start(ctx, contract.GenerateRequest{PlanID: plan.ID})
	require.NoError(t, err)
	require.NoError(t, svc.Wait(ctx, resp.RunID))

	counts := make(map[string]int)
	persisted, err := sessions.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	for _, s := range persisted {
		counts[s.TopicID]++
	}
	require.Greater(t, counts[geo.ID], 0, "trimmed topics are reduced, never dropped")
	assert.Greater(t, counts[stat.ID], counts[geo.ID],
		"the plan's trim rule should reduce the matched topic's share")
}

func TestGenerateService_CancelWithoutInflightRunIsNoOp(t *testing.T) {
	_, _, _, _, svc := newGenerateFixture(t)
	assert.NoError(t, svc.Cancel(context.Background(), "no-such-plan"))
}

func TestGenerateService_WaitOnFinishedRun(t *testing.T) {
	plans, topics, _, _, svc := newGenerateFixture(t)
	ctx := context.Background()

	plan := seedGeneratablePlan(t, plans, topics)
	resp, err := svc.Start(ctx, contract.GenerateRequest{PlanID: plan.ID})
	require.NoError(t, err)
	require.NoError(t, svc.Wait(ctx, resp.RunID))

	// A second wait consults the persisted run record.
	assert.NoError(t, svc.Wait(ctx, resp.RunID))
}

func TestGenerateService_WaitOnUnknownRun(t *testing.T) {
	_, _, _, _, svc := newGenerateFixture(t)
	err := svc.Wait(context.Background(), "no-such-run")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGenerateService_WaitOnOrphanedRunningRun(t *testing.T) {
	plans, _, _, runs, svc := newGenerateFixture(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Orphan Host")
	require.NoError(t, plans.Create(ctx, plan))
	orphan := testutil.NewTestRun(plan.ID)
	require.NoError(t, runs.Create(ctx, orphan))

	err := svc.Wait(ctx, orphan.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no worker")
}
