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

func TestSessionRepo_BulkCreateAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	plan := createTestPlan(t, NewSQLitePlanRepo(db))
	topicRepo := NewSQLiteTopicRepo(db)
	repo := NewSQLiteSessionRepo(db)
	ctx := context.Background()

	topic := testutil.NewTestTopic(plan.ID, "Statistics")
	require.NoError(t, topicRepo.Create(ctx, topic))

	sessions := []domain.StudySession{
		*testutil.NewTestSession(plan.ID, topic.ID, 60,
			testutil.WithSessionDate(time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC))),
		*testutil.NewTestSession(plan.ID, topic.ID, 90,
			testutil.WithSessionDate(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))),
		*testutil.NewTestSession(plan.ID, "", 180,
			testutil.WithSessionKind(domain.KindSimulation),
			testutil.WithSessionDate(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))),
	}
	require.NoError(t, repo.BulkCreate(ctx, sessions))

	listed, err := repo.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)

	// Ordered by date ascending.
	assert.Equal(t, 90, listed[0].Minutes)
	assert.Equal(t, 60, listed[1].Minutes)

	// Simulation round-trips with an empty topic ID.
	assert.Equal(t, domain.KindSimulation, listed[2].Kind)
	assert.Empty(t, listed[2].TopicID)
}

func TestSessionRepo_PartIndexRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	plan := createTestPlan(t, NewSQLitePlanRepo(db))
	topicRepo := NewSQLiteTopicRepo(db)
	repo := NewSQLiteSessionRepo(db)
	ctx := context.Background()

	topic := testutil.NewTestTopic(plan.ID, "Civil Procedure")
	require.NoError(t, topicRepo.Create(ctx, topic))

	withPart := testutil.NewTestSession(plan.ID, topic.ID, 60, testutil.WithPartIndex(2))
	withoutPart := testutil.NewTestSession(plan.ID, topic.ID, 60)
	require.NoError(t, repo.BulkCreate(ctx, []domain.StudySession{*withPart, *withoutPart}))

	fetched, err := repo.GetByID(ctx, withPart.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.PartIndex)
	assert.Equal(t, 2, *fetched.PartIndex)

	fetched, err = repo.GetByID(ctx, withoutPart.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.PartIndex)
}

func TestSessionRepo_GetByIDPrefix(t *testing.T) {
	db := testutil.NewTestDB(t)
	plan := createTestPlan(t, NewSQLitePlanRepo(db))
	topicRepo := NewSQLiteTopicRepo(db)
	repo := NewSQLiteSessionRepo(db)
	ctx := context.Background()

	topic := testutil.NewTestTopic(plan.ID, "Statistics")
	require.NoError(t, topicRepo.Create(ctx, topic))

	session := testutil.NewTestSession(plan.ID, topic.ID, 60)
	session.ID = "aaaa1111-0000-0000-0000-000000000000"
	other := testutil.NewTestSession(plan.ID, topic.ID, 60)
	other.ID = "aaab2222-0000-0000-0000-000000000000"
	require.NoError(t, repo.BulkCreate(ctx, []domain.StudySession{*session, *other}))

	fetched, err := repo.GetByIDPrefix(ctx, "aaaa")
	require.NoError(t, err)
	assert.Equal(t, session.ID, fetched.ID)

	_, err = repo.GetByIDPrefix(ctx, "aaa")
	assert.ErrorIs(t, err, ErrAmbiguousPrefix)

	_, err = repo.GetByIDPrefix(ctx, "zzzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_UpdateStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	plan := createTestPlan(t, NewSQLitePlanRepo(db))
	topicRepo := NewSQLiteTopicRepo(db)
	repo := NewSQLiteSessionRepo(db)
	ctx := context.Background()

	topic := testutil.NewTestTopic(plan.ID, "Statistics")
	require.NoError(t, topicRepo.Create(ctx, topic))

	session := testutil.NewTestSession(plan.ID, topic.ID, 60)
	require.NoError(t, repo.BulkCreate(ctx, []domain.StudySession{*session}))

	require.NoError(t, session.MarkCompleted(time.Now().UTC()))
	require.NoError(t, repo.UpdateStatus(ctx, session))

	fetched, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, fetched.Status)
}

func TestSessionRepo_UpdateStatus_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(db)
	ctx := context.Background()

	ghost := testutil.NewTestSession("no-plan", "", 60)
	err := repo.UpdateStatus(ctx, ghost)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_CountByStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	plan := createTestPlan(t, NewSQLitePlanRepo(db))
	topicRepo := NewSQLiteTopicRepo(db)
	repo := NewSQLiteSessionRepo(db)
	ctx := context.Background()

	topic := testutil.NewTestTopic(plan.ID, "Statistics")
	require.NoError(t, topicRepo.Create(ctx, topic))

	sessions := []domain.StudySession{
		*testutil.NewTestSession(plan.ID, topic.ID, 60),
		*testutil.NewTestSession(plan.ID, topic.ID, 60, testutil.WithSessionStatus(domain.SessionCompleted)),
		*testutil.NewTestSession(plan.ID, topic.ID, 60, testutil.WithSessionStatus(domain.SessionCompleted)),
		*testutil.NewTestSession(plan.ID, topic.ID, 60, testutil.WithSessionStatus(domain.SessionSkipped)),
	}
	require.NoError(t, repo.BulkCreate(ctx, sessions))

	counts, err := repo.CountByStatus(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[domain.SessionPending])
	assert.Equal(t, 2, counts[domain.SessionCompleted])
	assert.Equal(t, 1, counts[domain.SessionSkipped])
}

func TestSessionRepo_DeleteByPlan(t *testing.T) {
	db := testutil.NewTestDB(t)
	plan := createTestPlan(t, NewSQLitePlanRepo(db))
	topicRepo := NewSQLiteTopicRepo(db)
	repo := NewSQLiteSessionRepo(db)
	ctx := context.Background()

	topic := testutil.NewTestTopic(plan.ID, "Statistics")
	require.NoError(t, topicRepo.Create(ctx, topic))
	require.NoError(t, repo.BulkCreate(ctx, []domain.StudySession{
		*testutil.NewTestSession(plan.ID, topic.ID, 60),
		*testutil.NewTestSession(plan.ID, topic.ID, 60),
	}))

	require.NoError(t, repo.DeleteByPlan(ctx, plan.ID))

	listed, err := repo.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
