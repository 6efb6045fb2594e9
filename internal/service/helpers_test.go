package service

import (
	"testing"

	"github.com/alexanderramin/examplan/internal/db"
	"github.com/alexanderramin/examplan/internal/repository"
	"github.com/alexanderramin/examplan/internal/testutil"
)

func setupRepos(t *testing.T) (
	repository.PlanRepo,
	repository.TopicRepo,
	repository.SessionRepo,
	repository.RunRepo,
	db.UnitOfWork,
) {
	database := testutil.NewTestDB(t)
	return repository.NewSQLitePlanRepo(database),
		repository.NewSQLiteTopicRepo(database),
		repository.NewSQLiteSessionRepo(database),
		repository.NewSQLiteRunRepo(database),
		testutil.NewTestUoW(database)
}
