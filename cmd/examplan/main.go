package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/examplan/internal/cli"
	"github.com/alexanderramin/examplan/internal/db"
	"github.com/alexanderramin/examplan/internal/generation"
	"github.com/alexanderramin/examplan/internal/repository"
	"github.com/alexanderramin/examplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.examplan/examplan.db
	dbPath := os.Getenv("EXAMPLAN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".examplan", "examplan.db")
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	planRepo := repository.NewSQLitePlanRepo(database)
	topicRepo := repository.NewSQLiteTopicRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	runRepo := repository.NewSQLiteRunRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	var observers []service.UseCaseObserver
	if os.Getenv("EXAMPLAN_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}
	generateSvc := service.NewGenerateService(
		planRepo, topicRepo, sessionRepo, runRepo, uow,
		generation.DefaultConfig(), observers...,
	)

	app := &cli.App{
		Plans:    service.NewPlanService(planRepo),
		Topics:   service.NewTopicService(planRepo, topicRepo),
		Sessions: service.NewSessionService(sessionRepo),
		Generate: generateSvc,
		Status:   service.NewStatusService(planRepo, sessionRepo, runRepo),
		Import:   service.NewImportService(uow),
	}

	// Detect interactive terminal for forms and spinners.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
