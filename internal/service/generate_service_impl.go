package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/examplan/internal/app"
	"github.com/alexanderramin/examplan/internal/contract"
	"github.com/alexanderramin/examplan/internal/db"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/generation"
	"github.com/alexanderramin/examplan/internal/repository"
	"github.com/alexanderramin/examplan/internal/scheduler"
	"github.com/google/uuid"
)

// generateService runs the generation engine in the background, one run per
// plan at a time. Starting a new run for a plan cancels the in-flight one;
// results are persisted in a single transaction so readers never observe a
// half-written calendar.
type generateService struct {
	plans    repository.PlanRepo
	topics   repository.TopicRepo
	sessions repository.SessionRepo
	runs     repository.RunRepo
	uow      db.UnitOfWork
	cfg      generation.Config
	observer UseCaseObserver

	mu       sync.Mutex
	inflight map[string]*inflightRun // keyed by plan ID
}

type inflightRun struct {
	runID  string
	cancel context.CancelFunc
	done   chan struct{}
}

func NewGenerateService(
	plans repository.PlanRepo,
	topics repository.TopicRepo,
	sessions repository.SessionRepo,
	runs repository.RunRepo,
	uow db.UnitOfWork,
	cfg generation.Config,
	observers ...UseCaseObserver,
) GenerateService {
	return &generateService{
		plans:    plans,
		topics:   topics,
		sessions: sessions,
		runs:     runs,
		uow:      uow,
		cfg:      cfg,
		observer: useCaseObserverOrNoop(observers),
		inflight: make(map[string]*inflightRun),
	}
}

func (s *generateService) Start(ctx context.Context, req contract.GenerateRequest) (*contract.GenerateResponse, error) {
	plan, err := resolvePlan(ctx, s.plans, req.PlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, planNotFoundErr(req.PlanID)
		}
		return nil, err
	}

	topics, err := s.topics.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("loading topics: %w", err)
	}

	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}
	run := &domain.GenerationRun{
		ID:        uuid.New().String(),
		PlanID:    plan.ID,
		Status:    domain.RunRunning,
		StartedAt: now,
	}
	if err := s.runs.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}

	// The run outlives the request; it carries its own cancellable context.
	runCtx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	superseded := ""
	if prev, ok := s.inflight[plan.ID]; ok {
		superseded = prev.runID
		prev.cancel()
	}
	entry := &inflightRun{runID: run.ID, cancel: cancel, done: make(chan struct{})}
	s.inflight[plan.ID] = entry
	s.mu.Unlock()

	go s.execute(runCtx, entry, run, plan, topics)

	return &contract.GenerateResponse{
		RunID:      run.ID,
		PlanID:     plan.ID,
		Submitted:  now,
		Superseded: superseded,
	}, nil
}

func (s *generateService) Cancel(ctx context.Context, planID string) error {
	s.mu.Lock()
	entry, ok := s.inflight[planID]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	entry.cancel()
	select {
	case <-entry.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *generateService) Wait(ctx context.Context, runID string) error {
	s.mu.Lock()
	var entry *inflightRun
	for _, e := range s.inflight {
		if e.runID == runID {
			entry = e
			break
		}
	}
	s.mu.Unlock()

	if entry != nil {
		select {
		case <-entry.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	// The run is no longer in flight; confirm it reached a terminal state.
	run, err := s.runs.GetByID(ctx, runID)
	if err != nil {
		return err
	}
	if run.Status == domain.RunRunning {
		return fmt.Errorf("run %s is marked running but has no worker", runID)
	}
	return nil
}

func (s *generateService) execute(
	ctx context.Context,
	entry *inflightRun,
	run *domain.GenerationRun,
	plan *domain.StudyPlan,
	topics []*domain.Topic,
) {
	startedAt := time.Now().UTC()
	var runErr error
	defer func() {
		s.mu.Lock()
		if cur, ok := s.inflight[plan.ID]; ok && cur == entry {
			delete(s.inflight, plan.ID)
		}
		s.mu.Unlock()
		close(entry.done)
		observe(context.Background(), s.observer, "generate_plan", startedAt, runErr, map[string]any{
			"plan_id": plan.ID,
			"run_id":  run.ID,
		})
	}()

	result, err := generation.Generate(generation.Input{
		PlanID:    plan.ID,
		StartDate: plan.StartDate,
		ExamDate:  plan.ExamDate,
		Weekly:    plan.Weekly,
		Topics:    topics,
	}, s.configFor(plan))

	if ctx.Err() != nil {
		runErr = s.finishCancelled(run)
		return
	}
	if err != nil {
		runErr = s.finishFailed(run, err)
		return
	}

	now := time.Now().UTC()
	for i := range result.Sessions {
		result.Sessions[i].ID = uuid.New().String()
		result.Sessions[i].CreatedAt = now
		result.Sessions[i].UpdatedAt = now
	}

	runErr = s.uow.WithinTx(context.Background(), func(txCtx context.Context, tx db.DBTX) error {
		// A cancel that lands before commit still wins.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		sessionRepo := repository.NewSQLiteSessionRepo(tx)
		if err := sessionRepo.DeleteByPlan(txCtx, plan.ID); err != nil {
			return err
		}
		if err := sessionRepo.BulkCreate(txCtx, result.Sessions); err != nil {
			return err
		}
		finished := time.Now().UTC()
		run.Status = domain.RunSucceeded
		run.Diagnostics = result.Diagnostics
		run.FinishedAt = &finished
		return repository.NewSQLiteRunRepo(tx).Update(txCtx, run)
	})
	if runErr != nil {
		if ctx.Err() != nil {
			runErr = s.finishCancelled(run)
			return
		}
		_ = s.finishFailed(run, runErr)
	}
}

// configFor layers the plan's imported weight rules in front of the built-in
// exception list. First match wins, so plan rules take precedence.
func (s *generateService) configFor(plan *domain.StudyPlan) generation.Config {
	cfg := s.cfg
	if len(plan.Rules) == 0 {
		return cfg
	}
	rules := make([]scheduler.WeightRule, 0, len(plan.Rules)+len(cfg.Weights.Rules))
	for _, r := range plan.Rules {
		rules = append(rules, scheduler.WeightRule{
			Name:       r.Name,
			Match:      r.Match,
			ReviewMult: r.ReviewMult,
			TestMult:   r.TestMult,
		})
	}
	cfg.Weights.Rules = append(rules, cfg.Weights.Rules...)
	return cfg
}

func (s *generateService) finishCancelled(run *domain.GenerationRun) error {
	finished := time.Now().UTC()
	run.Status = domain.RunCancelled
	run.FailureCode = string(app.ErrRunCancelled)
	run.FailureMsg = "run superseded or cancelled before completion"
	run.FinishedAt = &finished
	return s.runs.Update(context.Background(), run)
}

func (s *generateService) finishFailed(run *domain.GenerationRun, cause error) error {
	finished := time.Now().UTC()
	run.Status = domain.RunFailed
	run.FinishedAt = &finished

	var genErr *app.GenerationError
	if errors.As(cause, &genErr) {
		run.FailureCode = string(genErr.Code)
		run.FailureMsg = genErr.Message
	} else {
		run.FailureCode = string(app.ErrInvalidInput)
		run.FailureMsg = cause.Error()
	}
	if err := s.runs.Update(context.Background(), run); err != nil {
		return err
	}
	return cause
}
