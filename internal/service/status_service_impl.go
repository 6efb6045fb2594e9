package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/examplan/internal/app"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/repository"
)

type statusService struct {
	plans    repository.PlanRepo
	sessions repository.SessionRepo
	runs     repository.RunRepo
}

func NewStatusService(
	plans repository.PlanRepo,
	sessions repository.SessionRepo,
	runs repository.RunRepo,
) StatusService {
	return &statusService{plans: plans, sessions: sessions, runs: runs}
}

func (s *statusService) GetStatus(ctx context.Context, req app.StatusRequest) (*app.StatusResponse, error) {
	plan, err := resolvePlan(ctx, s.plans, req.PlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &app.StatusError{
				Code:    app.StatusErrPlanNotFound,
				Message: "no plan matches " + req.PlanID,
			}
		}
		return nil, err
	}

	run, err := s.runs.GetLatestByPlan(ctx, plan.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &app.StatusError{
				Code:    app.StatusErrNoRuns,
				Message: fmt.Sprintf("plan %s has no generation runs yet (run generate first)", plan.DisplayID()),
			}
		}
		return nil, err
	}

	counts, err := s.sessions.CountByStatus(ctx, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("counting sessions: %w", err)
	}
	total := 0
	for _, n := range counts {
		total += n
	}

	return &app.StatusResponse{
		PlanID:         plan.ID,
		PlanName:       plan.Name,
		ShortID:        plan.ShortID,
		StartDate:      plan.StartDate,
		ExamDate:       plan.ExamDate,
		RunID:          run.ID,
		RunStatus:      run.Status,
		Diagnostics:    run.Diagnostics,
		FailureCode:    run.FailureCode,
		FailureMsg:     run.FailureMsg,
		StartedAt:      run.StartedAt,
		FinishedAt:     run.FinishedAt,
		SessionCount:   total,
		CompletedCount: counts[domain.SessionCompleted],
		SkippedCount:   counts[domain.SessionSkipped],
	}, nil
}
