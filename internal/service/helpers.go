package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/examplan/internal/app"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/repository"
)

// resolvePlan looks a plan up by full UUID first, then by short ID. CLI
// surfaces accept either form.
func resolvePlan(ctx context.Context, plans repository.PlanRepo, ref string) (*domain.StudyPlan, error) {
	plan, err := plans.GetByID(ctx, ref)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return plans.GetByShortID(ctx, ref)
}

// planNotFoundErr maps a repository miss onto the generation error taxonomy.
func planNotFoundErr(ref string) error {
	return &app.GenerationError{
		Code:    app.ErrPlanNotFound,
		Message: "no plan matches " + ref,
	}
}
