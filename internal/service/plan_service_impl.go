package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/repository"
	"github.com/google/uuid"
)

type planService struct {
	plans repository.PlanRepo
}

func NewPlanService(plans repository.PlanRepo) PlanService {
	return &planService{plans: plans}
}

func (s *planService) Create(ctx context.Context, p *domain.StudyPlan) error {
	if err := p.ValidateShortID(); err != nil {
		return err
	}
	if err := p.ValidateDates(); err != nil {
		return err
	}
	if p.Weekly.IsEmpty() {
		return fmt.Errorf("weekly availability has no study hours")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.PlanActive
	}
	return s.plans.Create(ctx, p)
}

func (s *planService) Resolve(ctx context.Context, ref string) (*domain.StudyPlan, error) {
	plan, err := resolvePlan(ctx, s.plans, ref)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, planNotFoundErr(ref)
	}
	return plan, err
}

func (s *planService) List(ctx context.Context, includeArchived bool) ([]*domain.StudyPlan, error) {
	return s.plans.List(ctx, includeArchived)
}

func (s *planService) Update(ctx context.Context, p *domain.StudyPlan) error {
	if err := p.ValidateDates(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.plans.Update(ctx, p)
}

func (s *planService) Archive(ctx context.Context, id string) error {
	return s.plans.Archive(ctx, id)
}

func (s *planService) Delete(ctx context.Context, id string, force bool) error {
	if !force {
		p, err := s.plans.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p.Status != domain.PlanArchived {
			return fmt.Errorf("plan must be archived before deletion (use --force to override)")
		}
	}
	// Topics, sessions, and runs cascade at the schema level.
	return s.plans.Delete(ctx, id)
}
