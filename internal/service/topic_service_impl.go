package service

import (
	"context"
	"time"

	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/repository"
	"github.com/google/uuid"
)

type topicService struct {
	plans  repository.PlanRepo
	topics repository.TopicRepo
}

func NewTopicService(plans repository.PlanRepo, topics repository.TopicRepo) TopicService {
	return &topicService{plans: plans, topics: topics}
}

func (s *topicService) Create(ctx context.Context, t *domain.Topic) error {
	if err := t.Validate(); err != nil {
		return err
	}
	// The plan must exist; FK enforcement alone produces an opaque error.
	if _, err := s.plans.GetByID(ctx, t.PlanID); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.topics.Create(ctx, t)
}

func (s *topicService) GetByID(ctx context.Context, id string) (*domain.Topic, error) {
	return s.topics.GetByID(ctx, id)
}

func (s *topicService) ListByPlan(ctx context.Context, planID string) ([]*domain.Topic, error) {
	return s.topics.ListByPlan(ctx, planID)
}

func (s *topicService) Update(ctx context.Context, t *domain.Topic) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	return s.topics.Update(ctx, t)
}

func (s *topicService) Delete(ctx context.Context, id string) error {
	return s.topics.Delete(ctx, id)
}
