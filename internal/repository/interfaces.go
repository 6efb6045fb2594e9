package repository

import (
	"context"

	"github.com/alexanderramin/examplan/internal/domain"
)

type PlanRepo interface {
	Create(ctx context.Context, p *domain.StudyPlan) error
	GetByID(ctx context.Context, id string) (*domain.StudyPlan, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.StudyPlan, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.StudyPlan, error)
	Update(ctx context.Context, p *domain.StudyPlan) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type TopicRepo interface {
	Create(ctx context.Context, t *domain.Topic) error
	GetByID(ctx context.Context, id string) (*domain.Topic, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Topic, error)
	Update(ctx context.Context, t *domain.Topic) error
	Delete(ctx context.Context, id string) error
}

type SessionRepo interface {
	BulkCreate(ctx context.Context, sessions []domain.StudySession) error
	GetByID(ctx context.Context, id string) (*domain.StudySession, error)
	GetByIDPrefix(ctx context.Context, prefix string) (*domain.StudySession, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.StudySession, error)
	CountByStatus(ctx context.Context, planID string) (map[domain.SessionStatus]int, error)
	UpdateStatus(ctx context.Context, s *domain.StudySession) error
	DeleteByPlan(ctx context.Context, planID string) error
}

type RunRepo interface {
	Create(ctx context.Context, r *domain.GenerationRun) error
	GetByID(ctx context.Context, id string) (*domain.GenerationRun, error)
	GetLatestByPlan(ctx context.Context, planID string) (*domain.GenerationRun, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.GenerationRun, error)
	Update(ctx context.Context, r *domain.GenerationRun) error
}
