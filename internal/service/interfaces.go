package service

import (
	"context"

	"github.com/alexanderramin/examplan/internal/contract"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/importer"
)

type PlanService interface {
	Create(ctx context.Context, p *domain.StudyPlan) error
	Resolve(ctx context.Context, ref string) (*domain.StudyPlan, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.StudyPlan, error)
	Update(ctx context.Context, p *domain.StudyPlan) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

type TopicService interface {
	Create(ctx context.Context, t *domain.Topic) error
	GetByID(ctx context.Context, id string) (*domain.Topic, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Topic, error)
	Update(ctx context.Context, t *domain.Topic) error
	Delete(ctx context.Context, id string) error
}

type SessionService interface {
	Resolve(ctx context.Context, idPrefix string) (*domain.StudySession, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.StudySession, error)
	Start(ctx context.Context, idPrefix string) (*domain.StudySession, error)
	Complete(ctx context.Context, idPrefix string) (*domain.StudySession, error)
	Skip(ctx context.Context, idPrefix string) (*domain.StudySession, error)
}

type GenerateService interface {
	Start(ctx context.Context, req contract.GenerateRequest) (*contract.GenerateResponse, error)
	Cancel(ctx context.Context, planID string) error
	Wait(ctx context.Context, runID string) error
}

type StatusService interface {
	GetStatus(ctx context.Context, req contract.StatusRequest) (*contract.StatusResponse, error)
}

// ImportResult holds the outcome of a plan import.
type ImportResult struct {
	Plan       *domain.StudyPlan
	TopicCount int
	PartCount  int
}

type ImportService interface {
	ImportPlan(ctx context.Context, filePath string) (*ImportResult, error)
	ImportPlanFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
