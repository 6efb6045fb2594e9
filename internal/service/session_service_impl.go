package service

import (
	"context"
	"time"

	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/repository"
)

type sessionService struct {
	sessions repository.SessionRepo
}

func NewSessionService(sessions repository.SessionRepo) SessionService {
	return &sessionService{sessions: sessions}
}

func (s *sessionService) Resolve(ctx context.Context, idPrefix string) (*domain.StudySession, error) {
	return s.sessions.GetByIDPrefix(ctx, idPrefix)
}

func (s *sessionService) ListByPlan(ctx context.Context, planID string) ([]*domain.StudySession, error) {
	return s.sessions.ListByPlan(ctx, planID)
}

func (s *sessionService) Start(ctx context.Context, idPrefix string) (*domain.StudySession, error) {
	return s.transition(ctx, idPrefix, (*domain.StudySession).MarkInProgress)
}

func (s *sessionService) Complete(ctx context.Context, idPrefix string) (*domain.StudySession, error) {
	return s.transition(ctx, idPrefix, (*domain.StudySession).MarkCompleted)
}

func (s *sessionService) Skip(ctx context.Context, idPrefix string) (*domain.StudySession, error) {
	return s.transition(ctx, idPrefix, (*domain.StudySession).MarkSkipped)
}

func (s *sessionService) transition(
	ctx context.Context,
	idPrefix string,
	apply func(*domain.StudySession, time.Time) error,
) (*domain.StudySession, error) {
	session, err := s.sessions.GetByIDPrefix(ctx, idPrefix)
	if err != nil {
		return nil, err
	}
	if err := apply(session, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.sessions.UpdateStatus(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
