package domain

import (
	"fmt"
	"time"
)

// StudyDay is one usable calendar day inside the generation window.
type StudyDay struct {
	Date      time.Time
	BudgetMin int
}

// RotationEntry is an abstract, week-indexed scheduling unit produced by the
// rotation builder. It carries no calendar date until materialization.
type RotationEntry struct {
	TopicID     string
	PartIndex   *int
	Kind        SessionKind
	ReviewStage int // spaced-repetition stage, review entries only
	TestIndex   int // 1-based counter, test entries only
	Minutes     int
	WeekIndex   int
	Ordinal     int
}

// StudySession is the final, persisted calendar record. The engine creates
// sessions during one generation run and never mutates them afterwards;
// status changes belong to the session service.
type StudySession struct {
	ID          string
	PlanID      string
	TopicID     string // empty for full-scope simulations
	PartIndex   *int
	Date        time.Time
	Minutes     int
	Kind        SessionKind
	ReviewStage int
	Status      SessionStatus
	Label       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsTerminal reports whether the session has reached a final status.
func (s *StudySession) IsTerminal() bool {
	return s.Status == SessionCompleted || s.Status == SessionSkipped
}

// MarkInProgress transitions a pending session to in_progress.
func (s *StudySession) MarkInProgress(now time.Time) error {
	if s.IsTerminal() {
		return fmt.Errorf("session is already %s", s.Status)
	}
	s.Status = SessionInProgress
	s.UpdatedAt = now
	return nil
}

// MarkCompleted transitions the session to completed. Completing an already
// completed session is a no-op.
func (s *StudySession) MarkCompleted(now time.Time) error {
	if s.Status == SessionCompleted {
		return nil
	}
	if s.Status == SessionSkipped {
		return fmt.Errorf("cannot complete a skipped session")
	}
	s.Status = SessionCompleted
	s.UpdatedAt = now
	return nil
}

// MarkSkipped transitions the session to skipped.
func (s *StudySession) MarkSkipped(now time.Time) error {
	if s.Status == SessionCompleted {
		return fmt.Errorf("cannot skip a completed session")
	}
	s.Status = SessionSkipped
	s.UpdatedAt = now
	return nil
}
