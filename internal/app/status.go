package app

import (
	"time"

	"github.com/alexanderramin/examplan/internal/domain"
)

type StatusRequest struct {
	PlanID string
}

// StatusResponse reports the latest generation run for a plan, pollable by
// the CLI while a run is in flight.
type StatusResponse struct {
	PlanID      string
	PlanName    string
	ShortID     string
	StartDate   time.Time
	ExamDate    time.Time
	RunID       string
	RunStatus   domain.RunStatus
	Diagnostics domain.RunDiagnostics
	FailureCode string
	FailureMsg  string
	StartedAt   time.Time
	FinishedAt  *time.Time

	// Progress over the persisted calendar, independent of the run.
	SessionCount   int
	CompletedCount int
	SkippedCount   int
}

type StatusErrorCode string

const (
	StatusErrPlanNotFound StatusErrorCode = "PLAN_NOT_FOUND"
	StatusErrNoRuns       StatusErrorCode = "NO_GENERATION_RUNS"
)

type StatusError struct {
	Code    StatusErrorCode
	Message string
}

func (e *StatusError) Error() string {
	return string(e.Code) + ": " + e.Message
}
