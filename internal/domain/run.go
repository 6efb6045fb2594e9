package domain

import "time"

// RunDiagnostics summarizes what a generation run produced. Stored on the
// run record so status queries can report coverage without reloading sessions.
type RunDiagnostics struct {
	CoveragePct    float64        `json:"coverage_pct"`
	SessionCount   int            `json:"session_count"`
	CountsByTier   map[string]int `json:"counts_by_tier,omitempty"`
	CountsByKind   map[string]int `json:"counts_by_kind,omitempty"`
	StudyDayCount  int            `json:"study_day_count"`
	FirstSession   string         `json:"first_session,omitempty"`
	LastSession    string         `json:"last_session,omitempty"`
	Warnings       []string       `json:"warnings,omitempty"`
	RelaxedBalance bool           `json:"relaxed_balance,omitempty"`
}

// GenerationRun records one generation attempt for a plan. Superseded runs
// are kept for audit but only the latest run drives status reporting.
type GenerationRun struct {
	ID          string
	PlanID      string
	Status      RunStatus
	Diagnostics RunDiagnostics
	FailureCode string
	FailureMsg  string
	StartedAt   time.Time
	FinishedAt  *time.Time
}
