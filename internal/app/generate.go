package app

import "time"

// GenerateRequest starts a background generation run for a plan.
type GenerateRequest struct {
	PlanID string
	// Now pins the engine clock for reproducible runs in tests.
	Now *time.Time
}

// GenerateResponse acknowledges run submission; the run itself executes in
// the background and is observed through the status query.
type GenerateResponse struct {
	RunID      string
	PlanID     string
	Submitted  time.Time
	Superseded string // run ID of a cancelled in-flight run, if any
}
