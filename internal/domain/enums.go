package domain

type ComplexityTier string

const (
	TierLow    ComplexityTier = "low"
	TierMedium ComplexityTier = "medium"
	TierHigh   ComplexityTier = "high"
)

// ValidComplexityTiers is the canonical set of accepted tier strings.
var ValidComplexityTiers = map[string]bool{
	"low": true, "medium": true, "high": true,
}

type SessionKind string

const (
	KindStudy      SessionKind = "study"
	KindReview     SessionKind = "review"
	KindTest       SessionKind = "test"
	KindSimulation SessionKind = "simulation"
)

type SessionStatus string

const (
	SessionPending    SessionStatus = "pending"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionSkipped    SessionStatus = "skipped"
)

type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
	RunCancelled RunStatus = "cancelled"
)

type PlanStatus string

const (
	PlanActive   PlanStatus = "active"
	PlanArchived PlanStatus = "archived"
)
