package app

// GenerationErrorCode classifies why a generation run could not produce a
// complete calendar.
type GenerationErrorCode string

const (
	ErrInvalidInput    GenerationErrorCode = "INVALID_INPUT"
	ErrNoAvailableDays GenerationErrorCode = "NO_AVAILABLE_DAYS"
	ErrPartialCoverage GenerationErrorCode = "PARTIAL_COVERAGE"
	ErrNoTopics        GenerationErrorCode = "NO_TOPICS"
	ErrPlanNotFound    GenerationErrorCode = "PLAN_NOT_FOUND"
	ErrRunCancelled    GenerationErrorCode = "RUN_CANCELLED"
)

// GenerationError is the typed error surfaced for failed generation runs.
type GenerationError struct {
	Code    GenerationErrorCode
	Message string
}

func (e *GenerationError) Error() string {
	return string(e.Code) + ": " + e.Message
}
