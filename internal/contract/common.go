package contract

import "github.com/alexanderramin/examplan/internal/app"

type GenerationErrorCode = app.GenerationErrorCode

const (
	ErrInvalidInput    GenerationErrorCode = app.ErrInvalidInput
	ErrNoAvailableDays GenerationErrorCode = app.ErrNoAvailableDays
	ErrPartialCoverage GenerationErrorCode = app.ErrPartialCoverage
	ErrNoTopics        GenerationErrorCode = app.ErrNoTopics
	ErrPlanNotFound    GenerationErrorCode = app.ErrPlanNotFound
	ErrRunCancelled    GenerationErrorCode = app.ErrRunCancelled
)

type GenerationError = app.GenerationError

type GenerateRequest = app.GenerateRequest

type GenerateResponse = app.GenerateResponse
