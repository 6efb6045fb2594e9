package app

import "context"

type StatusUseCase interface {
	GetStatus(ctx context.Context, req StatusRequest) (*StatusResponse, error)
}

type GenerateUseCase interface {
	Start(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	Cancel(ctx context.Context, planID string) error
	// Wait blocks until the given run leaves the running state, for CLI
	// --wait flows and tests.
	Wait(ctx context.Context, runID string) error
}
