package contract

import "github.com/alexanderramin/examplan/internal/app"

type StatusRequest = app.StatusRequest

type StatusResponse = app.StatusResponse

type StatusErrorCode = app.StatusErrorCode

const (
	StatusErrPlanNotFound StatusErrorCode = app.StatusErrPlanNotFound
	StatusErrNoRuns       StatusErrorCode = app.StatusErrNoRuns
)

type StatusError = app.StatusError
