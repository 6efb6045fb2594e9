package cli

import "github.com/alexanderramin/examplan/internal/app"

func (a *App) generateUseCase() app.GenerateUseCase {
	if a.GenerateRuns != nil {
		return a.GenerateRuns
	}
	return a.Generate
}

func (a *App) statusUseCase() app.StatusUseCase {
	if a.RunStatus != nil {
		return a.RunStatus
	}
	return a.Status
}
