package cli

import (
	"github.com/alexanderramin/examplan/internal/app"
	"github.com/alexanderramin/examplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans    service.PlanService
	Topics   service.TopicService
	Sessions service.SessionService
	Generate service.GenerateService
	Status   service.StatusService
	Import   service.ImportService

	// Optional use-case overrides; commands fall back to the services above
	// when these are nil.
	GenerateRuns app.GenerateUseCase
	RunStatus    app.StatusUseCase

	// IsInteractive reports whether stdin is a terminal; interactive forms
	// are offered only when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "examplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "examplan",
		Short:         "Exam study calendar generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlanCmd(app),
		newTopicCmd(app),
		newImportCmd(app),
		newGenerateCmd(app),
		newStatusCmd(app),
		newCalendarCmd(app),
		newSessionCmd(app),
	)

	return root
}
