package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Track progress on individual study sessions",
	}

	cmd.AddCommand(
		newSessionTransitionCmd(app, "start", "Mark a session as in progress", app.Sessions.Start),
		newSessionTransitionCmd(app, "done", "Mark a session as completed", app.Sessions.Complete),
		newSessionTransitionCmd(app, "skip", "Mark a session as skipped", app.Sessions.Skip),
	)

	return cmd
}

// newSessionTransitionCmd builds one of the start/done/skip subcommands. They
// only differ in the service call they make.
func newSessionTransitionCmd(app *App, use, short string, transition func(context.Context, string) (*domain.StudySession, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := transition(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now %s\n",
				session.Label, session.Date.Format("2006-01-02"), session.Status)
			return nil
		},
	}
}
