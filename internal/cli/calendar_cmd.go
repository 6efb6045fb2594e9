package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/examplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	var week int

	cmd := &cobra.Command{
		Use:   "calendar PLAN",
		Short: "Show a plan's generated study calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plan, err := app.Plans.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			sessions, err := app.Sessions.ListByPlan(ctx, plan.ID)
			if err != nil {
				return err
			}
			if week > 0 {
				sessions = formatter.FilterWeek(sessions, week)
				if len(sessions) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No sessions in week %d.\n", week)
					return nil
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCalendar(sessions))
			return nil
		},
	}

	cmd.Flags().IntVar(&week, "week", 0, "Show a single study week (1-based from the first session's week)")
	return cmd
}
