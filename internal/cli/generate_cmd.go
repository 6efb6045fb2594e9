package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/examplan/internal/cli/formatter"
	"github.com/alexanderramin/examplan/internal/contract"
	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "generate PLAN",
		Short: "Generate the study calendar for a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			generate := app.generateUseCase()
			resp, err := generate.Start(ctx, contract.GenerateRequest{PlanID: args[0]})
			if err != nil {
				return err
			}
			if resp.Superseded != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Cancelled in-flight run %s\n", shortRunID(resp.Superseded))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started run %s\n", shortRunID(resp.RunID))

			if !wait {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Poll with `examplan status "+args[0]+"`."))
				return nil
			}

			var stopSpinner func()
			if app.interactive() {
				s := formatter.NewSpinner("generating calendar...")
				s.Start()
				stopSpinner = s.Stop
			}
			err = generate.Wait(ctx, resp.RunID)
			if stopSpinner != nil {
				stopSpinner()
			}
			if err != nil {
				return err
			}

			status, err := app.statusUseCase().GetStatus(ctx, contract.StatusRequest{PlanID: resp.PlanID})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(status))
			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "Block until the run finishes and print its status")
	return cmd
}

func shortRunID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
