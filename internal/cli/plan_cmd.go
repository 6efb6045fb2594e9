package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/examplan/internal/cli/formatter"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage study plans",
	}

	cmd.AddCommand(
		newPlanNewCmd(app),
		newPlanListCmd(app),
		newPlanShowCmd(app),
		newPlanArchiveCmd(app),
		newPlanDeleteCmd(app),
	)

	return cmd
}

func newPlanNewCmd(app *App) *cobra.Command {
	var shortID, name, start, exam, hours string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new study plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			// With no flags on an interactive terminal, collect the plan
			// through a form instead of failing on missing input.
			if shortID == "" && name == "" && app.interactive() {
				if err := runPlanForm(&shortID, &name, &start, &exam, &hours); err != nil {
					return err
				}
			}

			startDate, err := time.Parse("2006-01-02", start)
			if err != nil {
				return fmt.Errorf("invalid start date %q (expected YYYY-MM-DD)", start)
			}
			examDate, err := time.Parse("2006-01-02", exam)
			if err != nil {
				return fmt.Errorf("invalid exam date %q (expected YYYY-MM-DD)", exam)
			}
			weekly, err := parseWeeklyHours(hours)
			if err != nil {
				return err
			}

			p := &domain.StudyPlan{
				ShortID:   strings.ToUpper(shortID),
				Name:      name,
				StartDate: startDate,
				ExamDate:  examDate,
				Weekly:    weekly,
			}
			if err := app.Plans.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created plan %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits, e.g. BAR25)")
	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	cmd.Flags().StringVar(&start, "start", "", "Study start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&exam, "exam", "", "Exam date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&hours, "hours", "", "Hours per weekday, Monday first (e.g. 2,2,2,2,2,4,0)")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List study plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Plans.List(context.Background(), all)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanList(plans))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived plans")
	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PLAN",
		Short: "Show a plan with its topic catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plan, err := app.Plans.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			topics, err := app.Topics.ListByPlan(ctx, plan.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanDetail(plan, topics))
			return nil
		},
	}
}

func newPlanArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive PLAN",
		Short: "Archive a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plan, err := app.Plans.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Archive(ctx, plan.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived plan %s [%s]\n", plan.Name, plan.DisplayID())
			return nil
		},
	}
}

func newPlanDeleteCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete PLAN",
		Short: "Delete a plan and its calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plan, err := app.Plans.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			// An in-flight generation run must not outlive its plan.
			if err := app.generateUseCase().Cancel(ctx, plan.ID); err != nil {
				return err
			}
			if err := app.Plans.Delete(ctx, plan.ID, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan %s [%s]\n", plan.Name, plan.DisplayID())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete even if the plan is not archived")
	return cmd
}

// parseWeeklyHours parses a comma-separated Monday-first hour list into
// minute budgets. Fewer than seven values leaves the remaining days empty.
func parseWeeklyHours(input string) (domain.WeeklyAvailability, error) {
	var hours [7]float64
	if strings.TrimSpace(input) == "" {
		return domain.WeeklyAvailability{}, fmt.Errorf("weekly hours are required (use --hours, e.g. 2,2,2,2,2,4,0)")
	}
	fields := strings.Split(input, ",")
	if len(fields) > 7 {
		return domain.WeeklyAvailability{}, fmt.Errorf("weekly hours accept at most 7 values, got %d", len(fields))
	}
	for i, f := range fields {
		var h float64
		if _, err := fmt.Sscanf(strings.TrimSpace(f), "%g", &h); err != nil {
			return domain.WeeklyAvailability{}, fmt.Errorf("invalid hours value %q", strings.TrimSpace(f))
		}
		hours[i] = h
	}
	return domain.AvailabilityFromHours(hours)
}
