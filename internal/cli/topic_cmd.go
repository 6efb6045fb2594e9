package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/examplan/internal/cli/formatter"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/spf13/cobra"
)

func newTopicCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic",
		Short: "Manage a plan's topic catalog",
	}

	cmd.AddCommand(
		newTopicAddCmd(app),
		newTopicListCmd(app),
		newTopicDeleteCmd(app),
	)

	return cmd
}

func newTopicAddCmd(app *App) *cobra.Command {
	var planRef, title, block, complexity, parts string
	var priority, hours float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a topic to a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plan, err := app.Plans.Resolve(ctx, planRef)
			if err != nil {
				return err
			}

			topicParts, err := parseParts(parts)
			if err != nil {
				return err
			}

			topic := &domain.Topic{
				PlanID:     plan.ID,
				Title:      title,
				Block:      block,
				Complexity: domain.ComplexityTier(complexity),
				Priority:   priority,
				PlannedMin: int(hours * 60),
				Parts:      topicParts,
			}
			if err := app.Topics.Create(ctx, topic); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added topic %s to %s (%.1fh, %s)\n",
				topic.Title, plan.DisplayID(), hours, topic.Complexity)
			return nil
		},
	}

	cmd.Flags().StringVar(&planRef, "plan", "", "Plan short ID or UUID")
	cmd.Flags().StringVar(&title, "title", "", "Topic title")
	cmd.Flags().StringVar(&block, "block", "", "Thematic block the topic belongs to")
	cmd.Flags().StringVar(&complexity, "complexity", "medium", "Complexity tier (low, medium, high)")
	cmd.Flags().Float64Var(&priority, "priority", 1.0, "Relative priority weight")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Planned study hours")
	cmd.Flags().StringVar(&parts, "parts", "", "Sequential parts as Title:fraction pairs (e.g. 'Algebra:0.5,Geometry:0.5')")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

func newTopicListCmd(app *App) *cobra.Command {
	var planRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a plan's topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			plan, err := app.Plans.Resolve(ctx, planRef)
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

	cmd.Flags().StringVar(&planRef, "plan", "", "Plan short ID or UUID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newTopicDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete TOPIC_ID",
		Short: "Delete a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			topic, err := app.Topics.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Topics.Delete(ctx, topic.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted topic %s\n", topic.Title)
			return nil
		},
	}
}

// parseParts parses "Title:fraction" pairs separated by commas.
func parseParts(input string) ([]domain.TopicPart, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	var parts []domain.TopicPart
	for _, pair := range strings.Split(input, ",") {
		title, fracStr, found := strings.Cut(strings.TrimSpace(pair), ":")
		if !found {
			return nil, fmt.Errorf("invalid part %q (expected Title:fraction)", pair)
		}
		frac, err := strconv.ParseFloat(strings.TrimSpace(fracStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid part fraction in %q", pair)
		}
		parts = append(parts, domain.TopicPart{Title: strings.TrimSpace(title), Fraction: frac})
	}
	return parts, nil
}
