package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// FormatPlanList renders plans as a table.
func FormatPlanList(plans []*domain.StudyPlan) string {
	if len(plans) == 0 {
		return Dim("No plans yet. Create one with `examplan plan new`.") + "\n"
	}

	headers := []string{"ID", "NAME", "START", "EXAM", "WEEKLY", "STATUS"}
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		status := StyleGreen.Render(string(p.Status))
		if p.Status == domain.PlanArchived {
			status = Dim(string(p.Status))
		}
		rows = append(rows, []string{
			Bold(p.DisplayID()),
			StyleFg.Render(p.Name),
			StyleFg.Render(p.StartDate.Format("2006-01-02")),
			StyleFg.Render(p.ExamDate.Format("2006-01-02")),
			StyleBlue.Render(formatWeeklyTotal(p.Weekly)),
			status,
		})
	}
	return RenderTable(headers, rows)
}

// FormatPlanDetail renders one plan with its weekly pattern and topics.
func FormatPlanDetail(p *domain.StudyPlan, topics []*domain.Topic) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("%s [%s]", p.Name, p.DisplayID())))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s → %s\n",
		Dim("Window"),
		StyleFg.Render(p.StartDate.Format("2006-01-02")),
		StyleFg.Render(p.ExamDate.Format("2006-01-02"))))
	b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Weekly"), formatWeeklyPattern(p.Weekly)))

	if len(p.Rules) > 0 {
		names := make([]string, len(p.Rules))
		for i, r := range p.Rules {
			names[i] = r.Name
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Rules"), StylePurple.Render(strings.Join(names, ", "))))
	}

	if len(topics) == 0 {
		b.WriteString("\n" + Dim("No topics yet. Add some with `examplan topic add`.") + "\n")
		return b.String()
	}

	headers := []string{"TOPIC", "BLOCK", "TIER", "HOURS", "PARTS"}
	rows := make([][]string, 0, len(topics))
	for _, topic := range topics {
		rows = append(rows, []string{
			Bold(topic.Title),
			StyleFg.Render(topic.Block),
			tierStyle(topic.Complexity).Render(string(topic.Complexity)),
			StyleFg.Render(fmt.Sprintf("%.1f", float64(topic.PlannedMin)/60)),
			Dim(fmt.Sprintf("%d", topic.PartCount())),
		})
	}
	b.WriteString("\n")
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

func formatWeeklyTotal(w domain.WeeklyAvailability) string {
	return fmt.Sprintf("%.1fh", float64(w.TotalWeekMin())/60)
}

func formatWeeklyPattern(w domain.WeeklyAvailability) string {
	parts := make([]string, 0, 7)
	for i, minutes := range w {
		if minutes == 0 {
			continue
		}
		parts = append(parts, StyleBlue.Render(fmt.Sprintf("%s %dm", weekdayNames[i], minutes)))
	}
	if len(parts) == 0 {
		return Dim("none")
	}
	return strings.Join(parts, Dim(" · "))
}

func tierStyle(tier domain.ComplexityTier) lipgloss.Style {
	switch tier {
	case domain.TierHigh:
		return StyleRed
	case domain.TierMedium:
		return StyleYellow
	case domain.TierLow:
		return StyleGreen
	default:
		return StyleFg
	}
}
