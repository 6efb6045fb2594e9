package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/examplan/internal/contract"
	"github.com/alexanderramin/examplan/internal/domain"
)

const coverageBarWidth = 10

// FormatStatus renders the latest generation run for a plan as a small
// dashboard: run state, coverage, session mix, progress, and warnings.
func FormatStatus(resp *contract.StatusResponse) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("%s [%s]", resp.PlanName, resp.ShortID)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n",
		Dim("Window"),
		StyleFg.Render(fmt.Sprintf("%s → %s",
			resp.StartDate.Format("2006-01-02"),
			resp.ExamDate.Format("2006-01-02")))))

	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		Dim("Run"),
		RunStatusPill(resp.RunStatus),
		Dim(shortID(resp.RunID))))

	switch resp.RunStatus {
	case domain.RunFailed:
		b.WriteString(fmt.Sprintf("%s  %s %s\n",
			Dim("Why"),
			StyleRed.Render(resp.FailureCode),
			StyleFg.Render(resp.FailureMsg)))
	case domain.RunSucceeded:
		diag := resp.Diagnostics
		b.WriteString(fmt.Sprintf("%s  %s %s\n",
			Dim("Coverage"),
			RenderProgress(diag.CoveragePct/100, coverageBarWidth),
			Dim(fmt.Sprintf("%d study days, %s → %s", diag.StudyDayCount, diag.FirstSession, diag.LastSession))))
		b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Mix"), formatKindCounts(diag.CountsByKind)))
		if diag.RelaxedBalance {
			b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Note"),
				StyleYellow.Render("balance tolerance was relaxed to reach full coverage")))
		}
	}

	if resp.SessionCount > 0 {
		done := float64(resp.CompletedCount) / float64(resp.SessionCount)
		b.WriteString(fmt.Sprintf("%s  %s %s\n",
			Dim("Progress"),
			RenderProgress(done, coverageBarWidth),
			Dim(fmt.Sprintf("%d/%d done, %d skipped", resp.CompletedCount, resp.SessionCount, resp.SkippedCount))))
	}

	for _, w := range resp.Diagnostics.Warnings {
		b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Warn"), StyleYellow.Render(w)))
	}

	return b.String()
}

func formatKindCounts(counts map[string]int) string {
	parts := make([]string, 0, 4)
	for _, kind := range []domain.SessionKind{domain.KindStudy, domain.KindReview, domain.KindTest, domain.KindSimulation} {
		if n, ok := counts[string(kind)]; ok {
			parts = append(parts, KindStyle(kind).Render(fmt.Sprintf("%d %s", n, kind)))
		}
	}
	if len(parts) == 0 {
		return Dim("--")
	}
	return strings.Join(parts, Dim(" · "))
}

func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
