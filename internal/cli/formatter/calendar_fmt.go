package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/examplan/internal/domain"
)

// FormatCalendar renders sessions as a date-grouped table. Sessions must
// already be sorted by date; consecutive rows on the same day leave the
// date column blank.
func FormatCalendar(sessions []*domain.StudySession) string {
	if len(sessions) == 0 {
		return Dim("No sessions scheduled.") + "\n"
	}

	headers := []string{"DATE", "DAY", "ID", "KIND", "MIN", "SESSION", "STATUS"}
	rows := make([][]string, 0, len(sessions))

	prevDate := ""
	for _, s := range sessions {
		date := s.Date.Format("2006-01-02")
		dateCell, dayCell := Bold(date), StyleFg.Render(s.Date.Format("Mon"))
		if date == prevDate {
			dateCell, dayCell = "", ""
		}
		prevDate = date

		rows = append(rows, []string{
			dateCell,
			dayCell,
			Dim(shortID(s.ID)),
			KindStyle(s.Kind).Render(string(s.Kind)),
			StyleFg.Render(fmt.Sprintf("%d", s.Minutes)),
			StyleFg.Render(s.Label),
			SessionStatusStyle(s.Status).Render(string(s.Status)),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))

	total := 0
	for _, s := range sessions {
		total += s.Minutes
	}
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d sessions, %dh%02dm planned", len(sessions), total/60, total%60)))
	b.WriteString("\n")
	return b.String()
}

// FilterWeek keeps the sessions falling in the Nth ISO-style week of the
// calendar, counting from week 1 at the first session's Monday.
func FilterWeek(sessions []*domain.StudySession, week int) []*domain.StudySession {
	if len(sessions) == 0 || week < 1 {
		return nil
	}
	first := sessions[0].Date
	offset := (int(first.Weekday()) + 6) % 7
	weekStart := first.AddDate(0, 0, -offset).AddDate(0, 0, (week-1)*7)
	weekEnd := weekStart.AddDate(0, 0, 7)

	var out []*domain.StudySession
	for _, s := range sessions {
		if !s.Date.Before(weekStart) && s.Date.Before(weekEnd) {
			out = append(out, s)
		}
	}
	return out
}
