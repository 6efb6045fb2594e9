package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calSession(id string, date time.Time, minutes int, label string) *domain.StudySession {
	return &domain.StudySession{
		ID:      id,
		PlanID:  "plan-1",
		TopicID: "t1",
		Date:    date,
		Minutes: minutes,
		Kind:    domain.KindStudy,
		Status:  domain.SessionPending,
		Label:   label,
	}
}

func TestFormatCalendar_GroupsByDate(t *testing.T) {
	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	sessions := []*domain.StudySession{
		calSession("aaaa1111-0000-0000-0000-000000000000", monday, 60, "Algebra (study)"),
		calSession("bbbb2222-0000-0000-0000-000000000000", monday, 30, "Geometry (review 1)"),
		calSession("cccc3333-0000-0000-0000-000000000000", monday.AddDate(0, 0, 1), 45, "Essay Writing (study)"),
	}

	out := FormatCalendar(sessions)
	assert.Contains(t, out, "2025-01-06")
	assert.Contains(t, out, "2025-01-07")
	assert.Contains(t, out, "Algebra (study)")
	assert.Contains(t, out, "aaaa1111")
	assert.Contains(t, out, "3 sessions, 2h15m planned")

	// The repeated date appears once, the second row leaves it blank.
	assert.Equal(t, 1, strings.Count(out, "2025-01-06"))
}

func TestFormatCalendar_Empty(t *testing.T) {
	out := FormatCalendar(nil)
	assert.Contains(t, out, "No sessions scheduled")
}

func TestFilterWeek(t *testing.T) {
	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	sessions := []*domain.StudySession{
		calSession("s1", monday, 60, "a"),
		calSession("s2", monday.AddDate(0, 0, 4), 60, "b"),
		calSession("s3", monday.AddDate(0, 0, 7), 60, "c"),
		calSession("s4", monday.AddDate(0, 0, 15), 60, "d"),
	}

	week1 := FilterWeek(sessions, 1)
	require.Len(t, week1, 2)
	assert.Equal(t, "s1", week1[0].ID)
	assert.Equal(t, "s2", week1[1].ID)

	week2 := FilterWeek(sessions, 2)
	require.Len(t, week2, 1)
	assert.Equal(t, "s3", week2[0].ID)

	assert.Empty(t, FilterWeek(sessions, 4))
	assert.Nil(t, FilterWeek(sessions, 0))
}

func TestFilterWeek_StartsAtFirstSessionsMonday(t *testing.T) {
	wednesday := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	sessions := []*domain.StudySession{
		calSession("s1", wednesday, 60, "a"),
		calSession("s2", wednesday.AddDate(0, 0, 5), 60, "b"), // next Monday
	}

	week1 := FilterWeek(sessions, 1)
	require.Len(t, week1, 1)
	assert.Equal(t, "s1", week1[0].ID)

	week2 := FilterWeek(sessions, 2)
	require.Len(t, week2, 1)
	assert.Equal(t, "s2", week2[0].ID)
}
