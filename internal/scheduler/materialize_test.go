package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, start, exam time.Time, avail domain.WeeklyAvailability, buffer int) []domain.StudyDay {
	t.Helper()
	window, err := BuildWindow(start, exam, avail, buffer)
	require.NoError(t, err)
	return window
}

func topicsByID(topics ...*domain.Topic) map[string]*domain.Topic {
	m := make(map[string]*domain.Topic, len(topics))
	for _, topic := range topics {
		m[topic.ID] = topic
	}
	return m
}

func assertCapacityRespected(t *testing.T, sessions []domain.StudySession, window []domain.StudyDay) {
	t.Helper()
	budget := make(map[string]int)
	for _, day := range window {
		budget[day.Date.Format("2006-01-02")] = day.BudgetMin
	}
	used := make(map[string]int)
	for _, s := range sessions {
		used[s.Date.Format("2006-01-02")] += s.Minutes
	}
	for day, minutes := range used {
		assert.LessOrEqual(t, minutes, budget[day], "day %s over budget", day)
	}
}

func TestMaterialize_RespectsDailyBudget(t *testing.T) {
	topic := mediumTopic("t1", "Statistics", 480)
	topics := weighted(topic)
	window := mustWindow(t, date(2025, 1, 6), date(2025, 3, 1), weekdaysOnly, 0)

	entries := BuildRotation(topics, WeeksInWindow(window), DefaultRotationConfig())
	result := Materialize("plan-1", entries, window, topicsByID(topic), DefaultMaterializeConfig())

	require.NotEmpty(t, result.Sessions)
	assertCapacityRespected(t, result.Sessions, window)
	assert.Empty(t, result.UnplacedMin)
}

func TestMaterialize_SplitsOversizedEntries(t *testing.T) {
	topic := mediumTopic("t1", "Statistics", 480)
	window := mustWindow(t, date(2025, 1, 6), date(2025, 2, 10), weekdaysOnly, 0)

	entries := []domain.RotationEntry{
		{TopicID: "t1", Kind: domain.KindStudy, Minutes: 480, WeekIndex: 0},
	}
	result := Materialize("plan-1", entries, window, topicsByID(topic), DefaultMaterializeConfig())

	require.Greater(t, len(result.Sessions), 1, "480 minutes cannot fit one 120-minute day")
	total := 0
	for _, s := range result.Sessions {
		assert.Greater(t, s.Minutes, 0, "no zero-minute fragments")
		total += s.Minutes
	}
	assert.Equal(t, 480, total, "split chunks sum to the entry's minutes")
	assertCapacityRespected(t, result.Sessions, window)
}

func TestMaterialize_CarriesForwardWhenWeekFull(t *testing.T) {
	topic := mediumTopic("t1", "Statistics", 120)
	window := mustWindow(t, date(2025, 1, 6), date(2025, 1, 27), weekdaysOnly, 0)

	// Week 0 holds 600 minutes; the sixth 120-minute entry must land in week 1.
	var entries []domain.RotationEntry
	for i := 0; i < 6; i++ {
		entries = append(entries, domain.RotationEntry{
			TopicID: "t1", Kind: domain.KindReview, ReviewStage: i + 1,
			Minutes: 120, WeekIndex: 0, Ordinal: i,
		})
	}
	result := Materialize("plan-1", entries, window, topicsByID(topic), DefaultMaterializeConfig())

	require.Empty(t, result.UnplacedMin, "overflow carries forward, never dropped")
	week1Start := date(2025, 1, 13)
	carried := 0
	for _, s := range result.Sessions {
		if !s.Date.Before(week1Start) {
			carried++
		}
	}
	assert.Greater(t, carried, 0)
	assertCapacityRespected(t, result.Sessions, window)
}

func TestMaterialize_ReportsUnplacedWhenWindowExhausted(t *testing.T) {
	topic := mediumTopic("t1", "Statistics", 2000)
	window := mustWindow(t, date(2025, 1, 6), date(2025, 1, 13), weekdaysOnly, 0)

	entries := []domain.RotationEntry{
		{TopicID: "t1", Kind: domain.KindStudy, Minutes: 2000, WeekIndex: 0},
	}
	result := Materialize("plan-1", entries, window, topicsByID(topic), DefaultMaterializeConfig())

	assert.Empty(t, result.Sessions, "partial placements roll back")
	assert.Equal(t, 2000, result.UnplacedMin["t1"])
}

func TestMaterialize_PartOrderGate(t *testing.T) {
	topic := mediumTopic("t1", "Civil Procedure", 480)
	topic.Parts = []domain.TopicPart{
		{Title: "Jurisdiction", Fraction: 0.5},
		{Title: "Appeals", Fraction: 0.5},
	}
	window := mustWindow(t, date(2025, 1, 6), date(2025, 3, 1), weekdaysOnly, 0)

	p0, p1 := 0, 1
	entries := []domain.RotationEntry{
		{TopicID: "t1", PartIndex: &p0, Kind: domain.KindStudy, Minutes: 240, WeekIndex: 0, Ordinal: 0},
		// Part 1 targets the same week; it must still land on or after the
		// last chunk of part 0's study.
		{TopicID: "t1", PartIndex: &p1, Kind: domain.KindStudy, Minutes: 240, WeekIndex: 0, Ordinal: 1},
		{TopicID: "t1", PartIndex: &p1, Kind: domain.KindReview, ReviewStage: 1, Minutes: 60, WeekIndex: 1, Ordinal: 0},
	}
	result := Materialize("plan-1", entries, window, topicsByID(topic), DefaultMaterializeConfig())
	require.Empty(t, result.UnplacedMin)

	var lastPart0Study, firstPart1 time.Time
	for _, s := range result.Sessions {
		if s.PartIndex == nil {
			continue
		}
		if *s.PartIndex == 0 && s.Kind == domain.KindStudy && s.Date.After(lastPart0Study) {
			lastPart0Study = s.Date
		}
		if *s.PartIndex == 1 && (firstPart1.IsZero() || s.Date.Before(firstPart1)) {
			firstPart1 = s.Date
		}
	}
	require.False(t, lastPart0Study.IsZero())
	require.False(t, firstPart1.IsZero())
	assert.False(t, firstPart1.Before(lastPart0Study),
		"part 2 sessions never precede part 1's study placement")
}

func TestMaterialize_Labels(t *testing.T) {
	topic := mediumTopic("t1", "Constitutional Law", 480)
	topic.Parts = []domain.TopicPart{{Title: "Fundamental Rights", Fraction: 1.0}}
	window := mustWindow(t, date(2025, 1, 6), date(2025, 2, 10), weekdaysOnly, 0)

	p0 := 0
	entries := []domain.RotationEntry{
		{TopicID: "t1", PartIndex: &p0, Kind: domain.KindStudy, Minutes: 60, WeekIndex: 0, Ordinal: 0},
		{TopicID: "t1", PartIndex: &p0, Kind: domain.KindReview, ReviewStage: 2, Minutes: 30, WeekIndex: 1, Ordinal: 0},
		{TopicID: "t1", Kind: domain.KindTest, TestIndex: 1, Minutes: 30, WeekIndex: 1, Ordinal: 1},
		{Kind: domain.KindSimulation, Minutes: 120, WeekIndex: 2, Ordinal: 0},
	}
	result := Materialize("plan-1", entries, window, topicsByID(topic), DefaultMaterializeConfig())
	require.Len(t, result.Sessions, 4)

	labels := make(map[domain.SessionKind]string)
	for _, s := range result.Sessions {
		labels[s.Kind] = s.Label
	}
	assert.Equal(t, "Constitutional Law / Fundamental Rights (study)", labels[domain.KindStudy])
	assert.Equal(t, "Constitutional Law / Fundamental Rights (review 2)", labels[domain.KindReview])
	assert.Equal(t, "Constitutional Law (self-test 1)", labels[domain.KindTest])
	assert.Equal(t, "Full mock exam simulation", labels[domain.KindSimulation])
}

func TestMaterialize_SessionsSortedByDate(t *testing.T) {
	topic := mediumTopic("t1", "Statistics", 480)
	topics := weighted(topic)
	window := mustWindow(t, date(2025, 1, 6), date(2025, 3, 1), weekdaysOnly, 0)

	entries := BuildRotation(topics, WeeksInWindow(window), DefaultRotationConfig())
	result := Materialize("plan-1", entries, window, topicsByID(topic), DefaultMaterializeConfig())

	for i := 1; i < len(result.Sessions); i++ {
		assert.False(t, result.Sessions[i].Date.Before(result.Sessions[i-1].Date))
	}
}

func TestMaterialize_EmptyInputs(t *testing.T) {
	result := Materialize("plan-1", nil, nil, nil, DefaultMaterializeConfig())
	assert.Empty(t, result.Sessions)
}
