package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/examplan/internal/domain"
)

// MaterializeConfig tunes how abstract entries bind to calendar days.
type MaterializeConfig struct {
	SplitFloorMin int // smallest fragment a split may produce
}

// DefaultMaterializeConfig returns the materializer tuning used when the
// caller does not override it.
func DefaultMaterializeConfig() MaterializeConfig {
	return MaterializeConfig{SplitFloorMin: 20}
}

// MaterializeResult carries the emitted sessions plus any entries (or entry
// remainders, in minutes) that found no capacity anywhere in the window.
// Callers must report unplaced minutes (see UnplacedWarnings), never
// silently discard them.
type MaterializeResult struct {
	Sessions    []domain.StudySession
	UnplacedMin map[string]int // topicID -> minutes that found no day
}

// Materialize walks the balanced rotation in (week, ordinal) order and binds
// every entry to concrete study days, respecting each day's remaining
// budget. Entries larger than any single day's remaining budget split
// across consecutive days; entries that do not fit in their own week carry
// forward to later weeks. Sessions of a later topic part are never dated
// before the previous part's study sessions have all been placed.
func Materialize(planID string, entries []domain.RotationEntry, window []domain.StudyDay, topics map[string]*domain.Topic, cfg MaterializeConfig) MaterializeResult {
	result := MaterializeResult{UnplacedMin: make(map[string]int)}
	if len(window) == 0 || len(entries) == 0 {
		return result
	}

	ordered := make([]domain.RotationEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].WeekIndex != ordered[j].WeekIndex {
			return ordered[i].WeekIndex < ordered[j].WeekIndex
		}
		return ordered[i].Ordinal < ordered[j].Ordinal
	})

	remaining := make([]int, len(window))
	for i, day := range window {
		remaining[i] = day.BudgetMin
	}

	windowStart := window[0].Date
	weeks := WeeksInWindow(window)
	weekSpans := buildWeekSpans(window, windowStart, weeks)

	// partGate[topicID] is the date of the last placed study chunk of the
	// topic's most recent part; later parts may not schedule before it.
	partGate := make(map[string]time.Time)

	for _, entry := range ordered {
		gate := partGate[entry.TopicID]
		placed, lastDate := placeEntry(planID, entry, window, remaining, weekSpans, gate, topics, cfg, &result)
		if !placed {
			result.UnplacedMin[entry.TopicID] += entry.Minutes
			continue
		}
		if entry.Kind == domain.KindStudy {
			partGate[entry.TopicID] = lastDate
		}
	}

	sort.SliceStable(result.Sessions, func(i, j int) bool {
		return result.Sessions[i].Date.Before(result.Sessions[j].Date)
	})
	return result
}

// placeEntry tries to place one entry starting at its target week, carrying
// forward through later weeks. Returns whether the full entry was placed and
// the date of its last chunk.
func placeEntry(
	planID string,
	entry domain.RotationEntry,
	window []domain.StudyDay,
	remaining []int,
	weekSpans [][2]int,
	gate time.Time,
	topics map[string]*domain.Topic,
	cfg MaterializeConfig,
	result *MaterializeResult,
) (bool, time.Time) {
	startWeek := entry.WeekIndex
	if startWeek >= len(weekSpans) {
		startWeek = len(weekSpans) - 1
	}

	// First-fit pass: a single day that takes the whole entry.
	for week := startWeek; week < len(weekSpans); week++ {
		lo, hi := weekSpans[week][0], weekSpans[week][1]
		for i := lo; i < hi; i++ {
			if window[i].Date.Before(gate) || remaining[i] < entry.Minutes {
				continue
			}
			remaining[i] -= entry.Minutes
			result.Sessions = append(result.Sessions, newSession(planID, entry, window[i].Date, entry.Minutes, topics))
			return true, window[i].Date
		}
	}

	// Split pass: partition across consecutive days, never below the floor
	// unless the fragment finishes the entry.
	left := entry.Minutes
	var lastDate time.Time
	var chunks []domain.StudySession
	for week := startWeek; week < len(weekSpans) && left > 0; week++ {
		lo, hi := weekSpans[week][0], weekSpans[week][1]
		for i := lo; i < hi && left > 0; i++ {
			if window[i].Date.Before(gate) || remaining[i] <= 0 {
				continue
			}
			take := remaining[i]
			if take > left {
				take = left
			}
			if take < cfg.SplitFloorMin && take < left {
				continue
			}
			remaining[i] -= take
			left -= take
			lastDate = window[i].Date
			chunks = append(chunks, newSession(planID, entry, window[i].Date, take, topics))
		}
	}

	if left > 0 {
		// Roll back: a partially placed entry is treated as unplaced so the
		// validator sees the true shortfall.
		for _, c := range chunks {
			for i := range window {
				if window[i].Date.Equal(c.Date) {
					remaining[i] += c.Minutes
					break
				}
			}
		}
		return false, time.Time{}
	}

	result.Sessions = append(result.Sessions, chunks...)
	return true, lastDate
}

func newSession(planID string, entry domain.RotationEntry, date time.Time, minutes int, topics map[string]*domain.Topic) domain.StudySession {
	return domain.StudySession{
		PlanID:      planID,
		TopicID:     entry.TopicID,
		PartIndex:   entry.PartIndex,
		Date:        date,
		Minutes:     minutes,
		Kind:        entry.Kind,
		ReviewStage: entry.ReviewStage,
		Status:      domain.SessionPending,
		Label:       sessionLabel(entry, topics),
	}
}

// sessionLabel builds the display label identifying topic, part, and kind.
func sessionLabel(entry domain.RotationEntry, topics map[string]*domain.Topic) string {
	if entry.Kind == domain.KindSimulation {
		return "Full mock exam simulation"
	}

	title := entry.TopicID
	var partTitle string
	if topic, ok := topics[entry.TopicID]; ok {
		title = topic.Title
		if entry.PartIndex != nil && *entry.PartIndex < len(topic.Parts) {
			partTitle = topic.Parts[*entry.PartIndex].Title
		}
	}

	var kind string
	switch entry.Kind {
	case domain.KindStudy:
		kind = "study"
	case domain.KindReview:
		kind = fmt.Sprintf("review %d", entry.ReviewStage)
	case domain.KindTest:
		kind = fmt.Sprintf("self-test %d", entry.TestIndex)
	}

	if partTitle != "" {
		return fmt.Sprintf("%s / %s (%s)", title, partTitle, kind)
	}
	return fmt.Sprintf("%s (%s)", title, kind)
}

// buildWeekSpans maps each week index to the [lo, hi) range of window days
// falling inside that 7-day span from the window's start date.
func buildWeekSpans(window []domain.StudyDay, windowStart time.Time, weeks int) [][2]int {
	spans := make([][2]int, weeks)
	for w := 0; w < weeks; w++ {
		spans[w] = [2]int{len(window), len(window)}
	}
	for i, day := range window {
		w := int(day.Date.Sub(windowStart).Hours()/24) / 7
		if w >= weeks {
			w = weeks - 1
		}
		if i < spans[w][0] {
			spans[w][0] = i
		}
		if i+1 > spans[w][1] {
			spans[w][1] = i + 1
		}
	}
	return spans
}
