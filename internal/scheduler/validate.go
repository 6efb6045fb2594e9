package scheduler

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/examplan/internal/domain"
)

// ValidationCode identifies the kind of post-materialization defect found.
type ValidationCode string

const (
	CodePartialCoverage ValidationCode = "PARTIAL_COVERAGE"
	CodeTopicNotCovered ValidationCode = "TOPIC_NOT_COVERED"
	CodePartNotCovered  ValidationCode = "PART_NOT_COVERED"
	CodeDayOverBudget   ValidationCode = "DAY_OVER_BUDGET"
	CodePartOutOfOrder  ValidationCode = "PART_OUT_OF_ORDER"
)

// ValidationIssue is one diagnosable defect in a materialized schedule.
type ValidationIssue struct {
	Code    ValidationCode
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Code, v.Message)
}

// ValidateSchedule checks a materialized session list against the calendar
// window: span coverage above the threshold, at least one session per topic
// and per declared part (in ascending date order), and no day scheduled past
// its budget. Violations are returned as diagnostics naming the topic or
// day at fault.
func ValidateSchedule(
	sessions []domain.StudySession,
	window []domain.StudyDay,
	topics []*domain.Topic,
	coverageThreshold float64,
) []ValidationIssue {
	var issues []ValidationIssue

	if len(sessions) == 0 {
		issues = append(issues, ValidationIssue{
			Code:    CodePartialCoverage,
			Message: "no sessions were produced",
		})
		return issues
	}

	issues = append(issues, checkCoverage(sessions, window, coverageThreshold)...)
	issues = append(issues, checkCompleteness(sessions, topics)...)
	issues = append(issues, checkCapacity(sessions, window)...)
	issues = append(issues, checkPartOrder(sessions, topics)...)
	return issues
}

// UnplacedWarnings converts a materializer's unplaced-minute map into
// warning strings naming each shorted topic, sorted for determinism. Work
// dropped for lack of capacity must reach the run diagnostics.
func UnplacedWarnings(unplaced map[string]int, topics map[string]*domain.Topic) []string {
	if len(unplaced) == 0 {
		return nil
	}

	var warnings []string
	for id, minutes := range unplaced {
		name := "full-scope simulation"
		if topic, ok := topics[id]; ok {
			name = fmt.Sprintf("topic %q", topic.Title)
		} else if id != "" {
			name = fmt.Sprintf("topic %s", id)
		}
		warnings = append(warnings, fmt.Sprintf("%s: %d planned minutes found no remaining capacity in the window", name, minutes))
	}
	sort.Strings(warnings)
	return warnings
}

// CoverageRatio returns the produced session span divided by the window
// span. A single-day window counts as fully covered.
func CoverageRatio(sessions []domain.StudySession, window []domain.StudyDay) float64 {
	if len(sessions) == 0 || len(window) == 0 {
		return 0
	}
	windowSpan := window[len(window)-1].Date.Sub(window[0].Date).Hours() / 24
	if windowSpan <= 0 {
		return 1
	}

	first, last := sessions[0].Date, sessions[0].Date
	for _, s := range sessions[1:] {
		if s.Date.Before(first) {
			first = s.Date
		}
		if s.Date.After(last) {
			last = s.Date
		}
	}
	return last.Sub(first).Hours() / 24 / windowSpan
}

func checkCoverage(sessions []domain.StudySession, window []domain.StudyDay, threshold float64) []ValidationIssue {
	ratio := CoverageRatio(sessions, window)
	if ratio >= threshold {
		return nil
	}
	return []ValidationIssue{{
		Code: CodePartialCoverage,
		Message: fmt.Sprintf("sessions span %.0f%% of the calendar window, below the %.0f%% threshold",
			ratio*100, threshold*100),
	}}
}

func checkCompleteness(sessions []domain.StudySession, topics []*domain.Topic) []ValidationIssue {
	covered := make(map[string]map[int]bool)
	for _, s := range sessions {
		if s.TopicID == "" {
			continue
		}
		if covered[s.TopicID] == nil {
			covered[s.TopicID] = make(map[int]bool)
		}
		part := 0
		if s.PartIndex != nil {
			part = *s.PartIndex
		}
		covered[s.TopicID][part] = true
	}

	var issues []ValidationIssue
	for _, topic := range topics {
		parts, ok := covered[topic.ID]
		if !ok {
			issues = append(issues, ValidationIssue{
				Code:    CodeTopicNotCovered,
				Message: fmt.Sprintf("topic %q has no sessions", topic.Title),
			})
			continue
		}
		for i, p := range topic.Parts {
			if !parts[i] {
				issues = append(issues, ValidationIssue{
					Code:    CodePartNotCovered,
					Message: fmt.Sprintf("topic %q part %q has no sessions", topic.Title, p.Title),
				})
			}
		}
	}
	return issues
}

func checkCapacity(sessions []domain.StudySession, window []domain.StudyDay) []ValidationIssue {
	budget := make(map[string]int, len(window))
	for _, day := range window {
		budget[day.Date.Format("2006-01-02")] = day.BudgetMin
	}

	scheduled := make(map[string]int)
	for _, s := range sessions {
		scheduled[s.Date.Format("2006-01-02")] += s.Minutes
	}

	var days []string
	for day := range scheduled {
		days = append(days, day)
	}
	sort.Strings(days)

	var issues []ValidationIssue
	for _, day := range days {
		if scheduled[day] > budget[day] {
			issues = append(issues, ValidationIssue{
				Code: CodeDayOverBudget,
				Message: fmt.Sprintf("day %s has %d scheduled minutes against a %d minute budget",
					day, scheduled[day], budget[day]),
			})
		}
	}
	return issues
}

func checkPartOrder(sessions []domain.StudySession, topics []*domain.Topic) []ValidationIssue {
	byID := make(map[string]*domain.Topic, len(topics))
	for _, t := range topics {
		byID[t.ID] = t
	}

	// Earliest study date per topic part.
	firstStudy := make(map[string]map[int]int64)
	for _, s := range sessions {
		if s.Kind != domain.KindStudy || s.PartIndex == nil {
			continue
		}
		if firstStudy[s.TopicID] == nil {
			firstStudy[s.TopicID] = make(map[int]int64)
		}
		ts := s.Date.Unix()
		if cur, ok := firstStudy[s.TopicID][*s.PartIndex]; !ok || ts < cur {
			firstStudy[s.TopicID][*s.PartIndex] = ts
		}
	}

	var issues []ValidationIssue
	for topicID, parts := range firstStudy {
		topic, ok := byID[topicID]
		if !ok {
			continue
		}
		for i := 1; i < topic.PartCount(); i++ {
			prev, okPrev := parts[i-1]
			cur, okCur := parts[i]
			if okPrev && okCur && cur < prev {
				issues = append(issues, ValidationIssue{
					Code: CodePartOutOfOrder,
					Message: fmt.Sprintf("topic %q part %d begins before part %d",
						topic.Title, i+1, i),
				})
			}
		}
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].Message < issues[j].Message })
	return issues
}
