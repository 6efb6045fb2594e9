package generation

import (
	"fmt"
	"time"

	"github.com/alexanderramin/examplan/internal/app"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/scheduler"
)

const dateLayout = "2006-01-02"

// Input is everything one generation run reads. The engine treats it as
// immutable for the duration of the run.
type Input struct {
	PlanID    string
	StartDate time.Time
	ExamDate  time.Time
	Weekly    domain.WeeklyAvailability
	Topics    []*domain.Topic
}

// Result is a successful run's output: the full session list plus the
// diagnostics recorded on the generation run.
type Result struct {
	Sessions    []domain.StudySession
	Diagnostics domain.RunDiagnostics
}

// Generate runs the full allocation pipeline: window → weights → rotation →
// balance → materialize → validate. On a partial-coverage failure it retries
// once with relaxed balance tolerance before giving up. Identical inputs
// always yield an identical session list.
func Generate(input Input, cfg Config) (*Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	window, err := scheduler.BuildWindow(input.StartDate, input.ExamDate, input.Weekly, cfg.BufferDays)
	if err != nil {
		return nil, &app.GenerationError{
			Code:    app.ErrNoAvailableDays,
			Message: fmt.Sprintf("no usable study days between %s and %s with a %d-day buffer", input.StartDate.Format(dateLayout), input.ExamDate.Format(dateLayout), cfg.BufferDays),
		}
	}

	weighted := make([]scheduler.WeightedTopic, len(input.Topics))
	for i, topic := range input.Topics {
		weighted[i] = scheduler.WeightedTopic{
			Topic:   topic,
			Weights: scheduler.ResolveWeights(topic.Title, topic.Complexity, cfg.Weights),
		}
	}

	result, issues := attempt(input, weighted, window, cfg, cfg.Balance.Tolerance, false)
	if len(issues) > 0 {
		relaxed := cfg.Balance.Tolerance * cfg.RelaxedToleranceFactor
		result, issues = attempt(input, weighted, window, cfg, relaxed, true)
	}
	if len(issues) > 0 {
		return nil, &app.GenerationError{
			Code:    app.ErrPartialCoverage,
			Message: issues[0].String(),
		}
	}
	return result, nil
}

// attempt runs rotation through validation once with the given balance
// tolerance. Fatal validation issues are returned; soft balance warnings are
// recorded on the diagnostics.
func attempt(
	input Input,
	weighted []scheduler.WeightedTopic,
	window []domain.StudyDay,
	cfg Config,
	tolerance float64,
	relaxed bool,
) (*Result, []scheduler.ValidationIssue) {
	weeks := scheduler.WeeksInWindow(window)

	entries := scheduler.BuildRotation(weighted, weeks, cfg.Rotation)

	balanceCfg := cfg.Balance
	balanceCfg.Tolerance = tolerance
	entries, warnings := scheduler.Balance(entries, weighted, weeks, balanceCfg)

	topicsByID := make(map[string]*domain.Topic, len(input.Topics))
	for _, t := range input.Topics {
		topicsByID[t.ID] = t
	}
	materialized := scheduler.Materialize(input.PlanID, entries, window, topicsByID, cfg.Materialize)

	issues := scheduler.ValidateSchedule(materialized.Sessions, window, input.Topics, cfg.CoverageThreshold)
	if len(issues) > 0 {
		return nil, issues
	}

	// Entries the materializer could not place anywhere survive the
	// validator when coverage and completeness still hold; record them so
	// the run never hides dropped work.
	warnings = append(warnings, scheduler.UnplacedWarnings(materialized.UnplacedMin, topicsByID)...)

	return &Result{
		Sessions:    materialized.Sessions,
		Diagnostics: buildDiagnostics(materialized.Sessions, window, topicsByID, warnings, relaxed),
	}, nil
}

func validateInput(input Input) error {
	if len(input.Topics) == 0 {
		return &app.GenerationError{Code: app.ErrNoTopics, Message: "topic catalog is empty"}
	}
	if !input.ExamDate.After(input.StartDate) {
		return &app.GenerationError{
			Code:    app.ErrInvalidInput,
			Message: fmt.Sprintf("exam date %s is not after start date %s", input.ExamDate.Format(dateLayout), input.StartDate.Format(dateLayout)),
		}
	}
	if input.Weekly.IsEmpty() {
		return &app.GenerationError{Code: app.ErrInvalidInput, Message: "weekly availability has no study hours"}
	}
	for _, topic := range input.Topics {
		if err := topic.Validate(); err != nil {
			return &app.GenerationError{Code: app.ErrInvalidInput, Message: err.Error()}
		}
	}
	return nil
}

func buildDiagnostics(
	sessions []domain.StudySession,
	window []domain.StudyDay,
	topics map[string]*domain.Topic,
	warnings []string,
	relaxed bool,
) domain.RunDiagnostics {
	diag := domain.RunDiagnostics{
		CoveragePct:    scheduler.CoverageRatio(sessions, window) * 100,
		SessionCount:   len(sessions),
		CountsByTier:   make(map[string]int),
		CountsByKind:   make(map[string]int),
		StudyDayCount:  len(window),
		Warnings:       warnings,
		RelaxedBalance: relaxed,
	}

	for _, s := range sessions {
		diag.CountsByKind[string(s.Kind)]++
		if topic, ok := topics[s.TopicID]; ok {
			diag.CountsByTier[string(topic.Complexity)]++
		}
	}

	if len(sessions) > 0 {
		diag.FirstSession = sessions[0].Date.Format(dateLayout)
		diag.LastSession = sessions[len(sessions)-1].Date.Format(dateLayout)
	}
	return diag
}

// ParseRequiredDate parses a required YYYY-MM-DD date with field-aware errors.
func ParseRequiredDate(value, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value)
	}
	return t, nil
}

// ParseOptionalDate parses an optional YYYY-MM-DD date with field-aware errors.
func ParseOptionalDate(value *string, field string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := ParseRequiredDate(*value, field)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
