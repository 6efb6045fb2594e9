package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Plan options
type PlanOption func(*domain.StudyPlan)

func WithPlanDates(start, exam time.Time) PlanOption {
	return func(p *domain.StudyPlan) {
		p.StartDate = start
		p.ExamDate = exam
	}
}

func WithWeekly(w domain.WeeklyAvailability) PlanOption {
	return func(p *domain.StudyPlan) {
		p.Weekly = w
	}
}

func WithPlanStatus(s domain.PlanStatus) PlanOption {
	return func(p *domain.StudyPlan) {
		p.Status = s
	}
}

func WithShortID(id string) PlanOption {
	return func(p *domain.StudyPlan) {
		p.ShortID = id
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestPlan(name string, opts ...PlanOption) *domain.StudyPlan {
	now := time.Now().UTC()
	p := &domain.StudyPlan{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		ExamDate:  time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC),
		Weekly:    domain.WeeklyAvailability{120, 120, 120, 120, 120, 0, 0},
		Status:    domain.PlanActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Topic options
type TopicOption func(*domain.Topic)

func WithComplexity(c domain.ComplexityTier) TopicOption {
	return func(t *domain.Topic) {
		t.Complexity = c
	}
}

func WithBlock(b string) TopicOption {
	return func(t *domain.Topic) {
		t.Block = b
	}
}

func WithPriority(p float64) TopicOption {
	return func(t *domain.Topic) {
		t.Priority = p
	}
}

func WithPlannedMin(m int) TopicOption {
	return func(t *domain.Topic) {
		t.PlannedMin = m
	}
}

func WithParts(parts ...domain.TopicPart) TopicOption {
	return func(t *domain.Topic) {
		t.Parts = parts
	}
}

func NewTestTopic(planID, title string, opts ...TopicOption) *domain.Topic {
	now := time.Now().UTC()
	topic := &domain.Topic{
		ID:         uuid.New().String(),
		PlanID:     planID,
		Title:      title,
		Block:      "General",
		Complexity: domain.TierMedium,
		Priority:   1.0,
		PlannedMin: 480,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(topic)
	}
	return topic
}

// Session options
type SessionOption func(*domain.StudySession)

func WithSessionStatus(s domain.SessionStatus) SessionOption {
	return func(sess *domain.StudySession) {
		sess.Status = s
	}
}

func WithSessionKind(k domain.SessionKind) SessionOption {
	return func(sess *domain.StudySession) {
		sess.Kind = k
	}
}

func WithSessionDate(d time.Time) SessionOption {
	return func(sess *domain.StudySession) {
		sess.Date = d
	}
}

func WithPartIndex(i int) SessionOption {
	return func(sess *domain.StudySession) {
		sess.PartIndex = &i
	}
}

func NewTestSession(planID, topicID string, minutes int, opts ...SessionOption) *domain.StudySession {
	now := time.Now().UTC()
	s := &domain.StudySession{
		ID:        uuid.New().String(),
		PlanID:    planID,
		TopicID:   topicID,
		Date:      time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		Minutes:   minutes,
		Kind:      domain.KindStudy,
		Status:    domain.SessionPending,
		Label:     "Test session",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewTestRun builds a running generation run for the given plan.
func NewTestRun(planID string) *domain.GenerationRun {
	return &domain.GenerationRun{
		ID:        uuid.New().String(),
		PlanID:    planID,
		Status:    domain.RunRunning,
		StartedAt: time.Now().UTC(),
	}
}
