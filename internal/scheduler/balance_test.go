package scheduler

import (
	"testing"

	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tieredTopic(id, title string, tier domain.ComplexityTier, block string) *domain.Topic {
	return &domain.Topic{
		ID:         id,
		PlanID:     "plan-1",
		Title:      title,
		Block:      block,
		Complexity: tier,
		Priority:   1,
		PlannedMin: 480,
	}
}

func sessionsPerTopic(entries []domain.RotationEntry, topicIDs []string) float64 {
	count := 0
	for _, e := range entries {
		for _, id := range topicIDs {
			if e.TopicID == id {
				count++
			}
		}
	}
	return float64(count) / float64(len(topicIDs))
}

func TestBalance_TierRatioWithinTolerance(t *testing.T) {
	high := tieredTopic("h1", "Quantum Mechanics", domain.TierHigh, "Science")
	low := tieredTopic("l1", "Study Skills", domain.TierLow, "Skills")

	topics := weighted(high, low)
	entries := BuildRotation(topics, 12, DefaultRotationConfig())

	cfg := DefaultBalanceConfig()
	balanced, _ := Balance(entries, topics, 12, cfg)

	highPer := sessionsPerTopic(balanced, []string{"h1"})
	lowPer := sessionsPerTopic(balanced, []string{"l1"})
	require.Greater(t, lowPer, 0.0)
	assert.LessOrEqual(t, highPer/lowPer, cfg.Tolerance,
		"high=%v low=%v", highPer, lowPer)
}

func TestBalance_NeverTrimsStudyEntries(t *testing.T) {
	high := tieredTopic("h1", "Quantum Mechanics", domain.TierHigh, "Science")
	low := tieredTopic("l1", "Study Skills", domain.TierLow, "Skills")

	topics := weighted(high, low)
	entries := BuildRotation(topics, 12, DefaultRotationConfig())

	studiesBefore := 0
	for _, e := range entries {
		if e.Kind == domain.KindStudy {
			studiesBefore++
		}
	}

	balanced, _ := Balance(entries, topics, 12, BalanceConfig{Tolerance: 1.01, MaxAdjust: 64, TopUpMin: 30})

	studiesAfter := 0
	for _, e := range balanced {
		if e.Kind == domain.KindStudy {
			studiesAfter++
		}
	}
	assert.Equal(t, studiesBefore, studiesAfter)
}

func TestBalance_ExceptionTopicsExemptFromCorrection(t *testing.T) {
	boosted := tieredTopic("e1", "Essay Writing", domain.TierMedium, "Language")
	plain := tieredTopic("p1", "Geometry", domain.TierMedium, "Math")

	topics := weighted(boosted, plain)
	require.Equal(t, "essay-writing-boost", topics[0].Weights.Rule)

	entries := BuildRotation(topics, 12, DefaultRotationConfig())
	boostedBefore := len(entriesFor(entries, "e1"))

	balanced, _ := Balance(entries, topics, 12, DefaultBalanceConfig())
	boostedAfter := len(entriesFor(balanced, "e1"))

	assert.Equal(t, boostedBefore, boostedAfter,
		"deliberately boosted topics keep their extra sessions")
}

func TestBalance_ExceptionImbalanceIsWarnedNotHidden(t *testing.T) {
	boosted := tieredTopic("e1", "Essay Writing", domain.TierHigh, "Language")
	plain := tieredTopic("p1", "Geometry", domain.TierLow, "Math")

	topics := weighted(boosted, plain)
	entries := BuildRotation(topics, 12, DefaultRotationConfig())

	_, warnings := Balance(entries, topics, 12, DefaultBalanceConfig())
	assert.NotEmpty(t, warnings, "imbalance caused by exception topics must be logged")
}

func TestBalance_EmptyEntries(t *testing.T) {
	topics := weighted(tieredTopic("t1", "X", domain.TierMedium, "B"))
	balanced, warnings := Balance(nil, topics, 8, DefaultBalanceConfig())
	assert.Nil(t, balanced)
	assert.Empty(t, warnings)
}

func TestBalance_SingleGroupUntouched(t *testing.T) {
	a := tieredTopic("a", "Algebra", domain.TierMedium, "Math")
	b := tieredTopic("b", "Geometry", domain.TierMedium, "Math")

	topics := weighted(a, b)
	entries := BuildRotation(topics, 8, DefaultRotationConfig())

	balanced, warnings := Balance(entries, topics, 8, DefaultBalanceConfig())
	assert.Len(t, balanced, len(entries), "same tier and block: nothing to balance")
	assert.Empty(t, warnings)
}

func TestBalance_Deterministic(t *testing.T) {
	topics := weighted(
		tieredTopic("h1", "Quantum Mechanics", domain.TierHigh, "Science"),
		tieredTopic("m1", "Statistics", domain.TierMedium, "Math"),
		tieredTopic("l1", "Study Skills", domain.TierLow, "Skills"),
	)
	entries := BuildRotation(topics, 10, DefaultRotationConfig())

	first, warnFirst := Balance(entries, topics, 10, DefaultBalanceConfig())
	second, warnSecond := Balance(entries, topics, 10, DefaultBalanceConfig())
	assert.Equal(t, first, second)
	assert.Equal(t, warnFirst, warnSecond)
}
