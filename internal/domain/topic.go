package domain

import (
	"fmt"
	"math"
	"time"
)

type Topic struct {
	ID         string
	PlanID     string
	Title      string
	Block      string
	Complexity ComplexityTier
	Priority   float64
	PlannedMin int
	Parts      []TopicPart
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TopicPart is a declared sub-division of a topic, studied sequentially.
// Fraction is the share of the topic's planned minutes the part consumes.
type TopicPart struct {
	Title    string
	Fraction float64
}

// Validate checks topic invariants before the topic enters a generation run.
func (t *Topic) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("topic title is required")
	}
	if !ValidComplexityTiers[string(t.Complexity)] {
		return fmt.Errorf("topic %q: invalid complexity %q (expected low, medium, or high)", t.Title, t.Complexity)
	}
	if t.PlannedMin <= 0 {
		return fmt.Errorf("topic %q: planned minutes must be > 0, got %d", t.Title, t.PlannedMin)
	}
	if t.Priority <= 0 {
		return fmt.Errorf("topic %q: priority must be > 0, got %v", t.Title, t.Priority)
	}
	if len(t.Parts) > 0 {
		var sum float64
		for i, p := range t.Parts {
			if p.Title == "" {
				return fmt.Errorf("topic %q: part %d has no title", t.Title, i+1)
			}
			if p.Fraction <= 0 {
				return fmt.Errorf("topic %q: part %q fraction must be > 0", t.Title, p.Title)
			}
			sum += p.Fraction
		}
		if math.Abs(sum-1.0) > 0.01 {
			return fmt.Errorf("topic %q: part fractions must sum to 1.0, got %.2f", t.Title, sum)
		}
	}
	return nil
}

// PartMinutes returns the planned minutes for the given part index.
// For topics without declared parts, index 0 covers the whole topic.
func (t *Topic) PartMinutes(index int) int {
	if len(t.Parts) == 0 {
		return t.PlannedMin
	}
	if index < 0 || index >= len(t.Parts) {
		return 0
	}
	return int(math.Round(float64(t.PlannedMin) * t.Parts[index].Fraction))
}

// PartCount returns the number of sequential study units the topic produces.
func (t *Topic) PartCount() int {
	if len(t.Parts) == 0 {
		return 1
	}
	return len(t.Parts)
}
