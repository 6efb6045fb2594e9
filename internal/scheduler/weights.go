package scheduler

import (
	"strings"

	"github.com/alexanderramin/examplan/internal/domain"
)

// TierMultipliers are the baseline session-count multipliers for a
// complexity tier.
type TierMultipliers struct {
	Review float64
	Test   float64
}

// WeightRule is a named exception that overrides the tier-based multipliers
// when its matcher is found in the normalized topic title. Rules are
// evaluated in order; the first match wins, so more specific matchers must
// come before broader ones.
type WeightRule struct {
	Name       string
	Match      string // lowercase substring matched against the normalized title
	ReviewMult float64
	TestMult   float64
}

// WeightConfig holds the two-layer multiplier table: tier baselines plus an
// ordered exception rule list. Both layers are data, not code branching.
type WeightConfig struct {
	Tiers map[domain.ComplexityTier]TierMultipliers
	Rules []WeightRule
}

// TopicWeights is the resolved multiplier set for one topic.
type TopicWeights struct {
	ReviewMult float64
	TestMult   float64
	Rule       string // name of the matched exception rule, empty if none
}

// DefaultWeightConfig returns the built-in multiplier table. High-value
// topics known to need outsized repetition are tripled; low-value topics are
// cut to roughly a tenth. All values are tunable data.
func DefaultWeightConfig() WeightConfig {
	return WeightConfig{
		Tiers: map[domain.ComplexityTier]TierMultipliers{
			domain.TierLow:    {Review: 0.7, Test: 0.7},
			domain.TierMedium: {Review: 1.0, Test: 1.0},
			domain.TierHigh:   {Review: 1.4, Test: 1.3},
		},
		Rules: []WeightRule{
			{Name: "essay-writing-boost", Match: "essay writing", ReviewMult: 3.0, TestMult: 3.0},
			{Name: "essay-boost", Match: "essay", ReviewMult: 2.5, TestMult: 2.5},
			{Name: "legislation-boost", Match: "legislation", ReviewMult: 3.0, TestMult: 2.0},
			{Name: "case-law-boost", Match: "case law", ReviewMult: 2.0, TestMult: 2.0},
			{Name: "current-affairs-trim", Match: "current affairs", ReviewMult: 0.1, TestMult: 0.1},
			{Name: "orientation-trim", Match: "orientation", ReviewMult: 0.1, TestMult: 0.0},
			{Name: "glossary-trim", Match: "glossary", ReviewMult: 0.1, TestMult: 0.0},
		},
	}
}

// ResolveWeights resolves the multiplier set for a topic title and tier.
// Exception rules take precedence over the tier baseline. Identical
// title + tier always yields identical weights.
func ResolveWeights(title string, tier domain.ComplexityTier, cfg WeightConfig) TopicWeights {
	normalized := normalizeTitle(title)

	for _, rule := range cfg.Rules {
		if strings.Contains(normalized, rule.Match) {
			return TopicWeights{
				ReviewMult: rule.ReviewMult,
				TestMult:   rule.TestMult,
				Rule:       rule.Name,
			}
		}
	}

	base, ok := cfg.Tiers[tier]
	if !ok {
		base = TierMultipliers{Review: 1.0, Test: 1.0}
	}
	return TopicWeights{ReviewMult: base.Review, TestMult: base.Test}
}

func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
