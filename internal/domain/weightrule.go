package domain

// WeightRule is a plan-scoped exception that overrides the tier-based
// emphasis multipliers for topics whose normalized title contains Match.
// Rules are evaluated in order; the first match wins.
type WeightRule struct {
	Name       string  `json:"name"`
	Match      string  `json:"match"`
	ReviewMult float64 `json:"review_mult"`
	TestMult   float64 `json:"test_mult"`
}
