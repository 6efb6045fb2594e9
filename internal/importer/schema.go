package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for plan import.
type ImportSchema struct {
	Plan        PlanImport         `json:"plan"`
	Topics      []TopicImport      `json:"topics"`
	WeightRules []WeightRuleImport `json:"weight_rules,omitempty"`
}

// PlanImport defines the plan-level fields in the import file.
type PlanImport struct {
	ShortID     string     `json:"short_id"`
	Name        string     `json:"name"`
	StartDate   string     `json:"start_date"`
	ExamDate    string     `json:"exam_date"`
	WeeklyHours [7]float64 `json:"weekly_hours"` // Monday-first, hours per weekday
}

// TopicImport defines a topic in the import file. Hours are converted to
// minutes on conversion.
type TopicImport struct {
	Title        string       `json:"title"`
	Block        string       `json:"block,omitempty"`
	Complexity   string       `json:"complexity,omitempty"`
	Priority     *float64     `json:"priority,omitempty"`
	PlannedHours float64      `json:"planned_hours"`
	Parts        []PartImport `json:"parts,omitempty"`
}

// PartImport defines a sequential sub-division of a topic.
type PartImport struct {
	Title    string  `json:"title"`
	Fraction float64 `json:"fraction"`
}

// WeightRuleImport defines an exception rule that overrides the tier-based
// multipliers for matching topic titles. Rules apply in file order.
type WeightRuleImport struct {
	Name       string  `json:"name"`
	Match      string  `json:"match"`
	ReviewMult float64 `json:"review_mult"`
	TestMult   float64 `json:"test_mult"`
}

// LoadImportSchema reads and parses a plan import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
