package importer

import (
	"fmt"
	"math"
	"strings"
	"time"
)

var validComplexities = map[string]bool{"low": true, "medium": true, "high": true}

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validatePlan(&schema.Plan)...)
	errs = append(errs, validateTopics(schema.Topics)...)
	errs = append(errs, validateWeightRules(schema.WeightRules)...)

	return errs
}

func validatePlan(p *PlanImport) []error {
	var errs []error

	if p.ShortID == "" {
		errs = append(errs, fmt.Errorf("plan.short_id is required"))
	}
	if p.Name == "" {
		errs = append(errs, fmt.Errorf("plan.name is required"))
	}

	if p.StartDate == "" {
		errs = append(errs, fmt.Errorf("plan.start_date is required"))
	} else if _, err := time.Parse("2006-01-02", p.StartDate); err != nil {
		errs = append(errs, fmt.Errorf("plan.start_date: invalid date format %q (expected YYYY-MM-DD)", p.StartDate))
	}
	if p.ExamDate == "" {
		errs = append(errs, fmt.Errorf("plan.exam_date is required"))
	} else if _, err := time.Parse("2006-01-02", p.ExamDate); err != nil {
		errs = append(errs, fmt.Errorf("plan.exam_date: invalid date format %q (expected YYYY-MM-DD)", p.ExamDate))
	}
	if p.StartDate != "" && p.ExamDate != "" {
		start, startErr := time.Parse("2006-01-02", p.StartDate)
		exam, examErr := time.Parse("2006-01-02", p.ExamDate)
		if startErr == nil && examErr == nil && !exam.After(start) {
			errs = append(errs, fmt.Errorf("plan.exam_date %q must be after start_date %q", p.ExamDate, p.StartDate))
		}
	}

	total := 0.0
	for i, h := range p.WeeklyHours {
		if h < 0 {
			errs = append(errs, fmt.Errorf("plan.weekly_hours[%d] must not be negative", i))
		}
		if h > 24 {
			errs = append(errs, fmt.Errorf("plan.weekly_hours[%d] must not exceed 24", i))
		}
		total += h
	}
	if total == 0 {
		errs = append(errs, fmt.Errorf("plan.weekly_hours has no study time on any weekday"))
	}

	return errs
}

func validateTopics(topics []TopicImport) []error {
	var errs []error

	if len(topics) == 0 {
		errs = append(errs, fmt.Errorf("topics: at least one topic is required"))
	}

	titles := make(map[string]bool)
	for i, t := range topics {
		prefix := fmt.Sprintf("topics[%d]", i)

		if t.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		} else {
			key := strings.ToLower(t.Title)
			if titles[key] {
				errs = append(errs, fmt.Errorf("%s.title: duplicate title %q", prefix, t.Title))
			}
			titles[key] = true
		}

		if t.Complexity != "" && !validComplexities[t.Complexity] {
			errs = append(errs, fmt.Errorf("%s.complexity: invalid value %q (expected low, medium, or high)", prefix, t.Complexity))
		}
		if t.Priority != nil && *t.Priority <= 0 {
			errs = append(errs, fmt.Errorf("%s.priority must be positive", prefix))
		}
		if t.PlannedHours <= 0 {
			errs = append(errs, fmt.Errorf("%s.planned_hours must be positive", prefix))
		}

		errs = append(errs, validateParts(prefix, t.Parts)...)
	}

	return errs
}

func validateParts(prefix string, parts []PartImport) []error {
	if len(parts) == 0 {
		return nil
	}
	var errs []error

	sum := 0.0
	for j, p := range parts {
		if p.Title == "" {
			errs = append(errs, fmt.Errorf("%s.parts[%d].title is required", prefix, j))
		}
		if p.Fraction <= 0 {
			errs = append(errs, fmt.Errorf("%s.parts[%d].fraction must be positive", prefix, j))
		}
		sum += p.Fraction
	}
	if math.Abs(sum-1.0) > 0.01 {
		errs = append(errs, fmt.Errorf("%s.parts: fractions must sum to 1.0, got %.2f", prefix, sum))
	}

	return errs
}

func validateWeightRules(rules []WeightRuleImport) []error {
	var errs []error

	names := make(map[string]bool)
	for i, r := range rules {
		prefix := fmt.Sprintf("weight_rules[%d]", i)

		if r.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if names[r.Name] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate rule name %q", prefix, r.Name))
		} else {
			names[r.Name] = true
		}

		if r.Match == "" {
			errs = append(errs, fmt.Errorf("%s.match is required", prefix))
		}
		if r.ReviewMult < 0 {
			errs = append(errs, fmt.Errorf("%s.review_mult must not be negative", prefix))
		}
		if r.TestMult < 0 {
			errs = append(errs, fmt.Errorf("%s.test_mult must not be negative", prefix))
		}
	}

	return errs
}
