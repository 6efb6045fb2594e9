package importer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/google/uuid"
)

// ImportedPlan holds the domain objects produced from an import file,
// ready for persistence. Weight-rule overrides travel on the plan itself.
type ImportedPlan struct {
	Plan   *domain.StudyPlan
	Topics []*domain.Topic
}

// Convert transforms a validated ImportSchema into domain objects.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) (*ImportedPlan, error) {
	now := time.Now().UTC()

	startDate, err := time.Parse("2006-01-02", schema.Plan.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	examDate, err := time.Parse("2006-01-02", schema.Plan.ExamDate)
	if err != nil {
		return nil, fmt.Errorf("parsing exam_date: %w", err)
	}

	weekly, err := domain.AvailabilityFromHours(schema.Plan.WeeklyHours)
	if err != nil {
		return nil, fmt.Errorf("converting weekly hours: %w", err)
	}

	rules := make([]domain.WeightRule, 0, len(schema.WeightRules))
	for _, r := range schema.WeightRules {
		rules = append(rules, domain.WeightRule{
			Name:       r.Name,
			Match:      strings.ToLower(r.Match),
			ReviewMult: r.ReviewMult,
			TestMult:   r.TestMult,
		})
	}

	plan := &domain.StudyPlan{
		ID:        uuid.New().String(),
		ShortID:   strings.ToUpper(schema.Plan.ShortID),
		Name:      schema.Plan.Name,
		StartDate: startDate,
		ExamDate:  examDate,
		Weekly:    weekly,
		Rules:     rules,
		Status:    domain.PlanActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	topics := make([]*domain.Topic, 0, len(schema.Topics))
	for _, ti := range schema.Topics {
		complexity := domain.FirstNonEmpty(ti.Complexity, string(domain.TierMedium))
		priority := domain.FloatOr(1.0, ti.Priority)

		parts := make([]domain.TopicPart, 0, len(ti.Parts))
		for _, p := range ti.Parts {
			parts = append(parts, domain.TopicPart{Title: p.Title, Fraction: p.Fraction})
		}

		topics = append(topics, &domain.Topic{
			ID:         uuid.New().String(),
			PlanID:     plan.ID,
			Title:      ti.Title,
			Block:      ti.Block,
			Complexity: domain.ComplexityTier(complexity),
			Priority:   priority,
			PlannedMin: int(math.Round(ti.PlannedHours * 60)),
			Parts:      parts,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	return &ImportedPlan{Plan: plan, Topics: topics}, nil
}
