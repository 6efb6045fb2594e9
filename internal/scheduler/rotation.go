package scheduler

import (
	"math"
	"sort"

	"github.com/alexanderramin/examplan/internal/domain"
)

// RotationConfig holds the tunable knobs of the rotation builder.
type RotationConfig struct {
	BaseReviews       int     // baseline review count per topic part
	MaxReviews        int     // hard cap, so 3x exception topics cannot run away
	BaseTests         int     // baseline test count per topic
	MaxTests          int
	ReviewWeekOffsets []int   // expanding offsets from the study week, per stage
	TestWeekOffsets   []int
	ReviewPct         float64 // review minutes as a share of the part's study minutes
	TestPct           float64
	MinEntryMin       int     // floor for any rotation entry's minutes
	StudyHorizonPct   float64 // share of the window's weeks study entries spread across
	SimulationWeeks   int     // full-scope simulation cadence in weeks; 0 disables
	SimulationMin     int
}

// DefaultRotationConfig returns the rotation tuning used when the caller
// does not override it.
func DefaultRotationConfig() RotationConfig {
	return RotationConfig{
		BaseReviews:       3,
		MaxReviews:        6,
		BaseTests:         1,
		MaxTests:          3,
		ReviewWeekOffsets: []int{1, 2, 4, 6, 8, 10},
		TestWeekOffsets:   []int{3, 6, 9},
		ReviewPct:         0.3,
		TestPct:           0.25,
		MinEntryMin:       30,
		StudyHorizonPct:   0.7,
		SimulationWeeks:   4,
		SimulationMin:     180,
	}
}

// WeightedTopic pairs a topic with its resolved multipliers.
type WeightedTopic struct {
	Topic   *domain.Topic
	Weights TopicWeights
}

// BuildRotation produces the abstract week-indexed rotation for all topics.
//
// Study entries (one per part, in declared order) spread across the first
// StudyHorizonPct of the window's weeks in proportion to cumulative study
// minutes. Review entries follow each part's study week at expanding
// offsets, scaled by the topic's review multiplier. Test entries anchor at
// the topic's last study week. Simulations recur at a fixed cadence
// independent of topics. Within a week, entries are ordered round-robin
// across topics so a learner touches many topics per week.
func BuildRotation(topics []WeightedTopic, weeks int, cfg RotationConfig) []domain.RotationEntry {
	if len(topics) == 0 || weeks <= 0 {
		return nil
	}

	ordered := sortedTopics(topics)

	totalStudyMin := 0
	for _, wt := range ordered {
		totalStudyMin += wt.Topic.PlannedMin
	}
	if totalStudyMin == 0 {
		return nil
	}

	horizonWeeks := int(math.Round(float64(weeks) * cfg.StudyHorizonPct))
	horizonWeeks = clampInt(horizonWeeks, 1, weeks)

	var entries []domain.RotationEntry
	cumMin := 0
	for _, wt := range ordered {
		topic := wt.Topic
		lastStudyWeek := 0

		for part := 0; part < topic.PartCount(); part++ {
			partMin := topic.PartMinutes(part)
			if partMin <= 0 {
				continue
			}
			studyWeek := cumMin * horizonWeeks / totalStudyMin
			if studyWeek > horizonWeeks-1 {
				studyWeek = horizonWeeks - 1
			}
			cumMin += partMin
			lastStudyWeek = studyWeek

			entries = append(entries, domain.RotationEntry{
				TopicID:   topic.ID,
				PartIndex: partIndexFor(topic, part),
				Kind:      domain.KindStudy,
				Minutes:   partMin,
				WeekIndex: studyWeek,
			})

			reviewCount := scaledCount(cfg.BaseReviews, wt.Weights.ReviewMult, cfg.MaxReviews)
			reviewMin := entryMinutes(partMin, cfg.ReviewPct, cfg.MinEntryMin)
			for stage := 1; stage <= reviewCount; stage++ {
				entries = append(entries, domain.RotationEntry{
					TopicID:     topic.ID,
					PartIndex:   partIndexFor(topic, part),
					Kind:        domain.KindReview,
					ReviewStage: stage,
					Minutes:     reviewMin,
					WeekIndex:   clampInt(studyWeek+stageOffset(cfg.ReviewWeekOffsets, stage), 0, weeks-1),
				})
			}
		}

		testCount := scaledCount(cfg.BaseTests, wt.Weights.TestMult, cfg.MaxTests)
		testMin := entryMinutes(topic.PlannedMin, cfg.TestPct, cfg.MinEntryMin)
		for n := 1; n <= testCount; n++ {
			entries = append(entries, domain.RotationEntry{
				TopicID:   topic.ID,
				Kind:      domain.KindTest,
				TestIndex: n,
				Minutes:   testMin,
				WeekIndex: clampInt(lastStudyWeek+stageOffset(cfg.TestWeekOffsets, n), 0, weeks-1),
			})
		}
	}

	if cfg.SimulationWeeks > 0 && cfg.SimulationMin > 0 {
		for week := cfg.SimulationWeeks - 1; week < weeks; week += cfg.SimulationWeeks {
			entries = append(entries, domain.RotationEntry{
				Kind:      domain.KindSimulation,
				Minutes:   cfg.SimulationMin,
				WeekIndex: week,
			})
		}
	}

	return OrderRoundRobin(entries, topicOrder(ordered))
}

// OrderRoundRobin rewrites the ordinal of every entry so that, within each
// week, entries alternate across topics (one entry per topic per pass)
// instead of grouping by topic. Simulations sort after topic entries.
// The returned slice is sorted by (week, ordinal).
func OrderRoundRobin(entries []domain.RotationEntry, topicRank map[string]int) []domain.RotationEntry {
	byWeek := make(map[int][]domain.RotationEntry)
	var weekKeys []int
	for _, e := range entries {
		if _, seen := byWeek[e.WeekIndex]; !seen {
			weekKeys = append(weekKeys, e.WeekIndex)
		}
		byWeek[e.WeekIndex] = append(byWeek[e.WeekIndex], e)
	}
	sort.Ints(weekKeys)

	var out []domain.RotationEntry
	for _, week := range weekKeys {
		out = append(out, orderWeek(byWeek[week], topicRank)...)
	}
	return out
}

func orderWeek(entries []domain.RotationEntry, topicRank map[string]int) []domain.RotationEntry {
	// Stable order inside each topic queue: study parts first, then reviews
	// by stage, then tests.
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if ra, rb := rankOf(topicRank, a.TopicID), rankOf(topicRank, b.TopicID); ra != rb {
			return ra < rb
		}
		if ka, kb := kindRank(a.Kind), kindRank(b.Kind); ka != kb {
			return ka < kb
		}
		if pa, pb := partOrZero(a.PartIndex), partOrZero(b.PartIndex); pa != pb {
			return pa < pb
		}
		if a.ReviewStage != b.ReviewStage {
			return a.ReviewStage < b.ReviewStage
		}
		return a.TestIndex < b.TestIndex
	})

	queues := make(map[string][]domain.RotationEntry)
	var queueOrder []string
	for _, e := range entries {
		if _, seen := queues[e.TopicID]; !seen {
			queueOrder = append(queueOrder, e.TopicID)
		}
		queues[e.TopicID] = append(queues[e.TopicID], e)
	}
	sort.SliceStable(queueOrder, func(i, j int) bool {
		return rankOf(topicRank, queueOrder[i]) < rankOf(topicRank, queueOrder[j])
	})

	out := make([]domain.RotationEntry, 0, len(entries))
	ordinal := 0
	for len(out) < len(entries) {
		for _, topicID := range queueOrder {
			q := queues[topicID]
			if len(q) == 0 {
				continue
			}
			e := q[0]
			queues[topicID] = q[1:]
			e.Ordinal = ordinal
			ordinal++
			out = append(out, e)
		}
	}
	return out
}

// sortedTopics returns topics in the deterministic rotation order:
// priority desc, planned minutes desc, then title and ID.
func sortedTopics(topics []WeightedTopic) []WeightedTopic {
	ordered := make([]WeightedTopic, len(topics))
	copy(ordered, topics)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Topic, ordered[j].Topic
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.PlannedMin != b.PlannedMin {
			return a.PlannedMin > b.PlannedMin
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	})
	return ordered
}

func topicOrder(ordered []WeightedTopic) map[string]int {
	rank := make(map[string]int, len(ordered))
	for i, wt := range ordered {
		rank[wt.Topic.ID] = i
	}
	return rank
}

// rankOf places unknown topic IDs (simulations use the empty ID) after all
// ranked topics.
func rankOf(rank map[string]int, topicID string) int {
	if r, ok := rank[topicID]; ok {
		return r
	}
	return len(rank) + 1
}

func kindRank(k domain.SessionKind) int {
	switch k {
	case domain.KindStudy:
		return 0
	case domain.KindReview:
		return 1
	case domain.KindTest:
		return 2
	default:
		return 3
	}
}

func partIndexFor(topic *domain.Topic, part int) *int {
	if len(topic.Parts) == 0 {
		return nil
	}
	p := part
	return &p
}

func partOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// scaledCount applies a multiplier to a baseline count, rounding to nearest
// and clamping to [0, cap].
func scaledCount(base int, mult float64, cap int) int {
	return clampInt(int(math.Round(float64(base)*mult)), 0, cap)
}

func entryMinutes(refMin int, pct float64, floorMin int) int {
	m := int(math.Round(float64(refMin) * pct))
	if m < floorMin {
		return floorMin
	}
	return m
}

// stageOffset returns the week offset for a 1-based stage. Stages past the
// configured table keep expanding by the table's final gap.
func stageOffset(offsets []int, stage int) int {
	if len(offsets) == 0 {
		return stage
	}
	if stage <= len(offsets) {
		return offsets[stage-1]
	}
	last := offsets[len(offsets)-1]
	gap := 2
	if len(offsets) >= 2 {
		gap = last - offsets[len(offsets)-2]
		if gap <= 0 {
			gap = 1
		}
	}
	return last + gap*(stage-len(offsets))
}

func clampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
