package scheduler

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/examplan/internal/domain"
)

// BalanceConfig tunes the equitable distribution pass.
type BalanceConfig struct {
	Tolerance  float64 // max allowed sessions-per-topic ratio between groups
	MaxAdjust  int     // bound on trim/top-up operations per group kind
	TopUpMin   int     // minutes for reviews inserted by the top-up step
}

// DefaultBalanceConfig returns the balance tuning used when the caller does
// not override it.
func DefaultBalanceConfig() BalanceConfig {
	return BalanceConfig{Tolerance: 1.8, MaxAdjust: 32, TopUpMin: 30}
}

// Balance post-processes the rotation so that sessions-per-topic stays
// within a bounded ratio across complexity tiers and across topic blocks.
// Over-represented groups lose REVIEW/TEST entries (never STUDY); still
// under-represented groups gain REVIEW entries at their topics' next free
// week. Topics carrying a weight exception rule are deliberately imbalanced
// and are excluded from correction; imbalance they cause is reported as a
// warning, not hidden.
//
// This is a single greedy pass bounded by MaxAdjust, not a global optimizer.
func Balance(entries []domain.RotationEntry, topics []WeightedTopic, weeks int, cfg BalanceConfig) ([]domain.RotationEntry, []string) {
	if len(entries) == 0 || len(topics) == 0 {
		return entries, nil
	}

	byID := make(map[string]WeightedTopic, len(topics))
	for _, wt := range topics {
		byID[wt.Topic.ID] = wt
	}

	var warnings []string
	for _, groupKind := range []string{"tier", "block"} {
		entries, warnings = balanceGroups(entries, byID, groupKind, weeks, cfg, warnings)
	}

	warnings = append(warnings, exceptionImbalanceWarnings(entries, byID, cfg.Tolerance)...)

	ordered := sortedTopics(topics)
	return OrderRoundRobin(entries, topicOrder(ordered)), warnings
}

func balanceGroups(
	entries []domain.RotationEntry,
	byID map[string]WeightedTopic,
	groupKind string,
	weeks int,
	cfg BalanceConfig,
	warnings []string,
) ([]domain.RotationEntry, []string) {
	for adjust := 0; adjust < cfg.MaxAdjust; adjust++ {
		groups := groupStats(entries, byID, groupKind, true)
		if len(groups) < 2 {
			return entries, warnings
		}

		maxG, minG := extremes(groups)
		if groups[minG].perTopic() <= 0 {
			// A group with zero sessions would make the ratio meaningless;
			// top-up handles it below.
		} else if groups[maxG].perTopic()/groups[minG].perTopic() <= cfg.Tolerance {
			return entries, warnings
		}

		if trimmed, ok := trimOne(entries, groups[maxG]); ok {
			entries = trimmed
			continue
		}
		if topped, ok := topUpOne(entries, groups[minG], weeks, cfg.TopUpMin); ok {
			entries = topped
			continue
		}

		warnings = append(warnings, fmt.Sprintf(
			"%s balance: %q vs %q sessions-per-topic ratio %.2f exceeds tolerance %.2f and no adjustment is possible without dropping study entries",
			groupKind, maxG, minG, groups[maxG].perTopic()/groups[minG].perTopic(), cfg.Tolerance))
		return entries, warnings
	}

	groups := groupStats(entries, byID, groupKind, true)
	if len(groups) >= 2 {
		maxG, minG := extremes(groups)
		if groups[minG].perTopic() > 0 && groups[maxG].perTopic()/groups[minG].perTopic() > cfg.Tolerance {
			warnings = append(warnings, fmt.Sprintf(
				"%s balance: adjustment budget exhausted with %q vs %q ratio %.2f above tolerance %.2f",
				groupKind, maxG, minG, groups[maxG].perTopic()/groups[minG].perTopic(), cfg.Tolerance))
		}
	}
	return entries, warnings
}

type groupStat struct {
	key        string
	topicIDs   map[string]bool
	sessions   int
	perTopicBy map[string]int
}

func (g groupStat) perTopic() float64 {
	if len(g.topicIDs) == 0 {
		return 0
	}
	return float64(g.sessions) / float64(len(g.topicIDs))
}

// groupStats aggregates session counts per group. When balanceableOnly is
// set, topics matched by an exception rule are left out entirely.
func groupStats(entries []domain.RotationEntry, byID map[string]WeightedTopic, groupKind string, balanceableOnly bool) map[string]groupStat {
	groups := make(map[string]groupStat)

	keyFor := func(wt WeightedTopic) string {
		if groupKind == "block" {
			return wt.Topic.Block
		}
		return string(wt.Topic.Complexity)
	}

	for _, wt := range byID {
		if balanceableOnly && wt.Weights.Rule != "" {
			continue
		}
		key := keyFor(wt)
		g, ok := groups[key]
		if !ok {
			g = groupStat{key: key, topicIDs: make(map[string]bool), perTopicBy: make(map[string]int)}
		}
		g.topicIDs[wt.Topic.ID] = true
		groups[key] = g
	}

	for _, e := range entries {
		wt, ok := byID[e.TopicID]
		if !ok {
			continue // simulations belong to no topic
		}
		g, ok := groups[keyFor(wt)]
		if !ok || !g.topicIDs[e.TopicID] {
			continue
		}
		g.sessions++
		g.perTopicBy[e.TopicID]++
		groups[keyFor(wt)] = g
	}

	// Drop empty groups (e.g. blocks with only exception topics).
	for key, g := range groups {
		if len(g.topicIDs) == 0 {
			delete(groups, key)
		}
	}
	return groups
}

// extremes returns the group keys with the highest and lowest
// sessions-per-topic, with deterministic tie-breaking on the key.
func extremes(groups map[string]groupStat) (maxKey, minKey string) {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	maxKey, minKey = keys[0], keys[0]
	for _, k := range keys[1:] {
		if groups[k].perTopic() > groups[maxKey].perTopic() {
			maxKey = k
		}
		if groups[k].perTopic() < groups[minKey].perTopic() {
			minKey = k
		}
	}
	return maxKey, minKey
}

// trimOne removes the highest-stage REVIEW or TEST entry from the busiest
// topic of the over-represented group. STUDY entries are never trimmed.
func trimOne(entries []domain.RotationEntry, over groupStat) ([]domain.RotationEntry, bool) {
	var topicIDs []string
	for id := range over.topicIDs {
		topicIDs = append(topicIDs, id)
	}
	sort.SliceStable(topicIDs, func(i, j int) bool {
		if over.perTopicBy[topicIDs[i]] != over.perTopicBy[topicIDs[j]] {
			return over.perTopicBy[topicIDs[i]] > over.perTopicBy[topicIDs[j]]
		}
		return topicIDs[i] < topicIDs[j]
	})

	for _, topicID := range topicIDs {
		best := -1
		for i, e := range entries {
			if e.TopicID != topicID {
				continue
			}
			if e.Kind != domain.KindReview && e.Kind != domain.KindTest {
				continue
			}
			if best == -1 || trimRank(e) > trimRank(entries[best]) ||
				(trimRank(e) == trimRank(entries[best]) && e.WeekIndex > entries[best].WeekIndex) {
				best = i
			}
		}
		if best >= 0 {
			return append(entries[:best:best], entries[best+1:]...), true
		}
	}
	return entries, false
}

// trimRank orders trim candidates: later review stages and later test
// counters go first. Exactly one of the two counters is set per entry.
func trimRank(e domain.RotationEntry) int {
	return e.ReviewStage + e.TestIndex
}

// topUpOne appends one REVIEW entry for the least-covered topic of the
// under-represented group, at the week after that topic's last entry.
func topUpOne(entries []domain.RotationEntry, under groupStat, weeks, minutes int) ([]domain.RotationEntry, bool) {
	var topicIDs []string
	for id := range under.topicIDs {
		topicIDs = append(topicIDs, id)
	}
	if len(topicIDs) == 0 {
		return entries, false
	}
	sort.SliceStable(topicIDs, func(i, j int) bool {
		if under.perTopicBy[topicIDs[i]] != under.perTopicBy[topicIDs[j]] {
			return under.perTopicBy[topicIDs[i]] < under.perTopicBy[topicIDs[j]]
		}
		return topicIDs[i] < topicIDs[j]
	})
	topicID := topicIDs[0]

	lastWeek, maxStage := 0, 0
	var partIndex *int
	for _, e := range entries {
		if e.TopicID != topicID {
			continue
		}
		if e.WeekIndex > lastWeek {
			lastWeek = e.WeekIndex
		}
		if e.Kind == domain.KindReview && e.ReviewStage > maxStage {
			maxStage = e.ReviewStage
			partIndex = e.PartIndex
		}
		if e.Kind == domain.KindStudy && maxStage == 0 {
			partIndex = e.PartIndex
		}
	}

	return append(entries, domain.RotationEntry{
		TopicID:     topicID,
		PartIndex:   partIndex,
		Kind:        domain.KindReview,
		ReviewStage: maxStage + 1,
		Minutes:     minutes,
		WeekIndex:   clampInt(lastWeek+1, 0, weeks-1),
	}), true
}

// exceptionImbalanceWarnings reports tier/block imbalance that remains when
// exception-weighted topics are included. These topics are intentionally
// over- or under-weighted, so the imbalance is logged rather than corrected.
func exceptionImbalanceWarnings(entries []domain.RotationEntry, byID map[string]WeightedTopic, tolerance float64) []string {
	hasException := false
	for _, wt := range byID {
		if wt.Weights.Rule != "" {
			hasException = true
			break
		}
	}
	if !hasException {
		return nil
	}

	var warnings []string
	for _, groupKind := range []string{"tier", "block"} {
		groups := groupStats(entries, byID, groupKind, false)
		if len(groups) < 2 {
			continue
		}
		maxG, minG := extremes(groups)
		if groups[minG].perTopic() > 0 && groups[maxG].perTopic()/groups[minG].perTopic() > tolerance {
			warnings = append(warnings, fmt.Sprintf(
				"%s balance: %q vs %q ratio %.2f retained for exception-weighted topics",
				groupKind, maxG, minG, groups[maxG].perTopic()/groups[minG].perTopic()))
		}
	}
	return warnings
}
