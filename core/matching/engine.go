package matching

import (
	"sort"
	"strings"
	"time"
)

// suggestionFloor is the lowered acceptance floor used when surfacing
// near-matches for manual review.
const suggestionFloor = 40

// Reconcile pairs scanned bags with manifest items one-to-one.
//
// Bags are processed in input order; each claims its best-scoring unclaimed
// item when the score clears the acceptance floor (the fuzzy threshold, or
// 100 when fuzzy matching is disabled). The function never touches the store;
// it only partitions the two input sets.
func Reconcile(bags []BagRecord, items []ItemRecord, opts Options) *Result {
	result := &Result{
		TotalItems:          len(items),
		Matches:             []Match{},
		UnmatchedBaggageIDs: []uint{},
		UnmatchedItemIDs:    []uint{},
		ProcessedAt:         time.Now().UTC(),
	}

	floor := opts.floor()
	claimed := make(map[int]bool, len(items))

	for _, bag := range bags {
		bestIdx := -1
		bestScore := 0
		var bestCriteria []Criterion

		for i := range items {
			if claimed[i] {
				continue
			}
			score, criteria, ok := scorePair(bag, items[i], opts)
			if !ok {
				continue
			}
			if score > bestScore {
				bestScore = score
				bestIdx = i
				bestCriteria = criteria
			}
		}

		if bestIdx >= 0 && bestScore >= floor {
			claimed[bestIdx] = true
			result.Matches = append(result.Matches, Match{
				BaggageID: bag.ID,
				ItemID:    items[bestIdx].ID,
				Score:     bestScore,
				MatchedOn: bestCriteria,
			})
		} else {
			result.UnmatchedBaggageIDs = append(result.UnmatchedBaggageIDs, bag.ID)
		}
	}

	for i := range items {
		if !claimed[i] {
			result.UnmatchedItemIDs = append(result.UnmatchedItemIDs, items[i].ID)
		}
	}

	result.MatchedCount = len(result.Matches)
	result.UnmatchedScanned = len(result.UnmatchedBaggageIDs)
	result.UnmatchedReport = len(result.UnmatchedItemIDs)

	return result
}

// MatchOne scores a single bag against every item and returns the best
// acceptable match, if any. Items are not claimed; this is the single-item
// variant used when one late scan arrives after a report was reconciled.
func MatchOne(bag BagRecord, items []ItemRecord, opts Options) (*Match, bool) {
	floor := opts.floor()

	bestScore := 0
	var best *Match
	for i := range items {
		score, criteria, ok := scorePair(bag, items[i], opts)
		if !ok || score < floor {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = &Match{
				BaggageID: bag.ID,
				ItemID:    items[i].ID,
				Score:     score,
				MatchedOn: criteria,
			}
		}
	}

	return best, best != nil
}

// Suggest returns up to maxSuggestions near-matches for a bag, sorted by
// descending score. The acceptance floor is lowered so that an operator can
// review pairings the automatic run rejected; nothing here is auto-accepted.
func Suggest(bag BagRecord, items []ItemRecord, opts Options, maxSuggestions int) []Suggestion {
	suggestions := []Suggestion{}

	for i := range items {
		score, criteria, ok := scorePair(bag, items[i], opts)
		if !ok || score < suggestionFloor {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			ItemID:    items[i].ID,
			Score:     score,
			MatchedOn: criteria,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if maxSuggestions > 0 && len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// scorePair scores one bag against one item. ok is false when no criterion
// contributed, in which case the pair is not a candidate at all.
func scorePair(bag BagRecord, item ItemRecord, opts Options) (score int, criteria []Criterion, ok bool) {
	var contributions []int

	if opts.MatchByTag {
		bagID := NormalizeBagID(bag.Tag)
		itemID := NormalizeBagID(item.BagID)
		if bagID != "" && itemID != "" {
			if bagID == itemID {
				contributions = append(contributions, 100)
				criteria = append(criteria, CriterionBagID)
			} else if opts.Fuzzy {
				if s := Similarity(bagID, itemID); s >= opts.FuzzyThreshold {
					contributions = append(contributions, s)
					criteria = append(criteria, CriterionBagID)
				}
			}
		}
	}

	if opts.MatchByName {
		bagName := NormalizeName(bag.PassengerName)
		itemName := NormalizeName(item.PassengerName)
		if bagName != "" && itemName != "" {
			if bagName == itemName {
				contributions = append(contributions, 100)
				criteria = append(criteria, CriterionName)
			} else if opts.Fuzzy {
				if s := Similarity(bagName, itemName); s >= opts.NameThreshold {
					contributions = append(contributions, s)
					criteria = append(criteria, CriterionName)
				}
			}
		}
	}

	if opts.MatchByPNR {
		// Exact only. A booking reference one letter off is a different booking.
		if bag.PNR != "" && item.PNR != "" && strings.EqualFold(strings.TrimSpace(bag.PNR), strings.TrimSpace(item.PNR)) {
			contributions = append(contributions, 100)
			criteria = append(criteria, CriterionPNR)
		}
	}

	if len(contributions) == 0 {
		return 0, nil, false
	}

	total := 0
	for _, c := range contributions {
		total += c
	}
	return total / len(contributions), criteria, true
}
