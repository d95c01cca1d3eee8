package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_ExactTagMatch(t *testing.T) {
	// A bag and an item sharing only the tag must match at score 100
	// via the bag id criterion alone.
	bags := []BagRecord{{ID: 1, Tag: "ET1234567890"}}
	items := []ItemRecord{{ID: 10, BagID: "ET1234567890"}}

	result := Reconcile(bags, items, DefaultOptions())

	require.Len(t, result.Matches, 1)
	assert.Equal(t, uint(1), result.Matches[0].BaggageID)
	assert.Equal(t, uint(10), result.Matches[0].ItemID)
	assert.Equal(t, 100, result.Matches[0].Score)
	assert.Equal(t, []Criterion{CriterionBagID}, result.Matches[0].MatchedOn)
	assert.Empty(t, result.UnmatchedBaggageIDs)
	assert.Empty(t, result.UnmatchedItemIDs)
}

func TestReconcile_FuzzyTagThresholds(t *testing.T) {
	// One digit differs; after carrier prefix stripping both ids are 10
	// characters, so the similarity is 90.
	bags := []BagRecord{{ID: 1, Tag: "ET1234567891"}}
	items := []ItemRecord{{ID: 10, BagID: "ET1234567890"}}

	t.Run("Accepted At 80", func(t *testing.T) {
		opts := DefaultOptions()
		opts.FuzzyThreshold = 80

		result := Reconcile(bags, items, opts)

		require.Len(t, result.Matches, 1)
		assert.Equal(t, 90, result.Matches[0].Score)
		assert.Contains(t, result.Matches[0].MatchedOn, CriterionBagID)
	})

	t.Run("Rejected At 95", func(t *testing.T) {
		opts := DefaultOptions()
		opts.FuzzyThreshold = 95

		result := Reconcile(bags, items, opts)

		// The bag id criterion is skipped below threshold and no other
		// field is populated, so the pair is not even a candidate.
		assert.Empty(t, result.Matches)
		assert.Equal(t, []uint{1}, result.UnmatchedBaggageIDs)
		assert.Equal(t, []uint{10}, result.UnmatchedItemIDs)
	})
}

func TestReconcile_FuzzyDisabledRequiresExact(t *testing.T) {
	opts := DefaultOptions()
	opts.Fuzzy = false

	bags := []BagRecord{
		{ID: 1, Tag: "ET1234567890"},
		{ID: 2, Tag: "ET9999999991"},
	}
	items := []ItemRecord{
		{ID: 10, BagID: "ET1234567890"},
		{ID: 11, BagID: "ET9999999990"}, // near miss, must not match
	}

	result := Reconcile(bags, items, opts)

	require.Len(t, result.Matches, 1)
	assert.Equal(t, uint(1), result.Matches[0].BaggageID)
	assert.Equal(t, []uint{2}, result.UnmatchedBaggageIDs)
	assert.Equal(t, []uint{11}, result.UnmatchedItemIDs)
}

func TestReconcile_PNRIsExactOnly(t *testing.T) {
	opts := DefaultOptions()

	t.Run("Exact PNR Contributes", func(t *testing.T) {
		bags := []BagRecord{{ID: 1, Tag: "XX111", PNR: "abc123"}}
		items := []ItemRecord{{ID: 10, BagID: "YY999", PNR: "ABC123"}}

		result := Reconcile(bags, items, opts)

		require.Len(t, result.Matches, 1)
		assert.Equal(t, 100, result.Matches[0].Score)
		assert.Equal(t, []Criterion{CriterionPNR}, result.Matches[0].MatchedOn)
	})

	t.Run("Near PNR Is Not Evidence", func(t *testing.T) {
		bags := []BagRecord{{ID: 1, Tag: "XX111", PNR: "ABC124"}}
		items := []ItemRecord{{ID: 10, BagID: "YY999", PNR: "ABC123"}}

		result := Reconcile(bags, items, opts)

		assert.Empty(t, result.Matches)
	})
}

func TestReconcile_MeanOfContributingCriteria(t *testing.T) {
	// Exact tag (100) + fuzzy name above the 70 threshold: the score is the
	// plain average of the two, not a weighted sum.
	bags := []BagRecord{{ID: 1, Tag: "ET1234567890", PassengerName: "MARTIN/JEAN"}}
	items := []ItemRecord{{ID: 10, BagID: "ET1234567890", PassengerName: "MARTIN/JEANNE"}}

	result := Reconcile(bags, items, DefaultOptions())

	require.Len(t, result.Matches, 1)
	nameSim := Similarity("MARTIN/JEAN", "MARTIN/JEANNE")
	assert.Equal(t, (100+nameSim)/2, result.Matches[0].Score)
	assert.ElementsMatch(t, []Criterion{CriterionBagID, CriterionName}, result.Matches[0].MatchedOn)
}

func TestReconcile_OneToOne(t *testing.T) {
	// Two bags with the same normalized tag compete for one item; only
	// the first may claim it.
	bags := []BagRecord{
		{ID: 1, Tag: "ET1234567890"},
		{ID: 2, Tag: "1234567890"},
	}
	items := []ItemRecord{{ID: 10, BagID: "ET1234567890"}}

	result := Reconcile(bags, items, DefaultOptions())

	require.Len(t, result.Matches, 1)
	assert.Equal(t, uint(1), result.Matches[0].BaggageID)
	assert.Equal(t, []uint{2}, result.UnmatchedBaggageIDs)

	seenBags := map[uint]int{}
	seenItems := map[uint]int{}
	for _, m := range result.Matches {
		seenBags[m.BaggageID]++
		seenItems[m.ItemID]++
	}
	for _, n := range seenBags {
		assert.Equal(t, 1, n)
	}
	for _, n := range seenItems {
		assert.Equal(t, 1, n)
	}
}

func TestReconcile_GreedyFavoursEarlierScans(t *testing.T) {
	// The first bag claims the item with its best (fuzzy) score even though
	// the second bag would have matched it exactly. Greedy input-order
	// assignment is the documented policy.
	bags := []BagRecord{
		{ID: 1, Tag: "ET1234567891"}, // fuzzy 90 against the item
		{ID: 2, Tag: "ET1234567890"}, // exact
	}
	items := []ItemRecord{{ID: 10, BagID: "ET1234567890"}}

	result := Reconcile(bags, items, DefaultOptions())

	require.Len(t, result.Matches, 1)
	assert.Equal(t, uint(1), result.Matches[0].BaggageID)
	assert.Equal(t, 90, result.Matches[0].Score)
	assert.Equal(t, []uint{2}, result.UnmatchedBaggageIDs)
}

func TestReconcile_CoverageIdentity(t *testing.T) {
	bags := []BagRecord{
		{ID: 1, Tag: "ET1111111111"},
		{ID: 2, Tag: "ET2222222222"},
		{ID: 3, Tag: "ET3333333333"},
	}
	items := []ItemRecord{
		{ID: 10, BagID: "ET1111111111"},
		{ID: 11, BagID: "ET9999999999"},
	}

	result := Reconcile(bags, items, DefaultOptions())

	assert.Equal(t, result.TotalItems, result.MatchedCount+result.UnmatchedReport)
	assert.Equal(t, len(bags), result.MatchedCount+result.UnmatchedScanned)
}

func TestReconcile_EmptyInputs(t *testing.T) {
	t.Run("No Bags", func(t *testing.T) {
		result := Reconcile(nil, []ItemRecord{{ID: 10, BagID: "ET1"}}, DefaultOptions())
		assert.Equal(t, 1, result.TotalItems)
		assert.Equal(t, 0, result.MatchedCount)
		assert.Equal(t, []uint{10}, result.UnmatchedItemIDs)
	})

	t.Run("No Items", func(t *testing.T) {
		result := Reconcile([]BagRecord{{ID: 1, Tag: "ET1"}}, nil, DefaultOptions())
		assert.Equal(t, 0, result.TotalItems)
		assert.Equal(t, []uint{1}, result.UnmatchedBaggageIDs)
	})
}

func TestMatchOne(t *testing.T) {
	bag := BagRecord{ID: 1, Tag: "ET1234567890"}
	items := []ItemRecord{
		{ID: 10, BagID: "ET9999999999"},
		{ID: 11, BagID: "ET1234567890"},
	}

	match, ok := MatchOne(bag, items, DefaultOptions())
	require.True(t, ok)
	assert.Equal(t, uint(11), match.ItemID)
	assert.Equal(t, 100, match.Score)

	_, ok = MatchOne(BagRecord{ID: 2, Tag: "AB000"}, items, DefaultOptions())
	assert.False(t, ok)
}

func TestSuggest(t *testing.T) {
	bag := BagRecord{ID: 1, Tag: "ET1234567890", PassengerName: "MARTIN/JEAN"}
	items := []ItemRecord{
		{ID: 10, BagID: "ET1234567890", PassengerName: "MARTIN/JEAN"}, // perfect
		{ID: 11, BagID: "ET1234567891", PassengerName: "MARTIN/JEANNE"},
		{ID: 12, BagID: "KQ0000000000", PassengerName: "TOTALLY/DIFFERENT"},
	}

	suggestions := Suggest(bag, items, DefaultOptions(), 5)

	// The perfect match ranks first; the hopeless one is filtered out.
	require.NotEmpty(t, suggestions)
	assert.Equal(t, uint(10), suggestions[0].ItemID)
	assert.Equal(t, 100, suggestions[0].Score)
	for _, s := range suggestions {
		assert.NotEqual(t, uint(12), s.ItemID)
	}

	t.Run("Capped", func(t *testing.T) {
		capped := Suggest(bag, items, DefaultOptions(), 1)
		assert.Len(t, capped, 1)
	})
}

func TestSummarize(t *testing.T) {
	result := &Result{
		TotalItems:   4,
		MatchedCount: 3,
		Matches: []Match{
			{Score: 100},
			{Score: 100},
			{Score: 85},
		},
	}

	s := Summarize(result)

	assert.Equal(t, 75, s.Rate)
	assert.Equal(t, 95, s.AverageScore)
	assert.Equal(t, 2, s.PerfectMatches)
	assert.Equal(t, 1, s.FuzzyMatches)

	t.Run("Nil Result", func(t *testing.T) {
		assert.Equal(t, Summary{}, Summarize(nil))
	})

	t.Run("Empty Result", func(t *testing.T) {
		assert.Equal(t, Summary{}, Summarize(&Result{}))
	})
}
