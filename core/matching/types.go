package matching

import "time"

// Criterion identifies a field comparison that contributed to a match score.
type Criterion string

const (
	// CriterionBagID is the bag tag / manifest bag id comparison.
	CriterionBagID Criterion = "bag_id"
	// CriterionName is the passenger name comparison.
	CriterionName Criterion = "passenger_name"
	// CriterionPNR is the booking reference comparison (exact only).
	CriterionPNR Criterion = "pnr"
)

// BagRecord is the matcher's view of a scanned baggage row.
type BagRecord struct {
	// ID is the store identifier of the scanned baggage.
	ID uint
	// Tag is the raw tag value as read by the scanner.
	Tag string
	// PassengerName is the passenger name extracted at scan time, if any.
	PassengerName string
	// PNR is the booking reference extracted at scan time, if any.
	PNR string
}

// ItemRecord is the matcher's view of a manifest line.
type ItemRecord struct {
	// ID is the store identifier of the manifest item.
	ID uint
	// BagID is the bag identifier as printed on the manifest.
	BagID string
	// PassengerName is the passenger name on the manifest line.
	PassengerName string
	// PNR is the booking reference on the manifest line, if any.
	PNR string
}

// Options controls which criteria participate in scoring and the fuzzy
// matching thresholds. The zero value disables everything; use
// DefaultOptions as a starting point.
type Options struct {
	// MatchByTag enables the bag id criterion.
	MatchByTag bool
	// MatchByName enables the passenger name criterion.
	MatchByName bool
	// MatchByPNR enables the booking reference criterion.
	MatchByPNR bool
	// Fuzzy enables similarity-based contributions for bag id and name.
	// When disabled only exact (score 100) matches are accepted.
	Fuzzy bool
	// FuzzyThreshold is the minimum similarity (0-100) for the bag id
	// criterion to contribute, and the global acceptance floor when fuzzy
	// matching is enabled.
	FuzzyThreshold int
	// NameThreshold is the minimum similarity (0-100) for the passenger
	// name criterion to contribute.
	NameThreshold int
}

// DefaultOptions returns the production defaults: all criteria enabled,
// fuzzy matching at 80% for bag ids and 70% for names.
func DefaultOptions() Options {
	return Options{
		MatchByTag:     true,
		MatchByName:    true,
		MatchByPNR:     true,
		Fuzzy:          true,
		FuzzyThreshold: 80,
		NameThreshold:  70,
	}
}

// floor returns the minimum score an accepted match requires.
func (o Options) floor() int {
	if !o.Fuzzy {
		return 100
	}
	return o.FuzzyThreshold
}

// Match is an accepted pairing between a scanned bag and a manifest item.
type Match struct {
	// BaggageID is the scanned baggage store identifier.
	BaggageID uint `json:"baggage_id"`
	// ItemID is the manifest item store identifier.
	ItemID uint `json:"item_id"`
	// Score is the confidence score (0-100).
	Score int `json:"score"`
	// MatchedOn lists the criteria that contributed to the score.
	MatchedOn []Criterion `json:"matched_on"`
}

// Suggestion is a near-match surfaced for manual review. It is never
// auto-accepted.
type Suggestion struct {
	// ItemID is the manifest item store identifier.
	ItemID uint `json:"item_id"`
	// Score is the confidence score (0-100).
	Score int `json:"score"`
	// MatchedOn lists the criteria that contributed to the score.
	MatchedOn []Criterion `json:"matched_on"`
}

// Result aggregates the outcome of one reconciliation run.
type Result struct {
	// TotalItems is the number of manifest items considered.
	TotalItems int `json:"total_items"`
	// MatchedCount is the number of accepted matches.
	MatchedCount int `json:"matched_count"`
	// UnmatchedScanned is the number of scanned bags left without an item.
	UnmatchedScanned int `json:"unmatched_scanned"`
	// UnmatchedReport is the number of manifest items left without a bag.
	UnmatchedReport int `json:"unmatched_report"`
	// Matches holds the accepted pairings.
	Matches []Match `json:"matches"`
	// UnmatchedBaggageIDs lists the scanned bags left unmatched.
	UnmatchedBaggageIDs []uint `json:"unmatched_baggage_ids"`
	// UnmatchedItemIDs lists the manifest items left unmatched.
	UnmatchedItemIDs []uint `json:"unmatched_item_ids"`
	// ProcessedAt is when the run completed.
	ProcessedAt time.Time `json:"processed_at"`
	// ProcessedBy identifies the user or process that triggered the run.
	ProcessedBy string `json:"processed_by"`
}

// Summary provides derived statistics over a reconciliation result.
type Summary struct {
	// Rate is the reconciliation rate: matched/total*100, rounded.
	Rate int `json:"rate"`
	// AverageScore is the mean score over accepted matches.
	AverageScore int `json:"average_score"`
	// PerfectMatches counts accepted matches with score 100.
	PerfectMatches int `json:"perfect_matches"`
	// FuzzyMatches counts accepted matches with score below 100.
	FuzzyMatches int `json:"fuzzy_matches"`
}
