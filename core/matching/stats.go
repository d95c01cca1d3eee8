package matching

import "math"

// Summarize derives aggregate statistics from a reconciliation result:
// the rounded reconciliation rate, the average accepted score, and the
// split between perfect (score 100) and fuzzy (below 100) matches.
func Summarize(result *Result) Summary {
	s := Summary{}
	if result == nil {
		return s
	}

	if result.TotalItems > 0 {
		s.Rate = int(math.Round(float64(result.MatchedCount) / float64(result.TotalItems) * 100))
	}

	total := 0
	for _, m := range result.Matches {
		total += m.Score
		if m.Score == 100 {
			s.PerfectMatches++
		} else {
			s.FuzzyMatches++
		}
	}
	if len(result.Matches) > 0 {
		s.AverageScore = int(math.Round(float64(total) / float64(len(result.Matches))))
	}

	return s
}
