// file: internal/matcher/result.go
// version: 1.0.0
// guid: a9df11e3-3c2c-4b5d-8dbb-2b11b8c78b6b

package matcher

// MatchType tells how a result's matches were produced.
type MatchType string

const (
	// MatchDirect means the query matched by normalized equality or a
	// strong token substitution, skipping the scoring pass entirely.
	MatchDirect MatchType = "direct"
	// MatchFuzzy means the matches came from the weighted scoring pass.
	MatchFuzzy MatchType = "fuzzy"
)

// MatchCandidate is one suggested replacement with its similarity score.
type MatchCandidate struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// FuzzyMatchResult is the outcome of matching one query against a candidate
// set. Matches are ranked by score descending with name ascending as the
// tie-break, and never exceed the requested suggestion count. The struct is
// not modified after construction.
type FuzzyMatchResult struct {
	Original       string           `json:"original"`
	Matches        []MatchCandidate `json:"matches"`
	Category       string           `json:"category,omitempty"`
	NormalizedForm string           `json:"normalized_form"`
	MatchType      MatchType        `json:"match_type"`
}

// HasMatches reports whether any candidate survived matching.
func (r *FuzzyMatchResult) HasMatches() bool {
	return len(r.Matches) > 0
}

// BestMatch returns the top-ranked candidate.
func (r *FuzzyMatchResult) BestMatch() (MatchCandidate, bool) {
	if len(r.Matches) == 0 {
		return MatchCandidate{}, false
	}
	return r.Matches[0], true
}

// HasHighConfidenceMatch reports whether the best match scored at least 0.8,
// the level at which a suggestion is worth surfacing without review.
func (r *FuzzyMatchResult) HasHighConfidenceMatch() bool {
	best, ok := r.BestMatch()
	return ok && best.Score >= 0.8
}
