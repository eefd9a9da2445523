// file: internal/matcher/filter.go
// version: 1.0.0
// guid: 4478a3c5-2992-41eb-9d6a-c09da54b2032

package matcher

// filterCandidates prunes candidates that cannot plausibly match before the
// expensive scoring pass. Dropped: empty names, the query itself, candidates
// in a different category when both sides categorize, and candidates sharing
// no raw token with the query. Uncategorized candidates always pass the
// category check. The input is already sorted, so the survivors come back in
// sorted order and scoring iterates deterministically.
func (m *Matcher) filterCandidates(query, category string, queryTokens map[string]struct{}, candidates []string) []string {
	filtered := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == "" || candidate == query {
			continue
		}
		if category != "" {
			if candidateCategory, ok := m.classifier.Classify(candidate); ok && candidateCategory != category {
				continue
			}
		}
		if !tokensOverlap(queryTokens, tokenize(candidate)) {
			continue
		}
		filtered = append(filtered, candidate)
	}
	return filtered
}
