// file: internal/matcher/score.go
// version: 1.0.0
// guid: 68f4977d-49fb-4524-8705-efd4d99926ed

package matcher

// substitutionScore measures token-level agreement between two names. Each
// query token contributes 1.0 when present verbatim in the candidate, 0.8
// when related through the substitution vocabulary in either direction, and
// 0.0 otherwise. The sum is divided by the query token count; a query with
// no tokens scores 0.0.
func (m *Matcher) substitutionScore(original, candidate string) float64 {
	originalTokens := tokenize(original)
	if len(originalTokens) == 0 {
		return 0.0
	}
	candidateTokens := tokenize(candidate)

	score := 0.0
	for token := range originalTokens {
		switch {
		case hasToken(candidateTokens, token):
			score += 1.0
		case m.subs.anyAliasIn(token, candidateTokens):
			score += 0.8
		case m.subs.canonicalIn(token, candidateTokens):
			score += 0.8
		}
	}
	return score / float64(len(originalTokens))
}

// similarityScore blends the normalized sequence ratio with the raw-name
// substitution score using the configured weights.
func (m *Matcher) similarityScore(normalizedQuery, query, candidate string) float64 {
	normalizedCandidate := m.normalizer.Normalize(candidate)
	base := sequenceRatio(normalizedQuery, normalizedCandidate)
	substitution := m.substitutionScore(query, candidate)
	return m.cfg.BaseWeight*base + m.cfg.SubstitutionWeight*substitution
}

func hasToken(tokens map[string]struct{}, token string) bool {
	_, ok := tokens[token]
	return ok
}
