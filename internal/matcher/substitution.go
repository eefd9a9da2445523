// file: internal/matcher/substitution.go
// version: 1.0.0
// guid: 92ef947a-05da-4684-999e-6afd869989e0

package matcher

import (
	"fmt"
	"log"
	"sort"
	"strings"
)

// SubstitutionIndex holds the canonical-to-alias vocabulary in both
// directions. It is built once at matcher construction and read-only after,
// so lookups need no locking.
type SubstitutionIndex struct {
	forward map[string]map[string]struct{}
	reverse map[string]string
}

// NewSubstitutionIndex builds forward and reverse lookups from a canonical
// token to alias-list table. Canonicals are processed in sorted order so an
// alias claimed by several canonicals resolves the same way on every run:
// the last writer wins and the conflict is logged.
func NewSubstitutionIndex(table map[string][]string) (*SubstitutionIndex, error) {
	forward := make(map[string]map[string]struct{}, len(table))
	reverse := make(map[string]string)

	canonicals := make([]string, 0, len(table))
	for canonical := range table {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	for _, rawCanonical := range canonicals {
		canonical := strings.ToLower(strings.TrimSpace(rawCanonical))
		if canonical == "" {
			return nil, fmt.Errorf("substitution table contains an empty canonical token")
		}
		aliases := make(map[string]struct{}, len(table[rawCanonical]))
		for _, rawAlias := range table[rawCanonical] {
			alias := strings.ToLower(strings.TrimSpace(rawAlias))
			if alias == "" {
				return nil, fmt.Errorf("substitution %q contains an empty alias", rawCanonical)
			}
			aliases[alias] = struct{}{}
			if prev, taken := reverse[alias]; taken && prev != canonical {
				log.Printf("[WARN] matcher: alias %q maps to both %q and %q, keeping %q", alias, prev, canonical, canonical)
			}
			reverse[alias] = canonical
		}
		forward[canonical] = aliases
	}

	return &SubstitutionIndex{forward: forward, reverse: reverse}, nil
}

// Aliases returns the sorted alias spellings registered for a canonical
// token, or nil when the token is unknown.
func (s *SubstitutionIndex) Aliases(canonical string) []string {
	set, ok := s.forward[strings.ToLower(canonical)]
	if !ok {
		return nil
	}
	aliases := make([]string, 0, len(set))
	for alias := range set {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// Canonical resolves an alias back to its canonical token.
func (s *SubstitutionIndex) Canonical(alias string) (string, bool) {
	canonical, ok := s.reverse[strings.ToLower(alias)]
	return canonical, ok
}

// anyAliasIn reports whether any alias of the token appears in the candidate
// token set.
func (s *SubstitutionIndex) anyAliasIn(token string, candidates map[string]struct{}) bool {
	for alias := range s.forward[token] {
		if _, ok := candidates[alias]; ok {
			return true
		}
	}
	return false
}

// canonicalIn reports whether the token is an alias whose canonical form
// appears in the candidate token set.
func (s *SubstitutionIndex) canonicalIn(token string, candidates map[string]struct{}) bool {
	canonical, ok := s.reverse[token]
	if !ok {
		return false
	}
	_, present := candidates[canonical]
	return present
}
