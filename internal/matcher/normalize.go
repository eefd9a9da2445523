// file: internal/matcher/normalize.go
// version: 1.0.0
// guid: e9d084a4-8271-4cd2-973b-50a64a0ef69f

package matcher

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/cache"
)

var (
	trailingNumberPattern = regexp.MustCompile(`_\d+$`)
	underscoreRunPattern  = regexp.MustCompile(`_+`)
	tokenSplitPattern     = regexp.MustCompile(`[_\s]+`)
)

// Normalizer reduces class names to a canonical comparison form. Results are
// memoized in a bounded LRU cache, so it is cheap to call repeatedly with the
// same names. Safe for concurrent use.
type Normalizer struct {
	prefixes []string
	memo     *cache.Cache[string, string]
}

// NewNormalizer builds a normalizer that strips the first matching prefix
// from the given list and memoizes up to cacheSize results.
func NewNormalizer(prefixes []string, cacheSize int) (*Normalizer, error) {
	memo, err := cache.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create normalization cache: %w", err)
	}
	return &Normalizer{prefixes: append([]string(nil), prefixes...), memo: memo}, nil
}

// Normalize lowercases the name, strips one recognized prefix, drops a
// trailing numeric suffix like _01, collapses underscore runs, and trims
// leading and trailing underscores.
func (n *Normalizer) Normalize(name string) string {
	if cached, ok := n.memo.Get(name); ok {
		return cached
	}
	normalized := strings.ToLower(name)
	for _, prefix := range n.prefixes {
		if strings.HasPrefix(normalized, prefix) {
			normalized = normalized[len(prefix):]
			break
		}
	}
	normalized = trailingNumberPattern.ReplaceAllString(normalized, "")
	normalized = underscoreRunPattern.ReplaceAllString(normalized, "_")
	normalized = strings.Trim(normalized, "_")
	n.memo.Set(name, normalized)
	return normalized
}

// CacheLen reports how many normalization results are currently memoized.
func (n *Normalizer) CacheLen() int {
	return n.memo.Len()
}

// tokenize splits a name on underscore and whitespace runs into a lowercase
// token set. Empty fragments are dropped, so names made only of separators
// produce an empty set.
func tokenize(name string) map[string]struct{} {
	parts := tokenSplitPattern.Split(strings.ToLower(name), -1)
	tokens := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		tokens[part] = struct{}{}
	}
	return tokens
}

// tokensOverlap reports whether the two token sets share any element.
func tokensOverlap(a, b map[string]struct{}) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for token := range a {
		if _, ok := b[token]; ok {
			return true
		}
	}
	return false
}
