// file: internal/ignore/ignore.go
// version: 1.0.0
// guid: eedd830a-de83-4609-ad2f-f660c2d05874

// Package ignore filters equipment references that should never be treated
// as missing dependencies, such as loadout role markers and placeholder
// content.
package ignore

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// defaultPatterns are always active. Custom patterns extend this list, they
// never replace it.
var defaultPatterns = []string{
	// Loadout role abbreviations that show up in equipment columns.
	"rm", "ar", "aar", "mmg", "ammg", "hmg", "ahmg",
	"mat", "amat", "hat", "ahat", "dm", "sl", "tl",
	"co", "fo", "rto", "med", "eng",
	// Placeholder content that never ships with the mod packs.
	"*tarkov*",
	"diw_armor_plates_main_plate",
}

// DefaultPatterns returns a copy of the built-in ignore patterns.
func DefaultPatterns() []string {
	return append([]string(nil), defaultPatterns...)
}

type compiledPattern struct {
	raw     string
	matcher glob.Glob
}

// List answers whether an equipment name should be excluded from dependency
// validation. Matching is case-insensitive and a name is ignored when any
// pattern matches. Immutable after construction.
type List struct {
	patterns []compiledPattern
}

// NewList compiles the default patterns plus the given custom ones. Empty
// custom patterns are skipped; a malformed pattern fails construction.
func NewList(custom []string) (*List, error) {
	raw := make([]string, 0, len(defaultPatterns)+len(custom))
	raw = append(raw, defaultPatterns...)
	raw = append(raw, custom...)

	patterns := make([]compiledPattern, 0, len(raw))
	for _, pattern := range raw {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		patterns = append(patterns, compiledPattern{raw: pattern, matcher: g})
	}
	return &List{patterns: patterns}, nil
}

// ShouldIgnore reports whether name matches any ignore pattern. The empty
// name is never ignored.
func (l *List) ShouldIgnore(name string) bool {
	if name == "" {
		return false
	}
	lowered := strings.ToLower(name)
	for _, pattern := range l.patterns {
		if pattern.matcher.Match(lowered) {
			return true
		}
	}
	return false
}

// Patterns returns the active patterns in evaluation order, defaults first.
func (l *List) Patterns() []string {
	out := make([]string, len(l.patterns))
	for i, pattern := range l.patterns {
		out[i] = pattern.raw
	}
	return out
}
