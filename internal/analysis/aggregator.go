// file: internal/analysis/aggregator.go
// version: 1.0.0
// guid: c3267b2c-0b4b-41db-9f80-427f8c3e867c

// Package analysis turns validation results into replacement suggestions
// and cross-run comparisons.
package analysis

import (
	"sort"
	"strings"

	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/matcher"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/metrics"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/models"
)

// ClassMatcher finds replacement candidates for missing class names.
// *matcher.Matcher satisfies it.
type ClassMatcher interface {
	FindMatchesBatch(queries, candidates []string, maxSuggestions int) map[string]*matcher.FuzzyMatchResult
}

// SuggestionReport holds the suggested replacements and detected categories
// for all missing classes of a run.
type SuggestionReport struct {
	Suggestions map[string][]matcher.MatchCandidate `json:"suggestions"`
	Categories  map[string]string                   `json:"categories"`
}

// Aggregator computes suggestions for missing classes at most once per
// distinct name and applies the cached results to every mission that needs
// them. One aggregator serves one run; not safe for concurrent use.
type Aggregator struct {
	matcher        ClassMatcher
	maxSuggestions int

	processed   map[string]struct{}
	suggestions map[string][]matcher.MatchCandidate
	categories  map[string]string
}

// NewAggregator builds an aggregator. maxSuggestions below one selects the
// matcher's configured default.
func NewAggregator(m ClassMatcher, maxSuggestions int) *Aggregator {
	return &Aggregator{
		matcher:        m,
		maxSuggestions: maxSuggestions,
		processed:      make(map[string]struct{}),
		suggestions:    make(map[string][]matcher.MatchCandidate),
		categories:     make(map[string]string),
	}
}

// GenerateSuggestions matches every not-yet-processed missing name against
// the available classes and returns a report covering all requested names.
// Candidate names in the report carry the catalog's display casing.
func (a *Aggregator) GenerateSuggestions(missing models.ClassSet, available []string) SuggestionReport {
	displayByLower := make(map[string]string, len(available))
	lowered := make([]string, 0, len(available))
	for _, name := range available {
		key := strings.ToLower(name)
		if _, seen := displayByLower[key]; !seen {
			lowered = append(lowered, key)
		}
		displayByLower[key] = name
	}

	pending := make([]string, 0, missing.Len())
	for name := range missing {
		if _, done := a.processed[name]; !done {
			pending = append(pending, name)
		}
	}
	sort.Strings(pending)

	if len(pending) > 0 {
		batch := a.matcher.FindMatchesBatch(pending, lowered, a.maxSuggestions)
		for _, name := range pending {
			a.processed[name] = struct{}{}
			result, ok := batch[name]
			if !ok || !result.HasMatches() {
				continue
			}
			remapped := make([]matcher.MatchCandidate, 0, len(result.Matches))
			for _, match := range result.Matches {
				display, ok := displayByLower[match.Name]
				if !ok {
					display = match.Name
				}
				remapped = append(remapped, matcher.MatchCandidate{Name: display, Score: match.Score})
			}
			a.suggestions[name] = remapped
			if result.Category != "" {
				a.categories[name] = result.Category
			}
			metrics.AddSuggestionsGenerated(len(remapped))
		}
	}

	report := SuggestionReport{
		Suggestions: make(map[string][]matcher.MatchCandidate),
		Categories:  make(map[string]string),
	}
	for name := range missing {
		if suggestions, ok := a.suggestions[name]; ok {
			report.Suggestions[name] = suggestions
		}
		if category, ok := a.categories[name]; ok {
			report.Categories[name] = category
		}
	}
	return report
}

// ApplyToResults copies cached suggestion lists into each mission's
// Suggestions map. Missing names without suggestions get no entry.
func (a *Aggregator) ApplyToResults(results map[string]models.ValidationResult) {
	for mission, result := range results {
		for name := range result.MissingClasses {
			suggestions, ok := a.suggestions[name]
			if !ok {
				continue
			}
			if result.Suggestions == nil {
				result.Suggestions = make(map[string][]matcher.MatchCandidate)
			}
			result.Suggestions[name] = suggestions
		}
		results[mission] = result
	}
}

// AnalyzeResults pools valid and missing classes across all missions,
// computes suggestions for the missing ones using the pooled valid classes
// as candidates, applies them to every mission, and returns the pooled sets
// for the class summary report.
func (a *Aggregator) AnalyzeResults(results map[string]models.ValidationResult) (valid, missing models.ClassSet) {
	valid = models.NewClassSet()
	missing = models.NewClassSet()
	for _, result := range results {
		valid = valid.Union(result.ValidClasses)
		missing = missing.Union(result.MissingClasses)
	}

	a.GenerateSuggestions(missing, valid.Sorted())
	a.ApplyToResults(results)
	return valid, missing
}

// Suggestions returns the cached suggestion list for one missing name.
func (a *Aggregator) Suggestions(name string) ([]matcher.MatchCandidate, bool) {
	suggestions, ok := a.suggestions[name]
	return suggestions, ok
}
