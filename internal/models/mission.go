// file: internal/models/mission.go
// version: 1.0.0
// guid: 2589d435-cb91-4d71-8b2f-3f4e2b5e0a3d

package models

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/matcher"
)

// ClassSet is an unordered collection of class names or asset paths.
// Construct with NewClassSet; a nil set is empty and read-only.
type ClassSet map[string]struct{}

// NewClassSet builds a set from the given names, dropping empty strings.
func NewClassSet(names ...string) ClassSet {
	s := make(ClassSet, len(names))
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add inserts a name into the set. Empty names are dropped.
func (s ClassSet) Add(name string) {
	if name == "" {
		return
	}
	s[name] = struct{}{}
}

// Has reports whether name is in the set.
func (s ClassSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of names in the set.
func (s ClassSet) Len() int { return len(s) }

// Sorted returns the set's names in ascending order.
func (s ClassSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Union returns a new set holding every name from both sets.
func (s ClassSet) Union(other ClassSet) ClassSet {
	merged := make(ClassSet, len(s)+len(other))
	for name := range s {
		merged[name] = struct{}{}
	}
	for name := range other {
		merged[name] = struct{}{}
	}
	return merged
}

// Difference returns a new set with every name in s that is not in other.
func (s ClassSet) Difference(other ClassSet) ClassSet {
	diff := make(ClassSet)
	for name := range s {
		if !other.Has(name) {
			diff[name] = struct{}{}
		}
	}
	return diff
}

// MarshalJSON encodes the set as a sorted array so report output is stable.
func (s ClassSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes a JSON array into the set.
func (s *ClassSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = NewClassSet(names...)
	return nil
}

// MissionScan represents the raw references pulled from one mission folder.
type MissionScan struct {
	Mission   string   `json:"mission"`
	Path      string   `json:"path"`
	Equipment ClassSet `json:"equipment"`
	Assets    ClassSet `json:"assets,omitempty"`
}

// ValidationResult represents one mission's dependency check outcome.
// Every key in Suggestions is a member of MissingClasses; missing classes
// without suggestions simply have no entry.
type ValidationResult struct {
	Mission        string                              `json:"mission"`
	ValidClasses   ClassSet                            `json:"valid_classes"`
	MissingClasses ClassSet                            `json:"missing_classes"`
	ValidAssets    ClassSet                            `json:"valid_assets"`
	MissingAssets  ClassSet                            `json:"missing_assets"`
	Suggestions    map[string][]matcher.MatchCandidate `json:"suggestions,omitempty"`
}

// IsCompliant reports whether the mission has no missing dependencies.
func (r ValidationResult) IsCompliant() bool {
	return r.MissingClasses.Len() == 0 && r.MissingAssets.Len() == 0
}

// MissingCount returns the total number of missing dependencies.
func (r ValidationResult) MissingCount() int {
	return r.MissingClasses.Len() + r.MissingAssets.Len()
}

// ScanTask represents one named scanning task from the configuration file.
type ScanTask struct {
	Name string   `json:"name" mapstructure:"name"`
	Mods []string `json:"mods" mapstructure:"mods"`
}

// RunRecord represents a persisted validation run summary.
type RunRecord struct {
	ID             string    `json:"id"`
	Task           string    `json:"task"`
	CreatedAt      time.Time `json:"created_at"`
	MissionCount   int       `json:"mission_count"`
	CompliantCount int       `json:"compliant_count"`
	MissingClasses int       `json:"missing_classes"`
}

// CatalogSnapshot represents cached catalog content keyed by a folder hash.
type CatalogSnapshot struct {
	Hash      string    `json:"hash"`
	CreatedAt time.Time `json:"created_at"`
	Classes   []string  `json:"classes"`
	Assets    []string  `json:"assets,omitempty"`
}
