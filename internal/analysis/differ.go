// file: internal/analysis/differ.go
// version: 1.0.0
// guid: 7269bffb-90e0-4949-8475-c402d3592fd8

package analysis

import (
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/matcher"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/models"
)

// Difference removes from compare every missing dependency that the base
// run already reported, mission by mission. Missions absent from base are
// carried over unchanged. Valid sets always come from compare; suggestion
// entries are trimmed to the surviving missing classes.
func Difference(base, compare map[string]models.ValidationResult) map[string]models.ValidationResult {
	out := make(map[string]models.ValidationResult, len(compare))

	for mission, compareResult := range compare {
		baseResult, ok := base[mission]
		if !ok {
			out[mission] = compareResult
			continue
		}

		diffed := models.ValidationResult{
			Mission:        compareResult.Mission,
			ValidClasses:   compareResult.ValidClasses,
			ValidAssets:    compareResult.ValidAssets,
			MissingClasses: compareResult.MissingClasses.Difference(baseResult.MissingClasses),
			MissingAssets:  compareResult.MissingAssets.Difference(baseResult.MissingAssets),
		}
		if compareResult.Suggestions != nil {
			trimmed := make(map[string][]matcher.MatchCandidate)
			for name, suggestions := range compareResult.Suggestions {
				if diffed.MissingClasses.Has(name) {
					trimmed[name] = suggestions
				}
			}
			if len(trimmed) > 0 {
				diffed.Suggestions = trimmed
			}
		}
		out[mission] = diffed
	}

	return out
}
