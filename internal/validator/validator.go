// file: internal/validator/validator.go
// version: 1.0.0
// guid: 04877b21-b09a-4e89-8975-91196d7103f1

// Package validator checks mission equipment and asset references against
// the content catalog.
package validator

import (
	"context"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/catalog"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/ignore"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/metrics"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/models"
)

const defaultWorkers = 16

// Options tune how a Validator runs.
type Options struct {
	// Workers bounds the number of missions validated concurrently.
	// Values below one select the default of 16.
	Workers int

	// ShowProgress renders a progress bar while validating.
	ShowProgress bool
}

// Validator validates missions against one catalog. Safe for concurrent use
// once constructed.
type Validator struct {
	catalog *catalog.Catalog
	ignore  *ignore.List
	opts    Options
}

// New builds a validator over the given catalog and ignore list.
func New(cat *catalog.Catalog, ignoreList *ignore.List, opts Options) *Validator {
	if opts.Workers < 1 {
		opts.Workers = defaultWorkers
	}
	return &Validator{catalog: cat, ignore: ignoreList, opts: opts}
}

// ValidateMissions validates every scanned mission in parallel and returns
// the results keyed by mission name. A cancelled context stops scheduling
// new missions; already-started ones still finish and are included.
func (v *Validator) ValidateMissions(ctx context.Context, scans []models.MissionScan) (map[string]models.ValidationResult, error) {
	start := time.Now()
	results := make(map[string]models.ValidationResult, len(scans))

	var bar *progressbar.ProgressBar
	if v.opts.ShowProgress {
		bar = progressbar.Default(int64(len(scans)))
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, v.opts.Workers)

	var ctxErr error
	for i := range scans {
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
		default:
		}
		if ctxErr != nil {
			break
		}

		wg.Add(1)
		go func(scan models.MissionScan) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() {
				<-semaphore
				if bar != nil {
					bar.Add(1)
				}
			}()

			result := v.validateMission(scan)
			metrics.IncMissionValidated()

			mu.Lock()
			results[scan.Mission] = result
			mu.Unlock()
		}(scans[i])
	}

	wg.Wait()

	missing := models.NewClassSet()
	for _, result := range results {
		missing = missing.Union(result.MissingClasses)
	}
	metrics.SetMissingClasses(missing.Len())
	metrics.ObserveValidationDuration(time.Since(start))

	return results, ctxErr
}

// ValidateMission validates a single scanned mission.
func (v *Validator) ValidateMission(scan models.MissionScan) models.ValidationResult {
	result := v.validateMission(scan)
	metrics.IncMissionValidated()
	return result
}

func (v *Validator) validateMission(scan models.MissionScan) models.ValidationResult {
	result := models.ValidationResult{
		Mission:        scan.Mission,
		ValidClasses:   models.NewClassSet(),
		MissingClasses: models.NewClassSet(),
		ValidAssets:    models.NewClassSet(),
		MissingAssets:  models.NewClassSet(),
	}

	for name := range scan.Equipment {
		if name == "" || v.ignore.ShouldIgnore(name) {
			continue
		}
		if v.catalog.HasClass(name) {
			result.ValidClasses.Add(name)
		} else {
			result.MissingClasses.Add(name)
		}
	}

	for path := range scan.Assets {
		if path == "" {
			continue
		}
		if v.catalog.HasAsset(path) {
			result.ValidAssets.Add(path)
		} else {
			result.MissingAssets.Add(path)
		}
	}

	return result
}
