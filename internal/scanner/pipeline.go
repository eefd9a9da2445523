// file: internal/scanner/pipeline.go
// version: 1.0.0
// guid: 275136f6-ea7a-4b18-a322-34c14da4926f

package scanner

import (
	"context"
	"fmt"
	"log"

	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/analysis"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/catalog"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/ignore"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/matcher"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/metrics"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/models"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/report"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/store"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/validator"
)

// Options configure a Pipeline. Store and Reports are optional; everything
// else is required.
type Options struct {
	Store          *store.Store
	Reports        *report.Writer
	Matcher        *matcher.Matcher
	IgnoreList     *ignore.List
	MaxSuggestions int
	Workers        int
	ShowProgress   bool
	FoldAccents    bool
}

// Pipeline coordinates content scanning, mission scanning, validation, and
// reporting. Scan base content and missions once, then execute any number of
// tasks against them.
type Pipeline struct {
	provider ContentProvider
	missions MissionScanner
	opts     Options

	gameClasses []string
	gameAssets  []string
	baseScanned bool
	scans       []models.MissionScan
}

// TaskResult carries everything one task run produced.
type TaskResult struct {
	Task            string
	Results         map[string]models.ValidationResult
	ValidClasses    models.ClassSet
	MissingClasses  models.ClassSet
	Suggestions     analysis.SuggestionReport
	ReportPath      string
	SummaryPath     string
	SuggestionsPath string
	Record          *models.RunRecord
}

// NewPipeline builds a pipeline around the given collaborators.
func NewPipeline(provider ContentProvider, missions MissionScanner, opts Options) *Pipeline {
	return &Pipeline{provider: provider, missions: missions, opts: opts}
}

// scanCached scans each path through the content provider, reusing stored
// snapshots for unchanged folders. Cache failures degrade to a fresh scan.
func (p *Pipeline) scanCached(ctx context.Context, paths []string) ([]string, []string, error) {
	var classes, assets []string
	for _, path := range paths {
		hash := FolderHash(path)
		if hash != "" && p.opts.Store != nil {
			snap, err := p.opts.Store.GetSnapshot(hash)
			if err != nil {
				log.Printf("[WARN] failed to read snapshot for %s: %v", path, err)
			} else if snap != nil {
				classes = append(classes, snap.Classes...)
				assets = append(assets, snap.Assets...)
				continue
			}
		}

		pathClasses, pathAssets, err := p.provider.ScanContent(ctx, []string{path})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan content at %s: %w", path, err)
		}
		classes = append(classes, pathClasses...)
		assets = append(assets, pathAssets...)

		if hash != "" && p.opts.Store != nil {
			if _, err := p.opts.Store.PutSnapshot(hash, pathClasses, pathAssets); err != nil {
				log.Printf("[WARN] failed to cache snapshot for %s: %v", path, err)
			}
		}
	}
	return classes, assets, nil
}

// ScanBaseContent scans the base game content. Must run before ExecuteTask.
func (p *Pipeline) ScanBaseContent(ctx context.Context, gamePath string) error {
	classes, assets, err := p.scanCached(ctx, []string{gamePath})
	if err != nil {
		return err
	}
	if len(classes) == 0 && len(assets) == 0 {
		return fmt.Errorf("no content found at game path %s", gamePath)
	}

	p.gameClasses = classes
	p.gameAssets = assets
	p.baseScanned = true
	return nil
}

// assembleCatalog combines the scanned game content with one task's mod
// content. Mod content is added after game content so mod definitions
// override base game definitions.
func (p *Pipeline) assembleCatalog(modClasses, modAssets []string) *catalog.Catalog {
	cat := catalog.New(catalog.Options{FoldAccents: p.opts.FoldAccents})
	cat.AddClasses(p.gameClasses...)
	cat.AddAssets(p.gameAssets...)
	cat.AddClasses(modClasses...)
	cat.AddAssets(modAssets...)
	metrics.SetCatalogClasses(cat.ClassCount())
	return cat
}

// BuildCatalog scans the game path plus extra mod folders into a standalone
// catalog without validating anything. Useful for one-shot lookups.
func (p *Pipeline) BuildCatalog(ctx context.Context, gamePath string, mods []string) (*catalog.Catalog, error) {
	if !p.baseScanned {
		if err := p.ScanBaseContent(ctx, gamePath); err != nil {
			return nil, err
		}
	}
	modClasses, modAssets, err := p.scanCached(ctx, mods)
	if err != nil {
		return nil, err
	}
	return p.assembleCatalog(modClasses, modAssets), nil
}

// ScanMissions scans all mission folders once. Must run before ExecuteTask.
func (p *Pipeline) ScanMissions(ctx context.Context, missionPaths []string) error {
	scans, err := p.missions.ScanMissions(ctx, missionPaths)
	if err != nil {
		return fmt.Errorf("mission scan failed: %w", err)
	}
	if len(scans) == 0 {
		return fmt.Errorf("no valid mission paths found")
	}
	p.scans = scans
	return nil
}

// MissionCount returns how many missions the last ScanMissions call found.
func (p *Pipeline) MissionCount() int { return len(p.scans) }

// ExecuteTask scans the task's mod content, validates every scanned mission
// against the combined catalog, attaches suggestions for missing classes,
// and writes the configured reports.
func (p *Pipeline) ExecuteTask(ctx context.Context, task models.ScanTask, format report.Format) (*TaskResult, error) {
	if !p.baseScanned {
		return nil, fmt.Errorf("base content not scanned")
	}
	if len(p.scans) == 0 {
		return nil, fmt.Errorf("missions not scanned")
	}

	modClasses, modAssets, err := p.scanCached(ctx, task.Mods)
	if err != nil {
		return nil, err
	}
	cat := p.assembleCatalog(modClasses, modAssets)

	v := validator.New(cat, p.opts.IgnoreList, validator.Options{
		Workers:      p.opts.Workers,
		ShowProgress: p.opts.ShowProgress,
	})
	results, err := v.ValidateMissions(ctx, p.scans)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	valid := models.NewClassSet()
	missing := models.NewClassSet()
	for _, result := range results {
		valid = valid.Union(result.ValidClasses)
		missing = missing.Union(result.MissingClasses)
	}

	agg := analysis.NewAggregator(p.opts.Matcher, p.opts.MaxSuggestions)
	suggestions := agg.GenerateSuggestions(missing, cat.Classes())
	agg.ApplyToResults(results)

	taskResult := &TaskResult{
		Task:           task.Name,
		Results:        results,
		ValidClasses:   valid,
		MissingClasses: missing,
		Suggestions:    suggestions,
	}

	if p.opts.Reports != nil {
		if taskResult.ReportPath, err = p.opts.Reports.WriteMissionReport(task.Name, results, format); err != nil {
			return nil, err
		}
		if taskResult.SummaryPath, err = p.opts.Reports.WriteClassSummary(task.Name, valid, missing, suggestions.Suggestions); err != nil {
			return nil, err
		}
		if taskResult.SuggestionsPath, err = p.opts.Reports.WriteSuggestionReport(task.Name, suggestions); err != nil {
			return nil, err
		}
	}

	if p.opts.Store != nil {
		record, err := p.opts.Store.RecordRun(task.Name, results)
		if err != nil {
			// A completed validation is still useful without history.
			log.Printf("[ERROR] failed to record run for task %s: %v", task.Name, err)
		} else {
			taskResult.Record = record
		}
	}

	return taskResult, nil
}

// Run executes the full scan: base content, missions, then every task. A
// failing task is logged and skipped; Run reports how many failed.
func (p *Pipeline) Run(ctx context.Context, gamePath string, missionPaths []string, tasks []models.ScanTask, format report.Format) ([]TaskResult, error) {
	if err := p.ScanBaseContent(ctx, gamePath); err != nil {
		return nil, err
	}
	if err := p.ScanMissions(ctx, missionPaths); err != nil {
		return nil, err
	}

	var results []TaskResult
	failed := 0
	for _, task := range tasks {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		result, err := p.ExecuteTask(ctx, task, format)
		if err != nil {
			log.Printf("[ERROR] task %s failed: %v", task.Name, err)
			failed++
			continue
		}
		results = append(results, *result)
	}

	if failed > 0 {
		return results, fmt.Errorf("%d of %d tasks failed", failed, len(tasks))
	}
	return results, nil
}
