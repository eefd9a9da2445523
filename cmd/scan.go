// file: cmd/scan.go
// version: 1.0.0
// guid: 4f0d2c1b-7a3e-45d8-9c6f-1b2a3c4d5e6f

package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/config"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/ignore"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/metrics"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/models"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/report"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/scanner"
)

var scanMods []string
var scanTaskName string
var scanNoCache bool
var scanMaxSuggestions int

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan content and validate mission dependencies",
	Long: `Scan the base game content and every configured task's mod content, then
validate all mission folders against the combined catalog. Missing classes
get ranked replacement suggestions in the generated reports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd.Context())
	},
}

func init() {
	scanCmd.Flags().StringSliceVar(&scanMods, "mods", nil, "mod content folders for an ad-hoc task when no tasks are configured")
	scanCmd.Flags().StringVar(&scanTaskName, "task", "", "run only the named task from the configuration")
	scanCmd.Flags().BoolVar(&scanNoCache, "no-cache", false, "rescan content even when a cached snapshot exists")
	scanCmd.Flags().IntVar(&scanMaxSuggestions, "suggestions", 0, "maximum suggestions per missing class (0 uses the matcher default)")
}

// scanTasks resolves which tasks the scan run covers: the configured task
// list, optionally narrowed to --task, or one ad-hoc task from --mods.
func scanTasks() ([]models.ScanTask, error) {
	tasks := config.AppConfig.Tasks
	if len(tasks) == 0 {
		return []models.ScanTask{{Name: "default", Mods: scanMods}}, nil
	}
	if scanTaskName == "" {
		return tasks, nil
	}
	for _, task := range tasks {
		if task.Name == scanTaskName {
			return []models.ScanTask{task}, nil
		}
	}
	return nil, fmt.Errorf("task %q not found in configuration", scanTaskName)
}

func runScan(ctx context.Context) error {
	if config.AppConfig.GamePath == "" {
		return fmt.Errorf("game path not specified")
	}
	if len(config.AppConfig.MissionPaths) == 0 {
		return fmt.Errorf("no mission paths specified")
	}

	format, err := report.ParseFormat(config.AppConfig.Format)
	if err != nil {
		return err
	}
	tasks, err := scanTasks()
	if err != nil {
		return err
	}

	metrics.Register()

	m, err := buildMatcher()
	if err != nil {
		return err
	}
	defer m.Close()

	ignoreList, err := ignore.NewList(config.AppConfig.IgnorePatterns)
	if err != nil {
		return fmt.Errorf("invalid ignore patterns: %w", err)
	}

	writer, err := report.NewWriter(config.AppConfig.ReportDir)
	if err != nil {
		return err
	}

	opts := scanner.Options{
		Reports:        writer,
		Matcher:        m,
		IgnoreList:     ignoreList,
		MaxSuggestions: scanMaxSuggestions,
		Workers:        config.AppConfig.Workers,
		ShowProgress:   config.AppConfig.ShowProgress,
		FoldAccents:    config.AppConfig.FoldAccents,
	}
	if !scanNoCache {
		st, err := openCacheStore()
		if err != nil {
			log.Printf("[WARN] %v, continuing without cache", err)
		} else if st != nil {
			defer st.Close()
			opts.Store = st
		}
	}

	pipeline := scanner.NewPipeline(scanner.FileContentProvider{}, scanner.FileMissionScanner{}, opts)

	fmt.Printf("Scanning game content: %s\n", config.AppConfig.GamePath)
	results, runErr := pipeline.Run(ctx, config.AppConfig.GamePath, config.AppConfig.MissionPaths, tasks, format)
	if len(results) > 0 {
		fmt.Printf("Validated %d missions across %d tasks\n", pipeline.MissionCount(), len(tasks))
	}

	for _, result := range results {
		fmt.Printf("\n=== Task: %s ===\n", result.Task)
		fmt.Println(report.Summarize(result.Results))
		if result.ReportPath != "" {
			fmt.Printf("\nMission report: %s\n", result.ReportPath)
		}
		if result.SummaryPath != "" {
			fmt.Printf("Class summary:  %s\n", result.SummaryPath)
		}
		if result.SuggestionsPath != "" {
			fmt.Printf("Suggestions:    %s\n", result.SuggestionsPath)
		}
		if result.Record != nil {
			fmt.Printf("Run recorded as %s\n", result.Record.ID)
		}
	}

	if runErr != nil {
		return fmt.Errorf("scan failed: %w", runErr)
	}
	return nil
}
