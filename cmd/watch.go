// file: cmd/watch.go
// version: 1.0.0
// guid: 7c8d9e0f-1a2b-4c3d-8e4f-5a6b7c8d9e0f

package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/config"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/ignore"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/metrics"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/report"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/scanner"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/watcher"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate missions whenever their files change",
	Long: `Run a full scan, then keep watching the mission folders. Edits to mission
content trigger a debounced re-validation of all tasks, rate limited so
editor save bursts cannot stack runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if d, _ := cmd.Flags().GetDuration("debounce"); d > 0 {
			config.AppConfig.WatchDebounce = d
		}
		if d, _ := cmd.Flags().GetDuration("min-interval"); d > 0 {
			config.AppConfig.WatchMinInterval = d
		}
		noCache, _ := cmd.Flags().GetBool("no-cache")
		return runWatch(cmd.Context(), noCache)
	},
}

func init() {
	watchCmd.Flags().Duration("debounce", 0, "settle time before re-validating (0 uses the configured default)")
	watchCmd.Flags().Duration("min-interval", 0, "minimum spacing between runs (0 uses the configured default)")
	watchCmd.Flags().Bool("no-cache", false, "rescan content even when a cached snapshot exists")
}

func runWatch(ctx context.Context, noCache bool) error {
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
		Reports:      writer,
		Matcher:      m,
		IgnoreList:   ignoreList,
		Workers:      config.AppConfig.Workers,
		ShowProgress: false, // progress bars and watch logs do not mix
		FoldAccents:  config.AppConfig.FoldAccents,
	}
	if !noCache {
		st, err := openCacheStore()
		if err != nil {
			log.Printf("[WARN] %v, continuing without cache", err)
		} else if st != nil {
			defer st.Close()
			opts.Store = st
		}
	}

	pipeline := scanner.NewPipeline(scanner.FileContentProvider{}, scanner.FileMissionScanner{}, opts)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Scanning game content: %s\n", config.AppConfig.GamePath)
	if _, err := pipeline.Run(ctx, config.AppConfig.GamePath, config.AppConfig.MissionPaths, tasks, format); err != nil {
		return fmt.Errorf("initial scan failed: %w", err)
	}
	fmt.Printf("Validated %d missions; watching for changes (Ctrl+C to stop)\n", pipeline.MissionCount())

	// Re-validations triggered from different watched roots run one at a
	// time; the watcher's rate limiter keeps them from queueing up.
	var runMu sync.Mutex
	revalidate := func(rootDir string) {
		runMu.Lock()
		defer runMu.Unlock()

		if err := pipeline.ScanMissions(ctx, config.AppConfig.MissionPaths); err != nil {
			log.Printf("[ERROR] watch: mission rescan failed: %v", err)
			return
		}
		for _, task := range tasks {
			result, err := pipeline.ExecuteTask(ctx, task, format)
			if err != nil {
				log.Printf("[ERROR] watch: task %s failed: %v", task.Name, err)
				continue
			}
			fmt.Printf("\n=== Task: %s (change under %s) ===\n", task.Name, rootDir)
			fmt.Println(report.Summarize(result.Results))
		}
	}

	var watchers []*watcher.Watcher
	for _, path := range config.AppConfig.MissionPaths {
		w := watcher.New(revalidate, config.AppConfig.WatchDebounce, config.AppConfig.WatchMinInterval)
		if err := w.Start(path); err != nil {
			for _, started := range watchers {
				started.Stop()
			}
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		watchers = append(watchers, w)
	}
	defer func() {
		for _, w := range watchers {
			w.Stop()
		}
	}()

	<-ctx.Done()
	fmt.Println("\nStopping watch mode")
	return nil
}
