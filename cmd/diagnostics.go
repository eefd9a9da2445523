// file: cmd/diagnostics.go
// version: 1.0.0
// guid: c8f6a0d4-2a8b-48cf-9d08-02cc9915d9fc

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/pebble/v2"
	"github.com/spf13/cobra"

	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/config"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/ignore"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/store"
)

var (
	diagnosticsCmd = &cobra.Command{
		Use:   "diagnostics",
		Short: "Debugging and cleanup helpers",
		Long:  "Diagnostic utilities for inspecting the configuration and the scan cache.",
	}

	diagConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration and check the environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnosticsConfig()
		},
	}

	diagCacheCmd = &cobra.Command{
		Use:   "cache",
		Short: "Inspect the scan cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			prefix, _ := cmd.Flags().GetString("prefix")
			raw, _ := cmd.Flags().GetBool("raw")
			return runDiagnosticsCache(limit, prefix, raw)
		},
	}

	diagClearCacheCmd = &cobra.Command{
		Use:   "clear-cache",
		Short: "Remove cached content snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("yes")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			return runDiagnosticsClearCache(force, dryRun)
		},
	}
)

func init() {
	diagCacheCmd.Flags().Int("limit", 5, "Number of entries to display")
	diagCacheCmd.Flags().String("prefix", "snapshot:", "Key prefix to inspect when --raw is set")
	diagCacheCmd.Flags().Bool("raw", false, "Show raw Pebble key/value data")

	diagClearCacheCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
	diagClearCacheCmd.Flags().Bool("dry-run", false, "List cached snapshots without deleting")

	diagnosticsCmd.AddCommand(diagConfigCmd)
	diagnosticsCmd.AddCommand(diagCacheCmd)
	diagnosticsCmd.AddCommand(diagClearCacheCmd)
}

func checkPath(label, path string) {
	if path == "" {
		fmt.Printf("  %-14s (not set)\n", label+":")
		return
	}
	status := "[OK]"
	if _, err := os.Stat(path); err != nil {
		status = "[MISSING]"
	}
	fmt.Printf("  %-14s %s %s\n", label+":", path, status)
}

func runDiagnosticsConfig() error {
	fmt.Println("Paths:")
	checkPath("Game", config.AppConfig.GamePath)
	for _, path := range config.AppConfig.MissionPaths {
		checkPath("Missions", path)
	}
	if len(config.AppConfig.MissionPaths) == 0 {
		fmt.Println("  Missions:      (not set)")
	}
	checkPath("Cache", config.AppConfig.CachePath)
	fmt.Printf("  %-14s %s\n", "Reports:", config.AppConfig.ReportDir)

	fmt.Println("\nValidation:")
	fmt.Printf("  Format: %s, Workers: %d, Progress: %v, Fold accents: %v\n",
		config.AppConfig.Format, config.AppConfig.Workers,
		config.AppConfig.ShowProgress, config.AppConfig.FoldAccents)
	if len(config.AppConfig.Tasks) > 0 {
		fmt.Println("  Tasks:")
		for _, task := range config.AppConfig.Tasks {
			fmt.Printf("    %s (%d mod folders)\n", task.Name, len(task.Mods))
		}
	} else {
		fmt.Println("  Tasks: (none configured)")
	}

	fuzzyCfg, err := config.FuzzyConfig()
	if err != nil {
		return fmt.Errorf("fuzzy configuration is invalid: %w", err)
	}
	fmt.Println("\nFuzzy matcher:")
	fmt.Printf("  Threshold: %.2f, Weights: %.2f base / %.2f substitution\n",
		fuzzyCfg.SimilarityThreshold, fuzzyCfg.BaseWeight, fuzzyCfg.SubstitutionWeight)
	fmt.Printf("  Max suggestions: %d, Categories: %d, Substitutions: %d\n",
		fuzzyCfg.MaxSuggestions, len(fuzzyCfg.Categories), len(fuzzyCfg.Substitutions))

	ignoreList, err := ignore.NewList(config.AppConfig.IgnorePatterns)
	if err != nil {
		return fmt.Errorf("ignore patterns are invalid: %w", err)
	}
	fmt.Printf("\nIgnore patterns: %d active (%d custom)\n",
		len(ignoreList.Patterns()), len(config.AppConfig.IgnorePatterns))

	return nil
}

func openDiagnosticsStore() (*store.Store, func(), error) {
	st, err := openCacheStore()
	if err != nil {
		return nil, nil, err
	}
	if st == nil {
		return nil, nil, errors.New("no cache store configured")
	}
	return st, func() { st.Close() }, nil
}

func runDiagnosticsCache(limit int, prefix string, raw bool) error {
	if limit <= 0 {
		return errors.New("limit must be positive")
	}

	if raw {
		return runRawPebbleQuery(limit, prefix)
	}

	st, closer, err := openDiagnosticsStore()
	if err != nil {
		return err
	}
	defer closer()

	hashes, err := st.SnapshotHashes()
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	fmt.Printf("Cached content snapshots: %d\n", len(hashes))
	for i, hash := range hashes {
		if i >= limit {
			fmt.Printf("  ... and %d more\n", len(hashes)-limit)
			break
		}
		fmt.Printf("  %s\n", hash)
	}

	records, err := st.ListRuns("")
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	fmt.Printf("Recorded runs: %d\n", len(records))
	if latest, err := st.LatestRun(""); err == nil && latest != nil {
		fmt.Printf("Latest run: %s (task %s, %d missions, %d missing classes)\n",
			latest.ID, latest.Task, latest.MissionCount, latest.MissingClasses)
	}

	return nil
}

func runRawPebbleQuery(limit int, prefix string) error {
	if config.AppConfig.CachePath == "" {
		return errors.New("no cache store configured")
	}
	db, err := pebble.Open(config.AppConfig.CachePath, &pebble.Options{
		FormatMajorVersion: pebble.FormatNewest,
	})
	if err != nil {
		return fmt.Errorf("failed to open Pebble database: %w", err)
	}
	defer db.Close()

	iterOpts := &pebble.IterOptions{}
	if prefix != "" {
		iterOpts.LowerBound = []byte(prefix)
		iterOpts.UpperBound = append([]byte(prefix), 0xFF)
	}

	iter, err := db.NewIter(iterOpts)
	if err != nil {
		return fmt.Errorf("failed to create iterator: %w", err)
	}
	defer iter.Close()

	count := 0
	ok := iter.First()
	if prefix != "" {
		ok = iter.SeekGE([]byte(prefix))
	}

	for ; ok && iter.Valid(); ok = iter.Next() {
		fmt.Printf("Key: %s\n", string(iter.Key()))
		val := iter.Value()
		fmt.Printf("Value length: %d bytes\n", len(val))
		preview := truncateString(string(val), 500)
		fmt.Printf("Value preview: %s\n", preview)
		fmt.Println("---")

		count++
		if count >= limit {
			break
		}
	}

	if err := iter.Error(); err != nil {
		return fmt.Errorf("iterator error: %w", err)
	}

	if count == 0 {
		fmt.Println("No keys matched the requested prefix.")
	}

	return nil
}

func runDiagnosticsClearCache(force, dryRun bool) error {
	st, closer, err := openDiagnosticsStore()
	if err != nil {
		return err
	}
	defer closer()

	hashes, err := st.SnapshotHashes()
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(hashes) == 0 {
		fmt.Println("No cached snapshots found.")
		return nil
	}

	fmt.Printf("Found %d cached snapshots:\n", len(hashes))
	for i, hash := range hashes {
		fmt.Printf("%2d. %s\n", i+1, hash)
	}

	if dryRun {
		fmt.Println("Dry run enabled; no deletions were performed.")
		return nil
	}

	if !force {
		confirmed, err := promptYesNo(fmt.Sprintf("Delete %d snapshots", len(hashes)))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted. No snapshots deleted.")
			return nil
		}
	}

	deleted := 0
	for _, hash := range hashes {
		if err := st.DeleteSnapshot(hash); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", hash, err)
			continue
		}
		deleted++
	}

	fmt.Printf("Deleted %d snapshots. The next scan will rebuild them.\n", deleted)
	return nil
}

func promptYesNo(action string) (bool, error) {
	fmt.Printf("%s? Type 'yes' to confirm: ", action)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes", nil
}

func truncateString(in string, max int) string {
	if len(in) <= max {
		return in
	}
	return in[:max] + "..."
}
