// file: cmd/report.go
// version: 1.0.0
// guid: 9e8d7c6b-5a4f-43e2-b1d0-c9f8e7d6a5b4

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/analysis"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/config"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/models"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/report"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/store"
)

var reportTaskFilter string

var (
	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Inspect stored validation runs",
		Long:  "List, re-render, and compare validation runs recorded in the scan cache.",
	}

	reportListCmd = &cobra.Command{
		Use:   "list",
		Short: "List recorded validation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportList(reportTaskFilter)
		},
	}

	reportShowCmd = &cobra.Command{
		Use:   "show <run-id>",
		Short: "Re-render a recorded run's mission report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportShow(args[0])
		},
	}

	reportDiffCmd = &cobra.Command{
		Use:   "diff <base-run-id> <compare-run-id>",
		Short: "Show missing dependencies introduced since a base run",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportDiff(args[0], args[1])
		},
	}
)

func init() {
	reportListCmd.Flags().StringVar(&reportTaskFilter, "task", "", "only list runs recorded for this task")

	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportDiffCmd)
}

func runReportList(task string) error {
	st, err := openCacheStore()
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("no cache store configured")
	}
	defer st.Close()

	records, err := st.ListRuns(task)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No recorded runs found.")
		return nil
	}

	fmt.Printf("%-26s  %-20s  %-19s  %8s  %9s  %7s\n",
		"RUN ID", "TASK", "CREATED", "MISSIONS", "COMPLIANT", "MISSING")
	for _, record := range records {
		fmt.Printf("%-26s  %-20s  %-19s  %8d  %9d  %7d\n",
			record.ID, record.Task, record.CreatedAt.Format("2006-01-02 15:04:05"),
			record.MissionCount, record.CompliantCount, record.MissingClasses)
	}
	return nil
}

func runReportShow(runID string) error {
	format, err := report.ParseFormat(config.AppConfig.Format)
	if err != nil {
		return err
	}

	st, err := openCacheStore()
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("no cache store configured")
	}
	defer st.Close()

	record, results, err := loadRun(st, runID)
	if err != nil {
		return err
	}

	writer, err := report.NewWriter(config.AppConfig.ReportDir)
	if err != nil {
		return err
	}
	path, err := writer.WriteMissionReport(record.Task, results, format)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s (task %s, recorded %s)\n", record.ID, record.Task, record.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Println(report.Summarize(results))
	fmt.Printf("\nMission report: %s\n", path)
	return nil
}

func runReportDiff(baseID, compareID string) error {
	st, err := openCacheStore()
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("no cache store configured")
	}
	defer st.Close()

	_, base, err := loadRun(st, baseID)
	if err != nil {
		return err
	}
	compareRecord, compare, err := loadRun(st, compareID)
	if err != nil {
		return err
	}

	diff := analysis.Difference(base, compare)
	fmt.Printf("New missing dependencies in run %s relative to %s:\n", compareRecord.ID, baseID)
	printed := 0
	for _, mission := range sortedMissions(diff) {
		result := diff[mission]
		if result.IsCompliant() {
			continue
		}
		printed++
		fmt.Printf("\n%s\n", mission)
		for _, cls := range result.MissingClasses.Sorted() {
			fmt.Printf("  └─ %s\n", cls)
		}
		for _, asset := range result.MissingAssets.Sorted() {
			fmt.Printf("  └─ %s (asset)\n", asset)
		}
	}
	if printed == 0 {
		fmt.Println("No new missing dependencies.")
	}
	return nil
}

// loadRun fetches a run summary and its full results, failing when the run
// is unknown.
func loadRun(st *store.Store, runID string) (*models.RunRecord, map[string]models.ValidationResult, error) {
	record, err := st.GetRun(runID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	if record == nil {
		return nil, nil, fmt.Errorf("run %s not found", runID)
	}
	results, err := st.GetRunResults(runID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load results for run %s: %w", runID, err)
	}
	if results == nil {
		return nil, nil, fmt.Errorf("run %s has no stored results", runID)
	}
	return record, results, nil
}

func sortedMissions(results map[string]models.ValidationResult) []string {
	missions := make([]string, 0, len(results))
	for mission := range results {
		missions = append(missions, mission)
	}
	sort.Strings(missions)
	return missions
}
