// file: internal/report/report.go
// version: 1.0.0
// guid: b7ad6322-ccd0-47de-8ab4-af5ce8303443

// Package report renders validation results as text and JSON files.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/analysis"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/matcher"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/models"
)

// Format selects the mission report output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat maps a user-supplied format string onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Writer writes report files into one output directory.
type Writer struct {
	outputDir string
	now       func() time.Time
}

// NewWriter creates the output directory if needed.
func NewWriter(outputDir string) (*Writer, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	return &Writer{outputDir: outputDir, now: time.Now}, nil
}

// WriteMissionReport writes the per-mission dependency report and returns
// the file path.
func (w *Writer) WriteMissionReport(taskName string, results map[string]models.ValidationResult, format Format) (string, error) {
	timestamp := w.now().Format("20060102_150405")
	ext := "txt"
	if format == FormatJSON {
		ext = "json"
	}
	path := filepath.Join(w.outputDir, fmt.Sprintf("report_%s_%s.%s", taskName, timestamp, ext))

	var data []byte
	var err error
	if format == FormatJSON {
		data, err = w.renderJSON(results)
	} else {
		data = []byte(w.renderText(results))
	}
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

func (w *Writer) renderText(results map[string]models.ValidationResult) string {
	missions := make([]string, 0, len(results))
	for mission := range results {
		missions = append(missions, mission)
	}
	sort.Strings(missions)

	var nonCompliant, compliant []string
	for _, mission := range missions {
		if results[mission].IsCompliant() {
			compliant = append(compliant, mission)
		} else {
			nonCompliant = append(nonCompliant, mission)
		}
	}

	var b strings.Builder
	b.WriteString("=== Mission Dependency Report ===\n\n")

	if len(nonCompliant) > 0 {
		b.WriteString("[!] MISSIONS WITH MISSING DEPENDENCIES\n")
		b.WriteString(strings.Repeat("-", 50) + "\n\n")
		for _, mission := range nonCompliant {
			result := results[mission]
			b.WriteString(mission + "\n")
			if result.MissingClasses.Len() > 0 {
				b.WriteString("  Missing Classes:\n")
				for _, cls := range result.MissingClasses.Sorted() {
					fmt.Fprintf(&b, "  └─ %s\n", cls)
				}
			}
			if result.MissingAssets.Len() > 0 {
				b.WriteString("  Missing Assets:\n")
				for _, asset := range result.MissingAssets.Sorted() {
					fmt.Fprintf(&b, "  └─ %s\n", asset)
				}
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\n[+] COMPLIANT MISSIONS (%d)\n", len(compliant))
	b.WriteString(strings.Repeat("-", 50) + "\n")
	for _, mission := range compliant {
		b.WriteString(mission + "\n")
	}

	total := len(results)
	passRate := 0.0
	if total > 0 {
		passRate = float64(len(compliant)) / float64(total) * 100
	}
	b.WriteString("\n")
	b.WriteString("[*] SUMMARY\n")
	b.WriteString(strings.Repeat("-", 9) + "\n")
	fmt.Fprintf(&b, "Total Missions: %d\n", total)
	fmt.Fprintf(&b, "Compliant: %d\n", len(compliant))
	fmt.Fprintf(&b, "Non-compliant: %d\n", len(nonCompliant))
	fmt.Fprintf(&b, "Pass Rate: %.1f%%\n", passRate)
	fmt.Fprintf(&b, "Last Validated: %s\n", w.now().Format("2006-01-02 15:04:05"))

	return b.String()
}

func (w *Writer) renderJSON(results map[string]models.ValidationResult) ([]byte, error) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return data, nil
}

// WriteClassSummary writes the pooled valid/missing class summary with
// suggested replacements and returns the file path.
func (w *Writer) WriteClassSummary(taskName string, valid, missing models.ClassSet, suggestions map[string][]matcher.MatchCandidate) (string, error) {
	path := filepath.Join(w.outputDir, fmt.Sprintf("%s_class_summary.txt", taskName))

	var b strings.Builder
	b.WriteString("=== Class Name Summary ===\n\n")

	b.WriteString("[+] Valid Classes\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	for _, name := range valid.Sorted() {
		b.WriteString(name + "\n")
	}
	fmt.Fprintf(&b, "\nTotal Valid: %d\n\n", valid.Len())

	b.WriteString("[!] Missing Classes\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	for _, name := range missing.Sorted() {
		b.WriteString(name + "\n")
		if matches, ok := suggestions[name]; ok && len(matches) > 0 {
			b.WriteString("  Suggested replacements:\n")
			for _, match := range matches {
				fmt.Fprintf(&b, "  └─ %s (%.2f)\n", match.Name, match.Score)
			}
		} else {
			b.WriteString("  (no suggested replacements found)\n")
		}
	}
	fmt.Fprintf(&b, "\nTotal Missing: %d\n", missing.Len())

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write class summary: %w", err)
	}
	return path, nil
}

// WriteSuggestionReport writes the per-task suggestion report as JSON and
// returns the file path.
func (w *Writer) WriteSuggestionReport(taskName string, report analysis.SuggestionReport) (string, error) {
	path := filepath.Join(w.outputDir, fmt.Sprintf("%s_suggestions.json", taskName))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode suggestions: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write suggestions: %w", err)
	}
	return path, nil
}

// Summarize renders the pooled counts of a run for console output.
func Summarize(results map[string]models.ValidationResult) string {
	validAssets := models.NewClassSet()
	validClasses := models.NewClassSet()
	missingAssets := models.NewClassSet()
	missingClasses := models.NewClassSet()
	for _, result := range results {
		validAssets = validAssets.Union(result.ValidAssets)
		validClasses = validClasses.Union(result.ValidClasses)
		missingAssets = missingAssets.Union(result.MissingAssets)
		missingClasses = missingClasses.Union(result.MissingClasses)
	}

	var b strings.Builder
	b.WriteString("\nResults Summary:\n")
	fmt.Fprintf(&b, "Valid Assets: %d\n", validAssets.Len())
	fmt.Fprintf(&b, "Valid Classes: %d\n", validClasses.Len())
	fmt.Fprintf(&b, "Missing Assets: %d\n", missingAssets.Len())
	fmt.Fprintf(&b, "Missing Classes: %d", missingClasses.Len())

	if missingClasses.Len() > 0 {
		b.WriteString("\n\nMissing Classes:")
		for _, name := range missingClasses.Sorted() {
			fmt.Fprintf(&b, "\n  - %s", name)
		}
	}
	return b.String()
}
