// file: cmd/diagnostics_test.go
// version: 1.0.0
// guid: 5480d7f7-4a6a-4b7f-9d16-6b589c8a3c0b

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/config"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/models"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/store"
)

func TestTruncateString(t *testing.T) {
	if got := truncateString("short", 10); got != "short" {
		t.Fatalf("expected no truncation, got %q", got)
	}
	if got := truncateString("this is long", 4); got != "this..." {
		t.Fatalf("expected truncation, got %q", got)
	}
}

func TestPromptYesNo(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	_, _ = w.Write([]byte("yes\n"))
	_ = w.Close()

	origStdin := os.Stdin
	os.Stdin = r
	defer func() {
		os.Stdin = origStdin
	}()

	confirmed, err := promptYesNo("confirm")
	if err != nil {
		t.Fatalf("promptYesNo failed: %v", err)
	}
	if !confirmed {
		t.Fatal("expected confirmation")
	}
}

func TestPromptYesNoRejects(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	_, _ = w.Write([]byte("no\n"))
	_ = w.Close()

	origStdin := os.Stdin
	os.Stdin = r
	defer func() {
		os.Stdin = origStdin
	}()

	confirmed, err := promptYesNo("confirm")
	if err != nil {
		t.Fatalf("promptYesNo failed: %v", err)
	}
	if confirmed {
		t.Fatal("expected rejection")
	}
}

// setupDiagnosticsData populates a fresh cache store with two content
// snapshots and one recorded run, then closes it so the commands under test
// can reopen it.
func setupDiagnosticsData(t *testing.T) string {
	t.Helper()
	cacheDir := filepath.Join(t.TempDir(), "cache")
	st, err := store.Open(cacheDir)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if _, err := st.PutSnapshot("aaaa1111", []string{"class_a"}, nil); err != nil {
		t.Fatalf("PutSnapshot failed: %v", err)
	}
	if _, err := st.PutSnapshot("bbbb2222", []string{"class_b"}, nil); err != nil {
		t.Fatalf("PutSnapshot failed: %v", err)
	}
	results := map[string]models.ValidationResult{
		"op_demo": {Mission: "op_demo", MissingClasses: models.NewClassSet("ghost_class")},
	}
	if _, err := st.RecordRun("default", results); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}
	return cacheDir
}

func TestRunDiagnosticsConfig(t *testing.T) {
	origConfig := config.AppConfig
	defer func() {
		config.AppConfig = origConfig
	}()

	gameDir := t.TempDir()
	config.AppConfig = config.Config{
		GamePath:     gameDir,
		MissionPaths: []string{filepath.Join(gameDir, "does-not-exist")},
		ReportDir:    "reports",
		Format:       "text",
		Workers:      4,
		Tasks:        []models.ScanTask{{Name: "aegis", Mods: []string{"/mods/aegis"}}},
	}
	if err := runDiagnosticsConfig(); err != nil {
		t.Fatalf("runDiagnosticsConfig failed: %v", err)
	}

	config.AppConfig.IgnorePatterns = []string{"[abc"}
	if err := runDiagnosticsConfig(); err == nil {
		t.Fatal("expected error for a malformed ignore pattern")
	}
}

func TestRunDiagnosticsCacheErrors(t *testing.T) {
	origConfig := config.AppConfig
	defer func() {
		config.AppConfig = origConfig
	}()

	if err := runDiagnosticsCache(0, "", false); err == nil {
		t.Fatal("expected error for invalid limit")
	}

	config.AppConfig.CachePath = ""
	if err := runDiagnosticsCache(5, "snapshot:", false); err == nil {
		t.Fatal("expected error without a cache store")
	}
	if err := runDiagnosticsCache(5, "snapshot:", true); err == nil {
		t.Fatal("expected error for a raw query without a cache store")
	}
}

func TestRunDiagnosticsCacheSuccess(t *testing.T) {
	origConfig := config.AppConfig
	defer func() {
		config.AppConfig = origConfig
	}()

	config.AppConfig.CachePath = setupDiagnosticsData(t)

	// Limit below the snapshot count exercises the overflow line.
	if err := runDiagnosticsCache(1, "snapshot:", false); err != nil {
		t.Fatalf("runDiagnosticsCache failed: %v", err)
	}
	if err := runDiagnosticsCache(5, "snapshot:", true); err != nil {
		t.Fatalf("raw cache query failed: %v", err)
	}
	if err := runDiagnosticsCache(5, "", true); err != nil {
		t.Fatalf("raw cache query without prefix failed: %v", err)
	}
}

func TestRunDiagnosticsClearCache(t *testing.T) {
	origConfig := config.AppConfig
	defer func() {
		config.AppConfig = origConfig
	}()

	config.AppConfig.CachePath = setupDiagnosticsData(t)

	snapshotCount := func() int {
		t.Helper()
		st, closer, err := openDiagnosticsStore()
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		defer closer()
		hashes, err := st.SnapshotHashes()
		if err != nil {
			t.Fatalf("SnapshotHashes failed: %v", err)
		}
		return len(hashes)
	}

	if err := runDiagnosticsClearCache(false, true); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if got := snapshotCount(); got != 2 {
		t.Fatalf("dry run deleted snapshots, %d left", got)
	}

	// A declined prompt leaves the cache alone.
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	_, _ = w.Write([]byte("no\n"))
	_ = w.Close()
	origStdin := os.Stdin
	os.Stdin = r
	err = runDiagnosticsClearCache(false, false)
	os.Stdin = origStdin
	if err != nil {
		t.Fatalf("declined clear failed: %v", err)
	}
	if got := snapshotCount(); got != 2 {
		t.Fatalf("declined clear deleted snapshots, %d left", got)
	}

	if err := runDiagnosticsClearCache(true, false); err != nil {
		t.Fatalf("forced clear failed: %v", err)
	}
	if got := snapshotCount(); got != 0 {
		t.Fatalf("expected all snapshots deleted, %d left", got)
	}

	// Recorded runs are history, not cache; clearing must not touch them.
	st, closer, err := openDiagnosticsStore()
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	records, err := st.ListRuns("")
	closer()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected the recorded run to survive, got %d", len(records))
	}

	// Clearing an already empty cache is a no-op.
	if err := runDiagnosticsClearCache(true, false); err != nil {
		t.Fatalf("clear on empty cache failed: %v", err)
	}
}

func TestExecuteHelp(t *testing.T) {
	rootCmd.SetArgs([]string{"--help"})
	defer rootCmd.SetArgs(nil)

	if err := Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
}
