// file: internal/scanner/scanner_test.go
// version: 1.0.0
// guid: 88bff9b8-1e5c-4e22-b36d-a888f79d1917

package scanner

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestScanContent(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "classes.txt"), "helmet_combat\n\n# base game\nvest_carrier_black\n")
	writeTestFile(t, filepath.Join(root, "sub", "classes.txt"), "uniform_combat\n")
	writeTestFile(t, filepath.Join(root, "textures", "assets.txt"), "textures/camo.paa\n")

	classes, assets, err := FileContentProvider{}.ScanContent(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("ScanContent failed: %v", err)
	}

	wantClasses := []string{"helmet_combat", "vest_carrier_black", "uniform_combat"}
	if !reflect.DeepEqual(classes, wantClasses) {
		t.Errorf("expected classes %v, got %v", wantClasses, classes)
	}
	wantAssets := []string{"textures/camo.paa"}
	if !reflect.DeepEqual(assets, wantAssets) {
		t.Errorf("expected assets %v, got %v", wantAssets, assets)
	}
}

func TestScanContentMissingPath(t *testing.T) {
	classes, assets, err := FileContentProvider{}.ScanContent(
		context.Background(), []string{filepath.Join(t.TempDir(), "nope")})
	if err != nil {
		t.Fatalf("ScanContent failed: %v", err)
	}
	if len(classes) != 0 || len(assets) != 0 {
		t.Errorf("expected empty scan, got %v / %v", classes, assets)
	}
}

func TestScanContentCancelled(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "classes.txt"), "helmet_combat\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := (FileContentProvider{}).ScanContent(ctx, []string{root}); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestIsMissionDir(t *testing.T) {
	root := t.TempDir()

	for _, marker := range []string{"mission.sqm", "description.ext", "init.sqf"} {
		dir := filepath.Join(root, "with_"+marker)
		writeTestFile(t, filepath.Join(dir, marker), "")
		if !IsMissionDir(dir) {
			t.Errorf("expected %s to mark a mission dir", marker)
		}
	}

	empty := filepath.Join(root, "empty")
	if err := os.MkdirAll(empty, 0755); err != nil {
		t.Fatal(err)
	}
	if IsMissionDir(empty) {
		t.Error("empty dir should not be a mission dir")
	}
	if IsMissionDir(filepath.Join(root, "missing")) {
		t.Error("missing path should not be a mission dir")
	}

	file := filepath.Join(root, "plain.txt")
	writeTestFile(t, file, "x")
	if IsMissionDir(file) {
		t.Error("plain file should not be a mission dir")
	}
}

func TestScanMissions(t *testing.T) {
	root := t.TempDir()

	alpha := filepath.Join(root, "co24_alpha")
	writeTestFile(t, filepath.Join(alpha, "mission.sqm"), "")
	writeTestFile(t, filepath.Join(alpha, "equipment.txt"), "vest_carrier_black\nhelmet_combat\n")
	writeTestFile(t, filepath.Join(alpha, "assets.txt"), "textures/camo.paa\n")

	bravo := filepath.Join(root, "co12_bravo")
	writeTestFile(t, filepath.Join(bravo, "description.ext"), "")
	writeTestFile(t, filepath.Join(bravo, "equipment.txt"), "uniform_combat\n")

	// Neither a mission dir nor a parent of one.
	writeTestFile(t, filepath.Join(root, "docs", "readme.txt"), "notes")

	scans, err := FileMissionScanner{}.ScanMissions(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("ScanMissions failed: %v", err)
	}
	if len(scans) != 2 {
		t.Fatalf("expected 2 missions, got %d", len(scans))
	}

	// Sorted by mission name.
	if scans[0].Mission != "co12_bravo" || scans[1].Mission != "co24_alpha" {
		t.Errorf("unexpected mission order: %s, %s", scans[0].Mission, scans[1].Mission)
	}
	if !scans[1].Equipment.Has("vest_carrier_black") || !scans[1].Equipment.Has("helmet_combat") {
		t.Errorf("alpha equipment wrong: %v", scans[1].Equipment.Sorted())
	}
	if !scans[1].Assets.Has("textures/camo.paa") {
		t.Errorf("alpha assets wrong: %v", scans[1].Assets.Sorted())
	}
	if scans[0].Assets.Len() != 0 {
		t.Errorf("bravo should have no assets, got %v", scans[0].Assets.Sorted())
	}
}

func TestScanMissionsDirectPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "co08_direct")
	writeTestFile(t, filepath.Join(dir, "init.sqf"), "")
	writeTestFile(t, filepath.Join(dir, "equipment.txt"), "rifle_carbine\n")

	scans, err := FileMissionScanner{}.ScanMissions(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("ScanMissions failed: %v", err)
	}
	if len(scans) != 1 || scans[0].Mission != "co08_direct" {
		t.Fatalf("expected one mission co08_direct, got %v", scans)
	}
	if !scans[0].Equipment.Has("rifle_carbine") {
		t.Errorf("equipment wrong: %v", scans[0].Equipment.Sorted())
	}
}

func TestScanMissionsNoneFound(t *testing.T) {
	scans, err := FileMissionScanner{}.ScanMissions(context.Background(), []string{t.TempDir()})
	if err != nil {
		t.Fatalf("ScanMissions failed: %v", err)
	}
	if len(scans) != 0 {
		t.Errorf("expected no missions, got %d", len(scans))
	}
}

func TestScanMissionsCancelled(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "co08_direct")
	writeTestFile(t, filepath.Join(dir, "mission.sqm"), "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := (FileMissionScanner{}).ScanMissions(ctx, []string{dir}); err == nil {
		t.Error("expected error from cancelled context")
	}
}
