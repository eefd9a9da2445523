// file: internal/scanner/scanner.go
// version: 1.0.0
// guid: 015ce23a-a90d-4e6e-b01c-2b41a09f466c

// Package scanner discovers catalog content and mission references on disk
// and orchestrates validation runs.
package scanner

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/models"
)

// ContentProvider supplies catalog content scanned from game or mod folders.
// Implementations own any archive or config parsing; the pipeline only sees
// class names and asset paths.
type ContentProvider interface {
	ScanContent(ctx context.Context, paths []string) (classes []string, assets []string, err error)
}

// MissionScanner extracts equipment and asset references from mission
// folders.
type MissionScanner interface {
	ScanMissions(ctx context.Context, paths []string) ([]models.MissionScan, error)
}

// Sidecar list files: one entry per line, blank lines and #-comments skipped.
const (
	classListFile     = "classes.txt"
	assetListFile     = "assets.txt"
	equipmentListFile = "equipment.txt"
)

// missionMarkers identify a mission folder.
var missionMarkers = []string{"mission.sqm", "description.ext", "init.sqf"}

func readListFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries, nil
}

// FileContentProvider reads catalog content from classes.txt and assets.txt
// list files found anywhere under the given folders.
type FileContentProvider struct{}

// ScanContent walks every path and collects class names and asset paths from
// list files. Missing paths are skipped with a warning.
func (FileContentProvider) ScanContent(ctx context.Context, paths []string) ([]string, []string, error) {
	var classes, assets []string
	for _, root := range paths {
		if _, err := os.Stat(root); err != nil {
			log.Printf("[WARN] content path does not exist: %s", root)
			continue
		}

		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if info.IsDir() {
				return nil
			}

			switch filepath.Base(path) {
			case classListFile:
				entries, err := readListFile(path)
				if err != nil {
					return fmt.Errorf("failed to read class list %s: %w", path, err)
				}
				classes = append(classes, entries...)
			case assetListFile:
				entries, err := readListFile(path)
				if err != nil {
					return fmt.Errorf("failed to read asset list %s: %w", path, err)
				}
				assets = append(assets, entries...)
			}
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
	}
	return classes, assets, nil
}

// FileMissionScanner reads equipment.txt and assets.txt references from
// mission folders.
type FileMissionScanner struct{}

// IsMissionDir reports whether path is a directory containing mission files.
func IsMissionDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	for _, marker := range missionMarkers {
		if _, err := os.Stat(filepath.Join(path, marker)); err == nil {
			return true
		}
	}
	return false
}

// resolveMissionDirs keeps paths that are mission folders and expands other
// folders one level into their mission children. Invalid paths are skipped
// with a warning.
func resolveMissionDirs(paths []string) []string {
	var dirs []string
	for _, path := range paths {
		if IsMissionDir(path) {
			dirs = append(dirs, path)
			continue
		}

		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			log.Printf("[WARN] mission path does not exist: %s", path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			log.Printf("[WARN] failed to read mission path %s: %v", path, err)
			continue
		}
		for _, entry := range entries {
			child := filepath.Join(path, entry.Name())
			if entry.IsDir() && IsMissionDir(child) {
				dirs = append(dirs, child)
			}
		}
	}
	return dirs
}

// ScanMissions scans every mission folder reachable from paths, sorted by
// mission name. Folders that fail to scan are skipped with an error log.
func (FileMissionScanner) ScanMissions(ctx context.Context, paths []string) ([]models.MissionScan, error) {
	dirs := resolveMissionDirs(paths)

	var scans []models.MissionScan
	for _, dir := range dirs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		scan, err := scanMissionDir(dir)
		if err != nil {
			log.Printf("[ERROR] failed to scan mission %s: %v", dir, err)
			continue
		}
		scans = append(scans, scan)
	}

	sort.Slice(scans, func(i, j int) bool { return scans[i].Mission < scans[j].Mission })
	return scans, nil
}

func scanMissionDir(dir string) (models.MissionScan, error) {
	scan := models.MissionScan{
		Mission:   filepath.Base(dir),
		Path:      dir,
		Equipment: models.NewClassSet(),
		Assets:    models.NewClassSet(),
	}

	for file, set := range map[string]models.ClassSet{
		equipmentListFile: scan.Equipment,
		assetListFile:     scan.Assets,
	} {
		path := filepath.Join(dir, file)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		entries, err := readListFile(path)
		if err != nil {
			return models.MissionScan{}, err
		}
		for _, entry := range entries {
			set.Add(entry)
		}
	}
	return scan, nil
}
