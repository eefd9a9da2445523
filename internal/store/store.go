// file: internal/store/store.go
// version: 1.0.0
// guid: 5f829dc6-5e7d-4ddd-9905-6388b4d5cd8a

// Package store persists catalog snapshots and validation runs in PebbleDB.
package store

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble/v2"
	ulid "github.com/oklog/ulid/v2"

	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/models"
)

// Store wraps PebbleDB (LSM key-value store)
//
// Key Schema:
// - snapshot:<hash>            -> CatalogSnapshot JSON
// - run:<ulid>                 -> RunRecord JSON
// - runresult:<ulid>           -> map[mission]ValidationResult JSON
// - idx:run:task:<task>:<ulid> -> "1" (for task-scoped listing)
//
// Run IDs are ULIDs, so lexical key order is creation order.

type Store struct {
	db *pebble.DB
}

// Open opens (or creates) the store at path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open PebbleDB: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func newRunID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// prefixBounds returns the iterator bounds covering every key that starts
// with prefix. The prefix must end in ':'.
func prefixBounds(prefix string) ([]byte, []byte) {
	lower := []byte(prefix)
	upper := []byte(prefix)
	upper[len(upper)-1]++
	return lower, upper
}

// Snapshot operations

// PutSnapshot caches scanned catalog content under its folder hash.
func (s *Store) PutSnapshot(hash string, classes, assets []string) (*models.CatalogSnapshot, error) {
	if hash == "" {
		return nil, fmt.Errorf("snapshot hash must not be empty")
	}
	snap := &models.CatalogSnapshot{
		Hash:      hash,
		CreatedAt: time.Now(),
		Classes:   classes,
		Assets:    assets,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	key := []byte("snapshot:" + hash)
	if err := s.db.Set(key, data, pebble.Sync); err != nil {
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}
	return snap, nil
}

// GetSnapshot returns the cached snapshot for hash, or nil when absent.
func (s *Store) GetSnapshot(hash string) (*models.CatalogSnapshot, error) {
	value, closer, err := s.db.Get([]byte("snapshot:" + hash))
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	var snap models.CatalogSnapshot
	if err := json.Unmarshal(value, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// DeleteSnapshot drops a cached snapshot. Missing hashes are not an error.
func (s *Store) DeleteSnapshot(hash string) error {
	return s.db.Delete([]byte("snapshot:"+hash), pebble.Sync)
}

// SnapshotHashes lists every cached folder hash in key order.
func (s *Store) SnapshotHashes() ([]string, error) {
	lower, upper := prefixBounds("snapshot:")
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var hashes []string
	for iter.First(); iter.Valid(); iter.Next() {
		hashes = append(hashes, string(iter.Key()[len("snapshot:"):]))
	}
	return hashes, nil
}

// Run operations

// RecordRun persists the full results of a validation run together with a
// summary record and returns the record.
func (s *Store) RecordRun(task string, results map[string]models.ValidationResult) (*models.RunRecord, error) {
	id, err := newRunID()
	if err != nil {
		return nil, err
	}

	compliant := 0
	missing := models.NewClassSet()
	for _, result := range results {
		if result.IsCompliant() {
			compliant++
		}
		missing = missing.Union(result.MissingClasses)
	}

	record := &models.RunRecord{
		ID:             id,
		Task:           task,
		CreatedAt:      time.Now(),
		MissionCount:   len(results),
		CompliantCount: compliant,
		MissingClasses: missing.Len(),
	}

	recordData, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	resultData, err := json.Marshal(results)
	if err != nil {
		return nil, err
	}

	batch := s.db.NewBatch()
	if err := batch.Set([]byte("run:"+id), recordData, nil); err != nil {
		batch.Close()
		return nil, err
	}
	if err := batch.Set([]byte("runresult:"+id), resultData, nil); err != nil {
		batch.Close()
		return nil, err
	}
	if err := batch.Set([]byte("idx:run:task:"+task+":"+id), []byte("1"), nil); err != nil {
		batch.Close()
		return nil, err
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return nil, fmt.Errorf("failed to store run %s: %w", id, err)
	}
	return record, nil
}

// GetRun returns a run summary by ID, or nil when absent.
func (s *Store) GetRun(id string) (*models.RunRecord, error) {
	value, closer, err := s.db.Get([]byte("run:" + id))
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	var record models.RunRecord
	if err := json.Unmarshal(value, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// GetRunResults returns the per-mission results of a run, or nil when absent.
func (s *Store) GetRunResults(id string) (map[string]models.ValidationResult, error) {
	value, closer, err := s.db.Get([]byte("runresult:" + id))
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	var results map[string]models.ValidationResult
	if err := json.Unmarshal(value, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ListRuns returns run summaries oldest first. An empty task lists every run,
// otherwise only the runs recorded for that task.
func (s *Store) ListRuns(task string) ([]models.RunRecord, error) {
	if task == "" {
		lower, upper := prefixBounds("run:")
		iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
		if err != nil {
			return nil, err
		}
		defer iter.Close()

		var records []models.RunRecord
		for iter.First(); iter.Valid(); iter.Next() {
			var record models.RunRecord
			if err := json.Unmarshal(iter.Value(), &record); err != nil {
				return nil, err
			}
			records = append(records, record)
		}
		return records, nil
	}

	prefix := "idx:run:task:" + task + ":"
	lower, upper := prefixBounds(prefix)
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var records []models.RunRecord
	for iter.First(); iter.Valid(); iter.Next() {
		id := string(iter.Key()[len(prefix):])
		record, err := s.GetRun(id)
		if err != nil {
			return nil, err
		}
		if record != nil {
			records = append(records, *record)
		}
	}
	return records, nil
}

// LatestRun returns the newest run for a task (or overall when task is
// empty), or nil when no runs exist.
func (s *Store) LatestRun(task string) (*models.RunRecord, error) {
	records, err := s.ListRuns(task)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	latest := records[len(records)-1]
	return &latest, nil
}

// DeleteRun removes a run summary, its results, and its task index entry.
func (s *Store) DeleteRun(id string) error {
	record, err := s.GetRun(id)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	batch := s.db.NewBatch()
	if err := batch.Delete([]byte("run:"+id), nil); err != nil {
		batch.Close()
		return err
	}
	if err := batch.Delete([]byte("runresult:"+id), nil); err != nil {
		batch.Close()
		return err
	}
	if err := batch.Delete([]byte("idx:run:task:"+record.Task+":"+id), nil); err != nil {
		batch.Close()
		return err
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}
	return nil
}
