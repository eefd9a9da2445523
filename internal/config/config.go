// file: internal/config/config.go
// version: 1.0.0
// guid: 0bc1eb35-12f9-4a40-b8e2-0734ae9a11b2

// Package config holds the application configuration loaded through viper.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"

	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/matcher"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/models"
)

// Config holds application configuration
type Config struct {
	GamePath         string
	MissionPaths     []string
	CachePath        string
	ReportDir        string
	Format           string // "text" (default) or "json"
	Workers          int
	ShowProgress     bool
	FoldAccents      bool
	IgnorePatterns   []string
	Tasks            []models.ScanTask
	WatchDebounce    time.Duration
	WatchMinInterval time.Duration
}

var AppConfig Config

// InitConfig initializes the application configuration
func InitConfig() {
	// Set defaults
	viper.SetDefault("cache_path", ".cache")
	viper.SetDefault("report_dir", "reports")
	viper.SetDefault("format", "text")
	viper.SetDefault("workers", 16)
	viper.SetDefault("progress", true)
	viper.SetDefault("watch_debounce", "2s")
	viper.SetDefault("watch_min_interval", "10s")

	AppConfig = Config{
		GamePath:         viper.GetString("game_path"),
		MissionPaths:     viper.GetStringSlice("missions"),
		CachePath:        viper.GetString("cache_path"),
		ReportDir:        viper.GetString("report_dir"),
		Format:           viper.GetString("format"),
		Workers:          viper.GetInt("workers"),
		ShowProgress:     viper.GetBool("progress"),
		FoldAccents:      viper.GetBool("fold_accents"),
		IgnorePatterns:   viper.GetStringSlice("ignore_patterns"),
		WatchDebounce:    viper.GetDuration("watch_debounce"),
		WatchMinInterval: viper.GetDuration("watch_min_interval"),
	}

	if AppConfig.Workers < 1 {
		AppConfig.Workers = 16
	}

	if err := viper.UnmarshalKey("tasks", &AppConfig.Tasks); err != nil {
		log.Printf("[ERROR] failed to parse tasks from configuration: %v", err)
		AppConfig.Tasks = nil
	}
}

// FuzzyConfig returns the matcher tuning: the built-in defaults overlaid
// with any `fuzzy` settings from the configuration file.
func FuzzyConfig() (matcher.Config, error) {
	cfg, err := matcher.DefaultConfig()
	if err != nil {
		return matcher.Config{}, err
	}

	overlays := map[string]func(){
		"fuzzy.similarity_threshold":        func() { cfg.SimilarityThreshold = viper.GetFloat64("fuzzy.similarity_threshold") },
		"fuzzy.base_weight":                 func() { cfg.BaseWeight = viper.GetFloat64("fuzzy.base_weight") },
		"fuzzy.substitution_weight":         func() { cfg.SubstitutionWeight = viper.GetFloat64("fuzzy.substitution_weight") },
		"fuzzy.direct_substitution_cutoff":  func() { cfg.DirectSubstitutionCutoff = viper.GetFloat64("fuzzy.direct_substitution_cutoff") },
		"fuzzy.high_confidence_threshold":   func() { cfg.HighConfidenceThreshold = viper.GetFloat64("fuzzy.high_confidence_threshold") },
		"fuzzy.exhaustive_scoring":          func() { cfg.ExhaustiveScoring = viper.GetBool("fuzzy.exhaustive_scoring") },
		"fuzzy.max_suggestions":             func() { cfg.MaxSuggestions = viper.GetInt("fuzzy.max_suggestions") },
		"fuzzy.normalize_cache_size":        func() { cfg.NormalizeCacheSize = viper.GetInt("fuzzy.normalize_cache_size") },
		"fuzzy.batch_parallel_threshold":    func() { cfg.BatchParallelThreshold = viper.GetInt("fuzzy.batch_parallel_threshold") },
		"fuzzy.min_chunk_size":              func() { cfg.MinChunkSize = viper.GetInt("fuzzy.min_chunk_size") },
		"fuzzy.max_workers":                 func() { cfg.MaxWorkers = viper.GetInt("fuzzy.max_workers") },
		"fuzzy.strip_prefixes":              func() { cfg.StripPrefixes = viper.GetStringSlice("fuzzy.strip_prefixes") },
	}
	for key, apply := range overlays {
		if viper.IsSet(key) {
			apply()
		}
	}

	// Category and substitution tables replace the defaults wholesale when
	// configured; merging partial rule lists would scramble rule order.
	if viper.IsSet("fuzzy.categories") {
		cfg.Categories = nil
		if err := viper.UnmarshalKey("fuzzy.categories", &cfg.Categories); err != nil {
			return matcher.Config{}, fmt.Errorf("invalid fuzzy categories: %w", err)
		}
	}
	if viper.IsSet("fuzzy.substitutions") {
		cfg.Substitutions = nil
		if err := viper.UnmarshalKey("fuzzy.substitutions", &cfg.Substitutions); err != nil {
			return matcher.Config{}, fmt.Errorf("invalid fuzzy substitutions: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return matcher.Config{}, fmt.Errorf("invalid fuzzy configuration: %w", err)
	}
	return cfg, nil
}
