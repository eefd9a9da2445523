// file: internal/config/config_test.go
// version: 1.0.0
// guid: 173a42a4-dfb5-4d38-81c1-322df48e222d

package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

// TestInitConfig tests configuration initialization with defaults
func TestInitConfig(t *testing.T) {
	viper.Reset()

	InitConfig()

	if AppConfig.CachePath != ".cache" {
		t.Errorf("expected cache_path '.cache', got %q", AppConfig.CachePath)
	}
	if AppConfig.ReportDir != "reports" {
		t.Errorf("expected report_dir 'reports', got %q", AppConfig.ReportDir)
	}
	if AppConfig.Format != "text" {
		t.Errorf("expected format 'text', got %q", AppConfig.Format)
	}
	if AppConfig.Workers != 16 {
		t.Errorf("expected 16 workers, got %d", AppConfig.Workers)
	}
	if !AppConfig.ShowProgress {
		t.Error("expected progress to default to true")
	}
	if AppConfig.FoldAccents {
		t.Error("expected fold_accents to default to false")
	}
	if AppConfig.WatchDebounce != 2*time.Second {
		t.Errorf("expected watch_debounce 2s, got %v", AppConfig.WatchDebounce)
	}
	if AppConfig.WatchMinInterval != 10*time.Second {
		t.Errorf("expected watch_min_interval 10s, got %v", AppConfig.WatchMinInterval)
	}
	if len(AppConfig.Tasks) != 0 {
		t.Errorf("expected no tasks by default, got %v", AppConfig.Tasks)
	}
}

// TestInitConfigValues tests explicit configuration values
func TestInitConfigValues(t *testing.T) {
	viper.Reset()
	viper.Set("game_path", "/data/game")
	viper.Set("missions", []string{"/data/missions"})
	viper.Set("workers", 4)
	viper.Set("format", "json")
	viper.Set("ignore_patterns", []string{"ace_*"})

	InitConfig()

	if AppConfig.GamePath != "/data/game" {
		t.Errorf("expected game path /data/game, got %q", AppConfig.GamePath)
	}
	if len(AppConfig.MissionPaths) != 1 || AppConfig.MissionPaths[0] != "/data/missions" {
		t.Errorf("mission paths wrong: %v", AppConfig.MissionPaths)
	}
	if AppConfig.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", AppConfig.Workers)
	}
	if AppConfig.Format != "json" {
		t.Errorf("expected json format, got %q", AppConfig.Format)
	}
	if len(AppConfig.IgnorePatterns) != 1 || AppConfig.IgnorePatterns[0] != "ace_*" {
		t.Errorf("ignore patterns wrong: %v", AppConfig.IgnorePatterns)
	}
}

// TestInitConfigNormalizesWorkers tests worker count normalization
func TestInitConfigNormalizesWorkers(t *testing.T) {
	viper.Reset()
	viper.Set("workers", 0)

	InitConfig()

	if AppConfig.Workers != 16 {
		t.Errorf("expected worker count to normalize to 16, got %d", AppConfig.Workers)
	}
}

// TestInitConfigTasks tests task list parsing
func TestInitConfigTasks(t *testing.T) {
	viper.Reset()
	viper.Set("tasks", []map[string]any{
		{"name": "aegis", "mods": []string{"/mods/aegis", "/mods/aegis_extras"}},
		{"name": "vanilla"},
	})

	InitConfig()

	if len(AppConfig.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(AppConfig.Tasks))
	}
	if AppConfig.Tasks[0].Name != "aegis" || len(AppConfig.Tasks[0].Mods) != 2 {
		t.Errorf("task 0 wrong: %+v", AppConfig.Tasks[0])
	}
	if AppConfig.Tasks[1].Name != "vanilla" || len(AppConfig.Tasks[1].Mods) != 0 {
		t.Errorf("task 1 wrong: %+v", AppConfig.Tasks[1])
	}
}

// TestFuzzyConfigDefaults tests the untouched fuzzy defaults
func TestFuzzyConfigDefaults(t *testing.T) {
	viper.Reset()

	cfg, err := FuzzyConfig()
	if err != nil {
		t.Fatalf("FuzzyConfig failed: %v", err)
	}
	if cfg.SimilarityThreshold != 0.75 {
		t.Errorf("expected default similarity threshold 0.75, got %v", cfg.SimilarityThreshold)
	}
	if cfg.MaxSuggestions != 3 {
		t.Errorf("expected default max suggestions 3, got %v", cfg.MaxSuggestions)
	}
	if len(cfg.Categories) != 5 {
		t.Errorf("expected 5 default categories, got %d", len(cfg.Categories))
	}
}

// TestFuzzyConfigOverlay tests partial overrides from the config file
func TestFuzzyConfigOverlay(t *testing.T) {
	viper.Reset()
	viper.Set("fuzzy.similarity_threshold", 0.9)
	viper.Set("fuzzy.max_suggestions", 5)
	viper.Set("fuzzy.exhaustive_scoring", true)

	cfg, err := FuzzyConfig()
	if err != nil {
		t.Fatalf("FuzzyConfig failed: %v", err)
	}
	if cfg.SimilarityThreshold != 0.9 {
		t.Errorf("expected overridden threshold 0.9, got %v", cfg.SimilarityThreshold)
	}
	if cfg.MaxSuggestions != 5 {
		t.Errorf("expected overridden max suggestions 5, got %v", cfg.MaxSuggestions)
	}
	if !cfg.ExhaustiveScoring {
		t.Error("expected exhaustive scoring to be enabled")
	}
	// Untouched values keep their defaults.
	if cfg.BaseWeight != 0.7 || cfg.SubstitutionWeight != 0.3 {
		t.Errorf("expected default weights 0.7/0.3, got %v/%v", cfg.BaseWeight, cfg.SubstitutionWeight)
	}
	if len(cfg.Substitutions) == 0 {
		t.Error("expected default substitutions to survive overlay")
	}
}

// TestFuzzyConfigReplacesCategories tests wholesale category replacement
func TestFuzzyConfigReplacesCategories(t *testing.T) {
	viper.Reset()
	viper.Set("fuzzy.categories", []map[string]any{
		{"name": "backpack", "keywords": []string{"backpack", "rucksack"}},
	})

	cfg, err := FuzzyConfig()
	if err != nil {
		t.Fatalf("FuzzyConfig failed: %v", err)
	}
	if len(cfg.Categories) != 1 || cfg.Categories[0].Name != "backpack" {
		t.Errorf("expected single backpack category, got %+v", cfg.Categories)
	}
}

// TestFuzzyConfigRejectsInvalid tests fail-fast validation
func TestFuzzyConfigRejectsInvalid(t *testing.T) {
	viper.Reset()
	viper.Set("fuzzy.base_weight", 0.9)
	viper.Set("fuzzy.substitution_weight", 0.9)

	if _, err := FuzzyConfig(); err == nil {
		t.Error("expected error for weights summing above 1")
	}
}
