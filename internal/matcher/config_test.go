// file: internal/matcher/config_test.go
// version: 1.0.0
// guid: 93471bb0-23fb-46f4-9ad6-7b8d0fefa40a

package matcher

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig failed: %v", err)
	}
	if cfg.SimilarityThreshold != 0.75 {
		t.Errorf("similarity threshold = %v, want 0.75", cfg.SimilarityThreshold)
	}
	if cfg.BaseWeight != 0.7 || cfg.SubstitutionWeight != 0.3 {
		t.Errorf("weights = %v/%v, want 0.7/0.3", cfg.BaseWeight, cfg.SubstitutionWeight)
	}
	if cfg.MaxSuggestions != 3 {
		t.Errorf("max suggestions = %d, want 3", cfg.MaxSuggestions)
	}
	if len(cfg.Categories) != 5 {
		t.Fatalf("got %d category rules, want 5", len(cfg.Categories))
	}
	if cfg.Categories[0].Name != "helmet" || cfg.Categories[4].Name != "attachment" {
		t.Errorf("category order = %q..%q, want helmet..attachment",
			cfg.Categories[0].Name, cfg.Categories[4].Name)
	}
	if _, ok := cfg.Substitutions["aegis"]; !ok {
		t.Error("expected aegis in default substitutions")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestDefaultConfigIsolated(t *testing.T) {
	first, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig failed: %v", err)
	}
	first.StripPrefixes[0] = "mutated_"
	first.Categories[0].Keywords[0] = "mutated"
	first.Substitutions["aegis"][0] = "mutated"

	second, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig failed: %v", err)
	}
	if second.StripPrefixes[0] != "cls_" {
		t.Errorf("prefix leaked across calls: %q", second.StripPrefixes[0])
	}
	if second.Categories[0].Keywords[0] == "mutated" {
		t.Error("category keywords leaked across calls")
	}
	if second.Substitutions["aegis"][0] == "mutated" {
		t.Error("substitution aliases leaked across calls")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"threshold above one", func(c *Config) { c.SimilarityThreshold = 1.5 }},
		{"negative threshold", func(c *Config) { c.SimilarityThreshold = -0.1 }},
		{"negative weight", func(c *Config) { c.BaseWeight = -0.2 }},
		{"zero weight sum", func(c *Config) { c.BaseWeight = 0; c.SubstitutionWeight = 0 }},
		{"weight sum above one", func(c *Config) { c.SubstitutionWeight = 0.5 }},
		{"cutoff above one", func(c *Config) { c.DirectSubstitutionCutoff = 1.1 }},
		{"zero cache size", func(c *Config) { c.NormalizeCacheSize = 0 }},
		{"zero batch threshold", func(c *Config) { c.BatchParallelThreshold = 0 }},
		{"zero chunk size", func(c *Config) { c.MinChunkSize = 0 }},
		{"negative workers", func(c *Config) { c.MaxWorkers = -1 }},
		{"unnamed category", func(c *Config) {
			c.Categories = append(c.Categories, CategoryRule{Keywords: []string{"x"}})
		}},
		{"category without keywords", func(c *Config) {
			c.Categories = append(c.Categories, CategoryRule{Name: "empty"})
		}},
		{"empty substitution alias", func(c *Config) {
			c.Substitutions["blank"] = []string{""}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := DefaultConfig()
			if err != nil {
				t.Fatalf("DefaultConfig failed: %v", err)
			}
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
