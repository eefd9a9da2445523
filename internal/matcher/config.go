// file: internal/matcher/config.go
// version: 1.0.0
// guid: f8589796-ceeb-4ea0-bab6-9f0c928d65be

package matcher

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tuning for a Matcher. Construct with DefaultConfig and
// adjust fields before passing to New; the zero value is not usable.
type Config struct {
	// SimilarityThreshold is the minimum blended score a fuzzy candidate
	// needs to be kept as a suggestion.
	SimilarityThreshold float64 `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`

	// BaseWeight and SubstitutionWeight blend the sequence ratio and the
	// token substitution score. Their sum must stay within (0, 1].
	BaseWeight         float64 `yaml:"base_weight" mapstructure:"base_weight"`
	SubstitutionWeight float64 `yaml:"substitution_weight" mapstructure:"substitution_weight"`

	// DirectSubstitutionCutoff gates the direct-match substitution stage.
	// Candidates whose normalized substitution score exceeds it match
	// directly at exactly this score.
	DirectSubstitutionCutoff float64 `yaml:"direct_substitution_cutoff" mapstructure:"direct_substitution_cutoff"`

	// HighConfidenceThreshold controls the batch early exit: scoring stops
	// once MaxSuggestions candidates are held and all of them exceed it.
	HighConfidenceThreshold float64 `yaml:"high_confidence_threshold" mapstructure:"high_confidence_threshold"`

	// ExhaustiveScoring disables the early exit so every surviving
	// candidate is scored. Slower but fully order-independent.
	ExhaustiveScoring bool `yaml:"exhaustive_scoring" mapstructure:"exhaustive_scoring"`

	// MaxSuggestions bounds the ranked matches returned per query.
	MaxSuggestions int `yaml:"max_suggestions" mapstructure:"max_suggestions"`

	// NormalizeCacheSize bounds the memoized normalization results.
	NormalizeCacheSize int `yaml:"normalize_cache_size" mapstructure:"normalize_cache_size"`

	// BatchParallelThreshold is the query count at which batch matching
	// switches from sequential to the worker pool.
	BatchParallelThreshold int `yaml:"batch_parallel_threshold" mapstructure:"batch_parallel_threshold"`

	// MinChunkSize is the smallest slice of queries handed to one worker.
	MinChunkSize int `yaml:"min_chunk_size" mapstructure:"min_chunk_size"`

	// MaxWorkers caps the worker pool. Zero selects min(32, NumCPU+4).
	MaxWorkers int `yaml:"max_workers" mapstructure:"max_workers"`

	// StripPrefixes lists name prefixes removed during normalization. Only
	// the first matching prefix is stripped.
	StripPrefixes []string `yaml:"strip_prefixes" mapstructure:"strip_prefixes"`

	// Categories are the classification rules, evaluated in order.
	Categories []CategoryRule `yaml:"categories" mapstructure:"categories"`

	// Substitutions maps canonical tokens to their known alias spellings.
	Substitutions map[string][]string `yaml:"substitutions" mapstructure:"substitutions"`
}

var (
	defaultConfig     Config
	defaultConfigOnce sync.Once
	defaultConfigErr  error
)

// DefaultConfig returns the built-in tuning parsed from the embedded
// defaults. The parse happens once; subsequent calls return a copy of the
// cached result.
func DefaultConfig() (Config, error) {
	defaultConfigOnce.Do(func() {
		var cfg Config
		if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
			defaultConfigErr = fmt.Errorf("failed to parse embedded matcher defaults: %w", err)
			return
		}
		defaultConfig = cfg
	})
	if defaultConfigErr != nil {
		return Config{}, defaultConfigErr
	}
	cfg := defaultConfig
	cfg.StripPrefixes = append([]string(nil), defaultConfig.StripPrefixes...)
	cfg.Categories = make([]CategoryRule, len(defaultConfig.Categories))
	for i, rule := range defaultConfig.Categories {
		rule.Keywords = append([]string(nil), rule.Keywords...)
		cfg.Categories[i] = rule
	}
	cfg.Substitutions = make(map[string][]string, len(defaultConfig.Substitutions))
	for canonical, aliases := range defaultConfig.Substitutions {
		cfg.Substitutions[canonical] = append([]string(nil), aliases...)
	}
	return cfg, nil
}

// Validate checks that the configuration can produce scores in [0,1] and
// that every structural table is well formed.
func (c Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold %v outside [0,1]", c.SimilarityThreshold)
	}
	if c.BaseWeight < 0 || c.SubstitutionWeight < 0 {
		return fmt.Errorf("score weights must not be negative (base %v, substitution %v)", c.BaseWeight, c.SubstitutionWeight)
	}
	sum := c.BaseWeight + c.SubstitutionWeight
	if sum <= 0 || sum > 1 {
		return fmt.Errorf("score weights must sum to (0,1], got %v", sum)
	}
	if c.DirectSubstitutionCutoff < 0 || c.DirectSubstitutionCutoff > 1 {
		return fmt.Errorf("direct substitution cutoff %v outside [0,1]", c.DirectSubstitutionCutoff)
	}
	if c.HighConfidenceThreshold < 0 || c.HighConfidenceThreshold > 1 {
		return fmt.Errorf("high confidence threshold %v outside [0,1]", c.HighConfidenceThreshold)
	}
	if c.MaxSuggestions <= 0 {
		return fmt.Errorf("max suggestions must be positive, got %d", c.MaxSuggestions)
	}
	if c.NormalizeCacheSize <= 0 {
		return fmt.Errorf("normalize cache size must be positive, got %d", c.NormalizeCacheSize)
	}
	if c.BatchParallelThreshold <= 0 {
		return fmt.Errorf("batch parallel threshold must be positive, got %d", c.BatchParallelThreshold)
	}
	if c.MinChunkSize <= 0 {
		return fmt.Errorf("min chunk size must be positive, got %d", c.MinChunkSize)
	}
	if c.MaxWorkers < 0 {
		return fmt.Errorf("max workers must not be negative, got %d", c.MaxWorkers)
	}
	for i, rule := range c.Categories {
		if rule.Name == "" {
			return fmt.Errorf("category rule %d has no name", i)
		}
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("category %q has no keywords", rule.Name)
		}
	}
	for canonical, aliases := range c.Substitutions {
		if canonical == "" {
			return fmt.Errorf("substitution table contains an empty canonical token")
		}
		for _, alias := range aliases {
			if alias == "" {
				return fmt.Errorf("substitution %q contains an empty alias", canonical)
			}
		}
	}
	return nil
}
