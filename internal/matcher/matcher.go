// file: internal/matcher/matcher.go
// version: 1.1.0
// guid: 8348ade5-b813-41cf-9c17-969e7bf867c8

package matcher

import (
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"

	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/metrics"
)

// Matcher finds replacement suggestions for unknown class names. It owns its
// normalization cache, category rules, substitution vocabulary, and a
// lazily started worker pool for batch evaluation. Safe for concurrent use;
// Close releases the pool when the matcher is no longer needed.
type Matcher struct {
	cfg        Config
	normalizer *Normalizer
	classifier *CategoryClassifier
	subs       *SubstitutionIndex

	poolMu  sync.Mutex
	jobs    chan func()
	started bool
	closed  bool
	workers sync.WaitGroup
}

// New builds a Matcher from the given configuration. The configuration is
// validated up front so a misconfigured matcher never gets constructed.
func New(cfg Config) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid matcher config: %w", err)
	}
	if cfg.MaxWorkers == 0 {
		cfg.MaxWorkers = defaultWorkerCount()
	}
	normalizer, err := NewNormalizer(cfg.StripPrefixes, cfg.NormalizeCacheSize)
	if err != nil {
		return nil, err
	}
	classifier, err := NewCategoryClassifier(cfg.Categories)
	if err != nil {
		return nil, fmt.Errorf("invalid category rules: %w", err)
	}
	subs, err := NewSubstitutionIndex(cfg.Substitutions)
	if err != nil {
		return nil, fmt.Errorf("invalid substitution table: %w", err)
	}
	return &Matcher{
		cfg:        cfg,
		normalizer: normalizer,
		classifier: classifier,
		subs:       subs,
	}, nil
}

// NewDefault builds a Matcher with the embedded default tuning.
func NewDefault() (*Matcher, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

func defaultWorkerCount() int {
	return min(32, runtime.NumCPU()+4)
}

// NormalizeClassName exposes the matcher's canonical comparison form.
func (m *Matcher) NormalizeClassName(name string) string {
	return m.normalizer.Normalize(name)
}

// CategoryOf reports the equipment category detected for a class name.
func (m *Matcher) CategoryOf(name string) (string, bool) {
	return m.classifier.Classify(name)
}

// FindMatches ranks the closest candidates for a single query. A zero or
// negative maxSuggestions falls back to the configured default. The returned
// result always carries the query's normalized form and category even when
// no candidate survives.
func (m *Matcher) FindMatches(query string, candidates []string, maxSuggestions int) *FuzzyMatchResult {
	return m.findMatchesSorted(query, sortedUnique(candidates), maxSuggestions)
}

// findMatchesSorted runs the direct and fuzzy stages over candidates that
// are already sorted and de-duplicated, keeping every pass deterministic.
func (m *Matcher) findMatchesSorted(query string, candidates []string, maxSuggestions int) *FuzzyMatchResult {
	metrics.IncMatcherQuery()
	if maxSuggestions <= 0 {
		maxSuggestions = m.cfg.MaxSuggestions
	}

	normalizedQuery := m.normalizer.Normalize(query)
	queryTokens := tokenize(query)
	category, _ := m.classifier.Classify(query)

	if direct := m.findDirectMatches(normalizedQuery, candidates); len(direct) > 0 {
		sortMatches(direct)
		result := &FuzzyMatchResult{
			Original:       query,
			Matches:        direct[:min(maxSuggestions, len(direct))],
			Category:       category,
			NormalizedForm: normalizedQuery,
			MatchType:      MatchDirect,
		}
		metrics.IncMatcherResult(string(MatchDirect))
		return result
	}

	filtered := m.filterCandidates(query, category, queryTokens, candidates)
	matches := m.scoreCandidates(normalizedQuery, query, filtered, maxSuggestions)
	result := &FuzzyMatchResult{
		Original:       query,
		Matches:        matches,
		Category:       category,
		NormalizedForm: normalizedQuery,
		MatchType:      MatchFuzzy,
	}
	if result.HasMatches() {
		metrics.IncMatcherResult(string(MatchFuzzy))
	}
	return result
}

// findDirectMatches catches candidates whose normalized form equals the
// query's, scored 1.0, and candidates whose token substitution score against
// the normalized query clears the direct cutoff, scored at the cutoff.
func (m *Matcher) findDirectMatches(normalizedQuery string, candidates []string) []MatchCandidate {
	var matches []MatchCandidate
	for _, candidate := range candidates {
		normalizedCandidate := m.normalizer.Normalize(candidate)
		if normalizedCandidate == normalizedQuery {
			matches = append(matches, MatchCandidate{Name: candidate, Score: 1.0})
		} else if m.substitutionScore(normalizedQuery, normalizedCandidate) > m.cfg.DirectSubstitutionCutoff {
			matches = append(matches, MatchCandidate{Name: candidate, Score: m.cfg.DirectSubstitutionCutoff})
		}
	}
	return matches
}

// scoreCandidates runs the weighted scoring pass over filtered candidates,
// keeping those at or above the similarity threshold. Unless exhaustive
// scoring is configured, the pass stops early once enough matches are held
// and all of them clear the high-confidence threshold; candidates are
// visited in sorted order so the approximation is reproducible.
func (m *Matcher) scoreCandidates(normalizedQuery, query string, candidates []string, maxSuggestions int) []MatchCandidate {
	var matches []MatchCandidate
	for _, candidate := range candidates {
		score := m.similarityScore(normalizedQuery, query, candidate)
		if score < m.cfg.SimilarityThreshold {
			continue
		}
		matches = append(matches, MatchCandidate{Name: candidate, Score: score})
		if !m.cfg.ExhaustiveScoring && len(matches) >= maxSuggestions && allAbove(matches, m.cfg.HighConfidenceThreshold) {
			break
		}
	}
	sortMatches(matches)
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	return matches
}

// FindMatchesBatch evaluates many queries against one candidate set. Every
// distinct query gets an entry in the returned map, pre-filled with an empty
// fuzzy result so a failed chunk degrades to "no suggestions" instead of a
// missing key. Small batches run sequentially; batches at or above the
// parallel threshold are chunked across the worker pool.
func (m *Matcher) FindMatchesBatch(queries []string, candidates []string, maxSuggestions int) map[string]*FuzzyMatchResult {
	results := make(map[string]*FuzzyMatchResult, len(queries))
	for _, query := range queries {
		results[query] = &FuzzyMatchResult{
			Original:       query,
			NormalizedForm: m.normalizer.Normalize(query),
			MatchType:      MatchFuzzy,
		}
	}

	sorted := sortedUnique(candidates)

	if len(queries) < m.cfg.BatchParallelThreshold {
		for _, query := range queries {
			results[query] = m.findMatchesSorted(query, sorted, maxSuggestions)
		}
		return results
	}

	chunkSize := max(m.cfg.MinChunkSize, len(queries)/m.cfg.MaxWorkers)

	var (
		resultsMu sync.Mutex
		pending   sync.WaitGroup
	)
	for start := 0; start < len(queries); start += chunkSize {
		chunk := queries[start:min(start+chunkSize, len(queries))]
		pending.Add(1)
		job := func() {
			defer pending.Done()
			defer func() {
				if r := recover(); r != nil {
					metrics.IncMatcherChunkFailure()
					log.Printf("[ERROR] matcher: batch chunk of %d queries failed: %v", len(chunk), r)
				}
			}()
			local := make(map[string]*FuzzyMatchResult, len(chunk))
			for _, query := range chunk {
				local[query] = m.findMatchesSorted(query, sorted, maxSuggestions)
			}
			resultsMu.Lock()
			for query, result := range local {
				results[query] = result
			}
			resultsMu.Unlock()
		}
		if !m.submit(job) {
			// Pool already closed; run the chunk on the caller.
			job()
		}
	}
	pending.Wait()
	return results
}

// submit hands a job to the worker pool, starting it on first use. Returns
// false when the pool has been closed.
func (m *Matcher) submit(job func()) bool {
	m.poolMu.Lock()
	defer m.poolMu.Unlock()
	if m.closed {
		return false
	}
	if !m.started {
		m.jobs = make(chan func(), m.cfg.MaxWorkers)
		for i := 0; i < m.cfg.MaxWorkers; i++ {
			m.workers.Add(1)
			go func() {
				defer m.workers.Done()
				for queued := range m.jobs {
					queued()
				}
			}()
		}
		m.started = true
	}
	m.jobs <- job
	return true
}

// Close shuts down the worker pool and waits for in-flight chunks. The
// matcher stays usable afterwards; batch calls simply run sequentially.
func (m *Matcher) Close() {
	m.poolMu.Lock()
	if m.closed {
		m.poolMu.Unlock()
		return
	}
	m.closed = true
	started := m.started
	m.poolMu.Unlock()
	if started {
		close(m.jobs)
		m.workers.Wait()
	}
}

func allAbove(matches []MatchCandidate, threshold float64) bool {
	for _, match := range matches {
		if match.Score <= threshold {
			return false
		}
	}
	return true
}

// sortMatches orders by score descending, then name ascending.
func sortMatches(matches []MatchCandidate) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Name < matches[j].Name
	})
}

// sortedUnique copies, sorts, and de-duplicates a candidate list.
func sortedUnique(names []string) []string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	unique := sorted[:0]
	for i, name := range sorted {
		if i == 0 || name != sorted[i-1] {
			unique = append(unique, name)
		}
	}
	return unique
}
