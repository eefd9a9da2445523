// file: internal/catalog/catalog.go
// version: 1.0.0
// guid: 3ea94e1b-0d93-4345-a15d-74f6e9976e4d

// Package catalog indexes the class names and asset paths available to a
// validation run. Lookups are case-insensitive while the display casing of
// the last added occurrence is preserved for reports.
package catalog

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Options control how lookup keys are derived from display names.
type Options struct {
	// FoldAccents strips combining marks when building lookup keys so
	// accented display names match their plain-ASCII spellings.
	FoldAccents bool
}

// Catalog holds the combined game and mod content of one validation run.
// Build it fully before sharing; reads are safe concurrently, writes are not.
type Catalog struct {
	opts    Options
	classes map[string]string
	assets  map[string]string
}

// New returns an empty catalog.
func New(opts Options) *Catalog {
	return &Catalog{
		opts:    opts,
		classes: make(map[string]string),
		assets:  make(map[string]string),
	}
}

func (c *Catalog) classKey(name string) string {
	key := strings.ToLower(name)
	if c.opts.FoldAccents {
		if folded, _, err := transform.String(stripAccents, key); err == nil {
			key = folded
		}
	}
	return key
}

func (c *Catalog) assetKey(path string) string {
	return c.classKey(strings.ReplaceAll(path, "\\", "/"))
}

// AddClasses indexes class names. A later add of the same name under a
// different casing replaces the stored display form, mirroring how mod
// content overrides base game content.
func (c *Catalog) AddClasses(names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		c.classes[c.classKey(name)] = name
	}
}

// AddAssets indexes asset paths. Separators are normalized so windows-style
// references resolve against forward-slash paths.
func (c *Catalog) AddAssets(paths ...string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		c.assets[c.assetKey(path)] = path
	}
}

// HasClass reports whether name is a known class, ignoring case.
func (c *Catalog) HasClass(name string) bool {
	_, ok := c.classes[c.classKey(name)]
	return ok
}

// HasAsset reports whether path is a known asset, ignoring case and
// separator style.
func (c *Catalog) HasAsset(path string) bool {
	_, ok := c.assets[c.assetKey(path)]
	return ok
}

// DisplayName returns the stored display casing for a class name.
func (c *Catalog) DisplayName(name string) (string, bool) {
	display, ok := c.classes[c.classKey(name)]
	return display, ok
}

// Classes returns all class display names in ascending order.
func (c *Catalog) Classes() []string {
	names := make([]string, 0, len(c.classes))
	for _, display := range c.classes {
		names = append(names, display)
	}
	sort.Strings(names)
	return names
}

// Assets returns all asset display paths in ascending order.
func (c *Catalog) Assets() []string {
	paths := make([]string, 0, len(c.assets))
	for _, display := range c.assets {
		paths = append(paths, display)
	}
	sort.Strings(paths)
	return paths
}

// ClassCount returns the number of distinct classes.
func (c *Catalog) ClassCount() int { return len(c.classes) }

// AssetCount returns the number of distinct assets.
func (c *Catalog) AssetCount() int { return len(c.assets) }

// Search returns up to limit class display names whose characters contain
// the query as an in-order subsequence, best edit distance first. A negative
// limit returns every match.
func (c *Catalog) Search(query string, limit int) []string {
	if query == "" || limit == 0 {
		return nil
	}
	ranks := fuzzy.RankFindNormalizedFold(query, c.Classes())
	sort.Stable(ranks)

	out := make([]string, 0, len(ranks))
	for _, rank := range ranks {
		if limit >= 0 && len(out) >= limit {
			break
		}
		out = append(out, rank.Target)
	}
	return out
}
