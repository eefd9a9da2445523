// file: cmd/suggest.go
// version: 1.0.0
// guid: 2b3c4d5e-6f7a-4b9c-8d1e-0f1a2b3c4d5e

package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/analysis"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/catalog"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/config"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/models"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/scanner"
)

var suggestMods []string
var suggestSearch bool
var suggestLimit int

// suggestCmd represents the suggest command
var suggestCmd = &cobra.Command{
	Use:   "suggest <class-name> [class-name...]",
	Short: "Suggest replacement classes for unknown names",
	Long: `Look up one or more class names against the scanned catalog and print
ranked replacement suggestions. With --search, the names are treated as
search terms and matching catalog entries are listed instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSuggest(cmd.Context(), args)
	},
}

func init() {
	suggestCmd.Flags().StringSliceVar(&suggestMods, "mods", nil, "mod content folders scanned in addition to the game path")
	suggestCmd.Flags().BoolVar(&suggestSearch, "search", false, "list catalog entries matching the query instead of scoring suggestions")
	suggestCmd.Flags().IntVar(&suggestLimit, "limit", 0, "maximum results per query (0 uses the matcher default, 10 for --search)")
}

// loadCatalog scans the game path plus any extra mod folders into a catalog,
// reusing cached snapshots where available.
func loadCatalog(ctx context.Context, mods []string) (*catalog.Catalog, error) {
	if config.AppConfig.GamePath == "" {
		return nil, fmt.Errorf("game path not specified")
	}

	opts := scanner.Options{FoldAccents: config.AppConfig.FoldAccents}
	st, err := openCacheStore()
	if err != nil {
		log.Printf("[WARN] %v, continuing without cache", err)
	} else if st != nil {
		defer st.Close()
		opts.Store = st
	}
	pipeline := scanner.NewPipeline(scanner.FileContentProvider{}, scanner.FileMissionScanner{}, opts)

	cat, err := pipeline.BuildCatalog(ctx, config.AppConfig.GamePath, mods)
	if err != nil {
		return nil, err
	}
	if cat.ClassCount() == 0 {
		return nil, fmt.Errorf("no classes found under %s", config.AppConfig.GamePath)
	}
	return cat, nil
}

func runSuggest(ctx context.Context, queries []string) error {
	cat, err := loadCatalog(ctx, suggestMods)
	if err != nil {
		return err
	}
	fmt.Printf("Catalog: %d classes\n\n", cat.ClassCount())

	if suggestSearch {
		limit := suggestLimit
		if limit <= 0 {
			limit = 10
		}
		for _, query := range queries {
			names := cat.Search(query, limit)
			fmt.Printf("%s\n", query)
			if len(names) == 0 {
				fmt.Println("  (no matching catalog entries)")
				continue
			}
			for _, name := range names {
				fmt.Printf("  └─ %s\n", name)
			}
		}
		return nil
	}

	m, err := buildMatcher()
	if err != nil {
		return err
	}
	defer m.Close()

	// Names the catalog already defines need no suggestions.
	missing := models.NewClassSet()
	for _, query := range queries {
		if !cat.HasClass(query) {
			missing.Add(query)
		}
	}

	agg := analysis.NewAggregator(m, suggestLimit)
	suggestions := agg.GenerateSuggestions(missing, cat.Classes())

	for _, query := range queries {
		fmt.Printf("%s\n", query)
		if display, ok := cat.DisplayName(query); ok {
			fmt.Printf("  already defined in the catalog as %s\n", display)
			continue
		}
		if category, ok := suggestions.Categories[query]; ok {
			fmt.Printf("  Category: %s\n", category)
		}
		matches := suggestions.Suggestions[query]
		if len(matches) == 0 {
			fmt.Println("  (no suggested replacements found)")
			continue
		}
		fmt.Println("  Suggested replacements:")
		for _, match := range matches {
			fmt.Printf("  └─ %s (%.2f)\n", match.Name, match.Score)
		}
	}
	return nil
}
