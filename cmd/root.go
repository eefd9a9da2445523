// file: cmd/root.go
// version: 1.0.0
// guid: 6a7b8c9d-0e1f-2a3b-4c5d-6e7f8a9b0c1d

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/config"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/matcher"
	"github.com/tyen-customs-a3/mission-dependency-scanner/internal/store"
)

var cfgFile string
var gamePath string
var missionPaths []string
var cachePath string
var reportDir string
var reportFormat string
var workerCount int
var showProgress bool
var foldAccents bool
var ignorePatterns []string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mission-scanner",
	Short: "Validate mission equipment against game and mod content",
	Long: `Mission Dependency Scanner checks the equipment and asset references used
by mission folders against the classes defined by the base game and mod packs.

Missing references are reported per mission together with ranked replacement
suggestions produced by the fuzzy class-name matcher.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mission-scanner.yaml)")
	rootCmd.PersistentFlags().StringVar(&gamePath, "game", "", "path to the base game content")
	rootCmd.PersistentFlags().StringSliceVar(&missionPaths, "missions", nil, "mission folders to validate")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", ".cache", "path to the content scan cache database")
	rootCmd.PersistentFlags().StringVar(&reportDir, "reports", "reports", "directory to write report files into")
	rootCmd.PersistentFlags().StringVar(&reportFormat, "format", "text", "mission report format: text or json")
	rootCmd.PersistentFlags().IntVar(&workerCount, "workers", 16, "number of parallel validation workers")
	rootCmd.PersistentFlags().BoolVar(&showProgress, "progress", true, "show progress bars during validation")
	rootCmd.PersistentFlags().BoolVar(&foldAccents, "fold-accents", false, "fold accented characters when comparing class names")
	rootCmd.PersistentFlags().StringSliceVar(&ignorePatterns, "ignore", nil, "extra glob patterns for equipment references to skip")

	viper.BindPFlag("game_path", rootCmd.PersistentFlags().Lookup("game"))
	viper.BindPFlag("missions", rootCmd.PersistentFlags().Lookup("missions"))
	viper.BindPFlag("cache_path", rootCmd.PersistentFlags().Lookup("cache"))
	viper.BindPFlag("report_dir", rootCmd.PersistentFlags().Lookup("reports"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("progress", rootCmd.PersistentFlags().Lookup("progress"))
	viper.BindPFlag("fold_accents", rootCmd.PersistentFlags().Lookup("fold-accents"))
	viper.BindPFlag("ignore_patterns", rootCmd.PersistentFlags().Lookup("ignore"))

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(diagnosticsCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mission-scanner")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()
}

// buildMatcher constructs the fuzzy matcher from the effective
// configuration. Callers own the returned matcher and must Close it.
func buildMatcher() (*matcher.Matcher, error) {
	fuzzyCfg, err := config.FuzzyConfig()
	if err != nil {
		return nil, err
	}
	m, err := matcher.New(fuzzyCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build matcher: %w", err)
	}
	return m, nil
}

// openCacheStore opens the scan cache. A missing cache path disables
// caching; an unopenable store is reported so the caller can degrade to
// uncached scans.
func openCacheStore() (*store.Store, error) {
	if config.AppConfig.CachePath == "" {
		return nil, nil
	}
	st, err := store.Open(config.AppConfig.CachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache store at %s: %w", config.AppConfig.CachePath, err)
	}
	return st, nil
}
