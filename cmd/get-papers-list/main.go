// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the get-papers-list CLI.
//
// The root command searches PubMed for a query, keeps the papers with at
// least one author affiliated with a pharmaceutical or biotech company, and
// writes them as a report. Subcommands inspect the affiliation classifier.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-fetcher/internal/classify"
	"github.com/pdiddy/pubmed-fetcher/internal/config"
	"github.com/pdiddy/pubmed-fetcher/internal/observability"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// settings merges defaults, config file, environment, and bound flags.
	settings = config.New(version)

	// cfg and logger are populated by the root PersistentPreRunE.
	cfg    types.Config
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "get-papers-list QUERY",
	Short: "Find PubMed papers with pharmaceutical or biotech company authors",
	Long: `get-papers-list searches PubMed for QUERY (full PubMed query syntax is
supported), fetches the matching articles, and keeps those with at least one
author whose affiliation points to a company rather than a university.

Without --file the report is printed as a table. With --file it is written as
CSV, or as JSON, YAML, or SQLite when the extension or --format says so.`,
	Example: `  get-papers-list "cancer immunotherapy" -m 50
  get-papers-list "crispr[Title] AND 2023[dp]" -f papers.csv
  get-papers-list "obesity drug" -f runs.db --metrics-file run.prom`,
	Args:              cobra.ExactArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
	RunE:              runFetch,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./get-papers-list.yaml or ~/.config/get-papers-list/get-papers-list.yaml)")
	pf.BoolP("debug", "d", false, "print debug information during execution")
	pf.String("rules", "", "YAML classifier rule file replacing the built-in rules per category")

	f := rootCmd.Flags()
	f.IntP("max-results", "m", config.DefaultMaxResults, "maximum number of PubMed results to fetch")
	f.StringP("file", "f", "", "write the report to this file instead of stdout")
	f.String("format", "", "report format: table, csv, json, yaml, sqlite (default: from file extension)")
	f.String("api-key", "", "NCBI API key (default: .secrets/ncbi-api-key, .env, or NCBI_API_KEY)")
	f.String("metrics-file", "", "write run metrics in Prometheus text format to this file")

	bindFlag(pf, "classifier.rules_file", "rules")
	bindFlag(f, "search.max_results", "max-results")
	bindFlag(f, "output.file", "file")
	bindFlag(f, "output.format", "format")
	bindFlag(f, "search.api_key", "api-key")
	bindFlag(f, "output.metrics_file", "metrics-file")
}

// loadSettings reads the config file, applies flags, validates, and builds
// the logger shared by every command.
func loadSettings(cmd *cobra.Command, _ []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	used, err := config.ReadFile(settings, configFile)
	if err != nil {
		return err
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		settings.Set("logging.level", "debug")
	}

	c, err := config.Decode(settings)
	if err != nil {
		return err
	}
	cfg = c
	logger = observability.NewLoggerTo(cmd.ErrOrStderr(), cfg.Logging)

	if used != "" {
		logger.Debug().Str("file", used).Msg("using config file")
	}
	return nil
}

// loadClassifier builds the classifier from the configured rule file, or the
// built-in rules when none is set.
func loadClassifier(path string) (*classify.Classifier, error) {
	if path == "" {
		return classify.Default(), nil
	}
	rules, err := classify.LoadRules(path)
	if err != nil {
		return nil, err
	}
	return classify.New(rules)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fallback := observability.NewLogger(observability.DefaultLoggingConfig())
		if cfg.Logging.Format != "" {
			fallback = observability.NewLogger(cfg.Logging)
		}
		fallback.Error().Err(err).Msg("An error occurred")
		os.Exit(1)
	}
}
