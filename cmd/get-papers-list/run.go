// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-fetcher/internal/classify"
	"github.com/pdiddy/pubmed-fetcher/internal/observability"
	"github.com/pdiddy/pubmed-fetcher/internal/report"
	"github.com/pdiddy/pubmed-fetcher/internal/search"
	"github.com/pdiddy/pubmed-fetcher/internal/secrets"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// pipeline wires one search, filter, and report run.
type pipeline struct {
	searcher   search.Searcher
	classifier *classify.Classifier
	metrics    *observability.Metrics
	logger     zerolog.Logger
	stdout     io.Writer
}

func runFetch(cmd *cobra.Command, args []string) error {
	query := args[0]
	runID := observability.NewRunID()
	log := observability.WithRunContext(logger, runID, query)

	apiKey, source, err := secrets.ResolveAPIKey(cfg.Search.APIKey, secrets.DefaultLocations(), log)
	if err != nil {
		return err
	}
	cfg.Search.APIKey = apiKey
	if source != secrets.SourceNone {
		log.Debug().Str("source", string(source)).Msg("using NCBI API key")
	}

	classifier, err := loadClassifier(cfg.Classifier.RulesFile)
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics("pubmed")
	p := pipeline{
		searcher:   search.NewFetcher(cfg.Search, log, metrics),
		classifier: classifier,
		metrics:    metrics,
		logger:     log,
		stdout:     cmd.OutOrStdout(),
	}

	meta := report.Meta{RunID: runID, Query: query, CreatedAt: time.Now()}
	runErr := p.run(cmd.Context(), query, cfg.Search.MaxResults, cfg.Output, meta)

	if cfg.Output.MetricsFile != "" {
		if err := metrics.WriteFile(cfg.Output.MetricsFile); err != nil {
			log.Error().Err(err).Msg("could not write metrics")
		}
	}
	return runErr
}

// run searches, filters, and writes the report. Search and fetch failures
// degrade to an empty result; no papers after filtering is a warning.
func (p pipeline) run(ctx context.Context, query string, maxResults int, out types.OutputConfig, meta report.Meta) error {
	p.logger.Info().Int("max_results", maxResults).Msg("Searching PubMed")
	articles, err := p.searcher.Search(ctx, query, maxResults)
	if err != nil {
		if !errors.Is(err, search.ErrSearchFailed) && !errors.Is(err, search.ErrFetchFailed) {
			return err
		}
		articles = nil
	}

	filtered := p.classifier.FilterNonAcademicPapers(articles)
	p.observeVerdicts(articles, filtered)

	rows, err := report.Build(filtered)
	if errors.Is(err, report.ErrNoResults) {
		p.metrics.SetReportRows(0)
		p.logger.Warn().Msg("No papers found matching the criteria.")
		return nil
	}
	if err != nil {
		return err
	}
	p.metrics.SetReportRows(len(rows))

	if err := report.Write(ctx, p.stdout, rows, out, meta); err != nil {
		return err
	}
	if out.File != "" {
		p.logger.Info().Str("file", out.File).Int("rows", len(rows)).Msg("Results saved")
	}
	return nil
}

func (p pipeline) observeVerdicts(articles, filtered []types.Article) {
	total, flagged := 0, 0
	for _, a := range articles {
		total += len(a.Authors)
	}
	for _, a := range filtered {
		flagged += len(a.NonAcademicAuthors)
	}
	p.metrics.ObserveVerdicts(flagged, total-flagged)
}
