// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the PubMed E-utilities API and turns the responses
// into normalized article records.
//
// A search is two sequential calls: esearch.fcgi returns the PMIDs matching
// the query, then a single efetch.fcgi call returns the article XML for all
// of them. There is no pagination and no retry.
package search

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pubmed-fetcher/internal/httputil"
	"github.com/pdiddy/pubmed-fetcher/internal/observability"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// DefaultBaseURL is the NCBI E-utilities endpoint.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// DefaultMaxResults is used when a search asks for zero or fewer results.
const DefaultMaxResults = 100

// Phase names used in logs and metrics.
const (
	PhaseSearch = "search"
	PhaseFetch  = "fetch"
)

var (
	// ErrEmptyQuery is returned for a blank query string.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrSearchFailed wraps any failure of the esearch call or its response.
	ErrSearchFailed = errors.New("pubmed search failed")

	// ErrFetchFailed wraps any failure of the efetch call or its response.
	ErrFetchFailed = errors.New("pubmed fetch failed")
)

// Searcher runs a query and returns article records.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]types.Article, error)
}

// Fetcher is the PubMed Searcher.
type Fetcher struct {
	Client  *http.Client
	Config  types.SearchConfig
	Logger  zerolog.Logger
	Metrics *observability.Metrics
}

var _ Searcher = (*Fetcher)(nil)

// NewFetcher returns a Fetcher with an HTTP client honoring cfg.Timeout.
func NewFetcher(cfg types.SearchConfig, logger zerolog.Logger, metrics *observability.Metrics) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Fetcher{
		Client:  &http.Client{Timeout: cfg.Timeout},
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
	}
}

// Search returns the articles matching query, at most maxResults of them.
//
// Zero matches is a success with an empty result. A failed esearch call
// returns an error wrapping ErrSearchFailed and a failed efetch call one
// wrapping ErrFetchFailed; both are logged here. Articles and authors that
// cannot be extracted are logged and skipped without failing the search.
func (f *Fetcher) Search(ctx context.Context, query string, maxResults int) ([]types.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	ids, err := f.searchIDs(ctx, query, maxResults)
	f.Metrics.ObserveRequest(PhaseSearch, err)
	if err != nil {
		f.Logger.Error().Err(err).Str("phase", PhaseSearch).Msg("API request failed")
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	f.Logger.Debug().Int("ids", len(ids)).Msg("esearch returned identifiers")
	if len(ids) == 0 {
		return nil, nil
	}

	out, err := f.fetchDetails(ctx, ids)
	f.Metrics.ObserveRequest(PhaseFetch, err)
	if err != nil {
		f.Logger.Error().Err(err).Str("phase", PhaseFetch).Msg("details fetch failed")
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	for _, e := range out.ArticleErrors {
		f.Logger.Warn().Err(e).Msg("error parsing article")
	}
	for _, e := range out.AuthorErrors {
		f.Logger.Warn().Err(e).Msg("error extracting author")
	}
	f.Metrics.ObserveExtraction(len(out.Articles), len(out.ArticleErrors), len(out.AuthorErrors))
	f.Logger.Debug().Int("articles", len(out.Articles)).Msg("efetch parsed articles")

	return out.Articles, nil
}

// searchIDs calls esearch.fcgi and returns the PMIDs in rank order.
func (f *Fetcher) searchIDs(ctx context.Context, query string, maxResults int) ([]string, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmax":  {strconv.Itoa(maxResults)},
		"retmode": {"xml"},
	}
	f.addAPIKey(params)

	body, err := httputil.Get(ctx, f.Client, f.endpoint("esearch.fcgi", params), f.Config.UserAgent)
	if err != nil {
		return nil, err
	}

	var res eSearchResult
	if err := xml.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}
	if res.Error != "" {
		return nil, fmt.Errorf("esearch error: %s", strings.TrimSpace(res.Error))
	}
	if res.ErrorList != nil && len(res.ErrorList.PhraseNotFound) > 0 {
		f.Logger.Debug().Strs("phrases", res.ErrorList.PhraseNotFound).Msg("phrase not found")
	}

	ids := make([]string, 0, len(res.IDs))
	for _, id := range res.IDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// fetchDetails calls efetch.fcgi once for all ids and extracts the articles.
// The body is decoded as it streams, so large batches are not size capped.
func (f *Fetcher) fetchDetails(ctx context.Context, ids []string) (ParseOutput, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"xml"},
	}
	f.addAPIKey(params)

	body, err := httputil.Open(ctx, f.Client, f.endpoint("efetch.fcgi", params), f.Config.UserAgent)
	if err != nil {
		return ParseOutput{}, err
	}
	defer body.Close()
	return ParseArticleSet(body)
}

func (f *Fetcher) addAPIKey(params url.Values) {
	if f.Config.APIKey != "" {
		params.Set("api_key", f.Config.APIKey)
	}
}

func (f *Fetcher) endpoint(name string, params url.Values) string {
	base := f.Config.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + name + "?" + params.Encode()
}
