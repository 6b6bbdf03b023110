// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-fetcher/internal/classify"
	"github.com/pdiddy/pubmed-fetcher/internal/observability"
	"github.com/pdiddy/pubmed-fetcher/internal/report"
	"github.com/pdiddy/pubmed-fetcher/internal/search"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

const industryAffiliation = "Acme Therapeutics, Cambridge, MA, USA. jane.smith@acmetx.com"

const esearchXML = `<?xml version="1.0" encoding="UTF-8" ?>
<eSearchResult><Count>2</Count><IdList><Id>111</Id><Id>222</Id></IdList></eSearchResult>`

// efetchXML: article A has one industry author, article B only university authors.
const efetchXML = `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">111</PMID>
      <Article>
        <Journal><JournalIssue><PubDate><Year>2023</Year><Month>Mar</Month></PubDate></JournalIssue></Journal>
        <ArticleTitle>Article A</ArticleTitle>
        <AuthorList>
          <Author>
            <LastName>Lee</LastName><ForeName>Min</ForeName>
            <AffiliationInfo><Affiliation>Department of Biology, Example University.</Affiliation></AffiliationInfo>
          </Author>
          <Author>
            <LastName>Smith</LastName><ForeName>Jane</ForeName>
            <AffiliationInfo><Affiliation>` + industryAffiliation + `</Affiliation></AffiliationInfo>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">222</PMID>
      <Article>
        <ArticleTitle>Article B</ArticleTitle>
        <AuthorList>
          <Author>
            <LastName>Garcia</LastName><ForeName>Ana</ForeName>
            <AffiliationInfo><Affiliation>School of Medicine, Example College.</Affiliation></AffiliationInfo>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func newEutils(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		switch {
		case strings.HasSuffix(r.URL.Path, "esearch.fcgi"):
			_, _ = w.Write([]byte(esearchXML))
		case strings.HasSuffix(r.URL.Path, "efetch.fcgi"):
			_, _ = w.Write([]byte(efetchXML))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testPipeline(t *testing.T, baseURL string) (pipeline, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, logs bytes.Buffer
	log := zerolog.New(&logs)
	metrics := observability.NewMetrics("pubmed")
	return pipeline{
		searcher: search.NewFetcher(types.SearchConfig{
			HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second},
			BaseURL:    baseURL,
			MaxResults: 100,
		}, log, metrics),
		classifier: classify.Default(),
		metrics:    metrics,
		logger:     log,
		stdout:     &stdout,
	}, &stdout, &logs
}

func TestPipelineEndToEnd(t *testing.T) {
	srv := newEutils(t, http.StatusOK)
	p, _, _ := testPipeline(t, srv.URL)

	path := filepath.Join(t.TempDir(), "papers.csv")
	err := p.run(context.Background(), "cancer", 10, types.OutputConfig{File: path}, report.Meta{RunID: "r1"})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 2, "header plus exactly one row")
	assert.Equal(t, report.Headers(), records[0])
	assert.Equal(t, []string{
		"111",
		"Article A",
		"Mar 2023",
		"Jane Smith",
		industryAffiliation,
		"jane.smith@acmetx.com",
	}, records[1])

	assert.Equal(t, 1.0, testutil.ToFloat64(p.metrics.ReportRows))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.metrics.AuthorsClassified.WithLabelValues(observability.VerdictNonAcademic)))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.metrics.AuthorsClassified.WithLabelValues(observability.VerdictAcademic)))
}

func TestPipelineStdoutTable(t *testing.T) {
	srv := newEutils(t, http.StatusOK)
	p, stdout, _ := testPipeline(t, srv.URL)

	require.NoError(t, p.run(context.Background(), "cancer", 10, types.OutputConfig{}, report.Meta{}))
	assert.Contains(t, stdout.String(), "Article A")
	assert.NotContains(t, stdout.String(), "Article B")
}

func TestPipelineDegradesOnFailure(t *testing.T) {
	srv := newEutils(t, http.StatusServiceUnavailable)
	p, stdout, logs := testPipeline(t, srv.URL)

	path := filepath.Join(t.TempDir(), "papers.csv")
	err := p.run(context.Background(), "cancer", 10, types.OutputConfig{File: path}, report.Meta{})
	require.NoError(t, err, "a failed search is reported, not returned")

	assert.Empty(t, stdout.String())
	assert.NoFileExists(t, path)
	assert.Contains(t, logs.String(), "API request failed")
	assert.Contains(t, logs.String(), "No papers found matching the criteria.")
	assert.Equal(t, 1.0, testutil.ToFloat64(p.metrics.RequestsTotal.WithLabelValues(search.PhaseSearch, observability.OutcomeError)))
}

func TestPipelineEmptyQuery(t *testing.T) {
	p, _, _ := testPipeline(t, "http://127.0.0.1:1")
	err := p.run(context.Background(), "  ", 10, types.OutputConfig{}, report.Meta{})
	assert.ErrorIs(t, err, search.ErrEmptyQuery)
}

func TestLoadClassifier(t *testing.T) {
	c, err := loadClassifier("")
	require.NoError(t, err)
	assert.Equal(t, classify.DefaultRules(), c.Rules())

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("industry_keywords: [contoso]\n"), 0o644))
	c, err = loadClassifier(path)
	require.NoError(t, err)
	assert.True(t, c.IsNonAcademic(types.Author{Affiliation: "Contoso Labs"}))

	require.NoError(t, os.WriteFile(path, []byte("company_patterns: ['([']\n"), 0o644))
	_, err = loadClassifier(path)
	assert.Error(t, err)
}

// executeRoot runs the CLI in an isolated working directory.
func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NCBI_API_KEY", "")

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	srv := newEutils(t, http.StatusOK)
	t.Setenv("GET_PAPERS_LIST_SEARCH_BASE_URL", srv.URL)

	dir := t.TempDir()
	out := filepath.Join(dir, "papers.json")
	metricsPath := filepath.Join(dir, "run.prom")

	_, stderr, err := executeRoot(t, "cancer", "-m", "5", "-f", out, "--metrics-file", metricsPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Results saved")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var rows []report.Row
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "111", rows[0].PubmedID)
	assert.Equal(t, "2023-03", rows[0].EDTFDate)

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "pubmed_report_rows 1")
}

func TestClassifyCommand(t *testing.T) {
	stdout, _, err := executeRoot(t, "classify", "--json", "Acme Therapeutics", "Department of Biology, Example University")
	require.NoError(t, err)

	var got []struct {
		Affiliation string `json:"affiliation"`
		NonAcademic bool   `json:"non_academic"`
		Category    string `json:"category"`
		Match       string `json:"match"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 2)
	assert.True(t, got[0].NonAcademic)
	assert.Equal(t, "industry_keywords", got[0].Category)
	assert.Equal(t, "therapeutics", got[0].Match)
	assert.False(t, got[1].NonAcademic)
}

func TestRulesCommand(t *testing.T) {
	stdout, _, err := executeRoot(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, stdout, "industry_keywords:")
	assert.Contains(t, stdout, "gmail.com")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeRoot(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "get-papers-list dev\n", stdout)
}

func TestReportsCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "results.db")
	rows := []report.Row{{
		PubmedID:                 "111",
		Title:                    "Targeting KRAS",
		PublicationDate:          "2023-Mar",
		NonAcademicAuthors:       "Jane Smith",
		CompanyAffiliations:      industryAffiliation,
		CorrespondingAuthorEmail: "jane.smith@acmetx.com",
	}}
	meta := report.Meta{RunID: "run-abc", Query: "kras", CreatedAt: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, report.Write(context.Background(), nil, rows, types.OutputConfig{File: dbPath}, meta))

	stdout, _, err := executeRoot(t, "reports", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "run-abc")
	assert.Contains(t, stdout, "kras")
	assert.Contains(t, stdout, "2026-05-01T12:00:00Z")

	stdout, _, err = executeRoot(t, "reports", dbPath, "run-abc")
	require.NoError(t, err)
	assert.Contains(t, stdout, "111")
	assert.Contains(t, stdout, "jane.smith@acmetx.com")

	_, _, err = executeRoot(t, "reports", dbPath, "run-missing")
	assert.ErrorIs(t, err, report.ErrNoResults)

	_, _, err = executeRoot(t, "reports", filepath.Join(t.TempDir(), "absent.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening report database")
}
