// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

func TestParseArticleSet(t *testing.T) {
	out, err := ParseArticleSet(strings.NewReader(sampleEFetchXML))
	require.NoError(t, err)
	require.Len(t, out.Articles, 2)
	assert.Empty(t, out.ArticleErrors)
	assert.Empty(t, out.AuthorErrors)

	a := out.Articles[0]
	assert.Equal(t, "38000001", a.PubmedID)
	assert.Equal(t, "Targeting KRAS mutations & resistance.", a.Title)
	assert.Equal(t, "Mar 2023", a.PublicationDate)
	require.Len(t, a.Authors, 2)
	assert.Equal(t, types.Author{
		Name:        "Jane Smith",
		Affiliation: "Acme Therapeutics, Cambridge, MA, USA. jane.smith@acmetx.com",
		Email:       "jane.smith@acmetx.com",
	}, a.Authors[0])
	assert.Equal(t, "Min Lee", a.Authors[1].Name)
	assert.Empty(t, a.Authors[1].Email)

	b := out.Articles[1]
	assert.Equal(t, "38000002", b.PubmedID)
	assert.Equal(t, "Unknown 2022", b.PublicationDate)
}

func TestParseArticleSetIsolatesFailures(t *testing.T) {
	out, err := ParseArticleSet(strings.NewReader(edgeEFetchXML))
	require.NoError(t, err)

	require.Len(t, out.ArticleErrors, 1, "article without PMID is skipped")
	assert.True(t, errors.Is(out.ArticleErrors[0], ErrMissingPMID))
	assert.Contains(t, out.ArticleErrors[0].Error(), "article 1")

	require.Len(t, out.Articles, 2, "later articles are still parsed")

	a := out.Articles[0]
	assert.Equal(t, "100", a.PubmedID)
	assert.Equal(t, NoTitle, a.Title)
	assert.Equal(t, "Unknown Unknown", a.PublicationDate)

	require.Len(t, out.AuthorErrors, 1)
	assert.True(t, errors.Is(out.AuthorErrors[0], ErrEmptyAuthor))
	assert.Contains(t, out.AuthorErrors[0].Error(), "PMID 100 author 2")

	names := make([]string, len(a.Authors))
	for i, au := range a.Authors {
		names[i] = au.Name
		assert.Empty(t, au.Affiliation)
		assert.Empty(t, au.Email)
	}
	assert.Equal(t, []string{"Unknown", "Prince Unknown", "Solo"}, names)

	b := out.Articles[1]
	assert.Equal(t, "101", b.PubmedID)
	assert.Equal(t, NoTitle, b.Title, "empty title element falls back")
	assert.Equal(t, "Unknown Unknown", b.PublicationDate, "MedlineDate is not split into parts")
	assert.Empty(t, b.Authors)
}

func TestParseArticleSetMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"truncated", `<PubmedArticleSet><PubmedArticle><MedlineCitation><PMID>1</PMID>`},
		{"not xml", `Service unavailable`},
		{"empty", ``},
		{"mismatched tags", `<PubmedArticleSet><PubmedArticle></Other></PubmedArticleSet>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArticleSet(strings.NewReader(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestParseArticleSetEmptySet(t *testing.T) {
	out, err := ParseArticleSet(strings.NewReader(`<PubmedArticleSet></PubmedArticleSet>`))
	require.NoError(t, err)
	assert.Empty(t, out.Articles)
}

func TestFormatPubDate(t *testing.T) {
	tests := []struct {
		name string
		in   *pubDate
		want string
	}{
		{"nil container", nil, "Unknown Unknown"},
		{"year only", &pubDate{Year: "2021"}, "Unknown 2021"},
		{"month only", &pubDate{Month: "Dec"}, "Dec Unknown"},
		{"both", &pubDate{Year: "2021", Month: "Dec"}, "Dec 2021"},
		{"whitespace", &pubDate{Year: " 2021 ", Month: "  "}, "Unknown 2021"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatPubDate(tt.in))
		})
	}
}

func TestFlattenMarkup(t *testing.T) {
	assert.Equal(t, "CO2 levels in H2O", flattenMarkup("CO<sub>2</sub> levels in H<sub>2</sub>O"))
	assert.Equal(t, "a < b", flattenMarkup("a &lt; b"))
	assert.Equal(t, "split title", flattenMarkup("split\n   title"))
	assert.Equal(t, "", flattenMarkup("  "))
}

func TestExtractAuthorEmailFromAffiliation(t *testing.T) {
	au, err := extractAuthor(author{
		LastName:        "Doe",
		ForeName:        "Jane",
		AffiliationInfo: []affiliationInfo{{Affiliation: "Jane Doe <jane@gmail.com>"}, {Affiliation: "Second Inc."}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", au.Name)
	assert.Equal(t, "Jane Doe <jane@gmail.com>", au.Affiliation, "first affiliation is used")
	assert.Equal(t, "jane@gmail.com", au.Email)
}
