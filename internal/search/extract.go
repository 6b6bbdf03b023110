// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/pdiddy/pubmed-fetcher/internal/classify"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// NoTitle is the title given to articles without an ArticleTitle.
const NoTitle = "No Title"

var (
	// ErrMissingPMID marks an article without a PMID. The article is skipped.
	ErrMissingPMID = errors.New("article has no PMID")

	// ErrEmptyAuthor marks an Author element with no name parts and no
	// affiliation. The author is skipped.
	ErrEmptyAuthor = errors.New("author element is empty")
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// ParseOutput holds the records extracted from one efetch response together
// with the per-item failures that were isolated along the way.
type ParseOutput struct {
	Articles      []types.Article
	ArticleErrors []error
	AuthorErrors  []error
}

// ParseArticleSet streams a PubmedArticleSet document and extracts every
// PubmedArticle it contains. An article that cannot be extracted is recorded
// in ArticleErrors and skipped; an author that cannot be extracted is
// recorded in AuthorErrors and left out of its article. Only a malformed
// document returns an error.
func ParseArticleSet(r io.Reader) (ParseOutput, error) {
	var out ParseOutput

	dec := xml.NewDecoder(r)
	dec.Entity = xml.HTMLEntity

	sawRoot := false
	index := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ParseOutput{}, fmt.Errorf("parsing efetch response: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true
		if se.Name.Local != "PubmedArticle" {
			continue
		}

		index++
		var pa pubmedArticle
		if err := dec.DecodeElement(&pa, &se); err != nil {
			return ParseOutput{}, fmt.Errorf("parsing article %d: %w", index, err)
		}

		article, authorErrs, err := extractArticle(pa)
		if err != nil {
			out.ArticleErrors = append(out.ArticleErrors, fmt.Errorf("article %d: %w", index, err))
			continue
		}
		out.AuthorErrors = append(out.AuthorErrors, authorErrs...)
		out.Articles = append(out.Articles, article)
	}

	if !sawRoot {
		return ParseOutput{}, fmt.Errorf("parsing efetch response: no XML element found")
	}
	return out, nil
}

// extractArticle converts one decoded PubmedArticle into an Article record.
func extractArticle(pa pubmedArticle) (types.Article, []error, error) {
	if pa.PMID == nil || strings.TrimSpace(pa.PMID.Value) == "" {
		return types.Article{}, nil, ErrMissingPMID
	}
	id := strings.TrimSpace(pa.PMID.Value)

	article := types.Article{
		PubmedID:        id,
		Title:           NoTitle,
		PublicationDate: formatPubDate(pa.PubDate),
	}
	if pa.Title != nil {
		if t := flattenMarkup(pa.Title.Inner); t != "" {
			article.Title = t
		}
	}

	var authorErrs []error
	for i, a := range pa.Authors {
		au, err := extractAuthor(a)
		if err != nil {
			authorErrs = append(authorErrs, fmt.Errorf("PMID %s author %d: %w", id, i+1, err))
			continue
		}
		article.Authors = append(article.Authors, au)
	}
	return article, authorErrs, nil
}

// extractAuthor builds an Author from one Author element. LastName defaults
// to "Unknown" and ForeName to empty; the first AffiliationInfo is used.
func extractAuthor(a author) (types.Author, error) {
	last := strings.TrimSpace(a.LastName)
	first := strings.TrimSpace(a.ForeName)
	affiliation := ""
	if len(a.AffiliationInfo) > 0 {
		affiliation = strings.TrimSpace(a.AffiliationInfo[0].Affiliation)
	}

	if last == "" && first == "" && affiliation == "" &&
		strings.TrimSpace(a.Initials) == "" && strings.TrimSpace(a.CollectiveName) == "" {
		return types.Author{}, ErrEmptyAuthor
	}

	if last == "" {
		last = types.UnknownField
	}
	return types.Author{
		Name:        strings.TrimSpace(first + " " + last),
		Affiliation: affiliation,
		Email:       classify.ExtractEmail(affiliation),
	}, nil
}

// formatPubDate renders "<Month> <Year>", each part defaulting to "Unknown".
func formatPubDate(d *pubDate) string {
	month, year := types.UnknownField, types.UnknownField
	if d != nil {
		if m := strings.TrimSpace(d.Month); m != "" {
			month = m
		}
		if y := strings.TrimSpace(d.Year); y != "" {
			year = y
		}
	}
	return month + " " + year
}

// flattenMarkup strips inline tags, unescapes entities, and collapses whitespace.
func flattenMarkup(inner string) string {
	text := html.UnescapeString(tagPattern.ReplaceAllString(inner, ""))
	return strings.Join(strings.Fields(text), " ")
}
