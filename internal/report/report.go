// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report projects filtered article records into flat report rows and
// writes them as CSV, JSON, YAML, SQLite, or a terminal table.
package report

import (
	"errors"
	"strings"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// ErrNoResults is returned by Build when no article survived filtering.
var ErrNoResults = errors.New("no papers found matching the criteria")

// Column headers, in output order.
const (
	ColumnPubmedID     = "PubMed ID"
	ColumnTitle        = "Title"
	ColumnDate         = "Publication Date"
	ColumnAuthors      = "Non-Academic Authors"
	ColumnAffiliations = "Company Affiliations"
	ColumnEmails       = "Corresponding Author Email"
)

// Headers returns the report column headers in order.
func Headers() []string {
	return []string{ColumnPubmedID, ColumnTitle, ColumnDate, ColumnAuthors, ColumnAffiliations, ColumnEmails}
}

const listSeparator = ", "

// Row is one report line: an article and its non-academic authors.
type Row struct {
	PubmedID                 string `json:"pubmed_id" yaml:"pubmed_id"`
	Title                    string `json:"title" yaml:"title"`
	PublicationDate          string `json:"publication_date" yaml:"publication_date"`
	EDTFDate                 string `json:"edtf_date,omitempty" yaml:"edtf_date,omitempty"`
	NonAcademicAuthors       string `json:"non_academic_authors" yaml:"non_academic_authors"`
	CompanyAffiliations      string `json:"company_affiliations" yaml:"company_affiliations"`
	CorrespondingAuthorEmail string `json:"corresponding_author_email" yaml:"corresponding_author_email"`
}

// Record returns the row's values in Headers order.
func (r Row) Record() []string {
	return []string{
		r.PubmedID,
		r.Title,
		r.PublicationDate,
		r.NonAcademicAuthors,
		r.CompanyAffiliations,
		r.CorrespondingAuthorEmail,
	}
}

// Build projects filtered articles into rows, one per article, in order.
// Names and affiliations of every non-academic author are joined with ", ";
// only non-empty emails are joined. An empty input returns ErrNoResults.
func Build(articles []types.Article) ([]Row, error) {
	if len(articles) == 0 {
		return nil, ErrNoResults
	}

	rows := make([]Row, 0, len(articles))
	for _, a := range articles {
		names := make([]string, 0, len(a.NonAcademicAuthors))
		affiliations := make([]string, 0, len(a.NonAcademicAuthors))
		var emails []string
		for _, au := range a.NonAcademicAuthors {
			names = append(names, au.Name)
			affiliations = append(affiliations, au.Affiliation)
			if au.Email != "" {
				emails = append(emails, au.Email)
			}
		}

		rows = append(rows, Row{
			PubmedID:                 a.PubmedID,
			Title:                    a.Title,
			PublicationDate:          a.PublicationDate,
			EDTFDate:                 EDTFDate(a.PublicationDate),
			NonAcademicAuthors:       strings.Join(names, listSeparator),
			CompanyAffiliations:      strings.Join(affiliations, listSeparator),
			CorrespondingAuthorEmail: strings.Join(emails, listSeparator),
		})
	}
	return rows, nil
}
