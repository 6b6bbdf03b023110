// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the get-papers-list pipeline:
// the normalized article records produced by search and consumed by the
// classifier and report stages, and the configuration structs for each stage.
package types

// UnknownField is the placeholder used when a name or date part is absent
// from the source record.
const UnknownField = "Unknown"

// Author is one parsed author entry of an article.
type Author struct {
	// Name is "<ForeName> <LastName>", trimmed.
	Name string `json:"name" yaml:"name"`

	// Affiliation is the raw affiliation text, possibly empty.
	Affiliation string `json:"affiliation" yaml:"affiliation"`

	// Email is the first address found in Affiliation, or empty.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Article is the normalized record of one fetched PubMed publication.
type Article struct {
	// PubmedID is the PMID of the citation.
	PubmedID string `json:"pubmed_id" yaml:"pubmed_id"`

	// Title is the article title, or "No Title" when the source has none.
	Title string `json:"title" yaml:"title"`

	// PublicationDate is "<Month> <Year>" with "Unknown" for missing parts.
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// Authors lists the authors in document order.
	Authors []Author `json:"authors" yaml:"authors"`

	// NonAcademicAuthors is the order-preserving subsequence of Authors that
	// the classifier flagged. It is set only by classify.FilterNonAcademicPapers.
	NonAcademicAuthors []Author `json:"non_academic_authors,omitempty" yaml:"non_academic_authors,omitempty"`
}
