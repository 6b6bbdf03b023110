// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import "encoding/xml"

// E-utilities esearch response. Only the fields the pipeline reads are mapped.
type eSearchResult struct {
	XMLName   xml.Name       `xml:"eSearchResult"`
	Count     string         `xml:"Count"`
	IDs       []string       `xml:"IdList>Id"`
	ErrorList *eSearchErrors `xml:"ErrorList"`
	Error     string         `xml:"ERROR"`
}

type eSearchErrors struct {
	PhraseNotFound []string `xml:"PhraseNotFound"`
	FieldNotFound  []string `xml:"FieldNotFound"`
}

// E-utilities efetch PubmedArticle element. The path tags mirror where the
// PubMed DTD places each field.
type pubmedArticle struct {
	PMID    *pmid       `xml:"MedlineCitation>PMID"`
	Title   *markupText `xml:"MedlineCitation>Article>ArticleTitle"`
	PubDate *pubDate    `xml:"MedlineCitation>Article>Journal>JournalIssue>PubDate"`
	Authors []author    `xml:"MedlineCitation>Article>AuthorList>Author"`
}

type pmid struct {
	Version string `xml:"Version,attr"`
	Value   string `xml:",chardata"`
}

// markupText keeps the raw inner XML so inline markup such as <i> or <sup>
// in titles can be flattened to text.
type markupText struct {
	Inner string `xml:",innerxml"`
}

type pubDate struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	MedlineDate string `xml:"MedlineDate"`
}

type author struct {
	ValidYN         string            `xml:"ValidYN,attr"`
	LastName        string            `xml:"LastName"`
	ForeName        string            `xml:"ForeName"`
	Initials        string            `xml:"Initials"`
	CollectiveName  string            `xml:"CollectiveName"`
	AffiliationInfo []affiliationInfo `xml:"AffiliationInfo"`
}

type affiliationInfo struct {
	Affiliation string `xml:"Affiliation"`
}
