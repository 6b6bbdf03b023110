// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides whether an author's affiliation points to industry
// rather than academia, and filters articles down to those with at least one
// such author.
//
// The decision is a keyword and pattern heuristic over free text. It prefers
// concrete signals and defaults to academic when none fire.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// Verdict is the outcome of classifying one author, with the evidence that
// produced it. Category and Match are empty for academic verdicts.
type Verdict struct {
	NonAcademic bool     `json:"non_academic" yaml:"non_academic"`
	Category    Category `json:"category,omitempty" yaml:"category,omitempty"`
	Match       string   `json:"match,omitempty" yaml:"match,omitempty"`
	Email       string   `json:"email,omitempty" yaml:"email,omitempty"`
}

// Classifier applies a compiled RuleSet. It holds no mutable state and is
// safe for concurrent use.
type Classifier struct {
	rules    RuleSet
	keywords []string
	domains  []string
	patterns []*regexp.Regexp
}

// New compiles rules into a Classifier. Nil categories take the defaults.
func New(rules RuleSet) (*Classifier, error) {
	rules = rules.withDefaults()
	c := &Classifier{rules: rules}

	for _, kw := range rules.IndustryKeywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			c.keywords = append(c.keywords, kw)
		}
	}
	for _, d := range rules.EmailDomains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			c.domains = append(c.domains, d)
		}
	}
	for _, p := range rules.CompanyPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling company pattern %q: %w", p, err)
		}
		c.patterns = append(c.patterns, re)
	}
	return c, nil
}

// Default returns a Classifier over DefaultRules.
func Default() *Classifier {
	c, err := New(DefaultRules())
	if err != nil {
		panic(err)
	}
	return c
}

// Rules returns the rule set the classifier was built from.
func (c *Classifier) Rules() RuleSet {
	return c.rules
}

// Classify runs the ordered rules against the author's affiliation; the
// first rule that fires decides.
func (c *Classifier) Classify(author types.Author) Verdict {
	affiliation := author.Affiliation
	lower := strings.ToLower(affiliation)

	email := ExtractEmail(affiliation)
	v := Verdict{Email: email}

	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			v.NonAcademic, v.Category, v.Match = true, CategoryIndustryKeyword, kw
			return v
		}
	}

	if email != "" {
		domain := emailDomain(email)
		for _, d := range c.domains {
			if strings.Contains(domain, d) {
				v.NonAcademic, v.Category, v.Match = true, CategoryEmailDomain, d
				return v
			}
		}
	}

	for _, re := range c.patterns {
		if loc := re.FindStringIndex(affiliation); loc != nil {
			v.NonAcademic, v.Category, v.Match = true, CategoryCompanyPattern, affiliation[loc[0]:loc[1]]
			return v
		}
	}

	return v
}

// IsNonAcademic reports whether the author's affiliation looks like industry.
func (c *Classifier) IsNonAcademic(author types.Author) bool {
	return c.Classify(author).NonAcademic
}

// FilterNonAcademicPapers keeps the articles with at least one non-academic
// author and sets NonAcademicAuthors on each survivor. Article order and
// author order are preserved. The input slice is not modified.
func (c *Classifier) FilterNonAcademicPapers(articles []types.Article) []types.Article {
	var filtered []types.Article
	for _, a := range articles {
		var flagged []types.Author
		for _, author := range a.Authors {
			if c.IsNonAcademic(author) {
				flagged = append(flagged, author)
			}
		}
		if len(flagged) == 0 {
			continue
		}
		a.NonAcademicAuthors = flagged
		filtered = append(filtered, a)
	}
	return filtered
}
