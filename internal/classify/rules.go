// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"
)

// Category names one group of rules in a RuleSet.
type Category string

const (
	CategoryIndustryKeyword Category = "industry_keywords"
	CategoryEmailDomain     Category = "email_domains"
	CategoryCompanyPattern  Category = "company_patterns"
)

// RuleSet is the immutable data behind the classifier. Rules are applied in
// category order: industry keywords, then email domains, then company patterns.
type RuleSet struct {
	// IndustryKeywords are matched as lowercase substrings of the affiliation.
	IndustryKeywords []string `yaml:"industry_keywords"`

	// EmailDomains are matched as substrings of the domain of the first
	// email address found in the affiliation.
	EmailDomains []string `yaml:"email_domains"`

	// CompanyPatterns are regular expressions applied to the original
	// (not lowercased) affiliation text.
	CompanyPatterns []string `yaml:"company_patterns"`
}

// DefaultRules returns the built-in rule set. Each call returns fresh slices.
func DefaultRules() RuleSet {
	return RuleSet{
		IndustryKeywords: []string{
			"pharmaceutical",
			"biotech",
			"pharma",
			"drug discovery",
			"biopharmaceutical",
			"therapeutics",
			"laboratories",
			"research institute",
			"innovation center",
		},
		EmailDomains: []string{
			"gmail.com",
			"yahoo.com",
			"hotmail.com",
			"company.com",
			"corp.com",
			"inc.com",
		},
		CompanyPatterns: []string{
			`\b[A-Z][A-Za-z0-9&-]*,?\s+(?:Inc\.|LLC\b|Corporation\b|Ltd\.)`,
			`(?i)\b(?:Pharmaceuticals|Therapeutics|Laboratories)\b`,
		},
	}
}

// Categories returns the rule set as a mapping from category to its ordered terms.
func (r RuleSet) Categories() map[Category][]string {
	return map[Category][]string{
		CategoryIndustryKeyword: append([]string(nil), r.IndustryKeywords...),
		CategoryEmailDomain:     append([]string(nil), r.EmailDomains...),
		CategoryCompanyPattern:  append([]string(nil), r.CompanyPatterns...),
	}
}

// withDefaults fills categories the caller left nil. An explicitly empty
// list stays empty and disables that category.
func (r RuleSet) withDefaults() RuleSet {
	def := DefaultRules()
	if r.IndustryKeywords == nil {
		r.IndustryKeywords = def.IndustryKeywords
	}
	if r.EmailDomains == nil {
		r.EmailDomains = def.EmailDomains
	}
	if r.CompanyPatterns == nil {
		r.CompanyPatterns = def.CompanyPatterns
	}
	return r
}

// LoadRules reads a YAML rule file. Categories absent from the file keep
// their default terms.
func LoadRules(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("reading rules file: %w", err)
	}
	var r RuleSet
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil && !errors.Is(err, io.EOF) {
		return RuleSet{}, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	return r.withDefaults(), nil
}

// WriteRules encodes r as YAML to path.
func WriteRules(path string, r RuleSet) error {
	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
