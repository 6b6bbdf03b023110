// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-fetcher/internal/classify"
	"github.com/pdiddy/pubmed-fetcher/internal/report"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify AFFILIATION...",
	Short: "Classify affiliation strings as academic or non-academic",
	Long: `Classify runs the affiliation classifier on each argument and shows the
verdict, the rule category that fired, the matched term, and the email
address found in the text. Use it to check a rule file before a search.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().Bool("json", false, "output verdicts as JSON")
	rootCmd.AddCommand(classifyCmd)
}

// classifiedAffiliation pairs an input string with its verdict.
type classifiedAffiliation struct {
	Affiliation string `json:"affiliation"`
	classify.Verdict
}

func runClassify(cmd *cobra.Command, args []string) error {
	c, err := loadClassifier(cfg.Classifier.RulesFile)
	if err != nil {
		return err
	}

	results := make([]classifiedAffiliation, len(args))
	for i, text := range args {
		results[i] = classifiedAffiliation{
			Affiliation: text,
			Verdict:     c.Classify(types.Author{Affiliation: text}),
		}
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	records := make([][]string, len(results))
	for i, r := range results {
		verdict := "academic"
		if r.NonAcademic {
			verdict = "non-academic"
		}
		records[i] = []string{r.Affiliation, verdict, string(r.Category), r.Match, r.Email}
	}
	out := cmd.OutOrStdout()
	if err := report.RenderTable(out, []string{"Affiliation", "Verdict", "Rule", "Match", "Email"}, records, report.TerminalWidth(out)); err != nil {
		return fmt.Errorf("rendering verdicts: %w", err)
	}

	flagged := 0
	for _, r := range results {
		if r.NonAcademic {
			flagged++
		}
	}
	logger.Debug().Int("non_academic", flagged).Int("total", len(results)).Msg("classified affiliations")
	return nil
}
