// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-fetcher/internal/classify"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the active classifier rule set as YAML",
	Long: `Rules prints the rule set the classifier uses: the built-in defaults, or
the file given by --rules with omitted categories filled from the defaults.
Use --write to save it as a starting point for a custom rule file.`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().String("write", "", "write the rule set to this file instead of stdout")
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, _ []string) error {
	c, err := loadClassifier(cfg.Classifier.RulesFile)
	if err != nil {
		return err
	}
	rules := c.Rules()

	if path, _ := cmd.Flags().GetString("write"); path != "" {
		if err := classify.WriteRules(path, rules); err != nil {
			return err
		}
		logger.Info().Str("file", path).Msg("rules written")
		return nil
	}

	data, err := yaml.Marshal(&rules)
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
