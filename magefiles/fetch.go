//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Fetch builds the CLI and runs one PubMed query, printing the report table.
// Example: mage fetch "cancer immunotherapy"
func Fetch(query string) error {
	mg.Deps(Build)
	return sh.RunV(binPath, "--debug", query)
}

// Rules builds the CLI and prints the active classifier rule set.
func Rules() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "rules")
}
