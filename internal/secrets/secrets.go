// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets discovers credentials for the E-utilities API.
//
// Secrets come from a directory of plain-text files, where each filename is a
// key name and the trimmed contents are its value, and from a dotenv file or
// the process environment.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	// DefaultDir is the secrets directory read relative to the working directory.
	DefaultDir = ".secrets"

	// DefaultEnvFile is the dotenv file read relative to the working directory.
	DefaultEnvFile = ".env"

	// NCBIKeyFile is the secrets file holding the NCBI API key.
	NCBIKeyFile = "ncbi-api-key"

	// NCBIKeyEnv is the environment variable holding the NCBI API key.
	NCBIKeyEnv = "NCBI_API_KEY"
)

// Source names where an API key was found.
type Source string

const (
	SourceNone     Source = ""
	SourceExplicit Source = "config"
	SourceFile     Source = "secrets file"
	SourceDotenv   Source = "dotenv"
	SourceEnv      Source = "environment"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error. Dotfiles, subdirectories, and empty
// files are skipped; unreadable files are logged and skipped.
func Load(dir string, logger zerolog.Logger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	found := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn().Err(err).Str("secret", name).Msg("could not read secret")
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			found[name] = value
		}
	}
	return found, nil
}

// Locations lists where ResolveAPIKey looks.
type Locations struct {
	Dir     string
	EnvFile string
}

// DefaultLocations returns the working-directory secrets locations.
func DefaultLocations() Locations {
	return Locations{Dir: DefaultDir, EnvFile: DefaultEnvFile}
}

// ResolveAPIKey returns the NCBI API key and where it came from. The explicit
// value wins, then the secrets directory, then the dotenv file, then the
// environment. No key is not an error; the API works without one at a lower
// request rate.
func ResolveAPIKey(explicit string, loc Locations, logger zerolog.Logger) (string, Source, error) {
	if key := strings.TrimSpace(explicit); key != "" {
		return key, SourceExplicit, nil
	}

	if loc.Dir != "" {
		found, err := Load(loc.Dir, logger)
		if err != nil {
			return "", SourceNone, err
		}
		if key := found[NCBIKeyFile]; key != "" {
			return key, SourceFile, nil
		}
	}

	if loc.EnvFile != "" {
		env, err := godotenv.Read(loc.EnvFile)
		switch {
		case err == nil:
			if key := strings.TrimSpace(env[NCBIKeyEnv]); key != "" {
				return key, SourceDotenv, nil
			}
		case os.IsNotExist(err):
		default:
			return "", SourceNone, fmt.Errorf("reading %s: %w", loc.EnvFile, err)
		}
	}

	if key := strings.TrimSpace(os.Getenv(NCBIKeyEnv)); key != "" {
		return key, SourceEnv, nil
	}
	return "", SourceNone, nil
}
