// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads get-papers-list settings from defaults, a YAML config
// file, GET_PAPERS_LIST_* environment variables, and bound CLI flags, then
// validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. GET_PAPERS_LIST_SEARCH_MAX_RESULTS.
	EnvPrefix = "GET_PAPERS_LIST"

	// FileName is the config file base name searched in . and ~/.config/get-papers-list.
	FileName = "get-papers-list"
)

// Defaults for settings without a config file, flag, or environment value.
const (
	DefaultBaseURL    = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	DefaultMaxResults = 100
	DefaultTimeout    = "30s"
)

// New returns a viper instance with defaults and environment binding set.
// version feeds the default User-Agent.
func New(version string) *viper.Viper {
	v := viper.New()
	setDefaults(v, version)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper, version string) {
	if version == "" {
		version = "dev"
	}

	v.SetDefault("search.base_url", DefaultBaseURL)
	v.SetDefault("search.max_results", DefaultMaxResults)
	v.SetDefault("search.api_key", "")
	v.SetDefault("search.timeout", DefaultTimeout)
	v.SetDefault("search.user_agent", "get-papers-list/"+version)

	v.SetDefault("classifier.rules_file", "")

	v.SetDefault("output.file", "")
	v.SetDefault("output.format", "")
	v.SetDefault("output.metrics_file", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// ReadFile reads configFile, or searches for get-papers-list.yaml when it is
// empty. It returns the file used, or "" when none was found. A missing
// explicit file is an error; a missing searched file is not.
func ReadFile(v *viper.Viper, configFile string) (string, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Decode unmarshals v into a Config and validates it.
func Decode(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints declared on the config structs.
func Validate(cfg types.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fieldRule(fe), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func fieldRule(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
