package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the transport default.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "get-papers-list/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the PubMed search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the E-utilities base URL; esearch.fcgi and efetch.fcgi are
	// resolved against it.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// MaxResults caps the number of identifiers requested from esearch (default 100).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results" validate:"gte=1,lte=10000"`

	// APIKey is an optional NCBI API key sent as the api_key parameter.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// ClassifierConfig holds settings for the affiliation classifier.
type ClassifierConfig struct {
	// RulesFile is an optional YAML rule set replacing the built-in defaults
	// category by category.
	RulesFile string `json:"rules_file,omitempty" yaml:"rules_file,omitempty" mapstructure:"rules_file"`
}

// OutputFormat selects how the report is written.
type OutputFormat string

const (
	FormatTable  OutputFormat = "table"
	FormatCSV    OutputFormat = "csv"
	FormatJSON   OutputFormat = "json"
	FormatYAML   OutputFormat = "yaml"
	FormatSQLite OutputFormat = "sqlite"
)

// OutputConfig holds settings for the report stage.
type OutputConfig struct {
	// File is the report destination. Empty writes a table to stdout.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`

	// Format overrides the format inferred from File's extension.
	Format OutputFormat `json:"format,omitempty" yaml:"format,omitempty" mapstructure:"format" validate:"omitempty,oneof=table csv json yaml sqlite"`

	// MetricsFile, when set, receives the run metrics in Prometheus text format.
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty" mapstructure:"metrics_file"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"omitempty,oneof=trace debug info warn warning error"`

	// Format is console or json.
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"omitempty,oneof=console pretty json"`
}

// Config groups all stage configurations.
type Config struct {
	Search     SearchConfig     `json:"search" yaml:"search" mapstructure:"search"`
	Classifier ClassifierConfig `json:"classifier" yaml:"classifier" mapstructure:"classifier"`
	Output     OutputConfig     `json:"output" yaml:"output" mapstructure:"output"`
	Logging    LoggingConfig    `json:"logging" yaml:"logging" mapstructure:"logging"`
}
