package observability

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NewRunID returns a fresh identifier for one CLI run.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunContext adds the run ID and query to every entry of logger.
func WithRunContext(logger zerolog.Logger, runID, query string) zerolog.Logger {
	return logger.With().
		Str("run_id", runID).
		Str("query", query).
		Logger()
}
