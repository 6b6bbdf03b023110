// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// Meta identifies the run that produced a report.
type Meta struct {
	RunID     string
	Query     string
	CreatedAt time.Time
}

// ResolveFormat picks the output format. An explicit format wins; otherwise
// the file extension decides, with CSV for unknown extensions and a table
// when there is no file.
func ResolveFormat(file string, format types.OutputFormat) (types.OutputFormat, error) {
	if format != "" {
		switch format {
		case types.FormatTable, types.FormatCSV, types.FormatJSON, types.FormatYAML, types.FormatSQLite:
			return format, nil
		}
		return "", fmt.Errorf("unknown output format %q", format)
	}
	if file == "" {
		return types.FormatTable, nil
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		return types.FormatJSON, nil
	case ".yaml", ".yml":
		return types.FormatYAML, nil
	case ".db", ".sqlite", ".sqlite3":
		return types.FormatSQLite, nil
	default:
		return types.FormatCSV, nil
	}
}

// Write renders rows according to cfg. With no file, rows go to stdout in
// the resolved format; SQLite requires a file.
func Write(ctx context.Context, stdout io.Writer, rows []Row, cfg types.OutputConfig, meta Meta) error {
	format, err := ResolveFormat(cfg.File, cfg.Format)
	if err != nil {
		return err
	}

	if format == types.FormatSQLite {
		if cfg.File == "" {
			return fmt.Errorf("sqlite output requires a file")
		}
		store, err := OpenStore(cfg.File)
		if err != nil {
			return err
		}
		defer store.Close()
		return store.SaveReport(ctx, meta, rows)
	}

	if cfg.File == "" {
		return writeTo(stdout, format, rows, TerminalWidth(stdout))
	}

	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(cfg.File)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := writeTo(f, format, rows, 0); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeTo(w io.Writer, format types.OutputFormat, rows []Row, width int) error {
	switch format {
	case types.FormatCSV:
		return WriteCSV(w, rows)
	case types.FormatJSON:
		return WriteJSON(w, rows)
	case types.FormatYAML:
		return WriteYAML(w, rows)
	default:
		return WriteTable(w, rows, width)
	}
}

// WriteCSV writes a header line and one record per row.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers()); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return fmt.Errorf("writing CSV row %s: %w", r.PubmedID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteYAML writes rows as a YAML sequence.
func WriteYAML(w io.Writer, rows []Row) error {
	data, err := yaml.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}
