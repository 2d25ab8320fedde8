// Package export writes generated tables to files and reads CSV files back
// for the loaders.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Rana718/winegen/internal/types"
)

type Format string

const (
	CSV     Format = "csv"
	JSONL   Format = "jsonl"
	Parquet Format = "parquet"
)

// ProvenanceColumn is appended when Options.Provenance is set.
const ProvenanceColumn = "is_duplicate"

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, JSONL, Parquet:
		return f, nil
	case "json", "ndjson":
		return JSONL, nil
	default:
		return "", fmt.Errorf("%w: unsupported output format %q (expected csv, jsonl or parquet)", types.ErrInvalidConfig, s)
	}
}

// Ext is the file extension, dot included.
func (f Format) Ext() string {
	return "." + string(f)
}

type Options struct {
	// Provenance adds an is_duplicate column.
	Provenance bool
	// Pace is slept after each JSONL line, for demo streaming.
	Pace time.Duration
}

// WriteFile writes table to path, creating parent directories. The file is
// replaced if it exists and removed again if the write fails.
func WriteFile(ctx context.Context, table *types.Table, path string, format Format, opts Options) (types.Summary, error) {
	summary := types.Summary{Table: table.Name, Rows: table.Len(), Duplicates: table.DuplicateCount(), Target: path}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return summary, fmt.Errorf("%w: failed to create output directory %s: %v", types.ErrResource, dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return summary, fmt.Errorf("%w: failed to create %s: %v", types.ErrResource, path, err)
	}

	if err := Write(ctx, file, table, format, opts); err != nil {
		file.Close()
		os.Remove(path)
		return summary, err
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return summary, fmt.Errorf("%w: failed to close %s: %v", types.ErrResource, path, err)
	}
	return summary, nil
}

// Write encodes table to w in the given format.
func Write(ctx context.Context, w io.Writer, table *types.Table, format Format, opts Options) error {
	var err error
	switch format {
	case CSV:
		err = writeCSV(w, table, opts)
	case JSONL:
		err = writeJSONL(ctx, w, table, opts)
	case Parquet:
		err = writeParquet(w, table, opts)
	default:
		return fmt.Errorf("%w: unsupported output format %q", types.ErrInvalidConfig, format)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to write %s as %s: %v", types.ErrResource, table.Name, format, err)
	}
	return nil
}

// SwapExt replaces the extension of path with format's.
func SwapExt(path string, format Format) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + format.Ext()
}

func header(table *types.Table, opts Options) []string {
	names := table.ColumnNames()
	if opts.Provenance {
		names = append(names, ProvenanceColumn)
	}
	return names
}

// cell renders a value the way a spreadsheet export would. Whole floats keep
// one decimal so 13.0 does not turn into an integer column.
func cell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		s := strconv.FormatFloat(x, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eEn") {
			s += ".0"
		}
		return s
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
