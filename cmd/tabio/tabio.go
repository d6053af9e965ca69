// Package tabio decodes and encodes in-memory tables. Cell values are kept
// as text exactly as they appear on the wire; no type sniffing is performed,
// matching the engine's text-only comparison semantics.
package tabio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/csvdelta/csvdelta/cmd/engine"
)

// Format type constants
const (
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
)

// ErrUnsupportedFormat is returned when an unsupported table format is requested
var ErrUnsupportedFormat = errors.New("unsupported table format")

// TableReader decodes one table from a stream.
type TableReader interface {
	// ReadAll reads the whole table into memory.
	ReadAll() (*engine.Table, error)

	// Close closes the underlying reader if it's closable.
	Close() error
}

// TableWriter encodes one table to a stream.
type TableWriter interface {
	// Write encodes the table, preserving its column order.
	Write(table *engine.Table) error
}

// NewReader returns the appropriate reader for the given format. The name
// labels the resulting table in diagnostics.
func NewReader(format, name string, r io.Reader) (TableReader, error) {
	switch format {
	case FormatCSV:
		return NewCSVReader(r, name), nil
	case FormatJSONL:
		return NewJSONLReader(r, name), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// NewWriter returns the appropriate writer for the given format.
func NewWriter(format string, w io.Writer) (TableWriter, error) {
	switch format {
	case FormatCSV:
		return NewCSVWriter(w), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// FormatForPath infers the table format from a file path, looking through
// compression extensions (.gz, .zst, .lz4). CSV is the default when the
// extension is unknown.
func FormatForPath(path string) string {
	base := strings.ToLower(path)
	for _, ext := range []string{".gz", ".zst", ".lz4"} {
		base = strings.TrimSuffix(base, ext)
	}
	switch filepath.Ext(base) {
	case ".jsonl", ".ndjson":
		return FormatJSONL
	default:
		return FormatCSV
	}
}
