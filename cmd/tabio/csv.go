package tabio

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/csvdelta/csvdelta/cmd/engine"
)

// CSVWriter encodes a table as CSV
type CSVWriter struct {
	writer *csv.Writer
}

// NewCSVWriter creates a new CSV writer
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{writer: csv.NewWriter(w)}
}

// Write encodes the table in its column order. A table with no rows still
// produces a header row, so downstream consumers always see the schema.
func (w *CSVWriter) Write(table *engine.Table) error {
	if err := w.writer.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, col := range table.Columns {
			record[i] = row[col] // Absent cells encode as empty
		}
		if err := w.writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}
