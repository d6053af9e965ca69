package tabio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/csvdelta/csvdelta/cmd/engine"
)

// JSONLWriter encodes a table as JSONL (one JSON object per line)
type JSONLWriter struct {
	writer io.Writer
}

// NewJSONLWriter creates a new JSONL writer
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{writer: w}
}

// Write encodes one object per row. Every declared column is present in
// every object (absent cells encode as empty strings) so consumers see a
// uniform shape.
func (w *JSONLWriter) Write(table *engine.Table) error {
	for _, row := range table.Rows {
		obj := make(map[string]string, len(table.Columns))
		for _, col := range table.Columns {
			obj[col] = row[col]
		}

		encoded, err := json.Marshal(obj)
		if err != nil {
			return fmt.Errorf("failed to encode JSONL row: %w", err)
		}
		if _, err := w.writer.Write(encoded); err != nil {
			return err
		}
		if _, err := w.writer.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return nil
}
