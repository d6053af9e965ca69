package tabio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/csvdelta/csvdelta/cmd/engine"
)

// JSONLReader reads a table in JSONL format (one JSON object per line)
type JSONLReader struct {
	scanner *bufio.Scanner
	closer  io.Closer
	name    string
}

// NewJSONLReader creates a new JSONL reader. The name labels the table.
func NewJSONLReader(r io.Reader, name string) *JSONLReader {
	closer, _ := r.(io.Closer)
	return &JSONLReader{
		scanner: bufio.NewScanner(r),
		closer:  closer,
		name:    name,
	}
}

// ReadAll reads every line into memory. The table's column order is the
// order in which columns are first seen across the input. A JSON null is
// treated as an absent cell, distinct from an empty string.
func (r *JSONLReader) ReadAll() (*engine.Table, error) {
	var columns []string
	seen := make(map[string]bool)
	var rows []engine.Row

	for r.scanner.Scan() {
		line := r.scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		decoder := json.NewDecoder(bytes.NewReader(line))
		decoder.UseNumber() // Keep numeric cells textually intact

		// Walk the object token by token instead of decoding into a map:
		// map iteration order is randomized, and the column order must be
		// the order keys appear in the input.
		tok, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON line: %w", err)
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '{' {
			return nil, fmt.Errorf("failed to parse JSON line: not a JSON object")
		}

		row := make(engine.Row)
		for decoder.More() {
			keyTok, err := decoder.Token()
			if err != nil {
				return nil, fmt.Errorf("failed to parse JSON line: %w", err)
			}
			col, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("failed to parse JSON line: unexpected key token %v", keyTok)
			}

			var val interface{}
			if err := decoder.Decode(&val); err != nil {
				return nil, fmt.Errorf("failed to parse JSON line: %w", err)
			}

			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
			if val == nil {
				continue
			}
			row[col] = stringifyCell(val)
		}
		if _, err := decoder.Token(); err != nil {
			return nil, fmt.Errorf("failed to parse JSON line: %w", err)
		}
		rows = append(rows, row)
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}

	table := engine.NewTable(r.name, columns)
	for _, row := range rows {
		table.AppendRow(row)
	}
	return table, nil
}

// stringifyCell renders a decoded JSON value as text.
func stringifyCell(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		// Nested arrays/objects are rare in tabular data; keep their JSON
		// encoding as the cell text.
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}

// Close closes the underlying reader if it's closable.
func (r *JSONLReader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
