package tabio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/csvdelta/csvdelta/cmd/engine"
)

// ErrNoHeader is returned when a CSV input has no header row
var ErrNoHeader = errors.New("CSV input has no header row")

// CSVReader reads a CSV table with a mandatory header row
type CSVReader struct {
	reader *csv.Reader
	closer io.Closer
	name   string
}

// NewCSVReader creates a new CSV reader. The name labels the table.
func NewCSVReader(r io.Reader, name string) *CSVReader {
	reader := csv.NewReader(r)
	// Inputs with ragged rows are still comparable; short records are
	// padded with empty strings below.
	reader.FieldsPerRecord = -1

	closer, _ := r.(io.Closer)
	return &CSVReader{
		reader: reader,
		closer: closer,
		name:   name,
	}
}

// ReadAll reads the header and every row into memory.
func (r *CSVReader) ReadAll() (*engine.Table, error) {
	headers, err := r.reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s", ErrNoHeader, r.name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	table := engine.NewTable(r.name, headers)

	for {
		record, err := r.reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		row := make(engine.Row, len(headers))
		for i, col := range headers {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = "" // Pad short records
			}
		}
		table.AppendRow(row)
	}

	return table, nil
}

// Close closes the underlying reader if it's closable.
func (r *CSVReader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
