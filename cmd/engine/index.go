package engine

import (
	"fmt"
	"sort"
	"strings"
)

// KeySeparator joins key column values into a row key. The ASCII unit
// separator cannot appear in legitimate field content of a well-formed
// dataset, so composite keys never collide the way a printable delimiter
// would (e.g. ("AB","C") vs ("A","BC") with "|"). The separator also appears
// in the output table's Row Key column; that column is presentation-only
// and must not be parsed by downstream consumers.
const KeySeparator = "\x1f"

// KeyIndex maps row keys to rows for one table. Keys that occur more than
// once are moved to Duplicates and excluded from matching: ambiguous rows
// cannot be meaningfully matched one-to-one. Immutable after construction.
type KeyIndex struct {
	// Rows holds the uniquely keyed rows.
	Rows map[string]Row

	// Duplicates holds every occurrence of a duplicated key, including the
	// first, in input order.
	Duplicates map[string][]Row
}

// RowKeyOf derives a row's key from its values for the key columns, in key
// column order. Identical key-column values always yield the same key,
// regardless of the row's other cells.
func RowKeyOf(row Row, keyColumns []string) string {
	values := make([]string, len(keyColumns))
	for i, col := range keyColumns {
		values[i] = row[col]
	}
	return strings.Join(values, KeySeparator)
}

// buildKeyIndex indexes one table by row key. It emits one DuplicateKey
// diagnostic per distinct duplicated key (not per occurrence), in ordinal
// key order.
func buildKeyIndex(table *Table, keyColumns []string) (*KeyIndex, []Diagnostic) {
	index := &KeyIndex{
		Rows:       make(map[string]Row, len(table.Rows)),
		Duplicates: make(map[string][]Row),
	}

	for _, row := range table.Rows {
		key := RowKeyOf(row, keyColumns)

		if rows, dup := index.Duplicates[key]; dup {
			index.Duplicates[key] = append(rows, row)
			continue
		}
		if existing, seen := index.Rows[key]; seen {
			// First collision: demote the original occurrence as well.
			delete(index.Rows, key)
			index.Duplicates[key] = []Row{existing, row}
			continue
		}
		index.Rows[key] = row
	}

	if len(index.Duplicates) == 0 {
		return index, nil
	}

	keys := make([]string, 0, len(index.Duplicates))
	for key := range index.Duplicates {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	diagnostics := make([]Diagnostic, 0, len(keys))
	for _, key := range keys {
		diagnostics = append(diagnostics, Diagnostic{
			Kind:   DiagnosticDuplicateKey,
			Table:  table.Name,
			Key:    key,
			Detail: fmt.Sprintf("row key %s appears %d times in %s", DisplayKey(key), len(index.Duplicates[key]), table.Name),
		})
	}

	return index, diagnostics
}

// DisplayKey renders a row key for human-readable messages, replacing the
// internal separator with a printable one.
func DisplayKey(key string) string {
	return strings.ReplaceAll(key, KeySeparator, "|")
}
