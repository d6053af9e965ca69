// Package engine compares two in-memory tabular datasets by composite row
// key and classifies every logical row as added, removed, changed, or
// unchanged. The engine is pure and synchronous: it performs no I/O, holds
// no global state, and treats its input tables as read-only, so independent
// comparisons may run concurrently without coordination.
package engine

import (
	"fmt"
	"sort"
)

// MismatchPolicy controls how the Schema Reconciler treats columns present
// in one input table but not the other.
type MismatchPolicy string

const (
	// MismatchFail aborts the comparison on any column-set difference.
	MismatchFail MismatchPolicy = "fail"
	// MismatchWarn records a diagnostic and compares the intersection.
	MismatchWarn MismatchPolicy = "warn"
	// MismatchIgnore compares the intersection without a diagnostic.
	MismatchIgnore MismatchPolicy = "ignore"
)

// Valid reports whether the policy is one of the closed set of values.
func (p MismatchPolicy) Valid() bool {
	switch p {
	case MismatchFail, MismatchWarn, MismatchIgnore:
		return true
	}
	return false
}

// Options configures a single comparison. Options are passed by value into
// Compare and never mutated; there is no ambient configuration.
type Options struct {
	// KeyColumns identify a logical row. Required, order-significant.
	KeyColumns []string

	// ExcludedColumns are removed from both tables before any comparison
	// step. Excluding a column a table does not have is not an error.
	ExcludedColumns []string

	// SchemaMismatch selects the Fail/Warn/Ignore policy. Empty means Warn.
	SchemaMismatch MismatchPolicy

	// IncludeUnchanged keeps unchanged rows in the output table and adds
	// one plain output column per comparable column that never changed.
	IncludeUnchanged bool
}

// Status classifies a logical row in the comparison result.
type Status string

const (
	StatusAdded     Status = "Added"
	StatusRemoved   Status = "Removed"
	StatusChanged   Status = "Changed"
	StatusUnchanged Status = "Unchanged"
)

// Summary counts the rows in each classification across the whole run.
// Unchanged rows are counted even when they are dropped from the output.
type Summary struct {
	Added     int
	Removed   int
	Changed   int
	Unchanged int
}

// DuplicateRow is one occurrence of a duplicated row key, reported so the
// caller can write the ambiguous rows to a side file.
type DuplicateRow struct {
	Table string
	Key   string
	Row   Row
}

// Result is the outcome of a successful comparison.
type Result struct {
	// Output is the assembled result table (see assemble.go for its shape).
	Output *Table

	// Diagnostics lists every anomaly encountered, in stage order: schema
	// mismatches first, then duplicate keys per table in key order.
	Diagnostics []Diagnostic

	// Duplicates holds every row whose key was duplicated within its table,
	// in key order, original row order within a key.
	Duplicates []DuplicateRow

	Summary Summary
}

// Compare runs the full pipeline: schema reconciliation, row indexing,
// matching/classification, cell diffing, and result assembly. It returns an
// error only for fatal precondition or policy failures; recoverable
// anomalies are reported as diagnostics on the result.
func Compare(first, second *Table, opts Options) (*Result, error) {
	if len(opts.KeyColumns) == 0 {
		return nil, ErrNoKeyColumns
	}

	policy := opts.SchemaMismatch
	if policy == "" {
		policy = MismatchWarn
	}
	if !policy.Valid() {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidMismatchPolicy, string(opts.SchemaMismatch))
	}

	comparable, diagnostics, err := reconcileSchema(first, second, opts.KeyColumns, opts.ExcludedColumns, policy)
	if err != nil {
		return nil, err
	}

	firstIndex, firstDiags := buildKeyIndex(first, opts.KeyColumns)
	secondIndex, secondDiags := buildKeyIndex(second, opts.KeyColumns)
	diagnostics = append(diagnostics, firstDiags...)
	diagnostics = append(diagnostics, secondDiags...)

	classes := classifyKeys(firstIndex, secondIndex)

	records := make([]DiffRecord, 0, len(classes.removed)+len(classes.added)+len(classes.common))
	for _, key := range classes.removed {
		records = append(records, DiffRecord{Key: key, Status: StatusRemoved})
	}
	for _, key := range classes.added {
		records = append(records, DiffRecord{Key: key, Status: StatusAdded})
	}
	for _, key := range classes.common {
		records = append(records, diffRows(key, firstIndex.Rows[key], secondIndex.Rows[key], comparable, opts.IncludeUnchanged))
	}

	return &Result{
		Output:      assembleResult(records, comparable, opts.IncludeUnchanged),
		Diagnostics: diagnostics,
		Duplicates:  collectDuplicates(first, firstIndex, second, secondIndex),
		Summary:     summarize(records),
	}, nil
}

// collectDuplicates flattens the duplicate groups of both indexes, first
// table before second, keys in ordinal order, rows in input order.
func collectDuplicates(first *Table, firstIndex *KeyIndex, second *Table, secondIndex *KeyIndex) []DuplicateRow {
	var out []DuplicateRow
	for _, side := range []struct {
		table *Table
		index *KeyIndex
	}{{first, firstIndex}, {second, secondIndex}} {
		keys := make([]string, 0, len(side.index.Duplicates))
		for key := range side.index.Duplicates {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for _, row := range side.index.Duplicates[key] {
				out = append(out, DuplicateRow{Table: side.table.Name, Key: key, Row: row})
			}
		}
	}
	return out
}

func summarize(records []DiffRecord) Summary {
	var s Summary
	for _, rec := range records {
		switch rec.Status {
		case StatusAdded:
			s.Added++
		case StatusRemoved:
			s.Removed++
		case StatusChanged:
			s.Changed++
		case StatusUnchanged:
			s.Unchanged++
		}
	}
	return s
}
