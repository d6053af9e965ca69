package engine

import (
	"fmt"
	"sort"
	"strings"
)

// reconcileSchema aligns the column sets of the two tables: it drops
// excluded columns, verifies the key columns exist on both sides (fatal if
// not, regardless of policy), applies the mismatch policy to the symmetric
// difference, and returns the comparable column set — the intersection of
// the remaining columns in first-table order, minus the key columns.
func reconcileSchema(first, second *Table, keyColumns, excludedColumns []string, policy MismatchPolicy) ([]string, []Diagnostic, error) {
	firstCols := withoutColumns(first.Columns, excludedColumns)
	secondCols := withoutColumns(second.Columns, excludedColumns)

	// Missing key columns make row identity undefined, so this check is not
	// subject to the mismatch policy.
	for _, side := range []struct {
		name    string
		columns []string
	}{{first.Name, firstCols}, {second.Name, secondCols}} {
		for _, key := range keyColumns {
			if !containsColumn(side.columns, key) {
				return nil, nil, fmt.Errorf("%w: %q not found in %s", ErrKeyColumnMissing, key, side.name)
			}
		}
	}

	onlyInFirst := columnDifference(firstCols, secondCols)
	onlyInSecond := columnDifference(secondCols, firstCols)

	var diagnostics []Diagnostic
	if len(onlyInFirst) > 0 || len(onlyInSecond) > 0 {
		switch policy {
		case MismatchFail:
			return nil, nil, fmt.Errorf("%w: %s", ErrSchemaMismatch,
				mismatchDetail(first.Name, second.Name, onlyInFirst, onlyInSecond))
		case MismatchWarn:
			if len(onlyInFirst) > 0 {
				diagnostics = append(diagnostics, Diagnostic{
					Kind:    DiagnosticSchemaMismatch,
					Table:   first.Name,
					Columns: onlyInFirst,
					Detail:  fmt.Sprintf("columns only in %s: %s", first.Name, strings.Join(onlyInFirst, ", ")),
				})
			}
			if len(onlyInSecond) > 0 {
				diagnostics = append(diagnostics, Diagnostic{
					Kind:    DiagnosticSchemaMismatch,
					Table:   second.Name,
					Columns: onlyInSecond,
					Detail:  fmt.Sprintf("columns only in %s: %s", second.Name, strings.Join(onlyInSecond, ", ")),
				})
			}
		case MismatchIgnore:
			// Intersection-based comparison, no diagnostic.
		}
	}

	comparable := make([]string, 0, len(firstCols))
	for _, col := range firstCols {
		if containsColumn(keyColumns, col) {
			continue
		}
		if containsColumn(secondCols, col) {
			comparable = append(comparable, col)
		}
	}

	return comparable, diagnostics, nil
}

// withoutColumns returns columns minus the excluded set, preserving order.
func withoutColumns(columns, excluded []string) []string {
	if len(excluded) == 0 {
		return columns
	}
	out := make([]string, 0, len(columns))
	for _, col := range columns {
		if !containsColumn(excluded, col) {
			out = append(out, col)
		}
	}
	return out
}

// columnDifference returns the columns of a that are not in b, sorted.
func columnDifference(a, b []string) []string {
	var out []string
	for _, col := range a {
		if !containsColumn(b, col) {
			out = append(out, col)
		}
	}
	sort.Strings(out)
	return out
}

func containsColumn(columns []string, name string) bool {
	for _, col := range columns {
		if col == name {
			return true
		}
	}
	return false
}

func mismatchDetail(firstName, secondName string, onlyInFirst, onlyInSecond []string) string {
	var parts []string
	if len(onlyInFirst) > 0 {
		parts = append(parts, fmt.Sprintf("columns only in %s: %s", firstName, strings.Join(onlyInFirst, ", ")))
	}
	if len(onlyInSecond) > 0 {
		parts = append(parts, fmt.Sprintf("columns only in %s: %s", secondName, strings.Join(onlyInSecond, ", ")))
	}
	return strings.Join(parts, "; ")
}
