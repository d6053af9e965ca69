package engine

import (
	"sort"
	"strings"
)

// Output table column names and the suffixes of the sparse old/new pairs.
const (
	ColumnRowKey         = "Row Key"
	ColumnStatus         = "Status"
	ColumnChangedColumns = "Changed Columns"

	oldSuffix = " (Old)"
	newSuffix = " (New)"
)

// assembleResult turns diff records into the output table. Columns: Row Key,
// Status, Changed Columns, then an "<name> (Old)"/"<name> (New)" pair for
// every comparable column that changed anywhere in the run (sparse:
// populated only on rows where that column changed), then — when unchanged
// columns were requested — one plain column per comparable column that never
// changed. Rows appear in ordinal key order; unchanged rows are dropped
// unless requested.
func assembleResult(records []DiffRecord, comparable []string, includeUnchanged bool) *Table {
	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })

	everChanged := make(map[string]bool)
	for _, rec := range records {
		for _, col := range rec.ChangedColumns {
			everChanged[col] = true
		}
	}

	var changedCols, plainCols []string
	for _, col := range comparable {
		switch {
		case everChanged[col]:
			changedCols = append(changedCols, col)
		case includeUnchanged:
			plainCols = append(plainCols, col)
		}
	}

	columns := []string{ColumnRowKey, ColumnStatus, ColumnChangedColumns}
	for _, col := range changedCols {
		columns = append(columns, col+oldSuffix, col+newSuffix)
	}
	columns = append(columns, plainCols...)

	out := NewTable("comparison", columns)

	for _, rec := range records {
		if rec.Status == StatusUnchanged && !includeUnchanged {
			continue
		}

		row := Row{
			ColumnRowKey:         rec.Key,
			ColumnStatus:         string(rec.Status),
			ColumnChangedColumns: strings.Join(rec.ChangedColumns, ", "),
		}
		for _, col := range changedCols {
			if old, ok := rec.OldValues[col]; ok {
				row[col+oldSuffix] = old
				row[col+newSuffix] = rec.NewValues[col]
			}
		}
		for _, col := range plainCols {
			if val, ok := rec.UnchangedValues[col]; ok {
				row[col] = val
			}
		}
		out.AppendRow(row)
	}

	return out
}
