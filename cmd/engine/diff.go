package engine

// DiffRecord describes one logical row of the comparison result. Records
// are created by the matcher for added/removed keys (no cell work needed)
// and by the cell differ for common keys, then consumed by the assembler.
type DiffRecord struct {
	Key            string
	Status         Status
	ChangedColumns []string

	// OldValues/NewValues hold both sides of every changed column. Empty
	// for Added and Removed records, where only one side exists.
	OldValues map[string]string
	NewValues map[string]string

	// UnchangedValues holds the shared value of every unchanged comparable
	// column, populated only when the caller asked for unchanged columns.
	UnchangedValues map[string]string
}

// diffRows compares one common key's two rows cell by cell across the
// comparable column set, in order. Cells are compared by exact text
// equality; a cell absent from one row is distinct from any string value,
// including the empty string.
func diffRows(key string, oldRow, newRow Row, comparable []string, includeUnchanged bool) DiffRecord {
	rec := DiffRecord{Key: key, Status: StatusUnchanged}

	for _, col := range comparable {
		oldVal, oldPresent := oldRow[col]
		newVal, newPresent := newRow[col]

		if oldVal != newVal || oldPresent != newPresent {
			if rec.OldValues == nil {
				rec.OldValues = make(map[string]string)
				rec.NewValues = make(map[string]string)
			}
			rec.ChangedColumns = append(rec.ChangedColumns, col)
			rec.OldValues[col] = oldVal
			rec.NewValues[col] = newVal
			continue
		}

		if includeUnchanged {
			if rec.UnchangedValues == nil {
				rec.UnchangedValues = make(map[string]string)
			}
			rec.UnchangedValues[col] = oldVal
		}
	}

	if len(rec.ChangedColumns) > 0 {
		rec.Status = StatusChanged
	}
	return rec
}
