package engine

// Row maps column names to cell values. Cell values are always text; an
// absent entry is distinct from an empty string.
type Row map[string]string

// Table is an in-memory tabular dataset: an ordered list of column names
// plus an ordered list of rows. The engine treats tables as read-only.
type Table struct {
	// Name labels the table in diagnostics (usually the input path).
	Name    string
	Columns []string
	Rows    []Row
}

// NewTable creates a table with the given columns and no rows.
func NewTable(name string, columns []string) *Table {
	return &Table{
		Name:    name,
		Columns: columns,
		Rows:    []Row{},
	}
}

// AppendRow adds a row to the table.
func (t *Table) AppendRow(row Row) {
	t.Rows = append(t.Rows, row)
}

// HasColumn reports whether the table declares the given column.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}
