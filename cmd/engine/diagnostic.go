package engine

import "fmt"

// DiagnosticKind identifies the anomaly a diagnostic reports.
type DiagnosticKind string

const (
	// DiagnosticDuplicateKey reports a row key that occurs more than once
	// within a single input table.
	DiagnosticDuplicateKey DiagnosticKind = "duplicate-key"

	// DiagnosticSchemaMismatch reports columns present in one input table
	// but not the other (after exclusions).
	DiagnosticSchemaMismatch DiagnosticKind = "schema-mismatch"
)

// Diagnostic is a non-fatal, structured report of an anomaly encountered
// during comparison. Diagnostics are accumulated across stages and returned
// alongside the result table; they are never silently dropped.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Table   string         `json:"table,omitempty"`
	Key     string         `json:"key,omitempty"`
	Columns []string       `json:"columns,omitempty"`
	Detail  string         `json:"detail"`
}

// String returns the human-readable form of the diagnostic.
func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s", d.Kind, d.Detail)
}
