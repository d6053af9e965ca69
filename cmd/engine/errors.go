package engine

import "errors"

// Static errors for fatal precondition and policy failures. These abort the
// comparison before any result table is produced.
var (
	ErrNoKeyColumns          = errors.New("at least one key column is required")
	ErrKeyColumnMissing      = errors.New("key column missing from table")
	ErrSchemaMismatch        = errors.New("schema mismatch between tables")
	ErrInvalidMismatchPolicy = errors.New("schema mismatch behavior must be one of: fail, warn, ignore")
)
