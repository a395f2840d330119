package database

import (
	"context"
	"database/sql"
)

// Querier is the read contract metadata lookups run against.
// *sql.DB and *sql.Conn both satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Rows is an abstraction over a streamed result set.
// Callers must always call Close() when done, even on error.
type Rows interface {
	// Columns returns the column names of the result set, in result order.
	Columns() []string

	// Next advances to the next row.
	// Returns false when no more rows exist or on error.
	Next() bool

	// Values returns the current row, one entry per column. NULL is nil.
	Values() ([]any, error)

	// Err returns any error encountered during iteration.
	Err() error

	// Close releases resources held by the result set.
	Close() error
}
