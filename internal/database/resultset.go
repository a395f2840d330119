package database

import (
	"context"
	"database/sql"

	"github.com/koustreak/dbmcp/internal/errs"
)

// ResultSet streams the rows of one query. It implements Rows and is
// consumed once; rows are only read as the caller advances.
type ResultSet struct {
	rows    *sql.Rows
	columns []string
	cancel  context.CancelFunc
}

var _ Rows = (*ResultSet)(nil)

func newResultSet(rows *sql.Rows, cancel context.CancelFunc) (*ResultSet, error) {
	columns, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		cancel()
		return nil, mapError(err, errs.ErrKindQueryFailed, "failed to read column names")
	}
	return &ResultSet{rows: rows, columns: columns, cancel: cancel}, nil
}

// Columns returns the column names in result order.
func (r *ResultSet) Columns() []string {
	return r.columns
}

// Next advances to the next row.
func (r *ResultSet) Next() bool {
	return r.rows.Next()
}

// Values scans the current row. Scan targets are *any so the driver can
// write any type; NULL comes back as nil.
func (r *ResultSet) Values() ([]any, error) {
	dest := make([]any, len(r.columns))
	destPtrs := make([]any, len(r.columns))
	for i := range dest {
		destPtrs[i] = &dest[i]
	}

	if err := r.rows.Scan(destPtrs...); err != nil {
		return nil, mapError(err, errs.ErrKindQueryFailed, "failed to scan row")
	}
	return dest, nil
}

// Err returns the error, if any, that ended iteration.
func (r *ResultSet) Err() error {
	if err := r.rows.Err(); err != nil {
		return mapError(err, errs.ErrKindQueryFailed, "error during row iteration")
	}
	return nil
}

// Close releases the rows and the query deadline.
func (r *ResultSet) Close() error {
	err := r.rows.Close()
	r.cancel()
	return err
}
