// Package metadata reads the database's self-description: catalogs, tables,
// columns, primary keys and imported (outgoing foreign) keys.
//
// Every dialect reports rows the way JDBC's DatabaseMetaData does, so callers
// never branch on the database they are talking to.
package metadata

import (
	"context"
	"database/sql"

	"github.com/koustreak/dbmcp/internal/database"
	"github.com/koustreak/dbmcp/internal/errs"
)

// Table types as reported in TableRow.Type.
const (
	TypeTable       = "TABLE"
	TypeView        = "VIEW"
	TypeSystemTable = "SYSTEM TABLE"
)

// Source is the metadata lookup contract. Each method returns rows in the
// order the database reports them.
type Source interface {
	// Catalogs lists the catalogs visible to the connection.
	Catalogs(ctx context.Context) ([]string, error)

	// Tables lists tables matching f.
	Tables(ctx context.Context, f TableFilter) ([]TableRow, error)

	// Columns lists the columns of one table in declaration order.
	Columns(ctx context.Context, t TableRef) ([]ColumnRow, error)

	// PrimaryKeys lists the primary-key columns of one table in key order.
	PrimaryKeys(ctx context.Context, t TableRef) ([]PrimaryKeyRow, error)

	// ImportedKeys lists one row per local/referenced column pair of every
	// foreign key declared on the table.
	ImportedKeys(ctx context.Context, t TableRef) ([]ImportedKeyRow, error)
}

// TableFilter selects tables. Catalog and Schema are LIKE patterns where ""
// and "%" match anything; Name is exact and "" matches any name.
type TableFilter struct {
	Catalog string
	Schema  string
	Name    string
	Types   []string
}

// TableRef identifies one table. Empty parts are not constrained.
type TableRef struct {
	Catalog string
	Schema  string
	Name    string
}

// TableRow is one row of a table listing.
type TableRow struct {
	Catalog string
	Schema  string
	Name    string
	Type    string
}

// Ref returns the identity of the listed table.
func (r TableRow) Ref() TableRef {
	return TableRef{Catalog: r.Catalog, Schema: r.Schema, Name: r.Name}
}

// ColumnRow describes one column.
type ColumnRow struct {
	Name     string
	TypeName string
	Size     int64
	Radix    int
	Nullable bool
	Default  sql.NullString
}

// PrimaryKeyRow is one column of a primary key. Name is the constraint name,
// which some databases do not report.
type PrimaryKeyRow struct {
	Column string
	Name   sql.NullString
	Seq    int
}

// ImportedKeyRow is one local/referenced column pair of a foreign key.
// Name stays NULL when the database reports none.
type ImportedKeyRow struct {
	Name       sql.NullString
	Column     string
	RefCatalog string
	RefSchema  string
	RefTable   string
	RefColumn  string
	Seq        int
}

// New returns the Source for dialect d reading through q.
func New(d database.Dialect, q database.Querier) (Source, error) {
	switch d {
	case database.DialectPostgres:
		return newCatalogSource(d, q, postgresQueries), nil
	case database.DialectMySQL:
		return newCatalogSource(d, q, mysqlQueries), nil
	case database.DialectSQLServer:
		return newCatalogSource(d, q, sqlServerQueries), nil
	case database.DialectOracle:
		return newCatalogSource(d, q, oracleQueries), nil
	case database.DialectSQLite:
		return newSQLiteSource(q), nil
	default:
		return nil, errs.New(errs.ErrKindInvalidInput, "no metadata support for dialect "+d.String())
	}
}

// For returns the Source for an open connection.
func For(conn *database.Conn) (Source, error) {
	return New(conn.Dialect(), conn.Querier())
}

// collect drains rows through scan, closing rows on every path.
func collect[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func lookupError(err error, what string) error {
	return database.MapError(err, errs.ErrKindMetadataFailed, what)
}
