package metadata

import (
	"context"
	"database/sql"

	"github.com/koustreak/dbmcp/internal/database"
)

// queries is one dialect's set of metadata statements. Each lookup is a
// derived table exposing JDBC-style column names; catalogSource filters and
// orders them uniformly:
//
//	tables:       table_cat, table_schem, table_name, table_type
//	columns:      table_cat, table_schem, table_name, column_name, type_name,
//	              column_size, num_prec_radix, is_nullable, column_def, ordinal_position
//	primaryKeys:  table_cat, table_schem, table_name, column_name, pk_name, key_seq
//	importedKeys: table_cat, table_schem, table_name, fk_name, fkcolumn_name,
//	              pktable_cat, pktable_schem, pktable_name, pkcolumn_name, key_seq
type queries struct {
	// catalogs lists catalog names; empty when the database has none.
	catalogs string

	tables       string
	columns      string
	primaryKeys  string
	importedKeys string
}

// catalogSource serves Source from a dialect's query set.
type catalogSource struct {
	dialect database.Dialect
	db      database.Querier
	q       queries
}

func newCatalogSource(d database.Dialect, db database.Querier, q queries) *catalogSource {
	return &catalogSource{dialect: d, db: db, q: q}
}

func (s *catalogSource) Catalogs(ctx context.Context) ([]string, error) {
	if s.q.catalogs == "" {
		return []string{}, nil
	}

	rows, err := s.db.QueryContext(ctx, s.q.catalogs)
	if err != nil {
		return nil, lookupError(err, "catalogs query failed")
	}
	out, err := collect(rows, func(r *sql.Rows) (string, error) {
		var name string
		err := r.Scan(&name)
		return name, err
	})
	if err != nil {
		return nil, lookupError(err, "failed to read catalogs")
	}
	return out, nil
}

func (s *catalogSource) Tables(ctx context.Context, f TableFilter) ([]TableRow, error) {
	w := database.NewWhere(s.dialect)
	if s.q.catalogs != "" {
		w.Like("table_cat", f.Catalog)
	}
	w.Like("table_schem", f.Schema)
	if f.Name != "" {
		w.Eq("table_name", f.Name)
	}
	w.In("table_type", f.Types...)
	where, args := w.Build()

	query := "SELECT table_cat, table_schem, table_name, table_type FROM (" + s.q.tables + ") t" +
		where + " ORDER BY table_type, table_cat, table_schem, table_name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, lookupError(err, "tables query failed")
	}
	out, err := collect(rows, func(r *sql.Rows) (TableRow, error) {
		var cat, schem sql.NullString
		var t TableRow
		err := r.Scan(&cat, &schem, &t.Name, &t.Type)
		t.Catalog, t.Schema = cat.String, schem.String
		return t, err
	})
	if err != nil {
		return nil, lookupError(err, "failed to read tables")
	}
	return out, nil
}

func (s *catalogSource) Columns(ctx context.Context, t TableRef) ([]ColumnRow, error) {
	where, args := s.refWhere(t)
	query := "SELECT column_name, type_name, column_size, num_prec_radix, is_nullable, column_def FROM (" +
		s.q.columns + ") t" + where + " ORDER BY ordinal_position"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, lookupError(err, "columns query failed")
	}
	out, err := collect(rows, func(r *sql.Rows) (ColumnRow, error) {
		var c ColumnRow
		var size, radix sql.NullInt64
		var nullable string
		err := r.Scan(&c.Name, &c.TypeName, &size, &radix, &nullable, &c.Default)
		c.Size = size.Int64
		c.Radix = int(radix.Int64)
		c.Nullable = nullable == "YES" || nullable == "Y"
		return c, err
	})
	if err != nil {
		return nil, lookupError(err, "failed to read columns")
	}
	return out, nil
}

func (s *catalogSource) PrimaryKeys(ctx context.Context, t TableRef) ([]PrimaryKeyRow, error) {
	where, args := s.refWhere(t)
	query := "SELECT column_name, pk_name, key_seq FROM (" + s.q.primaryKeys + ") t" + where + " ORDER BY key_seq"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, lookupError(err, "primary keys query failed")
	}
	out, err := collect(rows, func(r *sql.Rows) (PrimaryKeyRow, error) {
		var pk PrimaryKeyRow
		var seq sql.NullInt64
		err := r.Scan(&pk.Column, &pk.Name, &seq)
		pk.Seq = int(seq.Int64)
		return pk, err
	})
	if err != nil {
		return nil, lookupError(err, "failed to read primary keys")
	}
	return out, nil
}

func (s *catalogSource) ImportedKeys(ctx context.Context, t TableRef) ([]ImportedKeyRow, error) {
	where, args := s.refWhere(t)
	query := "SELECT fk_name, fkcolumn_name, pktable_cat, pktable_schem, pktable_name, pkcolumn_name, key_seq FROM (" +
		s.q.importedKeys + ") t" + where + " ORDER BY pktable_cat, pktable_schem, pktable_name, key_seq"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, lookupError(err, "imported keys query failed")
	}
	out, err := collect(rows, func(r *sql.Rows) (ImportedKeyRow, error) {
		var k ImportedKeyRow
		var cat, schem sql.NullString
		var seq sql.NullInt64
		err := r.Scan(&k.Name, &k.Column, &cat, &schem, &k.RefTable, &k.RefColumn, &seq)
		k.RefCatalog, k.RefSchema = cat.String, schem.String
		k.Seq = int(seq.Int64)
		return k, err
	})
	if err != nil {
		return nil, lookupError(err, "failed to read imported keys")
	}
	return out, nil
}

// refWhere pins a lookup to one table. Empty identity parts are left
// unconstrained: Oracle has no catalogs and MySQL has no schemas.
func (s *catalogSource) refWhere(t TableRef) (string, []any) {
	w := database.NewWhere(s.dialect)
	if t.Catalog != "" {
		w.Eq("table_cat", t.Catalog)
	}
	if t.Schema != "" {
		w.Eq("table_schem", t.Schema)
	}
	w.Eq("table_name", t.Name)
	return w.Build()
}
