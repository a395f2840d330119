package metadata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/dbmcp/internal/database"
)

// fakeCatalog stands in for information_schema: plain tables with the
// JDBC-style columns the dialect query sets expose.
var fakeCatalog = []string{
	`CREATE TABLE md_catalogs (name TEXT)`,
	`INSERT INTO md_catalogs VALUES ('sales'), ('hr')`,

	`CREATE TABLE md_tables (table_cat TEXT, table_schem TEXT, table_name TEXT, table_type TEXT)`,
	`INSERT INTO md_tables VALUES
		('sales', 'public', 'orders', 'TABLE'),
		('hr',    'public', 'orders', 'TABLE'),
		('sales', 'public', 'order_totals', 'VIEW'),
		('sales', 'pg_catalog', 'pg_class', 'SYSTEM TABLE')`,

	`CREATE TABLE md_columns (table_cat TEXT, table_schem TEXT, table_name TEXT, column_name TEXT, type_name TEXT,
		column_size INTEGER, num_prec_radix INTEGER, is_nullable TEXT, column_def TEXT, ordinal_position INTEGER)`,
	`INSERT INTO md_columns VALUES
		('sales', 'public', 'orders', 'total',  'numeric', 12, 10, 'YES', '0', 2),
		('sales', 'public', 'orders', 'id',     'int4',    32,  2, 'NO',  NULL, 1),
		('hr',    'public', 'orders', 'ignored','text',     0, 10, 'Y',   NULL, 1)`,

	`CREATE TABLE md_pks (table_cat TEXT, table_schem TEXT, table_name TEXT, column_name TEXT, pk_name TEXT, key_seq INTEGER)`,
	`INSERT INTO md_pks VALUES ('sales', 'public', 'orders', 'id', 'orders_pkey', 1)`,

	`CREATE TABLE md_fks (table_cat TEXT, table_schem TEXT, table_name TEXT, fk_name TEXT, fkcolumn_name TEXT,
		pktable_cat TEXT, pktable_schem TEXT, pktable_name TEXT, pkcolumn_name TEXT, key_seq INTEGER)`,
	`INSERT INTO md_fks VALUES
		('sales', 'public', 'orders', 'fk_cust', 'cust_region', 'sales', 'public', 'customers', 'region', 2),
		('sales', 'public', 'orders', 'fk_cust', 'cust_id',     'sales', 'public', 'customers', 'id',     1),
		('sales', 'public', 'orders', NULL,      'rep_id',      'sales', 'public', 'reps',      'id',     1)`,
}

var fakeQueries = queries{
	catalogs:     `SELECT name FROM md_catalogs ORDER BY name`,
	tables:       `SELECT * FROM md_tables`,
	columns:      `SELECT * FROM md_columns`,
	primaryKeys:  `SELECT * FROM md_pks`,
	importedKeys: `SELECT * FROM md_fks`,
}

func newFakeCatalog(t *testing.T, q queries) *catalogSource {
	t.Helper()
	conn := openSQLite(t, fakeCatalog...)
	return newCatalogSource(database.DialectSQLite, conn.Querier(), q)
}

func TestCatalogSource_Catalogs(t *testing.T) {
	src := newFakeCatalog(t, fakeQueries)

	cats, err := src.Catalogs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"hr", "sales"}, cats)

	noCatalogs := fakeQueries
	noCatalogs.catalogs = ""
	cats, err = newFakeCatalog(t, noCatalogs).Catalogs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestCatalogSource_Tables(t *testing.T) {
	src := newFakeCatalog(t, fakeQueries)
	ctx := context.Background()

	t.Run("wildcard catalog orders by type then catalog", func(t *testing.T) {
		rows, err := src.Tables(ctx, TableFilter{Catalog: "%", Name: "orders"})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "hr", rows[0].Catalog)
		assert.Equal(t, "sales", rows[1].Catalog)
	})

	t.Run("catalog pattern", func(t *testing.T) {
		rows, err := src.Tables(ctx, TableFilter{Catalog: "sal%", Types: []string{TypeTable, TypeView}})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, TableRow{Catalog: "sales", Schema: "public", Name: "orders", Type: TypeTable}, rows[0])
		assert.Equal(t, "order_totals", rows[1].Name)
	})

	t.Run("system tables by type", func(t *testing.T) {
		rows, err := src.Tables(ctx, TableFilter{Types: []string{TypeSystemTable}})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "pg_class", rows[0].Name)
	})

	t.Run("catalog filter ignored without catalogs", func(t *testing.T) {
		noCatalogs := fakeQueries
		noCatalogs.catalogs = ""
		rows, err := newFakeCatalog(t, noCatalogs).Tables(ctx, TableFilter{Catalog: "nomatch", Name: "orders"})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})
}

func TestCatalogSource_Columns(t *testing.T) {
	src := newFakeCatalog(t, fakeQueries)

	cols, err := src.Columns(context.Background(), TableRef{Catalog: "sales", Schema: "public", Name: "orders"})
	require.NoError(t, err)
	require.Len(t, cols, 2)

	assert.Equal(t, "id", cols[0].Name, "ordinal position order")
	assert.Equal(t, "int4", cols[0].TypeName)
	assert.Equal(t, int64(32), cols[0].Size)
	assert.Equal(t, 2, cols[0].Radix)
	assert.False(t, cols[0].Nullable)
	assert.False(t, cols[0].Default.Valid)

	assert.Equal(t, "total", cols[1].Name)
	assert.True(t, cols[1].Nullable)
	assert.Equal(t, "0", cols[1].Default.String)
}

func TestCatalogSource_Keys(t *testing.T) {
	src := newFakeCatalog(t, fakeQueries)
	ref := TableRef{Catalog: "sales", Schema: "public", Name: "orders"}

	pks, err := src.PrimaryKeys(context.Background(), ref)
	require.NoError(t, err)
	require.Len(t, pks, 1)
	assert.Equal(t, "id", pks[0].Column)
	assert.Equal(t, "orders_pkey", pks[0].Name.String)

	keys, err := src.ImportedKeys(context.Background(), ref)
	require.NoError(t, err)
	require.Len(t, keys, 3)

	assert.Equal(t, "cust_id", keys[0].Column, "ordered by referenced table then key sequence")
	assert.Equal(t, "cust_region", keys[1].Column)
	assert.Equal(t, "fk_cust", keys[1].Name.String)

	assert.Equal(t, "reps", keys[2].RefTable)
	assert.False(t, keys[2].Name.Valid, "NULL constraint name is kept")
}

func TestNew_UnknownDialect(t *testing.T) {
	_, err := New(database.DialectUnknown, nil)
	require.Error(t, err)
}
