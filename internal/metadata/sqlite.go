package metadata

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/koustreak/dbmcp/internal/database"
)

var (
	// "VARCHAR(20)", "DECIMAL(10, 2)", "INTEGER"
	declaredType = regexp.MustCompile(`^\s*([^(]*?)\s*(?:\(\s*(\d+)[^)]*\))?\s*$`)

	// CONSTRAINT "pk_orders" PRIMARY KEY
	namedPrimaryKey = regexp.MustCompile(`(?is)CONSTRAINT\s+["'` + "`" + `\[]?(\w+)["'` + "`" + `\]]?\s+PRIMARY\s+KEY`)
)

// sqliteSource reads SQLite's pragmas. Each attached database is a catalog;
// there is no schema level. The connection is single, so every statement's
// rows are drained before the next one is issued.
type sqliteSource struct {
	db database.Querier
}

func newSQLiteSource(db database.Querier) *sqliteSource {
	return &sqliteSource{db: db}
}

func (s *sqliteSource) Catalogs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM pragma_database_list ORDER BY seq`)
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

func (s *sqliteSource) Tables(ctx context.Context, f TableFilter) ([]TableRow, error) {
	if !likeMatcher(f.Schema)("") {
		return nil, nil
	}

	catalogs, err := s.Catalogs(ctx)
	if err != nil {
		return nil, err
	}

	matchCatalog := likeMatcher(f.Catalog)
	var out []TableRow
	for _, cat := range catalogs {
		if !matchCatalog(cat) {
			continue
		}

		query := `SELECT name, type FROM ` + quoteIdent(cat) + `.sqlite_master WHERE type IN ('table', 'view')`
		rows, err := s.db.QueryContext(ctx, query)
		if err != nil {
			return nil, lookupError(err, "tables query failed")
		}
		tables, err := collect(rows, func(r *sql.Rows) (TableRow, error) {
			var t TableRow
			var kind string
			err := r.Scan(&t.Name, &kind)
			t.Catalog = cat
			t.Type = sqliteTableType(t.Name, kind)
			return t, err
		})
		if err != nil {
			return nil, lookupError(err, "failed to read tables")
		}

		for _, t := range tables {
			if f.Name != "" && t.Name != f.Name {
				continue
			}
			if len(f.Types) > 0 && !slices.Contains(f.Types, t.Type) {
				continue
			}
			out = append(out, t)
		}
	}

	slices.SortStableFunc(out, func(a, b TableRow) int {
		return cmp.Or(
			cmp.Compare(a.Type, b.Type),
			cmp.Compare(a.Catalog, b.Catalog),
			cmp.Compare(a.Name, b.Name),
		)
	})
	return out, nil
}

func (s *sqliteSource) Columns(ctx context.Context, t TableRef) ([]ColumnRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, type, "notnull", dflt_value FROM pragma_table_info(?, ?) ORDER BY cid`,
		t.Name, sqliteCatalog(t))
	if err != nil {
		return nil, lookupError(err, "columns query failed")
	}
	out, err := collect(rows, func(r *sql.Rows) (ColumnRow, error) {
		var c ColumnRow
		var declared string
		var notNull int
		err := r.Scan(&c.Name, &declared, &notNull, &c.Default)
		c.TypeName, c.Size = splitDeclaredType(declared)
		c.Radix = 10
		c.Nullable = notNull == 0
		return c, err
	})
	if err != nil {
		return nil, lookupError(err, "failed to read columns")
	}
	return out, nil
}

func (s *sqliteSource) PrimaryKeys(ctx context.Context, t TableRef) ([]PrimaryKeyRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, pk FROM pragma_table_info(?, ?) WHERE pk > 0 ORDER BY pk`,
		t.Name, sqliteCatalog(t))
	if err != nil {
		return nil, lookupError(err, "primary keys query failed")
	}
	out, err := collect(rows, func(r *sql.Rows) (PrimaryKeyRow, error) {
		var pk PrimaryKeyRow
		err := r.Scan(&pk.Column, &pk.Seq)
		return pk, err
	})
	if err != nil {
		return nil, lookupError(err, "failed to read primary keys")
	}
	if len(out) == 0 {
		return out, nil
	}

	// SQLite keeps constraint names only in the CREATE statement.
	var ddl sql.NullString
	err = s.db.QueryRowContext(ctx,
		`SELECT sql FROM `+quoteIdent(sqliteCatalog(t))+`.sqlite_master WHERE type = 'table' AND name = ?`,
		t.Name).Scan(&ddl)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, lookupError(err, "table definition query failed")
	}
	if m := namedPrimaryKey.FindStringSubmatch(ddl.String); m != nil {
		for i := range out {
			out[i].Name = sql.NullString{String: m[1], Valid: true}
		}
	}
	return out, nil
}

func (s *sqliteSource) ImportedKeys(ctx context.Context, t TableRef) ([]ImportedKeyRow, error) {
	catalog := sqliteCatalog(t)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, seq, "table", "from", "to" FROM pragma_foreign_key_list(?, ?) ORDER BY id, seq`,
		t.Name, catalog)
	if err != nil {
		return nil, lookupError(err, "imported keys query failed")
	}

	type fkRow struct {
		id, seq int
		to      sql.NullString
		key     ImportedKeyRow
	}
	raw, err := collect(rows, func(r *sql.Rows) (fkRow, error) {
		var fk fkRow
		err := r.Scan(&fk.id, &fk.seq, &fk.key.RefTable, &fk.key.Column, &fk.to)
		return fk, err
	})
	if err != nil {
		return nil, lookupError(err, "failed to read imported keys")
	}

	// SQLite does not name foreign keys; number them per table.
	parentKeys := make(map[string][]PrimaryKeyRow)
	out := make([]ImportedKeyRow, 0, len(raw))
	for _, fk := range raw {
		k := fk.key
		k.Name = sql.NullString{String: fmt.Sprintf("%s_fk%d", t.Name, fk.id), Valid: true}
		k.RefCatalog = catalog
		k.Seq = fk.seq + 1
		k.RefColumn = fk.to.String

		// REFERENCES parent without a column list targets the parent's primary key.
		if !fk.to.Valid || fk.to.String == "" {
			pks, ok := parentKeys[k.RefTable]
			if !ok {
				pks, err = s.PrimaryKeys(ctx, TableRef{Catalog: catalog, Name: k.RefTable})
				if err != nil {
					return nil, err
				}
				parentKeys[k.RefTable] = pks
			}
			if fk.seq < len(pks) {
				k.RefColumn = pks[fk.seq].Column
			}
		}
		out = append(out, k)
	}
	return out, nil
}

func sqliteCatalog(t TableRef) string {
	if t.Catalog == "" {
		return "main"
	}
	return t.Catalog
}

func sqliteTableType(name, kind string) string {
	switch {
	case strings.HasPrefix(name, "sqlite_"):
		return TypeSystemTable
	case kind == "view":
		return TypeView
	default:
		return TypeTable
	}
}

// splitDeclaredType separates "VARCHAR(20)" into its name and first size
// argument. Types without a size report 0.
func splitDeclaredType(declared string) (string, int64) {
	m := declaredType.FindStringSubmatch(declared)
	if m == nil {
		return strings.TrimSpace(declared), 0
	}
	size, _ := strconv.ParseInt(m[2], 10, 64)
	return m[1], size
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
