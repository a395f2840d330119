package schema

import (
	"context"
	"database/sql"
	"slices"
	"strings"

	"github.com/koustreak/dbmcp/internal/errs"
	"github.com/koustreak/dbmcp/internal/metadata"
)

// DescribeTable returns the columns and keys of table. catalogPattern may be
// "%" for any catalog; table is an exact name. When several tables match, the
// first one the source reports is described. A missing table yields an empty
// description, not an error.
func (i *Introspector) DescribeTable(ctx context.Context, catalogPattern, table string) (*TableDescription, error) {
	matches, err := i.src.Tables(ctx, metadata.TableFilter{Catalog: catalogPattern, Name: table})
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindMetadataFailed, "table lookup", err)
	}
	if len(matches) == 0 {
		return &TableDescription{}, nil
	}
	ref := matches[0].Ref()

	columns, err := i.src.Columns(ctx, ref)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindMetadataFailed, "columns lookup", err)
	}

	pkRows, err := i.src.PrimaryKeys(ctx, ref)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindMetadataFailed, "primary key lookup", err)
	}

	fkRows, err := i.src.ImportedKeys(ctx, ref)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindMetadataFailed, "imported keys lookup", err)
	}

	pk := primaryKey(pkRows)
	desc := &TableDescription{
		Catalog:     ref.Catalog,
		Schema:      ref.Schema,
		Name:        ref.Name,
		Columns:     make([]Column, 0, len(columns)),
		PrimaryKeys: []string{},
		PrimaryKey:  pk,
		ForeignKeys: foreignKeys(fkRows),
	}
	if pk != nil {
		desc.PrimaryKeys = pk.Columns
	}

	for _, c := range columns {
		desc.Columns = append(desc.Columns, Column{
			Name:         c.Name,
			Type:         c.TypeName,
			ColumnSize:   c.Size,
			NumPrecRadix: c.Radix,
			Nullable:     c.Nullable,
			Default:      nullableString(c.Default),
			PrimaryKey:   slices.Contains(desc.PrimaryKeys, c.Name),
		})
	}
	return desc, nil
}

// primaryKey folds key rows into a PrimaryKey, or nil when there are none.
// The first non-empty constraint name wins.
func primaryKey(rows []metadata.PrimaryKeyRow) *PrimaryKey {
	if len(rows) == 0 {
		return nil
	}
	pk := &PrimaryKey{Columns: make([]string, 0, len(rows))}
	for _, r := range rows {
		pk.Columns = append(pk.Columns, r.Column)
		if pk.Name == nil && r.Name.Valid && r.Name.String != "" {
			pk.Name = &r.Name.String
		}
	}
	return pk
}

// foreignKeys groups imported key rows by constraint name. A NULL name and
// an empty name form separate groups.
func foreignKeys(rows []metadata.ImportedKeyRow) []ForeignKey {
	groups := newOrderedGroups[sql.NullString, ForeignKey]()
	for _, r := range rows {
		fk := groups.get(r.Name, func() ForeignKey {
			return ForeignKey{
				Name:            nullableString(r.Name),
				Columns:         []string{},
				ReferredCatalog: r.RefCatalog,
				ReferredSchema:  r.RefSchema,
				ReferredTable:   r.RefTable,
				ReferredColumns: []string{},
				Options:         map[string]string{},
			}
		})
		fk.Columns = append(fk.Columns, r.Column)
		fk.ReferredColumns = append(fk.ReferredColumns, r.RefColumn)
	}

	out := groups.values()
	if out == nil {
		return []ForeignKey{}
	}
	return out
}

// ListCatalogs returns every catalog the source reports.
func (i *Introspector) ListCatalogs(ctx context.Context) ([]string, error) {
	cats, err := i.src.Catalogs(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindMetadataFailed, "catalog lookup", err)
	}
	if cats == nil {
		cats = []string{}
	}
	return cats, nil
}

// ListTables returns the base tables in catalogs matching catalogPattern.
func (i *Introspector) ListTables(ctx context.Context, catalogPattern string) ([]Table, error) {
	return i.FilterTables(ctx, catalogPattern, "")
}

// FilterTables returns the base tables in catalogs matching catalogPattern
// whose names contain substr. Matching is case-sensitive.
func (i *Introspector) FilterTables(ctx context.Context, catalogPattern, substr string) ([]Table, error) {
	rows, err := i.src.Tables(ctx, metadata.TableFilter{
		Catalog: catalogPattern,
		Types:   []string{metadata.TypeTable},
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindMetadataFailed, "table lookup", err)
	}

	tables := make([]Table, 0, len(rows))
	for _, r := range rows {
		if !strings.Contains(r.Name, substr) {
			continue
		}
		tables = append(tables, Table{Catalog: r.Catalog, Schema: r.Schema, Name: r.Name})
	}
	return tables, nil
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
