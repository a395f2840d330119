package schema

import "github.com/goccy/go-json"

// Column describes a single column in a table.
type Column struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	ColumnSize   int64   `json:"column_size"`
	NumPrecRadix int     `json:"num_prec_radix"`
	Nullable     bool    `json:"nullable"`
	Default      *string `json:"default"`     // nil if no default
	PrimaryKey   bool    `json:"primary_key"` // derived from the primary key's columns
}

// PrimaryKey is a table's primary key. Columns are in key order.
type PrimaryKey struct {
	Name    *string  `json:"name"` // nil when the database reports no constraint name
	Columns []string `json:"constrained_columns"`
}

// ForeignKey is one foreign key constraint. Columns and ReferredColumns are
// parallel: Columns[i] references ReferredColumns[i].
type ForeignKey struct {
	Name            *string           `json:"name"`
	Columns         []string          `json:"constrained_columns"`
	ReferredCatalog string            `json:"referred_cat"`
	ReferredSchema  string            `json:"referred_schem"`
	ReferredTable   string            `json:"referred_table"`
	ReferredColumns []string          `json:"referred_columns"`
	Options         map[string]string `json:"options"`
}

// TableDescription is a table with its columns and keys. The zero value
// describes a table that does not exist.
type TableDescription struct {
	Catalog     string       `json:"TABLE_CAT"`
	Schema      string       `json:"TABLE_SCHEM"`
	Name        string       `json:"TABLE_NAME"`
	Columns     []Column     `json:"columns"`
	PrimaryKeys []string     `json:"primary_keys"`
	PrimaryKey  *PrimaryKey  `json:"primary_key_constraint,omitempty"`
	ForeignKeys []ForeignKey `json:"foreign_keys"`
}

// Exists reports whether the description names a table.
func (d *TableDescription) Exists() bool {
	return d.Name != ""
}

// MarshalJSON renders a missing table as {}.
func (d TableDescription) MarshalJSON() ([]byte, error) {
	if !d.Exists() {
		return []byte("{}"), nil
	}
	type plain TableDescription
	return json.MarshalNoEscape(plain(d))
}

// Table is one entry of a table listing.
type Table struct {
	Catalog string `json:"TABLE_CAT"`
	Schema  string `json:"TABLE_SCHEM"`
	Name    string `json:"TABLE_NAME"`
}
