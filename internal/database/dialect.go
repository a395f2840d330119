package database

import (
	"fmt"
	"strings"
)

// Dialect controls the SQL placeholder style and which metadata queries apply.
type Dialect int

const (
	DialectUnknown Dialect = iota

	// DialectPostgres uses $1, $2, … placeholders.
	DialectPostgres

	// DialectMySQL uses ? placeholders.
	DialectMySQL

	// DialectSQLite uses ? placeholders.
	DialectSQLite

	// DialectSQLServer uses @p1, @p2, … placeholders.
	DialectSQLServer

	// DialectOracle uses :1, :2, … placeholders.
	DialectOracle
)

func (d Dialect) String() string {
	switch d {
	case DialectPostgres:
		return "postgres"
	case DialectMySQL:
		return "mysql"
	case DialectSQLite:
		return "sqlite"
	case DialectSQLServer:
		return "sqlserver"
	case DialectOracle:
		return "oracle"
	default:
		return "unknown"
	}
}

// Placeholder returns the bind parameter marker for the idx-th argument (1-based).
func (d Dialect) Placeholder(idx int) string {
	switch d {
	case DialectPostgres:
		return fmt.Sprintf("$%d", idx)
	case DialectSQLServer:
		return fmt.Sprintf("@p%d", idx)
	case DialectOracle:
		return fmt.Sprintf(":%d", idx)
	default:
		return "?"
	}
}

// Bind rewrites "?" markers in q to the dialect's placeholder style.
// Statements written for this package never contain literal question marks.
func (d Dialect) Bind(q string) string {
	if d.Placeholder(1) == "?" {
		return q
	}
	var sb strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			sb.WriteString(d.Placeholder(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Where builds a parameterised WHERE clause. Values are never interpolated
// into the SQL string, always passed as args.
//
// Usage:
//
//	where, args := NewWhere(DialectPostgres).
//	    Like("table_catalog", "%").
//	    Eq("table_name", "orders").
//	    Build()
type Where struct {
	dialect Dialect
	parts   []string
	args    []any
}

// NewWhere starts an empty clause for dialect d.
func NewWhere(d Dialect) *Where {
	return &Where{dialect: d}
}

// Eq adds "expr = value".
func (w *Where) Eq(expr string, value any) *Where {
	w.args = append(w.args, value)
	w.parts = append(w.parts, fmt.Sprintf("%s = %s", expr, w.dialect.Placeholder(len(w.args))))
	return w
}

// Like adds "expr LIKE pattern". A blank or "%" pattern matches everything
// and adds nothing.
func (w *Where) Like(expr, pattern string) *Where {
	if pattern == "" || pattern == "%" {
		return w
	}
	w.args = append(w.args, pattern)
	w.parts = append(w.parts, fmt.Sprintf("%s LIKE %s", expr, w.dialect.Placeholder(len(w.args))))
	return w
}

// In adds "expr IN (…)". An empty list adds nothing.
func (w *Where) In(expr string, values ...string) *Where {
	if len(values) == 0 {
		return w
	}
	marks := make([]string, len(values))
	for i, v := range values {
		w.args = append(w.args, v)
		marks[i] = w.dialect.Placeholder(len(w.args))
	}
	w.parts = append(w.parts, fmt.Sprintf("%s IN (%s)", expr, strings.Join(marks, ", ")))
	return w
}

// Raw adds a condition without arguments.
func (w *Where) Raw(cond string) *Where {
	w.parts = append(w.parts, cond)
	return w
}

// Build returns " WHERE a AND b" (or "" when empty) and the argument slice.
func (w *Where) Build() (string, []any) {
	if len(w.parts) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(w.parts, " AND "), w.args
}
