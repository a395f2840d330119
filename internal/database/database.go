// Package database opens one connection per tool call and runs SQL on it.
//
// A Provider resolves the per-call overrides against the configured defaults,
// turns the URL into a driver + DSN with dburl, and hands back a Conn that the
// caller must Close on every exit path:
//
//	conn, err := provider.Open(ctx, database.Overrides{URL: &url})
//	if err != nil { ... }
//	defer conn.Close()
//
//	rs, err := conn.Query(ctx, "SELECT * FROM orders")
package database

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register "pgx" driver
	_ "github.com/sijms/go-ora/v2"     // register "oracle" driver
	"github.com/xo/dburl"
	_ "modernc.org/sqlite" // register "sqlite" driver

	"github.com/koustreak/dbmcp/internal/errs"
)

// driverSpec is the Go driver registered for a dburl driver name.
type driverSpec struct {
	name    string
	dialect Dialect
}

// drivers maps dburl's driver names to the drivers linked into this binary.
// dburl names SQLite "sqlite3" after mattn's cgo driver; the pure-Go modernc
// driver registers as "sqlite".
var drivers = map[string]driverSpec{
	"postgres":      {name: "postgres", dialect: DialectPostgres},
	"pgx":           {name: "pgx", dialect: DialectPostgres},
	"mysql":         {name: "mysql", dialect: DialectMySQL},
	"sqlite3":       {name: "sqlite", dialect: DialectSQLite},
	"moderncsqlite": {name: "sqlite", dialect: DialectSQLite},
	"sqlserver":     {name: "sqlserver", dialect: DialectSQLServer},
	"oracle":        {name: "oracle", dialect: DialectOracle},
}

// Provider opens connections using the configured defaults.
// It holds no connections itself and is safe for concurrent use.
type Provider struct {
	cfg *Config
}

// NewProvider returns a Provider that falls back to cfg for omitted arguments.
func NewProvider(cfg *Config) *Provider {
	return &Provider{cfg: cfg}
}

// Config returns the defaults the provider resolves against.
func (p *Provider) Config() *Config {
	return p.cfg
}

// Open resolves o, opens a single connection and verifies it with a ping.
func (p *Provider) Open(ctx context.Context, o Overrides) (*Conn, error) {
	target := o.Resolve(p.cfg)
	if strings.TrimSpace(target.URL) == "" {
		return nil, errs.New(errs.ErrKindInvalidInput, "no connection URL configured")
	}

	raw, err := withCredentials(target)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "invalid connection URL", err)
	}

	u, err := dburl.Parse(raw)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "invalid connection URL", err)
	}

	spec, ok := drivers[u.Driver]
	if !ok {
		return nil, errs.New(errs.ErrKindInvalidInput, "unsupported database driver: "+u.Driver)
	}

	db, err := sql.Open(spec.name, u.DSN)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "failed to open connection", err)
	}

	// One tool call, one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx, cancel := withTimeout(ctx, p.cfg.ConnectTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, mapError(err, errs.ErrKindConnectionFailed, "failed to connect")
	}

	return &Conn{
		db:           db,
		dialect:      spec.dialect,
		url:          u.Redacted(),
		queryTimeout: p.cfg.QueryTimeout,
	}, nil
}

// withCredentials folds the user/password overrides into the URL. URLs
// without a host (SQLite files) carry no credentials and are left alone.
func withCredentials(t Target) (string, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(t.URL), "jdbc:")
	if t.User == nil && t.Password == nil {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return raw, nil
	}

	var name, pass string
	var hasPass bool
	if u.User != nil {
		name = u.User.Username()
		pass, hasPass = u.User.Password()
	}
	if t.User != nil {
		name = *t.User
	}
	if t.Password != nil {
		pass, hasPass = *t.Password, true
	}

	if hasPass {
		u.User = url.UserPassword(name, pass)
	} else {
		u.User = url.User(name)
	}
	return u.String(), nil
}

// Conn is one open database connection.
type Conn struct {
	db           *sql.DB
	dialect      Dialect
	url          string
	queryTimeout time.Duration
}

// Dialect reports which SQL dialect the connection speaks.
func (c *Conn) Dialect() Dialect {
	return c.dialect
}

// URL returns the connection URL with the password redacted.
func (c *Conn) URL() string {
	return c.url
}

// Querier exposes the connection for metadata lookups.
func (c *Conn) Querier() Querier {
	return c.db
}

// Query executes arbitrary SQL and streams the result. The query deadline,
// if configured, stays active until the ResultSet is closed.
func (c *Conn) Query(ctx context.Context, query string, args ...any) (*ResultSet, error) {
	qctx, cancel := withTimeout(ctx, c.queryTimeout)

	rows, err := c.db.QueryContext(qctx, query, args...)
	if err != nil {
		cancel()
		return nil, mapError(err, errs.ErrKindQueryFailed, "query failed")
	}
	return newResultSet(rows, cancel)
}

// QueryScalar executes a statement expected to yield a single value and
// returns it as text. NULL becomes "".
func (c *Conn) QueryScalar(ctx context.Context, query string, args ...any) (string, error) {
	qctx, cancel := withTimeout(ctx, c.queryTimeout)
	defer cancel()

	var v sql.NullString
	if err := c.db.QueryRowContext(qctx, query, args...).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", errs.Wrap(errs.ErrKindQueryFailed, "query returned no rows", err)
		}
		return "", mapError(err, errs.ErrKindQueryFailed, "query failed")
	}
	return v.String, nil
}

// Close releases the connection.
func (c *Conn) Close() error {
	return c.db.Close()
}

// withTimeout returns ctx unchanged (with a no-op cancel) when d is not positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
