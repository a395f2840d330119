package database

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/sijms/go-ora/v2/network"

	"github.com/koustreak/dbmcp/internal/errs"
)

// mapError translates native driver errors into *errs.Error. Errors the
// drivers do not classify keep the caller's kind, so a failed metadata
// lookup stays metadata_failed and a failed query stays query_failed.
func mapError(err error, kind errs.ErrKind, msg string) error {
	if err == nil {
		return nil
	}

	var e *errs.Error
	if errors.As(err, &e) {
		return err
	}

	// Context cancellation / deadline exceeded
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	return errs.Wrap(classify(err, kind), msg, err)
}

// MapError is mapError for callers outside the package that run their own
// statements through a Querier (the metadata sources).
func MapError(err error, kind errs.ErrKind, msg string) error {
	return mapError(err, kind, msg)
}

func classify(err error, fallback errs.ErrKind) errs.ErrKind {
	// pgx (pgx:// URLs)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifySQLState(pgErr.Code, fallback)
	}

	// lib/pq (postgres:// URLs)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifySQLState(string(pqErr.Code), fallback)
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return classifyMySQLCode(mysqlErr.Number, fallback)
	}

	var msErr mssql.Error
	if errors.As(err, &msErr) {
		return classifySQLServerNumber(msErr.Number, fallback)
	}

	var oraErr *network.OracleError
	if errors.As(err, &oraErr) {
		return classifyOracleCode(oraErr.ErrCode, fallback)
	}

	return fallback
}

// classifySQLState maps PostgreSQL SQLSTATE codes to ErrKind.
// Full list: https://www.postgresql.org/docs/current/errcodes-appendix.html
func classifySQLState(code string, fallback errs.ErrKind) errs.ErrKind {
	switch {
	case code == "42501":
		return errs.ErrKindPermissionDenied
	case code == "57014":
		return errs.ErrKindTimeout
	case strings.HasPrefix(code, "08"), strings.HasPrefix(code, "28"), code == "3D000":
		// connection exception, invalid authorization, unknown database
		return errs.ErrKindConnectionFailed
	default:
		return fallback
	}
}

// classifyMySQLCode maps MySQL error numbers to ErrKind.
// Full list: https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
func classifyMySQLCode(code uint16, fallback errs.ErrKind) errs.ErrKind {
	switch code {
	case 1045, 1049, 1040, 1203:
		return errs.ErrKindConnectionFailed
	case 1044, 1142, 1143:
		return errs.ErrKindPermissionDenied
	default:
		return fallback
	}
}

func classifySQLServerNumber(number int32, fallback errs.ErrKind) errs.ErrKind {
	switch number {
	case 18456, 4060:
		// login failed, cannot open database
		return errs.ErrKindConnectionFailed
	case 229, 230, 262:
		return errs.ErrKindPermissionDenied
	default:
		return fallback
	}
}

func classifyOracleCode(code int, fallback errs.ErrKind) errs.ErrKind {
	switch code {
	case 1017, 12514, 12541:
		// invalid credentials, unknown service, no listener
		return errs.ErrKindConnectionFailed
	case 1031:
		return errs.ErrKindPermissionDenied
	case 1013:
		return errs.ErrKindTimeout
	default:
		return fallback
	}
}
