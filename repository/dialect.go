// Package repository holds helpers shared by the SQL repositories. Queries
// are written with '?' placeholders and rebound for the active driver.
package repository

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

const (
	driverMySQL = "mysql"

	pgUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
)

// InsertReturningID runs an INSERT and returns the generated id. Postgres
// uses RETURNING; MySQL reports it through LastInsertId.
func InsertReturningID(ctx context.Context, db sqlx.ExtContext, query string, args ...any) (uint64, error) {
	if db.DriverName() == driverMySQL {
		res, err := db.ExecContext(ctx, db.Rebind(query), args...)
		if err != nil {
			return 0, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}
		return uint64(id), nil
	}

	var id uint64
	if err := db.QueryRowxContext(ctx, db.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// SupportsReturning reports whether the driver accepts INSERT ... RETURNING.
func SupportsReturning(db sqlx.ExtContext) bool {
	return db.DriverName() != driverMySQL
}

// IsUniqueViolation reports whether err is a unique-constraint violation
// from either supported driver.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	return false
}
