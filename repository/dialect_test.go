package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T, driver string) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, driver), mock
}

func TestInsertReturningID_Postgres(t *testing.T) {
	db, mock := newMock(t, "pgx")
	mock.ExpectQuery(`INSERT INTO things (name) VALUES ($1) RETURNING id`).
		WithArgs("a").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	id, err := InsertReturningID(context.Background(), db, `INSERT INTO things (name) VALUES (?)`, "a")
	require.NoError(t, err)
	assert.Equal(t, uint64(9), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertReturningID_MySQL(t *testing.T) {
	db, mock := newMock(t, "mysql")
	mock.ExpectExec(`INSERT INTO things (name) VALUES (?)`).
		WithArgs("a").
		WillReturnResult(sqlmock.NewResult(12, 1))

	id, err := InsertReturningID(context.Background(), db, `INSERT INTO things (name) VALUES (?)`, "a")
	require.NoError(t, err)
	assert.Equal(t, uint64(12), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsUniqueViolation(&mysql.MySQLError{Number: 1064}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestSupportsReturning(t *testing.T) {
	pg, _ := newMock(t, "pgx")
	my, _ := newMock(t, "mysql")

	assert.True(t, SupportsReturning(pg))
	assert.False(t, SupportsReturning(my))
}
