package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/softglass/calculator-backend/model"
	"github.com/softglass/calculator-backend/repository"
)

type SQL struct {
	conn *sqlx.DB
}

type UserRepository interface {
	CreateTx(ctx context.Context, tx *sqlx.Tx, req *model.UserEntity) (*model.UserEntity, error)
	GetTx(ctx context.Context, tx *sqlx.Tx, filter *model.UserFilter) (*model.UserEntity, error)
	Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error)
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	insertUserQuery = `INSERT INTO users (email, password_hash, full_name, phone) VALUES (?, ?, ?, ?)`
	getUserBase     = `SELECT id, email, full_name, phone, password_hash, created_at FROM users WHERE 1 = 1`
)

func (s *SQL) CreateTx(ctx context.Context, tx *sqlx.Tx, data *model.UserEntity) (*model.UserEntity, error) {
	id, err := repository.InsertReturningID(ctx, tx, insertUserQuery, data.Email, data.PasswordHash, data.FullName, data.Phone)
	if err != nil {
		return nil, err
	}

	data.ID = id
	return data, nil
}

func (s *SQL) GetTx(ctx context.Context, tx *sqlx.Tx, filter *model.UserFilter) (*model.UserEntity, error) {
	return get(ctx, tx, filter)
}

func (s *SQL) Get(ctx context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	return get(ctx, s.conn, filter)
}

// get returns (nil, nil) when no row matches.
func get(ctx context.Context, q sqlx.ExtContext, filter *model.UserFilter) (*model.UserEntity, error) {
	query := getUserBase
	args := make([]any, 0, 2)

	if filter.ID != 0 {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}
	if len(args) == 0 {
		return nil, errors.New("user filter is empty")
	}

	var entity model.UserEntity
	if err := sqlx.GetContext(ctx, q, &entity, q.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}
