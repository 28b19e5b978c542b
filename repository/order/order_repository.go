package order

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/softglass/calculator-backend/model"
	"github.com/softglass/calculator-backend/repository"
)

type SQL struct {
	conn *sqlx.DB
}

type OrderRepository interface {
	Insert(ctx context.Context, req *model.InsertOrderItem) (*model.InsertedOrder, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.OrderEntity, error)
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

const (
	insertOrderQuery    = `INSERT INTO orders (user_id, order_data, total_price, status) VALUES (?, ?, ?, ?)`
	returningSuffix     = ` RETURNING id, created_at`
	getCreatedAtQuery   = `SELECT created_at FROM orders WHERE id = ?`
	listOrdersByUserQry = `SELECT id, user_id, order_data, total_price, status, created_at FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC`
)

// Insert stores a single order row. The row id and created_at are assigned
// by the database; MySQL has no RETURNING, so created_at is read back by id.
func (r *SQL) Insert(ctx context.Context, req *model.InsertOrderItem) (*model.InsertedOrder, error) {
	args := []any{req.UserID, req.OrderData, req.TotalPrice, req.Status}

	if repository.SupportsReturning(r.conn) {
		inserted := &model.InsertedOrder{}
		if err := r.conn.GetContext(ctx, inserted, r.conn.Rebind(insertOrderQuery+returningSuffix), args...); err != nil {
			return nil, err
		}
		return inserted, nil
	}

	id, err := repository.InsertReturningID(ctx, r.conn, insertOrderQuery, args...)
	if err != nil {
		return nil, err
	}

	inserted := &model.InsertedOrder{ID: id}
	if err := r.conn.GetContext(ctx, &inserted.CreatedAt, r.conn.Rebind(getCreatedAtQuery), id); err != nil {
		return nil, err
	}
	return inserted, nil
}

// ListByUser returns the user's orders, newest first. The result is never nil.
func (r *SQL) ListByUser(ctx context.Context, userID uint64) ([]model.OrderEntity, error) {
	orders := make([]model.OrderEntity, 0)
	if err := r.conn.SelectContext(ctx, &orders, r.conn.Rebind(listOrdersByUserQry), userID); err != nil {
		return nil, err
	}
	return orders, nil
}
