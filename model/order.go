package model

import (
	"time"

	"github.com/softglass/calculator-backend/constant"
)

// OrderRequest is the body of POST /orders.
type OrderRequest struct {
	OrderData  JSONData `json:"order_data"`
	TotalPrice float64  `json:"total_price"`
}

// OrderResponse is returned after an order was created.
type OrderResponse struct {
	OrderID   uint64               `json:"order_id"`
	CreatedAt time.Time            `json:"created_at"`
	Status    constant.OrderStatus `json:"status"`
}

type InsertOrderItem struct {
	// UserID is nil for anonymous orders placed through the submission form.
	UserID     *uint64
	OrderData  JSONData
	TotalPrice float64
	Status     constant.OrderStatus
}

type InsertedOrder struct {
	ID        uint64    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

// OrderEntity represents the orders table entity
type OrderEntity struct {
	ID         uint64               `db:"id" json:"id"`
	UserID     *uint64              `db:"user_id" json:"-"`
	OrderData  JSONData             `db:"order_data" json:"order_data"`
	TotalPrice float64              `db:"total_price" json:"total_price"`
	Status     constant.OrderStatus `db:"status" json:"status"`
	CreatedAt  time.Time            `db:"created_at" json:"created_at"`
}

type OrderListResponse struct {
	Orders []OrderEntity `json:"orders"`
}
