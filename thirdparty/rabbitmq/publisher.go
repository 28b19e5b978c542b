package rabbitmq

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/softglass/calculator-backend/constant"
)

// OrderCreatedMessage is published after an order row is committed.
type OrderCreatedMessage struct {
	OrderID    uint64               `json:"order_id"`
	UserID     *uint64              `json:"user_id,omitempty"`
	TotalPrice float64              `json:"total_price"`
	Source     constant.OrderSource `json:"source"`
	CreatedAt  time.Time            `json:"created_at"`
}

// EventPublisher is implemented by Publisher. Callers treat publishing as
// best-effort.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, msg OrderCreatedMessage) error
}

type Publisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	// amqp channels are not safe for concurrent publishing
	mu sync.Mutex
}

func NewPublisher(host string, port int, user, password string) (*Publisher, error) {
	conn, channel, err := dial(host, port, user, password)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, channel: channel}, nil
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, msg OrderCreatedMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.channel.PublishWithContext(ctx,
		ordersExchange,  // exchange
		orderCreatedKey, // routing key
		false,           // mandatory
		false,           // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
