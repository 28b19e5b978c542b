package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/softglass/calculator-backend/constant"
	"github.com/softglass/calculator-backend/thirdparty/telegram"
	"github.com/softglass/calculator-backend/utils/logger"
	"go.uber.org/zap"
)

// defaultRetryDelay holds a delivery whose send failed before it is requeued.
const defaultRetryDelay = 5 * time.Second

// Consumer relays order.created events to the staff chat.
type Consumer struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	notifier telegram.Notifier

	retryDelay       time.Duration
	unavailableDelay time.Duration
}

// NewConsumer wires the relay to notifier. The notifier should be a client
// of its own: a failing relay opens that client's circuit breaker.
func NewConsumer(host string, port int, user, password string, notifier telegram.Notifier) (*Consumer, error) {
	conn, channel, err := dial(host, port, user, password)
	if err != nil {
		return nil, err
	}
	return &Consumer{
		conn:             conn,
		channel:          channel,
		notifier:         notifier,
		retryDelay:       defaultRetryDelay,
		unavailableDelay: telegram.BreakerTimeout,
	}, nil
}

func (c *Consumer) Start(ctx context.Context) error {
	// Set QoS to 1 - process one message at a time
	if err := c.channel.Qos(1, 0, false); err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		orderCreatedQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Warn("[Consumer] delivery channel closed")
					return
				}
				c.dispatch(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *Consumer) dispatch(ctx context.Context, msg amqp091.Delivery) {
	switch handleOrderCreated(ctx, c.notifier, msg.Body) {
	case outcomeAck:
		_ = msg.Ack(false)
	case outcomeRequeue:
		requeueAfter(ctx, msg, c.retryDelay)
	case outcomeBackoff:
		requeueAfter(ctx, msg, c.unavailableDelay)
	}
}

// requeueAfter holds msg for d before returning it to the queue. With a
// prefetch of one nothing else is delivered meanwhile, so the relay pauses
// instead of redelivering the same event in a loop. Shutdown requeues at once.
func requeueAfter(ctx context.Context, msg amqp091.Delivery, d time.Duration) {
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}
	_ = msg.Nack(false, true)
}

type outcome int

const (
	outcomeAck outcome = iota
	// outcomeRequeue: the send failed and can be retried shortly.
	outcomeRequeue
	// outcomeBackoff: the notifier's breaker rejected the send without trying.
	outcomeBackoff
)

// handleOrderCreated acks malformed payloads so they do not loop forever and
// requeues when the notifier fails.
func handleOrderCreated(ctx context.Context, notifier telegram.Notifier, body []byte) outcome {
	var event OrderCreatedMessage
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Error("[Consumer] unmarshal order event", zap.String("error", err.Error()))
		return outcomeAck
	}

	err := notifier.SendMessage(ctx, formatOrderCreated(event))
	if telegram.IsUnavailable(err) {
		logger.Warn("[Consumer] notifier unavailable, backing off",
			zap.Uint64("order_id", event.OrderID),
			zap.String("error", err.Error()),
		)
		return outcomeBackoff
	}
	if err != nil {
		logger.Error("[Consumer] notify order created",
			zap.Uint64("order_id", event.OrderID),
			zap.String("error", err.Error()),
		)
		return outcomeRequeue
	}

	logger.Info("[Consumer] order event relayed", zap.Uint64("order_id", event.OrderID))
	return outcomeAck
}

func formatOrderCreated(e OrderCreatedMessage) string {
	source := "заявка с сайта"
	if e.Source == constant.OrderSourceAccount {
		source = "личный кабинет"
	}
	text := fmt.Sprintf("🧾 Новый заказ #%d\n💰 Сумма: %s ₽\n📍 Источник: %s",
		e.OrderID, strconv.FormatFloat(e.TotalPrice, 'f', -1, 64), html.EscapeString(source))
	if e.UserID != nil {
		text += fmt.Sprintf("\n👤 Клиент ID: %d", *e.UserID)
	}
	return text
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}
