package rabbitmq

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/rabbitmq/amqp091-go"
)

const (
	ordersExchange    = "orders_exchange"
	orderCreatedQueue = "order_created_queue"
	orderCreatedKey   = "order.created"
)

func dial(host string, port int, user, password string) (*amqp091.Connection, *amqp091.Channel, error) {
	dsn := (&url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(user, password),
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/",
	}).String()

	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return nil, nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, nil, err
	}
	return conn, channel, nil
}

// declareTopology is idempotent; publisher and consumer both run it.
func declareTopology(channel *amqp091.Channel) error {
	err := channel.ExchangeDeclare(
		ordersExchange, // name
		"direct",       // type
		true,           // durable
		false,          // auto-delete
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		orderCreatedQueue, // name
		true,              // durable
		false,             // auto-delete
		false,             // exclusive
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = channel.QueueBind(
		orderCreatedQueue, // queue name
		orderCreatedKey,   // routing key
		ordersExchange,    // exchange
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}
