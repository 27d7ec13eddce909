package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	USER_INFO_UPDATED_QUEUE = "user-info-updated"
	POST_CREATED_QUEUE      = "post-created"
)

var queues = []string{
	USER_INFO_UPDATED_QUEUE,
	POST_CREATED_QUEUE,
}

// MQConn keeps publishing and consuming on separate channels so a slow
// consumer never blocks request handlers.
type MQConn struct {
	conn      *amqp.Connection
	publishCh *amqp.Channel
	consumeCh *amqp.Channel
}

func New(url string) (*MQConn, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	publishCh, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open publish channel: %w", err)
	}

	consumeCh, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open consume channel: %w", err)
	}

	for _, queue := range queues {
		if _, err := publishCh.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			conn.Close()
			return nil, fmt.Errorf("declare queue(%s): %w", queue, err)
		}
	}

	return &MQConn{
		conn:      conn,
		publishCh: publishCh,
		consumeCh: consumeCh,
	}, nil
}

func (c *MQConn) Publish(ctx context.Context, queue string, body []byte) error {
	return c.publishCh.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

func (c *MQConn) Consume(queue string) (<-chan amqp.Delivery, error) {
	return c.consumeCh.Consume(queue, "", false, false, false, false, nil)
}

func (c *MQConn) Close() error {
	return errors.Join(
		c.publishCh.Close(),
		c.consumeCh.Close(),
		c.conn.Close(),
	)
}
