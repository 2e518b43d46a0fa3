// Package event publishes tweet lifecycle events to RabbitMQ. Publishing
// is best effort: a broker failure never fails the write that triggered
// the event.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ActionTweetCreated = "tweet.created"
	ActionTweetUpdated = "tweet.updated"
	ActionTweetDeleted = "tweet.deleted"
)

type TweetEvent struct {
	Action     string    `json:"action"`
	TweetID    string    `json:"tweet_id"`
	AuthorID   string    `json:"author_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type TweetEventPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewTweetEventPublisher(conn *amqp.Connection, queueName string) *TweetEventPublisher {
	return &TweetEventPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *TweetEventPublisher) Publish(ctx context.Context, ev TweetEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event payload failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish event failed: %w", err)
	}
	return nil
}
