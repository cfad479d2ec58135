// Package service publishes catalog domain events to RabbitMQ. Errors
// are logged and returned so callers can ignore failures without
// interrupting the request flow.
package service

import (
	"context"
	"encoding/json"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/musclemap/musclemap/internal/queue"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "catalog-publisher").Logger()

// CatalogPublisher sends exercise events to the catalog.exercises queue.
type CatalogPublisher struct {
	URL string
}

func NewCatalogPublisher() *CatalogPublisher {
	return &CatalogPublisher{URL: queue.BrokerURL()}
}

// PublishExerciseEvent publishes ev as a persistent JSON message. Never
// panics; every failure is logged and returned for the caller to drop.
func (p *CatalogPublisher) PublishExerciseEvent(ctx context.Context, ev queue.ExerciseEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		logger.Warn().Err(err).Msg("dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Warn().Err(err).Msg("channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(queue.ExerciseQueueName, true, false, false, false, nil); err != nil {
		logger.Warn().Err(err).Msg("queue declare failed")
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		logger.Warn().Err(err).Msg("marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.ExerciseQueueName, false, false, pub); err != nil {
		logger.Warn().Err(err).Msg("publish failed")
		return err
	}
	return nil
}
