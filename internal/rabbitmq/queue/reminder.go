// Package queue declares the reminder broker topology and moves reminder
// messages in and out of it.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/plant-watering/internal/config"
)

// ReminderMessage is the broker payload of a due watering reminder.
type ReminderMessage struct {
	ID      uuid.UUID `json:"id"`
	PlantID uuid.UUID `json:"plant_id"`
	SendAt  time.Time `json:"send_at"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	To      string    `json:"to"`
	Channel string    `json:"channel"`
	Retries int       `json:"retries"`
}

// ReminderQueue publishes and consumes reminder messages.
//
// The topology is declared lazily by Declare so the scheduler decides when the
// delivery channel gets configured.
type ReminderQueue struct {
	ch  *rabbitmq.Channel
	cfg config.RabbitMQ

	Publisher *rabbitmq.Publisher
	Consumer  *rabbitmq.Consumer
}

// NewReminderQueue creates a queue bound to the given channel.
func NewReminderQueue(ch *rabbitmq.Channel, cfg config.RabbitMQ) *ReminderQueue {
	return &ReminderQueue{ch: ch, cfg: cfg}
}

// Declare declares the exchange, the main queue, the retry queue and the DLQ.
func (q *ReminderQueue) Declare() error {
	exchange := rabbitmq.NewExchange(q.cfg.Exchange, "direct")
	if err := exchange.BindToChannel(q.ch); err != nil {
		return fmt.Errorf("failed to bind to exchange: %w", err)
	}

	qm := rabbitmq.NewQueueManager(q.ch)

	if _, err := qm.DeclareQueue(q.cfg.DLQ, rabbitmq.QueueConfig{Durable: true}); err != nil {
		return fmt.Errorf("failed to declare DLQ queue: %w", err)
	}

	retryArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": q.cfg.Queue,
		"x-message-ttl":             int32(q.cfg.RetryTTL.Milliseconds()),
	}

	_, err := qm.DeclareQueue(q.cfg.RetryQueue, rabbitmq.QueueConfig{
		Durable: true,
		Args:    retryArgs,
	})
	if err != nil {
		return fmt.Errorf("failed to declare retry queue: %w", err)
	}

	mainArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": q.cfg.DLQ,
	}

	mainQ, err := qm.DeclareQueue(q.cfg.Queue, rabbitmq.QueueConfig{
		Durable: true,
		Args:    mainArgs,
	})
	if err != nil {
		return fmt.Errorf("failed to declare main queue: %w", err)
	}

	if err := q.ch.QueueBind(mainQ.Name, q.cfg.RoutingKey, exchange.Name(), false, nil); err != nil {
		return fmt.Errorf("failed to bind the exchange to the main queue: %w", err)
	}

	q.Publisher = rabbitmq.NewPublisher(q.ch, exchange.Name())
	q.Consumer = rabbitmq.NewConsumer(q.ch, rabbitmq.NewConsumerConfig(mainQ.Name))

	zlog.Logger.Info().Str("exchange", exchange.Name()).Str("queue", mainQ.Name).Msg("reminder queue declared")

	return nil
}

// Publish sends a reminder message to the main queue.
func (q *ReminderQueue) Publish(msg ReminderMessage, strategy retry.Strategy) error {
	if q.Publisher == nil {
		return fmt.Errorf("publish reminder %s: queue not declared", msg.ID)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return q.Publisher.PublishWithRetry(body, q.cfg.RoutingKey, "application/json", strategy)
}

// Consume decodes messages from the main queue into out until ctx is done.
func (q *ReminderQueue) Consume(ctx context.Context, out chan<- ReminderMessage, strategy retry.Strategy) error {
	if q.Consumer == nil {
		return fmt.Errorf("consume reminders: queue not declared")
	}

	msgChan := make(chan []byte)
	errChan := make(chan error, 1)

	go func() {
		errChan <- q.Consumer.ConsumeWithRetry(msgChan, strategy)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errChan:
			return err
		case m, ok := <-msgChan:
			if !ok {
				return nil
			}

			var msg ReminderMessage
			if err := json.Unmarshal(m, &msg); err != nil {
				zlog.Logger.Error().Err(err).Msg("failed to unmarshal message")
				continue
			}

			select {
			case out <- msg:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
