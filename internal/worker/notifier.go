package worker

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/plant-watering/internal/model"
	"github.com/aliskhannn/plant-watering/internal/rabbitmq/queue"
)

//go:generate mockgen -source=notifier.go -destination=../mocks/worker/mock.go -package=mocks
type reminderConsumer interface {
	Consume(ctx context.Context, out chan<- queue.ReminderMessage, strategy retry.Strategy) error
}

type messageHandler interface {
	HandleMessage(ctx context.Context, msg queue.ReminderMessage, strategy retry.Strategy)
}

type reminderService interface {
	GetReminderStatusByID(context.Context, retry.Strategy, uuid.UUID) (string, error)
}

// Notifier runs the pool of delivery workers.
type Notifier struct {
	queue   reminderConsumer
	handler messageHandler
	service reminderService
}

func NewNotifier(q reminderConsumer, h messageHandler, s reminderService) *Notifier {
	return &Notifier{
		queue:   q,
		handler: h,
		service: s,
	}
}

// Run consumes reminder messages and hands them to workerCount workers until
// ctx is done. Cancelled reminders are skipped.
func (n *Notifier) Run(ctx context.Context, strategy retry.Strategy, workerCount int) {
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	msgChan := make(chan queue.ReminderMessage, workerCount*10)

	go func() {
		if err := n.queue.Consume(ctx, msgChan, strategy); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to consume messages")
		}
	}()

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go func(id int) {
			defer wg.Done()

			zlog.Logger.Debug().Int("worker", id).Msg("worker started")

			for {
				select {
				case <-ctx.Done():
					zlog.Logger.Debug().Int("worker", id).Msg("worker shutting down")
					return
				case msg, ok := <-msgChan:
					if !ok {
						return
					}

					n.process(ctx, msg, strategy)
				}
			}
		}(i)
	}

	<-ctx.Done()
	wg.Wait()
	zlog.Logger.Info().Msg("notifier stopped")
}

func (n *Notifier) process(ctx context.Context, msg queue.ReminderMessage, strategy retry.Strategy) {
	status, err := n.service.GetReminderStatusByID(ctx, strategy, msg.ID)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", msg.ID.String()).Msg("failed to get reminder status")
		return
	}

	if status == model.StatusCancelled {
		zlog.Logger.Info().Str("id", msg.ID.String()).Msg("reminder cancelled, skipping")
		return
	}

	n.handler.HandleMessage(ctx, msg, strategy)
}
