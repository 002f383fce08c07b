package main

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"loadsmart_billing/cmd/consumer/handlers"
	"loadsmart_billing/internal/mq/rabbitmq"
	"loadsmart_billing/internal/worker"
)

// ConsumerApp holds the components of the consumer application.
type ConsumerApp struct {
	consumer        *rabbitmq.Consumer
	overdueNotifier *worker.OverdueNotifier
	logger          *zap.Logger
}

// NewConsumerApp creates a new consumer application and registers all handlers.
func NewConsumerApp(consumer *rabbitmq.Consumer, overdueNotifier *worker.OverdueNotifier, logger *zap.Logger, handlers []handlers.MessageHandler) *ConsumerApp {
	// Register all handlers passed by Wire
	for _, h := range handlers {
		logger.Info("Registering handler", zap.String("queue", h.QueueName()))
		consumer.RegisterHandler(h.QueueName(), h.Handle)
	}

	return &ConsumerApp{
		consumer:        consumer,
		overdueNotifier: overdueNotifier,
		logger:          logger,
	}
}

// Run starts all background workers and blocks until the context is cancelled or a worker fails.
func (a *ConsumerApp) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	// Start RabbitMQ consumer
	g.Go(func() error {
		a.logger.Info("Starting RabbitMQ consumer")
		return a.consumer.Start(gCtx)
	})

	// Start overdue reminder worker
	g.Go(func() error {
		a.overdueNotifier.Start()
		<-gCtx.Done() // Wait for cancellation signal
		a.overdueNotifier.Stop()
		return nil
	})

	return g.Wait()
}
