//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"loadsmart_billing/cmd/consumer/handlers"
	"loadsmart_billing/internal/conf"
	"loadsmart_billing/internal/dao/mongodb"
	"loadsmart_billing/internal/dao/repository"
	"loadsmart_billing/internal/logger"
	"loadsmart_billing/internal/logic"
	"loadsmart_billing/internal/mq/rabbitmq"
	"loadsmart_billing/internal/provider"
	"loadsmart_billing/internal/worker"
)

// provideHandlers collects all individual MessageHandlers into a slice.
func provideHandlers(relayHandler *handlers.InvoiceEventRelayHandler) []handlers.MessageHandler {
	return []handlers.MessageHandler{
		relayHandler,
	}
}

// InitializeConsumerApp creates the consumer application and its dependencies.
func InitializeConsumerApp(appConfig *conf.AppConfig) (*ConsumerApp, func(), error) {
	wire.Build(
		// Config Providers
		wire.FieldsOf(new(*conf.AppConfig), "LogConfig", "MongodbConfig", "RabbitMQConfig", "WorkerConfig", "RedisConfig"),

		// Common Components
		logger.NewLogger,
		mongodb.NewMongoDB,
		provider.ProvideDatabase,
		provider.ProvideRedisNamespace,
		provider.ProvideRedisClient,
		provider.ProvideInvoiceEventTopic,

		// DAO Layer (only what the relay and reminder workers need)
		mongodb.NewInvoiceDAO,
		wire.Bind(new(repository.InvoiceRepository), new(*mongodb.InvoiceDAO)),
		mongodb.NewOutboxDAO,
		wire.Bind(new(repository.OutboxRepository), new(*mongodb.OutboxDAO)),

		// Event publisher feeding the outbox
		logic.NewInvoiceEventPublisher,

		// MQ Consumer & Workers
		rabbitmq.NewConsumer,
		provider.ProvideOverdueNotifierInterval,
		worker.NewOverdueNotifier,

		// Handlers
		handlers.NewInvoiceEventRelayHandler,
		provideHandlers,

		// Final App
		NewConsumerApp,
	)
	return nil, nil, nil
}
