//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"loadsmart_billing/internal/app"
	"loadsmart_billing/internal/conf"
	"loadsmart_billing/internal/dao/mongodb"
	"loadsmart_billing/internal/dao/repository"
	"loadsmart_billing/internal/limiter"
	"loadsmart_billing/internal/logger"
	"loadsmart_billing/internal/logic"
	"loadsmart_billing/internal/middleware/http"
	"loadsmart_billing/internal/provider"
	"loadsmart_billing/internal/service"
	"loadsmart_billing/internal/worker"
	"loadsmart_billing/pkg/snowflake"
)

// baseProviders holds the components shared by every server flavour.
var baseProviders = wire.NewSet(
	wire.FieldsOf(new(*conf.AppConfig), "LogConfig", "MongodbConfig", "KetoConfig", "WorkerConfig", "JwtConfig", "RedisConfig", "RateLimiterConfig"),
	provider.ProvideAppMode,
	logger.NewLogger,
	mongodb.NewMongoDB,
	provider.ProvideDatabase,
	provider.ProvideRelationClient,
	provider.ProvideMachineID,
	provider.ProvideInvoiceEventTopic,
	provider.ProvideInvoiceDueInDays,
	provider.ProvideTransactionManager,
	provider.ProvideJwtGenerator,
	provider.ProvideRedisNamespace,
	provider.ProvideRedisClient,
	limiter.NewManager,
	snowflake.NewGenerator,
	http.NewAuthMiddleware,
	mongodb.NewInvoiceDAO,
	wire.Bind(new(repository.InvoiceRepository), new(*mongodb.InvoiceDAO)),
	mongodb.NewCounterOfferDAO,
	wire.Bind(new(repository.CounterOfferRepository), new(*mongodb.CounterOfferDAO)),
	mongodb.NewLoadDAO,
	wire.Bind(new(repository.LoadRepository), new(*mongodb.LoadDAO)),
	mongodb.NewAuditLogDAO,
	wire.Bind(new(repository.AuditLogRepository), new(*mongodb.AuditLogDAO)),
	mongodb.NewOutboxDAO,
	wire.Bind(new(repository.OutboxRepository), new(*mongodb.OutboxDAO)),
	logic.NewInvoiceEventPublisher,
	logic.InvoiceLogicProviderSet,
	logic.CounterOfferLogicProviderSet,
)

// publisherProviders holds the broker publisher and the outbox relay worker.
var publisherProviders = wire.NewSet(
	wire.FieldsOf(new(*conf.AppConfig), "RabbitMQConfig"),
	provider.ProvidePublisher,
	worker.NewOutboxProcessor,
)

// provideAdminWorkers wraps the outbox processor into the worker slice.
func provideAdminWorkers(p *worker.OutboxProcessor) []worker.Worker {
	return []worker.Worker{p}
}

// provideShipperWorkers provides an empty worker slice for the shipper app.
func provideShipperWorkers() []worker.Worker {
	return []worker.Worker{}
}

func InitializeAdminApp(appConfig *conf.AppConfig) (*app.App, func(), error) {
	wire.Build(
		baseProviders,
		publisherProviders,
		wire.FieldsOf(new(*conf.AppConfig), "Port"),
		service.NewInvoicesAdminService,
		app.NewAdminRouter,
		provideAdminWorkers,
		app.NewApp,
	)
	return nil, nil, nil
}

func InitializeShipperApp(appConfig *conf.AppConfig) (*app.App, func(), error) {
	wire.Build(
		baseProviders,
		wire.FieldsOf(new(*conf.AppConfig), "Port"),
		service.NewInvoicesShipperService,
		app.NewShipperRouter,
		provideShipperWorkers,
		app.NewApp,
	)
	return nil, nil, nil
}
