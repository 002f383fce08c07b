package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"loadsmart_billing/internal/conf"
	"loadsmart_billing/internal/provider"
)

// InvoiceEventRelayHandler fans invoice lifecycle events out to the portals.
// Every event is relayed to the admin channel; events carrying a shipper id
// are additionally relayed to that shipper's own channel, so a connected
// portal only ever sees its own invoices.
type InvoiceEventRelayHandler struct {
	redisClient *redis.Client
	ns          provider.RedisNamespace
	logger      *zap.Logger
	cfg         *conf.RabbitMQConfig
}

// NewInvoiceEventRelayHandler creates a new handler for invoice event relay.
func NewInvoiceEventRelayHandler(redisClient *redis.Client, ns provider.RedisNamespace, logger *zap.Logger, cfg *conf.RabbitMQConfig) *InvoiceEventRelayHandler {
	return &InvoiceEventRelayHandler{
		redisClient: redisClient,
		ns:          ns,
		logger:      logger.Named("InvoiceEventRelayHandler"),
		cfg:         cfg,
	}
}

// QueueName returns the name of the queue this handler subscribes to.
func (h *InvoiceEventRelayHandler) QueueName() string {
	return h.cfg.RelayQueue
}

// Handle processes the incoming message.
func (h *InvoiceEventRelayHandler) Handle(ctx context.Context, d amqp.Delivery) error {
	h.logger.Info("Received invoice event", zap.ByteString("body", d.Body))

	// 1. Parse the message payload.
	var payload struct {
		Event     string `json:"event"`
		InvoiceID string `json:"invoice_id"`
		ShipperID string `json:"shipper_id"`
	}
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		h.logger.Error("Failed to unmarshal message body", zap.Error(err), zap.ByteString("body", d.Body))
		return nil // Poison pill, ACK and remove.
	}
	if payload.Event == "" || payload.InvoiceID == "" {
		h.logger.Error("Invoice event missing required fields", zap.ByteString("body", d.Body))
		return nil // Malformed event, ACK and remove.
	}

	// 2. Relay to the admin channel.
	adminChannel := fmt.Sprintf("%sinvoices:admin", h.ns)
	if err := h.redisClient.Publish(ctx, adminChannel, d.Body).Err(); err != nil {
		h.logger.Error("Failed to relay event to admin channel", zap.Error(err), zap.String("channel", adminChannel))
		return err // Transient failure, requeue for another attempt.
	}

	// 3. Relay to the owning shipper's channel.
	if payload.ShipperID != "" {
		shipperChannel := fmt.Sprintf("%sinvoices:shipper:%s", h.ns, payload.ShipperID)
		if err := h.redisClient.Publish(ctx, shipperChannel, d.Body).Err(); err != nil {
			h.logger.Error("Failed to relay event to shipper channel", zap.Error(err), zap.String("channel", shipperChannel))
			return err
		}
	}

	h.logger.Info("Relayed invoice event",
		zap.String("event", payload.Event),
		zap.String("invoice_id", payload.InvoiceID),
	)
	return nil // Return nil to acknowledge the message.
}
