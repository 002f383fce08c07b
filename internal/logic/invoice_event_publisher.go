package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"loadsmart_billing/internal/constants"
	"loadsmart_billing/internal/dao/repository"
	"loadsmart_billing/internal/models"
)

// InvoiceEventTopic is the routing key prefix for invoice lifecycle events.
type InvoiceEventTopic string

// InvoiceEventPublisher is responsible for creating outbox messages for invoice lifecycle events.
type InvoiceEventPublisher struct {
	outboxRepo        repository.OutboxRepository
	invoiceEventTopic InvoiceEventTopic
}

// NewInvoiceEventPublisher creates a new InvoiceEventPublisher.
func NewInvoiceEventPublisher(outboxRepo repository.OutboxRepository, invoiceEventTopic InvoiceEventTopic) *InvoiceEventPublisher {
	return &InvoiceEventPublisher{
		outboxRepo:        outboxRepo,
		invoiceEventTopic: invoiceEventTopic,
	}
}

// PublishInvoiceEvent creates an outbox message for an invoice lifecycle event
// (e.g. sent, acknowledged, paid). The message is written in the caller's
// transaction so the event and the state change commit together.
func (p *InvoiceEventPublisher) PublishInvoiceEvent(ctx context.Context, event constants.InvoiceEvent, invoice *models.Invoice) error {
	eventPayload := map[string]interface{}{
		"event":                   string(event),
		"invoice_id":              invoice.ID.Hex(),
		"invoice_number":          invoice.InvoiceNumber,
		"status":                  invoice.Status,
		"shipper_response_status": invoice.ShipperResponseStatus,
		"shipper_id":              invoice.Shipper.Hex(),
		"total_amount":            invoice.TotalAmount.String(),
	}
	payloadBytes, err := json.Marshal(eventPayload)
	if err != nil {
		// Errors from marshalling are considered fatal for the transaction, as the payload can't be constructed.
		return fmt.Errorf("failed to marshal invoice event payload: %w", err)
	}

	outboxMsg := &models.OutboxMessage{
		ID:        primitive.NewObjectID(),
		Topic:     string(p.invoiceEventTopic),
		Payload:   string(payloadBytes),
		Status:    models.OutboxStatusPending,
		CreatedAt: time.Now(),
	}

	if err := p.outboxRepo.Create(ctx, outboxMsg); err != nil {
		// Errors from creating the outbox message are also fatal for the transaction.
		return fmt.Errorf("failed to create invoice event outbox message: %w", err)
	}
	return nil
}
