package logic

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"loadsmart_billing/internal/models"
)

// AuditLogOption defines a function that configures an AuditLog object.
type AuditLogOption func(*models.AuditLog)

// WithReason is an option to add a reason to an audit log.
func WithReason(reason string) AuditLogOption {
	return func(log *models.AuditLog) {
		if reason != "" {
			log.Reason = reason
		}
	}
}

// NewAuditLog is a shared constructor for creating standardized audit log objects using the Option Pattern.
func NewAuditLog(user *models.User, action, entityType string, entityID primitive.ObjectID, before, after interface{}, opts ...AuditLogOption) *models.AuditLog {
	log := &models.AuditLog{
		ID:         primitive.NewObjectID(),
		UserID:     user.UserId,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes: map[string]interface{}{
			"before": before,
			"after":  after,
		},
		Timestamp: time.Now(),
	}

	// Apply all the options
	for _, opt := range opts {
		opt(log)
	}

	return log
}

// buildCreateInvoiceAuditLog creates an audit object for a new invoice.
func buildCreateInvoiceAuditLog(operator *models.User, invoice *models.Invoice) *models.AuditLog {
	return NewAuditLog(operator, "CREATE_INVOICE", "invoice", invoice.ID, nil, invoice)
}

// buildInvoiceStatusAuditLog creates an audit object for a status change on
// either axis of the invoice lifecycle.
func buildInvoiceStatusAuditLog(operator *models.User, action string, invoiceID primitive.ObjectID, beforeStatus, afterStatus, beforeResponse, afterResponse string) *models.AuditLog {
	before := map[string]interface{}{
		"status":                  beforeStatus,
		"shipper_response_status": beforeResponse,
	}
	after := map[string]interface{}{
		"status":                  afterStatus,
		"shipper_response_status": afterResponse,
	}
	return NewAuditLog(operator, action, "invoice", invoiceID, before, after)
}

// buildProposeCounterAuditLog creates an audit object for a new counter offer.
func buildProposeCounterAuditLog(proposer *models.User, counter *models.CounterOffer) *models.AuditLog {
	return NewAuditLog(proposer, "PROPOSE_COUNTER_OFFER", "counter_offer", counter.ID, nil, counter, WithReason(counter.Reason))
}

// buildResolveCounterAuditLog creates an audit object for a counter offer resolution.
func buildResolveCounterAuditLog(operator *models.User, before, after *models.CounterOffer, note string) *models.AuditLog {
	return NewAuditLog(operator, "RESOLVE_COUNTER_OFFER", "counter_offer", before.ID, before, after, WithReason(note))
}

// buildMarkPaidAuditLog creates an audit object for the final payment settlement.
func buildMarkPaidAuditLog(operator *models.User, before, after *models.Invoice) *models.AuditLog {
	return NewAuditLog(operator, "MARK_INVOICE_PAID", "invoice", before.ID, before, after)
}
