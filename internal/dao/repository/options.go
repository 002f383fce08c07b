package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"loadsmart_billing/internal/dao/fields"
	"loadsmart_billing/internal/models"
)

// UpdateOptions is an exported struct that holds the fields for a MongoDB update operation.
// It is used with the Functional Options pattern.
type UpdateOptions struct {
	SetFields bson.M
}

// NewUpdateOptions creates a new instance of UpdateOptions.
func NewUpdateOptions() *UpdateOptions {
	return &UpdateOptions{
		SetFields: bson.M{},
	}
}

// UpdateOption defines a function that can modify the UpdateOptions.
type UpdateOption func(*UpdateOptions)

// WithStatus is an option to update the document's status field.
func WithStatus(status string) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldStatus] = status
	}
}

// WithShipperResponseStatus is an option to update the invoice's shipper-facing status.
func WithShipperResponseStatus(status string) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldInvoiceShipperResponse] = status
	}
}

// WithTotalAmount is an option to update the invoice's total_amount field.
func WithTotalAmount(amount primitive.Decimal128) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldInvoiceTotalAmount] = amount
	}
}

// WithSubtotal is an option to update the invoice's subtotal field.
func WithSubtotal(amount primitive.Decimal128) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldInvoiceSubtotal] = amount
	}
}

// WithTaxAmount is an option to update the invoice's tax_amount field.
func WithTaxAmount(amount primitive.Decimal128) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldInvoiceTaxAmount] = amount
	}
}

// WithAdvancePaymentAmount is an option to update the invoice's advance split.
func WithAdvancePaymentAmount(amount primitive.Decimal128) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldInvoiceAdvanceAmount] = amount
	}
}

// WithBalanceOnDelivery is an option to update the invoice's balance split.
func WithBalanceOnDelivery(amount primitive.Decimal128) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldInvoiceBalance] = amount
	}
}

// WithDueDate is an option to set the invoice's payment due date.
func WithDueDate(t time.Time) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldInvoiceDueDate] = t
	}
}

// WithSentAt is an option to stamp the invoice's sent_at field.
func WithSentAt(t time.Time) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldInvoiceSentAt] = t
	}
}

// WithAcknowledgedAt is an option to stamp the invoice's acknowledged_at field.
func WithAcknowledgedAt(t time.Time) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldInvoiceAcknowledgedAt] = t
	}
}

// WithPaidAt is an option to stamp the invoice's paid_at field.
func WithPaidAt(t time.Time) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldInvoicePaidAt] = t
	}
}

// WithCounteredAt is an option to stamp the invoice's countered_at field.
func WithCounteredAt(t time.Time) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldInvoiceCounteredAt] = t
	}
}

// WithRespondedAt is an option to stamp a counter-offer's responded_at field.
func WithRespondedAt(t time.Time) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldCounterOfferRespondedAt] = t
	}
}

// WithResponseNote is an option to set a counter-offer's response note.
func WithResponseNote(note string) UpdateOption {
	return func(o *UpdateOptions) {
		if note != "" {
			o.SetFields[fields.FieldCounterOfferResponseNote] = note
		}
	}
}

// WithRespondedBy is an option to record the operator who resolved a counter-offer.
func WithRespondedBy(user *models.User) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldCounterOfferRespondedBy] = user
	}
}

// WithUpdatedBy is an option to update the document's updated_by field.
func WithUpdatedBy(user *models.User) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldUpdatedBy] = user
	}
}

// WithUpdatedAt is an option to update the updated_at field.
func WithUpdatedAt(t time.Time) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldUpdatedAt] = t
	}
}
