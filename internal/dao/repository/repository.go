package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"loadsmart_billing/internal/models"
)

type InvoiceRepository interface {
	CreateInvoice(ctx context.Context, invoice *models.Invoice) (primitive.ObjectID, error)
	GetInvoiceByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error)
	GetInvoiceByNumber(ctx context.Context, number string) (*models.Invoice, error)
	GetInvoices(ctx context.Context, params *GetInvoicesParams) ([]*models.Invoice, int64, error)
	UpdateInvoice(ctx context.Context, id primitive.ObjectID, opts ...UpdateOption) error
	GetOverdueInvoices(ctx context.Context, asOf time.Time, limit int) ([]*models.Invoice, error)
}

type CounterOfferRepository interface {
	CreateCounterOffer(ctx context.Context, offer *models.CounterOffer) (primitive.ObjectID, error)
	GetCounterOfferByID(ctx context.Context, id primitive.ObjectID) (*models.CounterOffer, error)
	GetCounterOffersByInvoice(ctx context.Context, invoiceID primitive.ObjectID) ([]*models.CounterOffer, error)
	GetPendingCounterOfferByInvoice(ctx context.Context, invoiceID primitive.ObjectID) (*models.CounterOffer, error)
	CountCounterOffersByInvoice(ctx context.Context, invoiceID primitive.ObjectID) (int64, error)
	UpdateCounterOffer(ctx context.Context, id primitive.ObjectID, opts ...UpdateOption) error
}

type LoadRepository interface {
	GetLoadByID(ctx context.Context, id primitive.ObjectID) (*models.Load, error)
}

type AuditLogRepository interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

type OutboxRepository interface {
	Create(ctx context.Context, message *models.OutboxMessage) error
	ClaimAndFetchEvents(ctx context.Context, limit int) ([]*models.OutboxMessage, error)
	MarkAsProcessed(ctx context.Context, id primitive.ObjectID) error
	IncrementRetry(ctx context.Context, id primitive.ObjectID, errorMessage string) error
}
