package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"loadsmart_billing/internal/constants"
	"loadsmart_billing/internal/dao/mongodb"
	"loadsmart_billing/internal/dao/repository"
	"loadsmart_billing/internal/dto"
	"loadsmart_billing/internal/helper"
	"loadsmart_billing/internal/models"
)

// CounterOfferLogic defines the interface for the negotiation sub-workflow.
type CounterOfferLogic interface {
	ProposeCounter(ctx context.Context, d *dto.ProposeCounterRequest) (primitive.ObjectID, error)
	ResolveCounter(ctx context.Context, d *dto.ResolveCounterRequest) (*dto.CounterOfferOutcome, error)
	GetCounterOffersByInvoice(ctx context.Context, invoiceID primitive.ObjectID) ([]*models.CounterOffer, error)
}

var _ CounterOfferLogic = (*counterOfferLogic)(nil)

type counterOfferLogic struct {
	counterRepo    repository.CounterOfferRepository
	invoiceRepo    repository.InvoiceRepository
	auditLogRepo   repository.AuditLogRepository
	eventPublisher *InvoiceEventPublisher
	logger         *zap.Logger
}

func NewCounterOfferLogic(counterRepo repository.CounterOfferRepository, invoiceRepo repository.InvoiceRepository, auditLogRepo repository.AuditLogRepository, eventPublisher *InvoiceEventPublisher, logger *zap.Logger) *counterOfferLogic {
	return &counterOfferLogic{
		counterRepo:    counterRepo,
		invoiceRepo:    invoiceRepo,
		auditLogRepo:   auditLogRepo,
		eventPublisher: eventPublisher,
		logger:         logger.Named("CounterOfferLogic"),
	}
}

// ProposeCounter opens a new negotiation cycle on an acknowledged invoice.
// At most one counter offer may be pending per invoice; the check happens
// here, inside the caller's transaction. This method expects to be called
// within a transaction.
func (l *counterOfferLogic) ProposeCounter(ctx context.Context, d *dto.ProposeCounterRequest) (primitive.ObjectID, error) {
	positive, err := helper.IsDecimal128Positive(d.GetAmount())
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to validate counter amount: %w", err)
	}
	if !positive {
		return primitive.NilObjectID, fmt.Errorf("counter amount must be positive, got %s", d.GetAmount().String())
	}

	invoice, err := l.invoiceRepo.GetInvoiceByID(ctx, d.GetInvoiceID())
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to get invoice %s: %w", d.GetInvoiceID().Hex(), err)
	}

	// Admins may record a counter negotiated offline on the shipper's behalf.
	if d.GetProposedBy() == constants.CounterOfferPartyShipper && invoice.Shipper != d.GetProposer().UserId {
		return primitive.NilObjectID, fmt.Errorf("%w: user %s does not own invoice %s", ErrUnauthorized, d.GetProposer().UserId.Hex(), invoice.ID.Hex())
	}

	// Status is the only gate on the invoice side; a shipper who has merely
	// viewed the invoice may counter without acknowledging first.
	if status := constants.ParseInvoiceStatus(invoice.Status); status != constants.InvoiceStatusSent && status != constants.InvoiceStatusApproved {
		return primitive.NilObjectID, fmt.Errorf("%w: cannot counter invoice in status '%s'", ErrInvalidTransition, invoice.Status)
	}

	if _, err := l.counterRepo.GetPendingCounterOfferByInvoice(ctx, invoice.ID); err == nil {
		return primitive.NilObjectID, ErrCounterAlreadyPending
	} else if !errors.Is(err, mongodb.ErrNotFound) {
		return primitive.NilObjectID, fmt.Errorf("failed to check for pending counter offer: %w", err)
	}

	count, err := l.counterRepo.CountCounterOffersByInvoice(ctx, invoice.ID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to count counter offers: %w", err)
	}

	now := time.Now()
	counter := &models.CounterOffer{
		ID:         primitive.NewObjectID(),
		Invoice:    invoice.ID,
		Serial:     int(count) + 1,
		Amount:     d.GetAmount(),
		Reason:     d.GetReason(),
		ProposedBy: d.GetProposedBy().String(),
		Status:     constants.CounterOfferStatusPending.String(),
		CreatedAt:  now,
	}

	counterID, err := l.counterRepo.CreateCounterOffer(ctx, counter)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create counter offer: %w", err)
	}

	updates := []repository.UpdateOption{
		repository.WithShipperResponseStatus(constants.ShipperResponseCountered.String()),
		repository.WithCounteredAt(now),
		repository.WithUpdatedBy(d.GetProposer()),
	}
	if err := l.invoiceRepo.UpdateInvoice(ctx, invoice.ID, updates...); err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to update invoice response status: %w", err)
	}

	if err := l.auditLogRepo.Create(ctx, buildProposeCounterAuditLog(d.GetProposer(), counter)); err != nil {
		l.logger.Error("ProposeCounter: Failed to create audit log", zap.Error(err))
	}

	countered := *invoice
	countered.ShipperResponseStatus = constants.ShipperResponseCountered.String()
	if err := l.eventPublisher.PublishInvoiceEvent(ctx, constants.InvoiceEventCountered, &countered); err != nil {
		l.logger.Error("ProposeCounter: Failed to publish invoice event", zap.Error(err), zap.Stringer("invoiceID", invoice.ID))
		return primitive.NilObjectID, err // Return error to rollback transaction
	}

	return counterID, nil
}

// ResolveCounter accepts or rejects a pending counter offer.
//
// Acceptance rewrites the invoice's total to the countered amount and backs
// the subtotal and tax out of it at the invoice's tax rate, so the invariant
// subtotal + tax == total holds for the new figure. Rejection leaves the
// money untouched. Either way the shipper response axis returns to
// acknowledged (or viewed, if the shipper never acknowledged). This method
// expects to be called within a transaction.
func (l *counterOfferLogic) ResolveCounter(ctx context.Context, d *dto.ResolveCounterRequest) (*dto.CounterOfferOutcome, error) {
	counter, err := l.counterRepo.GetCounterOfferByID(ctx, d.GetCounterOfferID())
	if err != nil {
		return nil, fmt.Errorf("failed to get counter offer %s: %w", d.GetCounterOfferID().Hex(), err)
	}

	if constants.ParseCounterOfferStatus(counter.Status) != constants.CounterOfferStatusPending {
		return nil, fmt.Errorf("%w: counter offer is '%s'", ErrCounterAlreadyResolved, counter.Status)
	}

	invoice, err := l.invoiceRepo.GetInvoiceByID(ctx, counter.Invoice)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %s: %w", counter.Invoice.Hex(), err)
	}

	// The total amount is immutable once the invoice is paid.
	if constants.ParseInvoiceStatus(invoice.Status) == constants.InvoiceStatusPaid {
		return nil, fmt.Errorf("%w: invoice is already paid", ErrInvalidTransition)
	}

	now := time.Now()

	newCounterStatus := constants.CounterOfferStatusRejected
	if d.GetAccept() {
		newCounterStatus = constants.CounterOfferStatusAccepted
	}

	counterUpdates := []repository.UpdateOption{
		repository.WithStatus(newCounterStatus.String()),
		repository.WithRespondedAt(now),
		repository.WithResponseNote(d.GetResponseNote()),
		repository.WithRespondedBy(d.GetOperator()),
	}
	if err := l.counterRepo.UpdateCounterOffer(ctx, counter.ID, counterUpdates...); err != nil {
		return nil, fmt.Errorf("failed to update counter offer: %w", err)
	}

	// The response axis falls back to where the shipper left off.
	restoredResponse := constants.ShipperResponseViewed
	if invoice.AcknowledgedAt != nil {
		restoredResponse = constants.ShipperResponseAcknowledged
	}

	invoiceUpdates := []repository.UpdateOption{
		repository.WithShipperResponseStatus(restoredResponse.String()),
		repository.WithUpdatedBy(d.GetOperator()),
	}

	updated := *invoice
	updated.ShipperResponseStatus = restoredResponse.String()

	if d.GetAccept() {
		newTotal := counter.Amount
		newSubtotal, err := helper.DivDecimal128ByFloat(newTotal, 1+float64(invoice.TaxPercent)/100)
		if err != nil {
			return nil, fmt.Errorf("failed to back out subtotal from countered total: %w", err)
		}
		newTax, err := helper.SubDecimal128(newTotal, newSubtotal)
		if err != nil {
			return nil, fmt.Errorf("failed to compute tax from countered total: %w", err)
		}
		newAdvance, err := helper.PercentOfDecimal128(newTotal, invoice.AdvancePaymentPercent)
		if err != nil {
			return nil, fmt.Errorf("failed to compute advance from countered total: %w", err)
		}
		newBalance, err := helper.SubDecimal128(newTotal, newAdvance)
		if err != nil {
			return nil, fmt.Errorf("failed to compute balance from countered total: %w", err)
		}

		invoiceUpdates = append(invoiceUpdates,
			repository.WithTotalAmount(newTotal),
			repository.WithSubtotal(newSubtotal),
			repository.WithTaxAmount(newTax),
			repository.WithAdvancePaymentAmount(newAdvance),
			repository.WithBalanceOnDelivery(newBalance),
		)

		updated.TotalAmount = newTotal
		updated.Subtotal = newSubtotal
		updated.TaxAmount = newTax
		updated.AdvancePaymentAmount = &newAdvance
		updated.BalanceOnDelivery = &newBalance
	}

	if err := l.invoiceRepo.UpdateInvoice(ctx, invoice.ID, invoiceUpdates...); err != nil {
		return nil, fmt.Errorf("failed to update invoice for counter resolution: %w", err)
	}

	resolvedCounter := *counter
	resolvedCounter.Status = newCounterStatus.String()
	resolvedCounter.RespondedAt = &now
	resolvedCounter.ResponseNote = d.GetResponseNote()
	resolvedCounter.RespondedBy = d.GetOperator()

	if err := l.auditLogRepo.Create(ctx, buildResolveCounterAuditLog(d.GetOperator(), counter, &resolvedCounter, d.GetResponseNote())); err != nil {
		l.logger.Error("ResolveCounter: Failed to create audit log", zap.Error(err))
	}

	if err := l.eventPublisher.PublishInvoiceEvent(ctx, constants.InvoiceEventCounterResolved, &updated); err != nil {
		l.logger.Error("ResolveCounter: Failed to publish invoice event", zap.Error(err), zap.Stringer("invoiceID", invoice.ID))
		return nil, err // Return error to rollback transaction
	}

	return &dto.CounterOfferOutcome{
		CounterOffer: &resolvedCounter,
		Invoice:      &updated,
	}, nil
}

func (l *counterOfferLogic) GetCounterOffersByInvoice(ctx context.Context, invoiceID primitive.ObjectID) ([]*models.CounterOffer, error) {
	return l.counterRepo.GetCounterOffersByInvoice(ctx, invoiceID)
}

var CounterOfferLogicProviderSet = wire.NewSet(NewCounterOfferLogic, wire.Bind(new(CounterOfferLogic), new(*counterOfferLogic)))
