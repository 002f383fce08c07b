package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"loadsmart_billing/internal/constants"
	"loadsmart_billing/internal/dao/repository"
	"loadsmart_billing/internal/dto"
	"loadsmart_billing/internal/helper"
	"loadsmart_billing/internal/models"
	"loadsmart_billing/pkg/pagination"
	"loadsmart_billing/pkg/relation"
	"loadsmart_billing/pkg/snowflake"
)

// InvoiceLogic defines the interface for invoice lifecycle business logic.
type InvoiceLogic interface {
	CreateInvoice(ctx context.Context, d *dto.CreateInvoiceRequest) (primitive.ObjectID, error)
	SendInvoice(ctx context.Context, invoiceID primitive.ObjectID, operator *models.User) error
	ResendInvoice(ctx context.Context, invoiceID primitive.ObjectID, operator *models.User) error
	RecordShipperView(ctx context.Context, invoiceID primitive.ObjectID, shipper *models.User) error
	AcknowledgeInvoice(ctx context.Context, invoiceID primitive.ObjectID, shipper *models.User) error
	MarkInvoicePaid(ctx context.Context, d *dto.MarkInvoicePaidRequest) error
	GetInvoice(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error)
	GetInvoiceByNumber(ctx context.Context, number string) (*models.Invoice, error)
	GetInvoiceDetails(ctx context.Context, id primitive.ObjectID) (*dto.InvoiceDetails, error)
	GetInvoiceForShipper(ctx context.Context, id, shipperID primitive.ObjectID) (*dto.ShipperInvoice, error)
	ListInvoices(ctx context.Context, params *repository.GetInvoicesParams, pageReq *pagination.PageRequest) (*pagination.PageResult, error)
	IsInvoiceOverdue(invoice *models.Invoice, asOf time.Time) bool
}

var _ InvoiceLogic = (*invoiceLogic)(nil)

// InvoiceDueInDays is the default payment window applied when a sent invoice
// has no explicit due date.
type InvoiceDueInDays int

type invoiceLogic struct {
	invoiceRepo    repository.InvoiceRepository
	counterRepo    repository.CounterOfferRepository
	loadRepo       repository.LoadRepository
	auditLogRepo   repository.AuditLogRepository
	eventPublisher *InvoiceEventPublisher
	relationClient *relation.Client
	idGenerator    *snowflake.Generator
	dueInDays      InvoiceDueInDays
	logger         *zap.Logger
}

func NewInvoiceLogic(invoiceRepo repository.InvoiceRepository, counterRepo repository.CounterOfferRepository, loadRepo repository.LoadRepository, auditLogRepo repository.AuditLogRepository, eventPublisher *InvoiceEventPublisher, relationClient *relation.Client, idGenerator *snowflake.Generator, dueInDays InvoiceDueInDays, logger *zap.Logger) *invoiceLogic {
	return &invoiceLogic{
		invoiceRepo:    invoiceRepo,
		counterRepo:    counterRepo,
		loadRepo:       loadRepo,
		auditLogRepo:   auditLogRepo,
		eventPublisher: eventPublisher,
		relationClient: relationClient,
		idGenerator:    idGenerator,
		dueInDays:      dueInDays,
		logger:         logger.Named("InvoiceLogic"),
	}
}

// CreateInvoice creates a draft invoice for a load. The server recomputes the
// tax and payment split from the subtotal; client-supplied aggregates are not
// trusted.
func (l *invoiceLogic) CreateInvoice(ctx context.Context, d *dto.CreateInvoiceRequest) (primitive.ObjectID, error) {
	now := time.Now()

	// 1. Validate inputs.
	positive, err := helper.IsDecimal128Positive(d.GetSubtotal())
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to validate subtotal: %w", err)
	}
	if !positive {
		return primitive.NilObjectID, fmt.Errorf("subtotal must be positive, got %s", d.GetSubtotal().String())
	}
	if d.GetTaxPercent() < 0 || d.GetTaxPercent() > 100 {
		return primitive.NilObjectID, fmt.Errorf("tax percent must be within 0-100, got %d", d.GetTaxPercent())
	}
	if d.GetAdvancePercent() < 0 || d.GetAdvancePercent() > 100 {
		return primitive.NilObjectID, fmt.Errorf("advance percent must be within 0-100, got %d", d.GetAdvancePercent())
	}

	// 2. The load must exist and belong to the invoiced shipper.
	load, err := l.loadRepo.GetLoadByID(ctx, d.GetLoadID())
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to get load for invoice creation: %w", err)
	}
	if load.Shipper != d.GetShipperID() {
		return primitive.NilObjectID, fmt.Errorf("load %s does not belong to shipper %s", load.ID.Hex(), d.GetShipperID().Hex())
	}

	// 3. If line items are present they must sum to the subtotal.
	if items := d.GetLineItems(); len(items) > 0 {
		sum := helper.ZeroDecimal128()
		for _, item := range items {
			sum, err = helper.AddDecimal128(sum, item.Amount)
			if err != nil {
				return primitive.NilObjectID, fmt.Errorf("failed to sum line items: %w", err)
			}
		}
		cmp, err := helper.CompareDecimal128(sum, d.GetSubtotal())
		if err != nil {
			return primitive.NilObjectID, fmt.Errorf("failed to compare line item sum: %w", err)
		}
		if cmp != 0 {
			return primitive.NilObjectID, fmt.Errorf("line item sum (%s) does not match subtotal (%s)", sum.String(), d.GetSubtotal().String())
		}
	}

	// 4. Compute the money fields server-side.
	taxAmount, err := helper.PercentOfDecimal128(d.GetSubtotal(), d.GetTaxPercent())
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to compute tax amount: %w", err)
	}
	totalAmount, err := helper.AddDecimal128(d.GetSubtotal(), taxAmount)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to compute total amount: %w", err)
	}
	advance, err := helper.PercentOfDecimal128(totalAmount, d.GetAdvancePercent())
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to compute advance payment: %w", err)
	}
	balance, err := helper.SubDecimal128(totalAmount, advance)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to compute balance on delivery: %w", err)
	}

	// 5. Generate the invoice number.
	serialID, err := l.idGenerator.GetID()
	if err != nil {
		l.logger.Error("failed to generate snowflake id", zap.Error(err))
		return primitive.NilObjectID, fmt.Errorf("failed to generate invoice number: %w", err)
	}

	invoice := &models.Invoice{
		ID:                    primitive.NewObjectID(),
		InvoiceNumber:         fmt.Sprintf("INV-%d", serialID),
		Load:                  d.GetLoadID(),
		Shipper:               d.GetShipperID(),
		Carrier:               load.Carrier,
		Subtotal:              d.GetSubtotal(),
		TaxAmount:             taxAmount,
		TaxPercent:            d.GetTaxPercent(),
		TotalAmount:           totalAmount,
		LineItems:             d.GetLineItems(),
		AdminPostedPrice:      d.GetAdminPostedPrice(),
		WinningBidAmount:      d.GetWinningBidAmount(),
		AdvancePaymentPercent: d.GetAdvancePercent(),
		AdvancePaymentAmount:  &advance,
		BalanceOnDelivery:     &balance,
		Status:                constants.InvoiceStatusDraft.String(),
		ShipperResponseStatus: constants.ShipperResponsePending.String(),
		CreatedAt:             now,
		UpdatedAt:             now,
		DueDate:               d.GetDueDate(),
		CreatedBy:             d.GetOperator(),
	}

	invoiceID, err := l.invoiceRepo.CreateInvoice(ctx, invoice)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create invoice in repository: %w", err)
	}

	// Audit logging is secondary; failures are logged but do not fail creation.
	if err := l.auditLogRepo.Create(ctx, buildCreateInvoiceAuditLog(d.GetOperator(), invoice)); err != nil {
		l.logger.Error("CreateInvoice: Failed to create audit log", zap.Error(err))
	}

	if l.relationClient != nil {
		if err := l.relationClient.AddUserResourceRole(ctx, d.GetOperator().UserId.Hex(), constants.ResourceInvoice, invoice.ID.Hex(), relation.RoleOwner); err != nil {
			l.logger.Error("CreateInvoice: Failed to add operator resource role", zap.Error(err))
		}
		if err := l.relationClient.AddUserResourceRole(ctx, d.GetShipperID().Hex(), constants.ResourceInvoice, invoice.ID.Hex(), relation.RoleViewer); err != nil {
			l.logger.Error("CreateInvoice: Failed to add shipper resource role", zap.Error(err))
		}
	}

	return invoiceID, nil
}

// SendInvoice transitions a draft invoice to sent and stamps the payment
// window. This method expects to be called within a transaction.
func (l *invoiceLogic) SendInvoice(ctx context.Context, invoiceID primitive.ObjectID, operator *models.User) error {
	invoice, err := l.invoiceRepo.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to get invoice %s: %w", invoiceID.Hex(), err)
	}

	if constants.ParseInvoiceStatus(invoice.Status) != constants.InvoiceStatusDraft {
		return fmt.Errorf("%w: cannot send invoice in status '%s'", ErrInvalidTransition, invoice.Status)
	}

	now := time.Now()
	dueDate := now.AddDate(0, 0, int(l.dueInDays))
	if invoice.DueDate != nil {
		dueDate = *invoice.DueDate
	}

	updates := []repository.UpdateOption{
		repository.WithStatus(constants.InvoiceStatusSent.String()),
		repository.WithSentAt(now),
		repository.WithDueDate(dueDate),
		repository.WithUpdatedBy(operator),
	}
	if err := l.invoiceRepo.UpdateInvoice(ctx, invoiceID, updates...); err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}

	if err := l.auditLogRepo.Create(ctx, buildInvoiceStatusAuditLog(operator, "SEND_INVOICE", invoiceID, invoice.Status, constants.InvoiceStatusSent.String(), invoice.ShipperResponseStatus, invoice.ShipperResponseStatus)); err != nil {
		l.logger.Error("SendInvoice: Failed to create audit log", zap.Error(err))
	}

	sent := *invoice
	sent.Status = constants.InvoiceStatusSent.String()
	if err := l.eventPublisher.PublishInvoiceEvent(ctx, constants.InvoiceEventSent, &sent); err != nil {
		l.logger.Error("SendInvoice: Failed to publish invoice event", zap.Error(err), zap.Stringer("invoiceID", invoiceID))
		return err // Return error to rollback transaction
	}

	return nil
}

// ResendInvoice re-emits the sent notification for an invoice that is already
// out with the shipper. The shipper response axis is left untouched.
func (l *invoiceLogic) ResendInvoice(ctx context.Context, invoiceID primitive.ObjectID, operator *models.User) error {
	invoice, err := l.invoiceRepo.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to get invoice %s: %w", invoiceID.Hex(), err)
	}

	if status := constants.ParseInvoiceStatus(invoice.Status); status != constants.InvoiceStatusSent && status != constants.InvoiceStatusApproved {
		return fmt.Errorf("%w: cannot resend invoice in status '%s'", ErrInvalidTransition, invoice.Status)
	}

	now := time.Now()
	if err := l.invoiceRepo.UpdateInvoice(ctx, invoiceID, repository.WithSentAt(now), repository.WithUpdatedBy(operator)); err != nil {
		return fmt.Errorf("failed to update invoice sent_at: %w", err)
	}

	if err := l.auditLogRepo.Create(ctx, buildInvoiceStatusAuditLog(operator, "RESEND_INVOICE", invoiceID, invoice.Status, invoice.Status, invoice.ShipperResponseStatus, invoice.ShipperResponseStatus)); err != nil {
		l.logger.Error("ResendInvoice: Failed to create audit log", zap.Error(err))
	}

	if err := l.eventPublisher.PublishInvoiceEvent(ctx, constants.InvoiceEventSent, invoice); err != nil {
		l.logger.Error("ResendInvoice: Failed to publish invoice event", zap.Error(err), zap.Stringer("invoiceID", invoiceID))
		return err
	}

	return nil
}

// RecordShipperView marks the invoice as viewed by its shipper. The operation
// is idempotent: repeated views after the first are no-ops, and views never
// move the response axis backwards.
func (l *invoiceLogic) RecordShipperView(ctx context.Context, invoiceID primitive.ObjectID, shipper *models.User) error {
	invoice, err := l.invoiceRepo.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to get invoice %s: %w", invoiceID.Hex(), err)
	}

	if invoice.Shipper != shipper.UserId {
		return fmt.Errorf("%w: user %s does not own invoice %s", ErrUnauthorized, shipper.UserId.Hex(), invoiceID.Hex())
	}

	if constants.ParseInvoiceStatus(invoice.Status) == constants.InvoiceStatusDraft {
		return fmt.Errorf("%w: invoice has not been sent", ErrInvalidTransition)
	}

	// Only the first view transitions pending to viewed.
	if constants.ParseShipperResponseStatus(invoice.ShipperResponseStatus) != constants.ShipperResponsePending {
		return nil
	}

	if err := l.invoiceRepo.UpdateInvoice(ctx, invoiceID, repository.WithShipperResponseStatus(constants.ShipperResponseViewed.String()), repository.WithUpdatedBy(shipper)); err != nil {
		return fmt.Errorf("failed to update shipper response status: %w", err)
	}

	if err := l.auditLogRepo.Create(ctx, buildInvoiceStatusAuditLog(shipper, "VIEW_INVOICE", invoiceID, invoice.Status, invoice.Status, invoice.ShipperResponseStatus, constants.ShipperResponseViewed.String())); err != nil {
		l.logger.Error("RecordShipperView: Failed to create audit log", zap.Error(err))
	}

	viewed := *invoice
	viewed.ShipperResponseStatus = constants.ShipperResponseViewed.String()
	if err := l.eventPublisher.PublishInvoiceEvent(ctx, constants.InvoiceEventViewed, &viewed); err != nil {
		l.logger.Error("RecordShipperView: Failed to publish invoice event", zap.Error(err), zap.Stringer("invoiceID", invoiceID))
		return err
	}

	return nil
}

// AcknowledgeInvoice records the shipper's acceptance of the invoice terms.
// Acknowledging an already acknowledged invoice is a no-op.
func (l *invoiceLogic) AcknowledgeInvoice(ctx context.Context, invoiceID primitive.ObjectID, shipper *models.User) error {
	invoice, err := l.invoiceRepo.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to get invoice %s: %w", invoiceID.Hex(), err)
	}

	if invoice.Shipper != shipper.UserId {
		return fmt.Errorf("%w: user %s does not own invoice %s", ErrUnauthorized, shipper.UserId.Hex(), invoiceID.Hex())
	}

	switch constants.ParseShipperResponseStatus(invoice.ShipperResponseStatus) {
	case constants.ShipperResponsePending, constants.ShipperResponseViewed:
		// Acknowledging an unseen invoice implies the shipper saw it.
	case constants.ShipperResponseAcknowledged:
		return nil
	default:
		return fmt.Errorf("%w: cannot acknowledge invoice with shipper response '%s'", ErrInvalidTransition, invoice.ShipperResponseStatus)
	}

	now := time.Now()
	updates := []repository.UpdateOption{
		repository.WithShipperResponseStatus(constants.ShipperResponseAcknowledged.String()),
		repository.WithAcknowledgedAt(now),
		repository.WithUpdatedBy(shipper),
	}
	if err := l.invoiceRepo.UpdateInvoice(ctx, invoiceID, updates...); err != nil {
		return fmt.Errorf("failed to update shipper response status: %w", err)
	}

	if err := l.auditLogRepo.Create(ctx, buildInvoiceStatusAuditLog(shipper, "ACKNOWLEDGE_INVOICE", invoiceID, invoice.Status, invoice.Status, invoice.ShipperResponseStatus, constants.ShipperResponseAcknowledged.String())); err != nil {
		l.logger.Error("AcknowledgeInvoice: Failed to create audit log", zap.Error(err))
	}

	acked := *invoice
	acked.ShipperResponseStatus = constants.ShipperResponseAcknowledged.String()
	if err := l.eventPublisher.PublishInvoiceEvent(ctx, constants.InvoiceEventAcknowledged, &acked); err != nil {
		l.logger.Error("AcknowledgeInvoice: Failed to publish invoice event", zap.Error(err), zap.Stringer("invoiceID", invoiceID))
		return err
	}

	return nil
}

// MarkInvoicePaid settles the invoice. It requires an explicit confirmation
// flag from the caller and, when a relation client is wired, the accounting
// role on the invoice. Both status axes converge on paid; after this the
// total amount is immutable. This method expects to be called within a
// transaction.
func (l *invoiceLogic) MarkInvoicePaid(ctx context.Context, d *dto.MarkInvoicePaidRequest) error {
	if !d.GetConfirmed() {
		return ErrPaymentNotConfirmed
	}

	if l.relationClient != nil {
		allowed, err := l.relationClient.CheckBySubjectId(ctx, constants.ResourceInvoice, d.GetInvoiceID().Hex(), constants.RelationAccounting, d.GetOperator().UserId.Hex())
		if err != nil {
			return fmt.Errorf("failed to check accounting permission: %w", err)
		}
		if !allowed {
			return fmt.Errorf("%w: user %s lacks the accounting role on invoice %s", ErrUnauthorized, d.GetOperator().UserId.Hex(), d.GetInvoiceID().Hex())
		}
	}

	invoice, err := l.invoiceRepo.GetInvoiceByID(ctx, d.GetInvoiceID())
	if err != nil {
		return fmt.Errorf("failed to get invoice %s: %w", d.GetInvoiceID().Hex(), err)
	}

	status := constants.ParseInvoiceStatus(invoice.Status)
	if status != constants.InvoiceStatusSent && status != constants.InvoiceStatusApproved {
		return fmt.Errorf("%w: cannot mark invoice paid in status '%s'", ErrInvalidTransition, invoice.Status)
	}

	// A shipper who acknowledged and then countered may still be paid out
	// while the counter is pending, so the stamp counts as much as the
	// current response state.
	response := constants.ParseShipperResponseStatus(invoice.ShipperResponseStatus)
	if response != constants.ShipperResponseAcknowledged && invoice.AcknowledgedAt == nil {
		return fmt.Errorf("%w: shipper response is '%s'", ErrNotAcknowledged, invoice.ShipperResponseStatus)
	}

	now := time.Now()
	updates := []repository.UpdateOption{
		repository.WithStatus(constants.InvoiceStatusPaid.String()),
		repository.WithShipperResponseStatus(constants.ShipperResponsePaid.String()),
		repository.WithPaidAt(now),
		repository.WithUpdatedBy(d.GetOperator()),
	}
	if err := l.invoiceRepo.UpdateInvoice(ctx, d.GetInvoiceID(), updates...); err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}

	paid := *invoice
	paid.Status = constants.InvoiceStatusPaid.String()
	paid.ShipperResponseStatus = constants.ShipperResponsePaid.String()
	paid.PaidAt = &now

	if err := l.auditLogRepo.Create(ctx, buildMarkPaidAuditLog(d.GetOperator(), invoice, &paid)); err != nil {
		l.logger.Error("MarkInvoicePaid: Failed to create audit log", zap.Error(err))
	}

	if err := l.eventPublisher.PublishInvoiceEvent(ctx, constants.InvoiceEventPaid, &paid); err != nil {
		l.logger.Error("MarkInvoicePaid: Failed to publish invoice event", zap.Error(err), zap.Stringer("invoiceID", d.GetInvoiceID()))
		return err
	}

	return nil
}

func (l *invoiceLogic) GetInvoice(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	return l.invoiceRepo.GetInvoiceByID(ctx, id)
}

// GetInvoiceByNumber resolves a human-readable invoice number such as
// "INV-20260901-000042" to the stored invoice.
func (l *invoiceLogic) GetInvoiceByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	return l.invoiceRepo.GetInvoiceByNumber(ctx, number)
}

// GetInvoiceDetails returns the admin-facing invoice view: the invoice, its
// load, the full counter-offer history and the computed financial breakdown.
func (l *invoiceLogic) GetInvoiceDetails(ctx context.Context, id primitive.ObjectID) (*dto.InvoiceDetails, error) {
	invoice, err := l.invoiceRepo.GetInvoiceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %s: %w", id.Hex(), err)
	}

	var (
		load     *models.Load
		counters []*models.CounterOffer
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		load, err = l.loadRepo.GetLoadByID(gCtx, invoice.Load)
		if err != nil {
			// A missing load degrades the breakdown but should not hide the invoice.
			l.logger.Warn("GetInvoiceDetails: failed to get load", zap.Error(err), zap.Stringer("loadID", invoice.Load))
			load = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		counters, err = l.counterRepo.GetCounterOffersByInvoice(gCtx, invoice.ID)
		if err != nil {
			return fmt.Errorf("failed to get counter offers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	breakdown, err := BuildFinancialBreakdown(invoice, load)
	if err != nil {
		return nil, fmt.Errorf("failed to build financial breakdown: %w", err)
	}

	details := &dto.InvoiceDetails{
		Invoice:       invoice,
		Load:          load,
		CounterOffers: counters,
		Breakdown:     breakdown,
		Overdue:       l.IsInvoiceOverdue(invoice, time.Now()),
	}
	if latest := dto.LatestCounterOffer(counters); latest != nil {
		details.LatestCounterAmount = &latest.Amount
		details.LatestCounterStatus = latest.Status
	}
	return details, nil
}

// GetInvoiceForShipper returns the shipper-facing projection of an invoice,
// but only if the requesting shipper owns it.
func (l *invoiceLogic) GetInvoiceForShipper(ctx context.Context, id, shipperID primitive.ObjectID) (*dto.ShipperInvoice, error) {
	invoice, err := l.invoiceRepo.GetInvoiceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %s: %w", id.Hex(), err)
	}

	if invoice.Shipper != shipperID {
		return nil, fmt.Errorf("%w: user %s does not own invoice %s", ErrUnauthorized, shipperID.Hex(), id.Hex())
	}

	counters, err := l.counterRepo.GetCounterOffersByInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get counter offers: %w", err)
	}

	view := dto.NewShipperInvoice(invoice)
	view.CounterOffers = counters
	view.Overdue = l.IsInvoiceOverdue(invoice, time.Now())
	if latest := dto.LatestCounterOffer(counters); latest != nil {
		view.LatestCounterAmount = &latest.Amount
		view.LatestCounterStatus = latest.Status
	}
	return view, nil
}

// ListInvoices returns a page of invoices matching the given filter.
func (l *invoiceLogic) ListInvoices(ctx context.Context, params *repository.GetInvoicesParams, pageReq *pagination.PageRequest) (*pagination.PageResult, error) {
	params.Limit = pageReq.GetLimit()
	params.Offset = pageReq.GetOffset()
	if params.OverdueOnly && params.AsOf.IsZero() {
		params.AsOf = time.Now()
	}

	invoices, total, err := l.invoiceRepo.GetInvoices(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	return pagination.NewPageResult(invoices, total, pageReq), nil
}

// IsInvoiceOverdue reports whether the invoice is past its payment window.
// Overdue is a read-time predicate over status, due date and payment, never a
// stored status of its own.
func (l *invoiceLogic) IsInvoiceOverdue(invoice *models.Invoice, asOf time.Time) bool {
	if constants.ParseInvoiceStatus(invoice.Status) != constants.InvoiceStatusSent {
		return false
	}
	if invoice.DueDate == nil || invoice.PaidAt != nil {
		return false
	}
	return invoice.DueDate.Before(asOf)
}

var InvoiceLogicProviderSet = wire.NewSet(NewInvoiceLogic, wire.Bind(new(InvoiceLogic), new(*invoiceLogic)))
