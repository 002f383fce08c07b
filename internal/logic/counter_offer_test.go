package logic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"loadsmart_billing/internal/constants"
	"loadsmart_billing/internal/dao/mongodb"
	"loadsmart_billing/internal/dao/repository"
	"loadsmart_billing/internal/dto"
	"loadsmart_billing/internal/dao/fields"
	"loadsmart_billing/internal/models"
)

func newTestCounterOfferLogic(counterRepo *mockCounterOfferRepository, invoiceRepo *mockInvoiceRepository, auditLogRepo *mockAuditLogRepository, outboxRepo *mockOutboxRepository) *counterOfferLogic {
	return &counterOfferLogic{
		counterRepo:  counterRepo,
		invoiceRepo:  invoiceRepo,
		auditLogRepo: auditLogRepo,
		eventPublisher: &InvoiceEventPublisher{
			outboxRepo:        outboxRepo,
			invoiceEventTopic: InvoiceEventTopic("invoices"),
		},
		logger: zap.NewNop(),
	}
}

func TestCounterOfferLogic_ProposeCounter(t *testing.T) {
	shipper := &models.User{UserId: primitive.NewObjectID(), Name: "Meera", Role: constants.UserRoleShipper}
	invoiceID := primitive.NewObjectID()

	ackedInvoice := func() *models.Invoice {
		return &models.Invoice{
			ID:                    invoiceID,
			Shipper:               shipper.UserId,
			Status:                constants.InvoiceStatusSent.String(),
			ShipperResponseStatus: constants.ShipperResponseAcknowledged.String(),
			TotalAmount:           mustDecimal(t, "53100"),
		}
	}

	t.Run("Success", func(t *testing.T) {
		counterRepo := newMockCounterOfferRepository()
		invoiceRepo := newMockInvoiceRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestCounterOfferLogic(counterRepo, invoiceRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(ackedInvoice(), nil).Once()
		counterRepo.On("GetPendingCounterOfferByInvoice", mock.Anything, invoiceID).Return(nil, mongodb.ErrNotFound).Once()
		counterRepo.On("CountCounterOffersByInvoice", mock.Anything, invoiceID).Return(int64(2), nil).Once()

		var created *models.CounterOffer
		counterRepo.On("CreateCounterOffer", mock.Anything, mock.MatchedBy(func(c *models.CounterOffer) bool {
			created = c
			return true
		})).Return(primitive.NewObjectID(), nil).Once()

		var setFields bson.M
		invoiceRepo.On("UpdateInvoice", mock.Anything, invoiceID, mock.Anything).
			Run(func(args mock.Arguments) {
				setFields = applyUpdateOptions(args.Get(2).([]repository.UpdateOption))
			}).
			Return(nil).Once()
		auditLogRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.AuditLog")).Return(nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		req := dto.NewProposeCounterRequest(invoiceID, mustDecimal(t, "50000"), "fuel surcharge too high", shipper)
		counterID, err := l.ProposeCounter(context.Background(), req)

		require.NoError(t, err)
		assert.False(t, counterID.IsZero())
		require.NotNil(t, created)
		// The third counter on this invoice gets serial 3.
		assert.Equal(t, 3, created.Serial)
		assert.Equal(t, constants.CounterOfferPartyShipper.String(), created.ProposedBy)
		assert.Equal(t, constants.CounterOfferStatusPending.String(), created.Status)
		assert.Equal(t, constants.ShipperResponseCountered.String(), setFields[fields.FieldInvoiceShipperResponse])
		assert.Contains(t, setFields, fields.FieldInvoiceCounteredAt)

		counterRepo.AssertExpectations(t)
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("AdminRecordsCounterOnBehalfOfShipper", func(t *testing.T) {
		counterRepo := newMockCounterOfferRepository()
		invoiceRepo := newMockInvoiceRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestCounterOfferLogic(counterRepo, invoiceRepo, auditLogRepo, outboxRepo)

		operator := &models.User{UserId: primitive.NewObjectID(), Name: "Dana", Role: constants.UserRoleAdmin}

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(ackedInvoice(), nil).Once()
		counterRepo.On("GetPendingCounterOfferByInvoice", mock.Anything, invoiceID).Return(nil, mongodb.ErrNotFound).Once()
		counterRepo.On("CountCounterOffersByInvoice", mock.Anything, invoiceID).Return(int64(0), nil).Once()

		var created *models.CounterOffer
		counterRepo.On("CreateCounterOffer", mock.Anything, mock.MatchedBy(func(c *models.CounterOffer) bool {
			created = c
			return true
		})).Return(primitive.NewObjectID(), nil).Once()
		invoiceRepo.On("UpdateInvoice", mock.Anything, invoiceID, mock.Anything).Return(nil).Once()
		auditLogRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.AuditLog")).Return(nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		req := dto.NewProposeCounterRequest(invoiceID, mustDecimal(t, "51000"), "agreed by phone", operator).
			WithProposedBy(constants.CounterOfferPartyAdmin)
		_, err := l.ProposeCounter(context.Background(), req)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, constants.CounterOfferPartyAdmin.String(), created.ProposedBy)
	})

	t.Run("SecondPendingCounterRefused", func(t *testing.T) {
		counterRepo := newMockCounterOfferRepository()
		invoiceRepo := newMockInvoiceRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestCounterOfferLogic(counterRepo, invoiceRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(ackedInvoice(), nil).Once()
		counterRepo.On("GetPendingCounterOfferByInvoice", mock.Anything, invoiceID).Return(&models.CounterOffer{
			ID:      primitive.NewObjectID(),
			Invoice: invoiceID,
			Status:  constants.CounterOfferStatusPending.String(),
		}, nil).Once()

		req := dto.NewProposeCounterRequest(invoiceID, mustDecimal(t, "48000"), "", shipper)
		_, err := l.ProposeCounter(context.Background(), req)

		assert.ErrorIs(t, err, ErrCounterAlreadyPending)
		counterRepo.AssertNotCalled(t, "CreateCounterOffer", mock.Anything, mock.Anything)
	})

	t.Run("ViewedShipperMayCounter", func(t *testing.T) {
		counterRepo := newMockCounterOfferRepository()
		invoiceRepo := newMockInvoiceRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestCounterOfferLogic(counterRepo, invoiceRepo, auditLogRepo, outboxRepo)

		// Acknowledgement is not a prerequisite for countering.
		inv := ackedInvoice()
		inv.ShipperResponseStatus = constants.ShipperResponseViewed.String()
		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(inv, nil).Once()
		counterRepo.On("GetPendingCounterOfferByInvoice", mock.Anything, invoiceID).Return(nil, mongodb.ErrNotFound).Once()
		counterRepo.On("CountCounterOffersByInvoice", mock.Anything, invoiceID).Return(int64(0), nil).Once()
		counterRepo.On("CreateCounterOffer", mock.Anything, mock.Anything).Return(primitive.NewObjectID(), nil).Once()
		invoiceRepo.On("UpdateInvoice", mock.Anything, invoiceID, mock.Anything).Return(nil).Once()
		auditLogRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.AuditLog")).Return(nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		req := dto.NewProposeCounterRequest(invoiceID, mustDecimal(t, "48000"), "", shipper)
		counterID, err := l.ProposeCounter(context.Background(), req)

		require.NoError(t, err)
		assert.False(t, counterID.IsZero())
	})

	t.Run("NotSent", func(t *testing.T) {
		counterRepo := newMockCounterOfferRepository()
		invoiceRepo := newMockInvoiceRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestCounterOfferLogic(counterRepo, invoiceRepo, auditLogRepo, outboxRepo)

		inv := ackedInvoice()
		inv.Status = constants.InvoiceStatusPaid.String()
		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(inv, nil).Once()

		req := dto.NewProposeCounterRequest(invoiceID, mustDecimal(t, "48000"), "", shipper)
		_, err := l.ProposeCounter(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("NotOwner", func(t *testing.T) {
		counterRepo := newMockCounterOfferRepository()
		invoiceRepo := newMockInvoiceRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestCounterOfferLogic(counterRepo, invoiceRepo, auditLogRepo, outboxRepo)

		inv := ackedInvoice()
		inv.Shipper = primitive.NewObjectID()
		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(inv, nil).Once()

		req := dto.NewProposeCounterRequest(invoiceID, mustDecimal(t, "48000"), "", shipper)
		_, err := l.ProposeCounter(context.Background(), req)

		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		counterRepo := newMockCounterOfferRepository()
		invoiceRepo := newMockInvoiceRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestCounterOfferLogic(counterRepo, invoiceRepo, auditLogRepo, outboxRepo)

		req := dto.NewProposeCounterRequest(invoiceID, mustDecimal(t, "0"), "", shipper)
		_, err := l.ProposeCounter(context.Background(), req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "counter amount must be positive")
		invoiceRepo.AssertNotCalled(t, "GetInvoiceByID", mock.Anything, mock.Anything)
	})
}

func TestCounterOfferLogic_ResolveCounter(t *testing.T) {
	operator := &models.User{UserId: primitive.NewObjectID(), Name: "Priya", Role: constants.UserRoleAdmin}
	invoiceID := primitive.NewObjectID()
	counterID := primitive.NewObjectID()

	pendingCounter := func(amount string) *models.CounterOffer {
		return &models.CounterOffer{
			ID:         counterID,
			Invoice:    invoiceID,
			Serial:     1,
			Amount:     mustDecimal(t, amount),
			ProposedBy: constants.CounterOfferPartyShipper.String(),
			Status:     constants.CounterOfferStatusPending.String(),
			CreatedAt:  time.Now(),
		}
	}

	t.Run("AcceptRewritesMoney", func(t *testing.T) {
		counterRepo := newMockCounterOfferRepository()
		invoiceRepo := newMockInvoiceRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestCounterOfferLogic(counterRepo, invoiceRepo, auditLogRepo, outboxRepo)

		acked := time.Now().Add(-time.Hour)
		counterRepo.On("GetCounterOfferByID", mock.Anything, counterID).Return(pendingCounter("50000"), nil).Once()
		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:                    invoiceID,
			Status:                constants.InvoiceStatusSent.String(),
			ShipperResponseStatus: constants.ShipperResponseCountered.String(),
			Subtotal:              mustDecimal(t, "45000"),
			TaxAmount:             mustDecimal(t, "8100"),
			TotalAmount:           mustDecimal(t, "53100"),
			TaxPercent:            18,
			AdvancePaymentPercent: 20,
			AcknowledgedAt:        &acked,
		}, nil).Once()

		var counterFields bson.M
		counterRepo.On("UpdateCounterOffer", mock.Anything, counterID, mock.Anything).
			Run(func(args mock.Arguments) {
				counterFields = applyUpdateOptions(args.Get(2).([]repository.UpdateOption))
			}).
			Return(nil).Once()

		var invoiceFields bson.M
		invoiceRepo.On("UpdateInvoice", mock.Anything, invoiceID, mock.Anything).
			Run(func(args mock.Arguments) {
				invoiceFields = applyUpdateOptions(args.Get(2).([]repository.UpdateOption))
			}).
			Return(nil).Once()
		auditLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		req := dto.NewResolveCounterRequest(counterID, true, "meeting you halfway", operator)
		outcome, err := l.ResolveCounter(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, constants.CounterOfferStatusAccepted.String(), counterFields[fields.FieldStatus])
		assert.Equal(t, "meeting you halfway", counterFields[fields.FieldCounterOfferResponseNote])

		// 50000 at 18% tax backs out to 42372.88 + 7627.12, and the 20%
		// advance splits 10000 up front against 40000 on delivery.
		assertDecimalEqual(t, "50000", invoiceFields[fields.FieldInvoiceTotalAmount].(primitive.Decimal128))
		assertDecimalEqual(t, "42372.88", invoiceFields[fields.FieldInvoiceSubtotal].(primitive.Decimal128))
		assertDecimalEqual(t, "7627.12", invoiceFields[fields.FieldInvoiceTaxAmount].(primitive.Decimal128))
		assertDecimalEqual(t, "10000", invoiceFields[fields.FieldInvoiceAdvanceAmount].(primitive.Decimal128))
		assertDecimalEqual(t, "40000", invoiceFields[fields.FieldInvoiceBalance].(primitive.Decimal128))
		assert.Equal(t, constants.ShipperResponseAcknowledged.String(), invoiceFields[fields.FieldInvoiceShipperResponse])

		require.NotNil(t, outcome)
		assert.Equal(t, constants.CounterOfferStatusAccepted.String(), outcome.CounterOffer.Status)
		assertDecimalEqual(t, "50000", outcome.Invoice.TotalAmount)
	})

	t.Run("RejectKeepsMoney", func(t *testing.T) {
		counterRepo := newMockCounterOfferRepository()
		invoiceRepo := newMockInvoiceRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestCounterOfferLogic(counterRepo, invoiceRepo, auditLogRepo, outboxRepo)

		acked := time.Now().Add(-time.Hour)
		counterRepo.On("GetCounterOfferByID", mock.Anything, counterID).Return(pendingCounter("48000"), nil).Once()
		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:                    invoiceID,
			Status:                constants.InvoiceStatusSent.String(),
			ShipperResponseStatus: constants.ShipperResponseCountered.String(),
			TotalAmount:           mustDecimal(t, "53100"),
			AcknowledgedAt:        &acked,
		}, nil).Once()
		counterRepo.On("UpdateCounterOffer", mock.Anything, counterID, mock.Anything).Return(nil).Once()

		var invoiceFields bson.M
		invoiceRepo.On("UpdateInvoice", mock.Anything, invoiceID, mock.Anything).
			Run(func(args mock.Arguments) {
				invoiceFields = applyUpdateOptions(args.Get(2).([]repository.UpdateOption))
			}).
			Return(nil).Once()
		auditLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		req := dto.NewResolveCounterRequest(counterID, false, "rate is already below market", operator)
		outcome, err := l.ResolveCounter(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, constants.ShipperResponseAcknowledged.String(), invoiceFields[fields.FieldInvoiceShipperResponse])
		assert.NotContains(t, invoiceFields, fields.FieldInvoiceTotalAmount)
		assert.Equal(t, constants.CounterOfferStatusRejected.String(), outcome.CounterOffer.Status)
		assertDecimalEqual(t, "53100", outcome.Invoice.TotalAmount)
	})

	t.Run("RejectFallsBackToViewed", func(t *testing.T) {
		counterRepo := newMockCounterOfferRepository()
		invoiceRepo := newMockInvoiceRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestCounterOfferLogic(counterRepo, invoiceRepo, auditLogRepo, outboxRepo)

		counterRepo.On("GetCounterOfferByID", mock.Anything, counterID).Return(pendingCounter("48000"), nil).Once()
		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:                    invoiceID,
			Status:                constants.InvoiceStatusSent.String(),
			ShipperResponseStatus: constants.ShipperResponseCountered.String(),
			TotalAmount:           mustDecimal(t, "53100"),
		}, nil).Once()
		counterRepo.On("UpdateCounterOffer", mock.Anything, counterID, mock.Anything).Return(nil).Once()

		var invoiceFields bson.M
		invoiceRepo.On("UpdateInvoice", mock.Anything, invoiceID, mock.Anything).
			Run(func(args mock.Arguments) {
				invoiceFields = applyUpdateOptions(args.Get(2).([]repository.UpdateOption))
			}).
			Return(nil).Once()
		auditLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		req := dto.NewResolveCounterRequest(counterID, false, "", operator)
		_, err := l.ResolveCounter(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, constants.ShipperResponseViewed.String(), invoiceFields[fields.FieldInvoiceShipperResponse])
	})

	t.Run("AlreadyResolved", func(t *testing.T) {
		counterRepo := newMockCounterOfferRepository()
		invoiceRepo := newMockInvoiceRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestCounterOfferLogic(counterRepo, invoiceRepo, auditLogRepo, outboxRepo)

		resolved := pendingCounter("48000")
		resolved.Status = constants.CounterOfferStatusRejected.String()
		counterRepo.On("GetCounterOfferByID", mock.Anything, counterID).Return(resolved, nil).Once()

		req := dto.NewResolveCounterRequest(counterID, true, "", operator)
		_, err := l.ResolveCounter(context.Background(), req)

		assert.ErrorIs(t, err, ErrCounterAlreadyResolved)
		invoiceRepo.AssertNotCalled(t, "GetInvoiceByID", mock.Anything, mock.Anything)
	})

	t.Run("PaidInvoiceIsImmutable", func(t *testing.T) {
		counterRepo := newMockCounterOfferRepository()
		invoiceRepo := newMockInvoiceRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestCounterOfferLogic(counterRepo, invoiceRepo, auditLogRepo, outboxRepo)

		counterRepo.On("GetCounterOfferByID", mock.Anything, counterID).Return(pendingCounter("48000"), nil).Once()
		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:     invoiceID,
			Status: constants.InvoiceStatusPaid.String(),
		}, nil).Once()

		req := dto.NewResolveCounterRequest(counterID, true, "", operator)
		_, err := l.ResolveCounter(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidTransition)
		counterRepo.AssertNotCalled(t, "UpdateCounterOffer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("GetCounterOfferFails", func(t *testing.T) {
		counterRepo := newMockCounterOfferRepository()
		invoiceRepo := newMockInvoiceRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestCounterOfferLogic(counterRepo, invoiceRepo, auditLogRepo, outboxRepo)

		counterRepo.On("GetCounterOfferByID", mock.Anything, counterID).Return(nil, errors.New("connection reset")).Once()

		req := dto.NewResolveCounterRequest(counterID, true, "", operator)
		_, err := l.ResolveCounter(context.Background(), req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})
}
