package logic

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"loadsmart_billing/internal/constants"
	"loadsmart_billing/internal/dao/fields"
	"loadsmart_billing/internal/dao/repository"
	"loadsmart_billing/internal/dto"
	"loadsmart_billing/internal/helper"
	"loadsmart_billing/internal/models"
	"loadsmart_billing/pkg/pagination"
	"loadsmart_billing/pkg/snowflake"
)

func mustDecimal(t *testing.T, s string) primitive.Decimal128 {
	t.Helper()
	d, err := primitive.ParseDecimal128(s)
	require.NoError(t, err)
	return d
}

func assertDecimalEqual(t *testing.T, want string, got primitive.Decimal128) {
	t.Helper()
	cmp, err := helper.CompareDecimal128(mustDecimal(t, want), got)
	require.NoError(t, err)
	assert.Zero(t, cmp, "expected %s, got %s", want, got.String())
}

func applyUpdateOptions(opts []repository.UpdateOption) bson.M {
	u := repository.NewUpdateOptions()
	for _, o := range opts {
		o(u)
	}
	return u.SetFields
}

func newTestInvoiceLogic(invoiceRepo *mockInvoiceRepository, counterRepo *mockCounterOfferRepository, loadRepo *mockLoadRepository, auditLogRepo *mockAuditLogRepository, outboxRepo *mockOutboxRepository) *invoiceLogic {
	idGen, err := snowflake.NewGenerator(1)
	if err != nil {
		panic(err)
	}
	return &invoiceLogic{
		invoiceRepo:  invoiceRepo,
		counterRepo:  counterRepo,
		loadRepo:     loadRepo,
		auditLogRepo: auditLogRepo,
		eventPublisher: &InvoiceEventPublisher{
			outboxRepo:        outboxRepo,
			invoiceEventTopic: InvoiceEventTopic("invoices"),
		},
		relationClient: nil,
		idGenerator:    idGen,
		dueInDays:      30,
		logger:         zap.NewNop(),
	}
}

func TestInvoiceLogic_CreateInvoice(t *testing.T) {
	operator := &models.User{
		UserId: primitive.NewObjectID(),
		Name:   "Priya",
		Email:  "priya@loadsmart.in",
		Role:   constants.UserRoleAdmin,
	}
	shipperID := primitive.NewObjectID()
	loadID := primitive.NewObjectID()

	t.Run("Success", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		loadRepo.On("GetLoadByID", mock.Anything, loadID).Return(&models.Load{
			ID:      loadID,
			Shipper: shipperID,
		}, nil).Once()

		var created *models.Invoice
		invoiceRepo.On("CreateInvoice", mock.Anything, mock.MatchedBy(func(inv *models.Invoice) bool {
			created = inv
			return true
		})).Return(primitive.NewObjectID(), nil).Once()

		auditLogRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.AuditLog")).Return(nil).Once()

		req := dto.NewCreateInvoiceRequest(loadID, shipperID, mustDecimal(t, "45000"), 18, nil, operator).
			WithAdvancePercent(30)

		invoiceID, err := l.CreateInvoice(context.Background(), req)

		require.NoError(t, err)
		assert.False(t, invoiceID.IsZero())
		require.NotNil(t, created)
		assert.True(t, strings.HasPrefix(created.InvoiceNumber, "INV-"))
		assert.Equal(t, constants.InvoiceStatusDraft.String(), created.Status)
		assert.Equal(t, constants.ShipperResponsePending.String(), created.ShipperResponseStatus)
		assertDecimalEqual(t, "45000", created.Subtotal)
		assertDecimalEqual(t, "8100", created.TaxAmount)
		assertDecimalEqual(t, "53100", created.TotalAmount)
		require.NotNil(t, created.AdvancePaymentAmount)
		assertDecimalEqual(t, "15930", *created.AdvancePaymentAmount)
		require.NotNil(t, created.BalanceOnDelivery)
		assertDecimalEqual(t, "37170", *created.BalanceOnDelivery)

		invoiceRepo.AssertExpectations(t)
		loadRepo.AssertExpectations(t)
		auditLogRepo.AssertExpectations(t)
	})

	t.Run("AdvanceSplit", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		loadRepo.On("GetLoadByID", mock.Anything, loadID).Return(&models.Load{
			ID:      loadID,
			Shipper: shipperID,
		}, nil).Once()

		var created *models.Invoice
		invoiceRepo.On("CreateInvoice", mock.Anything, mock.MatchedBy(func(inv *models.Invoice) bool {
			created = inv
			return true
		})).Return(primitive.NewObjectID(), nil).Once()
		auditLogRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.AuditLog")).Return(nil).Once()

		// 100000 total with a 30% advance splits 30000 up front, 70000 on delivery.
		req := dto.NewCreateInvoiceRequest(loadID, shipperID, mustDecimal(t, "100000"), 0, nil, operator).
			WithAdvancePercent(30)

		_, err := l.CreateInvoice(context.Background(), req)

		require.NoError(t, err)
		require.NotNil(t, created)
		assertDecimalEqual(t, "100000", created.TotalAmount)
		assertDecimalEqual(t, "30000", *created.AdvancePaymentAmount)
		assertDecimalEqual(t, "70000", *created.BalanceOnDelivery)
	})

	t.Run("LoadNotOwnedByShipper", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		loadRepo.On("GetLoadByID", mock.Anything, loadID).Return(&models.Load{
			ID:      loadID,
			Shipper: primitive.NewObjectID(),
		}, nil).Once()

		req := dto.NewCreateInvoiceRequest(loadID, shipperID, mustDecimal(t, "45000"), 18, nil, operator)

		_, err := l.CreateInvoice(context.Background(), req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not belong to shipper")
		invoiceRepo.AssertNotCalled(t, "CreateInvoice", mock.Anything, mock.Anything)
	})

	t.Run("LineItemSumMismatch", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		loadRepo.On("GetLoadByID", mock.Anything, loadID).Return(&models.Load{
			ID:      loadID,
			Shipper: shipperID,
		}, nil).Once()

		items := []*models.LineItem{
			{Description: "Line haul", Quantity: 1, UnitPrice: mustDecimal(t, "40000"), Amount: mustDecimal(t, "40000")},
			{Description: "Detention", Quantity: 1, UnitPrice: mustDecimal(t, "1000"), Amount: mustDecimal(t, "1000")},
		}
		req := dto.NewCreateInvoiceRequest(loadID, shipperID, mustDecimal(t, "45000"), 18, items, operator)

		_, err := l.CreateInvoice(context.Background(), req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not match subtotal")
	})

	t.Run("InvalidTaxPercent", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		req := dto.NewCreateInvoiceRequest(loadID, shipperID, mustDecimal(t, "45000"), 101, nil, operator)

		_, err := l.CreateInvoice(context.Background(), req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "tax percent")
	})

	t.Run("NonPositiveSubtotal", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		req := dto.NewCreateInvoiceRequest(loadID, shipperID, mustDecimal(t, "0"), 18, nil, operator)

		_, err := l.CreateInvoice(context.Background(), req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "subtotal must be positive")
	})
}

func TestInvoiceLogic_SendInvoice(t *testing.T) {
	operator := &models.User{UserId: primitive.NewObjectID(), Name: "Priya"}
	invoiceID := primitive.NewObjectID()

	t.Run("Success", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:                    invoiceID,
			InvoiceNumber:         "INV-1001",
			Shipper:               primitive.NewObjectID(),
			Status:                constants.InvoiceStatusDraft.String(),
			ShipperResponseStatus: constants.ShipperResponsePending.String(),
			TotalAmount:           mustDecimal(t, "53100"),
		}, nil).Once()

		var setFields bson.M
		invoiceRepo.On("UpdateInvoice", mock.Anything, invoiceID, mock.Anything).
			Run(func(args mock.Arguments) {
				setFields = applyUpdateOptions(args.Get(2).([]repository.UpdateOption))
			}).
			Return(nil).Once()

		auditLogRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.AuditLog")).Return(nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.MatchedBy(func(msg *models.OutboxMessage) bool {
			return msg.Topic == "invoices" && strings.Contains(msg.Payload, string(constants.InvoiceEventSent))
		})).Return(nil).Once()

		err := l.SendInvoice(context.Background(), invoiceID, operator)

		require.NoError(t, err)
		assert.Equal(t, constants.InvoiceStatusSent.String(), setFields[fields.FieldStatus])
		assert.Contains(t, setFields, fields.FieldInvoiceSentAt)

		// The default payment window lands thirty days out.
		dueDate, ok := setFields[fields.FieldInvoiceDueDate].(time.Time)
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), dueDate, time.Minute)

		invoiceRepo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
	})

	t.Run("ExplicitDueDateKept", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		explicit := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:      invoiceID,
			Status:  constants.InvoiceStatusDraft.String(),
			DueDate: &explicit,
		}, nil).Once()

		var setFields bson.M
		invoiceRepo.On("UpdateInvoice", mock.Anything, invoiceID, mock.Anything).
			Run(func(args mock.Arguments) {
				setFields = applyUpdateOptions(args.Get(2).([]repository.UpdateOption))
			}).
			Return(nil).Once()
		auditLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		err := l.SendInvoice(context.Background(), invoiceID, operator)

		require.NoError(t, err)
		assert.Equal(t, explicit, setFields[fields.FieldInvoiceDueDate])
	})

	t.Run("AlreadySent", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:     invoiceID,
			Status: constants.InvoiceStatusSent.String(),
		}, nil).Once()

		err := l.SendInvoice(context.Background(), invoiceID, operator)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Contains(t, err.Error(), "sent")
		invoiceRepo.AssertNotCalled(t, "UpdateInvoice", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PublishFailureSurfaces", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:     invoiceID,
			Status: constants.InvoiceStatusDraft.String(),
		}, nil).Once()
		invoiceRepo.On("UpdateInvoice", mock.Anything, invoiceID, mock.Anything).Return(nil).Once()
		auditLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("outbox unavailable")).Once()

		err := l.SendInvoice(context.Background(), invoiceID, operator)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "outbox unavailable")
	})
}

func TestInvoiceLogic_ResendInvoice(t *testing.T) {
	operator := &models.User{UserId: primitive.NewObjectID()}
	invoiceID := primitive.NewObjectID()

	t.Run("Success", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:                    invoiceID,
			Status:                constants.InvoiceStatusSent.String(),
			ShipperResponseStatus: constants.ShipperResponseViewed.String(),
		}, nil).Once()
		invoiceRepo.On("UpdateInvoice", mock.Anything, invoiceID, mock.Anything).Return(nil).Once()
		auditLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		err := l.ResendInvoice(context.Background(), invoiceID, operator)

		require.NoError(t, err)
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("ApprovedCanBeResent", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:                    invoiceID,
			Status:                constants.InvoiceStatusApproved.String(),
			ShipperResponseStatus: constants.ShipperResponseAcknowledged.String(),
		}, nil).Once()
		invoiceRepo.On("UpdateInvoice", mock.Anything, invoiceID, mock.Anything).Return(nil).Once()
		auditLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		err := l.ResendInvoice(context.Background(), invoiceID, operator)

		require.NoError(t, err)
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("NotSent", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:     invoiceID,
			Status: constants.InvoiceStatusDraft.String(),
		}, nil).Once()

		err := l.ResendInvoice(context.Background(), invoiceID, operator)

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestInvoiceLogic_RecordShipperView(t *testing.T) {
	shipper := &models.User{UserId: primitive.NewObjectID(), Name: "Meera", Role: constants.UserRoleShipper}
	invoiceID := primitive.NewObjectID()

	t.Run("FirstViewTransitions", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:                    invoiceID,
			Shipper:               shipper.UserId,
			Status:                constants.InvoiceStatusSent.String(),
			ShipperResponseStatus: constants.ShipperResponsePending.String(),
		}, nil).Once()

		var setFields bson.M
		invoiceRepo.On("UpdateInvoice", mock.Anything, invoiceID, mock.Anything).
			Run(func(args mock.Arguments) {
				setFields = applyUpdateOptions(args.Get(2).([]repository.UpdateOption))
			}).
			Return(nil).Once()
		auditLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		err := l.RecordShipperView(context.Background(), invoiceID, shipper)

		require.NoError(t, err)
		assert.Equal(t, constants.ShipperResponseViewed.String(), setFields[fields.FieldInvoiceShipperResponse])
	})

	t.Run("RepeatViewIsNoOp", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:                    invoiceID,
			Shipper:               shipper.UserId,
			Status:                constants.InvoiceStatusSent.String(),
			ShipperResponseStatus: constants.ShipperResponseAcknowledged.String(),
		}, nil).Once()

		err := l.RecordShipperView(context.Background(), invoiceID, shipper)

		require.NoError(t, err)
		invoiceRepo.AssertNotCalled(t, "UpdateInvoice", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotOwner", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:      invoiceID,
			Shipper: primitive.NewObjectID(),
			Status:  constants.InvoiceStatusSent.String(),
		}, nil).Once()

		err := l.RecordShipperView(context.Background(), invoiceID, shipper)

		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("DraftNotVisible", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:      invoiceID,
			Shipper: shipper.UserId,
			Status:  constants.InvoiceStatusDraft.String(),
		}, nil).Once()

		err := l.RecordShipperView(context.Background(), invoiceID, shipper)

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestInvoiceLogic_AcknowledgeInvoice(t *testing.T) {
	shipper := &models.User{UserId: primitive.NewObjectID(), Role: constants.UserRoleShipper}
	invoiceID := primitive.NewObjectID()

	t.Run("Success", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:                    invoiceID,
			Shipper:               shipper.UserId,
			Status:                constants.InvoiceStatusSent.String(),
			ShipperResponseStatus: constants.ShipperResponseViewed.String(),
		}, nil).Once()

		var setFields bson.M
		invoiceRepo.On("UpdateInvoice", mock.Anything, invoiceID, mock.Anything).
			Run(func(args mock.Arguments) {
				setFields = applyUpdateOptions(args.Get(2).([]repository.UpdateOption))
			}).
			Return(nil).Once()
		auditLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		err := l.AcknowledgeInvoice(context.Background(), invoiceID, shipper)

		require.NoError(t, err)
		assert.Equal(t, constants.ShipperResponseAcknowledged.String(), setFields[fields.FieldInvoiceShipperResponse])
		assert.Contains(t, setFields, fields.FieldInvoiceAcknowledgedAt)
	})

	t.Run("AlreadyAcknowledgedIsNoOp", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:                    invoiceID,
			Shipper:               shipper.UserId,
			Status:                constants.InvoiceStatusSent.String(),
			ShipperResponseStatus: constants.ShipperResponseAcknowledged.String(),
		}, nil).Once()

		err := l.AcknowledgeInvoice(context.Background(), invoiceID, shipper)

		require.NoError(t, err)
		invoiceRepo.AssertNotCalled(t, "UpdateInvoice", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PendingIsAutoViewed", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		// Acknowledging straight from pending implies the shipper saw it.
		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:                    invoiceID,
			Shipper:               shipper.UserId,
			Status:                constants.InvoiceStatusSent.String(),
			ShipperResponseStatus: constants.ShipperResponsePending.String(),
		}, nil).Once()

		var setFields bson.M
		invoiceRepo.On("UpdateInvoice", mock.Anything, invoiceID, mock.Anything).
			Run(func(args mock.Arguments) {
				setFields = applyUpdateOptions(args.Get(2).([]repository.UpdateOption))
			}).
			Return(nil).Once()
		auditLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		err := l.AcknowledgeInvoice(context.Background(), invoiceID, shipper)

		require.NoError(t, err)
		assert.Equal(t, constants.ShipperResponseAcknowledged.String(), setFields[fields.FieldInvoiceShipperResponse])
		assert.Contains(t, setFields, fields.FieldInvoiceAcknowledgedAt)
	})
}

func TestInvoiceLogic_MarkInvoicePaid(t *testing.T) {
	operator := &models.User{UserId: primitive.NewObjectID(), Role: constants.UserRoleAdmin}
	invoiceID := primitive.NewObjectID()

	t.Run("RequiresConfirmation", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		err := l.MarkInvoicePaid(context.Background(), dto.NewMarkInvoicePaidRequest(invoiceID, false, operator))

		assert.ErrorIs(t, err, ErrPaymentNotConfirmed)
		invoiceRepo.AssertNotCalled(t, "GetInvoiceByID", mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:                    invoiceID,
			Status:                constants.InvoiceStatusSent.String(),
			ShipperResponseStatus: constants.ShipperResponseAcknowledged.String(),
			TotalAmount:           mustDecimal(t, "53100"),
		}, nil).Once()

		var setFields bson.M
		invoiceRepo.On("UpdateInvoice", mock.Anything, invoiceID, mock.Anything).
			Run(func(args mock.Arguments) {
				setFields = applyUpdateOptions(args.Get(2).([]repository.UpdateOption))
			}).
			Return(nil).Once()
		auditLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.MatchedBy(func(msg *models.OutboxMessage) bool {
			return strings.Contains(msg.Payload, string(constants.InvoiceEventPaid))
		})).Return(nil).Once()

		err := l.MarkInvoicePaid(context.Background(), dto.NewMarkInvoicePaidRequest(invoiceID, true, operator))

		require.NoError(t, err)
		// Both status axes converge on paid.
		assert.Equal(t, constants.InvoiceStatusPaid.String(), setFields[fields.FieldStatus])
		assert.Equal(t, constants.ShipperResponsePaid.String(), setFields[fields.FieldInvoiceShipperResponse])
		assert.Contains(t, setFields, fields.FieldInvoicePaidAt)
	})

	t.Run("AcknowledgedStampAllowsPaymentWhileCountered", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		// Shipper acknowledged, then countered; the pending counter does not
		// block settlement.
		ackedAt := time.Now().Add(-time.Hour)
		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:                    invoiceID,
			Status:                constants.InvoiceStatusSent.String(),
			ShipperResponseStatus: constants.ShipperResponseCountered.String(),
			AcknowledgedAt:        &ackedAt,
			TotalAmount:           mustDecimal(t, "53100"),
		}, nil).Once()
		invoiceRepo.On("UpdateInvoice", mock.Anything, invoiceID, mock.Anything).Return(nil).Once()
		auditLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		err := l.MarkInvoicePaid(context.Background(), dto.NewMarkInvoicePaidRequest(invoiceID, true, operator))

		require.NoError(t, err)
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("NotAcknowledged", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:                    invoiceID,
			Status:                constants.InvoiceStatusSent.String(),
			ShipperResponseStatus: constants.ShipperResponseViewed.String(),
		}, nil).Once()

		err := l.MarkInvoicePaid(context.Background(), dto.NewMarkInvoicePaidRequest(invoiceID, true, operator))

		assert.ErrorIs(t, err, ErrNotAcknowledged)
	})

	t.Run("DraftCannotBePaid", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:     invoiceID,
			Status: constants.InvoiceStatusDraft.String(),
		}, nil).Once()

		err := l.MarkInvoicePaid(context.Background(), dto.NewMarkInvoicePaidRequest(invoiceID, true, operator))

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestInvoiceLogic_IsInvoiceOverdue(t *testing.T) {
	invoiceRepo := newMockInvoiceRepository()
	counterRepo := newMockCounterOfferRepository()
	loadRepo := newMockLoadRepository()
	auditLogRepo := newMockAuditLogRepository()
	outboxRepo := newMockOutboxRepository()
	l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		invoice *models.Invoice
		want    bool
	}{
		{
			name: "SentPastDue",
			invoice: &models.Invoice{
				Status:  constants.InvoiceStatusSent.String(),
				DueDate: &past,
			},
			want: true,
		},
		{
			name: "SentWithinWindow",
			invoice: &models.Invoice{
				Status:  constants.InvoiceStatusSent.String(),
				DueDate: &future,
			},
			want: false,
		},
		{
			name: "DraftNeverOverdue",
			invoice: &models.Invoice{
				Status:  constants.InvoiceStatusDraft.String(),
				DueDate: &past,
			},
			want: false,
		},
		{
			name: "PaidNeverOverdue",
			invoice: &models.Invoice{
				Status:  constants.InvoiceStatusPaid.String(),
				DueDate: &past,
				PaidAt:  &now,
			},
			want: false,
		},
		{
			name: "NoDueDate",
			invoice: &models.Invoice{
				Status: constants.InvoiceStatusSent.String(),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.IsInvoiceOverdue(tt.invoice, now))
		})
	}
}

func TestInvoiceLogic_GetInvoiceDetails(t *testing.T) {
	invoiceID := primitive.NewObjectID()
	loadID := primitive.NewObjectID()

	t.Run("Success", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		posted := mustDecimal(t, "50000")
		bid := mustDecimal(t, "42000")
		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:               invoiceID,
			Load:             loadID,
			Status:           constants.InvoiceStatusSent.String(),
			Subtotal:         mustDecimal(t, "45000"),
			TotalAmount:      mustDecimal(t, "53100"),
			AdminPostedPrice: &posted,
			WinningBidAmount: &bid,
		}, nil).Once()
		loadRepo.On("GetLoadByID", mock.Anything, loadID).Return(&models.Load{ID: loadID}, nil).Once()
		counterRepo.On("GetCounterOffersByInvoice", mock.Anything, invoiceID).Return([]*models.CounterOffer{}, nil).Once()

		details, err := l.GetInvoiceDetails(context.Background(), invoiceID)

		require.NoError(t, err)
		require.NotNil(t, details.Breakdown)
		assert.True(t, details.Breakdown.PlatformMargin.Available)
		assertDecimalEqual(t, "8000", details.Breakdown.PlatformMargin.Amount)
		assertDecimalEqual(t, "42000", details.Breakdown.EstimatedCarrierPayout.Amount)
		assert.False(t, details.Overdue)
		// No negotiation yet, so no flattened counter summary.
		assert.Nil(t, details.LatestCounterAmount)
		assert.Empty(t, details.LatestCounterStatus)
	})

	t.Run("FlattensLatestCounter", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:          invoiceID,
			Load:        loadID,
			Status:      constants.InvoiceStatusSent.String(),
			Subtotal:    mustDecimal(t, "45000"),
			TotalAmount: mustDecimal(t, "53100"),
		}, nil).Once()
		loadRepo.On("GetLoadByID", mock.Anything, loadID).Return(&models.Load{ID: loadID}, nil).Once()
		counterRepo.On("GetCounterOffersByInvoice", mock.Anything, invoiceID).Return([]*models.CounterOffer{
			{Serial: 1, Amount: mustDecimal(t, "48000"), Status: constants.CounterOfferStatusRejected.String()},
			{Serial: 2, Amount: mustDecimal(t, "50000"), Status: constants.CounterOfferStatusPending.String()},
		}, nil).Once()

		details, err := l.GetInvoiceDetails(context.Background(), invoiceID)

		require.NoError(t, err)
		// The head of the history is flattened onto the read model.
		require.NotNil(t, details.LatestCounterAmount)
		assertDecimalEqual(t, "50000", *details.LatestCounterAmount)
		assert.Equal(t, constants.CounterOfferStatusPending.String(), details.LatestCounterStatus)
	})

	t.Run("MissingLoadDegrades", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:       invoiceID,
			Load:     loadID,
			Status:   constants.InvoiceStatusSent.String(),
			Subtotal: mustDecimal(t, "45000"),
		}, nil).Once()
		loadRepo.On("GetLoadByID", mock.Anything, loadID).Return(nil, errors.New("load service down")).Once()
		counterRepo.On("GetCounterOffersByInvoice", mock.Anything, invoiceID).Return([]*models.CounterOffer{}, nil).Once()

		details, err := l.GetInvoiceDetails(context.Background(), invoiceID)

		require.NoError(t, err)
		assert.Nil(t, details.Load)
		// The breakdown falls back to the invoice subtotal for the posted price.
		assertDecimalEqual(t, "45000", details.Breakdown.AdminPostedPrice.Amount)
	})
}

func TestInvoiceLogic_GetInvoiceForShipper(t *testing.T) {
	invoiceID := primitive.NewObjectID()
	shipperID := primitive.NewObjectID()

	t.Run("RedactsAdminPricing", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		posted := mustDecimal(t, "50000")
		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:               invoiceID,
			Shipper:          shipperID,
			Status:           constants.InvoiceStatusSent.String(),
			TotalAmount:      mustDecimal(t, "53100"),
			AdminPostedPrice: &posted,
		}, nil).Once()
		counterRepo.On("GetCounterOffersByInvoice", mock.Anything, invoiceID).Return([]*models.CounterOffer{}, nil).Once()

		view, err := l.GetInvoiceForShipper(context.Background(), invoiceID, shipperID)

		require.NoError(t, err)
		assertDecimalEqual(t, "53100", view.TotalAmount)
	})

	t.Run("NotOwner", func(t *testing.T) {
		invoiceRepo := newMockInvoiceRepository()
		counterRepo := newMockCounterOfferRepository()
		loadRepo := newMockLoadRepository()
		auditLogRepo := newMockAuditLogRepository()
		outboxRepo := newMockOutboxRepository()
		l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

		invoiceRepo.On("GetInvoiceByID", mock.Anything, invoiceID).Return(&models.Invoice{
			ID:      invoiceID,
			Shipper: primitive.NewObjectID(),
		}, nil).Once()

		_, err := l.GetInvoiceForShipper(context.Background(), invoiceID, shipperID)

		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestInvoiceLogic_ListInvoices(t *testing.T) {
	invoiceRepo := newMockInvoiceRepository()
	counterRepo := newMockCounterOfferRepository()
	loadRepo := newMockLoadRepository()
	auditLogRepo := newMockAuditLogRepository()
	outboxRepo := newMockOutboxRepository()
	l := newTestInvoiceLogic(invoiceRepo, counterRepo, loadRepo, auditLogRepo, outboxRepo)

	invoices := []*models.Invoice{{ID: primitive.NewObjectID()}, {ID: primitive.NewObjectID()}}
	invoiceRepo.On("GetInvoices", mock.Anything, mock.MatchedBy(func(params *repository.GetInvoicesParams) bool {
		// OverdueOnly filters are anchored to the current time when no
		// explicit point-in-time is given.
		return params.OverdueOnly && !params.AsOf.IsZero() && params.Limit == 10 && params.Offset == 10
	})).Return(invoices, int64(12), nil).Once()

	params := &repository.GetInvoicesParams{OverdueOnly: true}
	result, err := l.ListInvoices(context.Background(), params, pagination.NewPageRequest(2, 10))

	require.NoError(t, err)
	assert.Equal(t, int64(12), result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 2, result.TotalPages)
}

// --- Mocks ---

// mockInvoiceRepository implements repository.InvoiceRepository using testify/mock.
type mockInvoiceRepository struct {
	mock.Mock
}

func newMockInvoiceRepository() *mockInvoiceRepository {
	return &mockInvoiceRepository{}
}

func (m *mockInvoiceRepository) CreateInvoice(ctx context.Context, invoice *models.Invoice) (primitive.ObjectID, error) {
	args := m.Called(ctx, invoice)
	if oid := args.Get(0); oid != nil {
		return oid.(primitive.ObjectID), args.Error(1)
	}
	return primitive.NilObjectID, args.Error(1)
}

func (m *mockInvoiceRepository) GetInvoiceByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *mockInvoiceRepository) GetInvoiceByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *mockInvoiceRepository) GetInvoices(ctx context.Context, params *repository.GetInvoicesParams) ([]*models.Invoice, int64, error) {
	args := m.Called(ctx, params)
	var invoices []*models.Invoice
	if v := args.Get(0); v != nil {
		invoices = v.([]*models.Invoice)
	}
	return invoices, args.Get(1).(int64), args.Error(2)
}

func (m *mockInvoiceRepository) UpdateInvoice(ctx context.Context, id primitive.ObjectID, opts ...repository.UpdateOption) error {
	args := m.Called(ctx, id, opts)
	return args.Error(0)
}

func (m *mockInvoiceRepository) GetOverdueInvoices(ctx context.Context, asOf time.Time, limit int) ([]*models.Invoice, error) {
	args := m.Called(ctx, asOf, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Invoice), args.Error(1)
}

// mockCounterOfferRepository implements repository.CounterOfferRepository using testify/mock.
type mockCounterOfferRepository struct {
	mock.Mock
}

func newMockCounterOfferRepository() *mockCounterOfferRepository {
	return &mockCounterOfferRepository{}
}

func (m *mockCounterOfferRepository) CreateCounterOffer(ctx context.Context, offer *models.CounterOffer) (primitive.ObjectID, error) {
	args := m.Called(ctx, offer)
	if oid := args.Get(0); oid != nil {
		return oid.(primitive.ObjectID), args.Error(1)
	}
	return primitive.NilObjectID, args.Error(1)
}

func (m *mockCounterOfferRepository) GetCounterOfferByID(ctx context.Context, id primitive.ObjectID) (*models.CounterOffer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CounterOffer), args.Error(1)
}

func (m *mockCounterOfferRepository) GetCounterOffersByInvoice(ctx context.Context, invoiceID primitive.ObjectID) ([]*models.CounterOffer, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CounterOffer), args.Error(1)
}

func (m *mockCounterOfferRepository) GetPendingCounterOfferByInvoice(ctx context.Context, invoiceID primitive.ObjectID) (*models.CounterOffer, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CounterOffer), args.Error(1)
}

func (m *mockCounterOfferRepository) CountCounterOffersByInvoice(ctx context.Context, invoiceID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCounterOfferRepository) UpdateCounterOffer(ctx context.Context, id primitive.ObjectID, opts ...repository.UpdateOption) error {
	args := m.Called(ctx, id, opts)
	return args.Error(0)
}

// mockLoadRepository implements repository.LoadRepository using testify/mock.
type mockLoadRepository struct {
	mock.Mock
}

func newMockLoadRepository() *mockLoadRepository {
	return &mockLoadRepository{}
}

func (m *mockLoadRepository) GetLoadByID(ctx context.Context, id primitive.ObjectID) (*models.Load, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Load), args.Error(1)
}

// mockAuditLogRepository implements repository.AuditLogRepository using testify/mock.
type mockAuditLogRepository struct {
	mock.Mock
}

func newMockAuditLogRepository() *mockAuditLogRepository {
	return &mockAuditLogRepository{}
}

func (m *mockAuditLogRepository) Create(ctx context.Context, log *models.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// mockOutboxRepository implements repository.OutboxRepository using testify/mock.
type mockOutboxRepository struct {
	mock.Mock
}

func newMockOutboxRepository() *mockOutboxRepository {
	return &mockOutboxRepository{}
}

func (m *mockOutboxRepository) Create(ctx context.Context, message *models.OutboxMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *mockOutboxRepository) ClaimAndFetchEvents(ctx context.Context, limit int) ([]*models.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OutboxMessage), args.Error(1)
}

func (m *mockOutboxRepository) MarkAsProcessed(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepository) IncrementRetry(ctx context.Context, id primitive.ObjectID, errorMessage string) error {
	args := m.Called(ctx, id, errorMessage)
	return args.Error(0)
}
