package service

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"loadsmart_billing/internal/dao/repository"
	"loadsmart_billing/internal/db"
	"loadsmart_billing/internal/dto"
	"loadsmart_billing/internal/logic"
	httpmw "loadsmart_billing/internal/middleware/http"
	"loadsmart_billing/internal/models"
)

// InvoicesShipperService exposes the shipper-side invoice API. Every handler
// scopes its reads and writes to the authenticated shipper; the admin-only
// pricing fields never appear in its responses.
type InvoicesShipperService struct {
	invoiceLogic logic.InvoiceLogic
	counterLogic logic.CounterOfferLogic
	logger       *zap.Logger
	tm           db.TransactionManager
}

func NewInvoicesShipperService(invoiceLogic logic.InvoiceLogic, counterLogic logic.CounterOfferLogic, logger *zap.Logger, tm db.TransactionManager) *InvoicesShipperService {
	return &InvoicesShipperService{
		invoiceLogic: invoiceLogic,
		counterLogic: counterLogic,
		logger:       logger.Named("InvoicesShipperService"),
		tm:           tm,
	}
}

// RegisterRoutes mounts the shipper invoice routes on the given group.
func (s *InvoicesShipperService) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/invoices", s.listInvoices)
	g.GET("/invoices/:id", s.getInvoice)
	g.POST("/invoices/:id/view", s.recordView)
	g.POST("/invoices/:id/acknowledge", s.acknowledge)
	g.POST("/invoices/:id/counter-offers", s.proposeCounterOffer)
}

func (s *InvoicesShipperService) listInvoices(c *gin.Context) {
	actor, ok := httpmw.ActorFromContext(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	// Shippers only ever see their own invoices.
	params := &repository.GetInvoicesParams{
		Shipper:     &actor.UserId,
		Status:      c.Query("status"),
		OverdueOnly: c.Query("overdue") == "true",
	}

	result, err := s.invoiceLogic.ListInvoices(c.Request.Context(), params, pageRequestFromQuery(c))
	if err != nil {
		s.logger.Error("listInvoices failed", zap.Error(err))
		writeLogicError(c, err)
		return
	}

	invoices, _ := result.Data.([]*models.Invoice)
	redacted := make([]*dto.ShipperInvoice, 0, len(invoices))
	for _, invoice := range invoices {
		redacted = append(redacted, dto.NewShipperInvoice(invoice))
	}
	result.Data = redacted

	writeSuccess(c, http.StatusOK, result)
}

func (s *InvoicesShipperService) getInvoice(c *gin.Context) {
	invoiceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid invoice id")
		return
	}

	actor, ok := httpmw.ActorFromContext(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	invoice, err := s.invoiceLogic.GetInvoiceForShipper(c.Request.Context(), invoiceID, actor.UserId)
	if err != nil {
		s.logger.Error("getInvoice failed", zap.Error(err), zap.Stringer("invoiceID", invoiceID))
		writeLogicError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, invoice)
}

func (s *InvoicesShipperService) recordView(c *gin.Context) {
	s.runShipperTransition(c, s.invoiceLogic.RecordShipperView)
}

func (s *InvoicesShipperService) acknowledge(c *gin.Context) {
	s.runShipperTransition(c, s.invoiceLogic.AcknowledgeInvoice)
}

func (s *InvoicesShipperService) runShipperTransition(c *gin.Context, fn func(ctx context.Context, invoiceID primitive.ObjectID, shipper *models.User) error) {
	invoiceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid invoice id")
		return
	}

	actor, ok := httpmw.ActorFromContext(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	_, err = s.tm.WithTransaction(c.Request.Context(), func(sessCtx context.Context) (interface{}, error) {
		return nil, fn(sessCtx, invoiceID, actor)
	})
	if err != nil {
		s.logger.Error("shipper transition failed", zap.Error(err), zap.Stringer("invoiceID", invoiceID))
		writeLogicError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, gin.H{"invoice_id": invoiceID.Hex()})
}

type proposeCounterOfferRequest struct {
	Amount string `json:"amount" binding:"required"`
	Reason string `json:"reason"`
}

func (s *InvoicesShipperService) proposeCounterOffer(c *gin.Context) {
	invoiceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid invoice id")
		return
	}

	var req proposeCounterOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := primitive.ParseDecimal128(req.Amount)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid amount")
		return
	}

	actor, ok := httpmw.ActorFromContext(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	d := dto.NewProposeCounterRequest(invoiceID, amount, req.Reason, actor)
	counterID, err := s.tm.WithTransaction(c.Request.Context(), func(sessCtx context.Context) (interface{}, error) {
		return s.counterLogic.ProposeCounter(sessCtx, d)
	})
	if err != nil {
		s.logger.Error("proposeCounterOffer failed", zap.Error(err), zap.Stringer("invoiceID", invoiceID))
		writeLogicError(c, err)
		return
	}

	writeSuccess(c, http.StatusCreated, gin.H{"counter_offer_id": counterID.(primitive.ObjectID).Hex()})
}
