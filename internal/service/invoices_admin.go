package service

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"loadsmart_billing/internal/constants"
	"loadsmart_billing/internal/dao/repository"
	"loadsmart_billing/internal/db"
	"loadsmart_billing/internal/dto"
	"loadsmart_billing/internal/logic"
	httpmw "loadsmart_billing/internal/middleware/http"
	"loadsmart_billing/internal/models"
	"loadsmart_billing/pkg/pagination"
)

// InvoicesAdminService exposes the operations-side invoice API.
type InvoicesAdminService struct {
	invoiceLogic logic.InvoiceLogic
	counterLogic logic.CounterOfferLogic
	logger       *zap.Logger
	tm           db.TransactionManager
}

func NewInvoicesAdminService(invoiceLogic logic.InvoiceLogic, counterLogic logic.CounterOfferLogic, logger *zap.Logger, tm db.TransactionManager) *InvoicesAdminService {
	return &InvoicesAdminService{
		invoiceLogic: invoiceLogic,
		counterLogic: counterLogic,
		logger:       logger.Named("InvoicesAdminService"),
		tm:           tm,
	}
}

// RegisterRoutes mounts the admin invoice routes on the given group.
func (s *InvoicesAdminService) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/invoices", s.createInvoice)
	g.GET("/invoices", s.listInvoices)
	g.GET("/invoices/:id", s.getInvoice)
	g.GET("/invoices/:id/breakdown", s.getBreakdown)
	g.GET("/invoices/:id/counter-offers", s.listCounterOffers)
	g.POST("/invoices/:id/counter-offers", s.proposeCounterOffer)
	g.POST("/invoices/:id/send", s.sendInvoice)
	g.POST("/invoices/:id/resend", s.resendInvoice)
	g.POST("/invoices/:id/mark-paid", s.markInvoicePaid)
	g.POST("/counter-offers/:id/resolve", s.resolveCounterOffer)
}

type lineItemRequest struct {
	Description string `json:"description" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
	UnitPrice   string `json:"unit_price" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
}

type createInvoiceRequest struct {
	LoadID           string            `json:"load_id" binding:"required"`
	ShipperID        string            `json:"shipper_id" binding:"required"`
	Subtotal         string            `json:"subtotal" binding:"required"`
	TaxPercent       int               `json:"tax_percent"`
	AdvancePercent   int               `json:"advance_percent"`
	DueDate          string            `json:"due_date"`
	AdminPostedPrice string            `json:"admin_posted_price"`
	WinningBidAmount string            `json:"winning_bid_amount"`
	LineItems        []lineItemRequest `json:"line_items"`
}

func (s *InvoicesAdminService) createInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	actor, ok := httpmw.ActorFromContext(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	loadID, err := primitive.ObjectIDFromHex(req.LoadID)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid load_id")
		return
	}
	shipperID, err := primitive.ObjectIDFromHex(req.ShipperID)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid shipper_id")
		return
	}
	subtotal, err := primitive.ParseDecimal128(req.Subtotal)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid subtotal")
		return
	}

	lineItems := make([]*models.LineItem, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		unitPrice, err := primitive.ParseDecimal128(item.UnitPrice)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid line item unit_price")
			return
		}
		amount, err := primitive.ParseDecimal128(item.Amount)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid line item amount")
			return
		}
		lineItems = append(lineItems, &models.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			Amount:      amount,
		})
	}

	d := dto.NewCreateInvoiceRequest(loadID, shipperID, subtotal, req.TaxPercent, lineItems, actor).
		WithAdvancePercent(req.AdvancePercent)

	if req.DueDate != "" {
		dueDate, err := parseDate(req.DueDate)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid due_date")
			return
		}
		d.WithDueDate(dueDate)
	}

	posted, err := parseOptionalDecimal(req.AdminPostedPrice)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid admin_posted_price")
		return
	}
	bid, err := parseOptionalDecimal(req.WinningBidAmount)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid winning_bid_amount")
		return
	}
	d.WithPricing(posted, bid)

	invoiceID, err := s.invoiceLogic.CreateInvoice(c.Request.Context(), d)
	if err != nil {
		s.logger.Error("createInvoice failed", zap.Error(err))
		writeLogicError(c, err)
		return
	}

	writeSuccess(c, http.StatusCreated, gin.H{"invoice_id": invoiceID.Hex()})
}

func (s *InvoicesAdminService) listInvoices(c *gin.Context) {
	params := &repository.GetInvoicesParams{
		Status:      c.Query("status"),
		OverdueOnly: c.Query("overdue") == "true",
	}
	if shipper := c.Query("shipper_id"); shipper != "" {
		id, err := primitive.ObjectIDFromHex(shipper)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid shipper_id")
			return
		}
		params.Shipper = &id
	}
	if load := c.Query("load_id"); load != "" {
		id, err := primitive.ObjectIDFromHex(load)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid load_id")
			return
		}
		params.Load = &id
	}

	result, err := s.invoiceLogic.ListInvoices(c.Request.Context(), params, pageRequestFromQuery(c))
	if err != nil {
		s.logger.Error("listInvoices failed", zap.Error(err))
		writeLogicError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, result)
}

func (s *InvoicesAdminService) getInvoice(c *gin.Context) {
	ref := c.Param("id")
	invoiceID, err := primitive.ObjectIDFromHex(ref)
	if err != nil {
		// Operators paste invoice numbers as often as raw ids.
		invoice, lookupErr := s.invoiceLogic.GetInvoiceByNumber(c.Request.Context(), ref)
		if lookupErr != nil {
			s.logger.Warn("getInvoice: lookup by number failed", zap.Error(lookupErr), zap.String("ref", ref))
			writeError(c, http.StatusNotFound, "invoice not found")
			return
		}
		invoiceID = invoice.ID
	}

	details, err := s.invoiceLogic.GetInvoiceDetails(c.Request.Context(), invoiceID)
	if err != nil {
		s.logger.Error("getInvoice failed", zap.Error(err), zap.Stringer("invoiceID", invoiceID))
		writeLogicError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, details)
}

func (s *InvoicesAdminService) getBreakdown(c *gin.Context) {
	invoiceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid invoice id")
		return
	}

	details, err := s.invoiceLogic.GetInvoiceDetails(c.Request.Context(), invoiceID)
	if err != nil {
		s.logger.Error("getBreakdown failed", zap.Error(err), zap.Stringer("invoiceID", invoiceID))
		writeLogicError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, details.Breakdown)
}

func (s *InvoicesAdminService) listCounterOffers(c *gin.Context) {
	invoiceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid invoice id")
		return
	}

	counters, err := s.counterLogic.GetCounterOffersByInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		s.logger.Error("listCounterOffers failed", zap.Error(err), zap.Stringer("invoiceID", invoiceID))
		writeLogicError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, counters)
}

func (s *InvoicesAdminService) sendInvoice(c *gin.Context) {
	s.runStatusTransition(c, s.invoiceLogic.SendInvoice)
}

func (s *InvoicesAdminService) resendInvoice(c *gin.Context) {
	s.runStatusTransition(c, s.invoiceLogic.ResendInvoice)
}

// runStatusTransition wraps a single-invoice transition in a transaction so
// the precondition re-read and the write commit together.
func (s *InvoicesAdminService) runStatusTransition(c *gin.Context, fn func(ctx context.Context, invoiceID primitive.ObjectID, operator *models.User) error) {
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
		s.logger.Error("invoice transition failed", zap.Error(err), zap.Stringer("invoiceID", invoiceID))
		writeLogicError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, gin.H{"invoice_id": invoiceID.Hex()})
}

type markInvoicePaidRequest struct {
	Confirmed bool `json:"confirmed"`
}

func (s *InvoicesAdminService) markInvoicePaid(c *gin.Context) {
	invoiceID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid invoice id")
		return
	}

	var req markInvoicePaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	actor, ok := httpmw.ActorFromContext(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	d := dto.NewMarkInvoicePaidRequest(invoiceID, req.Confirmed, actor)
	_, err = s.tm.WithTransaction(c.Request.Context(), func(sessCtx context.Context) (interface{}, error) {
		return nil, s.invoiceLogic.MarkInvoicePaid(sessCtx, d)
	})
	if err != nil {
		s.logger.Error("markInvoicePaid failed", zap.Error(err), zap.Stringer("invoiceID", invoiceID))
		writeLogicError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, gin.H{"invoice_id": invoiceID.Hex()})
}

type resolveCounterOfferRequest struct {
	Accept       *bool  `json:"accept" binding:"required"`
	ResponseNote string `json:"response_note"`
}

// proposeCounterOffer records a counter an operator negotiated with the
// shipper outside the portal, attributed to the admin side.
func (s *InvoicesAdminService) proposeCounterOffer(c *gin.Context) {
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

	d := dto.NewProposeCounterRequest(invoiceID, amount, req.Reason, actor).
		WithProposedBy(constants.CounterOfferPartyAdmin)
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

func (s *InvoicesAdminService) resolveCounterOffer(c *gin.Context) {
	counterID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid counter offer id")
		return
	}

	var req resolveCounterOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	actor, ok := httpmw.ActorFromContext(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	d := dto.NewResolveCounterRequest(counterID, *req.Accept, req.ResponseNote, actor)
	result, err := s.tm.WithTransaction(c.Request.Context(), func(sessCtx context.Context) (interface{}, error) {
		return s.counterLogic.ResolveCounter(sessCtx, d)
	})
	if err != nil {
		s.logger.Error("resolveCounterOffer failed", zap.Error(err), zap.Stringer("counterOfferID", counterID))
		writeLogicError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, result)
}

func pageRequestFromQuery(c *gin.Context) *pagination.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return pagination.NewPageRequest(page, pageSize)
}

// parseDate accepts either a bare date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func parseOptionalDecimal(s string) (*primitive.Decimal128, error) {
	if s == "" {
		return nil, nil
	}
	d, err := primitive.ParseDecimal128(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
