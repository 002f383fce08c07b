package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"loadsmart_billing/internal/models"
)

func NewCreateInvoiceRequest(loadID, shipperID primitive.ObjectID, subtotal primitive.Decimal128, taxPercent int, lineItems []*models.LineItem, operator *models.User) *CreateInvoiceRequest {
	return &CreateInvoiceRequest{
		loadID:     loadID,
		shipperID:  shipperID,
		subtotal:   subtotal,
		taxPercent: taxPercent,
		lineItems:  lineItems,
		operator:   operator,
	}
}

type CreateInvoiceRequest struct {
	loadID           primitive.ObjectID
	shipperID        primitive.ObjectID
	subtotal         primitive.Decimal128
	taxPercent       int
	lineItems        []*models.LineItem
	advancePercent   int
	dueDate          *time.Time
	adminPostedPrice *primitive.Decimal128
	winningBidAmount *primitive.Decimal128
	operator         *models.User
}

func (r CreateInvoiceRequest) GetLoadID() primitive.ObjectID {
	return r.loadID
}

func (r CreateInvoiceRequest) GetShipperID() primitive.ObjectID {
	return r.shipperID
}

func (r CreateInvoiceRequest) GetSubtotal() primitive.Decimal128 {
	return r.subtotal
}

func (r CreateInvoiceRequest) GetTaxPercent() int {
	return r.taxPercent
}

func (r CreateInvoiceRequest) GetLineItems() []*models.LineItem {
	return r.lineItems
}

func (r CreateInvoiceRequest) GetAdvancePercent() int { return r.advancePercent }
func (r CreateInvoiceRequest) GetDueDate() *time.Time { return r.dueDate }
func (r CreateInvoiceRequest) GetAdminPostedPrice() *primitive.Decimal128 {
	return r.adminPostedPrice
}
func (r CreateInvoiceRequest) GetWinningBidAmount() *primitive.Decimal128 {
	return r.winningBidAmount
}
func (r CreateInvoiceRequest) GetOperator() *models.User { return r.operator }

// WithAdvancePercent sets the advance payment split for the invoice.
func (r *CreateInvoiceRequest) WithAdvancePercent(percent int) *CreateInvoiceRequest {
	r.advancePercent = percent
	return r
}

// WithDueDate sets an explicit payment due date.
func (r *CreateInvoiceRequest) WithDueDate(t time.Time) *CreateInvoiceRequest {
	r.dueDate = &t
	return r
}

// WithPricing attaches the admin-side pricing figures used for the
// financial breakdown. Either value may be nil when unknown.
func (r *CreateInvoiceRequest) WithPricing(posted, winningBid *primitive.Decimal128) *CreateInvoiceRequest {
	r.adminPostedPrice = posted
	r.winningBidAmount = winningBid
	return r
}

// --- MarkInvoicePaid DTOs ---

func NewMarkInvoicePaidRequest(invoiceID primitive.ObjectID, confirmed bool, operator *models.User) *MarkInvoicePaidRequest {
	return &MarkInvoicePaidRequest{
		invoiceID: invoiceID,
		confirmed: confirmed,
		operator:  operator,
	}
}

type MarkInvoicePaidRequest struct {
	invoiceID primitive.ObjectID
	confirmed bool
	operator  *models.User
}

func (r *MarkInvoicePaidRequest) GetInvoiceID() primitive.ObjectID {
	return r.invoiceID
}

func (r *MarkInvoicePaidRequest) GetConfirmed() bool {
	return r.confirmed
}

func (r *MarkInvoicePaidRequest) GetOperator() *models.User {
	return r.operator
}

// --- Read DTOs ---

// InvoiceDetails combines an Invoice with its counter-offer history and the
// computed financial breakdown. It's used to return rich invoice information
// in a single structure.
type InvoiceDetails struct {
	*models.Invoice
	Load          *models.Load           `json:"load,omitempty"`
	CounterOffers []*models.CounterOffer `json:"counter_offers"`
	Breakdown     *FinancialBreakdown    `json:"breakdown,omitempty"`
	Overdue       bool                   `json:"overdue"`

	// Flattened head of the counter-offer history, derived at read time.
	LatestCounterAmount *primitive.Decimal128 `json:"latest_counter_amount,omitempty"`
	LatestCounterStatus string                `json:"latest_counter_status,omitempty"`
}

// ShipperInvoice is the shipper-facing projection of an invoice. Admin-only
// pricing fields never cross this boundary.
type ShipperInvoice struct {
	ID                    primitive.ObjectID     `json:"id"`
	InvoiceNumber         string                 `json:"invoice_number"`
	Load                  primitive.ObjectID     `json:"load"`
	Subtotal              primitive.Decimal128   `json:"subtotal"`
	TaxAmount             primitive.Decimal128   `json:"tax_amount"`
	TaxPercent            int                    `json:"tax_percent"`
	TotalAmount           primitive.Decimal128   `json:"total_amount"`
	LineItems             []*models.LineItem     `json:"line_items"`
	Status                string                 `json:"status"`
	ShipperResponseStatus string                 `json:"shipper_response_status"`
	SentAt                *time.Time             `json:"sent_at,omitempty"`
	DueDate               *time.Time             `json:"due_date,omitempty"`
	Overdue               bool                   `json:"overdue"`
	CounterOffers         []*models.CounterOffer `json:"counter_offers,omitempty"`
	LatestCounterAmount   *primitive.Decimal128  `json:"latest_counter_amount,omitempty"`
	LatestCounterStatus   string                 `json:"latest_counter_status,omitempty"`
}

// LatestCounterOffer returns the head of the counter-offer history, the
// counter with the highest serial, or nil when there is none.
func LatestCounterOffer(counters []*models.CounterOffer) *models.CounterOffer {
	var latest *models.CounterOffer
	for _, counter := range counters {
		if latest == nil || counter.Serial > latest.Serial {
			latest = counter
		}
	}
	return latest
}

// NewShipperInvoice projects an invoice into its shipper-facing shape.
func NewShipperInvoice(inv *models.Invoice) *ShipperInvoice {
	return &ShipperInvoice{
		ID:                    inv.ID,
		InvoiceNumber:         inv.InvoiceNumber,
		Load:                  inv.Load,
		Subtotal:              inv.Subtotal,
		TaxAmount:             inv.TaxAmount,
		TaxPercent:            inv.TaxPercent,
		TotalAmount:           inv.TotalAmount,
		LineItems:             inv.LineItems,
		Status:                inv.Status,
		ShipperResponseStatus: inv.ShipperResponseStatus,
		SentAt:                inv.SentAt,
		DueDate:               inv.DueDate,
	}
}
