package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Invoice is the billing document issued to a shipper for a load. It carries
// two independent status axes: the admin-facing `Status` and the
// shipper-facing `ShipperResponseStatus`. The two are constrained so that
// Status == paid exactly when ShipperResponseStatus == paid.
type Invoice struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	InvoiceNumber string              `bson:"invoice_number"`
	Load          primitive.ObjectID  `bson:"load"`
	Shipper       primitive.ObjectID  `bson:"shipper"`
	Carrier       *primitive.ObjectID `bson:"carrier,omitempty"`
	Driver        *primitive.ObjectID `bson:"driver,omitempty"`
	Vehicle       *primitive.ObjectID `bson:"vehicle,omitempty"`

	Subtotal    primitive.Decimal128 `bson:"subtotal"`
	TaxAmount   primitive.Decimal128 `bson:"tax_amount"`
	TaxPercent  int                  `bson:"tax_percent"`
	TotalAmount primitive.Decimal128 `bson:"total_amount"`
	LineItems   []*LineItem          `bson:"line_items,omitempty"`

	// Admin-only pricing fields. Never serialized into shipper-facing
	// responses; redaction happens in the dto layer.
	AdminPostedPrice       *primitive.Decimal128 `bson:"admin_posted_price,omitempty"`
	WinningBidAmount       *primitive.Decimal128 `bson:"winning_bid_amount,omitempty"`
	PlatformMargin         *primitive.Decimal128 `bson:"platform_margin,omitempty"`
	EstimatedCarrierPayout *primitive.Decimal128 `bson:"estimated_carrier_payout,omitempty"`

	AdvancePaymentPercent int                   `bson:"advance_payment_percent"`
	AdvancePaymentAmount  *primitive.Decimal128 `bson:"advance_payment_amount,omitempty"`
	BalanceOnDelivery     *primitive.Decimal128 `bson:"balance_on_delivery,omitempty"`

	Status                string `bson:"status"`
	ShipperResponseStatus string `bson:"shipper_response_status"`

	CreatedAt      time.Time  `bson:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at"`
	SentAt         *time.Time `bson:"sent_at,omitempty"`
	AcknowledgedAt *time.Time `bson:"acknowledged_at,omitempty"`
	PaidAt         *time.Time `bson:"paid_at,omitempty"`
	DueDate        *time.Time `bson:"due_date,omitempty"`
	CounteredAt    *time.Time `bson:"countered_at,omitempty"`

	CreatedBy *User `bson:"created_by,omitempty"`
	UpdatedBy *User `bson:"updated_by,omitempty"`
}

type LineItem struct {
	Description string               `bson:"description"`
	Quantity    int                  `bson:"quantity"`
	UnitPrice   primitive.Decimal128 `bson:"unit_price"`
	Amount      primitive.Decimal128 `bson:"amount"`
}
