package dto

import "go.mongodb.org/mongo-driver/bson/primitive"

// BreakdownAmount is a single line of the financial breakdown. Available is
// false when none of the fallback sources could produce a figure, or when the
// computed value was anomalous and withheld.
type BreakdownAmount struct {
	Amount    primitive.Decimal128 `json:"amount"`
	Available bool                 `json:"available"`
}

// FinancialBreakdown is the admin-facing money summary for an invoice.
// Anomalous inputs (e.g. a winning bid above the posted price) surface as
// warnings; the figures are reported unavailable rather than clamped.
type FinancialBreakdown struct {
	AdminPostedPrice       BreakdownAmount `json:"admin_posted_price"`
	WinningBid             BreakdownAmount `json:"winning_bid"`
	PlatformMargin         BreakdownAmount `json:"platform_margin"`
	EstimatedCarrierPayout BreakdownAmount `json:"estimated_carrier_payout"`
	TotalAmount            BreakdownAmount `json:"total_amount"`
	AdvancePayment         BreakdownAmount `json:"advance_payment"`
	BalanceOnDelivery      BreakdownAmount `json:"balance_on_delivery"`

	Warnings []string `json:"warnings,omitempty"`
}
