package logic

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"loadsmart_billing/internal/dto"
	"loadsmart_billing/internal/helper"
	"loadsmart_billing/internal/models"
)

// BuildFinancialBreakdown computes the admin-facing money summary for an
// invoice. It is a pure function over the invoice and its (optional) load.
//
// Each figure is resolved through a fallback chain, stored field first, so
// older records with partial pricing data still render:
//
//	posted price: invoice.AdminPostedPrice, then load.AdminFinalPrice, then subtotal
//	winning bid:  invoice.WinningBidAmount, then invoice.EstimatedCarrierPayout
//	margin:       invoice.PlatformMargin, then posted price minus winning bid
//	payout:       invoice.EstimatedCarrierPayout, then winning bid
//	advance:      invoice.AdvancePaymentAmount, then total times advance percent
//	balance:      invoice.BalanceOnDelivery, then total minus advance
//
// A margin or payout resolving to zero or a negative value means the pricing
// data is inconsistent. The figure is reported unavailable with a warning; it
// is never clamped, since clamping would hide the anomaly from the operations
// team.
func BuildFinancialBreakdown(invoice *models.Invoice, load *models.Load) (*dto.FinancialBreakdown, error) {
	b := &dto.FinancialBreakdown{}

	postedPrice, postedOK := resolvePostedPrice(invoice, load)
	b.AdminPostedPrice = dto.BreakdownAmount{Amount: postedPrice, Available: postedOK}

	winningBid, bidOK := resolveWinningBid(invoice)
	b.WinningBid = dto.BreakdownAmount{Amount: winningBid, Available: bidOK}

	margin := helper.ZeroDecimal128()
	marginOK := false
	switch {
	case invoice.PlatformMargin != nil:
		margin, marginOK = *invoice.PlatformMargin, true
	case postedOK && bidOK:
		var err error
		margin, err = helper.SubDecimal128(postedPrice, winningBid)
		if err != nil {
			return nil, fmt.Errorf("failed to compute platform margin: %w", err)
		}
		marginOK = true
	}
	if marginOK {
		nonPositive, err := isNonPositive(margin)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect platform margin: %w", err)
		}
		if nonPositive {
			b.PlatformMargin = dto.BreakdownAmount{Amount: helper.ZeroDecimal128(), Available: false}
			b.Warnings = append(b.Warnings, fmt.Sprintf("platform margin (%s) is zero or negative; reported unavailable", margin.String()))
		} else {
			b.PlatformMargin = dto.BreakdownAmount{Amount: margin, Available: true}
		}
	} else {
		b.PlatformMargin = dto.BreakdownAmount{Amount: helper.ZeroDecimal128(), Available: false}
	}

	payout := helper.ZeroDecimal128()
	payoutOK := false
	switch {
	case invoice.EstimatedCarrierPayout != nil:
		payout, payoutOK = *invoice.EstimatedCarrierPayout, true
	case bidOK:
		payout, payoutOK = winningBid, true
	}
	if payoutOK {
		nonPositive, err := isNonPositive(payout)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect carrier payout: %w", err)
		}
		if nonPositive {
			b.EstimatedCarrierPayout = dto.BreakdownAmount{Amount: helper.ZeroDecimal128(), Available: false}
			b.Warnings = append(b.Warnings, fmt.Sprintf("carrier payout (%s) is zero or negative; reported unavailable", payout.String()))
		} else {
			b.EstimatedCarrierPayout = dto.BreakdownAmount{Amount: payout, Available: true}
		}
	} else {
		b.EstimatedCarrierPayout = dto.BreakdownAmount{Amount: helper.ZeroDecimal128(), Available: false}
	}

	b.TotalAmount = dto.BreakdownAmount{Amount: invoice.TotalAmount, Available: true}

	var advance primitive.Decimal128
	if invoice.AdvancePaymentAmount != nil {
		advance = *invoice.AdvancePaymentAmount
	} else {
		var err error
		advance, err = helper.PercentOfDecimal128(invoice.TotalAmount, invoice.AdvancePaymentPercent)
		if err != nil {
			return nil, fmt.Errorf("failed to compute advance payment: %w", err)
		}
	}

	var balance primitive.Decimal128
	if invoice.BalanceOnDelivery != nil {
		balance = *invoice.BalanceOnDelivery
	} else {
		var err error
		balance, err = helper.SubDecimal128(invoice.TotalAmount, advance)
		if err != nil {
			return nil, fmt.Errorf("failed to compute balance on delivery: %w", err)
		}
	}
	b.AdvancePayment = dto.BreakdownAmount{Amount: advance, Available: true}
	b.BalanceOnDelivery = dto.BreakdownAmount{Amount: balance, Available: true}

	return b, nil
}

func resolvePostedPrice(invoice *models.Invoice, load *models.Load) (primitive.Decimal128, bool) {
	if invoice.AdminPostedPrice != nil {
		return *invoice.AdminPostedPrice, true
	}
	if load != nil && load.AdminFinalPrice != nil {
		return *load.AdminFinalPrice, true
	}
	// A priced invoice always carries a subtotal, so this fallback only
	// misses on zero-value records.
	zero := helper.ZeroDecimal128()
	if cmp, err := helper.CompareDecimal128(invoice.Subtotal, zero); err == nil && cmp != 0 {
		return invoice.Subtotal, true
	}
	return zero, false
}

func resolveWinningBid(invoice *models.Invoice) (primitive.Decimal128, bool) {
	if invoice.WinningBidAmount != nil {
		return *invoice.WinningBidAmount, true
	}
	if invoice.EstimatedCarrierPayout != nil {
		return *invoice.EstimatedCarrierPayout, true
	}
	return helper.ZeroDecimal128(), false
}

func isNonPositive(d primitive.Decimal128) (bool, error) {
	cmp, err := helper.CompareDecimal128(d, helper.ZeroDecimal128())
	if err != nil {
		return false, err
	}
	return cmp <= 0, nil
}
