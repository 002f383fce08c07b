package constants

type InvoiceStatus int
type ShipperResponseStatus int

const (
	InvoiceStatusUnknown InvoiceStatus = iota
	InvoiceStatusDraft
	InvoiceStatusSent
	InvoiceStatusApproved
	InvoiceStatusPaid
)

// Overdue is intentionally absent from InvoiceStatus. It is a read-time
// predicate over sent invoices with an expired due date, never a stored state.
// See logic.IsInvoiceOverdue.

const (
	ShipperResponseUnknown ShipperResponseStatus = iota
	ShipperResponsePending
	ShipperResponseViewed
	ShipperResponseAcknowledged
	ShipperResponseCountered
	ShipperResponsePaid
)

func (s InvoiceStatus) String() string {
	switch s {
	case InvoiceStatusDraft:
		return "draft"
	case InvoiceStatusSent:
		return "sent"
	case InvoiceStatusApproved:
		return "approved"
	case InvoiceStatusPaid:
		return "paid"
	default:
		return "unknown"
	}
}

var invoiceStatusMap = map[string]InvoiceStatus{
	"draft":    InvoiceStatusDraft,
	"sent":     InvoiceStatusSent,
	"approved": InvoiceStatusApproved,
	"paid":     InvoiceStatusPaid,
	"unknown":  InvoiceStatusUnknown,
}

func ParseInvoiceStatus(s string) InvoiceStatus {
	if status, ok := invoiceStatusMap[s]; ok {
		return status
	}
	return InvoiceStatusUnknown
}

func (s ShipperResponseStatus) String() string {
	switch s {
	case ShipperResponsePending:
		return "pending"
	case ShipperResponseViewed:
		return "viewed"
	case ShipperResponseAcknowledged:
		return "acknowledged"
	case ShipperResponseCountered:
		return "countered"
	case ShipperResponsePaid:
		return "paid"
	default:
		return "unknown"
	}
}

var shipperResponseStatusMap = map[string]ShipperResponseStatus{
	"pending":      ShipperResponsePending,
	"viewed":       ShipperResponseViewed,
	"acknowledged": ShipperResponseAcknowledged,
	"countered":    ShipperResponseCountered,
	"paid":         ShipperResponsePaid,
	"unknown":      ShipperResponseUnknown,
}

func ParseShipperResponseStatus(s string) ShipperResponseStatus {
	if status, ok := shipperResponseStatusMap[s]; ok {
		return status
	}
	return ShipperResponseUnknown
}
