package constants

// InvoiceEvent defines the type for invoice lifecycle events in messaging.
// Using a dedicated type enhances type safety.
type InvoiceEvent string

const (
	InvoiceEventSent            InvoiceEvent = "invoice_sent"
	InvoiceEventViewed          InvoiceEvent = "invoice_viewed"
	InvoiceEventAcknowledged    InvoiceEvent = "invoice_acknowledged"
	InvoiceEventCountered       InvoiceEvent = "invoice_countered"
	InvoiceEventCounterResolved InvoiceEvent = "invoice_counter_resolved"
	InvoiceEventPaid            InvoiceEvent = "invoice_paid"
	InvoiceEventOverdueReminder InvoiceEvent = "invoice_overdue_reminder"
)

// String returns the string representation of the InvoiceEvent.
func (e InvoiceEvent) String() string {
	return string(e)
}

// Relation namespaces for resource-role checks.
const (
	ResourceInvoice      = "Invoice"
	ResourceCounterOffer = "CounterOffer"
)

// RelationAccounting is the relation an operator must hold on an invoice
// before a mark-paid mutation is accepted.
const RelationAccounting = "accounting"
