package fields

const (
	FieldObjectId  = "_id"
	FieldCreatedAt = "created_at"
	FieldCreatedBy = "created_by"
	FieldUpdatedAt = "updated_at"
	FieldUpdatedBy = "updated_by"
	FieldStatus    = "status"

	FieldInvoiceNumber          = "invoice_number"
	FieldInvoiceLoad            = "load"
	FieldInvoiceShipper         = "shipper"
	FieldInvoiceCarrier         = "carrier"
	FieldInvoiceSubtotal        = "subtotal"
	FieldInvoiceTaxAmount       = "tax_amount"
	FieldInvoiceTaxPercent      = "tax_percent"
	FieldInvoiceTotalAmount     = "total_amount"
	FieldInvoiceShipperResponse = "shipper_response_status"
	FieldInvoiceSentAt          = "sent_at"
	FieldInvoiceAcknowledgedAt  = "acknowledged_at"
	FieldInvoicePaidAt          = "paid_at"
	FieldInvoiceDueDate         = "due_date"
	FieldInvoiceCounteredAt     = "countered_at"
	FieldInvoiceAdvanceAmount   = "advance_payment_amount"
	FieldInvoiceBalance         = "balance_on_delivery"

	FieldCounterOfferInvoice      = "invoice"
	FieldCounterOfferSerial       = "serial"
	FieldCounterOfferAmount       = "amount"
	FieldCounterOfferRespondedAt  = "responded_at"
	FieldCounterOfferResponseNote = "response_note"
	FieldCounterOfferRespondedBy  = "responded_by"
	FieldCounterOfferProposedBy   = "proposed_by"
)
