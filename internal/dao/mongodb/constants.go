package mongodb

const (
	CollectionInvoices      = "invoices"
	CollectionCounterOffers = "counter_offers"
	CollectionLoads         = "loads"
	CollectionOutbox        = "outbox"
	CollectionAuditLogs     = "audit_logs"
)
