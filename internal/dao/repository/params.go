package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Parameter Structs ---

// GetInvoicesParams narrows an invoice listing. Zero values mean "no filter".
// OverdueOnly translates to status=sent with an expired due date; overdue is
// never a stored status.
type GetInvoicesParams struct {
	Shipper     *primitive.ObjectID
	Load        *primitive.ObjectID
	Status      string
	OverdueOnly bool
	AsOf        time.Time
	Limit       int
	Offset      int
}
