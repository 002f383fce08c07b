package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CounterOffer is one proposal cycle within an invoice's negotiation thread.
// Serial is the 1-based ordinal in the invoice's history. At most one counter
// per invoice may be pending at a time; the check happens at proposal time.
type CounterOffer struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	Invoice    primitive.ObjectID   `bson:"invoice"`
	Serial     int                  `bson:"serial"`
	Amount     primitive.Decimal128 `bson:"amount"`
	Reason     string               `bson:"reason,omitempty"`
	ProposedBy string               `bson:"proposed_by"`
	Status     string               `bson:"status"`

	CreatedAt    time.Time  `bson:"created_at"`
	RespondedAt  *time.Time `bson:"responded_at,omitempty"`
	ResponseNote string     `bson:"response_note,omitempty"`
	RespondedBy  *User      `bson:"responded_by,omitempty"`
}
