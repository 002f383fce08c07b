package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Load is a read-only projection of the load a billing document belongs to.
// Load lifecycle itself is owned by the marketplace service; invoicing only
// reads the pricing and linkage fields.
type Load struct {
	ID              primitive.ObjectID    `bson:"_id,omitempty"`
	Shipper         primitive.ObjectID    `bson:"shipper"`
	Carrier         *primitive.ObjectID   `bson:"carrier,omitempty"`
	Origin          string                `bson:"origin,omitempty"`
	Destination     string                `bson:"destination,omitempty"`
	AdminFinalPrice *primitive.Decimal128 `bson:"admin_final_price,omitempty"`
	CreatedAt       time.Time             `bson:"created_at"`
	UpdatedAt       time.Time             `bson:"updated_at"`
}
