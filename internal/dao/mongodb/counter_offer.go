package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"loadsmart_billing/internal/constants"
	"loadsmart_billing/internal/dao/fields"
	"loadsmart_billing/internal/dao/repository"
	"loadsmart_billing/internal/models"
)

func NewCounterOfferDAO(db *mongo.Database, logger *zap.Logger) *CounterOfferDAO {
	return &CounterOfferDAO{
		offersCollection: db.Collection(CollectionCounterOffers),
		logger:           logger.Named("CounterOfferDAO"),
	}
}

type CounterOfferDAO struct {
	offersCollection *mongo.Collection
	logger           *zap.Logger
}

func (d *CounterOfferDAO) CreateCounterOffer(ctx context.Context, offer *models.CounterOffer) (primitive.ObjectID, error) {
	res, err := d.offersCollection.InsertOne(ctx, offer)
	if err != nil {
		d.logger.Error("CreateCounterOffer: InsertOne failed", zap.Error(err), zap.Stringer("invoice", offer.Invoice))
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// GetCounterOfferByID retrieves a single counter-offer by its ID.
func (d *CounterOfferDAO) GetCounterOfferByID(ctx context.Context, id primitive.ObjectID) (*models.CounterOffer, error) {
	var offer models.CounterOffer
	err := d.offersCollection.FindOne(ctx, bson.M{fields.FieldObjectId: id}).Decode(&offer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		d.logger.Error("GetCounterOfferByID: FindOne failed", zap.Error(err), zap.Stringer("id", id))
		return nil, err
	}
	return &offer, nil
}

// GetCounterOffersByInvoice returns the full negotiation history for an
// invoice in proposal order. The flattened latest-counter view an invoice
// exposes is derived from the tail of this list, never stored separately.
func (d *CounterOfferDAO) GetCounterOffersByInvoice(ctx context.Context, invoiceID primitive.ObjectID) ([]*models.CounterOffer, error) {
	var offers []*models.CounterOffer
	findOptions := options.Find().SetSort(bson.D{{Key: fields.FieldCounterOfferSerial, Value: 1}})
	cursor, err := d.offersCollection.Find(ctx, bson.M{fields.FieldCounterOfferInvoice: invoiceID}, findOptions)
	if err != nil {
		d.logger.Error("GetCounterOffersByInvoice: Find failed", zap.Error(err), zap.Stringer("invoiceID", invoiceID))
		return nil, err
	}
	if err := cursor.All(ctx, &offers); err != nil {
		d.logger.Error("GetCounterOffersByInvoice: cursor.All failed", zap.Error(err), zap.Stringer("invoiceID", invoiceID))
		return nil, err
	}
	return offers, nil
}

// GetPendingCounterOfferByInvoice returns the invoice's pending counter, or
// ErrNotFound when none is outstanding.
func (d *CounterOfferDAO) GetPendingCounterOfferByInvoice(ctx context.Context, invoiceID primitive.ObjectID) (*models.CounterOffer, error) {
	filter := bson.M{
		fields.FieldCounterOfferInvoice: invoiceID,
		fields.FieldStatus:              constants.CounterOfferStatusPending.String(),
	}
	var offer models.CounterOffer
	err := d.offersCollection.FindOne(ctx, filter).Decode(&offer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		d.logger.Error("GetPendingCounterOfferByInvoice: FindOne failed", zap.Error(err), zap.Stringer("invoiceID", invoiceID))
		return nil, err
	}
	return &offer, nil
}

func (d *CounterOfferDAO) CountCounterOffersByInvoice(ctx context.Context, invoiceID primitive.ObjectID) (int64, error) {
	count, err := d.offersCollection.CountDocuments(ctx, bson.M{fields.FieldCounterOfferInvoice: invoiceID})
	if err != nil {
		d.logger.Error("CountCounterOffersByInvoice: CountDocuments failed", zap.Error(err), zap.Stringer("invoiceID", invoiceID))
		return 0, err
	}
	return count, nil
}

// UpdateCounterOffer updates a single counter-offer using functional options.
func (d *CounterOfferDAO) UpdateCounterOffer(ctx context.Context, id primitive.ObjectID, opts ...repository.UpdateOption) error {
	updateData := repository.NewUpdateOptions()
	for _, opt := range opts {
		opt(updateData)
	}

	if len(updateData.SetFields) == 0 {
		return nil
	}

	update := bson.M{"$set": updateData.SetFields}

	res, err := d.offersCollection.UpdateOne(ctx, bson.M{fields.FieldObjectId: id}, update)
	if err != nil {
		d.logger.Error("UpdateCounterOffer: UpdateOne failed", zap.Error(err), zap.Stringer("id", id))
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
