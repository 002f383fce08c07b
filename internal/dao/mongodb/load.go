package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"loadsmart_billing/internal/dao/fields"
	"loadsmart_billing/internal/models"
)

func NewLoadDAO(db *mongo.Database, logger *zap.Logger) *LoadDAO {
	return &LoadDAO{
		loadsCollection: db.Collection(CollectionLoads),
		logger:          logger.Named("LoadDAO"),
	}
}

// LoadDAO reads load documents owned by the marketplace service. Invoicing
// never writes to this collection.
type LoadDAO struct {
	loadsCollection *mongo.Collection
	logger          *zap.Logger
}

func (d *LoadDAO) GetLoadByID(ctx context.Context, id primitive.ObjectID) (*models.Load, error) {
	var load models.Load
	err := d.loadsCollection.FindOne(ctx, bson.M{fields.FieldObjectId: id}).Decode(&load)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		d.logger.Error("GetLoadByID: FindOne failed", zap.Error(err), zap.Stringer("id", id))
		return nil, err
	}
	return &load, nil
}
