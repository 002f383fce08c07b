package mongodb

import (
	"context"
	"errors"
	"time"

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

func NewInvoiceDAO(db *mongo.Database, logger *zap.Logger) *InvoiceDAO {
	return &InvoiceDAO{
		invoicesCollection: db.Collection(CollectionInvoices),
		logger:             logger.Named("InvoiceDAO"),
	}
}

type InvoiceDAO struct {
	invoicesCollection *mongo.Collection
	logger             *zap.Logger
}

func (d *InvoiceDAO) CreateInvoice(ctx context.Context, invoice *models.Invoice) (primitive.ObjectID, error) {
	res, err := d.invoicesCollection.InsertOne(ctx, invoice)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicateInvoiceNum
		}
		d.logger.Error("CreateInvoice: InsertOne failed", zap.Error(err), zap.String("invoiceNumber", invoice.InvoiceNumber))
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// GetInvoiceByID retrieves a single invoice by its ID.
func (d *InvoiceDAO) GetInvoiceByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := d.invoicesCollection.FindOne(ctx, bson.M{fields.FieldObjectId: id}).Decode(&invoice)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		d.logger.Error("GetInvoiceByID: FindOne failed", zap.Error(err), zap.Stringer("id", id))
		return nil, err
	}
	return &invoice, nil
}

// GetInvoiceByNumber retrieves a single invoice by its human-readable number.
func (d *InvoiceDAO) GetInvoiceByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := d.invoicesCollection.FindOne(ctx, bson.M{fields.FieldInvoiceNumber: number}).Decode(&invoice)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		d.logger.Error("GetInvoiceByNumber: FindOne failed", zap.Error(err), zap.String("number", number))
		return nil, err
	}
	return &invoice, nil
}

// GetInvoices lists invoices matching the given params along with the total
// count for pagination. The overdue filter is expressed as a query over sent
// invoices with an expired due date; overdue is never stored.
func (d *InvoiceDAO) GetInvoices(ctx context.Context, params *repository.GetInvoicesParams) ([]*models.Invoice, int64, error) {
	filter := bson.M{}
	if params.Shipper != nil {
		filter[fields.FieldInvoiceShipper] = *params.Shipper
	}
	if params.Load != nil {
		filter[fields.FieldInvoiceLoad] = *params.Load
	}
	if params.OverdueOnly {
		filter[fields.FieldStatus] = constants.InvoiceStatusSent.String()
		filter[fields.FieldInvoiceDueDate] = bson.M{"$lt": params.AsOf}
	} else if params.Status != "" {
		filter[fields.FieldStatus] = params.Status
	}

	total, err := d.invoicesCollection.CountDocuments(ctx, filter)
	if err != nil {
		d.logger.Error("GetInvoices: CountDocuments failed", zap.Error(err))
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: fields.FieldCreatedAt, Value: -1}}).
		SetSkip(int64(params.Offset)).
		SetLimit(int64(params.Limit))

	cursor, err := d.invoicesCollection.Find(ctx, filter, findOptions)
	if err != nil {
		d.logger.Error("GetInvoices: Find failed", zap.Error(err))
		return nil, 0, err
	}

	var invoices []*models.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		d.logger.Error("GetInvoices: cursor.All failed", zap.Error(err))
		return nil, 0, err
	}
	return invoices, total, nil
}

// UpdateInvoice updates a single invoice using functional options.
func (d *InvoiceDAO) UpdateInvoice(ctx context.Context, id primitive.ObjectID, opts ...repository.UpdateOption) error {
	updateData := repository.NewUpdateOptions()
	for _, opt := range opts {
		opt(updateData)
	}

	if len(updateData.SetFields) == 0 {
		return nil // Nothing to do.
	}

	// Always set the updated_at field when other fields are being set.
	updateData.SetFields[fields.FieldUpdatedAt] = time.Now()
	update := bson.M{"$set": updateData.SetFields}

	res, err := d.invoicesCollection.UpdateOne(ctx, bson.M{fields.FieldObjectId: id}, update)
	if err != nil {
		d.logger.Error("UpdateInvoice: UpdateOne failed", zap.Error(err), zap.Stringer("id", id))
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetOverdueInvoices returns sent invoices whose due date has passed as of
// the given instant. The stored status is left untouched by callers.
func (d *InvoiceDAO) GetOverdueInvoices(ctx context.Context, asOf time.Time, limit int) ([]*models.Invoice, error) {
	filter := bson.M{
		fields.FieldStatus:         constants.InvoiceStatusSent.String(),
		fields.FieldInvoiceDueDate: bson.M{"$lt": asOf},
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: fields.FieldInvoiceDueDate, Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := d.invoicesCollection.Find(ctx, filter, findOptions)
	if err != nil {
		d.logger.Error("GetOverdueInvoices: Find failed", zap.Error(err))
		return nil, err
	}

	var invoices []*models.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		d.logger.Error("GetOverdueInvoices: cursor.All failed", zap.Error(err))
		return nil, err
	}
	return invoices, nil
}
