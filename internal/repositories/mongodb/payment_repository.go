package mongodb

import (
	"context"
	"time"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repositories.PaymentRepository = (*PaymentRepository)(nil)

// PaymentRepository handles MongoDB operations for Payment
type PaymentRepository struct {
	collection *mongo.Collection
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{
		collection: db.Collection(paymentsCollection),
	}
}

// Create inserts a new payment record
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = payment.CreatedAt
	_, err := r.collection.InsertOne(ctx, payment)
	return translateError(err)
}

// FindByID finds a payment by ID
func (r *PaymentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&payment); err != nil {
		return nil, translateError(err)
	}
	return &payment, nil
}

// FindByOrderID finds a payment by the provider's order ID
func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.collection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&payment); err != nil {
		return nil, translateError(err)
	}
	return &payment, nil
}

// FindByUser lists a user's payments, newest first
func (r *PaymentRepository) FindByUser(ctx context.Context, userID string) ([]*models.Payment, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

// FindByStatus lists payments with the given status
func (r *PaymentRepository) FindByStatus(ctx context.Context, status models.PaymentStatus) ([]*models.Payment, error) {
	return r.find(ctx, bson.M{"status": status})
}

// SetOrderID attaches the provider order ID to a payment record
func (r *PaymentRepository) SetOrderID(ctx context.Context, id primitive.ObjectID, orderID string) error {
	update := bson.M{"$set": bson.M{"orderId": orderID, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// UpdateStatus finalises a pending payment. Already-final payments are left untouched.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus, transactionID, reason string) error {
	filter := bson.M{"_id": id, "status": models.PaymentStatusPending}
	set := bson.M{"status": status, "updatedAt": time.Now()}
	if transactionID != "" {
		set["transactionId"] = transactionID
	}
	if reason != "" {
		set["failureReason"] = reason
	}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrConditionFailed
	}
	return nil
}

func (r *PaymentRepository) find(ctx context.Context, filter bson.M) ([]*models.Payment, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	payments := []*models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
