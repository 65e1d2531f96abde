package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repositories.EntryRepository = (*EntryRepository)(nil)

// EntryRepository handles MongoDB operations for Entry.
// Uniqueness of (userId, contestId) comes from the index created by EnsureIndexes.
type EntryRepository struct {
	collection *mongo.Collection
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *mongo.Database) *EntryRepository {
	return &EntryRepository{
		collection: db.Collection(entriesCollection),
	}
}

// Create inserts a new entry
func (r *EntryRepository) Create(ctx context.Context, entry *models.Entry) error {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	_, err := r.collection.InsertOne(ctx, entry)
	return translateError(err)
}

// FindByID finds an entry by ID
func (r *EntryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Entry, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByUserAndContest finds a user's entry in a contest
func (r *EntryRepository) FindByUserAndContest(ctx context.Context, userID string, contestID primitive.ObjectID) (*models.Entry, error) {
	return r.findOne(ctx, bson.M{"userId": userID, "contestId": contestID})
}

// FindByUser lists a user's entries, newest first
func (r *EntryRepository) FindByUser(ctx context.Context, userID string) ([]*models.Entry, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

// FindByContest lists a contest's entries, newest first
func (r *EntryRepository) FindByContest(ctx context.Context, contestID primitive.ObjectID) ([]*models.Entry, error) {
	return r.find(ctx, bson.M{"contestId": contestID})
}

// FindAll lists every entry, newest first
func (r *EntryRepository) FindAll(ctx context.Context) ([]*models.Entry, error) {
	return r.find(ctx, bson.M{})
}

// Settle records the quiz outcome. The filter only matches entries that are paid and not yet
// attempted, so of two racing settlements exactly one succeeds.
func (r *EntryRepository) Settle(ctx context.Context, id primitive.ObjectID, settlement models.Settlement) (*models.Entry, error) {
	filter := bson.M{
		"_id":           id,
		"paymentStatus": models.PaymentStatusCompleted,
		"quizAttempted": false,
	}
	update := bson.M{"$set": bson.M{
		"quizAttempted":  true,
		"quizPassed":     settlement.QuizPassed,
		"qualified":      settlement.QuizPassed,
		"selectedAnswer": settlement.SelectedAnswer,
		"submittedAt":    settlement.SubmittedAt,
		"updatedAt":      settlement.SubmittedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var entry models.Entry
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrConditionFailed
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Count counts all entries
func (r *EntryRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// CountQualified counts entries whose quiz was passed
func (r *EntryRepository) CountQualified(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"qualified": true})
}

func (r *EntryRepository) findOne(ctx context.Context, filter bson.M) (*models.Entry, error) {
	var entry models.Entry
	if err := r.collection.FindOne(ctx, filter).Decode(&entry); err != nil {
		return nil, translateError(err)
	}
	return &entry, nil
}

func (r *EntryRepository) find(ctx context.Context, filter bson.M) ([]*models.Entry, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []*models.Entry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
