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

var _ repositories.ContestRepository = (*ContestRepository)(nil)

// ContestRepository handles MongoDB operations for Contest
type ContestRepository struct {
	collection *mongo.Collection
}

// NewContestRepository creates a new ContestRepository
func NewContestRepository(db *mongo.Database) *ContestRepository {
	return &ContestRepository{
		collection: db.Collection(contestsCollection),
	}
}

// Create inserts a new contest
func (r *ContestRepository) Create(ctx context.Context, contest *models.Contest) error {
	if contest.ID.IsZero() {
		contest.ID = primitive.NewObjectID()
	}
	contest.CreatedAt = time.Now()
	contest.UpdatedAt = contest.CreatedAt
	_, err := r.collection.InsertOne(ctx, contest)
	return translateError(err)
}

// FindByID finds a contest by ID
func (r *ContestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Contest, error) {
	var contest models.Contest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&contest)
	if err != nil {
		return nil, translateError(err)
	}
	return &contest, nil
}

// FindAll retrieves all contests ordered by end date
func (r *ContestRepository) FindAll(ctx context.Context) ([]*models.Contest, error) {
	opts := options.Find().SetSort(bson.M{"endDate": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	contests := []*models.Contest{}
	if err := cursor.All(ctx, &contests); err != nil {
		return nil, err
	}
	return contests, nil
}

// Update replaces a contest's editable fields. The entry counter is owned by IncrementEntries.
func (r *ContestRepository) Update(ctx context.Context, contest *models.Contest) error {
	contest.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"title":       contest.Title,
		"description": contest.Description,
		"category":    contest.Category,
		"imageUrl":    contest.ImageURL,
		"entryFee":    contest.EntryFee,
		"prizeValue":  contest.PrizeValue,
		"startDate":   contest.StartDate,
		"endDate":     contest.EndDate,
		"maxEntries":  contest.MaxEntries,
		"isActive":    contest.IsActive,
		"updatedAt":   contest.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": contest.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a contest by ID
func (r *ContestRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// IncrementEntries atomically takes a slot, only matching contests with room left
func (r *ContestRepository) IncrementEntries(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{
		"_id": id,
		"$or": bson.A{
			bson.M{"maxEntries": 0},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$currentEntries", "$maxEntries"}}},
		},
	}
	return r.adjustEntries(ctx, id, filter, 1)
}

// DecrementEntries releases a slot. The counter never goes below zero.
func (r *ContestRepository) DecrementEntries(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "currentEntries": bson.M{"$gt": 0}}
	return r.adjustEntries(ctx, id, filter, -1)
}

func (r *ContestRepository) adjustEntries(ctx context.Context, id primitive.ObjectID, filter bson.M, delta int) error {
	update := bson.M{
		"$inc": bson.M{"currentEntries": delta},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}

	// Nothing matched: either the contest is gone or the guard rejected the change
	exists, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if exists == 0 {
		return repositories.ErrNotFound
	}
	return repositories.ErrConditionFailed
}

// Count counts all contests
func (r *ContestRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
