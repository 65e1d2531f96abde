package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	usersCollection     = "users"
	contestsCollection  = "contests"
	questionsCollection = "questions"
	entriesCollection   = "entries"
	paymentsCollection  = "payments"
)

// EnsureIndexes creates the indexes the repositories rely on.
// The unique (userId, contestId) index on entries is what keeps one entry per user and contest.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		questionsCollection: {
			{Keys: bson.D{{Key: "contestId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		entriesCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "contestId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "contestId", Value: 1}}},
		},
		paymentsCollection: {
			{Keys: bson.D{{Key: "orderId", Value: 1}}, Options: options.Index().SetSparse(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
	}
	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}
