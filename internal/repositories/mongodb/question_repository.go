package mongodb

import (
	"context"
	"time"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ repositories.QuestionRepository = (*QuestionRepository)(nil)

// QuestionRepository handles MongoDB operations for QualificationQuestion
type QuestionRepository struct {
	collection *mongo.Collection
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{
		collection: db.Collection(questionsCollection),
	}
}

// Create inserts a question. A second question for the same contest is repositories.ErrDuplicate.
func (r *QuestionRepository) Create(ctx context.Context, question *models.QualificationQuestion) error {
	if question.ID.IsZero() {
		question.ID = primitive.NewObjectID()
	}
	question.CreatedAt = time.Now()
	question.UpdatedAt = question.CreatedAt
	_, err := r.collection.InsertOne(ctx, question)
	return translateError(err)
}

// FindByContestID finds the question attached to a contest
func (r *QuestionRepository) FindByContestID(ctx context.Context, contestID primitive.ObjectID) (*models.QualificationQuestion, error) {
	var question models.QualificationQuestion
	err := r.collection.FindOne(ctx, bson.M{"contestId": contestID}).Decode(&question)
	if err != nil {
		return nil, translateError(err)
	}
	return &question, nil
}

// Update replaces the text, options and answer of a contest's question
func (r *QuestionRepository) Update(ctx context.Context, question *models.QualificationQuestion) error {
	question.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"question":      question.Question,
		"options":       question.Options,
		"correctAnswer": question.CorrectAnswer,
		"updatedAt":     question.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"contestId": question.ContestID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// DeleteByContestID removes a contest's question
func (r *QuestionRepository) DeleteByContestID(ctx context.Context, contestID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"contestId": contestID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
