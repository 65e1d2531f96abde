package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// toDoc round-trips a model through bson so mock responses match the stored shape
func toDoc(t *testing.T, v interface{}) bson.D {
	t.Helper()
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func ns(mt *mtest.T, collection string) string {
	return mt.DB.Name() + "." + collection
}

func TestEntryRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create assigns an ID", func(mt *mtest.T) {
		repo := NewEntryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		entry := &models.Entry{UserID: "user-1", ContestID: primitive.NewObjectID(), PaymentStatus: models.PaymentStatusCompleted}
		require.NoError(t, repo.Create(ctx, entry))
		assert.False(t, entry.ID.IsZero())
		assert.False(t, entry.CreatedAt.IsZero())
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := NewEntryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: entries index: userId_1_contestId_1",
		}))

		err := repo.Create(ctx, &models.Entry{UserID: "user-1", ContestID: primitive.NewObjectID()})
		assert.ErrorIs(t, err, repositories.ErrDuplicate)
	})

	mt.Run("find by user and contest", func(mt *mtest.T) {
		repo := NewEntryRepository(mt.DB)
		stored := models.Entry{
			ID:            primitive.NewObjectID(),
			UserID:        "user-1",
			ContestID:     primitive.NewObjectID(),
			PaymentID:     "MOCK_PAYMENT_1",
			PaymentStatus: models.PaymentStatusCompleted,
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, entriesCollection), mtest.FirstBatch, toDoc(t, stored)))

		entry, err := repo.FindByUserAndContest(ctx, stored.UserID, stored.ContestID)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, entry.ID)
		assert.Equal(t, "MOCK_PAYMENT_1", entry.PaymentID)
		assert.False(t, entry.QuizAttempted)
	})

	mt.Run("find missing", func(mt *mtest.T) {
		repo := NewEntryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, entriesCollection), mtest.FirstBatch))

		_, err := repo.FindByUserAndContest(ctx, "user-1", primitive.NewObjectID())
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	mt.Run("settle returns the updated entry", func(mt *mtest.T) {
		repo := NewEntryRepository(mt.DB)
		answer := 2
		submitted := time.Now().UTC().Truncate(time.Millisecond)
		settled := models.Entry{
			ID:             primitive.NewObjectID(),
			UserID:         "user-1",
			ContestID:      primitive.NewObjectID(),
			PaymentStatus:  models.PaymentStatusCompleted,
			QuizAttempted:  true,
			QuizPassed:     true,
			Qualified:      true,
			SelectedAnswer: &answer,
			SubmittedAt:    &submitted,
		}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: toDoc(t, settled)}))

		entry, err := repo.Settle(ctx, settled.ID, models.Settlement{QuizPassed: true, SelectedAnswer: answer, SubmittedAt: submitted})
		require.NoError(t, err)
		assert.True(t, entry.Qualified)
		require.NotNil(t, entry.SelectedAnswer)
		assert.Equal(t, 2, *entry.SelectedAnswer)
	})

	mt.Run("settle lost race", func(mt *mtest.T) {
		repo := NewEntryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.Settle(ctx, primitive.NewObjectID(), models.Settlement{SubmittedAt: time.Now()})
		assert.ErrorIs(t, err, repositories.ErrConditionFailed)
	})

	mt.Run("count qualified", func(mt *mtest.T) {
		repo := NewEntryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, entriesCollection), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}))

		count, err := repo.CountQualified(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestPaymentRepositoryUpdateStatus(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("pending payment", func(mt *mtest.T) {
		repo := NewPaymentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		err := repo.UpdateStatus(ctx, primitive.NewObjectID(), models.PaymentStatusCompleted, "TX-1", "")
		assert.NoError(t, err)
	})

	mt.Run("already final", func(mt *mtest.T) {
		repo := NewPaymentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.UpdateStatus(ctx, primitive.NewObjectID(), models.PaymentStatusFailed, "", "declined")
		assert.ErrorIs(t, err, repositories.ErrConditionFailed)
	})
}

func TestContestRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find all", func(mt *mtest.T) {
		repo := NewContestRepository(mt.DB)
		first := models.Contest{ID: primitive.NewObjectID(), Title: "BMW X3", EntryFee: 199, MaxEntries: 3000, IsActive: true}
		second := models.Contest{ID: primitive.NewObjectID(), Title: "iPhone 15 Pro Max", EntryFee: 99, MaxEntries: 2000, IsActive: true}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, contestsCollection), mtest.FirstBatch, toDoc(t, first), toDoc(t, second)))

		contests, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, contests, 2)
		assert.Equal(t, "BMW X3", contests[0].Title)
		assert.Equal(t, 99.0, contests[1].EntryFee)
	})

	mt.Run("increment missing contest", func(mt *mtest.T) {
		repo := NewContestRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, ns(mt, contestsCollection), mtest.FirstBatch),
		)

		err := repo.IncrementEntries(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	mt.Run("increment full contest", func(mt *mtest.T) {
		repo := NewContestRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, ns(mt, contestsCollection), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}),
		)

		err := repo.IncrementEntries(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, repositories.ErrConditionFailed)
	})

	mt.Run("increment with room", func(mt *mtest.T) {
		repo := NewContestRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		assert.NoError(t, repo.IncrementEntries(ctx, primitive.NewObjectID()))
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewContestRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(t, repo.Delete(ctx, primitive.NewObjectID()))
	})
}
