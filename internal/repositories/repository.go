package repositories

import (
	"context"
	"errors"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when no document matches a lookup
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint
	ErrDuplicate = errors.New("duplicate key")
	// ErrConditionFailed is returned when a conditional update matched no document
	ErrConditionFailed = errors.New("condition failed")
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// ContestRepository defines the interface for contest data operations
type ContestRepository interface {
	Create(ctx context.Context, contest *models.Contest) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Contest, error)
	FindAll(ctx context.Context) ([]*models.Contest, error)
	Update(ctx context.Context, contest *models.Contest) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// IncrementEntries takes one entry slot. It fails with ErrConditionFailed when the
	// contest is at maxEntries (0 means unlimited) so currentEntries never exceeds it.
	IncrementEntries(ctx context.Context, id primitive.ObjectID) error
	// DecrementEntries gives back a slot taken by IncrementEntries
	DecrementEntries(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// QuestionRepository defines the interface for qualification question data operations
type QuestionRepository interface {
	Create(ctx context.Context, question *models.QualificationQuestion) error
	FindByContestID(ctx context.Context, contestID primitive.ObjectID) (*models.QualificationQuestion, error)
	Update(ctx context.Context, question *models.QualificationQuestion) error
	DeleteByContestID(ctx context.Context, contestID primitive.ObjectID) error
}

// EntryRepository defines the interface for contest entry data operations.
// Create must reject a second entry for the same (user, contest) with ErrDuplicate and
// Settle must only touch entries whose quiz has not been attempted, else ErrConditionFailed.
type EntryRepository interface {
	Create(ctx context.Context, entry *models.Entry) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Entry, error)
	FindByUserAndContest(ctx context.Context, userID string, contestID primitive.ObjectID) (*models.Entry, error)
	FindByUser(ctx context.Context, userID string) ([]*models.Entry, error)
	FindByContest(ctx context.Context, contestID primitive.ObjectID) ([]*models.Entry, error)
	FindAll(ctx context.Context) ([]*models.Entry, error)
	Settle(ctx context.Context, id primitive.ObjectID, settlement models.Settlement) (*models.Entry, error)
	Count(ctx context.Context) (int64, error)
	CountQualified(ctx context.Context) (int64, error)
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error)
	FindByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	FindByUser(ctx context.Context, userID string) ([]*models.Payment, error)
	FindByStatus(ctx context.Context, status models.PaymentStatus) ([]*models.Payment, error)
	SetOrderID(ctx context.Context, id primitive.ObjectID, orderID string) error
	// UpdateStatus moves a pending payment to a final status
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus, transactionID, reason string) error
}
