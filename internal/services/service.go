package services

import (
	"context"
	"io"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QualificationSource provides a contest's skill question and grades answers to it.
// GetQuestion never exposes the correct option.
type QualificationSource interface {
	GetQuestion(ctx context.Context, contestID primitive.ObjectID) (*models.PublicQuestion, error)
	CheckAnswer(ctx context.Context, contestID primitive.ObjectID, selectedIndex int) (bool, error)
}

// AnswerRevealer is implemented by qualification sources that can disclose the correct
// option once an entry is settled
type AnswerRevealer interface {
	CorrectAnswer(ctx context.Context, contestID primitive.ObjectID) (int, error)
}

// EntryService drives one user's participation in a contest:
// awaiting payment, then awaiting quiz, then settled.
type EntryService interface {
	// Initiate checks that the user may enter and quotes the entry fee. Nothing is persisted.
	Initiate(ctx context.Context, userID string, contestID primitive.ObjectID) (*models.EntryQuote, error)

	// RecordPayment creates the entry when the payment succeeded. It is the only way an entry is created.
	RecordPayment(ctx context.Context, userID string, contestID primitive.ObjectID, outcome models.PaymentOutcome) (*models.Entry, error)

	// SubmitQualification grades the single allowed quiz answer and settles the entry
	SubmitQualification(ctx context.Context, userID string, contestID primitive.ObjectID, selectedIndex int) (*models.QualificationResult, error)

	// GetEntry returns the user's entry for the contest; found is false when there is none
	GetEntry(ctx context.Context, userID string, contestID primitive.ObjectID) (entry *models.Entry, found bool, err error)

	ListUserEntries(ctx context.Context, userID string) ([]*models.Entry, error)
}

// PaymentService runs checkout against the configured payment provider
type PaymentService interface {
	CreateOrder(ctx context.Context, userID string, contestID primitive.ObjectID) (*models.OrderResponse, error)
	Capture(ctx context.Context, userID string, contestID primitive.ObjectID, req *models.CaptureRequest) (*models.Entry, error)
	ListUserPayments(ctx context.Context, userID string) ([]*models.Payment, error)
}

// ContestService defines the interface for contest catalogue operations
type ContestService interface {
	List(ctx context.Context, filter models.ContestFilter) ([]*models.Contest, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Contest, error)
	Create(ctx context.Context, req *models.ContestRequest, createdBy string) (*models.Contest, error)
	Update(ctx context.Context, id primitive.ObjectID, req *models.ContestRequest) (*models.Contest, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// QuizService is the qualification source plus admin management of questions
type QuizService interface {
	QualificationSource
	AnswerRevealer
	GetForAdmin(ctx context.Context, contestID primitive.ObjectID) (*models.QualificationQuestion, error)
	Create(ctx context.Context, contestID primitive.ObjectID, req *models.QuestionRequest) (*models.QualificationQuestion, error)
	Update(ctx context.Context, contestID primitive.ObjectID, req *models.QuestionRequest) (*models.QualificationQuestion, error)
	Delete(ctx context.Context, contestID primitive.ObjectID) error
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	GetUser(ctx context.Context, userID string) (*models.AuthUser, error)
}

// AdminService defines the interface for the admin dashboard
type AdminService interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	ListEntries(ctx context.Context) ([]*models.Entry, error)
	ExportContestEntries(ctx context.Context, contestID primitive.ObjectID, w io.Writer) error
}
