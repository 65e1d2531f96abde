package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus represents the status of a payment or of an entry's payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// EntryStage is the lifecycle stage of a user's participation in one contest
type EntryStage string

const (
	StageAwaitingPayment EntryStage = "AWAITING_PAYMENT"
	StageAwaitingQuiz    EntryStage = "AWAITING_QUIZ"
	StageSettled         EntryStage = "SETTLED"
)

// Entry represents one user's paid participation in one contest.
// (userId, contestId) is unique.
type Entry struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID         string             `bson:"userId" json:"userId"`
	ContestID      primitive.ObjectID `bson:"contestId" json:"contestId"`
	PaymentID      string             `bson:"paymentId" json:"paymentId"`
	PaymentStatus  PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	QuizAttempted  bool               `bson:"quizAttempted" json:"quizAttempted"`
	QuizPassed     bool               `bson:"quizPassed" json:"quizPassed"`
	Qualified      bool               `bson:"qualified" json:"qualified"`
	SelectedAnswer *int               `bson:"selectedAnswer,omitempty" json:"selectedAnswer,omitempty"`
	SubmittedAt    *time.Time         `bson:"submittedAt,omitempty" json:"submittedAt,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Stage derives the lifecycle stage from the entry. A nil entry has not been paid for.
func (e *Entry) Stage() EntryStage {
	switch {
	case e == nil:
		return StageAwaitingPayment
	case e.QuizAttempted:
		return StageSettled
	default:
		return StageAwaitingQuiz
	}
}

// Settlement is the one-time outcome written to an entry when its quiz is graded
type Settlement struct {
	QuizPassed     bool
	SelectedAnswer int
	SubmittedAt    time.Time
}

// EntryStatusResponse is returned by GET /contests/:id/entry
type EntryStatusResponse struct {
	Stage EntryStage `json:"stage"`
	Entry *Entry     `json:"entry,omitempty"`
}
