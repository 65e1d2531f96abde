package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QualificationQuestion is the skill question attached to a contest.
// CorrectAnswer never leaves the server before submission; use Public for client views.
type QualificationQuestion struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ContestID     primitive.ObjectID `bson:"contestId" json:"contestId"`
	Question      string             `bson:"question" json:"question"`
	Options       []string           `bson:"options" json:"options"`
	CorrectAnswer int                `bson:"correctAnswer" json:"correctAnswer"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PublicQuestion is the client-facing view of a question
type PublicQuestion struct {
	ID        primitive.ObjectID `json:"id"`
	ContestID primitive.ObjectID `json:"contestId"`
	Question  string             `json:"question"`
	Options   []string           `json:"options"`
}

// Public strips the correct answer
func (q *QualificationQuestion) Public() *PublicQuestion {
	options := make([]string, len(q.Options))
	copy(options, q.Options)
	return &PublicQuestion{
		ID:        q.ID,
		ContestID: q.ContestID,
		Question:  q.Question,
		Options:   options,
	}
}

// QuestionRequest is the admin payload for a contest's question
type QuestionRequest struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer *int     `json:"correctAnswer" binding:"required,gte=0"`
}

// QualificationRequest is the user's quiz submission
type QualificationRequest struct {
	SelectedAnswer *int `json:"selectedAnswer" binding:"required,gte=0"`
}

// QualificationResult is returned after a quiz submission
type QualificationResult struct {
	Correct       bool   `json:"correct"`
	Qualified     bool   `json:"qualified"`
	Explanation   string `json:"explanation"`
	CorrectAnswer *int   `json:"correctAnswer,omitempty"`
	Entry         *Entry `json:"entry"`
}
