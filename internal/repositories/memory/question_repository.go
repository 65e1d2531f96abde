package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ repositories.QuestionRepository = (*QuestionRepository)(nil)

// QuestionRepository keys questions by contest, one per contest
type QuestionRepository struct {
	mu        sync.RWMutex
	questions map[primitive.ObjectID]models.QualificationQuestion
}

func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{questions: make(map[primitive.ObjectID]models.QualificationQuestion)}
}

func (r *QuestionRepository) Create(_ context.Context, question *models.QualificationQuestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.questions[question.ContestID]; exists {
		return repositories.ErrDuplicate
	}
	if question.ID.IsZero() {
		question.ID = primitive.NewObjectID()
	}
	question.CreatedAt = time.Now()
	question.UpdatedAt = question.CreatedAt
	r.questions[question.ContestID] = clone(*question)
	return nil
}

func (r *QuestionRepository) FindByContestID(_ context.Context, contestID primitive.ObjectID) (*models.QualificationQuestion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.questions[contestID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	q = clone(q)
	return &q, nil
}

func (r *QuestionRepository) Update(_ context.Context, question *models.QualificationQuestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.questions[question.ContestID]
	if !ok {
		return repositories.ErrNotFound
	}
	existing.Question = question.Question
	existing.Options = question.Options
	existing.CorrectAnswer = question.CorrectAnswer
	existing.UpdatedAt = time.Now()
	r.questions[question.ContestID] = clone(existing)
	return nil
}

func (r *QuestionRepository) DeleteByContestID(_ context.Context, contestID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.questions[contestID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.questions, contestID)
	return nil
}

func clone(q models.QualificationQuestion) models.QualificationQuestion {
	q.Options = append([]string(nil), q.Options...)
	return q
}
