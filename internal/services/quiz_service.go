package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

var _ QuizService = (*QuizServiceImpl)(nil)

type QuizServiceImpl struct {
	questionRepo repositories.QuestionRepository
	contestRepo  repositories.ContestRepository
}

func NewQuizService(questionRepo repositories.QuestionRepository, contestRepo repositories.ContestRepository) *QuizServiceImpl {
	return &QuizServiceImpl{
		questionRepo: questionRepo,
		contestRepo:  contestRepo,
	}
}

// GetQuestion returns the client view of a contest's question
func (s *QuizServiceImpl) GetQuestion(ctx context.Context, contestID primitive.ObjectID) (*models.PublicQuestion, error) {
	q, err := s.GetForAdmin(ctx, contestID)
	if err != nil {
		return nil, err
	}
	return q.Public(), nil
}

// CheckAnswer grades by exact index equality. Out-of-range indices are simply wrong.
func (s *QuizServiceImpl) CheckAnswer(ctx context.Context, contestID primitive.ObjectID, selectedIndex int) (bool, error) {
	q, err := s.GetForAdmin(ctx, contestID)
	if err != nil {
		return false, err
	}
	return selectedIndex == q.CorrectAnswer, nil
}

func (s *QuizServiceImpl) CorrectAnswer(ctx context.Context, contestID primitive.ObjectID) (int, error) {
	q, err := s.GetForAdmin(ctx, contestID)
	if err != nil {
		return 0, err
	}
	return q.CorrectAnswer, nil
}

func (s *QuizServiceImpl) GetForAdmin(ctx context.Context, contestID primitive.ObjectID) (*models.QualificationQuestion, error) {
	q, err := s.questionRepo.FindByContestID(ctx, contestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, collaboratorError("find question", err)
	}
	return q, nil
}

func (s *QuizServiceImpl) Create(ctx context.Context, contestID primitive.ObjectID, req *models.QuestionRequest) (*models.QualificationQuestion, error) {
	if _, err := s.contestRepo.FindByID(ctx, contestID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, collaboratorError("find contest", err)
	}

	q, err := buildQuestion(contestID, req)
	if err != nil {
		return nil, err
	}
	if err := s.questionRepo.Create(ctx, q); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrQuestionExists
		}
		return nil, collaboratorError("create question", err)
	}

	slog.Info("Qualification question created", "contestId", contestID.Hex(), "questionId", q.ID.Hex())
	return q, nil
}

func (s *QuizServiceImpl) Update(ctx context.Context, contestID primitive.ObjectID, req *models.QuestionRequest) (*models.QualificationQuestion, error) {
	existing, err := s.GetForAdmin(ctx, contestID)
	if err != nil {
		return nil, err
	}

	q, err := buildQuestion(contestID, req)
	if err != nil {
		return nil, err
	}
	q.ID = existing.ID
	q.CreatedAt = existing.CreatedAt
	if err := s.questionRepo.Update(ctx, q); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, collaboratorError("update question", err)
	}

	slog.Info("Qualification question updated", "contestId", contestID.Hex())
	return q, nil
}

func (s *QuizServiceImpl) Delete(ctx context.Context, contestID primitive.ObjectID) error {
	if err := s.questionRepo.DeleteByContestID(ctx, contestID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrQuestionNotFound
		}
		return collaboratorError("delete question", err)
	}
	slog.Info("Qualification question deleted", "contestId", contestID.Hex())
	return nil
}

func buildQuestion(contestID primitive.ObjectID, req *models.QuestionRequest) (*models.QualificationQuestion, error) {
	text := strings.TrimSpace(req.Question)
	if text == "" {
		return nil, fmt.Errorf("%w: question text is required", ErrInvalidQuestion)
	}

	options := make([]string, 0, len(req.Options))
	for _, opt := range req.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return nil, fmt.Errorf("%w: options must not be blank", ErrInvalidQuestion)
		}
		options = append(options, opt)
	}
	if len(options) < 2 {
		return nil, fmt.Errorf("%w: at least two options are required", ErrInvalidQuestion)
	}
	if req.CorrectAnswer == nil || *req.CorrectAnswer < 0 || *req.CorrectAnswer >= len(options) {
		return nil, fmt.Errorf("%w: correct answer must index one of the options", ErrInvalidQuestion)
	}

	return &models.QualificationQuestion{
		ContestID:     contestID,
		Question:      text,
		Options:       options,
		CorrectAnswer: *req.CorrectAnswer,
	}, nil
}
