package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/skillprize-backend/internal/config"
	"github.com/ArowuTest/skillprize-backend/internal/metrics"
	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

const (
	explanationCorrect   = "Correct answer! You are qualified for the draw."
	explanationIncorrect = "Incorrect answer. Better luck next time!"
)

var _ EntryService = (*EntryServiceImpl)(nil)

// EntryServiceImpl keeps no state of its own. The at-most-one-entry and settle-once guarantees
// come from the entry repository's unique (user, contest) constraint and conditional Settle.
type EntryServiceImpl struct {
	entryRepo    repositories.EntryRepository
	contestRepo  repositories.ContestRepository
	quiz         QualificationSource
	metrics      *metrics.Metrics
	currency     string
	revealAnswer bool
	now          func() time.Time
}

func NewEntryService(
	entryRepo repositories.EntryRepository,
	contestRepo repositories.ContestRepository,
	quiz QualificationSource,
	m *metrics.Metrics,
	cfg *config.Config,
) *EntryServiceImpl {
	return &EntryServiceImpl{
		entryRepo:    entryRepo,
		contestRepo:  contestRepo,
		quiz:         quiz,
		metrics:      m,
		currency:     cfg.Payment.Currency,
		revealAnswer: cfg.Quiz.RevealAnswer,
		now:          time.Now,
	}
}

func (s *EntryServiceImpl) Initiate(ctx context.Context, userID string, contestID primitive.ObjectID) (*models.EntryQuote, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	_, found, err := s.GetEntry(ctx, userID, contestID)
	if err != nil {
		return nil, err
	}
	if found {
		return nil, ErrAlreadyEntered
	}

	contest, err := s.contestRepo.FindByID(ctx, contestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, collaboratorError("find contest", err)
	}
	if !contest.IsOpen(s.now()) {
		return nil, ErrContestClosed
	}
	if contest.IsFull() {
		return nil, ErrContestFull
	}

	return &models.EntryQuote{
		ContestID: contest.ID,
		EntryFee:  contest.EntryFee,
		Currency:  s.currency,
	}, nil
}

func (s *EntryServiceImpl) RecordPayment(ctx context.Context, userID string, contestID primitive.ObjectID, outcome models.PaymentOutcome) (*models.Entry, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	if !outcome.Success {
		s.metrics.PaymentRecorded("failed")
		slog.Warn("Payment failed, no entry created", "userId", userID, "contestId", contestID.Hex(), "reason", outcome.Reason)
		return nil, fmt.Errorf("%w: %s", ErrPaymentFailed, outcome.Reason)
	}
	if outcome.PaymentID == "" {
		s.metrics.PaymentRecorded("error")
		return nil, collaboratorError("record payment", errors.New("provider reported success without a payment id"))
	}

	// Take the slot first so the contest never holds more entries than maxEntries
	if err := s.contestRepo.IncrementEntries(ctx, contestID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrConditionFailed):
			s.metrics.PaymentRecorded("full")
			slog.Warn("Payment recorded for a full contest, refund required", "userId", userID, "contestId", contestID.Hex(), "paymentId", outcome.PaymentID)
			return nil, ErrContestFull
		case errors.Is(err, repositories.ErrNotFound):
			s.metrics.PaymentRecorded("error")
			slog.Warn("Payment recorded for a missing contest, refund required", "userId", userID, "contestId", contestID.Hex(), "paymentId", outcome.PaymentID)
			return nil, ErrContestNotFound
		default:
			s.metrics.PaymentRecorded("error")
			slog.Error("Failed to reserve contest slot", "error", err, "contestId", contestID.Hex())
			return nil, collaboratorError("reserve slot", err)
		}
	}

	entry := &models.Entry{
		UserID:        userID,
		ContestID:     contestID,
		PaymentID:     outcome.PaymentID,
		PaymentStatus: models.PaymentStatusCompleted,
	}
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		s.releaseSlot(ctx, contestID)
		if errors.Is(err, repositories.ErrDuplicate) {
			s.metrics.PaymentRecorded("duplicate")
			slog.Warn("Payment recorded for an existing entry", "userId", userID, "contestId", contestID.Hex(), "paymentId", outcome.PaymentID)
			return nil, ErrAlreadyEntered
		}
		s.metrics.PaymentRecorded("error")
		slog.Error("Failed to create entry", "error", err, "userId", userID, "contestId", contestID.Hex())
		return nil, collaboratorError("create entry", err)
	}

	s.metrics.PaymentRecorded("success")
	s.metrics.EntryCreated()
	slog.Info("Entry created", "entryId", entry.ID.Hex(), "userId", userID, "contestId", contestID.Hex(), "paymentId", outcome.PaymentID)
	return entry, nil
}

func (s *EntryServiceImpl) SubmitQualification(ctx context.Context, userID string, contestID primitive.ObjectID, selectedIndex int) (*models.QualificationResult, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	entry, found, err := s.GetEntry(ctx, userID, contestID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrEntryNotFound
	}
	if entry.QuizAttempted || entry.PaymentStatus != models.PaymentStatusCompleted {
		return nil, ErrAlreadySettled
	}

	correct, err := s.quiz.CheckAnswer(ctx, contestID, selectedIndex)
	if err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			return nil, err
		}
		return nil, collaboratorError("check answer", err)
	}

	settled, err := s.entryRepo.Settle(ctx, entry.ID, models.Settlement{
		QuizPassed:     correct,
		SelectedAnswer: selectedIndex,
		SubmittedAt:    s.now(),
	})
	if err != nil {
		if errors.Is(err, repositories.ErrConditionFailed) {
			slog.Warn("Concurrent qualification submission rejected", "entryId", entry.ID.Hex(), "userId", userID)
			return nil, ErrAlreadySettled
		}
		return nil, collaboratorError("settle entry", err)
	}

	s.metrics.QualificationSettled(settled.QuizPassed)
	slog.Info("Entry settled", "entryId", settled.ID.Hex(), "userId", userID, "contestId", contestID.Hex(), "passed", settled.QuizPassed)

	result := &models.QualificationResult{
		Correct:     settled.QuizPassed,
		Qualified:   settled.Qualified,
		Explanation: explanationIncorrect,
		Entry:       settled,
	}
	if settled.QuizPassed {
		result.Explanation = explanationCorrect
	}
	if s.revealAnswer {
		if revealer, ok := s.quiz.(AnswerRevealer); ok {
			answer, err := revealer.CorrectAnswer(ctx, contestID)
			if err != nil {
				slog.Warn("Could not reveal correct answer", "error", err, "contestId", contestID.Hex())
			} else {
				result.CorrectAnswer = &answer
			}
		}
	}
	return result, nil
}

func (s *EntryServiceImpl) GetEntry(ctx context.Context, userID string, contestID primitive.ObjectID) (*models.Entry, bool, error) {
	entry, err := s.entryRepo.FindByUserAndContest(ctx, userID, contestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, collaboratorError("find entry", err)
	}
	return entry, true, nil
}

func (s *EntryServiceImpl) ListUserEntries(ctx context.Context, userID string) ([]*models.Entry, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	entries, err := s.entryRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, collaboratorError("list entries", err)
	}
	return entries, nil
}

// releaseSlot undoes IncrementEntries when no entry was created
func (s *EntryServiceImpl) releaseSlot(ctx context.Context, contestID primitive.ObjectID) {
	if err := s.contestRepo.DecrementEntries(ctx, contestID); err != nil {
		slog.Error("Failed to release contest slot", "error", err, "contestId", contestID.Hex())
	}
}
