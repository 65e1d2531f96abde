package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// CategoryAll disables category filtering
const CategoryAll = "all"

var _ ContestService = (*ContestServiceImpl)(nil)

type ContestServiceImpl struct {
	contestRepo  repositories.ContestRepository
	questionRepo repositories.QuestionRepository
}

func NewContestService(contestRepo repositories.ContestRepository, questionRepo repositories.QuestionRepository) *ContestServiceImpl {
	return &ContestServiceImpl{
		contestRepo:  contestRepo,
		questionRepo: questionRepo,
	}
}

// List filters by category and a case-insensitive search over title and description,
// then orders by the requested key. Ties keep the repository order.
func (s *ContestServiceImpl) List(ctx context.Context, filter models.ContestFilter) ([]*models.Contest, error) {
	less, err := contestOrdering(filter.SortBy)
	if err != nil {
		return nil, err
	}

	all, err := s.contestRepo.FindAll(ctx)
	if err != nil {
		return nil, collaboratorError("list contests", err)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	category := strings.TrimSpace(filter.Category)
	contests := make([]*models.Contest, 0, len(all))
	for _, c := range all {
		if category != "" && !strings.EqualFold(category, CategoryAll) && !strings.EqualFold(category, c.Category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Title), search) &&
			!strings.Contains(strings.ToLower(c.Description), search) {
			continue
		}
		contests = append(contests, c)
	}

	if less != nil {
		sort.SliceStable(contests, func(i, j int) bool { return less(contests[i], contests[j]) })
	}
	return contests, nil
}

func contestOrdering(sortBy string) (func(a, b *models.Contest) bool, error) {
	switch sortBy {
	case "":
		return nil, nil
	case models.ContestSortEndDate:
		return func(a, b *models.Contest) bool { return a.EndDate.Before(b.EndDate) }, nil
	case models.ContestSortPrizeValue:
		return func(a, b *models.Contest) bool { return a.PrizeValue > b.PrizeValue }, nil
	case models.ContestSortEntryFee:
		return func(a, b *models.Contest) bool { return a.EntryFee < b.EntryFee }, nil
	case models.ContestSortCurrentEntries:
		return func(a, b *models.Contest) bool { return a.CurrentEntries > b.CurrentEntries }, nil
	default:
		return nil, fmt.Errorf("%w: unknown sort key %q", ErrInvalidFilter, sortBy)
	}
}

func (s *ContestServiceImpl) Get(ctx context.Context, id primitive.ObjectID) (*models.Contest, error) {
	contest, err := s.contestRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, collaboratorError("find contest", err)
	}
	return contest, nil
}

func (s *ContestServiceImpl) Create(ctx context.Context, req *models.ContestRequest, createdBy string) (*models.Contest, error) {
	if err := validateContest(req, 0); err != nil {
		return nil, err
	}

	contest := contestFromRequest(req)
	contest.CreatedBy = createdBy
	if err := s.contestRepo.Create(ctx, contest); err != nil {
		return nil, collaboratorError("create contest", err)
	}

	slog.Info("Contest created", "contestId", contest.ID.Hex(), "title", contest.Title, "createdBy", createdBy)
	return contest, nil
}

func (s *ContestServiceImpl) Update(ctx context.Context, id primitive.ObjectID, req *models.ContestRequest) (*models.Contest, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateContest(req, existing.CurrentEntries); err != nil {
		return nil, err
	}

	contest := contestFromRequest(req)
	contest.ID = id
	if err := s.contestRepo.Update(ctx, contest); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrContestNotFound
		}
		return nil, collaboratorError("update contest", err)
	}

	slog.Info("Contest updated", "contestId", id.Hex())
	return s.Get(ctx, id)
}

// Delete removes the contest and its qualification question. Entries are kept for the record.
func (s *ContestServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.contestRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrContestNotFound
		}
		return collaboratorError("delete contest", err)
	}
	if err := s.questionRepo.DeleteByContestID(ctx, id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		slog.Error("Failed to delete question of deleted contest", "error", err, "contestId", id.Hex())
	}

	slog.Info("Contest deleted", "contestId", id.Hex())
	return nil
}

func validateContest(req *models.ContestRequest, currentEntries int) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidContest)
	}
	if req.EntryFee < 0 || req.PrizeValue < 0 {
		return fmt.Errorf("%w: amounts must not be negative", ErrInvalidContest)
	}
	if !req.EndDate.After(req.StartDate) {
		return fmt.Errorf("%w: end date must be after start date", ErrInvalidContest)
	}
	if req.MaxEntries < 0 || (req.MaxEntries > 0 && req.MaxEntries < currentEntries) {
		return fmt.Errorf("%w: max entries must be at least the current entry count (%d)", ErrInvalidContest, currentEntries)
	}
	return nil
}

func contestFromRequest(req *models.ContestRequest) *models.Contest {
	return &models.Contest{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		EntryFee:    req.EntryFee,
		PrizeValue:  req.PrizeValue,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		MaxEntries:  req.MaxEntries,
		IsActive:    req.IsActive,
	}
}
