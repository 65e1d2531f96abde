package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/repositories"
	"github.com/ArowuTest/skillprize-backend/internal/utils"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ AdminService = (*AdminServiceImpl)(nil)

type AdminServiceImpl struct {
	contestRepo repositories.ContestRepository
	userRepo    repositories.UserRepository
	entryRepo   repositories.EntryRepository
	paymentRepo repositories.PaymentRepository
}

func NewAdminService(
	contestRepo repositories.ContestRepository,
	userRepo repositories.UserRepository,
	entryRepo repositories.EntryRepository,
	paymentRepo repositories.PaymentRepository,
) *AdminServiceImpl {
	return &AdminServiceImpl{
		contestRepo: contestRepo,
		userRepo:    userRepo,
		entryRepo:   entryRepo,
		paymentRepo: paymentRepo,
	}
}

// Stats aggregates dashboard totals. Revenue is the sum of completed payments.
func (s *AdminServiceImpl) Stats(ctx context.Context) (*models.AdminStats, error) {
	stats := &models.AdminStats{}
	var err error

	if stats.TotalContests, err = s.contestRepo.Count(ctx); err != nil {
		return nil, collaboratorError("count contests", err)
	}
	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, collaboratorError("count users", err)
	}
	if stats.TotalEntries, err = s.entryRepo.Count(ctx); err != nil {
		return nil, collaboratorError("count entries", err)
	}
	if stats.QualifiedEntries, err = s.entryRepo.CountQualified(ctx); err != nil {
		return nil, collaboratorError("count qualified entries", err)
	}

	completed, err := s.paymentRepo.FindByStatus(ctx, models.PaymentStatusCompleted)
	if err != nil {
		return nil, collaboratorError("list completed payments", err)
	}
	revenue := decimal.Zero
	for _, p := range completed {
		revenue = revenue.Add(decimal.NewFromFloat(p.Amount))
	}
	stats.TotalRevenue = revenue.Round(2).InexactFloat64()

	return stats, nil
}

func (s *AdminServiceImpl) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, collaboratorError("list users", err)
	}
	return users, nil
}

// ListEntries returns every entry, newest first
func (s *AdminServiceImpl) ListEntries(ctx context.Context) ([]*models.Entry, error) {
	entries, err := s.entryRepo.FindAll(ctx)
	if err != nil {
		return nil, collaboratorError("list entries", err)
	}
	return entries, nil
}

// ExportContestEntries writes the contest's entries to w as CSV
func (s *AdminServiceImpl) ExportContestEntries(ctx context.Context, contestID primitive.ObjectID, w io.Writer) error {
	if _, err := s.contestRepo.FindByID(ctx, contestID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrContestNotFound
		}
		return collaboratorError("find contest", err)
	}

	entries, err := s.entryRepo.FindByContest(ctx, contestID)
	if err != nil {
		return collaboratorError("list contest entries", err)
	}
	if err := utils.WriteEntriesCSV(w, entries); err != nil {
		return fmt.Errorf("failed to export entries: %w", err)
	}
	return nil
}
