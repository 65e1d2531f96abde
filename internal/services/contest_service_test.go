package services

import (
	"context"
	"testing"
	"time"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedCatalogue(t *testing.T) (*ContestServiceImpl, *memory.ContestRepository) {
	t.Helper()
	contests := memory.NewContestRepository()
	now := time.Now()
	for _, c := range []*models.Contest{
		{Title: "Luxury Apartment", Description: "2BHK in Mumbai", Category: "Property", EntryFee: 299, PrizeValue: 7500000, CurrentEntries: 1250, EndDate: now.Add(30 * 24 * time.Hour)},
		{Title: "BMW X3", Description: "Luxury SUV", Category: "Vehicle", EntryFee: 199, PrizeValue: 800000, CurrentEntries: 890, EndDate: now.Add(25 * 24 * time.Hour)},
		{Title: "iPhone 15 Pro Max", Description: "With accessories", Category: "Electronics", EntryFee: 99, PrizeValue: 120000, CurrentEntries: 1567, EndDate: now.Add(20 * 24 * time.Hour)},
		{Title: "MacBook Pro M3", Description: "For professionals", Category: "Electronics", EntryFee: 179, PrizeValue: 250000, CurrentEntries: 1123, EndDate: now.Add(22 * 24 * time.Hour)},
	} {
		c.StartDate = now.Add(-time.Hour)
		c.IsActive = true
		require.NoError(t, contests.Create(context.Background(), c))
	}
	return NewContestService(contests, memory.NewQuestionRepository()), contests
}

func titles(contests []*models.Contest) []string {
	out := make([]string, 0, len(contests))
	for _, c := range contests {
		out = append(out, c.Title)
	}
	return out
}

func TestContestService_List(t *testing.T) {
	svc, _ := seedCatalogue(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter models.ContestFilter
		want   []string
	}{
		{"all by end date", models.ContestFilter{Category: CategoryAll, SortBy: models.ContestSortEndDate},
			[]string{"iPhone 15 Pro Max", "MacBook Pro M3", "BMW X3", "Luxury Apartment"}},
		{"category", models.ContestFilter{Category: "electronics", SortBy: models.ContestSortEntryFee},
			[]string{"iPhone 15 Pro Max", "MacBook Pro M3"}},
		{"search title", models.ContestFilter{Search: "bmw"}, []string{"BMW X3"}},
		{"search description", models.ContestFilter{Search: "LUXURY", SortBy: models.ContestSortPrizeValue},
			[]string{"Luxury Apartment", "BMW X3"}},
		{"popularity", models.ContestFilter{SortBy: models.ContestSortCurrentEntries},
			[]string{"iPhone 15 Pro Max", "Luxury Apartment", "MacBook Pro M3", "BMW X3"}},
		{"no match", models.ContestFilter{Search: "yacht"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}

	_, err := svc.List(ctx, models.ContestFilter{SortBy: "random"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestContestService_CRUD(t *testing.T) {
	svc, repo := seedCatalogue(t)
	ctx := context.Background()
	now := time.Now()

	req := &models.ContestRequest{
		Title: "Gold Jewelry Set", Category: "Jewelry", EntryFee: 149, PrizeValue: 350000,
		StartDate: now, EndDate: now.Add(35 * 24 * time.Hour), MaxEntries: 2500, IsActive: true,
	}
	created, err := svc.Create(ctx, req, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", created.CreatedBy)

	require.NoError(t, repo.IncrementEntries(ctx, created.ID))

	req.EntryFee = 159
	updated, err := svc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 159.0, updated.EntryFee)
	assert.Equal(t, 1, updated.CurrentEntries, "update must keep the entry counter")

	req.MaxEntries = 0
	_, err = svc.Update(ctx, created.ID, req)
	require.NoError(t, err, "zero means unlimited")

	_, err = svc.Update(ctx, primitive.NewObjectID(), req)
	assert.ErrorIs(t, err, ErrContestNotFound)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrContestNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrContestNotFound)
}

func TestContestService_Validation(t *testing.T) {
	svc, repo := seedCatalogue(t)
	ctx := context.Background()
	now := time.Now()

	_, err := svc.Create(ctx, &models.ContestRequest{Title: "Backwards", Category: "X", StartDate: now, EndDate: now.Add(-time.Hour)}, "admin")
	assert.ErrorIs(t, err, ErrInvalidContest)

	_, err = svc.Create(ctx, &models.ContestRequest{Title: "Same", Category: "X", StartDate: now, EndDate: now}, "admin")
	assert.ErrorIs(t, err, ErrInvalidContest)

	c, err := svc.Create(ctx, &models.ContestRequest{Title: "Cap", Category: "X", StartDate: now, EndDate: now.Add(time.Hour), MaxEntries: 5}, "admin")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncrementEntries(ctx, c.ID))
	}
	_, err = svc.Update(ctx, c.ID, &models.ContestRequest{Title: "Cap", Category: "X", StartDate: now, EndDate: now.Add(time.Hour), MaxEntries: 2})
	assert.ErrorIs(t, err, ErrInvalidContest)
}
