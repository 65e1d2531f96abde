package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ArowuTest/skillprize-backend/internal/config"
	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/repositories/memory"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStoreDown = errors.New("store unavailable")

func testConfig() *config.Config {
	return &config.Config{
		Payment: config.PaymentConfig{Currency: "INR"},
		JWT:     config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600},
	}
}

type fixture struct {
	contests  *memory.ContestRepository
	questions *memory.QuestionRepository
	entries   *memory.EntryRepository
	payments  *memory.PaymentRepository
	users     *memory.UserRepository
	quiz      *QuizServiceImpl
	entry     *EntryServiceImpl
	contest   *models.Contest
}

// newFixture creates one open contest with the given fee whose question's correct option is correctIndex
func newFixture(t *testing.T, fee float64, correctIndex int) *fixture {
	t.Helper()
	return newFixtureWithConfig(t, fee, correctIndex, testConfig())
}

func newFixtureWithConfig(t *testing.T, fee float64, correctIndex int, cfg *config.Config) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		contests:  memory.NewContestRepository(),
		questions: memory.NewQuestionRepository(),
		entries:   memory.NewEntryRepository(),
		payments:  memory.NewPaymentRepository(),
		users:     memory.NewUserRepository(),
	}
	f.contest = &models.Contest{
		Title:      "BMW X3 - Luxury SUV",
		Category:   "Vehicle",
		EntryFee:   fee,
		PrizeValue: 800000,
		StartDate:  time.Now().Add(-time.Hour),
		EndDate:    time.Now().Add(24 * time.Hour),
		MaxEntries: 100,
		IsActive:   true,
	}
	require.NoError(t, f.contests.Create(ctx, f.contest))
	require.NoError(t, f.questions.Create(ctx, &models.QualificationQuestion{
		ContestID:     f.contest.ID,
		Question:      "BMW is a car manufacturer from which country?",
		Options:       []string{"Italy", "Germany", "France", "Japan"},
		CorrectAnswer: correctIndex,
	}))

	f.quiz = NewQuizService(f.questions, f.contests)
	f.entry = NewEntryService(f.entries, f.contests, f.quiz, nil, cfg)
	return f
}

func (f *fixture) addContest(t *testing.T, mutate func(c *models.Contest)) *models.Contest {
	t.Helper()
	c := &models.Contest{
		Title:      "Extra",
		Category:   "Electronics",
		EntryFee:   99,
		StartDate:  time.Now().Add(-time.Hour),
		EndDate:    time.Now().Add(time.Hour),
		MaxEntries: 10,
		IsActive:   true,
	}
	if mutate != nil {
		mutate(c)
	}
	require.NoError(t, f.contests.Create(context.Background(), c))
	return c
}

func intPtr(v int) *int { return &v }

// failingEntryRepo fails every write
type failingEntryRepo struct {
	*memory.EntryRepository
}

func (failingEntryRepo) Create(context.Context, *models.Entry) error {
	return errStoreDown
}

func (failingEntryRepo) Settle(context.Context, primitive.ObjectID, models.Settlement) (*models.Entry, error) {
	return nil, errStoreDown
}
