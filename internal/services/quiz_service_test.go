package services

import (
	"context"
	"testing"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestQuizService_PublicQuestionHidesAnswer(t *testing.T) {
	f := newFixture(t, 199, 1)

	q, err := f.quiz.GetQuestion(context.Background(), f.contest.ID)
	require.NoError(t, err)
	assert.Equal(t, "BMW is a car manufacturer from which country?", q.Question)
	assert.Equal(t, []string{"Italy", "Germany", "France", "Japan"}, q.Options)

	_, err = f.quiz.GetQuestion(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestQuizService_CheckAnswer(t *testing.T) {
	f := newFixture(t, 199, 1)
	ctx := context.Background()

	for idx, want := range map[int]bool{0: false, 1: true, 2: false, -1: false, 9: false} {
		got, err := f.quiz.CheckAnswer(ctx, f.contest.ID, idx)
		require.NoError(t, err)
		assert.Equal(t, want, got, "index %d", idx)
	}
}

func TestQuizService_AdminLifecycle(t *testing.T) {
	f := newFixture(t, 199, 1)
	ctx := context.Background()
	contest := f.addContest(t, nil)

	_, err := f.quiz.Create(ctx, primitive.NewObjectID(), &models.QuestionRequest{
		Question: "Q?", Options: []string{"A", "B"}, CorrectAnswer: intPtr(0),
	})
	assert.ErrorIs(t, err, ErrContestNotFound)

	created, err := f.quiz.Create(ctx, contest.ID, &models.QuestionRequest{
		Question: "Which company manufactures the iPhone?", Options: []string{"Samsung", "Google", "Apple"}, CorrectAnswer: intPtr(2),
	})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())

	_, err = f.quiz.Create(ctx, contest.ID, &models.QuestionRequest{
		Question: "Again?", Options: []string{"A", "B"}, CorrectAnswer: intPtr(0),
	})
	assert.ErrorIs(t, err, ErrQuestionExists)

	updated, err := f.quiz.Update(ctx, contest.ID, &models.QuestionRequest{
		Question: "Which company designs the iPhone?", Options: []string{"Apple", "Google"}, CorrectAnswer: intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	answer, err := f.quiz.CorrectAnswer(ctx, contest.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, answer)

	require.NoError(t, f.quiz.Delete(ctx, contest.ID))
	assert.ErrorIs(t, f.quiz.Delete(ctx, contest.ID), ErrQuestionNotFound)
}

func TestQuizService_Validation(t *testing.T) {
	f := newFixture(t, 199, 1)
	contest := f.addContest(t, nil)

	cases := map[string]*models.QuestionRequest{
		"blank question":  {Question: "  ", Options: []string{"A", "B"}, CorrectAnswer: intPtr(0)},
		"one option":      {Question: "Q?", Options: []string{"A"}, CorrectAnswer: intPtr(0)},
		"blank option":    {Question: "Q?", Options: []string{"A", " "}, CorrectAnswer: intPtr(0)},
		"answer too high": {Question: "Q?", Options: []string{"A", "B"}, CorrectAnswer: intPtr(2)},
		"negative answer": {Question: "Q?", Options: []string{"A", "B"}, CorrectAnswer: intPtr(-1)},
		"missing answer":  {Question: "Q?", Options: []string{"A", "B"}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.quiz.Create(context.Background(), contest.ID, req)
			assert.ErrorIs(t, err, ErrInvalidQuestion)
		})
	}
}
