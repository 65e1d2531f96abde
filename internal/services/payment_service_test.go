package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/pkg/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPaymentService(f *fixture, provider payment.Provider) *PaymentServiceImpl {
	return NewPaymentService(f.entry, f.payments, provider, testConfig())
}

func TestPaymentService_Checkout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 199, 1)
	svc := newPaymentService(f, payment.NewMockProvider("client", 0))

	order, err := svc.CreateOrder(ctx, "user-1", f.contest.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.OrderID, "MOCK_ORDER_"))
	assert.Equal(t, 199.0, order.Amount)
	assert.Equal(t, "mock", order.Provider)

	record, err := f.payments.FindByID(ctx, order.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, record.Status)
	assert.Equal(t, order.OrderID, record.OrderID)

	entry, err := svc.Capture(ctx, "user-1", f.contest.ID, &models.CaptureRequest{OrderID: order.OrderID})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(entry.PaymentID, "MOCK_PAYMENT_"))
	assert.Equal(t, models.StageAwaitingQuiz, entry.Stage())

	record, err = f.payments.FindByID(ctx, order.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, record.Status)
	assert.Equal(t, entry.PaymentID, record.TransactionID)

	_, err = svc.Capture(ctx, "user-1", f.contest.ID, &models.CaptureRequest{OrderID: order.OrderID})
	assert.ErrorIs(t, err, ErrPaymentProcessed)

	_, err = svc.CreateOrder(ctx, "user-1", f.contest.ID)
	assert.ErrorIs(t, err, ErrAlreadyEntered)

	payments, err := svc.ListUserPayments(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestPaymentService_DeclinedThenRetry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 199, 1)
	svc := newPaymentService(f, payment.NewMockProvider("client", 0))

	order, err := svc.CreateOrder(ctx, "user-1", f.contest.ID)
	require.NoError(t, err)

	_, err = svc.Capture(ctx, "user-1", f.contest.ID, &models.CaptureRequest{OrderID: order.OrderID, ExternalPaymentID: payment.DeclineReference})
	require.ErrorIs(t, err, ErrPaymentFailed)

	record, err := f.payments.FindByID(ctx, order.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, record.Status)
	assert.NotEmpty(t, record.FailureReason)

	_, found, err := f.entry.GetEntry(ctx, "user-1", f.contest.ID)
	require.NoError(t, err)
	assert.False(t, found)

	retry, err := svc.CreateOrder(ctx, "user-1", f.contest.ID)
	require.NoError(t, err)
	entry, err := svc.Capture(ctx, "user-1", f.contest.ID, &models.CaptureRequest{OrderID: retry.OrderID})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, entry.PaymentStatus)
}

func TestPaymentService_CaptureChecksOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 199, 1)
	svc := newPaymentService(f, payment.NewMockProvider("client", 0))

	order, err := svc.CreateOrder(ctx, "user-1", f.contest.ID)
	require.NoError(t, err)

	_, err = svc.Capture(ctx, "user-2", f.contest.ID, &models.CaptureRequest{OrderID: order.OrderID})
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	_, err = svc.Capture(ctx, "user-1", primitive.NewObjectID(), &models.CaptureRequest{OrderID: order.OrderID})
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	_, err = svc.Capture(ctx, "user-1", f.contest.ID, &models.CaptureRequest{OrderID: "MOCK_ORDER_unknown"})
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	_, err = svc.Capture(ctx, "", f.contest.ID, &models.CaptureRequest{OrderID: order.OrderID})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestPaymentService_ProviderUnavailable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 199, 1)
	svc := newPaymentService(f, payment.NewMockProvider("", 0))

	_, err := svc.CreateOrder(ctx, "user-1", f.contest.ID)
	var collabErr *CollaboratorError
	require.True(t, errors.As(err, &collabErr))
	assert.ErrorIs(t, err, payment.ErrMissingClientID)

	failed, err := f.payments.FindByStatus(ctx, models.PaymentStatusFailed)
	require.NoError(t, err)
	assert.Len(t, failed, 1)
}

func TestPaymentService_LastSlotGoesToFirstCapture(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 199, 1)
	contest := f.addContest(t, func(c *models.Contest) { c.MaxEntries = 1 })
	svc := newPaymentService(f, payment.NewMockProvider("client", 0))

	// both users get past the capacity check before either captures
	first, err := svc.CreateOrder(ctx, "user-1", contest.ID)
	require.NoError(t, err)
	second, err := svc.CreateOrder(ctx, "user-2", contest.ID)
	require.NoError(t, err)

	_, err = svc.Capture(ctx, "user-1", contest.ID, &models.CaptureRequest{OrderID: first.OrderID})
	require.NoError(t, err)
	_, err = svc.Capture(ctx, "user-2", contest.ID, &models.CaptureRequest{OrderID: second.OrderID})
	assert.ErrorIs(t, err, ErrContestFull)

	stored, err := f.contests.FindByID(ctx, contest.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CurrentEntries)
	assert.LessOrEqual(t, stored.CurrentEntries, stored.MaxEntries)

	_, found, err := f.entry.GetEntry(ctx, "user-2", contest.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPaymentService_CaptureRetryAfterCancellation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 199, 1)
	svc := newPaymentService(f, payment.NewMockProvider("client", 20*time.Millisecond))

	order, err := svc.CreateOrder(ctx, "user-1", f.contest.ID)
	require.NoError(t, err)

	tctx, cancel := context.WithTimeout(ctx, time.Millisecond)
	defer cancel()
	_, err = svc.Capture(tctx, "user-1", f.contest.ID, &models.CaptureRequest{OrderID: order.OrderID})
	require.Error(t, err)

	record, err := f.payments.FindByID(ctx, order.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, record.Status)

	entry, err := svc.Capture(ctx, "user-1", f.contest.ID, &models.CaptureRequest{OrderID: order.OrderID})
	require.NoError(t, err)
	assert.Equal(t, models.StageAwaitingQuiz, entry.Stage())

	record, err = f.payments.FindByID(ctx, order.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, record.Status)
}
