package services

import (
	"context"
	"errors"

	"github.com/ArowuTest/skillprize-backend/internal/config"
	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/repositories"
	"github.com/ArowuTest/skillprize-backend/pkg/payment"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

var _ PaymentService = (*PaymentServiceImpl)(nil)

// PaymentServiceImpl keeps a Payment row per checkout attempt and hands the provider's
// verdict to the entry lifecycle
type PaymentServiceImpl struct {
	entries     EntryService
	paymentRepo repositories.PaymentRepository
	provider    payment.Provider
	currency    string
}

func NewPaymentService(entries EntryService, paymentRepo repositories.PaymentRepository, provider payment.Provider, cfg *config.Config) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		entries:     entries,
		paymentRepo: paymentRepo,
		provider:    provider,
		currency:    cfg.Payment.Currency,
	}
}

// CreateOrder quotes the entry, records a pending payment and opens an order with the provider
func (s *PaymentServiceImpl) CreateOrder(ctx context.Context, userID string, contestID primitive.ObjectID) (*models.OrderResponse, error) {
	quote, err := s.entries.Initiate(ctx, userID, contestID)
	if err != nil {
		return nil, err
	}

	record := &models.Payment{
		UserID:        userID,
		ContestID:     contestID,
		Amount:        quote.EntryFee,
		Status:        models.PaymentStatusPending,
		PaymentMethod: s.provider.Name(),
	}
	if err := s.paymentRepo.Create(ctx, record); err != nil {
		return nil, collaboratorError("create payment record", err)
	}

	orderID, err := s.provider.CreateOrder(ctx, contestID.Hex(), quote.EntryFee)
	if err != nil {
		slog.Error("Payment provider failed to create order", "error", err, "provider", s.provider.Name(), "paymentId", record.ID.Hex())
		if updErr := s.paymentRepo.UpdateStatus(ctx, record.ID, models.PaymentStatusFailed, "", err.Error()); updErr != nil {
			slog.Error("Failed to mark payment as failed", "error", updErr, "paymentId", record.ID.Hex())
		}
		return nil, collaboratorError("create order", err)
	}
	if err := s.paymentRepo.SetOrderID(ctx, record.ID, orderID); err != nil {
		return nil, collaboratorError("store order id", err)
	}

	slog.Info("Payment order created", "orderId", orderID, "paymentId", record.ID.Hex(), "userId", userID, "amount", quote.EntryFee)
	return &models.OrderResponse{
		OrderID:   orderID,
		PaymentID: record.ID,
		Amount:    quote.EntryFee,
		Currency:  s.currency,
		Provider:  s.provider.Name(),
	}, nil
}

// Capture settles the order with the provider, finalises the payment row and records the
// outcome. A declined capture returns ErrPaymentFailed and the user may start a new order.
func (s *PaymentServiceImpl) Capture(ctx context.Context, userID string, contestID primitive.ObjectID, req *models.CaptureRequest) (*models.Entry, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	record, err := s.paymentRepo.FindByOrderID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, collaboratorError("find payment", err)
	}
	if record.UserID != userID || record.ContestID != contestID {
		return nil, ErrPaymentNotFound
	}
	if record.Status != models.PaymentStatusPending {
		return nil, ErrPaymentProcessed
	}

	result, err := s.provider.Capture(ctx, req.OrderID, req.ExternalPaymentID)
	if err != nil {
		if errors.Is(err, payment.ErrUnknownOrder) {
			return nil, ErrPaymentNotFound
		}
		slog.Error("Payment capture failed", "error", err, "orderId", req.OrderID, "provider", s.provider.Name())
		return nil, collaboratorError("capture payment", err)
	}

	status := models.PaymentStatusFailed
	if result.Success {
		status = models.PaymentStatusCompleted
	}
	if err := s.paymentRepo.UpdateStatus(ctx, record.ID, status, result.PaymentID, result.Reason); err != nil {
		if errors.Is(err, repositories.ErrConditionFailed) {
			return nil, ErrPaymentProcessed
		}
		return nil, collaboratorError("update payment", err)
	}

	entry, err := s.entries.RecordPayment(ctx, userID, contestID, models.PaymentOutcome{
		Success:   result.Success,
		PaymentID: result.PaymentID,
		Reason:    result.Reason,
	})
	if errors.Is(err, ErrAlreadyEntered) {
		slog.Warn("Captured payment for a contest the user already entered", "paymentId", record.ID.Hex(), "transactionId", result.PaymentID, "userId", userID)
	}
	return entry, err
}

func (s *PaymentServiceImpl) ListUserPayments(ctx context.Context, userID string) ([]*models.Payment, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	payments, err := s.paymentRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, collaboratorError("list payments", err)
	}
	return payments, nil
}
