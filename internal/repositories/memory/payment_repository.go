package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ repositories.PaymentRepository = (*PaymentRepository)(nil)

type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[primitive.ObjectID]models.Payment
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{payments: make(map[primitive.ObjectID]models.Payment)}
}

func (r *PaymentRepository) Create(_ context.Context, payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = payment.CreatedAt
	r.payments[payment.ID] = *payment
	return nil
}

func (r *PaymentRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (r *PaymentRepository) FindByOrderID(_ context.Context, orderID string) (*models.Payment, error) {
	matches := r.filter(func(p *models.Payment) bool { return p.OrderID == orderID })
	if len(matches) == 0 {
		return nil, repositories.ErrNotFound
	}
	return matches[0], nil
}

func (r *PaymentRepository) FindByUser(_ context.Context, userID string) ([]*models.Payment, error) {
	return r.filter(func(p *models.Payment) bool { return p.UserID == userID }), nil
}

func (r *PaymentRepository) FindByStatus(_ context.Context, status models.PaymentStatus) ([]*models.Payment, error) {
	return r.filter(func(p *models.Payment) bool { return p.Status == status }), nil
}

func (r *PaymentRepository) SetOrderID(_ context.Context, id primitive.ObjectID, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.OrderID = orderID
	p.UpdatedAt = time.Now()
	r.payments[id] = p
	return nil
}

func (r *PaymentRepository) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.PaymentStatus, transactionID, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[id]
	if !ok || p.Status != models.PaymentStatusPending {
		return repositories.ErrConditionFailed
	}
	p.Status = status
	if transactionID != "" {
		p.TransactionID = transactionID
	}
	if reason != "" {
		p.FailureReason = reason
	}
	p.UpdatedAt = time.Now()
	r.payments[id] = p
	return nil
}

func (r *PaymentRepository) filter(keep func(*models.Payment) bool) []*models.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payments := []*models.Payment{}
	for _, p := range r.payments {
		p := p
		if keep(&p) {
			payments = append(payments, &p)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].CreatedAt.After(payments[j].CreatedAt) })
	return payments
}
