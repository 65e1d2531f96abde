package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DeclineReference makes MockProvider decline a capture when passed as externalPaymentID
const DeclineReference = "DECLINE"

// MockProvider simulates a checkout: captures succeed after a fixed delay with a fabricated
// payment identifier
type MockProvider struct {
	clientID string
	delay    time.Duration

	mu     sync.Mutex
	orders map[string]float64
}

// NewMockProvider creates a simulated payment provider
func NewMockProvider(clientID string, delay time.Duration) *MockProvider {
	return &MockProvider{
		clientID: clientID,
		delay:    delay,
		orders:   make(map[string]float64),
	}
}

func (p *MockProvider) Name() string { return "mock" }

// CreateOrder issues a fabricated order ID
func (p *MockProvider) CreateOrder(_ context.Context, contestID string, amount float64) (string, error) {
	if p.clientID == "" {
		return "", ErrMissingClientID
	}
	orderID := fmt.Sprintf("MOCK_ORDER_%s", uuid.NewString())

	p.mu.Lock()
	p.orders[orderID] = amount
	p.mu.Unlock()
	return orderID, nil
}

// Capture waits for the configured delay and then approves the order
func (p *MockProvider) Capture(ctx context.Context, orderID, externalPaymentID string) (*CaptureResult, error) {
	p.mu.Lock()
	_, ok := p.orders[orderID]
	p.mu.Unlock()
	if !ok {
		return nil, ErrUnknownOrder
	}

	// The order stays open until the delay elapses
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	p.mu.Lock()
	_, ok = p.orders[orderID]
	delete(p.orders, orderID)
	p.mu.Unlock()
	if !ok {
		return nil, ErrUnknownOrder
	}

	if externalPaymentID == DeclineReference {
		return &CaptureResult{Success: false, Reason: "payment declined"}, nil
	}
	return &CaptureResult{
		Success:   true,
		PaymentID: fmt.Sprintf("MOCK_PAYMENT_%d", time.Now().UnixMilli()),
	}, nil
}
