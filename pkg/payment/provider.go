package payment

import (
	"context"
	"errors"
)

var (
	// ErrMissingClientID is returned when a provider is used without credentials
	ErrMissingClientID = errors.New("payment client id is missing")
	// ErrUnknownOrder is returned when capturing an order the provider never issued
	ErrUnknownOrder = errors.New("unknown payment order")
)

// CaptureResult is the provider's verdict on a capture attempt.
// A declined payment is a result with Success=false, not an error.
type CaptureResult struct {
	Success   bool
	PaymentID string
	Reason    string
}

// Provider is the capability that takes an entry fee. Errors mean the provider could not be
// reached or misbehaved; a declined payment is reported through CaptureResult.
type Provider interface {
	Name() string
	CreateOrder(ctx context.Context, contestID string, amount float64) (string, error)
	Capture(ctx context.Context, orderID, externalPaymentID string) (*CaptureResult, error)
}
