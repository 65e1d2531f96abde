package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records one checkout attempt for a contest entry fee
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        string             `bson:"userId" json:"userId"`
	ContestID     primitive.ObjectID `bson:"contestId" json:"contestId"`
	Amount        float64            `bson:"amount" json:"amount"`
	Status        PaymentStatus      `bson:"status" json:"status"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"` // provider name, e.g. "paypal", "mock"
	OrderID       string             `bson:"orderId,omitempty" json:"orderId,omitempty"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	FailureReason string             `bson:"failureReason,omitempty" json:"failureReason,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PaymentOutcome is what the payment provider reported for one attempt
type PaymentOutcome struct {
	Success   bool
	PaymentID string
	Reason    string
}

// CaptureRequest is the payload for POST /contests/:id/payments/capture
type CaptureRequest struct {
	OrderID           string `json:"orderId" binding:"required"`
	ExternalPaymentID string `json:"externalPaymentId"`
}

// OrderResponse is returned when a checkout order is created
type OrderResponse struct {
	OrderID   string             `json:"orderId"`
	PaymentID primitive.ObjectID `json:"paymentRecordId"`
	Amount    float64            `json:"amount"`
	Currency  string             `json:"currency"`
	Provider  string             `json:"provider"`
}

// EntryQuote is what a user must pay to enter a contest
type EntryQuote struct {
	ContestID primitive.ObjectID `json:"contestId"`
	EntryFee  float64            `json:"entryFee"`
	Currency  string             `json:"currency"`
}
