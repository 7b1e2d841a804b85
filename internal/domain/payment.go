package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus enumerates checkout-session states. A transaction starts
// pending and moves monotonically to exactly one terminal state.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
	PaymentStatusExpired PaymentStatus = "expired"
)

// Terminal reports whether no further transition is allowed from s.
func (s PaymentStatus) Terminal() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusFailed, PaymentStatusExpired:
		return true
	}
	return false
}

// PaymentTransaction records one checkout attempt. One row per provider
// session; rows are never deleted.
type PaymentTransaction struct {
	ID        string            `bson:"_id"`
	UserID    string            `bson:"user_id"`
	Email     string            `bson:"email"`
	SessionID string            `bson:"session_id"`
	Amount    int64             `bson:"amount"` // minor units (cents)
	Currency  string            `bson:"currency"`
	Status    PaymentStatus     `bson:"payment_status"`
	Metadata  map[string]string `bson:"metadata,omitempty"`
	CreatedAt time.Time         `bson:"created_at"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

// NewPaymentTransaction builds a pending transaction for a freshly
// created provider session.
func NewPaymentTransaction(userID, email, sessionID string, amount int64, currency string, metadata map[string]string) *PaymentTransaction {
	now := time.Now().UTC()
	return &PaymentTransaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Email:     email,
		SessionID: sessionID,
		Amount:    amount,
		Currency:  currency,
		Status:    PaymentStatusPending,
		Metadata:  metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PaymentPackage is a server-fixed price table entry. Clients select a
// package by id; amount and currency are never taken from the request.
type PaymentPackage struct {
	Amount      int64 // minor units (cents)
	Currency    string
	Description string
}

// PaymentPackages is the catalogue of one-time purchases.
var PaymentPackages = map[string]PaymentPackage{
	"unlock_full_access": {
		Amount:      100,
		Currency:    "usd",
		Description: "MindSpace Full Access - One-time payment",
	},
}
