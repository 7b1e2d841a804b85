package domain

import (
	"time"

	"github.com/google/uuid"
)

// WaitlistStatus enumerates beta-signup states. Only "pending" is used
// today; the field exists so entries can be promoted later without a
// schema change.
type WaitlistStatus string

const (
	WaitlistStatusPending WaitlistStatus = "pending"
)

// WaitlistEntry is a beta-tester signup keyed by email.
type WaitlistEntry struct {
	ID        string         `bson:"_id"`
	Email     string         `bson:"email"`
	Status    WaitlistStatus `bson:"status"`
	CreatedAt time.Time      `bson:"created_at"`
}

// NewWaitlistEntry builds a pending signup for the given email.
func NewWaitlistEntry(email string) *WaitlistEntry {
	return &WaitlistEntry{
		ID:        uuid.NewString(),
		Email:     email,
		Status:    WaitlistStatusPending,
		CreatedAt: time.Now().UTC(),
	}
}
