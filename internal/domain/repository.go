package domain

import "context"

// UserRepository defines access methods for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	// MarkPaid flips has_paid to true iff it is still false, returning
	// whether this call performed the flip. Repeated calls are no-ops.
	MarkPaid(ctx context.Context, userID string) (bool, error)
	// IncrementFreeUsage atomically bumps the free-use counter.
	IncrementFreeUsage(ctx context.Context, userID string) error
}

// WaitlistRepository handles beta-signup persistence.
type WaitlistRepository interface {
	Create(ctx context.Context, entry *WaitlistEntry) error
	GetByEmail(ctx context.Context, email string) (*WaitlistEntry, error)
	List(ctx context.Context, limit int) ([]WaitlistEntry, error)
}

// PaymentRepository handles checkout-transaction persistence.
type PaymentRepository interface {
	Create(ctx context.Context, txn *PaymentTransaction) error
	GetBySessionID(ctx context.Context, sessionID string) (*PaymentTransaction, error)
	UpdateStatus(ctx context.Context, sessionID string, status PaymentStatus) error
}
