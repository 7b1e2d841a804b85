package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. The stored document keeps the
// bcrypt hash; it must never leave the storage/auth boundary.
type User struct {
	ID                  string    `bson:"_id"`
	Email               string    `bson:"email"`
	HashedPassword      string    `bson:"hashed_password"`
	HasPaid             bool      `bson:"has_paid"`
	IsBetaTester        bool      `bson:"is_beta_tester"`
	FreeReflectionsUsed int       `bson:"free_reflections_used"`
	CreatedAt           time.Time `bson:"created_at"`
}

// NewUser builds a fresh unpaid account for the given email.
func NewUser(email, hashedPassword string) *User {
	return &User{
		ID:             uuid.NewString(),
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}
}

// HasUnlimitedAccess reports whether free-usage metering does not apply.
func (u User) HasUnlimitedAccess() bool {
	return u.HasPaid || u.IsBetaTester
}

// UserView is the public projection of a user, safe to return to clients.
type UserView struct {
	ID                  string `json:"id"`
	Email               string `json:"email"`
	HasPaid             bool   `json:"has_paid"`
	IsBetaTester        bool   `json:"is_beta_tester"`
	FreeReflectionsUsed int    `json:"free_reflections_used"`
}

// View returns the public projection of the user.
func (u User) View() UserView {
	return UserView{
		ID:                  u.ID,
		Email:               u.Email,
		HasPaid:             u.HasPaid,
		IsBetaTester:        u.IsBetaTester,
		FreeReflectionsUsed: u.FreeReflectionsUsed,
	}
}
