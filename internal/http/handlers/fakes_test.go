package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/domain"
	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/payments"
)

// In-memory repository fakes backing the handler tests. They mirror the
// store's single-document atomicity: MarkPaid only flips an unpaid user
// and IncrementFreeUsage mutates the stored document.

type memUsers struct {
	users map[string]*domain.User // by id
	err   error
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]*domain.User{}}
}

func (m *memUsers) Create(_ context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUsers) MarkPaid(_ context.Context, userID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	u, ok := m.users[userID]
	if !ok || u.HasPaid {
		return false, nil
	}
	u.HasPaid = true
	return true, nil
}

func (m *memUsers) IncrementFreeUsage(_ context.Context, userID string) error {
	if m.err != nil {
		return m.err
	}
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.FreeReflectionsUsed++
	return nil
}

type memWaitlist struct {
	entries []*domain.WaitlistEntry
	err     error
	// missOnGet simulates an entry landing between the handler's lookup
	// and its insert, so the unique-index path can be exercised.
	missOnGet bool
}

func (m *memWaitlist) Create(_ context.Context, entry *domain.WaitlistEntry) error {
	if m.err != nil {
		return m.err
	}
	for _, e := range m.entries {
		if e.Email == entry.Email {
			return domain.ErrDuplicateEmail
		}
	}
	clone := *entry
	m.entries = append(m.entries, &clone)
	return nil
}

func (m *memWaitlist) GetByEmail(_ context.Context, email string) (*domain.WaitlistEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.missOnGet {
		return nil, domain.ErrNotFound
	}
	for _, e := range m.entries {
		if e.Email == email {
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memWaitlist) List(_ context.Context, limit int) ([]domain.WaitlistEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.WaitlistEntry, 0, len(m.entries))
	for _, e := range m.entries {
		if len(out) >= limit {
			break
		}
		out = append(out, *e)
	}
	return out, nil
}

type memPayments struct {
	txns map[string]*domain.PaymentTransaction // by session id
	err  error
}

func newMemPayments() *memPayments {
	return &memPayments{txns: map[string]*domain.PaymentTransaction{}}
}

func (m *memPayments) Create(_ context.Context, txn *domain.PaymentTransaction) error {
	if m.err != nil {
		return m.err
	}
	clone := *txn
	m.txns[txn.SessionID] = &clone
	return nil
}

func (m *memPayments) GetBySessionID(_ context.Context, sessionID string) (*domain.PaymentTransaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	if txn, ok := m.txns[sessionID]; ok {
		clone := *txn
		return &clone, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memPayments) UpdateStatus(_ context.Context, sessionID string, status domain.PaymentStatus) error {
	if m.err != nil {
		return m.err
	}
	txn, ok := m.txns[sessionID]
	if !ok {
		return domain.ErrNotFound
	}
	txn.Status = status
	txn.UpdatedAt = time.Now().UTC()
	return nil
}

// fakeCheckout scripts the provider boundary.
type fakeCheckout struct {
	nextSessionID string
	createErr     error
	createdCalls  int

	status    domain.PaymentStatus
	statusErr error

	event     *payments.WebhookEvent
	verifyErr error
}

func (f *fakeCheckout) CreateSession(_ context.Context, pkg domain.PaymentPackage, successURL, cancelURL string, metadata map[string]string) (*payments.Session, error) {
	f.createdCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	id := f.nextSessionID
	if id == "" {
		id = fmt.Sprintf("cs_test_%d", f.createdCalls)
	}
	return &payments.Session{ID: id, URL: "https://checkout.stripe.com/pay/" + id}, nil
}

func (f *fakeCheckout) GetSessionStatus(_ context.Context, sessionID string) (*payments.SessionStatus, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &payments.SessionStatus{
		SessionID: sessionID,
		Status:    f.status,
		Amount:    100,
		Currency:  "usd",
	}, nil
}

func (f *fakeCheckout) VerifyWebhook(payload []byte, signature string) (*payments.WebhookEvent, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.event, nil
}

type testApp struct {
	*App
	users    *memUsers
	waitlist *memWaitlist
	payments *memPayments
	checkout *fakeCheckout
}

func newTestApp() *testApp {
	users := newMemUsers()
	waitlist := &memWaitlist{}
	txns := newMemPayments()
	checkout := &fakeCheckout{status: domain.PaymentStatusPending}
	app := NewApp(users, waitlist, txns, checkout, zerolog.Nop(), []byte("test-secret"))
	return &testApp{App: app, users: users, waitlist: waitlist, payments: txns, checkout: checkout}
}
