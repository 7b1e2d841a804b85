package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/domain"
	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/payments"
)

// App is the handler container. Every collaborator is injected so tests
// can substitute in-memory repositories and a fake checkout client.
type App struct {
	Users     domain.UserRepository
	Waitlist  domain.WaitlistRepository
	Payments  domain.PaymentRepository
	Checkout  payments.CheckoutClient
	Logger    zerolog.Logger
	JWTSecret []byte
}

func NewApp(users domain.UserRepository, waitlist domain.WaitlistRepository, txns domain.PaymentRepository, checkout payments.CheckoutClient, logger zerolog.Logger, jwtSecret []byte) *App {
	return &App{
		Users:     users,
		Waitlist:  waitlist,
		Payments:  txns,
		Checkout:  checkout,
		Logger:    logger,
		JWTSecret: jwtSecret,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"error": errCode, "message": message})
}
