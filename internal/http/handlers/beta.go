package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/domain"
)

// waitlistCap bounds the admin listing response size.
const waitlistCap = 1000

type betaSignupRequest struct {
	Email string `json:"email"`
}

type betaSignupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

// BetaSignup joins the beta waitlist. Joining twice is a success, not an
// error; exactly one entry is stored per email.
func (a *App) BetaSignup(w http.ResponseWriter, r *http.Request) {
	var req betaSignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	email, ok := normalizeEmail(req.Email)
	if !ok {
		a.error(w, http.StatusUnprocessableEntity, "bad_request", "invalid email address")
		return
	}

	if _, err := a.Waitlist.GetByEmail(r.Context(), email); err == nil {
		a.json(w, http.StatusOK, betaSignupResponse{
			Success: true,
			Message: "You're already on the list! We'll be in touch soon.",
			Email:   email,
		})
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		a.Logger.Error().Err(err).Msg("waitlist lookup failed")
		a.error(w, http.StatusInternalServerError, "internal", "Something went wrong. Please try again.")
		return
	}

	entry := domain.NewWaitlistEntry(email)
	if err := a.Waitlist.Create(r.Context(), entry); err != nil {
		// Lost the race against a concurrent join for the same email;
		// still a success for the caller.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			a.json(w, http.StatusOK, betaSignupResponse{
				Success: true,
				Message: "You're already on the list! We'll be in touch soon.",
				Email:   email,
			})
			return
		}
		a.Logger.Error().Err(err).Msg("waitlist insert failed")
		a.error(w, http.StatusInternalServerError, "internal", "Something went wrong. Please try again.")
		return
	}

	a.Logger.Info().Str("email", email).Msg("new beta signup")
	a.json(w, http.StatusOK, betaSignupResponse{
		Success: true,
		Message: "Thank you for joining the beta! We'll be in touch soon.",
		Email:   email,
	})
}

type betaSignupItem struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
}

// BetaSignupList returns an unordered snapshot of waitlist entries for
// admin use, capped at waitlistCap.
func (a *App) BetaSignupList(w http.ResponseWriter, r *http.Request) {
	entries, err := a.Waitlist.List(r.Context(), waitlistCap)
	if err != nil {
		a.Logger.Error().Err(err).Msg("waitlist list failed")
		a.error(w, http.StatusInternalServerError, "internal", "Error fetching signups")
		return
	}

	items := make([]betaSignupItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, betaSignupItem{
			Email:     e.Email,
			CreatedAt: e.CreatedAt,
			Status:    string(e.Status),
		})
	}
	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(items),
		"signups": items,
	})
}
