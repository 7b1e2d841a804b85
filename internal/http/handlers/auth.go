package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/auth"
	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/domain"
	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/middleware"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	User        domain.UserView `json:"user"`
}

// Signup registers a new account and returns a bearer token for it.
func (a *App) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	email, ok := normalizeEmail(req.Email)
	if !ok {
		a.error(w, http.StatusUnprocessableEntity, "bad_request", "invalid email address")
		return
	}
	if req.Password == "" {
		a.error(w, http.StatusUnprocessableEntity, "bad_request", "password required")
		return
	}

	if _, err := a.Users.GetByEmail(r.Context(), email); err == nil {
		a.error(w, http.StatusBadRequest, "conflict", "email already registered")
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		a.Logger.Error().Err(err).Msg("signup lookup failed")
		a.error(w, http.StatusInternalServerError, "internal", "registration failed")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		a.Logger.Error().Err(err).Msg("password hash failed")
		a.error(w, http.StatusInternalServerError, "internal", "registration failed")
		return
	}

	user := domain.NewUser(email, hash)
	if err := a.Users.Create(r.Context(), user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			a.error(w, http.StatusBadRequest, "conflict", "email already registered")
			return
		}
		a.Logger.Error().Err(err).Msg("create user failed")
		a.error(w, http.StatusInternalServerError, "internal", "registration failed")
		return
	}

	token, err := auth.IssueToken(a.JWTSecret, user.Email)
	if err != nil {
		a.Logger.Error().Err(err).Msg("issue token failed")
		a.error(w, http.StatusInternalServerError, "internal", "registration failed")
		return
	}

	a.Logger.Info().Str("email", user.Email).Msg("new user registered")
	a.json(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user.View(),
	})
}

// Login verifies credentials and returns a bearer token. Unknown email
// and wrong password produce the same 401 so nothing leaks about which
// check failed.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	email, ok := normalizeEmail(req.Email)
	if !ok {
		a.error(w, http.StatusUnprocessableEntity, "bad_request", "invalid email address")
		return
	}

	user, err := a.Users.GetByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			a.Logger.Error().Err(err).Msg("login lookup failed")
			a.error(w, http.StatusInternalServerError, "internal", "login failed")
			return
		}
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid email or password")
		return
	}
	if !auth.CheckPassword(req.Password, user.HashedPassword) {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid email or password")
		return
	}

	token, err := auth.IssueToken(a.JWTSecret, user.Email)
	if err != nil {
		a.Logger.Error().Err(err).Msg("issue token failed")
		a.error(w, http.StatusInternalServerError, "internal", "login failed")
		return
	}

	a.Logger.Info().Str("email", user.Email).Msg("user logged in")
	a.json(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user.View(),
	})
}

// Me returns the caller's public profile.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	a.json(w, http.StatusOK, user.View())
}

// AccessCheck reports whether the caller may use the paid feature set.
// While the promotional period runs, everyone is granted; the tiered
// policy stays in domain.Entitlement for when the paywall returns.
func (a *App) AccessCheck(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFromContext(r.Context()); !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	a.json(w, http.StatusOK, domain.PromotionalAccess())
}

func normalizeEmail(raw string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", false
	}
	return email, true
}
