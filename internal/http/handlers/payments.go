package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/domain"
	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/middleware"
)

const maxWebhookBodyBytes = int64(65536)

type createCheckoutRequest struct {
	PackageID string `json:"package_id"`
	OriginURL string `json:"origin_url"`
}

// CreateCheckout starts a provider-hosted checkout session for a
// server-priced package. The pending transaction is persisted before the
// session is returned to the caller.
func (a *App) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	var req createCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	pkg, ok := domain.PaymentPackages[req.PackageID]
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payment package")
		return
	}
	origin, ok := normalizeOrigin(req.OriginURL)
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid origin url")
		return
	}
	if user.HasPaid {
		a.error(w, http.StatusConflict, "conflict", "full access already unlocked")
		return
	}

	metadata := map[string]string{
		"user_id":    user.ID,
		"email":      user.Email,
		"package_id": req.PackageID,
		"app":        "mindspace",
	}
	successURL := origin + "/payment-success?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := origin + "/payment-cancel"

	sess, err := a.Checkout.CreateSession(r.Context(), pkg, successURL, cancelURL, metadata)
	if err != nil {
		a.Logger.Error().Err(err).Msg("create checkout session failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create payment session")
		return
	}

	txn := domain.NewPaymentTransaction(user.ID, user.Email, sess.ID, pkg.Amount, pkg.Currency, metadata)
	if err := a.Payments.Create(r.Context(), txn); err != nil {
		a.Logger.Error().Err(err).Str("session_id", sess.ID).Msg("persist transaction failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create payment session")
		return
	}

	a.Logger.Info().Str("email", user.Email).Str("session_id", sess.ID).Msg("checkout session created")
	a.json(w, http.StatusOK, sess)
}

// CheckoutStatus polls the provider for a session and reconciles the
// stored transaction, unlocking the user on a paid transition.
func (a *App) CheckoutStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFromContext(r.Context()); !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	sessionID := chi.URLParam(r, "sessionId")

	txn, err := a.Payments.GetBySessionID(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "transaction not found")
			return
		}
		a.Logger.Error().Err(err).Msg("transaction lookup failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to check payment status")
		return
	}

	status, err := a.Checkout.GetSessionStatus(r.Context(), sessionID)
	if err != nil {
		a.Logger.Error().Err(err).Str("session_id", sessionID).Msg("provider status fetch failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to check payment status")
		return
	}

	if err := a.reconcile(r.Context(), txn, status.Status); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to check payment status")
		return
	}

	a.json(w, http.StatusOK, status)
}

// StripeWebhook accepts provider push notifications. Signature failures
// and processing errors are rejected so the provider retries delivery.
func (a *App) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "no signature provided")
		return
	}

	event, err := a.Checkout.VerifyWebhook(body, signature)
	if err != nil {
		a.Logger.Error().Err(err).Msg("webhook verification failed")
		a.error(w, http.StatusBadRequest, "bad_request", "webhook processing failed")
		return
	}
	if event == nil {
		// Event type we do not reconcile; acknowledge so the provider
		// stops redelivering it.
		a.json(w, http.StatusOK, map[string]string{"status": "success"})
		return
	}

	txn, err := a.Payments.GetBySessionID(r.Context(), event.SessionID)
	if err != nil {
		// A signature-valid event for a session we never created has
		// nothing to reconcile; ack it so the provider stops retrying.
		if errors.Is(err, domain.ErrNotFound) {
			a.Logger.Warn().Str("session_id", event.SessionID).Msg("webhook for unknown session acknowledged")
			a.json(w, http.StatusOK, map[string]string{"status": "success"})
			return
		}
		a.Logger.Error().Err(err).Str("session_id", event.SessionID).Msg("webhook transaction lookup failed")
		a.error(w, http.StatusBadRequest, "bad_request", "webhook processing failed")
		return
	}

	// The webhook carries no caller identity; the unlock target comes
	// from the session metadata captured at checkout time.
	if err := a.reconcile(r.Context(), txn, event.Status); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "webhook processing failed")
		return
	}

	a.json(w, http.StatusOK, map[string]string{"status": "success"})
}

// reconcile applies a provider-reported status to the stored transaction
// and performs the at-most-once unlock on a paid report. Terminal
// statuses are sinks for the recorded status only: a paid report always
// retries MarkPaid, so a delivery that recorded the status but lost the
// unlock is repaired by the provider's redelivery. MarkPaid is a
// conditional update, so repeats are no-ops.
func (a *App) reconcile(ctx context.Context, txn *domain.PaymentTransaction, status domain.PaymentStatus) error {
	if status != txn.Status && !txn.Status.Terminal() {
		if err := a.Payments.UpdateStatus(ctx, txn.SessionID, status); err != nil {
			a.Logger.Error().Err(err).Str("session_id", txn.SessionID).Msg("transaction status update failed")
			return err
		}
	}

	if status != domain.PaymentStatusPaid {
		return nil
	}

	flipped, err := a.Users.MarkPaid(ctx, txn.UserID)
	if err != nil {
		a.Logger.Error().Err(err).Str("user_id", txn.UserID).Msg("unlock failed")
		return err
	}
	if flipped {
		a.Logger.Info().Str("email", txn.Email).Msg("user unlocked full access via payment")
	}
	return nil
}

func normalizeOrigin(raw string) (string, bool) {
	origin := strings.TrimRight(strings.TrimSpace(raw), "/")
	if origin == "" {
		return "", false
	}
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}
	return origin, true
}
