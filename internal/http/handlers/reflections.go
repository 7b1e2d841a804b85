package handlers

import (
	"net/http"

	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/middleware"
)

// IncrementFreeUsage bumps the caller's free-reflection counter. Paid
// users and beta testers are unmetered, so the call is a no-op success
// for them. The returned count is the optimistic prior value plus one;
// the store-side increment itself is atomic.
func (a *App) IncrementFreeUsage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	if user.HasUnlimitedAccess() {
		a.json(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "User has unlimited access",
		})
		return
	}

	if err := a.Users.IncrementFreeUsage(r.Context(), user.ID); err != nil {
		a.Logger.Error().Err(err).Str("user_id", user.ID).Msg("increment free usage failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update usage")
		return
	}

	a.Logger.Info().Str("email", user.Email).Msg("incremented free usage")
	a.json(w, http.StatusOK, map[string]any{
		"success":               true,
		"free_reflections_used": user.FreeReflectionsUsed + 1,
	})
}
