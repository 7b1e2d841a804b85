package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/auth"
	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/domain"
	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/middleware"
)

func doJSON(t *testing.T, handler http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decodeToken(t *testing.T, rr *httptest.ResponseRecorder) tokenResponse {
	t.Helper()
	var resp tokenResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestSignupCreatesUserAndIssuesToken(t *testing.T) {
	ta := newTestApp()

	rr := doJSON(t, ta.Signup, "POST", "/api/auth/signup", `{"email":"a@x.com","password":"p1"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body)
	}
	resp := decodeToken(t, rr)
	if resp.TokenType != "bearer" {
		t.Fatalf("token_type = %q, want bearer", resp.TokenType)
	}
	if resp.User.Email != "a@x.com" || resp.User.HasPaid || resp.User.IsBetaTester || resp.User.FreeReflectionsUsed != 0 {
		t.Fatalf("unexpected user view: %+v", resp.User)
	}

	subject, err := auth.DecodeToken(ta.JWTSecret, resp.AccessToken)
	if err != nil {
		t.Fatalf("DecodeToken() error: %v", err)
	}
	if subject != "a@x.com" {
		t.Fatalf("token subject = %q, want a@x.com", subject)
	}

	stored, err := ta.users.GetByEmail(t.Context(), "a@x.com")
	if err != nil {
		t.Fatalf("stored user missing: %v", err)
	}
	if stored.HashedPassword == "p1" || stored.HashedPassword == "" {
		t.Fatalf("password stored without hashing")
	}
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	ta := newTestApp()

	if rr := doJSON(t, ta.Signup, "POST", "/api/auth/signup", `{"email":"a@x.com","password":"p1"}`); rr.Code != http.StatusOK {
		t.Fatalf("first signup status = %d, want 200", rr.Code)
	}
	rr := doJSON(t, ta.Signup, "POST", "/api/auth/signup", `{"email":"a@x.com","password":"other"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("second signup status = %d, want 400", rr.Code)
	}
	if len(ta.users.users) != 1 {
		t.Fatalf("stored users = %d, want exactly 1", len(ta.users.users))
	}
}

func TestSignupRejectsInvalidEmailShape(t *testing.T) {
	ta := newTestApp()

	for _, email := range []string{"", "not-an-email", "a b@x.com"} {
		rr := doJSON(t, ta.Signup, "POST", "/api/auth/signup", `{"email":"`+email+`","password":"p1"}`)
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("signup(%q) status = %d, want 422", email, rr.Code)
		}
	}
}

func TestLoginSameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	ta := newTestApp()
	doJSON(t, ta.Signup, "POST", "/api/auth/signup", `{"email":"a@x.com","password":"right"}`)

	unknown := doJSON(t, ta.Login, "POST", "/api/auth/login", `{"email":"b@x.com","password":"right"}`)
	wrongPass := doJSON(t, ta.Login, "POST", "/api/auth/login", `{"email":"a@x.com","password":"wrong"}`)

	if unknown.Code != http.StatusUnauthorized || wrongPass.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d/%d, want 401/401", unknown.Code, wrongPass.Code)
	}
	if unknown.Body.String() != wrongPass.Body.String() {
		t.Fatalf("error bodies differ, leaking which check failed:\n%s\n%s", unknown.Body, wrongPass.Body)
	}
}

func TestLoginReturnsWorkingToken(t *testing.T) {
	ta := newTestApp()
	doJSON(t, ta.Signup, "POST", "/api/auth/signup", `{"email":"a@x.com","password":"p1"}`)

	rr := doJSON(t, ta.Login, "POST", "/api/auth/login", `{"email":"a@x.com","password":"p1"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200: %s", rr.Code, rr.Body)
	}
	resp := decodeToken(t, rr)
	subject, err := auth.DecodeToken(ta.JWTSecret, resp.AccessToken)
	if err != nil || subject != "a@x.com" {
		t.Fatalf("token does not resolve to the issuing user: subject=%q err=%v", subject, err)
	}
}

func TestMeReturnsCallerView(t *testing.T) {
	ta := newTestApp()
	user := domain.NewUser("a@x.com", "hash")
	user.FreeReflectionsUsed = 2

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req = req.WithContext(middleware.ContextWithUser(req.Context(), user))
	rr := httptest.NewRecorder()
	ta.Me(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var view domain.UserView
	if err := json.NewDecoder(rr.Body).Decode(&view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.Email != "a@x.com" || view.FreeReflectionsUsed != 2 {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestAccessCheckGrantsPromotionalAccess(t *testing.T) {
	ta := newTestApp()
	// A user far past the free trial still gets in during the promo.
	user := domain.NewUser("a@x.com", "hash")
	user.FreeReflectionsUsed = 10

	req := httptest.NewRequest("GET", "/api/auth/access-check", nil)
	req = req.WithContext(middleware.ContextWithUser(req.Context(), user))
	rr := httptest.NewRecorder()
	ta.AccessCheck(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var decision domain.AccessDecision
	if err := json.NewDecoder(rr.Body).Decode(&decision); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !decision.HasAccess || decision.Reason != domain.AccessReasonPromotional {
		t.Fatalf("unexpected decision: %+v", decision)
	}
}
