package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestSessionRoundTrip(t *testing.T) {
	token, err := SignSession(testSecret, 42, "admin", time.Hour)
	if err != nil {
		t.Fatalf("SignSession returned error: %v", err)
	}

	claims, err := VerifySession(testSecret, token)
	if err != nil {
		t.Fatalf("VerifySession returned error: %v", err)
	}
	if claims.Subject != "42" {
		t.Fatalf("subject = %q, want 42", claims.Subject)
	}
	if claims.Role != "admin" {
		t.Fatalf("role = %q, want admin", claims.Role)
	}
}

func TestVerifySessionRejectsBadSecret(t *testing.T) {
	token, err := SignSession(testSecret, 1, "participant", time.Hour)
	if err != nil {
		t.Fatalf("SignSession returned error: %v", err)
	}
	if _, err := VerifySession("other-secret", token); err == nil {
		t.Fatal("expected verification to fail with wrong secret")
	}
}

func TestVerifySessionRejectsExpired(t *testing.T) {
	token, err := SignSession(testSecret, 1, "participant", -time.Minute)
	if err != nil {
		t.Fatalf("SignSession returned error: %v", err)
	}
	if _, err := VerifySession(testSecret, token); err == nil {
		t.Fatal("expected verification to fail for expired token")
	}
}

func TestAuthJWTStoresIdentity(t *testing.T) {
	token, err := SignSession(testSecret, 7, "participant", time.Hour)
	if err != nil {
		t.Fatalf("SignSession returned error: %v", err)
	}

	var gotUserID int64
	var gotRole string
	h := AuthJWT(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	if gotUserID != 7 {
		t.Fatalf("user id = %d, want 7", gotUserID)
	}
	if gotRole != "participant" {
		t.Fatalf("role = %q, want participant", gotRole)
	}
}

func TestAuthJWTRejectsMissingHeader(t *testing.T) {
	h := AuthJWT(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	adminToken, _ := SignSession(testSecret, 1, "admin", time.Hour)
	participantToken, _ := SignSession(testSecret, 2, "participant", time.Hour)

	h := AuthJWT(testSecret)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin status %d, want 200", rec.Code)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+participantToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("participant status %d, want 403", rec.Code)
	}
}
