package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "auth-test-secret"

func TestSignAndVerifyJWT(t *testing.T) {
	token, err := SignJWT(testSecret, TokenClaims{Sub: "alice", Exp: time.Now().Add(time.Hour).Unix()})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := VerifyJWT(testSecret, token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Sub != "alice" {
		t.Fatalf("sub = %q, want alice", claims.Sub)
	}
}

func TestVerifyJWT_Rejections(t *testing.T) {
	token, _ := SignJWT(testSecret, TokenClaims{Sub: "alice"})

	if _, err := VerifyJWT("other-secret", token); err == nil {
		t.Fatal("wrong secret must be rejected")
	}
	if _, err := VerifyJWT(testSecret, token+"x"); err == nil {
		t.Fatal("tampered signature must be rejected")
	}
	if _, err := VerifyJWT(testSecret, "not-a-token"); err == nil {
		t.Fatal("malformed token must be rejected")
	}

	expired, _ := SignJWT(testSecret, TokenClaims{Sub: "alice", Exp: time.Now().Add(-time.Minute).Unix()})
	if _, err := VerifyJWT(testSecret, expired); err == nil {
		t.Fatal("expired token must be rejected")
	}

	anonymous, _ := SignJWT(testSecret, TokenClaims{})
	if _, err := VerifyJWT(testSecret, anonymous); err == nil {
		t.Fatal("token without subject must be rejected")
	}
}

func TestAuthJWT_Middleware(t *testing.T) {
	var seenActor string
	handler := AuthJWT(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenActor = ActorFromContext(r.Context())
	}))

	// No header.
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: status = %d, want 401", rr.Code)
	}

	// Valid bearer token.
	token, _ := SignJWT(testSecret, TokenClaims{Sub: "bob"})
	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("valid token: status = %d, want 200", rr.Code)
	}
	if seenActor != "bob" {
		t.Fatalf("actor = %q, want bob", seenActor)
	}
}
