package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"crowdfund/internal/adapter/repo"
	"crowdfund/internal/escrow"
	"crowdfund/internal/http/handlers"
	"crowdfund/internal/middleware"
	"crowdfund/internal/notify"
)

const testSecret = "router-test-secret"

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	service := escrow.NewService(
		repo.NewMemoryCampaignRegistry(),
		repo.NewMemoryDonationLedger(),
		repo.NewMemoryBalanceLedger(),
		repo.NewMemoryTxRunner(),
		fixedClock{},
		notify.NewMemoryNotifier(),
		0,
		zerolog.Nop(),
	)
	app := handlers.NewApp(service, zerolog.Nop())
	return NewRouter(app, Options{JWTSecret: testSecret, Logger: zerolog.Nop()})
}

func TestRouter_HealthIsPublic(t *testing.T) {
	router := newTestRouter(t)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}

func TestRouter_CreateRequiresToken(t *testing.T) {
	router := newTestRouter(t)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("POST", "/v1/campaigns", strings.NewReader(`{}`)))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestRouter_CreateWithToken(t *testing.T) {
	router := newTestRouter(t)
	token, err := middleware.SignJWT(testSecret, middleware.TokenClaims{Sub: "alice"})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	body := `{"title":"garden","goal_amount":1000,"deadline":"2025-06-30T00:00:00Z"}`
	req := httptest.NewRequest("POST", "/v1/campaigns", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
}

func TestRouter_ListCampaignsIsPublic(t *testing.T) {
	router := newTestRouter(t)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/campaigns", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}
