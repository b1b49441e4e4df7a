package infra

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("CAMPAIGN_RESERVE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "8080")
	}
	if cfg.CampaignReserve == 0 {
		t.Fatal("CampaignReserve must default to a positive value")
	}
	if cfg.AppEnv != "development" {
		t.Fatalf("AppEnv mismatch: got %q", cfg.AppEnv)
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when JWT_SECRET is unset")
	}
}

func TestLoadConfigRejectsOutOfRangeReserve(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CAMPAIGN_RESERVE", "9223372036854775808") // MaxInt64 + 1

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for reserve beyond the amount range")
	}
}

func TestLoadConfigHonorsExplicitReserve(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CAMPAIGN_RESERVE", "1234")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.CampaignReserve != 1234 {
		t.Fatalf("CampaignReserve mismatch: got %d want 1234", cfg.CampaignReserve)
	}
}
