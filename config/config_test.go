package config

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func testConfig() *Config {
	return &Config{
		Env:              EnvStaging,
		Tenants:          map[string]Tenant{"key-a": {WebID: "web1", Status: "1"}},
		OneToOne:         map[string]struct{}{"USD": {}, "THB": {}},
		OneToOneThousand: map[string]struct{}{"IDR": {}, "VND": {}},
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	cfg := testConfig()

	cases := []struct {
		currency string
		in       string
		want     string
	}{
		{"USD", "10", "10"},
		{"THB", "2.5", "2.5"},
		{"IDR", "10", "10000"},
		{"idr", "0.5", "500"},
		{" VND ", "1", "1000"},
	}
	for _, tc := range cases {
		in := decimal.RequireFromString(tc.in)
		want := decimal.RequireFromString(tc.want)

		got, err := cfg.Normalize(in, tc.currency)
		if err != nil {
			t.Fatalf("Normalize(%s, %s): %v", tc.in, tc.currency, err)
		}
		if !got.Equal(want) {
			t.Fatalf("Normalize(%s, %s) = %s, want %s", tc.in, tc.currency, got, want)
		}

		back, err := cfg.Denormalize(got, tc.currency)
		if err != nil {
			t.Fatalf("Denormalize(%s, %s): %v", got, tc.currency, err)
		}
		if !back.Equal(in) {
			t.Fatalf("Denormalize(Normalize(%s)) = %s, want the original", tc.in, back)
		}
	}
}

func TestNormalizeUnknownCurrency(t *testing.T) {
	cfg := testConfig()

	if _, err := cfg.Normalize(decimal.NewFromInt(1), "JPY"); !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("Normalize(JPY) err = %v, want ErrUnknownCurrency", err)
	}
	if _, err := cfg.Denormalize(decimal.NewFromInt(1), ""); !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("Denormalize(empty) err = %v, want ErrUnknownCurrency", err)
	}
}

func TestAuthenticate(t *testing.T) {
	cfg := testConfig()

	tenant, err := cfg.Authenticate("key-a")
	if err != nil {
		t.Fatalf("Authenticate(key-a): %v", err)
	}
	if tenant.WebID != "web1" {
		t.Fatalf("tenant.WebID = %q, want web1", tenant.WebID)
	}

	if _, err := cfg.Authenticate("bogus"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("Authenticate(bogus) err = %v, want ErrInvalidKey", err)
	}
	if _, err := cfg.Authenticate(""); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("Authenticate(empty) err = %v, want ErrInvalidKey", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := testConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	cfg.OneToOneThousand["USD"] = struct{}{}
	if err := cfg.Validate(); !errors.Is(err, ErrAmbiguousCurrency) {
		t.Fatalf("Validate err = %v, want ErrAmbiguousCurrency", err)
	}

	empty := &Config{}
	if err := empty.Validate(); !errors.Is(err, ErrNoTenantsConfigured) {
		t.Fatalf("Validate err = %v, want ErrNoTenantsConfigured", err)
	}
}

func TestLoadSelectsKeySetByEnvironment(t *testing.T) {
	t.Setenv("GATEWAY_ENV", EnvStaging)
	t.Setenv("TENANT_KEYS", "prod-key:web1:1")
	t.Setenv("TENANT_KEYS_TEST", "stg-key:web1:2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := cfg.Authenticate("stg-key"); err != nil {
		t.Fatalf("staging must accept the test key set: %v", err)
	}
	if _, err := cfg.Authenticate("prod-key"); !errors.Is(err, ErrInvalidKey) {
		t.Fatal("staging must not accept the production key set")
	}

	t.Setenv("GATEWAY_ENV", EnvProduction)
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := cfg.Authenticate("prod-key"); err != nil {
		t.Fatalf("production must accept the production key set: %v", err)
	}
	if _, err := cfg.Authenticate("stg-key"); !errors.Is(err, ErrInvalidKey) {
		t.Fatal("production must not accept the test key set")
	}
}

func TestLoadDefaultCurrencySets(t *testing.T) {
	t.Setenv("GATEWAY_ENV", EnvStaging)
	t.Setenv("TENANT_KEYS", "k:web1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got, err := cfg.Normalize(decimal.NewFromInt(2), "IDR"); err != nil || !got.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("default IDR scaling broken: got %s err %v", got, err)
	}
	if got, err := cfg.Normalize(decimal.NewFromInt(2), "SGD"); err != nil || !got.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("default SGD scaling broken: got %s err %v", got, err)
	}
}

func TestLoadRejectsUnknownEnvironment(t *testing.T) {
	t.Setenv("GATEWAY_ENV", "qa")
	if _, err := Load(); err == nil {
		t.Fatal("Load must reject an unsupported GATEWAY_ENV")
	}
}
