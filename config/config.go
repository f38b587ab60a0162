package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
)

var (
	ErrInvalidKey          = errors.New("invalid authentication key")
	ErrUnknownCurrency     = errors.New("currency not classified in any scaling set")
	ErrAmbiguousCurrency   = errors.New("currency classified in both scaling sets")
	ErrNoTenantsConfigured = errors.New("no tenant keys configured")
)

// Tenant is one provider brand resolved from its shared-secret key.
type Tenant struct {
	WebID  string
	Status string // sub-brand discriminator carried onto ledger rows
}

// Config is built once in main and injected everywhere; nothing in the
// core reads the environment after Load returns.
type Config struct {
	Env      string
	Addr     string
	DSN      string
	AdminKey string

	WalletBaseURL    string
	BetDetailBaseURL string
	BetDetailKey     string

	PCASecret []byte

	Tenants map[string]Tenant

	OneToOne         map[string]struct{}
	OneToOneThousand map[string]struct{}
}

var scaleThousand = decimal.NewFromInt(1000)

// Load reads the full gateway configuration from the environment. The
// tenant key set and the currency scaling sets are selected by GATEWAY_ENV:
// production reads TENANT_KEYS / CURRENCY_*, staging reads the *_TEST
// variants, falling back to the production values when unset.
func Load() (*Config, error) {
	env := strings.ToLower(getEnv("GATEWAY_ENV", EnvStaging))
	if env != EnvProduction && env != EnvStaging {
		return nil, fmt.Errorf("unsupported GATEWAY_ENV %q", env)
	}

	cfg := &Config{
		Env:              env,
		Addr:             fmt.Sprintf("%s:%s", getEnv("HOST", "127.0.0.1"), getEnv("PORT", "3000")),
		DSN:              buildDSN(),
		AdminKey:         os.Getenv("ADMIN_API_KEY"),
		WalletBaseURL:    os.Getenv("WALLET_API_URL"),
		BetDetailBaseURL: os.Getenv("SABA_API_URL"),
		BetDetailKey:     os.Getenv("SABA_VENDOR_ID"),
		PCASecret:        []byte(os.Getenv("PCA_TOKEN_SECRET")),
		Tenants:          parseTenants(envForMode("TENANT_KEYS", env)),
		OneToOne:         parseSet(getEnv(envNameForMode("CURRENCY_ONE_TO_ONE", env), "USD,THB,MYR,CNY,SGD")),
		OneToOneThousand: parseSet(getEnv(envNameForMode("CURRENCY_ONE_TO_THOUSAND", env), "IDR,VND,KHR,LAK,MMK")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces that the tenant table is non-empty and that every
// configured currency sits in exactly one scaling set.
func (c *Config) Validate() error {
	if len(c.Tenants) == 0 {
		return ErrNoTenantsConfigured
	}
	for cur := range c.OneToOne {
		if _, ok := c.OneToOneThousand[cur]; ok {
			return fmt.Errorf("%w: %s", ErrAmbiguousCurrency, cur)
		}
	}
	return nil
}

// Authenticate maps a shared-secret key to its tenant, or fails with
// ErrInvalidKey. Key sets differ between staging and production because
// Load reads a different variable per environment.
func (c *Config) Authenticate(key string) (Tenant, error) {
	t, ok := c.Tenants[key]
	if !ok {
		return Tenant{}, ErrInvalidKey
	}
	return t, nil
}

// Normalize converts a provider wire amount into the canonical amount for
// the wallet. It is total over the configured currencies: an unclassified
// currency is a configuration error, never a passthrough.
func (c *Config) Normalize(amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	cur := normalizeCurrency(currency)
	if _, ok := c.OneToOne[cur]; ok {
		return amount, nil
	}
	if _, ok := c.OneToOneThousand[cur]; ok {
		return amount.Mul(scaleThousand), nil
	}
	return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, cur)
}

// Denormalize converts a canonical wallet amount back into provider units
// for response envelopes.
func (c *Config) Denormalize(amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	cur := normalizeCurrency(currency)
	if _, ok := c.OneToOne[cur]; ok {
		return amount, nil
	}
	if _, ok := c.OneToOneThousand[cur]; ok {
		return amount.Div(scaleThousand), nil
	}
	return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, cur)
}

func normalizeCurrency(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// parseTenants reads "key:webID:status" triples separated by commas.
func parseTenants(raw string) map[string]Tenant {
	tenants := make(map[string]Tenant)
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) < 2 || parts[0] == "" {
			continue
		}
		t := Tenant{WebID: parts[1], Status: "1"}
		if len(parts) > 2 && parts[2] != "" {
			t.Status = parts[2]
		}
		tenants[parts[0]] = t
	}
	return tenants
}

func parseSet(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, cur := range strings.Split(raw, ",") {
		cur = normalizeCurrency(cur)
		if cur != "" {
			set[cur] = struct{}{}
		}
	}
	return set
}

func envNameForMode(name, env string) string {
	if env == EnvStaging {
		return name + "_TEST"
	}
	return name
}

func envForMode(name, env string) string {
	if env == EnvStaging {
		if v := os.Getenv(name + "_TEST"); v != "" {
			return v
		}
	}
	return os.Getenv(name)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	// staging variants fall back to the production name
	if strings.HasSuffix(key, "_TEST") {
		if v := os.Getenv(strings.TrimSuffix(key, "_TEST")); v != "" {
			return v
		}
	}
	return fallback
}

func buildDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_SSLMODE", "disable"),
	)
}
