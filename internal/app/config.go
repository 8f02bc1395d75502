package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/vellaperfumeria/cart-api/internal/domain/pricing"
)

// Config holds the complete application configuration, loadable from
// environment variables (VELLA_ prefix), flags, or YAML config files.
type Config struct {
	Addr        string `default:"0.0.0.0:8080" usage:"API server listen address"`
	DatabaseURL string `usage:"PostgreSQL connection URL (VELLA_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	RedisURL    string `usage:"Redis connection URL for cart snapshots; empty keeps carts in process memory" flag:"redis-url"`

	CartTTL time.Duration `default:"720h" usage:"Idle lifetime of a persisted cart snapshot" flag:"cart-ttl"`

	CheckoutBaseURL string `usage:"External checkout page the redirect hand-off points at" flag:"checkout-base-url"`
	CheckoutParam   string `default:"add-to-cart" usage:"Query parameter carrying product ids on the checkout URL" flag:"checkout-param"`
	WhatsAppPhone   string `usage:"Recipient phone for the messaging hand-off, digits only" flag:"whatsapp-phone"`

	Pricing   PricingConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Graceful  GracefulConfig
}

// PricingConfig overrides the built-in order pricing rules. Amounts are
// decimal strings so the values survive the environment round-trip exactly.
type PricingConfig struct {
	DiscountThreshold     string `default:"" usage:"Subtotal at which the order discount applies" flag:"discount-threshold"`
	DiscountRate          string `default:"" usage:"Discount rate as a fraction, e.g. 0.15" flag:"discount-rate"`
	FreeShippingThreshold string `default:"" usage:"Subtotal at which shipping is free" flag:"free-shipping-threshold"`
	ShippingCost          string `default:"" usage:"Flat shipping fee below the free threshold" flag:"shipping-cost"`
}

// RateLimitConfig controls the per-client token bucket rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"true" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config files,
// and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "VELLA",
		Files:     []string{"config.yaml", "/etc/vella/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.DatabaseURL == "" {
		return nil, errors.New("database URL is required: set VELLA_DATABASE_URL or DATABASE_URL")
	}
	if cfg.CheckoutBaseURL == "" {
		return nil, errors.New("checkout base URL is required: set VELLA_CHECKOUT_BASE_URL")
	}
	if cfg.WhatsAppPhone == "" {
		return nil, errors.New("WhatsApp phone is required: set VELLA_WHATSAPP_PHONE")
	}
	if _, err := cfg.PricingRules(); err != nil {
		return nil, errors.Wrap(err, "pricing overrides")
	}

	return &cfg, nil
}

// PricingRules merges the configured overrides onto the default rules.
func (c *Config) PricingRules() (pricing.Rules, error) {
	rules := pricing.DefaultRules()
	overrides := []struct {
		raw  string
		dst  *decimal.Decimal
		name string
	}{
		{c.Pricing.DiscountThreshold, &rules.DiscountThreshold, "discount threshold"},
		{c.Pricing.DiscountRate, &rules.DiscountRate, "discount rate"},
		{c.Pricing.FreeShippingThreshold, &rules.FreeShippingThreshold, "free shipping threshold"},
		{c.Pricing.ShippingCost, &rules.ShippingCost, "shipping cost"},
	}
	for _, o := range overrides {
		if o.raw == "" {
			continue
		}
		d, err := decimal.NewFromString(o.raw)
		if err != nil {
			return rules, errors.Wrapf(err, "parse %s", o.name)
		}
		*o.dst = d
	}
	return rules, nil
}

// applyPlatformDefaults maps platform-provided environment variables (Railway,
// Render, etc.) that use standard names like DATABASE_URL and PORT to the
// application's VELLA_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if c.RedisURL == "" {
		if v := os.Getenv("REDIS_URL"); v != "" {
			c.RedisURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
