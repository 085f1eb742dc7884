// Package config loads stockdesk's runtime settings from the environment.
package config

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"stockdesk/services"
)

// Prefix is prepended to every variable name, e.g. DESK_TAX_RATE.
const Prefix = "DESK"

// Store backends selectable with DESK_STORE.
const (
	StoreRecords = "records"
	StoreMemory  = "memory"
)

// Config holds runtime configuration for the application.
type Config struct {
	TaxRate      float64  `envconfig:"TAX_RATE" default:"18"`
	AmountPolicy string   `envconfig:"AMOUNT_POLICY" default:"forbid"`
	Statuses     []string `envconfig:"STATUSES" default:"pending,partial,closed"`
	Store        string   `envconfig:"STORE" default:"records"`
	SeedDemo     bool     `envconfig:"SEED_DEMO" default:"true"`

	CompanyName    string `envconfig:"COMPANY_NAME" default:"Your Company Name"`
	CompanyAddress string `envconfig:"COMPANY_ADDRESS" default:"Your Company Address"`
	CompanyPhone   string `envconfig:"COMPANY_PHONE" default:"+91-XXXXXXXXXX"`
	CompanyEmail   string `envconfig:"COMPANY_EMAIL" default:"info@example.com"`
}

// Load reads an optional .env file and then the environment. Variables
// already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.AmountPolicy = strings.ToLower(strings.TrimSpace(c.AmountPolicy))
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))

	seen := make(map[string]bool, len(c.Statuses))
	statuses := c.Statuses[:0]
	for _, s := range c.Statuses {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		statuses = append(statuses, s)
	}
	c.Statuses = statuses
}

// Validate checks the loaded values.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.TaxRate, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&c.AmountPolicy, validation.Required,
			validation.In(string(services.AmountsForbidNegative), string(services.AmountsAllowCredit))),
		validation.Field(&c.Statuses, validation.Required),
		validation.Field(&c.Store, validation.Required, validation.In(StoreRecords, StoreMemory)),
		validation.Field(&c.CompanyName, validation.Required),
	)
}

// Rules returns the document validation rules described by the config.
func (c *Config) Rules() services.Rules {
	statuses := make(services.StatusSet, len(c.Statuses))
	for i, s := range c.Statuses {
		statuses[i] = services.Status(s)
	}
	return services.Rules{
		Statuses:       statuses,
		AmountPolicy:   services.AmountPolicy(c.AmountPolicy),
		DefaultTaxRate: c.TaxRate,
	}
}

// DefaultProfile returns the letterhead used by users without a saved profile.
func (c *Config) DefaultProfile() services.Profile {
	return services.Profile{
		CompanyName: c.CompanyName,
		Address:     c.CompanyAddress,
		Phone:       c.CompanyPhone,
		Email:       c.CompanyEmail,
	}
}
