package config

import (
	"os"
	"path/filepath"
	"testing"

	"stockdesk/services"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rules := cfg.Rules()
	if rules.DefaultTaxRate != 18 {
		t.Errorf("DefaultTaxRate = %v, want 18", rules.DefaultTaxRate)
	}
	if rules.AmountPolicy != services.AmountsForbidNegative {
		t.Errorf("AmountPolicy = %q, want forbid", rules.AmountPolicy)
	}
	if len(rules.Statuses) != 3 || rules.Statuses.Default() != "pending" {
		t.Errorf("Statuses = %v", rules.Statuses)
	}
	if cfg.Store != StoreRecords || !cfg.SeedDemo {
		t.Errorf("Store = %q, SeedDemo = %v", cfg.Store, cfg.SeedDemo)
	}
	if cfg.DefaultProfile() != services.DefaultProfile {
		t.Errorf("DefaultProfile() = %+v, want %+v", cfg.DefaultProfile(), services.DefaultProfile)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("DESK_TAX_RATE", "12.5")
	t.Setenv("DESK_AMOUNT_POLICY", " Credit ")
	t.Setenv("DESK_STATUSES", "Draft, sent,draft,,Paid")
	t.Setenv("DESK_STORE", "memory")
	t.Setenv("DESK_SEED_DEMO", "false")
	t.Setenv("DESK_COMPANY_NAME", "Fervid Traders")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rules := cfg.Rules()
	if rules.DefaultTaxRate != 12.5 {
		t.Errorf("DefaultTaxRate = %v, want 12.5", rules.DefaultTaxRate)
	}
	if rules.AmountPolicy != services.AmountsAllowCredit {
		t.Errorf("AmountPolicy = %q, want credit", rules.AmountPolicy)
	}
	want := services.StatusSet{"draft", "sent", "paid"}
	if len(rules.Statuses) != len(want) {
		t.Fatalf("Statuses = %v, want %v", rules.Statuses, want)
	}
	for i := range want {
		if rules.Statuses[i] != want[i] {
			t.Errorf("Statuses[%d] = %q, want %q", i, rules.Statuses[i], want[i])
		}
	}
	if cfg.Store != StoreMemory || cfg.SeedDemo {
		t.Errorf("Store = %q, SeedDemo = %v", cfg.Store, cfg.SeedDemo)
	}
	if cfg.DefaultProfile().CompanyName != "Fervid Traders" {
		t.Errorf("CompanyName = %q", cfg.DefaultProfile().CompanyName)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DESK_COMPANY_PHONE=+91-1234567890\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("DESK_COMPANY_PHONE") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CompanyPhone != "+91-1234567890" {
		t.Errorf("CompanyPhone = %q", cfg.CompanyPhone)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"tax rate not a number", "DESK_TAX_RATE", "eighteen"},
		{"tax rate out of range", "DESK_TAX_RATE", "150"},
		{"unknown policy", "DESK_AMOUNT_POLICY", "maybe"},
		{"unknown store", "DESK_STORE", "redis"},
		{"no statuses", "DESK_STATUSES", " , "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Errorf("Load() with %s=%q should fail", tt.key, tt.value)
			}
		})
	}
}
