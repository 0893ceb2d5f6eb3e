package config

import (
	"path/filepath"
	"testing"
	"time"
)

// =============================================================================
// UNIFIED CONFIG TESTS
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "claimforge" {
		t.Errorf("expected Name=claimforge, got %s", cfg.Name)
	}
	if cfg.Dataset.Patients != 500 {
		t.Errorf("expected Patients=500, got %d", cfg.Dataset.Patients)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("CLAIMFORGE_SEED", "")
	t.Setenv("CLAIMFORGE_OUT", "")
	t.Setenv("CLAIMFORGE_DB", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Dataset.Patients = 42
	cfg.Dataset.Seed = 7

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Dataset.Patients != 42 {
		t.Errorf("expected Patients=42, got %d", loaded.Dataset.Patients)
	}
	if loaded.Dataset.Seed != 7 {
		t.Errorf("expected Seed=7, got %d", loaded.Dataset.Seed)
	}
}

func TestConfig_LoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("CLAIMFORGE_SEED", "")
	t.Setenv("CLAIMFORGE_OUT", "")
	t.Setenv("CLAIMFORGE_DB", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Dataset.Patients != DefaultConfig().Dataset.Patients {
		t.Errorf("missing file should yield defaults")
	}
}

func TestConfig_LoadMissingFileAppliesEnvOverrides(t *testing.T) {
	t.Setenv("CLAIMFORGE_SEED", "4242")
	t.Setenv("CLAIMFORGE_OUT", "")
	t.Setenv("CLAIMFORGE_DB", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Dataset.Seed != 4242 {
		t.Errorf("CLAIMFORGE_SEED should apply without a config file, got seed %d", cfg.Dataset.Seed)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CLAIMFORGE_SEED", "12345")
	t.Setenv("CLAIMFORGE_OUT", "/tmp/cf-out")
	t.Setenv("CLAIMFORGE_DB", "/tmp/cf.db")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	if cfg.Dataset.Seed != 12345 {
		t.Errorf("expected Seed=12345, got %d", cfg.Dataset.Seed)
	}
	if cfg.Output.Directory != "/tmp/cf-out" {
		t.Errorf("expected Directory=/tmp/cf-out, got %s", cfg.Output.Directory)
	}
	if cfg.Output.DBPath != "/tmp/cf.db" || !cfg.Output.SQLite {
		t.Errorf("CLAIMFORGE_DB should set db_path and enable sqlite, got %+v", cfg.Output)
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero patients", func(c *Config) { c.Dataset.Patients = 0 }},
		{"zero providers", func(c *Config) { c.Dataset.Providers = 0 }},
		{"zero months", func(c *Config) { c.Dataset.Months = 0 }},
		{"empty plan types", func(c *Config) { c.Weights.PlanTypes = nil }},
		{"negative weight", func(c *Config) { c.Weights.RiskTiers[0].Weight = -1 }},
		{"duplicate value", func(c *Config) {
			c.Weights.ClaimStatuses = append(c.Weights.ClaimStatuses, WeightedValue{Value: "paid", Weight: 1})
		}},
		{"missing risk multiplier", func(c *Config) { delete(c.Amounts.RiskMultipliers, "low") }},
		{"missing billed range", func(c *Config) { delete(c.Amounts.BilledRanges, "er") }},
		{"inverted billed range", func(c *Config) {
			c.Amounts.BilledRanges["er"] = CentsRange{Min: 100, Max: 50}
		}},
		{"bad allowed ratio", func(c *Config) { c.Amounts.AllowedRatioMax = 1.5 }},
		{"bad age band", func(c *Config) { c.Weights.AgeBands[0].Value = "old" }},
		{"no outputs", func(c *Config) {
			c.Output.CSV = false
			c.Output.JSON = false
			c.Output.SQLite = false
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestConfig_EffectiveEndMonth(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	end, err := cfg.EffectiveEndMonth(now)
	if err != nil {
		t.Fatalf("EffectiveEndMonth: %v", err)
	}
	if end.Format("2006-01") != "2026-07" {
		t.Errorf("expected last full month 2026-07, got %s", end.Format("2006-01"))
	}

	cfg.Dataset.EndMonth = "2025-12"
	end, err = cfg.EffectiveEndMonth(now)
	if err != nil {
		t.Fatalf("EffectiveEndMonth: %v", err)
	}
	if end.Format("2006-01") != "2025-12" {
		t.Errorf("expected 2025-12, got %s", end.Format("2006-01"))
	}

	cfg.Dataset.EndMonth = "December"
	if _, err := cfg.EffectiveEndMonth(now); err == nil {
		t.Error("expected error for unparseable end_month")
	}
}

func TestParseAgeBand(t *testing.T) {
	lo, hi, err := ParseAgeBand("18-34")
	if err != nil || lo != 18 || hi != 34 {
		t.Errorf("ParseAgeBand(18-34) = %d,%d,%v", lo, hi, err)
	}
	if _, _, err := ParseAgeBand("34-18"); err == nil {
		t.Error("expected error for inverted band")
	}
	if _, _, err := ParseAgeBand("adult"); err == nil {
		t.Error("expected error for non-numeric band")
	}
}

func TestWeights_BandFor(t *testing.T) {
	w := DefaultConfig().Weights
	if band := w.BandFor(0); band != "0-17" {
		t.Errorf("BandFor(0) = %s", band)
	}
	if band := w.BandFor(64); band != "50-64" {
		t.Errorf("BandFor(64) = %s", band)
	}
	if band := w.BandFor(200); band != "" {
		t.Errorf("BandFor(200) = %s, want empty", band)
	}
}
