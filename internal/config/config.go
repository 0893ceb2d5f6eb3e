package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all claimforge configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Dataset shape (counts, window, seed)
	Dataset DatasetConfig `yaml:"dataset"`

	// Weighted category tables
	Weights WeightsConfig `yaml:"weights"`

	// Money ranges and multipliers
	Amounts AmountsConfig `yaml:"amounts"`

	// Output artifacts
	Output OutputConfig `yaml:"output"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DatasetConfig controls how much data is synthesized and from what seed.
type DatasetConfig struct {
	Patients  int    `yaml:"patients"`
	Providers int    `yaml:"providers"`
	Months    int    `yaml:"months"`    // billing months, ending at EndMonth
	EndMonth  string `yaml:"end_month"` // YYYY-MM; empty means last full month
	Seed      int64  `yaml:"seed"`      // 0 means derive from current time
}

// WeightedValue is one entry of a weighted category table.
type WeightedValue struct {
	Value  string  `yaml:"value"`
	Weight float64 `yaml:"weight"`
}

// WeightsConfig holds the weighted category tables used for every
// categorical draw the generator makes.
type WeightsConfig struct {
	PlanTypes     []WeightedValue `yaml:"plan_types"`
	RiskTiers     []WeightedValue `yaml:"risk_tiers"`
	ClaimTypes    []WeightedValue `yaml:"claim_types"`
	ClaimStatuses []WeightedValue `yaml:"claim_statuses"`
	Specialties   []WeightedValue `yaml:"specialties"`
	AgeBands      []WeightedValue `yaml:"age_bands"` // values like "0-17"
}

// CentsRange is an inclusive money range in cents.
type CentsRange struct {
	Min int64 `yaml:"min_cents"`
	Max int64 `yaml:"max_cents"`
}

// AmountsConfig holds rates, multipliers, and billed ranges.
type AmountsConfig struct {
	// Base per-member-per-month capitation rate, in cents.
	BaseRateCents int64 `yaml:"base_rate_cents"`

	// Multipliers applied to the base rate.
	RiskMultipliers map[string]float64 `yaml:"risk_multipliers"` // keyed by risk tier
	AgeMultipliers  map[string]float64 `yaml:"age_multipliers"`  // keyed by age band

	// Billed range per claim type, in cents.
	BilledRanges map[string]CentsRange `yaml:"billed_ranges"`

	// Allowed amount as a fraction of billed, drawn uniformly in [Min, Max].
	AllowedRatioMin float64 `yaml:"allowed_ratio_min"`
	AllowedRatioMax float64 `yaml:"allowed_ratio_max"`

	// Mean claims per patient per month.
	ClaimsPerMonth float64 `yaml:"claims_per_month"`
}

// OutputConfig controls which artifacts generate writes and where.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	CSV       bool   `yaml:"csv"`
	JSON      bool   `yaml:"json"`
	SQLite    bool   `yaml:"sqlite"`
	DBPath    string `yaml:"db_path"` // relative paths resolve under Directory
}

// LoggingConfig configures the categorized debug logger.
type LoggingConfig struct {
	Level      string          `yaml:"level"`  // debug, info, warn, error
	Format     string          `yaml:"format"` // json, text
	DebugMode  bool            `yaml:"debug_mode"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "claimforge",
		Version: "1.0.0",

		Dataset: DatasetConfig{
			Patients:  500,
			Providers: 12,
			Months:    12,
			Seed:      0,
		},

		Weights: WeightsConfig{
			PlanTypes: []WeightedValue{
				{Value: "HMO", Weight: 35},
				{Value: "PPO", Weight: 30},
				{Value: "EPO", Weight: 8},
				{Value: "POS", Weight: 7},
				{Value: "Medicare Advantage", Weight: 12},
				{Value: "Medicaid", Weight: 8},
			},
			RiskTiers: []WeightedValue{
				{Value: "low", Weight: 55},
				{Value: "moderate", Weight: 30},
				{Value: "high", Weight: 12},
				{Value: "catastrophic", Weight: 3},
			},
			ClaimTypes: []WeightedValue{
				{Value: "office_visit", Weight: 40},
				{Value: "pharmacy", Weight: 22},
				{Value: "lab", Weight: 14},
				{Value: "imaging", Weight: 8},
				{Value: "outpatient", Weight: 9},
				{Value: "er", Weight: 5},
				{Value: "inpatient", Weight: 2},
			},
			ClaimStatuses: []WeightedValue{
				{Value: "paid", Weight: 78},
				{Value: "denied", Weight: 12},
				{Value: "pending", Weight: 10},
			},
			Specialties: []WeightedValue{
				{Value: "family_medicine", Weight: 35},
				{Value: "internal_medicine", Weight: 30},
				{Value: "pediatrics", Weight: 15},
				{Value: "cardiology", Weight: 8},
				{Value: "orthopedics", Weight: 7},
				{Value: "oncology", Weight: 5},
			},
			AgeBands: []WeightedValue{
				{Value: "0-17", Weight: 20},
				{Value: "18-34", Weight: 24},
				{Value: "35-49", Weight: 22},
				{Value: "50-64", Weight: 20},
				{Value: "65-95", Weight: 14},
			},
		},

		Amounts: AmountsConfig{
			BaseRateCents: 45000, // $450 PMPM
			RiskMultipliers: map[string]float64{
				"low":          0.80,
				"moderate":     1.10,
				"high":         1.75,
				"catastrophic": 3.50,
			},
			AgeMultipliers: map[string]float64{
				"0-17":  0.70,
				"18-34": 0.85,
				"35-49": 1.00,
				"50-64": 1.35,
				"65-95": 1.90,
			},
			BilledRanges: map[string]CentsRange{
				"office_visit": {Min: 8000, Max: 35000},
				"pharmacy":     {Min: 1000, Max: 60000},
				"lab":          {Min: 2500, Max: 40000},
				"imaging":      {Min: 15000, Max: 250000},
				"outpatient":   {Min: 50000, Max: 800000},
				"er":           {Min: 80000, Max: 500000},
				"inpatient":    {Min: 500000, Max: 5000000},
			},
			AllowedRatioMin: 0.45,
			AllowedRatioMax: 0.85,
			ClaimsPerMonth:  0.9,
		},

		Output: OutputConfig{
			Directory: "out",
			CSV:       true,
			JSON:      false,
			SQLite:    false,
			DBPath:    "claimforge.db",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file is not an
// error; defaults apply. Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No config file; run on defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CLAIMFORGE_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Dataset.Seed = seed
		}
	}
	if dir := os.Getenv("CLAIMFORGE_OUT"); dir != "" {
		c.Output.Directory = dir
	}
	if path := os.Getenv("CLAIMFORGE_DB"); path != "" {
		c.Output.DBPath = path
		c.Output.SQLite = true
	}
}

// EffectiveEndMonth resolves the end of the billing window. An empty
// end_month means the last full calendar month before now.
func (c *Config) EffectiveEndMonth(now time.Time) (time.Time, error) {
	if c.Dataset.EndMonth == "" {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first.AddDate(0, -1, 0), nil
	}
	t, err := time.Parse("2006-01", c.Dataset.EndMonth)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid end_month %q: %w", c.Dataset.EndMonth, err)
	}
	return t, nil
}

// EffectiveSeed resolves the generation seed. A zero seed derives one from
// the current time so repeated unseeded runs differ.
func (c *Config) EffectiveSeed(now time.Time) int64 {
	if c.Dataset.Seed != 0 {
		return c.Dataset.Seed
	}
	return now.UnixNano()
}
