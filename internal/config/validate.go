package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate checks that the configuration can drive a generation run.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.Dataset.Patients < 1 {
		return fmt.Errorf("dataset.patients must be >= 1, got %d", c.Dataset.Patients)
	}
	if c.Dataset.Providers < 1 {
		return fmt.Errorf("dataset.providers must be >= 1, got %d", c.Dataset.Providers)
	}
	if c.Dataset.Months < 1 {
		return fmt.Errorf("dataset.months must be >= 1, got %d", c.Dataset.Months)
	}

	tables := []struct {
		name  string
		table []WeightedValue
	}{
		{"weights.plan_types", c.Weights.PlanTypes},
		{"weights.risk_tiers", c.Weights.RiskTiers},
		{"weights.claim_types", c.Weights.ClaimTypes},
		{"weights.claim_statuses", c.Weights.ClaimStatuses},
		{"weights.specialties", c.Weights.Specialties},
		{"weights.age_bands", c.Weights.AgeBands},
	}
	for _, t := range tables {
		if err := validateWeightTable(t.name, t.table); err != nil {
			return err
		}
	}

	for _, band := range c.Weights.AgeBands {
		if _, _, err := ParseAgeBand(band.Value); err != nil {
			return fmt.Errorf("weights.age_bands: %w", err)
		}
		if _, ok := c.Amounts.AgeMultipliers[band.Value]; !ok {
			return fmt.Errorf("amounts.age_multipliers missing band %q", band.Value)
		}
	}
	for _, tier := range c.Weights.RiskTiers {
		if _, ok := c.Amounts.RiskMultipliers[tier.Value]; !ok {
			return fmt.Errorf("amounts.risk_multipliers missing tier %q", tier.Value)
		}
	}
	for _, ct := range c.Weights.ClaimTypes {
		r, ok := c.Amounts.BilledRanges[ct.Value]
		if !ok {
			return fmt.Errorf("amounts.billed_ranges missing claim type %q", ct.Value)
		}
		if r.Min <= 0 || r.Max < r.Min {
			return fmt.Errorf("amounts.billed_ranges[%s]: need 0 < min <= max, got [%d, %d]", ct.Value, r.Min, r.Max)
		}
	}

	for tier, m := range c.Amounts.RiskMultipliers {
		if m <= 0 {
			return fmt.Errorf("amounts.risk_multipliers[%s] must be > 0, got %g", tier, m)
		}
	}
	for band, m := range c.Amounts.AgeMultipliers {
		if m <= 0 {
			return fmt.Errorf("amounts.age_multipliers[%s] must be > 0, got %g", band, m)
		}
	}

	if c.Amounts.BaseRateCents <= 0 {
		return fmt.Errorf("amounts.base_rate_cents must be > 0, got %d", c.Amounts.BaseRateCents)
	}
	if c.Amounts.AllowedRatioMin <= 0 || c.Amounts.AllowedRatioMax > 1 ||
		c.Amounts.AllowedRatioMax < c.Amounts.AllowedRatioMin {
		return fmt.Errorf("amounts.allowed_ratio must satisfy 0 < min <= max <= 1, got [%g, %g]",
			c.Amounts.AllowedRatioMin, c.Amounts.AllowedRatioMax)
	}
	if c.Amounts.ClaimsPerMonth < 0 {
		return fmt.Errorf("amounts.claims_per_month must be >= 0, got %g", c.Amounts.ClaimsPerMonth)
	}

	if !c.Output.CSV && !c.Output.JSON && !c.Output.SQLite {
		return fmt.Errorf("output: at least one of csv, json, sqlite must be enabled")
	}

	return nil
}

func validateWeightTable(name string, table []WeightedValue) error {
	if len(table) == 0 {
		return fmt.Errorf("%s must not be empty", name)
	}
	seen := make(map[string]bool, len(table))
	for _, wv := range table {
		if wv.Value == "" {
			return fmt.Errorf("%s contains an entry with an empty value", name)
		}
		if wv.Weight <= 0 {
			return fmt.Errorf("%s[%s] weight must be > 0, got %g", name, wv.Value, wv.Weight)
		}
		if seen[wv.Value] {
			return fmt.Errorf("%s contains duplicate value %q", name, wv.Value)
		}
		seen[wv.Value] = true
	}
	return nil
}

// ParseAgeBand splits a band value like "18-34" into its inclusive bounds.
func ParseAgeBand(band string) (lo, hi int, err error) {
	parts := strings.SplitN(band, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid age band %q (want \"lo-hi\")", band)
	}
	lo, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid age band %q: %w", band, err)
	}
	hi, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid age band %q: %w", band, err)
	}
	if lo < 0 || hi < lo {
		return 0, 0, fmt.Errorf("invalid age band %q: need 0 <= lo <= hi", band)
	}
	return lo, hi, nil
}

// BandFor returns the configured age band containing age, or "" if none does.
func (w *WeightsConfig) BandFor(age int) string {
	for _, band := range w.AgeBands {
		lo, hi, err := ParseAgeBand(band.Value)
		if err != nil {
			continue
		}
		if age >= lo && age <= hi {
			return band.Value
		}
	}
	return ""
}
