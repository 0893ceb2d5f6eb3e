package gen

import (
	"fmt"
	"math"
	"time"

	"claimforge/internal/logging"
	"claimforge/internal/types"
)

// Claims synthesizes claim lines. For every patient and enrolled month the
// claim count is Poisson-drawn around the configured mean, then each claim
// gets a weighted type, a weighted status, and billed/allowed/paid amounts:
//
//	billed  ~ uniform in the type's configured range
//	allowed = billed x uniform(allowed_ratio_min, allowed_ratio_max)
//	paid    = allowed when status is paid, 0 when denied or pending
func (g *Generator) Claims(patients []types.Patient) ([]types.Claim, error) {
	claimType, err := NewWeightedPicker(g.cfg.Weights.ClaimTypes)
	if err != nil {
		return nil, fmt.Errorf("claim_types: %w", err)
	}
	status, err := NewWeightedPicker(g.cfg.Weights.ClaimStatuses)
	if err != nil {
		return nil, fmt.Errorf("claim_statuses: %w", err)
	}

	var claims []types.Claim
	for _, p := range patients {
		for _, m := range g.months {
			if m.Before(p.EnrollmentMonth) {
				continue
			}
			n := g.rng.Poisson(g.cfg.Amounts.ClaimsPerMonth)
			for i := 0; i < n; i++ {
				c, err := g.claim(p, m, claimType, status)
				if err != nil {
					return nil, err
				}
				claims = append(claims, c)
			}
		}
	}

	logging.Claims("synthesized %d claims for %d patients", len(claims), len(patients))
	return claims, nil
}

func (g *Generator) claim(p types.Patient, m types.Month, claimType, status *WeightedPicker) (types.Claim, error) {
	ct := claimType.Pick(g.rng)
	r, ok := g.cfg.Amounts.BilledRanges[ct]
	if !ok {
		return types.Claim{}, fmt.Errorf("no billed range configured for claim type %q", ct)
	}

	billed := g.rng.CentsBetween(r.Min, r.Max)
	ratio := g.rng.FloatBetween(g.cfg.Amounts.AllowedRatioMin, g.cfg.Amounts.AllowedRatioMax)
	allowed := types.Cents(math.Round(float64(billed) * ratio))

	st := status.Pick(g.rng)
	var paid types.Cents
	if st == types.StatusPaid {
		paid = allowed
	}

	return types.Claim{
		ID:          g.rng.ID("clm"),
		PatientID:   p.ID,
		ProviderID:  p.ProviderID,
		Month:       m,
		ServiceDate: g.serviceDate(m),
		ClaimType:   ct,
		Status:      st,
		Billed:      billed,
		Allowed:     allowed,
		Paid:        paid,
	}, nil
}

// serviceDate draws a uniform day inside the billing month.
func (g *Generator) serviceDate(m types.Month) string {
	t, err := m.Time()
	if err != nil {
		return string(m) + "-01"
	}
	days := t.AddDate(0, 1, -1).Day()
	day := g.rng.IntBetween(1, days)
	return time.Date(t.Year(), t.Month(), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}
