package gen

import (
	"math"

	"claimforge/internal/logging"
	"claimforge/internal/types"
)

// Capitation synthesizes one per-member-per-month payment for every patient
// and every billing month from the patient's enrollment month on. The amount
// is the base PMPM rate scaled by the patient's risk tier and age band
// multipliers, rounded to the nearest cent.
func (g *Generator) Capitation(patients []types.Patient) []types.CapitationPayment {
	payments := make([]types.CapitationPayment, 0, len(patients)*len(g.months))

	for _, p := range patients {
		riskMult := g.cfg.Amounts.RiskMultipliers[p.RiskTier]
		ageMult := g.cfg.Amounts.AgeMultipliers[g.cfg.Weights.BandFor(p.Age)]
		amount := types.Cents(math.Round(float64(g.cfg.Amounts.BaseRateCents) * riskMult * ageMult))

		for _, m := range g.months {
			if m.Before(p.EnrollmentMonth) {
				continue
			}
			payments = append(payments, types.CapitationPayment{
				ID:         g.rng.ID("cap"),
				PatientID:  p.ID,
				ProviderID: p.ProviderID,
				Month:      m,
				Amount:     amount,
			})
		}
	}

	logging.Capitation("synthesized %d capitation payments across %d months",
		len(payments), len(g.months))
	return payments
}
