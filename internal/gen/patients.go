package gen

import (
	"fmt"

	"claimforge/internal/config"
	"claimforge/internal/logging"
	"claimforge/internal/types"
)

// Providers synthesizes the provider panel. Specialties follow the
// configured weight table.
func (g *Generator) Providers() ([]types.Provider, error) {
	specialty, err := NewWeightedPicker(g.cfg.Weights.Specialties)
	if err != nil {
		return nil, fmt.Errorf("specialties: %w", err)
	}

	providers := make([]types.Provider, 0, g.cfg.Dataset.Providers)
	for i := 0; i < g.cfg.Dataset.Providers; i++ {
		name, region := g.rng.PracticeName()
		providers = append(providers, types.Provider{
			ID:        g.rng.ID("prv"),
			Name:      name,
			Specialty: specialty.Pick(g.rng),
			Region:    region,
		})
	}

	logging.Patients("synthesized %d providers", len(providers))
	return providers, nil
}

// Patients synthesizes the member population and assigns each member a PCP
// uniformly from the provider panel. Ages are drawn in two stages: a
// weighted band pick, then a uniform age inside the band.
func (g *Generator) Patients(providers []types.Provider) ([]types.Patient, error) {
	plan, err := NewWeightedPicker(g.cfg.Weights.PlanTypes)
	if err != nil {
		return nil, fmt.Errorf("plan_types: %w", err)
	}
	risk, err := NewWeightedPicker(g.cfg.Weights.RiskTiers)
	if err != nil {
		return nil, fmt.Errorf("risk_tiers: %w", err)
	}
	band, err := NewWeightedPicker(g.cfg.Weights.AgeBands)
	if err != nil {
		return nil, fmt.Errorf("age_bands: %w", err)
	}

	patients := make([]types.Patient, 0, g.cfg.Dataset.Patients)
	for i := 0; i < g.cfg.Dataset.Patients; i++ {
		sex := types.SexFemale
		if g.rng.Float64() < 0.5 {
			sex = types.SexMale
		}

		lo, hi, err := config.ParseAgeBand(band.Pick(g.rng))
		if err != nil {
			return nil, err
		}

		patients = append(patients, types.Patient{
			ID:              g.rng.ID("pat"),
			Name:            g.rng.PatientName(sex),
			Age:             g.rng.IntBetween(lo, hi),
			Sex:             sex,
			PlanType:        plan.Pick(g.rng),
			RiskTier:        risk.Pick(g.rng),
			ProviderID:      providers[g.rng.Intn(len(providers))].ID,
			EnrollmentMonth: g.enrollmentMonth(),
		})
	}

	logging.Patients("synthesized %d patients", len(patients))
	return patients, nil
}

// enrollmentMonth places most members at the start of the billing window
// and the rest uniformly inside it, so mid-window enrollment shows up in
// the data without dominating it.
func (g *Generator) enrollmentMonth() types.Month {
	if g.rng.Float64() < 0.75 || len(g.months) == 1 {
		return g.months[0]
	}
	return g.months[g.rng.Intn(len(g.months))]
}
