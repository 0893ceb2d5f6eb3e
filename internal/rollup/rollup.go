// Package rollup computes the groupby-style summaries over a generated
// dataset: per-provider, per-month, and grand totals. Results come back
// sorted (providers by ID, months chronologically) so a fixed seed yields
// byte-stable output files.
package rollup

import (
	"sort"

	"claimforge/internal/logging"
	"claimforge/internal/types"
)

// ProviderSummaries rolls the dataset up by provider: panel size,
// capitation revenue, claim counts by status, billed/allowed/paid totals,
// and the loss ratio (paid claims over capitation revenue). Providers with
// zero capitation revenue report a loss ratio of 0.
func ProviderSummaries(ds *types.Dataset) []types.ProviderSummary {
	timer := logging.StartTimer(logging.CategoryRollup, "ProviderSummaries")
	defer timer.Stop()

	byID := make(map[string]*types.ProviderSummary, len(ds.Providers))
	for _, p := range ds.Providers {
		byID[p.ID] = &types.ProviderSummary{
			ProviderID:   p.ID,
			ProviderName: p.Name,
			Specialty:    p.Specialty,
		}
	}

	for _, pat := range ds.Patients {
		if s, ok := byID[pat.ProviderID]; ok {
			s.MemberCount++
		}
	}
	for _, pay := range ds.Capitation {
		if s, ok := byID[pay.ProviderID]; ok {
			s.CapitationRevenue += pay.Amount
		}
	}
	for _, c := range ds.Claims {
		s, ok := byID[c.ProviderID]
		if !ok {
			continue
		}
		s.ClaimCount++
		s.BilledTotal += c.Billed
		s.AllowedTotal += c.Allowed
		s.PaidTotal += c.Paid
		switch c.Status {
		case types.StatusPaid:
			s.PaidClaims++
		case types.StatusDenied:
			s.DeniedClaims++
		case types.StatusPending:
			s.PendingClaims++
		}
	}

	out := make([]types.ProviderSummary, 0, len(byID))
	for _, s := range byID {
		s.LossRatio = ratio(s.PaidTotal, s.CapitationRevenue)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProviderID < out[j].ProviderID })

	logging.Rollup("provider summaries: %d providers", len(out))
	return out
}

// MonthlySummaries rolls the dataset up by billing month. Every month of
// the dataset's billing window gets a row, so a window month with no
// enrollment yet shows up as zeros rather than going missing.
func MonthlySummaries(ds *types.Dataset) []types.MonthlySummary {
	timer := logging.StartTimer(logging.CategoryRollup, "MonthlySummaries")
	defer timer.Stop()

	byMonth := make(map[types.Month]*types.MonthlySummary)
	get := func(m types.Month) *types.MonthlySummary {
		s, ok := byMonth[m]
		if !ok {
			s = &types.MonthlySummary{Month: m}
			byMonth[m] = s
		}
		return s
	}

	for _, m := range ds.Months {
		get(m)
	}

	for _, pay := range ds.Capitation {
		s := get(pay.Month)
		s.MemberMonths++
		s.CapitationTotal += pay.Amount
	}
	for _, c := range ds.Claims {
		s := get(c.Month)
		s.ClaimCount++
		s.PaidTotal += c.Paid
		switch c.Status {
		case types.StatusPaid:
			s.PaidClaims++
		case types.StatusDenied:
			s.DeniedClaims++
		case types.StatusPending:
			s.PendingClaims++
		}
	}

	out := make([]types.MonthlySummary, 0, len(byMonth))
	for _, s := range byMonth {
		s.LossRatio = ratio(s.PaidTotal, s.CapitationTotal)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })

	logging.Rollup("monthly summaries: %d months", len(out))
	return out
}

// Totals computes the dataset-wide grand total line.
func Totals(ds *types.Dataset) types.Totals {
	t := types.Totals{
		Patients:     len(ds.Patients),
		Providers:    len(ds.Providers),
		MemberMonths: len(ds.Capitation),
		ClaimCount:   len(ds.Claims),
	}
	for _, pay := range ds.Capitation {
		t.CapitationTotal += pay.Amount
	}
	for _, c := range ds.Claims {
		t.BilledTotal += c.Billed
		t.PaidTotal += c.Paid
	}
	t.LossRatio = ratio(t.PaidTotal, t.CapitationTotal)
	return t
}

func ratio(paid, revenue types.Cents) float64 {
	if revenue == 0 {
		return 0
	}
	return float64(paid) / float64(revenue)
}
