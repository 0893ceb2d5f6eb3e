package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"claimforge/internal/types"
)

func sampleBundle() *Bundle {
	return &Bundle{
		Dataset: &types.Dataset{
			Seed:      42,
			Generated: "2026-08-31T00:00:00Z",
			Providers: []types.Provider{
				{ID: "prv-a", Name: "North Family Health", Specialty: "family_medicine", Region: "North"},
			},
			Patients: []types.Patient{
				{ID: "pat-1", Name: "Maria Garcia", Age: 34, Sex: "F", PlanType: "HMO",
					RiskTier: "low", ProviderID: "prv-a", EnrollmentMonth: "2026-01"},
			},
			Capitation: []types.CapitationPayment{
				{ID: "cap-1", PatientID: "pat-1", ProviderID: "prv-a", Month: "2026-01", Amount: 30650},
			},
			Claims: []types.Claim{
				{ID: "clm-1", PatientID: "pat-1", ProviderID: "prv-a", Month: "2026-01",
					ServiceDate: "2026-01-14", ClaimType: "office_visit", Status: "paid",
					Billed: 21000, Allowed: 14200, Paid: 14200},
			},
		},
		ProviderSummaries: []types.ProviderSummary{
			{ProviderID: "prv-a", ProviderName: "North Family Health", Specialty: "family_medicine",
				MemberCount: 1, CapitationRevenue: 30650, ClaimCount: 1, PaidClaims: 1,
				BilledTotal: 21000, AllowedTotal: 14200, PaidTotal: 14200, LossRatio: 0.4633},
		},
		MonthlySummaries: []types.MonthlySummary{
			{Month: "2026-01", MemberMonths: 1, CapitationTotal: 30650, ClaimCount: 1,
				PaidClaims: 1, PaidTotal: 14200, LossRatio: 0.4633},
		},
		Totals: types.Totals{Patients: 1, Providers: 1, MemberMonths: 1,
			CapitationTotal: 30650, ClaimCount: 1, BilledTotal: 21000,
			PaidTotal: 14200, LossRatio: 0.4633},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteCSV(context.Background(), dir, sampleBundle()))

	for _, name := range []string{
		"patients.csv", "providers.csv", "capitation.csv", "claims.csv",
		"provider_summary.csv", "monthly_summary.csv",
	} {
		require.FileExists(t, filepath.Join(dir, name))
	}

	patients := readCSV(t, filepath.Join(dir, "patients.csv"))
	require.Len(t, patients, 2) // header + one row
	require.Equal(t, "id", patients[0][0])
	require.Equal(t, "pat-1", patients[1][0])

	// CSV money is rendered as decimal dollars.
	capitation := readCSV(t, filepath.Join(dir, "capitation.csv"))
	require.Equal(t, "306.50", capitation[1][4])

	claims := readCSV(t, filepath.Join(dir, "claims.csv"))
	require.Equal(t, "210.00", claims[1][7])
	require.Equal(t, "142.00", claims[1][9])

	summary := readCSV(t, filepath.Join(dir, "provider_summary.csv"))
	require.Equal(t, "0.4633", summary[1][12])
}

func TestWriteCSV_EmptyTablesStillGetHeaders(t *testing.T) {
	dir := t.TempDir()
	b := sampleBundle()
	b.Dataset.Claims = nil
	b.MonthlySummaries = nil

	require.NoError(t, WriteCSV(context.Background(), dir, b))

	claims := readCSV(t, filepath.Join(dir, "claims.csv"))
	require.Len(t, claims, 1)
	require.Equal(t, "claim_type", claims[0][5])
}

func TestWriteCSV_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WriteCSV(ctx, t.TempDir(), sampleBundle())
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	b := sampleBundle()
	require.NoError(t, WriteJSON(dir, b))

	data, err := os.ReadFile(filepath.Join(dir, "dataset.json"))
	require.NoError(t, err)

	var loaded Bundle
	require.NoError(t, json.Unmarshal(data, &loaded))

	// JSON keeps raw cents.
	require.Equal(t, types.Cents(30650), loaded.Dataset.Capitation[0].Amount)
	require.Equal(t, b.Totals, loaded.Totals)
	require.Equal(t, b.ProviderSummaries, loaded.ProviderSummaries)
}
