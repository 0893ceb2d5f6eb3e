package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"claimforge/internal/types"
)

// TestMain ensures no goroutines leak across the store tests.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleDataset() *types.Dataset {
	return &types.Dataset{
		Seed:      42,
		Generated: "2026-08-31T00:00:00Z",
		Months:    []types.Month{"2026-01", "2026-02"},
		Providers: []types.Provider{
			{ID: "prv-a", Name: "North Family Health", Specialty: "family_medicine", Region: "North"},
			{ID: "prv-b", Name: "South Medical Group", Specialty: "cardiology", Region: "South"},
		},
		Patients: []types.Patient{
			{ID: "pat-1", Name: "Maria Garcia", Age: 34, Sex: "F", PlanType: "HMO",
				RiskTier: "low", ProviderID: "prv-a", EnrollmentMonth: "2026-01"},
			{ID: "pat-2", Name: "James Chen", Age: 67, Sex: "M", PlanType: "Medicare Advantage",
				RiskTier: "high", ProviderID: "prv-b", EnrollmentMonth: "2026-02"},
		},
		Capitation: []types.CapitationPayment{
			{ID: "cap-1", PatientID: "pat-1", ProviderID: "prv-a", Month: "2026-01", Amount: 30600},
			{ID: "cap-2", PatientID: "pat-2", ProviderID: "prv-b", Month: "2026-02", Amount: 149625},
		},
		Claims: []types.Claim{
			{ID: "clm-1", PatientID: "pat-1", ProviderID: "prv-a", Month: "2026-01",
				ServiceDate: "2026-01-14", ClaimType: "office_visit", Status: "paid",
				Billed: 21000, Allowed: 14200, Paid: 14200},
			{ID: "clm-2", PatientID: "pat-2", ProviderID: "prv-b", Month: "2026-02",
				ServiceDate: "2026-02-03", ClaimType: "er", Status: "denied",
				Billed: 310000, Allowed: 180000, Paid: 0},
		},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claimforge.db")

	st, err := Open(path)
	require.NoError(t, err)
	defer st.Close()

	ds := sampleDataset()
	require.NoError(t, st.SaveDataset(ds))

	loaded, err := st.LoadDataset()
	require.NoError(t, err)

	require.Equal(t, ds.Seed, loaded.Seed)
	require.Equal(t, ds.Generated, loaded.Generated)
	require.Equal(t, ds.Months, loaded.Months)
	require.Equal(t, ds.Providers, loaded.Providers)
	require.Equal(t, ds.Patients, loaded.Patients)
	require.Equal(t, ds.Capitation, loaded.Capitation)
	require.Equal(t, ds.Claims, loaded.Claims)
}

func TestStore_SaveReplacesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claimforge.db")

	st, err := Open(path)
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.SaveDataset(sampleDataset()))

	smaller := sampleDataset()
	smaller.Seed = 7
	smaller.Patients = smaller.Patients[:1]
	smaller.Capitation = smaller.Capitation[:1]
	smaller.Claims = smaller.Claims[:1]
	require.NoError(t, st.SaveDataset(smaller))

	loaded, err := st.LoadDataset()
	require.NoError(t, err)
	require.EqualValues(t, 7, loaded.Seed)
	require.Len(t, loaded.Patients, 1)
	require.Len(t, loaded.Capitation, 1)
	require.Len(t, loaded.Claims, 1)
}

func TestStore_LoadEmptyArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claimforge.db")

	st, err := Open(path)
	require.NoError(t, err)
	defer st.Close()

	_, err = st.LoadDataset()
	require.Error(t, err)
}

func TestStore_ReopenExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claimforge.db")

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.SaveDataset(sampleDataset()))
	require.NoError(t, st.Close())

	st2, err := Open(path)
	require.NoError(t, err)
	defer st2.Close()

	loaded, err := st2.LoadDataset()
	require.NoError(t, err)
	require.Len(t, loaded.Claims, 2)
}
