// Package types holds the record shapes shared by the generator, the
// roll-up layer, the SQLite store, and the exporters.
//
// Money is always carried as Cents (int64) internally. CSV output renders
// dollars; JSON and SQLite keep the raw cent values so downstream tooling
// never has to parse decimals.
package types

import (
	"fmt"
	"time"
)

// Cents is a money amount in US cents.
type Cents int64

// Dollars returns the amount as a float64 dollar value.
func (c Cents) Dollars() float64 {
	return float64(c) / 100.0
}

// String renders the amount as a decimal dollar string (e.g. "1234.50").
func (c Cents) String() string {
	neg := ""
	v := int64(c)
	if v < 0 {
		neg = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", neg, v/100, v%100)
}

// Month is a billing month in YYYY-MM form.
type Month string

// Time returns the first day of the month in UTC.
func (m Month) Time() (time.Time, error) {
	return time.Parse("2006-01", string(m))
}

// Before reports whether m sorts before other chronologically.
// YYYY-MM compares correctly as a string.
func (m Month) Before(other Month) bool {
	return string(m) < string(other)
}

// MonthOf returns the Month containing t.
func MonthOf(t time.Time) Month {
	return Month(t.Format("2006-01"))
}

// MonthRange returns the months from start through end inclusive, in
// chronological order. A range that fails to parse or runs backwards
// returns nil.
func MonthRange(start, end Month) []Month {
	s, err := start.Time()
	if err != nil {
		return nil
	}
	e, err := end.Time()
	if err != nil {
		return nil
	}
	var out []Month
	for !e.Before(s) {
		out = append(out, MonthOf(s))
		s = s.AddDate(0, 1, 0)
	}
	return out
}

// Sex values used for patient demographics.
const (
	SexFemale = "F"
	SexMale   = "M"
)

// Claim statuses.
const (
	StatusPaid    = "paid"
	StatusDenied  = "denied"
	StatusPending = "pending"
)

// Patient is one enrolled member.
type Patient struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Age             int    `json:"age"`
	Sex             string `json:"sex"`
	PlanType        string `json:"plan_type"`
	RiskTier        string `json:"risk_tier"`
	ProviderID      string `json:"provider_id"` // assigned PCP
	EnrollmentMonth Month  `json:"enrollment_month"`
}

// Provider is a primary-care provider receiving capitation.
type Provider struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Region    string `json:"region"`
}

// CapitationPayment is one per-member-per-month payment from the plan to
// the member's assigned provider.
type CapitationPayment struct {
	ID         string `json:"id"`
	PatientID  string `json:"patient_id"`
	ProviderID string `json:"provider_id"`
	Month      Month  `json:"month"`
	Amount     Cents  `json:"amount_cents"`
}

// Claim is one synthesized claim line.
type Claim struct {
	ID          string `json:"id"`
	PatientID   string `json:"patient_id"`
	ProviderID  string `json:"provider_id"`
	Month       Month  `json:"month"`
	ServiceDate string `json:"service_date"` // YYYY-MM-DD, inside Month
	ClaimType   string `json:"claim_type"`
	Status      string `json:"status"`
	Billed      Cents  `json:"billed_cents"`
	Allowed     Cents  `json:"allowed_cents"`
	Paid        Cents  `json:"paid_cents"`
}

// Dataset is the full synthesized output of one generator run. Months is
// the billing window the run covered, including months no record landed in.
type Dataset struct {
	Seed       int64               `json:"seed"`
	Generated  string              `json:"generated_at"` // RFC3339
	Months     []Month             `json:"months"`
	Providers  []Provider          `json:"providers"`
	Patients   []Patient           `json:"patients"`
	Capitation []CapitationPayment `json:"capitation"`
	Claims     []Claim             `json:"claims"`
}

// ProviderSummary is the per-provider roll-up.
type ProviderSummary struct {
	ProviderID        string  `json:"provider_id"`
	ProviderName      string  `json:"provider_name"`
	Specialty         string  `json:"specialty"`
	MemberCount       int     `json:"member_count"`
	CapitationRevenue Cents   `json:"capitation_revenue_cents"`
	ClaimCount        int     `json:"claim_count"`
	PaidClaims        int     `json:"paid_claims"`
	DeniedClaims      int     `json:"denied_claims"`
	PendingClaims     int     `json:"pending_claims"`
	BilledTotal       Cents   `json:"billed_total_cents"`
	AllowedTotal      Cents   `json:"allowed_total_cents"`
	PaidTotal         Cents   `json:"paid_total_cents"`
	LossRatio         float64 `json:"loss_ratio"`
}

// MonthlySummary is the per-month roll-up across all providers.
type MonthlySummary struct {
	Month           Month   `json:"month"`
	MemberMonths    int     `json:"member_months"`
	CapitationTotal Cents   `json:"capitation_total_cents"`
	ClaimCount      int     `json:"claim_count"`
	PaidClaims      int     `json:"paid_claims"`
	DeniedClaims    int     `json:"denied_claims"`
	PendingClaims   int     `json:"pending_claims"`
	PaidTotal       Cents   `json:"paid_total_cents"`
	LossRatio       float64 `json:"loss_ratio"`
}

// Totals is the dataset-wide grand total line.
type Totals struct {
	Patients        int     `json:"patients"`
	Providers       int     `json:"providers"`
	MemberMonths    int     `json:"member_months"`
	CapitationTotal Cents   `json:"capitation_total_cents"`
	ClaimCount      int     `json:"claim_count"`
	BilledTotal     Cents   `json:"billed_total_cents"`
	PaidTotal       Cents   `json:"paid_total_cents"`
	LossRatio       float64 `json:"loss_ratio"`
}
