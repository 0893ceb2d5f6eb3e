// Package export writes the generated dataset out as CSV files and/or a
// JSON bundle. CSV renders money as decimal dollars for spreadsheet use;
// the JSON bundle keeps raw cents.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/errgroup"

	"claimforge/internal/logging"
	"claimforge/internal/types"
)

// Bundle is everything the exporters write: the raw tables plus the
// precomputed summaries.
type Bundle struct {
	Dataset           *types.Dataset          `json:"dataset"`
	ProviderSummaries []types.ProviderSummary `json:"provider_summaries"`
	MonthlySummaries  []types.MonthlySummary  `json:"monthly_summaries"`
	Totals            types.Totals            `json:"totals"`
}

// WriteCSV writes one CSV file per table into dir. The table writes are
// independent, so they fan out over an errgroup; the generation core stays
// single-threaded, this is just file I/O.
func WriteCSV(ctx context.Context, dir string, b *Bundle) error {
	timer := logging.StartTimer(logging.CategoryExport, "WriteCSV")
	defer timer.StopWithInfo()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return writePatientsCSV(gctx, filepath.Join(dir, "patients.csv"), b.Dataset.Patients) })
	g.Go(func() error { return writeProvidersCSV(gctx, filepath.Join(dir, "providers.csv"), b.Dataset.Providers) })
	g.Go(func() error {
		return writeCapitationCSV(gctx, filepath.Join(dir, "capitation.csv"), b.Dataset.Capitation)
	})
	g.Go(func() error { return writeClaimsCSV(gctx, filepath.Join(dir, "claims.csv"), b.Dataset.Claims) })
	g.Go(func() error {
		return writeProviderSummaryCSV(gctx, filepath.Join(dir, "provider_summary.csv"), b.ProviderSummaries)
	})
	g.Go(func() error {
		return writeMonthlySummaryCSV(gctx, filepath.Join(dir, "monthly_summary.csv"), b.MonthlySummaries)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logging.Export("wrote CSV tables to %s", dir)
	return nil
}

// writeTable checks the context before touching the filesystem so a table
// write that failed elsewhere in the group stops its siblings.
func writeTable(ctx context.Context, path string, header []string, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writePatientsCSV(ctx context.Context, path string, patients []types.Patient) error {
	rows := make([][]string, 0, len(patients))
	for _, p := range patients {
		rows = append(rows, []string{
			p.ID, p.Name, strconv.Itoa(p.Age), p.Sex, p.PlanType,
			p.RiskTier, p.ProviderID, string(p.EnrollmentMonth),
		})
	}
	return writeTable(ctx, path,
		[]string{"id", "name", "age", "sex", "plan_type", "risk_tier", "provider_id", "enrollment_month"},
		rows)
}

func writeProvidersCSV(ctx context.Context, path string, providers []types.Provider) error {
	rows := make([][]string, 0, len(providers))
	for _, p := range providers {
		rows = append(rows, []string{p.ID, p.Name, p.Specialty, p.Region})
	}
	return writeTable(ctx, path, []string{"id", "name", "specialty", "region"}, rows)
}

func writeCapitationCSV(ctx context.Context, path string, payments []types.CapitationPayment) error {
	rows := make([][]string, 0, len(payments))
	for _, c := range payments {
		rows = append(rows, []string{
			c.ID, c.PatientID, c.ProviderID, string(c.Month), c.Amount.String(),
		})
	}
	return writeTable(ctx, path,
		[]string{"id", "patient_id", "provider_id", "month", "amount"},
		rows)
}

func writeClaimsCSV(ctx context.Context, path string, claims []types.Claim) error {
	rows := make([][]string, 0, len(claims))
	for _, c := range claims {
		rows = append(rows, []string{
			c.ID, c.PatientID, c.ProviderID, string(c.Month), c.ServiceDate,
			c.ClaimType, c.Status, c.Billed.String(), c.Allowed.String(), c.Paid.String(),
		})
	}
	return writeTable(ctx, path,
		[]string{"id", "patient_id", "provider_id", "month", "service_date",
			"claim_type", "status", "billed", "allowed", "paid"},
		rows)
}

func writeProviderSummaryCSV(ctx context.Context, path string, summaries []types.ProviderSummary) error {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.ProviderID, s.ProviderName, s.Specialty,
			strconv.Itoa(s.MemberCount), s.CapitationRevenue.String(),
			strconv.Itoa(s.ClaimCount), strconv.Itoa(s.PaidClaims),
			strconv.Itoa(s.DeniedClaims), strconv.Itoa(s.PendingClaims),
			s.BilledTotal.String(), s.AllowedTotal.String(), s.PaidTotal.String(),
			strconv.FormatFloat(s.LossRatio, 'f', 4, 64),
		})
	}
	return writeTable(ctx, path,
		[]string{"provider_id", "provider_name", "specialty", "member_count",
			"capitation_revenue", "claim_count", "paid_claims", "denied_claims",
			"pending_claims", "billed_total", "allowed_total", "paid_total", "loss_ratio"},
		rows)
}

func writeMonthlySummaryCSV(ctx context.Context, path string, summaries []types.MonthlySummary) error {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			string(s.Month), strconv.Itoa(s.MemberMonths), s.CapitationTotal.String(),
			strconv.Itoa(s.ClaimCount), strconv.Itoa(s.PaidClaims),
			strconv.Itoa(s.DeniedClaims), strconv.Itoa(s.PendingClaims),
			s.PaidTotal.String(), strconv.FormatFloat(s.LossRatio, 'f', 4, 64),
		})
	}
	return writeTable(ctx, path,
		[]string{"month", "member_months", "capitation_total", "claim_count",
			"paid_claims", "denied_claims", "pending_claims", "paid_total", "loss_ratio"},
		rows)
}
