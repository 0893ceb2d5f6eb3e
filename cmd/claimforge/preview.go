package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"claimforge/cmd/claimforge/ui"
	"claimforge/internal/gen"
)

var previewRows int

// previewCmd renders sample rows from a fresh dataset
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render sample rows from a synthesized dataset",
	Long: `Synthesizes a dataset from the config and renders the first few
rows of each table so weight tables and amount ranges can be eyeballed
before a full export.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&previewRows, "rows", 8, "rows to show per table")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	g, err := gen.New(cfg, time.Now())
	if err != nil {
		return err
	}
	ds, err := g.Generate(cmd.Context())
	if err != nil {
		return err
	}

	styles := ui.DefaultStyles()

	pat := ui.NewTable("Patients", []string{"id", "name", "age", "sex", "plan", "risk", "enrolled"})
	pat.AlignRight(2)
	for _, p := range head(ds.Patients, previewRows) {
		pat.AddRow(short(p.ID), p.Name, strconv.Itoa(p.Age), p.Sex, p.PlanType, p.RiskTier, string(p.EnrollmentMonth))
	}
	fmt.Print(pat.View(styles))

	capTbl := ui.NewTable("Capitation", []string{"id", "patient", "month", "amount"})
	capTbl.AlignRight(3)
	for _, c := range head(ds.Capitation, previewRows) {
		capTbl.AddRow(short(c.ID), short(c.PatientID), string(c.Month), "$"+c.Amount.String())
	}
	fmt.Print(capTbl.View(styles))

	clm := ui.NewTable("Claims", []string{"id", "patient", "date", "type", "status", "billed", "allowed", "paid"})
	clm.AlignRight(5, 6, 7)
	for _, c := range head(ds.Claims, previewRows) {
		clm.AddRow(short(c.ID), short(c.PatientID), c.ServiceDate, c.ClaimType, c.Status,
			"$"+c.Billed.String(), "$"+c.Allowed.String(), "$"+c.Paid.String())
	}
	fmt.Print(clm.View(styles))

	fmt.Printf("seed %d | %d patients | %d payments | %d claims\n",
		ds.Seed, len(ds.Patients), len(ds.Capitation), len(ds.Claims))
	return nil
}

func head[T any](s []T, n int) []T {
	if len(s) < n {
		return s
	}
	return s[:n]
}

// short trims a prefixed UUID to its prefix plus the first hex group.
func short(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
