package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"claimforge/cmd/claimforge/ui"
	"claimforge/internal/gen"
	"claimforge/internal/rollup"
	"claimforge/internal/store"
	"claimforge/internal/types"
)

var sumDBPath string

// summarizeCmd prints the provider and monthly roll-ups
var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Compute and print provider and monthly roll-ups",
	Long: `Computes the groupby-style roll-ups and renders them as tables:
per-provider (panel size, capitation revenue, claims, loss ratio) and
per-month (member months, capitation, paid claims, loss ratio).

With --db the dataset is loaded back from a previously generated SQLite
artifact; otherwise a fresh dataset is synthesized from the config.`,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVar(&sumDBPath, "db", "", "load dataset from a SQLite artifact instead of generating")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var ds *types.Dataset
	if sumDBPath != "" {
		st, err := store.Open(sumDBPath)
		if err != nil {
			return err
		}
		defer st.Close()
		ds, err = st.LoadDataset()
		if err != nil {
			return err
		}
	} else {
		g, err := gen.New(cfg, time.Now())
		if err != nil {
			return err
		}
		ds, err = g.Generate(cmd.Context())
		if err != nil {
			return err
		}
	}

	t := rollup.Totals(ds)

	styles := ui.DefaultStyles()
	fmt.Print(providerTable(ds).View(styles))
	fmt.Print(monthlyTable(ds, t).View(styles))

	fmt.Printf("Totals: %d patients, %d providers, %d member-months, %d claims\n",
		t.Patients, t.Providers, t.MemberMonths, t.ClaimCount)
	fmt.Printf("Capitation $%s | Paid claims $%s | Loss ratio %s\n",
		t.CapitationTotal, t.PaidTotal, lossRatioCell(t.LossRatio))

	return nil
}

func providerTable(ds *types.Dataset) *ui.Table {
	tbl := ui.NewTable("Provider Summary", []string{
		"provider", "specialty", "members", "capitation", "claims",
		"paid", "denied", "pending", "paid $", "loss ratio",
	})
	tbl.AlignRight(2, 3, 4, 5, 6, 7, 8, 9)

	var members, claims, paid, denied, pending int
	var revenue, paidTotal types.Cents
	for _, s := range rollup.ProviderSummaries(ds) {
		tbl.AddRow(
			s.ProviderName,
			s.Specialty,
			strconv.Itoa(s.MemberCount),
			"$"+s.CapitationRevenue.String(),
			strconv.Itoa(s.ClaimCount),
			strconv.Itoa(s.PaidClaims),
			strconv.Itoa(s.DeniedClaims),
			strconv.Itoa(s.PendingClaims),
			"$"+s.PaidTotal.String(),
			lossRatioCell(s.LossRatio),
		)
		members += s.MemberCount
		claims += s.ClaimCount
		paid += s.PaidClaims
		denied += s.DeniedClaims
		pending += s.PendingClaims
		revenue += s.CapitationRevenue
		paidTotal += s.PaidTotal
	}

	ratio := 0.0
	if revenue > 0 {
		ratio = float64(paidTotal) / float64(revenue)
	}
	tbl.SetFooter(
		"all providers", "",
		strconv.Itoa(members),
		"$"+revenue.String(),
		strconv.Itoa(claims),
		strconv.Itoa(paid),
		strconv.Itoa(denied),
		strconv.Itoa(pending),
		"$"+paidTotal.String(),
		lossRatioCell(ratio),
	)
	return tbl
}

func monthlyTable(ds *types.Dataset, t types.Totals) *ui.Table {
	tbl := ui.NewTable("Monthly Summary", []string{
		"month", "member months", "capitation", "claims", "paid $", "loss ratio",
	})
	tbl.AlignRight(1, 2, 3, 4, 5)

	for _, s := range rollup.MonthlySummaries(ds) {
		tbl.AddRow(
			string(s.Month),
			strconv.Itoa(s.MemberMonths),
			"$"+s.CapitationTotal.String(),
			strconv.Itoa(s.ClaimCount),
			"$"+s.PaidTotal.String(),
			lossRatioCell(s.LossRatio),
		)
	}
	tbl.SetFooter(
		"total",
		strconv.Itoa(t.MemberMonths),
		"$"+t.CapitationTotal.String(),
		strconv.Itoa(t.ClaimCount),
		"$"+t.PaidTotal.String(),
		lossRatioCell(t.LossRatio),
	)
	return tbl
}

func lossRatioCell(ratio float64) string {
	return ui.LossRatioStyle(ratio).Render(strconv.FormatFloat(ratio, 'f', 4, 64))
}
