package ui

import (
	"strings"
	"testing"
)

func TestTable_View(t *testing.T) {
	tbl := NewTable("Monthly Summary", []string{"month", "capitation"})
	tbl.AddRow("2026-01", "$20500.00")
	tbl.AddRow("2026-02", "$21000.00")

	out := tbl.View(DefaultStyles())

	for _, want := range []string{"Monthly Summary", "month", "capitation", "2026-01", "$21000.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered table missing %q:\n%s", want, out)
		}
	}
}

func TestTable_RightAlignedColumns(t *testing.T) {
	tbl := NewTable("", []string{"month", "amount"})
	tbl.AlignRight(1)
	tbl.AddRow("2026-01", "$5.00")
	tbl.AddRow("2026-02", "$12345.00")

	out := tbl.View(DefaultStyles())

	// The narrower amount pads on the left so the digits line up; the cell
	// ends with its single padding space before the line break.
	if !strings.Contains(out, "$5.00 \n") {
		t.Errorf("right-aligned cell should sit flush right:\n%q", out)
	}
}

func TestTable_FooterRendersUnderOwnDivider(t *testing.T) {
	tbl := NewTable("Monthly Summary", []string{"month", "amount"})
	tbl.AddRow("2026-01", "$20500.00")
	tbl.SetFooter("total", "$20500.00")

	out := tbl.View(DefaultStyles())

	if !strings.Contains(out, "total") {
		t.Fatalf("footer row missing:\n%s", out)
	}
	dividers := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			dividers++
		}
	}
	if dividers != 2 {
		t.Errorf("expected header and footer dividers, got %d:\n%s", dividers, out)
	}
}

func TestTable_EmptyRendersNothing(t *testing.T) {
	tbl := NewTable("Empty", []string{"a", "b"})
	if out := tbl.View(DefaultStyles()); out != "" {
		t.Errorf("empty table should render nothing, got %q", out)
	}
}

func TestLossRatioStyle(t *testing.T) {
	// Just exercise all three buckets; the styles themselves are cosmetic.
	for _, r := range []float64{0.5, 0.9, 1.2} {
		_ = LossRatioStyle(r).Render("x")
	}
}
