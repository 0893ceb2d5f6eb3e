package types

import (
	"testing"
	"time"
)

func TestCents_String(t *testing.T) {
	cases := []struct {
		in   Cents
		want string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{123450, "1234.50"},
		{-250, "-2.50"},
	}
	for _, tc := range cases {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("Cents(%d).String() = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCents_Dollars(t *testing.T) {
	if got := Cents(123450).Dollars(); got != 1234.50 {
		t.Errorf("Dollars() = %g", got)
	}
}

func TestMonth(t *testing.T) {
	m := Month("2026-03")

	tm, err := m.Time()
	if err != nil {
		t.Fatalf("Time: %v", err)
	}
	if tm.Year() != 2026 || tm.Month() != time.March {
		t.Errorf("Time() = %v", tm)
	}

	if !Month("2026-02").Before(m) {
		t.Error("2026-02 should sort before 2026-03")
	}
	if m.Before(m) {
		t.Error("a month should not sort before itself")
	}
	if MonthOf(time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)) != "2025-12" {
		t.Error("MonthOf december")
	}

	if _, err := Month("March").Time(); err == nil {
		t.Error("expected parse error for invalid month")
	}
}

func TestMonthRange(t *testing.T) {
	got := MonthRange("2025-11", "2026-02")
	want := []Month{"2025-11", "2025-12", "2026-01", "2026-02"}
	if len(got) != len(want) {
		t.Fatalf("MonthRange = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("MonthRange[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if got := MonthRange("2026-03", "2026-03"); len(got) != 1 || got[0] != "2026-03" {
		t.Errorf("single-month range = %v", got)
	}
	if got := MonthRange("2026-04", "2026-03"); got != nil {
		t.Errorf("backwards range should be nil, got %v", got)
	}
	if got := MonthRange("bad", "2026-03"); got != nil {
		t.Errorf("unparseable range should be nil, got %v", got)
	}
}
