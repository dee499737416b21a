package listview

import "testing"

func TestDateRangeAutoAdjust(t *testing.T) {
	var r DateRange
	r.SetTo("2026-08-10")
	r.SetFrom("2026-08-20")
	if r.To != "2026-08-20" {
		t.Fatalf("To should follow a later From, got %s", r.To)
	}

	r = DateRange{}
	r.SetFrom("2026-08-20")
	r.SetTo("2026-08-10")
	if r.From != "2026-08-10" {
		t.Fatalf("From should follow an earlier To, got %s", r.From)
	}

	if err := r.Validate(); err != nil {
		t.Fatalf("adjusted range should validate: %v", err)
	}
}

func TestDateRangeValidateRejectsInverted(t *testing.T) {
	r := DateRange{From: "2026-08-20", To: "2026-08-10"}
	if err := r.Validate(); err == nil {
		t.Fatal("expected validation error for inverted range")
	}
}

func TestDateRangeContains(t *testing.T) {
	r := DateRange{From: "2026-08-10", To: "2026-08-20"}

	for _, date := range []string{"2026-08-10", "2026-08-15", "2026-08-20"} {
		if !r.Contains(date) {
			t.Fatalf("%s should be inside the range", date)
		}
	}
	for _, date := range []string{"2026-08-09", "2026-08-21"} {
		if r.Contains(date) {
			t.Fatalf("%s should be outside the range", date)
		}
	}

	open := DateRange{From: "2026-08-10"}
	if !open.Contains("2099-01-01") || open.Contains("2026-08-09") {
		t.Fatal("open-ended range handled incorrectly")
	}
	if !(DateRange{}).Contains("2026-08-15") {
		t.Fatal("zero range should contain everything")
	}
}

func TestAutoAdjustedRangeMatchesCorrectedRange(t *testing.T) {
	// Entering from > to through the setters yields the same filter as the
	// corrected single-day range.
	var entered DateRange
	entered.SetTo("2026-08-10")
	entered.SetFrom("2026-08-15")

	corrected := DateRange{From: "2026-08-15", To: "2026-08-15"}
	for _, date := range []string{"2026-08-09", "2026-08-10", "2026-08-15", "2026-08-16"} {
		if entered.Contains(date) != corrected.Contains(date) {
			t.Fatalf("divergence at %s", date)
		}
	}
}
