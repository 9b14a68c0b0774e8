package domain

import (
	"testing"
	"time"
)

var rangeNow = time.Date(2025, 8, 15, 14, 30, 0, 0, time.UTC)

func TestParseDateRange(t *testing.T) {
	cases := []struct {
		expr    string
		in      []string
		out     []string
	}{
		{"today", []string{"20250815"}, []string{"20250814", "20250816"}},
		{"yesterday", []string{"20250814"}, []string{"20250813", "20250815"}},
		{"7", []string{"20250808", "20250815"}, []string{"20250807", "20250816"}},
		{"0", []string{"20250815"}, []string{"20250814", "20250816"}},
		{"20250810", []string{"20250810"}, []string{"20250809", "20250811"}},
		{"20250810-20250812", []string{"20250810", "20250812"}, []string{"20250809", "20250813"}},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			r, err := ParseDateRange(tc.expr, rangeNow)
			if err != nil {
				t.Fatalf("ParseDateRange(%q) error = %v", tc.expr, err)
			}
			for _, day := range tc.in {
				if !r.Contains(day) {
					t.Errorf("range %q should contain %s", tc.expr, day)
				}
			}
			for _, day := range tc.out {
				if r.Contains(day) {
					t.Errorf("range %q should not contain %s", tc.expr, day)
				}
			}
		})
	}
}

func TestParseDateRangeRejectsGarbage(t *testing.T) {
	// 20251399 is 8 digits but not a date; it must not be read as a
	// day count.
	for _, expr := range []string{"", "lastweek", "-3", "20250810-bad", "20251399"} {
		if _, err := ParseDateRange(expr, rangeNow); err == nil {
			t.Errorf("ParseDateRange(%q) succeeded, want error", expr)
		}
	}
}

func TestContainsRejectsMalformedDate(t *testing.T) {
	r, err := ParseDateRange("7", rangeNow)
	if err != nil {
		t.Fatalf("ParseDateRange error = %v", err)
	}
	if r.Contains("") || r.Contains("2025-08-10") {
		t.Fatal("malformed upload dates must never match")
	}
}
