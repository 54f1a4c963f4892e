package core

import "testing"

func TestParseCurrency(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"$1,000.00", 100000, true},
		{"$1,234.56", 123456, true},
		{"1000", 100000, true},
		{"12.34", 1234, true},
		{"12.344", 1234, true},
		{"12.345", 1235, true},
		{"12.346", 1235, true},
		{"0.5", 50, true},
		{"", 0, true},
		{"   ", 0, true},
		{"$0.00", 0, true},
		{"-12.00", 0, false},
		{"12.34.56", 0, false},
		{"abc", 0, false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseCurrency(c.in)
			if c.ok && err != nil {
				t.Fatalf("ParseCurrency(%q) unexpected error: %v", c.in, err)
			}
			if !c.ok && err == nil {
				t.Fatalf("ParseCurrency(%q) expected error, got %d", c.in, got.Cents)
			}
			if c.ok && got.Cents != c.out {
				t.Errorf("ParseCurrency(%q) = %d, want %d", c.in, got.Cents, c.out)
			}
		})
	}
}

func TestMoneyRoundTrip(t *testing.T) {
	// Parsing a currency string then formatting it back must reproduce the
	// numeric text.
	cases := map[string]string{
		"$1,000.00": "1,000.00",
		"$12.50":    "12.50",
		"999":       "999.00",
		"$1,234,567.89": "1,234,567.89",
	}
	for in, want := range cases {
		m, err := ParseCurrency(in)
		if err != nil {
			t.Fatalf("ParseCurrency(%q): %v", in, err)
		}
		if got := m.Format(); got != want {
			t.Errorf("ParseCurrency(%q).Format() = %q, want %q", in, got, want)
		}
	}
}

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100000, "1,000.00"},
		{123456789, "1,234,567.89"},
		{-1234, "-12.34"},
	}
	for _, c := range cases {
		if got := (Money{Cents: c.cents}).Format(); got != c.want {
			t.Errorf("Money{%d}.Format() = %q, want %q", c.cents, got, c.want)
		}
	}
}
