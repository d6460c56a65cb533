package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 0, false},
		{"1,000", 0, false},
		{"92233720368547758.07", 9223372036854775807, true},
		{"92233720368547758.08", 0, false},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"156.00", 15600, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"0.001", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestParseNonNegativeCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"0", 0, true},
		{"4800", 480000, true},
		{"100000000000000000", 0, false},
		{"-1", 0, false},
		{"1,5", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseNonNegativeCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error, got %d", tc.in, got)
		}
	}
}

func TestFormatDollars(t *testing.T) {
	cases := map[int64]string{
		0:         "$0.00",
		5:         "$0.05",
		123:       "$1.23",
		100000:    "$1,000.00",
		123456789: "$1,234,567.89",
		-2500:     "-$25.00",
	}
	for in, want := range cases {
		if got := FormatDollars(in); got != want {
			t.Errorf("FormatDollars(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestMoneyDecimal(t *testing.T) {
	if got := (Money{Cents: 1230}).Decimal(); got != "12.30" {
		t.Fatalf("Decimal() = %q, want 12.30", got)
	}
	if got := (Money{Cents: 7}).Decimal(); got != "0.07" {
		t.Fatalf("Decimal() = %q, want 0.07", got)
	}
}
