package common

import "testing"

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{80, "$80.00"},
		{178.5, "$178.50"},
		{1234.56, "$1,234.56"},
		{1234567.891, "$1,234,567.89"},
		{-42.5, "-$42.50"},
		{999.999, "$1,000.00"},
	}

	for _, c := range cases {
		if got := FormatMoney(c.in); got != c.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatSignedPct(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{10, "+10.00%"},
		{0, "+0.00%"},
		{-2.5, "-2.50%"},
	}

	for _, c := range cases {
		if got := FormatSignedPct(c.in); got != c.want {
			t.Errorf("FormatSignedPct(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
