package utils

import "testing"

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value float64
		unit  string
		want  string
	}{
		{391.04e9, "USD", "$391.04B"},
		{15.55e9, "shares", "15.55B shares"},
		{-2.5e6, "USD", "$-2.50M"},
		{950, "", "950.00"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.value, tt.unit); got != tt.want {
			t.Errorf("FormatValue(%g, %q) = %q, want %q", tt.value, tt.unit, got, tt.want)
		}
	}
}

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{1.5e12, "1.50T"},
		{391.04e9, "391.04B"},
		{2.5e6, "2.50M"},
		{1200, "1.20K"},
		{42, "42.00"},
		{-1.5e9, "-1.50B"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		if got := Abbreviate(tt.value); got != tt.want {
			t.Errorf("Abbreviate(%g) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatPct(t *testing.T) {
	if got := FormatPct(nil); got != "—" {
		t.Errorf("FormatPct(nil) = %q", got)
	}
	up := 12.3
	if got := FormatPct(&up); got != "+12.3%" {
		t.Errorf("FormatPct(12.3) = %q", got)
	}
	down := -8.0
	if got := FormatPct(&down); got != "-8.0%" {
		t.Errorf("FormatPct(-8.0) = %q", got)
	}
}
