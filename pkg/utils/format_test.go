package utils

import "testing"

func TestRound(t *testing.T) {
	if got := Round2(123.456); got != 123.46 {
		t.Errorf("Round2 = %v", got)
	}
	if got := Round3(1.23449); got != 1.234 {
		t.Errorf("Round3 = %v", got)
	}
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{999.5, "$999.50"},
		{1000, "$1,000.00"},
		{150000, "$150,000.00"},
		{1234567.891, "$1,234,567.89"},
		{-2500.25, "-$2,500.25"},
	}
	for _, tt := range tests {
		if got := FormatUSD(tt.in); got != tt.want {
			t.Errorf("FormatUSD(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPct(t *testing.T) {
	if got := FormatPct(2.45); got != "+2.45%" {
		t.Errorf("FormatPct(2.45) = %q", got)
	}
	if got := FormatPct(-1.23); got != "-1.23%" {
		t.Errorf("FormatPct(-1.23) = %q", got)
	}
}

func TestFormatMetricValue(t *testing.T) {
	tests := []struct {
		metric string
		value  float64
		want   string
	}{
		{"profit_margin", 0.08, "8.00%"},
		{"customer_retention_rate", 0.7, "70.00%"},
		{"labor_cost_percentage", 0.3, "30.00%"},
		{"guest_satisfaction", 0.85, "85.00%"},
		{"revenue_per_employee", 150000, "$150,000.00"},
		{"customer_acquisition_cost", 50, "$50.00"},
		{"inventory_turnover", 8, "8.00"},
	}
	for _, tt := range tests {
		if got := FormatMetricValue(tt.metric, tt.value); got != tt.want {
			t.Errorf("FormatMetricValue(%q, %v) = %q, want %q", tt.metric, tt.value, got, tt.want)
		}
	}
}
