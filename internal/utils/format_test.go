package utils

import (
	"testing"
	"time"
)

func TestFormatFixed(t *testing.T) {
	tests := []struct {
		value    float64
		decimals int
		want     string
	}{
		{3.14159, 4, "3.1416"},
		{-0.5, 2, "-0.50"},
		{0, 4, "0.0000"},
		{1234, 0, "1234"},
		{2.5, -1, "2.5000"},
	}
	for _, tt := range tests {
		if got := FormatFixed(tt.value, tt.decimals); got != tt.want {
			t.Fatalf("FormatFixed(%v, %d): expected %s, got %s", tt.value, tt.decimals, tt.want, got)
		}
	}
}

func TestRunID(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	stamp := time.Date(2026, 3, 14, 11, 30, 45, 0, loc)
	if got := RunID(stamp); got != "20260314T093045Z" {
		t.Fatalf("unexpected run id: %s", got)
	}
}
