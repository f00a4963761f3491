package captable

import (
	"math"
	"testing"
)

func TestPricePerShare(t *testing.T) {
	testCases := []struct {
		name        string
		totalShares int64
		valuation   float64
		want        float64
	}{
		{name: "1000 shares of a 1M company are 1000 each", totalShares: 1000, valuation: 1_000_000, want: 1000},
		{name: "zero shares guard the division", totalShares: 0, valuation: 1_000_000, want: 0},
		{name: "fractional price", totalShares: 3000, valuation: 1500, want: 0.5},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := PricePerShare(tc.totalShares, M(tc.valuation, "USD"))
			if !got.Equal(M(tc.want, "USD")) {
				t.Errorf("PricePerShare(%d, %v) = %s, want %v", tc.totalShares, tc.valuation, got, tc.want)
			}
		})
	}
}

func TestReservedValue(t *testing.T) {
	got := ReservedValue(500, M(1000, "USD"))
	if !got.Equal(M(500_000, "USD")) {
		t.Errorf("ReservedValue(500, 1000) = %s, want 500000", got)
	}
}

func TestUtilization(t *testing.T) {
	testCases := []struct {
		name      string
		allocated float64
		reserved  float64
		want      float64
	}{
		{name: "fifth of the reserve", allocated: 100_000, reserved: 500_000, want: 0.2},
		{name: "exactly full", allocated: 500_000, reserved: 500_000, want: 1},
		{name: "over-allocation caps at 100%", allocated: 900_000, reserved: 500_000, want: 1},
		{name: "empty reserve is zero, not an error", allocated: 100_000, reserved: 0, want: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Utilization(M(tc.allocated, "USD"), M(tc.reserved, "USD"))
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Utilization(%v, %v) = %v, want %v", tc.allocated, tc.reserved, got, tc.want)
			}
		})
	}
}

func TestNewEsopStatus(t *testing.T) {
	// 500 of 1000 shares reserved at a 1M valuation: the reserve is
	// worth 500k, and 100k of allocations use a fifth of it.
	status := NewEsopStatus(
		ShareConfiguration{TotalShares: 1000},
		EsopPool{ReservedShares: 500},
		M(1_000_000, "USD"),
		M(100_000, "USD"),
	)

	if !status.PricePerShare.Equal(M(1000, "USD")) {
		t.Errorf("price per share = %s, want 1000", status.PricePerShare)
	}
	if !status.ReservedValue.Equal(M(500_000, "USD")) {
		t.Errorf("reserved value = %s, want 500000", status.ReservedValue)
	}
	if math.Abs(status.Utilization-0.2) > 1e-9 {
		t.Errorf("utilization = %v, want 0.2", status.Utilization)
	}
}
