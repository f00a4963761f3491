package captable

import "github.com/shopspring/decimal"

// PricePerShare is the current valuation spread over the share count,
// zero when no shares are configured.
func PricePerShare(totalShares int64, currentValuation Money) Money {
	if totalShares <= 0 {
		return M(0, currentValuation.Currency())
	}
	return currentValuation.DivInt(totalShares)
}

// ReservedValue converts the reserved ESOP shares to a monetary reserve
// at the given price per share.
func ReservedValue(reservedShares int64, pricePerShare Money) Money {
	return pricePerShare.MulInt(reservedShares)
}

// Utilization is the fraction of the ESOP reserve consumed by employee
// allocations, in [0,1]. The value caps at 1 even when allocations
// exceed the reserve: over-allocation is a visible 100%, not an error.
// Whether it blocks new hires is policy owned by the employee subsystem.
func Utilization(allocatedValue, reservedValue Money) float64 {
	if !reservedValue.IsPositive() {
		return 0
	}
	u := allocatedValue.Ratio(reservedValue)
	if u.GreaterThan(decimal.NewFromInt(1)) {
		return 1
	}
	return u.InexactFloat64()
}

// EsopStatus is the derived state of the pool at read time. Nothing in
// it is cached: it is recomputed from the current ledger state.
type EsopStatus struct {
	TotalShares    int64   `json:"totalShares"`
	ReservedShares int64   `json:"reservedShares"`
	PricePerShare  Money   `json:"pricePerShare"`
	ReservedValue  Money   `json:"reservedValue"`
	AllocatedValue Money   `json:"allocatedValue"`
	Utilization    float64 `json:"utilization"`
}

// NewEsopStatus derives the pool status from the share configuration,
// the reserve, the current valuation and the summed employee
// allocations. It trusts the write-time reserved <= total invariant and
// does not re-validate it.
func NewEsopStatus(shares ShareConfiguration, pool EsopPool, valuation, allocated Money) EsopStatus {
	pps := PricePerShare(shares.TotalShares, valuation)
	reserved := ReservedValue(pool.ReservedShares, pps)
	return EsopStatus{
		TotalShares:    shares.TotalShares,
		ReservedShares: pool.ReservedShares,
		PricePerShare:  pps,
		ReservedValue:  reserved,
		AllocatedValue: allocated,
		Utilization:    Utilization(allocated, reserved),
	}
}
