package captable

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DerivePostMoney computes the post-money valuation implied by an
// investment amount at a given equity percentage:
//
//	postMoney = amount * 100 / equityPercent
//
// It returns a zero valuation when equityPercent is not positive, so
// callers never divide by zero.
func DerivePostMoney(amount Money, equityPercent Percent) Money {
	if equityPercent <= 0 {
		return M(0, amount.Currency())
	}
	pct := decimal.NewFromFloat(float64(equityPercent))
	return M(amount.Decimal().Mul(hundred).Div(pct), amount.Currency())
}

// DeriveEquity computes the equity percentage implied by an investment
// amount at a given post-money valuation. Zero when the valuation is not
// positive.
func DeriveEquity(amount, postMoney Money) Percent {
	if !postMoney.IsPositive() {
		return 0
	}
	pct := amount.Decimal().Mul(hundred).Div(postMoney.Decimal())
	return Percent(pct.InexactFloat64())
}

// ValuationPoint is one entry of the valuation history.
type ValuationPoint struct {
	Date      Date  `json:"date"`
	Valuation Money `json:"valuation"`
}

// ValuationHistory returns the post-money valuations in chronological
// order. The sort is stable: records sharing a date keep their insertion
// order, there is no secondary key.
func ValuationHistory(records []InvestmentRecord) []ValuationPoint {
	sorted := make([]InvestmentRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	points := make([]ValuationPoint, 0, len(sorted))
	for _, r := range sorted {
		points = append(points, ValuationPoint{Date: r.Date, Valuation: r.PostMoneyValuation})
	}
	return points
}

// CurrentValuation returns the post-money valuation of the most recent
// record by calendar date, or fallback when the ledger is empty. Records
// sharing the latest date resolve by insertion order: the last one wins.
func CurrentValuation(records []InvestmentRecord, fallback Money) Money {
	found := false
	var best InvestmentRecord
	for _, r := range records {
		if !found || !r.Date.Before(best.Date) {
			best, found = r, true
		}
	}
	if !found {
		return fallback
	}
	return best.PostMoneyValuation
}

// Slice is one line of the equity distribution.
type Slice struct {
	Name    string  `json:"name"`
	Equity  Percent `json:"equityPercent"`
	Founder bool    `json:"founder,omitempty"`
}

// EquityDistribution computes the ownership split among investors and
// founders. The founder residual is max(0, 100 - Σ equity%) divided
// evenly across founders; with zero founders only investor slices are
// returned. Records with a non-positive equity percentage are excluded
// from the returned slices but still take part in the residual
// subtraction.
//
// A ledger whose percentages sum above 100 is not rejected: the residual
// floors at zero and the over-allocation is silently absorbed. Whether
// that is a diluted-to-zero founder scenario or bad data is for the
// caller to decide.
func EquityDistribution(records []InvestmentRecord, founders []Founder) []Slice {
	var allocated Percent
	slices := make([]Slice, 0, len(records)+len(founders))
	for _, r := range records {
		allocated += r.EquityAllocated
		if r.EquityAllocated <= 0 {
			continue
		}
		slices = append(slices, Slice{Name: r.InvestorName, Equity: r.EquityAllocated})
	}
	residual := 100 - allocated
	if residual < 0 {
		residual = 0
	}
	if len(founders) > 0 {
		each := residual / Percent(len(founders))
		for _, f := range founders {
			slices = append(slices, Slice{Name: f.Name, Equity: each, Founder: true})
		}
	}
	return slices
}
