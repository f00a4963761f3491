package captable

import (
	"testing"
)

func rec(day string, name string, amount float64, equity Percent) InvestmentRecord {
	r := InvestmentRecord{
		Date:            MustParseDate(day),
		InvestorType:    Angel,
		RoundType:       EquityRound,
		InvestorName:    name,
		Amount:          M(amount, "USD"),
		EquityAllocated: equity,
	}
	r.PostMoneyValuation = DerivePostMoney(r.Amount, r.EquityAllocated)
	return r
}

func TestDerivePostMoney(t *testing.T) {
	testCases := []struct {
		name   string
		amount float64
		equity Percent
		want   float64
	}{
		{name: "100k for 10% is a 1M post-money", amount: 100_000, equity: 10, want: 1_000_000},
		{name: "1M for 100% is 1M", amount: 1_000_000, equity: 100, want: 1_000_000},
		{name: "250k for 2.5%", amount: 250_000, equity: 2.5, want: 10_000_000},
		{name: "zero equity guards the division", amount: 100_000, equity: 0, want: 0},
		{name: "negative equity guards the division", amount: 100_000, equity: -5, want: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DerivePostMoney(M(tc.amount, "USD"), tc.equity)
			if !got.Equal(M(tc.want, "USD")) {
				t.Errorf("DerivePostMoney(%v, %s) = %s, want %v", tc.amount, tc.equity, got, tc.want)
			}
		})
	}
}

func TestDeriveEquity_RoundTrip(t *testing.T) {
	testCases := []struct {
		amount float64
		equity Percent
	}{
		{100_000, 10},
		{1, 100},
		{333_333, 7.7},
		{5_000_000, 0.3},
	}
	for _, tc := range testCases {
		post := DerivePostMoney(M(tc.amount, "USD"), tc.equity)
		got := DeriveEquity(M(tc.amount, "USD"), post)
		if !got.Equal(tc.equity) {
			t.Errorf("DeriveEquity(%v, %s) = %s, want %s", tc.amount, post, got, tc.equity)
		}
	}
}

func TestDeriveEquity_ZeroValuation(t *testing.T) {
	if got := DeriveEquity(M(100, "USD"), M(0, "USD")); got != 0 {
		t.Errorf("DeriveEquity on zero valuation = %s, want 0", got)
	}
}

func TestValuationHistory_StableOrder(t *testing.T) {
	// b and c share a date: insertion order must be preserved, there is
	// no secondary key.
	a := rec("2024-06-01", "late", 100_000, 10)
	b := rec("2023-01-15", "first-that-day", 50_000, 5)
	c := rec("2023-01-15", "second-that-day", 60_000, 5)

	points := ValuationHistory([]InvestmentRecord{a, b, c})

	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	wantOrder := []Money{b.PostMoneyValuation, c.PostMoneyValuation, a.PostMoneyValuation}
	for i, want := range wantOrder {
		if !points[i].Valuation.Equal(want) {
			t.Errorf("point %d valuation = %s, want %s", i, points[i].Valuation, want)
		}
	}
}

func TestValuationHistory_DoesNotMutateInput(t *testing.T) {
	records := []InvestmentRecord{
		rec("2024-06-01", "late", 100_000, 10),
		rec("2023-01-15", "early", 50_000, 5),
	}
	ValuationHistory(records)
	if records[0].InvestorName != "late" {
		t.Error("ValuationHistory reordered its input")
	}
}

func TestCurrentValuation(t *testing.T) {
	fallback := M(500_000, "USD")

	t.Run("empty ledger uses the fallback", func(t *testing.T) {
		if got := CurrentValuation(nil, fallback); !got.Equal(fallback) {
			t.Errorf("got %s, want fallback %s", got, fallback)
		}
	})

	t.Run("latest date wins", func(t *testing.T) {
		records := []InvestmentRecord{
			rec("2024-06-01", "late", 200_000, 10),
			rec("2023-01-15", "early", 50_000, 5),
		}
		want := records[0].PostMoneyValuation
		if got := CurrentValuation(records, fallback); !got.Equal(want) {
			t.Errorf("got %s, want %s", got, want)
		}
	})

	t.Run("same date resolves to the last inserted", func(t *testing.T) {
		records := []InvestmentRecord{
			rec("2024-06-01", "first", 100_000, 10),
			rec("2024-06-01", "second", 300_000, 10),
		}
		want := records[1].PostMoneyValuation
		if got := CurrentValuation(records, fallback); !got.Equal(want) {
			t.Errorf("got %s, want %s", got, want)
		}
	})
}

func TestEquityDistribution(t *testing.T) {
	founders := []Founder{
		{Name: "Ada", Email: "ada@acme.io"},
		{Name: "Grace", Email: "grace@acme.io"},
	}

	t.Run("two founders split the residual of one 20% investor", func(t *testing.T) {
		records := []InvestmentRecord{rec("2024-01-01", "Seed Fund", 200_000, 20)}
		slices := EquityDistribution(records, founders)
		if len(slices) != 3 {
			t.Fatalf("got %d slices, want 3", len(slices))
		}
		if !slices[0].Equity.Equal(20) || slices[0].Founder {
			t.Errorf("investor slice = %+v, want 20%% non-founder", slices[0])
		}
		for _, s := range slices[1:] {
			if !s.Equity.Equal(40) || !s.Founder {
				t.Errorf("founder slice = %+v, want 40%% founder", s)
			}
		}
	})

	t.Run("residual floors at zero when over-allocated", func(t *testing.T) {
		records := []InvestmentRecord{
			rec("2024-01-01", "A", 100_000, 70),
			rec("2024-02-01", "B", 100_000, 50),
		}
		slices := EquityDistribution(records, founders)
		for _, s := range slices {
			if s.Founder && s.Equity != 0 {
				t.Errorf("founder slice = %s, want 0 (floored)", s.Equity)
			}
			if s.Equity < 0 {
				t.Errorf("negative slice %+v", s)
			}
		}
	})

	t.Run("zero-equity records hidden but counted", func(t *testing.T) {
		records := []InvestmentRecord{
			rec("2024-01-01", "Grant Body", 50_000, 0), // grant converting no equity
			rec("2024-02-01", "Seed Fund", 100_000, 10),
		}
		slices := EquityDistribution(records, founders)
		if len(slices) != 3 { // one investor + two founders
			t.Fatalf("got %d slices, want 3", len(slices))
		}
		for _, s := range slices {
			if s.Name == "Grant Body" {
				t.Error("zero-equity record must not appear in the distribution")
			}
		}
	})

	t.Run("no founders yields investor slices only", func(t *testing.T) {
		records := []InvestmentRecord{rec("2024-01-01", "Seed Fund", 100_000, 25)}
		slices := EquityDistribution(records, nil)
		if len(slices) != 1 {
			t.Fatalf("got %d slices, want 1", len(slices))
		}
	})
}
