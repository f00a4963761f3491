package captable

// Summary is the roll-up of a company's ledger by round type.
type Summary struct {
	TotalEquityFunding Money   `json:"totalEquityFunding"`
	TotalDebtFunding   Money   `json:"totalDebtFunding"`
	TotalGrantFunding  Money   `json:"totalGrantFunding"`
	InvestmentCount    int     `json:"investmentCount"`
	AvgEquityAllocated Percent `json:"avgEquityAllocated"`
}

// Summarize recomputes the roll-up from the full current record set.
// There is no incremental or cached state: at tens to low hundreds of
// records per company a full pass is cheaper than staying consistent
// with the ledger. Revisit if record counts reach the thousands.
func Summarize(records []InvestmentRecord) Summary {
	var s Summary
	var equitySum Percent
	for _, r := range records {
		switch r.RoundType {
		case EquityRound:
			s.TotalEquityFunding = s.TotalEquityFunding.Add(r.Amount)
		case DebtRound:
			s.TotalDebtFunding = s.TotalDebtFunding.Add(r.Amount)
		case GrantRound:
			s.TotalGrantFunding = s.TotalGrantFunding.Add(r.Amount)
		}
		equitySum += r.EquityAllocated
		s.InvestmentCount++
	}
	if s.InvestmentCount > 0 {
		s.AvgEquityAllocated = equitySum / Percent(s.InvestmentCount)
	}
	return s
}
