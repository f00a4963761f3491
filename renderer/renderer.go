// Package renderer turns derived ledger facts into markdown reports for
// terminal display.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/opencap/captable"
)

// SummaryMarkdown renders the per-category funding roll-up.
func SummaryMarkdown(companyID string, s captable.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Funding Summary — %s", companyID))

	table := md.TableSet{
		Header: []string{"Category", "Total"},
		Rows: [][]string{
			{"Equity", s.TotalEquityFunding.String()},
			{"Debt", s.TotalDebtFunding.String()},
			{"Grants", s.TotalGrantFunding.String()},
		},
	}
	doc.Table(table)

	doc.PlainText(fmt.Sprintf("%d investment records, average equity allocated %s",
		s.InvestmentCount, s.AvgEquityAllocated))

	return doc.String()
}

// CapTableMarkdown renders the ownership distribution with the current
// valuation and price per share.
func CapTableMarkdown(companyID string, ct captable.CapTable) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Cap Table — %s", companyID))
	doc.PlainText(fmt.Sprintf("Post-money valuation: %s", ct.Valuation))
	doc.PlainText(fmt.Sprintf("Price per share: %s", ct.PricePerShare))
	doc.PlainText(fmt.Sprintf("Total funding: %s", ct.TotalFunding))

	rows := make([][]string, 0, len(ct.Distribution))
	for _, slice := range ct.Distribution {
		kind := "investor"
		if slice.Founder {
			kind = "founder"
		}
		rows = append(rows, []string{slice.Name, kind, slice.Equity.String()})
	}
	doc.H2("Equity Distribution")
	doc.Table(md.TableSet{
		Header: []string{"Holder", "Kind", "Equity"},
		Rows:   rows,
	})

	return doc.String()
}

// HistoryMarkdown renders the time-ordered valuation history.
func HistoryMarkdown(companyID string, points []captable.ValuationPoint) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Valuation History — %s", companyID))

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{p.Date.String(), p.Valuation.String()})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Post-money Valuation"},
		Rows:   rows,
	})

	return doc.String()
}

// EsopMarkdown renders the derived pool status.
func EsopMarkdown(companyID string, s captable.EsopStatus) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("ESOP Pool — %s", companyID))
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total shares", fmt.Sprintf("%d", s.TotalShares)},
			{"Reserved shares", fmt.Sprintf("%d", s.ReservedShares)},
			{"Price per share", s.PricePerShare.String()},
			{"Reserved value", s.ReservedValue.String()},
			{"Allocated value", s.AllocatedValue.String()},
			{"Utilization", fmt.Sprintf("%.1f%%", s.Utilization*100)},
		},
	})

	return doc.String()
}

// RecordsMarkdown renders the raw ledger.
func RecordsMarkdown(companyID string, records []captable.InvestmentRecord) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Investment Records — %s", companyID))

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ID,
			r.Date.String(),
			r.InvestorName,
			string(r.InvestorType),
			string(r.RoundType),
			r.Amount.String(),
			r.EquityAllocated.String(),
			r.PostMoneyValuation.String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"ID", "Date", "Investor", "Type", "Round", "Amount", "Equity", "Post-money"},
		Rows:   rows,
	})

	return doc.String()
}
