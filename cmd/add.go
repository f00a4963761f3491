package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/opencap/captable"
)

type addCmd struct {
	date      string
	investor  string
	investorT string
	round     string
	code      string
	amount    float64
	currency  string
	equity    float64
	valuation float64
	proof     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new investment in the ledger" }
func (*addCmd) Usage() string {
	return `cpt add -investor <name> -type <investor-type> -round <equity|debt|grant> -amount <value> -equity <percent> [-d <date>] [-valuation <value>] [-proof <file>]

  Validates and appends an investment record. The post-money valuation is
  derived from amount and equity when not supplied, and stored as-is
  otherwise. A proof document, when given, is uploaded before the record
  is inserted; if the upload fails nothing is written.
`
}

func (p *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Date of the investment (YYYY-MM-DD). Defaults to today.")
	f.StringVar(&p.investor, "investor", "", "Investor name.")
	f.StringVar(&p.investorT, "type", "angel", "Investor type (angel, vc, corporate, family-office, accelerator, other).")
	f.StringVar(&p.round, "round", "equity", "Round type (equity, debt, grant).")
	f.StringVar(&p.code, "code", "", "Optional external investor code.")
	f.Float64Var(&p.amount, "amount", 0, "Invested amount.")
	f.StringVar(&p.currency, "currency", "USD", "Currency of the amount.")
	f.Float64Var(&p.equity, "equity", 0, "Equity allocated, in percent.")
	f.Float64Var(&p.valuation, "valuation", 0, "Post-money valuation. Derived when omitted.")
	f.StringVar(&p.proof, "proof", "", "Path to a proof document to upload.")
}

func (p *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeSvc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeSvc()

	day := captable.Today()
	if p.date != "" {
		if day, err = captable.ParseDate(p.date); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	draft := captable.InvestmentRecord{
		Date:            day,
		InvestorType:    captable.InvestorType(p.investorT),
		RoundType:       captable.RoundType(p.round),
		InvestorName:    p.investor,
		InvestorCode:    p.code,
		Amount:          captable.M(p.amount, p.currency),
		EquityAllocated: captable.Percent(p.equity),
	}
	if p.valuation > 0 {
		draft.PostMoneyValuation = captable.M(p.valuation, p.currency)
	}

	var proof *captable.ProofDocument
	if p.proof != "" {
		file, err := os.Open(p.proof)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening proof document: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		proof = &captable.ProofDocument{Name: p.proof, Content: file}
	}

	rec, err := svc.AddInvestmentRecord(ctx, companyID(), draft, proof)
	var warn *captable.DependentWarning
	if errors.As(err, &warn) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", warn)
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded investment %s: %s at %s post-money\n",
		rec.ID, rec.Amount, rec.PostMoneyValuation)
	return subcommands.ExitSuccess
}
