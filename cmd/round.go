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

type roundCmd struct {
	roundType string
	value     float64
	currency  string
	equity    float64
	active    bool
	validate  bool
}

func (*roundCmd) Name() string     { return "round" }
func (*roundCmd) Synopsis() string { return "show or set the company's fundraising round" }
func (*roundCmd) Usage() string {
	return `cpt round [-type <equity|debt|grant> -value <target> -equity <percent> [-active] [-validate]]

  Without flags, shows the current round. With flags, upserts it: one
  round per company, the last write replaces. The -validate flag asks
  the external validation workflow for a request; clearing it withdraws
  one. A failure there never rolls back the round save.
`
}

func (p *roundCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.roundType, "type", "", "Round type (equity, debt, grant).")
	f.Float64Var(&p.value, "value", 0, "Target value of the round.")
	f.StringVar(&p.currency, "currency", "USD", "Currency of the target value.")
	f.Float64Var(&p.equity, "equity", 0, "Target equity, in percent.")
	f.BoolVar(&p.active, "active", false, "Mark the round active.")
	f.BoolVar(&p.validate, "validate", false, "Request external validation of the round.")
}

func (p *roundCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeSvc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeSvc()

	if p.roundType == "" {
		round, ok, err := svc.Round(ctx, companyID())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if !ok {
			fmt.Println("No fundraising round configured.")
			return subcommands.ExitSuccess
		}
		state := "inactive"
		if round.Active {
			state = "active"
		}
		fmt.Printf("%s round (%s): %s for %s, validation requested: %t\n",
			round.Type, state, round.TargetValue, round.TargetEquity, round.ValidationRequested)
		return subcommands.ExitSuccess
	}

	round := captable.FundraisingRound{
		Active:              p.active,
		Type:                captable.RoundType(p.roundType),
		TargetValue:         captable.M(p.value, p.currency),
		TargetEquity:        captable.Percent(p.equity),
		ValidationRequested: p.validate,
	}
	err = svc.SetFundraisingRound(ctx, companyID(), round)
	var warn *captable.DependentWarning
	if errors.As(err, &warn) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", warn)
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println("Fundraising round saved.")
	return subcommands.ExitSuccess
}
