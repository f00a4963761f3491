package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/opencap/captable/renderer"
)

type captableCmd struct{}

func (*captableCmd) Name() string     { return "captable" }
func (*captableCmd) Synopsis() string { return "show the derived cap table" }
func (*captableCmd) Usage() string {
	return `cpt captable

  Shows the current post-money valuation, price per share, total funding
  and the equity distribution among investors and founders. Founder
  equity is the residual of the ledger, floored at zero.
`
}

func (p *captableCmd) SetFlags(f *flag.FlagSet) {}

func (p *captableCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeSvc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeSvc()

	table, err := svc.CapTable(ctx, companyID())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.CapTableMarkdown(companyID(), table))
	return subcommands.ExitSuccess
}
