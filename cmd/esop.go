package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/opencap/captable"
	"github.com/opencap/captable/renderer"
)

type esopCmd struct {
	reserve int64
}

func (*esopCmd) Name() string     { return "esop" }
func (*esopCmd) Synopsis() string { return "show the ESOP pool or set its reserved shares" }
func (*esopCmd) Usage() string {
	return `cpt esop [-reserve <count>]

  Without -reserve, reports the pool: reserved shares, their value at the
  current price per share, and utilization against employee allocations.
  With -reserve, sets the reserved share count; a reserve above the total
  share count is rejected.
`
}

func (p *esopCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&p.reserve, "reserve", -1, "Number of shares to reserve for the pool.")
}

func (p *esopCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeSvc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeSvc()

	if p.reserve >= 0 {
		pool := captable.EsopPool{ReservedShares: p.reserve}
		if err := svc.UpsertEsopReservedShares(ctx, companyID(), pool); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Reserved %d shares for the ESOP pool\n", p.reserve)
		return subcommands.ExitSuccess
	}

	status, err := svc.EsopStatus(ctx, companyID())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.EsopMarkdown(companyID(), status))
	return subcommands.ExitSuccess
}
