package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/opencap/captable"
)

type sharesCmd struct {
	total int64
}

func (*sharesCmd) Name() string     { return "shares" }
func (*sharesCmd) Synopsis() string { return "set the company's total share count" }
func (*sharesCmd) Usage() string {
	return `cpt shares -total <count>

  Sets the total number of shares. The price per share is derived from
  the latest valuation on every read, never stored. Shrinking the total
  below the reserved ESOP shares is accepted here; the guard applies
  when the reserve itself is edited.
`
}

func (p *sharesCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&p.total, "total", -1, "Total number of shares.")
}

func (p *sharesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.total < 0 {
		fmt.Fprintln(os.Stderr, "Error: -total is required.")
		return subcommands.ExitUsageError
	}
	svc, closeSvc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeSvc()

	cfg := captable.ShareConfiguration{TotalShares: p.total}
	if err := svc.UpsertShareConfiguration(ctx, companyID(), cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Total shares set to %d\n", p.total)
	return subcommands.ExitSuccess
}
