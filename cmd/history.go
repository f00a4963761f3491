package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/opencap/captable/renderer"
)

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show the valuation history" }
func (*historyCmd) Usage() string {
	return `cpt history

  Shows post-money valuations in chronological order. Records sharing a
  date keep their insertion order.
`
}

func (p *historyCmd) SetFlags(f *flag.FlagSet) {}

func (p *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeSvc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeSvc()

	points, err := svc.History(ctx, companyID())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HistoryMarkdown(companyID(), points))
	return subcommands.ExitSuccess
}
