package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/opencap/captable/renderer"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "roll up the ledger by funding category" }
func (*summaryCmd) Usage() string {
	return `cpt summary

  Shows total equity, debt and grant funding, the record count and the
  average equity allocated. Recomputed from the full ledger on every
  call.
`
}

func (p *summaryCmd) SetFlags(f *flag.FlagSet) {}

func (p *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeSvc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeSvc()

	summary, err := svc.Summary(ctx, companyID())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SummaryMarkdown(companyID(), summary))
	return subcommands.ExitSuccess
}
