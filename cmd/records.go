package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/opencap/captable/renderer"
)

type recordsCmd struct{}

func (*recordsCmd) Name() string     { return "records" }
func (*recordsCmd) Synopsis() string { return "list all investment records in the ledger" }
func (*recordsCmd) Usage() string {
	return `cpt records

  Lists the company's investment records in insertion order.
`
}

func (p *recordsCmd) SetFlags(f *flag.FlagSet) {}

func (p *recordsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeSvc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeSvc()

	records, err := svc.Records(ctx, companyID())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RecordsMarkdown(companyID(), records))
	return subcommands.ExitSuccess
}
