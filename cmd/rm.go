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

type rmCmd struct {
	id string
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete an investment record" }
func (*rmCmd) Usage() string {
	return `cpt rm -id <record-id>

  Deletes the record and subtracts its amount from the company's total
  funding. The deletion stands even if the funding rollback fails; the
  rollback is then reported as a warning and retried later.
`
}

func (p *rmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.id, "id", "", "Id of the record to delete.")
}

func (p *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}
	svc, closeSvc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeSvc()

	err = svc.DeleteInvestmentRecord(ctx, companyID(), p.id)
	var warn *captable.DependentWarning
	if errors.As(err, &warn) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", warn)
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Deleted record %s\n", p.id)
	return subcommands.ExitSuccess
}
