package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/opencap/captable"
)

type foundersCmd struct {
	set string
}

func (*foundersCmd) Name() string     { return "founders" }
func (*foundersCmd) Synopsis() string { return "show or replace the company founders" }
func (*foundersCmd) Usage() string {
	return `cpt founders [-set "Ada Lovelace <ada@acme.io>, Grace Hopper <grace@acme.io>"]

  Without -set, lists the company founders. With -set, replaces the
  founder list wholesale; founder ids are not stable across calls.
  Founder equity is never stored: it is always derived as the residual
  of the investment ledger.
`
}

func (p *foundersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.set, "set", "", "Comma-separated founders, each as Name <email>.")
}

func (p *foundersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeSvc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeSvc()

	if p.set == "" {
		founders, err := svc.Founders(ctx, companyID())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		for _, founder := range founders {
			fmt.Printf("%s <%s>\n", founder.Name, founder.Email)
		}
		return subcommands.ExitSuccess
	}

	founders, err := parseFounders(p.set)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if err := svc.ReplaceFounders(ctx, companyID(), founders); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Replaced founders: %d set\n", len(founders))
	return subcommands.ExitSuccess
}

// parseFounders reads "Name <email>" entries separated by commas.
func parseFounders(s string) ([]captable.Founder, error) {
	var founders []captable.Founder
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		open := strings.Index(entry, "<")
		end := strings.Index(entry, ">")
		if open < 0 || end < open {
			return nil, fmt.Errorf("invalid founder %q, want \"Name <email>\"", entry)
		}
		founders = append(founders, captable.Founder{
			Name:  strings.TrimSpace(entry[:open]),
			Email: strings.TrimSpace(entry[open+1 : end]),
		})
	}
	return founders, nil
}
