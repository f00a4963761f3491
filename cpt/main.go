package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/opencap/captable/cmd"
	"github.com/posener/complete/v2"
)

func main() {
	// Shell completion: a no-op unless invoked by the completion hook.
	completion := &complete.Command{
		Sub: map[string]*complete.Command{
			"add": {}, "rm": {}, "records": {},
			"founders": {}, "shares": {}, "esop": {}, "round": {},
			"summary": {}, "captable": {}, "history": {},
		},
	}
	completion.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
