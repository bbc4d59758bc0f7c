// Command gt tracks a brokerage portfolio from its CSV exports.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/KoenM-bit/my-giro-tracker/cmd"
)

// completion describes the command tree for shell completion. Running the
// binary through the completion hook exits before main proceeds.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"db": predict.Files("*.db"),
	},
	Sub: map[string]*complete.Command{
		"import": {Flags: map[string]complete.Predictor{
			"tx":   predict.Files("*.csv"),
			"cash": predict.Files("*.csv"),
		}},
		"fetch":     {},
		"set-price": {},
		"holdings":  {},
		"history":   {},
		"monthly":   {},
		"yearly":    {},
		"ytd":       {},
		"topic":     {Args: predict.Set{"import", "accounting", "prices", "reports", "*"}},
	},
}

func main() {
	completion.Complete("gt")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
