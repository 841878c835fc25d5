package main

import (
	"github.com/alecthomas/kong"
)

var version = "dev"

// CLI is blaseplay's top-level command tree: one subcommand today, shaped
// to grow the way the teacher's pokerforbots CLI did (one struct field per
// verb, each owning its own flags and Run method).
type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Replay  ReplayCmd        `cmd:"" help:"Replay a fragment and cross-check against a reference draw stream"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blaseplay"),
		kong.Description("Deterministic replay engine for the simulated-baseball PRNG draw stream"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
