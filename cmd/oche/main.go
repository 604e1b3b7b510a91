package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Serve    ServeCmd         `cmd:"" help:"Run the match server"`
	Simulate SimulateCmd      `cmd:"" help:"Play out a bot match locally"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("oche"),
		kong.Description("Darts scoring engine and match server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
