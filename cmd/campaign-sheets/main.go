package main

import (
	"flag"
	"fmt"
	"os"

	command "github.com/uhppoted/uhppoted-lib/command"

	"github.com/campaign-reporting/campaign-sheets/commands"
)

var cli = []command.Command{
	&commands.ServeCmd,
	&commands.GetCmd,
	&commands.AddCmd,
	&commands.ExportCmd,
	&commands.ChannelsCmd,
	&commands.VersionCmd,
}

var options = commands.Options{
	Debug: false,
}

var help = command.NewHelp(commands.APP, cli, nil)

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	cmd, err := command.Parse(cli, nil, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	if cmd == nil {
		help.Execute()
		os.Exit(1)
	}

	if err = cmd.Execute(&options); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
}
