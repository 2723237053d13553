package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	uhppoted "github.com/uhppoted/uhppoted-lib/command"

	"github.com/uhppoted/pathfinder-sheets/commands"
	"github.com/uhppoted/pathfinder-sheets/config"
)

var cli = []uhppoted.Command{
	&commands.AuthoriseCmd,
	&commands.SheetCmd,
	&commands.ExportCmd,
	&commands.CheckCmd,
	&commands.AttackCmd,
	&commands.DamageCmd,
	&commands.AverageCmd,
	&commands.RollCmd,
	&commands.ConsoleCmd,
	&commands.VersionCmd,
}

var options = commands.Options{
	Debug: false,
}

var help = uhppoted.NewHelp(commands.APP, cli, nil)

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("\nError loading configuration: %v\n\n", err)
		os.Exit(1)
	}

	options.Config = conf

	cmd, err := uhppoted.Parse(cli, nil, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	if cmd == nil {
		help.Execute()
		os.Exit(1)
	}

	if err = cmd.Execute(&options); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}
