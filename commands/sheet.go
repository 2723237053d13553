package commands

import (
	"flag"
	"fmt"
)

var SheetCmd = Sheet{
	command: command{},
}

type Sheet struct {
	command
}

func (cmd *Sheet) Name() string {
	return "sheet"
}

func (cmd *Sheet) Description() string {
	return "Retrieves and displays the character sheet"
}

func (cmd *Sheet) Usage() string {
	return "[--url <url>]"
}

func (cmd *Sheet) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] sheet [options]\n", APP)
	fmt.Println()
	fmt.Println("  Retrieves the ability scores, defences, saving throws, combat stats and skills from")
	fmt.Println("  the 'Stats, Skills, Weapons' worksheet of the character sheet")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    pathfinder-sheets --debug sheet --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"`)
	fmt.Println()
}

func (cmd *Sheet) FlagSet() *flag.FlagSet {
	return cmd.flagset("sheet")
}

func (cmd *Sheet) Execute(args ...any) error {
	options := args[0].(*Options)
	conf := cmd.configure(options)

	ctx, cancel := interruptible()
	defer cancel()

	sheet, err := cmd.character(ctx, conf)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(formatSheet(sheet))
	fmt.Println()

	return nil
}
