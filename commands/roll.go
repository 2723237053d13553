package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/uhppoted/pathfinder-sheets/dice"
)

var RollCmd = Roll{
	crit:   0,
	fumble: 0,
}

type Roll struct {
	crit    int
	fumble  int
	flagset *flag.FlagSet
}

func (cmd *Roll) Name() string {
	return "roll"
}

func (cmd *Roll) Description() string {
	return "Rolls dice in dice notation e.g. 3d6"
}

func (cmd *Roll) Usage() string {
	return "[--crit <n>] [--fumble <n>] <dice>..."
}

func (cmd *Roll) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] roll [--crit <n>] [--fumble <n>] <dice>...\n", APP)
	fmt.Println()
	fmt.Println("  Rolls each set of dice and prints the individual dice and the total. Dice rolling")
	fmt.Println("  at or above --crit are marked with a '!' and dice at or below --fumble with a '*'.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    pathfinder-sheets roll 3d6`)
	fmt.Println(`    pathfinder-sheets roll --crit 19 --fumble 1 d20 d20`)
	fmt.Println()
}

func (cmd *Roll) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("roll", flag.ExitOnError)

	flagset.IntVar(&cmd.crit, "crit", cmd.crit, "Critical threshold (0 for none)")
	flagset.IntVar(&cmd.fumble, "fumble", cmd.fumble, "Fumble threshold (0 for none)")

	cmd.flagset = flagset

	return flagset
}

func (cmd *Roll) Execute(args ...any) error {
	notations := []string{}
	if cmd.flagset != nil && cmd.flagset.Parsed() {
		notations = cmd.flagset.Args()
	}

	if len(notations) == 0 {
		notations = []string{dice.DefaultDice.String()}
	}

	roller, err := dice.NewRoller()
	if err != nil {
		return err
	}

	lines, err := cmd.roll(roller, notations)
	if err != nil {
		return err
	}

	fmt.Println(strings.Join(lines, "\n"))

	return nil
}

func (cmd *Roll) roll(roller *dice.Roller, notations []string) ([]string, error) {
	lines := []string{}

	for _, notation := range notations {
		spec, err := dice.ParseNotation(notation)
		if err != nil {
			return nil, err
		}

		if cmd.crit > 0 {
			spec.Crit = dice.Threshold(cmd.crit)
		}

		if cmd.fumble > 0 {
			spec.Fumble = dice.Threshold(cmd.fumble)
		}

		roll, err := roller.RollDice(spec)
		if err != nil {
			return nil, err
		}

		lines = append(lines, formatRoll(spec, roll))
	}

	return lines, nil
}
