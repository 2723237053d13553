package commands

import (
	"flag"
	"fmt"

	"github.com/uhppoted/pathfinder-sheets/dice"
)

var AverageCmd = Average{
	runs:  0,
	magic: 0,
	sneak: false,
}

type Average struct {
	runs  int
	magic int
	sneak bool
}

func (cmd *Average) Name() string {
	return "average"
}

func (cmd *Average) Description() string {
	return "Calculates the average damage over a number of runs"
}

func (cmd *Average) Usage() string {
	return "[--runs <runs>] [--magic <dice>] [--sneak]"
}

func (cmd *Average) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] average [--runs <runs>] [--magic <dice>] [--sneak]\n", APP)
	fmt.Println()
	fmt.Printf("  Rolls normal (or sneak attack) damage <runs> times (default %d) and prints the\n", dice.DefaultRuns)
	fmt.Println("  truncated mean of the total damage.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
}

func (cmd *Average) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("average", flag.ExitOnError)

	flagset.IntVar(&cmd.runs, "runs", cmd.runs, "Number of damage rolls to average (defaults to the configured number)")
	flagset.IntVar(&cmd.magic, "magic", cmd.magic, "Number of d6 magic damage dice (defaults to the configured number)")
	flagset.BoolVar(&cmd.sneak, "sneak", cmd.sneak, "Averages sneak attack damage")

	return flagset
}

func (cmd *Average) Execute(args ...any) error {
	options := args[0].(*Options)

	runs := cmd.runs
	if runs == 0 {
		runs = dice.DefaultRuns
		if options.Config != nil {
			runs = options.Config.Runs
		}
	}

	roller, err := dice.NewRoller()
	if err != nil {
		return err
	}

	avg, err := averageDamage(roller, runs, magicDice(cmd.magic, options), cmd.sneak)
	if err != nil {
		return err
	}

	fmt.Printf("average damage: %d (%d runs)\n", avg, runs)

	return nil
}
