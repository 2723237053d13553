package commands

import (
	"flag"
	"fmt"

	"github.com/uhppoted/pathfinder-sheets/dice"
)

var AttackCmd = Attack{
	bonus: 0,
	base:  dice.DefaultAttack,
}

type Attack struct {
	bonus int
	base  int
}

func (cmd *Attack) Name() string {
	return "attack"
}

func (cmd *Attack) Description() string {
	return "Rolls a d20 attack"
}

func (cmd *Attack) Usage() string {
	return "[--bonus <bonus>] [--base <base>]"
}

func (cmd *Attack) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] attack [--bonus <bonus>] [--base <base>]\n", APP)
	fmt.Println()
	fmt.Printf("  Rolls a d20 plus the base attack modifier (default %d) plus a situational bonus\n", dice.DefaultAttack)
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
}

func (cmd *Attack) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("attack", flag.ExitOnError)

	flagset.IntVar(&cmd.bonus, "bonus", cmd.bonus, "Situational attack bonus")
	flagset.IntVar(&cmd.base, "base", cmd.base, "Base attack modifier")

	return flagset
}

func (cmd *Attack) Execute(args ...any) error {
	roller, err := dice.NewRoller()
	if err != nil {
		return err
	}

	fmt.Println(formatCheck("attack", roller.AttackRoll(cmd.bonus, cmd.base)))

	return nil
}
