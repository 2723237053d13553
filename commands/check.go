package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/uhppoted/pathfinder-sheets/dice"
)

var CheckCmd = Check{
	command: command{},
	skill:   "",
	bonus:   0,
}

type Check struct {
	command
	skill string
	bonus int
}

func (cmd *Check) Name() string {
	return "check"
}

func (cmd *Check) Description() string {
	return "Rolls a d20 skill check, ability check or saving throw using the character sheet bonus"
}

func (cmd *Check) Usage() string {
	return "--skill <skill> [--bonus <bonus>]"
}

func (cmd *Check) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] check [options] --skill <skill>\n", APP)
	fmt.Println()
	fmt.Println("  Rolls a d20 and adds the skill, ability modifier or stat from the character sheet plus")
	fmt.Println("  any situational bonus. A natural 19 or 20 is flagged as a critical and a natural 1 as")
	fmt.Println("  a fumble.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    pathfinder-sheets check --skill "knowledge (arcana)" --bonus 2`)
	fmt.Println(`    pathfinder-sheets check --skill fortitude`)
	fmt.Println()
}

func (cmd *Check) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("check")

	flagset.StringVar(&cmd.skill, "skill", cmd.skill, "Skill, ability or stat e.g. 'perception', 'str', 'will'")
	flagset.IntVar(&cmd.bonus, "bonus", cmd.bonus, "Situational bonus added to the check")

	return flagset
}

func (cmd *Check) Execute(args ...any) error {
	options := args[0].(*Options)
	conf := cmd.configure(options)

	if strings.TrimSpace(cmd.skill) == "" {
		return fmt.Errorf("--skill is a required option")
	}

	ctx, cancel := interruptible()
	defer cancel()

	sheet, err := cmd.character(ctx, conf)
	if err != nil {
		return err
	}

	value, ok := sheet.Lookup(cmd.skill)
	if !ok {
		return fmt.Errorf("unknown skill '%s'", cmd.skill)
	}

	roller, err := dice.NewRoller()
	if err != nil {
		return err
	}

	fmt.Println(formatCheck(cmd.skill, roller.Check(value+cmd.bonus)))

	return nil
}
