package commands

import (
	"flag"
	"fmt"

	"github.com/uhppoted/pathfinder-sheets/dice"
)

var DamageCmd = Damage{
	magic: 0,
	sneak: false,
}

type Damage struct {
	magic int
	sneak bool
}

func (cmd *Damage) Name() string {
	return "damage"
}

func (cmd *Damage) Description() string {
	return "Rolls normal or sneak attack damage"
}

func (cmd *Damage) Usage() string {
	return "[--magic <dice>] [--sneak]"
}

func (cmd *Damage) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] damage [--magic <dice>] [--sneak]\n", APP)
	fmt.Println()
	fmt.Println("  Rolls <dice>d6+2 magic damage and 1d4+2 physical damage, plus 5d6 sneak attack")
	fmt.Println("  damage with --sneak. Each damage type is reported separately.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
}

func (cmd *Damage) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("damage", flag.ExitOnError)

	flagset.IntVar(&cmd.magic, "magic", cmd.magic, "Number of d6 magic damage dice (defaults to the configured number)")
	flagset.BoolVar(&cmd.sneak, "sneak", cmd.sneak, "Adds sneak attack damage")

	return flagset
}

func (cmd *Damage) Execute(args ...any) error {
	options := args[0].(*Options)

	roller, err := dice.NewRoller()
	if err != nil {
		return err
	}

	var damage dice.Damage
	magic := magicDice(cmd.magic, options)

	if cmd.sneak {
		damage, err = roller.SneakAttackDamage(magic)
	} else {
		damage, err = roller.NormalDamage(magic)
	}

	if err != nil {
		return err
	}

	fmt.Println(formatDamage(damage))

	return nil
}

func magicDice(n int, options *Options) int {
	if n != 0 {
		return n
	}

	if options != nil && options.Config != nil {
		return options.Config.MagicDice
	}

	return dice.DefaultMagicDice
}
