package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/uhppoted/pathfinder-sheets/character"
	"github.com/uhppoted/pathfinder-sheets/dice"
)

var ConsoleCmd = Console{
	command: command{},
	file:    "",
	offline: false,
}

type Console struct {
	command
	file    string
	offline bool
}

func (cmd *Console) Name() string {
	return "console"
}

func (cmd *Console) Description() string {
	return "Interactive console for skill checks, attack and damage rolls"
}

func (cmd *Console) Usage() string {
	return "[--url <url>] [--file <tsv>] [--offline]"
}

func (cmd *Console) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] console [options]\n", APP)
	fmt.Println()
	fmt.Println("  Loads the character sheet and starts an interactive console. Type 'help' in the")
	fmt.Println("  console for the list of console commands. With --file the character is loaded from")
	fmt.Println("  a TSV file created by 'export' instead of from Google Sheets.")
	fmt.Println()
	fmt.Println("  The console supports line editing and TAB completion, and keeps the command history")
	fmt.Printf("  in %s in the working directory. CTRL-C or CTRL-D exits the console.\n", HISTORY)
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
}

func (cmd *Console) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("console")

	flagset.StringVar(&cmd.file, "file", cmd.file, "Loads the character from an exported TSV file")
	flagset.BoolVar(&cmd.offline, "offline", cmd.offline, "Starts the console without loading the character sheet")

	return flagset
}

func (cmd *Console) Execute(args ...any) error {
	options := args[0].(*Options)
	conf := cmd.configure(options)

	var reload func() (*character.Sheet, error)
	switch {
	case cmd.offline:

	case cmd.file != "":
		reload = func() (*character.Sheet, error) {
			return loadTSV(cmd.file)
		}

	default:
		reload = func() (*character.Sheet, error) {
			ctx, cancel := interruptible()
			defer cancel()

			return cmd.character(ctx, conf)
		}
	}

	var sheet *character.Sheet
	if reload != nil {
		s, err := reload()
		if err != nil {
			return err
		}

		sheet = s
	}

	roller, err := dice.NewRoller()
	if err != nil {
		return err
	}

	c := console{
		sheet:  sheet,
		roller: roller,
		magic:  conf.MagicDice,
		runs:   conf.Runs,
		reload: reload,
	}

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(c.complete)

	history := filepath.Join(conf.Workdir, HISTORY)
	if f, err := os.Open(history); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	defer func() {
		if f, err := os.Create(history); err != nil {
			if cmd.debug {
				debugf("Unable to save console history (%v)", err)
			}
		} else {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	return c.run(context.Background(), line, os.Stdout)
}

func loadTSV(file string) (*character.Sheet, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	sheet, err := tsvToCharacter(f)
	if err != nil {
		return nil, fmt.Errorf("invalid character file %s (%v)", file, err)
	}

	return sheet, nil
}

// prompter reads console input a line at a time. *liner.State is the interactive implementation.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
}

type console struct {
	sheet  *character.Sheet
	roller *dice.Roller
	magic  int
	runs   int
	reload func() (*character.Sheet, error)
}

var consoleCommands = []string{
	"attack", "average", "check", "damage", "exit", "help", "hp", "modifier",
	"quit", "refresh", "roll", "sheet", "skills", "sneak",
}

const consoleHelp = `  check <skill|ability|stat> [bonus]  d20 check with the character sheet bonus
  attack [bonus] [base]               attack roll (base defaults to 14)
  damage [magic dice]                 normal damage
  sneak [magic dice]                  sneak attack damage
  average [normal|sneak] [runs]       average damage over a number of runs
  roll <dice>                         rolls dice in notation e.g. 3d6
  modifier <ability>                  ability modifier
  hp [+n|-n]                          shows or adjusts the current hit points
  skills                              lists the character skills
  sheet                               shows the character sheet
  refresh                             reloads the character sheet
  help                                this list
  quit                                exits the console
`

func (c *console) run(ctx context.Context, p prompter, out io.Writer) error {
	if c.sheet != nil {
		fmt.Fprintf(out, "%s (level %d)\n", c.sheet.Name, c.sheet.Stats["level"])
	}

	for {
		line, err := p.Prompt("> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(out)
			return nil
		} else if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return nil
		}

		if strings.TrimSpace(line) != "" {
			p.AppendHistory(line)
		}

		reply, quit, err := c.exec(line)
		if err != nil {
			fmt.Fprintf(out, "  ERROR: %v\n", err)
		} else if reply != "" {
			fmt.Fprintln(out, reply)
		}

		if quit {
			return nil
		}
	}
}

func (c *console) exec(line string) (string, bool, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return "", false, nil
	}

	cmd := strings.ToLower(tokens[0])
	args := tokens[1:]

	switch cmd {
	case "quit", "exit", "q":
		return "", true, nil

	case "help", "?":
		return consoleHelp, false, nil

	case "check":
		return c.check(args)

	case "attack":
		return c.attack(args)

	case "damage":
		return c.damage(args, false)

	case "sneak":
		return c.damage(args, true)

	case "average":
		return c.average(args)

	case "roll":
		return c.roll(args)

	case "modifier", "mod":
		return c.modifier(args)

	case "skills":
		return c.skills()

	case "hp":
		return c.hp(args)

	case "refresh":
		return c.refresh()

	case "sheet":
		if c.sheet == nil {
			return "", false, fmt.Errorf("no character sheet loaded")
		}

		return formatSheet(c.sheet), false, nil
	}

	// 'climb' is shorthand for 'check climb'
	if c.sheet != nil {
		if _, ok := c.sheet.Lookup(strings.Join(tokens, " ")); ok {
			return c.check(tokens)
		}
	}

	return "", false, fmt.Errorf("unknown command '%s' - type 'help' for the list of commands", tokens[0])
}

func (c *console) check(args []string) (string, bool, error) {
	if c.sheet == nil {
		return "", false, fmt.Errorf("no character sheet loaded")
	}

	if len(args) == 0 {
		return "", false, fmt.Errorf("missing skill e.g. 'check perception'")
	}

	bonus := 0
	name := strings.Join(args, " ")
	if len(args) > 1 {
		if v, err := strconv.Atoi(args[len(args)-1]); err == nil {
			bonus = v
			name = strings.Join(args[:len(args)-1], " ")
		}
	}

	value, ok := c.sheet.Lookup(name)
	if !ok {
		return "", false, fmt.Errorf("unknown skill '%s'", name)
	}

	return formatCheck(name, c.roller.Check(value+bonus)), false, nil
}

func (c *console) attack(args []string) (string, bool, error) {
	ints, err := integers(args)
	if err != nil {
		return "", false, err
	}

	bonus := 0
	base := dice.DefaultAttack

	if len(ints) > 0 {
		bonus = ints[0]
	}

	if len(ints) > 1 {
		base = ints[1]
	}

	return formatCheck("attack", c.roller.AttackRoll(bonus, base)), false, nil
}

func (c *console) damage(args []string, sneak bool) (string, bool, error) {
	magic, err := c.magicDice(args)
	if err != nil {
		return "", false, err
	}

	var damage dice.Damage
	if sneak {
		damage, err = c.roller.SneakAttackDamage(magic)
	} else {
		damage, err = c.roller.NormalDamage(magic)
	}

	if err != nil {
		return "", false, err
	}

	return formatDamage(damage), false, nil
}

func (c *console) average(args []string) (string, bool, error) {
	sneak := false
	runs := c.runs

	for _, arg := range args {
		switch strings.ToLower(arg) {
		case "sneak":
			sneak = true
		case "normal":
			sneak = false
		default:
			v, err := strconv.Atoi(arg)
			if err != nil {
				return "", false, fmt.Errorf("invalid number of runs '%s'", arg)
			}
			runs = v
		}
	}

	avg, err := averageDamage(c.roller, runs, c.magic, sneak)
	if err != nil {
		return "", false, err
	}

	return fmt.Sprintf("average damage: %d (%d runs)", avg, runs), false, nil
}

func (c *console) roll(args []string) (string, bool, error) {
	notation := "d6"
	if len(args) > 0 {
		notation = strings.Join(args, "")
	}

	spec, err := dice.ParseNotation(notation)
	if err != nil {
		return "", false, err
	}

	roll, err := c.roller.RollDice(spec)
	if err != nil {
		return "", false, err
	}

	return formatRoll(spec, roll), false, nil
}

func (c *console) modifier(args []string) (string, bool, error) {
	if c.sheet == nil {
		return "", false, fmt.Errorf("no character sheet loaded")
	}

	if len(args) != 1 {
		return "", false, fmt.Errorf("missing ability e.g. 'modifier str'")
	}

	v, ok := c.sheet.Modifier(args[0])
	if !ok {
		return "", false, fmt.Errorf("unknown ability '%s'", args[0])
	}

	return fmt.Sprintf("%s: %+d", args[0], v), false, nil
}

func (c *console) skills() (string, bool, error) {
	if c.sheet == nil {
		return "", false, fmt.Errorf("no character sheet loaded")
	}

	var b strings.Builder
	for _, skill := range c.sheet.Skills {
		fmt.Fprintf(&b, "  %-28s %+3d\n", skill.Name, skill.Value)
	}

	return strings.TrimSuffix(b.String(), "\n"), false, nil
}

func (c *console) hp(args []string) (string, bool, error) {
	if c.sheet == nil {
		return "", false, fmt.Errorf("no character sheet loaded")
	}

	if len(args) > 1 {
		return "", false, fmt.Errorf("too many arguments e.g. 'hp -5'")
	}

	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return "", false, fmt.Errorf("invalid hit points '%s'", args[0])
		}

		c.sheet.Heal(v)
	}

	return fmt.Sprintf("hp: %d/%d", c.sheet.HP, c.sheet.Stats["max_hp"]), false, nil
}

// refresh replaces the sheet with a freshly loaded copy, keeping the current hit points.
func (c *console) refresh() (string, bool, error) {
	if c.reload == nil {
		return "", false, fmt.Errorf("no character sheet to refresh")
	}

	sheet, err := c.reload()
	if err != nil {
		return "", false, fmt.Errorf("unable to refresh character sheet (%v)", err)
	}

	if c.sheet != nil {
		sheet.HP = c.sheet.HP
	}

	c.sheet = sheet

	return fmt.Sprintf("%s (level %d) refreshed", sheet.Name, sheet.Stats["level"]), false, nil
}

func (c *console) complete(line string) []string {
	prefix := strings.ToLower(strings.TrimLeft(line, " "))
	list := []string{}

	for _, cmd := range consoleCommands {
		if strings.HasPrefix(cmd, prefix) {
			list = append(list, cmd)
		}
	}

	if c.sheet != nil {
		for _, skill := range c.sheet.Skills {
			if name := strings.ToLower(skill.Name); strings.HasPrefix(name, prefix) {
				list = append(list, name)
			}
		}
	}

	return list
}

func (c *console) magicDice(args []string) (int, error) {
	if len(args) == 0 {
		return c.magic, nil
	}

	v, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid number of magic dice '%s'", args[0])
	}

	return v, nil
}

func averageDamage(roller *dice.Roller, runs, magic int, sneak bool) (int, error) {
	var failed error

	avg, err := dice.Average(runs, func() any {
		var damage dice.Damage
		var err error

		if sneak {
			damage, err = roller.SneakAttackDamage(magic)
		} else {
			damage, err = roller.NormalDamage(magic)
		}

		if err != nil {
			failed = err
		}

		return damage
	})

	if err != nil {
		return 0, err
	} else if failed != nil {
		return 0, failed
	}

	return avg, nil
}

func integers(args []string) ([]int, error) {
	list := []int{}
	for _, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid number '%s'", arg)
		}

		list = append(list, v)
	}

	return list, nil
}
