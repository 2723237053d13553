package commands

import (
	"fmt"
	"strings"

	"github.com/uhppoted/pathfinder-sheets/character"
	"github.com/uhppoted/pathfinder-sheets/dice"
)

func formatCheck(label string, check dice.Check) string {
	s := fmt.Sprintf("%s: %d (d20:%d %+d)", label, check.Total, check.Natural(), check.Bonus)

	switch {
	case check.Roll.Critical():
		s += "  CRITICAL"
	case check.Roll.Fumble():
		s += "  FUMBLE"
	}

	return s
}

func formatDamage(damage dice.Damage) string {
	if damage.Sneak > 0 {
		return fmt.Sprintf("damage: %d (magic:%d physical:%d sneak:%d)", damage.Sum(), damage.Magic, damage.Physical, damage.Sneak)
	}

	return fmt.Sprintf("damage: %d (magic:%d physical:%d)", damage.Sum(), damage.Magic, damage.Physical)
}

func formatRoll(spec dice.DiceSpec, roll dice.RollResult) string {
	values := []string{}
	for _, d := range roll.Dice {
		v := fmt.Sprintf("%d", d.Value)
		switch {
		case d.Critical:
			v += "!"
		case d.Fumble:
			v += "*"
		}

		values = append(values, v)
	}

	return fmt.Sprintf("%v: %d [%s]", spec, roll.Sum(), strings.Join(values, " "))
}

func formatSheet(sheet *character.Sheet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (level %d)\n", sheet.Name, sheet.Stats["level"])
	fmt.Fprintln(&b)

	for _, a := range character.Abilities {
		modifier, _ := sheet.Modifier(a)
		fmt.Fprintf(&b, "  %-13s %3d  (%+d)\n", a, sheet.Stats[a], modifier)
	}

	fmt.Fprintln(&b)
	for _, k := range []string{"max_hp", "ac", "touch_ac", "fortitude", "reflex", "will", "initiative", "bab", "cmb", "cmd"} {
		fmt.Fprintf(&b, "  %-13s %3d\n", k, sheet.Stats[k])
	}

	if len(sheet.Skills) > 0 {
		fmt.Fprintln(&b)
		for _, skill := range sheet.Skills {
			fmt.Fprintf(&b, "  %-28s %+3d\n", skill.Name, skill.Value)
		}
	}

	return b.String()
}
