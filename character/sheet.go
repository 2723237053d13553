// Package character maps the fixed layout of a Pathfinder character sheet worksheet onto
// a Sheet of ability scores, defences, saving throws, combat stats and skills.
package character

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/uhppoted/pathfinder-sheets/dice"
)

// StatsSheet is the title of the worksheet holding the character statistics.
const StatsSheet = "Stats, Skills, Weapons"

// StatsRange is the block of the stats worksheet read in a single request.
const StatsRange = "'" + StatsSheet + "'!A1:AZ60"

// Skills are listed in a single column from SkillsStart, with the total bonus for each
// skill SkillsOffset columns to the right.
const (
	SkillsStart  = "AH16"
	SkillsRows   = 39
	SkillsOffset = 6
)

type stat struct {
	name string
	cell string
}

var stats = []stat{
	{"level", "V5"},

	{"strength", "E14"},
	{"dexterity", "E17"},
	{"constitution", "E20"},
	{"intelligence", "E23"},
	{"wisdom", "E26"},
	{"charisma", "E29"},

	{"max_hp", "U11"},
	{"ac", "E33"},
	{"touch_ac", "E36"},

	{"fortitude", "H40"},
	{"reflex", "H42"},
	{"will", "H44"},

	{"initiative", "W30"},
	{"bab", "L46"},
	{"cmb", "E50"},
	{"cmd", "E52"},
}

// Abilities lists the ability score stat names, in sheet order.
var Abilities = []string{"strength", "dexterity", "constitution", "intelligence", "wisdom", "charisma"}

// Skill is a named skill bonus.
type Skill struct {
	Name  string
	Value int
}

// Sheet is the character data read from the stats worksheet. HP is the current hit
// points, which start at max_hp and are tracked locally during a session.
type Sheet struct {
	Name   string
	Stats  map[string]int
	Skills []Skill
	HP     int

	skills map[string]int
}

var leadingInt = regexp.MustCompile(`^\s*([+-]?[0-9]+)`)

// Parse reads the character from the fixed stats and skills cells.
func Parse(cells CellReader) (*Sheet, error) {
	if cells == nil {
		return nil, fmt.Errorf("no character sheet data")
	}

	sheet := Sheet{
		Name:   strings.TrimSpace(cells.Cell("M2")),
		Stats:  map[string]int{},
		Skills: []Skill{},
		skills: map[string]int{},
	}

	for _, s := range stats {
		sheet.Stats[s.name] = toInt(cells.Cell(s.cell))
	}

	sheet.HP = sheet.Stats["max_hp"]

	row, col, err := ParseRef(SkillsStart)
	if err != nil {
		return nil, err
	}

	for r := row; r < row+SkillsRows; r++ {
		name := strings.TrimSpace(cells.Cell(Ref(r, col)))
		if name == "" {
			continue
		}

		value := toInt(cells.Cell(Ref(r, col+SkillsOffset)))
		key := normalise(name)
		if _, ok := sheet.skills[key]; ok {
			return nil, fmt.Errorf("duplicate skill '%s' at %s", name, Ref(r, col))
		}

		sheet.Skills = append(sheet.Skills, Skill{Name: name, Value: value})
		sheet.skills[key] = value
	}

	if sheet.Name == "" && len(sheet.Skills) == 0 {
		return nil, fmt.Errorf("worksheet does not look like a character sheet (no name or skills)")
	}

	return &sheet, nil
}

// Heal adjusts the current hit points by delta (negative for damage) and returns the new
// value. Hit points are not capped at max_hp and may go negative.
func (s *Sheet) Heal(delta int) int {
	s.HP += delta

	return s.HP
}

// SkillValue returns the bonus for the named skill. Case, spacing and punctuation are
// ignored, so "Knowledge (Arcana)" and "knowledge_arcana" are the same skill.
func (s *Sheet) SkillValue(name string) (int, bool) {
	v, ok := s.skills[normalise(name)]

	return v, ok
}

// Stat returns a named stat, e.g. "ac" or "bab".
func (s *Sheet) Stat(name string) (int, bool) {
	key := normalise(name)
	for k, v := range s.Stats {
		if normalise(k) == key {
			return v, true
		}
	}

	return 0, false
}

// Modifier returns the ability modifier for a named ability score.
func (s *Sheet) Modifier(ability string) (int, bool) {
	key := strings.ToLower(strings.TrimSpace(ability))
	for _, a := range Abilities {
		if a == key || a[:3] == key {
			return dice.AbilityModifier(s.Stats[a]), true
		}
	}

	return 0, false
}

// StatAt returns the name of the stat held in the cell at ref.
func StatAt(ref string) (string, bool) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	for _, s := range stats {
		if s.cell == ref {
			return s.name, true
		}
	}

	return "", false
}

// Lookup returns the check bonus for a name: a skill value, an ability modifier or a stat,
// in that order.
func (s *Sheet) Lookup(name string) (int, bool) {
	if v, ok := s.SkillValue(name); ok {
		return v, true
	}

	if v, ok := s.Modifier(name); ok {
		return v, true
	}

	return s.Stat(name)
}

// StatNames returns the stat names in sorted order.
func (s *Sheet) StatNames() []string {
	names := make([]string, 0, len(s.Stats))
	for k := range s.Stats {
		names = append(names, k)
	}

	sort.Strings(names)

	return names
}

func normalise(v string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(v) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}

	return b.String()
}

// toInt reads the leading integer of a cell value the way a spreadsheet user expects:
// "+5" is 5, "12 (temp)" is 12 and anything else is 0.
func toInt(v string) int {
	match := leadingInt.FindStringSubmatch(v)
	if len(match) < 2 {
		return 0
	}

	n, err := strconv.Atoi(strings.TrimPrefix(match[1], "+"))
	if err != nil {
		return 0
	}

	return n
}
