package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/uhppoted/pathfinder-sheets/character"
)

// characterToTSV writes the character as 'section, name, value' records, with the stats in
// sheet order followed by the skills.
func characterToTSV(f io.Writer, sheet *character.Sheet) error {
	if sheet == nil {
		return fmt.Errorf("no character sheet")
	}

	records := [][]string{
		{"Section", "Name", "Value"},
		{"character", "name", clean(sheet.Name)},
	}

	for _, k := range sheet.StatNames() {
		records = append(records, []string{"stat", k, fmt.Sprintf("%d", sheet.Stats[k])})
	}

	for _, skill := range sheet.Skills {
		records = append(records, []string{"skill", clean(skill.Name), fmt.Sprintf("%d", skill.Value)})
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

// tsvToCharacter reads a file written by characterToTSV back into a character sheet.
func tsvToCharacter(f io.Reader) (*character.Sheet, error) {
	r := csv.NewReader(f)
	r.Comma = '\t'

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("TSV file is empty")
	}

	if len(records[0]) != 3 || normalise(records[0][0]) != "section" {
		return nil, fmt.Errorf("TSV file missing header")
	}

	name := ""
	stats := map[string]string{}
	skills := [][2]string{}

	for i, record := range records[1:] {
		if len(record) != 3 {
			return nil, fmt.Errorf("invalid record at line %d", i+2)
		}

		switch normalise(record[0]) {
		case "character":
			name = record[2]
		case "stat":
			stats[record[1]] = record[2]
		case "skill":
			skills = append(skills, [2]string{record[1], record[2]})
		default:
			return nil, fmt.Errorf("invalid section '%s' at line %d", record[0], i+2)
		}
	}

	return character.Parse(exported{name, stats, skills})
}

// exported maps the records of an exported TSV file back onto the character sheet cells.
type exported struct {
	name   string
	stats  map[string]string
	skills [][2]string
}

func (e exported) Cell(ref string) string {
	if ref == "M2" {
		return e.name
	}

	if stat, ok := character.StatAt(ref); ok {
		return e.stats[stat]
	}

	row, col, err := character.ParseRef(ref)
	if err != nil {
		return ""
	}

	start, column, _ := character.ParseRef(character.SkillsStart)
	if ix := row - start; ix >= 0 && ix < len(e.skills) {
		switch col {
		case column:
			return e.skills[ix][0]
		case column + character.SkillsOffset:
			return e.skills[ix][1]
		}
	}

	return ""
}

func normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(v, " ", ""))
}

func clean(v string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(v, "\t", " "), "\n", " "))
}
