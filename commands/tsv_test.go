package commands

import (
	"reflect"
	"strings"
	"testing"
)

func TestCharacterToTSV(t *testing.T) {
	expected := `Section	Name	Value
character	name	Valeros
stat	ac	21
stat	bab	5
stat	charisma	7
stat	cmb	9
stat	cmd	20
stat	constitution	14
stat	dexterity	13
stat	fortitude	7
stat	initiative	1
stat	intelligence	10
stat	level	5
stat	max_hp	47
stat	reflex	2
stat	strength	18
stat	touch_ac	12
stat	will	2
stat	wisdom	12
skill	Acrobatics	-1
skill	Climb	9
skill	Knowledge (Dungeoneering)	4
`

	var f strings.Builder

	if err := characterToTSV(&f, valeros(t)); err != nil {
		t.Fatalf("Unexpected error returned from characterToTSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %s\n   got:      %s\n", expected, f.String())
	}
}

func TestTSVToCharacter(t *testing.T) {
	sheet := valeros(t)

	var f strings.Builder
	if err := characterToTSV(&f, sheet); err != nil {
		t.Fatalf("Unexpected error returned from characterToTSV (%v)", err)
	}

	imported, err := tsvToCharacter(strings.NewReader(f.String()))
	if err != nil {
		t.Fatalf("Unexpected error returned from tsvToCharacter (%v)", err)
	}

	if !reflect.DeepEqual(imported, sheet) {
		t.Errorf("Incorrect character\n   expected: %+v\n   got:      %+v\n", sheet, imported)
	}

	if v, ok := imported.SkillValue("knowledge_dungeoneering"); !ok || v != 4 {
		t.Errorf("Incorrect skill - expected:%v, got:%v", 4, v)
	}
}

func TestTSVToCharacterWithInvalidFile(t *testing.T) {
	tests := []string{
		"",
		"Name\tValue\ncharacter\tValeros\n",
		"Section\tName\tValue\nspell\tfireball\t5\n",
		"Section\tName\tValue\nstat\tac\n",
	}

	for _, tsv := range tests {
		if _, err := tsvToCharacter(strings.NewReader(tsv)); err == nil {
			t.Errorf("Expected error for TSV %q", tsv)
		}
	}
}
