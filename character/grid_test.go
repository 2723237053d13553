package character

import (
	"testing"

	"google.golang.org/api/sheets/v4"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		ref string
		row int
		col int
	}{
		{"A1", 0, 0},
		{"E14", 13, 4},
		{"Z1", 0, 25},
		{"AA1", 0, 26},
		{"AH16", 15, 33},
		{"$M$2", 1, 12},
		{"az60", 59, 51},
	}

	for _, test := range tests {
		row, col, err := ParseRef(test.ref)
		if err != nil {
			t.Fatalf("Unexpected error parsing '%v' (%v)", test.ref, err)
		}

		if row != test.row || col != test.col {
			t.Errorf("Incorrect cell for '%v' - expected:(%v,%v), got:(%v,%v)", test.ref, test.row, test.col, row, col)
		}
	}
}

func TestParseRefWithInvalidReference(t *testing.T) {
	for _, ref := range []string{"", "14", "E", "E0", "E-1", "1E"} {
		if _, _, err := ParseRef(ref); err == nil {
			t.Errorf("Expected error parsing '%v'", ref)
		}
	}
}

func TestRef(t *testing.T) {
	tests := map[string]struct{ row, col int }{
		"A1":   {0, 0},
		"Z1":   {0, 25},
		"AA1":  {0, 26},
		"AH16": {15, 33},
		"AN16": {15, 39},
		"AZ60": {59, 51},
		"BA3":  {2, 52},
	}

	for expected, cell := range tests {
		if ref := Ref(cell.row, cell.col); ref != expected {
			t.Errorf("Incorrect reference for (%v,%v) - expected:%v, got:%v", cell.row, cell.col, expected, ref)
		}
	}
}

func TestGridCell(t *testing.T) {
	grid := NewGrid([][]any{
		{"A1", "B1", nil, 14},
		{},
		{"A3"},
	})

	tests := map[string]string{
		"A1":  "A1",
		"B1":  "B1",
		"C1":  "",
		"D1":  "14",
		"E1":  "",
		"A2":  "",
		"A3":  "A3",
		"A4":  "",
		"ZZ9": "",
		"???": "",
	}

	for ref, expected := range tests {
		if v := grid.Cell(ref); v != expected {
			t.Errorf("Incorrect value for %v - expected:'%v', got:'%v'", ref, expected, v)
		}
	}
}

func TestFromValueRangeWithOffset(t *testing.T) {
	response := sheets.ValueRange{
		Range: "'Stats, Skills, Weapons'!C3:E4",
		Values: [][]any{
			{"C3", "D3"},
			{"C4", "D4", "E4"},
		},
	}

	grid, err := FromValueRange(&response)
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	tests := map[string]string{
		"A1": "",
		"C3": "C3",
		"D3": "D3",
		"E4": "E4",
		"B3": "",
	}

	for ref, expected := range tests {
		if v := grid.Cell(ref); v != expected {
			t.Errorf("Incorrect value for %v - expected:'%v', got:'%v'", ref, expected, v)
		}
	}
}

func TestFromValueRangeWithInvalidRange(t *testing.T) {
	if _, err := FromValueRange(&sheets.ValueRange{Range: "Sheet1!??"}); err == nil {
		t.Errorf("Expected error for invalid range")
	}

	if _, err := FromValueRange(nil); err == nil {
		t.Errorf("Expected error for nil response")
	}
}
