package character

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/api/sheets/v4"
)

// CellReader returns the string value of a cell given its A1 reference, e.g. "E14".
// Empty and out of range cells read as "".
type CellReader interface {
	Cell(ref string) string
}

// Grid is a rectangular block of worksheet values anchored at a row and column offset.
type Grid struct {
	row    int
	col    int
	values [][]string
}

var a1 = regexp.MustCompile(`^\$?([A-Za-z]+)\$?([0-9]+)$`)

// NewGrid returns a Grid for values whose first cell is A1.
func NewGrid(values [][]any) *Grid {
	g := Grid{
		values: make([][]string, len(values)),
	}

	for i, row := range values {
		g.values[i] = make([]string, len(row))
		for j, v := range row {
			if v != nil {
				g.values[i][j] = fmt.Sprintf("%v", v)
			}
		}
	}

	return &g
}

// FromValueRange returns a Grid for a Sheets API response, anchored at the first cell of
// the response range.
func FromValueRange(response *sheets.ValueRange) (*Grid, error) {
	if response == nil {
		return nil, fmt.Errorf("no data in spreadsheet/range")
	}

	g := NewGrid(response.Values)

	if area := strings.TrimSpace(response.Range); area != "" {
		if ix := strings.LastIndex(area, "!"); ix >= 0 {
			area = area[ix+1:]
		}

		origin, _, _ := strings.Cut(area, ":")
		if row, col, err := ParseRef(origin); err != nil {
			return nil, fmt.Errorf("invalid range '%s' (%v)", response.Range, err)
		} else {
			g.row = row
			g.col = col
		}
	}

	return g, nil
}

// Cell returns the value of the cell at ref.
func (g *Grid) Cell(ref string) string {
	row, col, err := ParseRef(ref)
	if err != nil {
		return ""
	}

	row -= g.row
	col -= g.col

	if row < 0 || row >= len(g.values) {
		return ""
	}

	if col < 0 || col >= len(g.values[row]) {
		return ""
	}

	return g.values[row][col]
}

// ParseRef converts an A1 reference to zero-based row and column indices.
func ParseRef(ref string) (row int, col int, err error) {
	match := a1.FindStringSubmatch(strings.TrimSpace(ref))
	if len(match) < 3 {
		return 0, 0, fmt.Errorf("invalid cell reference '%s'", ref)
	}

	for _, c := range strings.ToUpper(match[1]) {
		col = col*26 + int(c-'A') + 1
	}

	r, err := strconv.Atoi(match[2])
	if err != nil || r < 1 {
		return 0, 0, fmt.Errorf("invalid cell reference '%s'", ref)
	}

	return r - 1, col - 1, nil
}

// Ref converts zero-based row and column indices to an A1 reference.
func Ref(row, col int) string {
	name := ""
	for col++; col > 0; col = (col - 1) / 26 {
		name = string(rune('A'+(col-1)%26)) + name
	}

	return fmt.Sprintf("%s%d", name, row+1)
}
