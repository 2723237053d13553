package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var notation = regexp.MustCompile(`^([0-9]*)[dD]([0-9]+)$`)

// ParseNotation parses dice notation such as "2d6" or "d20". A missing count is 1 and
// counts above MaxDice are rejected.
func ParseNotation(s string) (DiceSpec, error) {
	match := notation.FindStringSubmatch(strings.TrimSpace(s))
	if len(match) < 3 {
		return DiceSpec{}, fmt.Errorf("invalid dice notation '%s' - expected something like '2d6'", s)
	}

	count := 1
	if match[1] != "" {
		if v, err := strconv.Atoi(match[1]); err != nil {
			return DiceSpec{}, fmt.Errorf("%w: invalid dice count '%s'", ErrInvalidDiceSpec, match[1])
		} else {
			count = v
		}
	}

	sides, err := strconv.Atoi(match[2])
	if err != nil {
		return DiceSpec{}, fmt.Errorf("invalid dice sides '%s' (%v)", match[2], err)
	}

	if count <= 0 || count > MaxDice || sides < 1 {
		return DiceSpec{}, fmt.Errorf("%w: %s", ErrInvalidDiceSpec, s)
	}

	return DiceSpec{Count: count, Sides: sides}, nil
}

// String formats the spec in dice notation.
func (s DiceSpec) String() string {
	return fmt.Sprintf("%dd%d", s.Count, s.Sides)
}
