// Package dice implements the dice rolling helpers used at the table: plain rolls,
// skill checks, attack rolls, damage rolls and damage averages.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
)

// MaxDice is the most dice a single roll may request.
const MaxDice = 1000

// ErrInvalidDiceSpec indicates a dice specification with a non-positive count or sides, or
// with more than MaxDice dice.
var ErrInvalidDiceSpec = errors.New("dice must have a count between 1 and 1000 and at least one side")

// ErrInvalidRuns indicates an average was requested over fewer than one run.
var ErrInvalidRuns = errors.New("runs must be at least 1")

// Source is the random number source used by a Roller. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// DiceSpec describes how many dice to roll, how many sides they have and the optional
// thresholds at which a die is flagged as a critical or a fumble.
type DiceSpec struct {
	Count  int
	Sides  int
	Crit   *int
	Fumble *int
}

// DefaultDice is a single six-sided die.
var DefaultDice = DiceSpec{Count: 1, Sides: 6}

// Die is a single die outcome.
type Die struct {
	Value    int
	Critical bool
	Fumble   bool
}

// RollResult holds the individual outcomes of a roll, in the order they were rolled.
type RollResult struct {
	Sides int
	Dice  []Die
}

// Values returns the face values of the roll.
func (r RollResult) Values() []int {
	values := make([]int, 0, len(r.Dice))
	for _, d := range r.Dice {
		values = append(values, d.Value)
	}

	return values
}

// Sum returns the total of all the dice in the roll.
func (r RollResult) Sum() int {
	total := 0
	for _, d := range r.Dice {
		total += d.Value
	}

	return total
}

// Critical returns true if any die in the roll was flagged as a critical.
func (r RollResult) Critical() bool {
	for _, d := range r.Dice {
		if d.Critical {
			return true
		}
	}

	return false
}

// Fumble returns true if any die in the roll was flagged as a fumble.
func (r RollResult) Fumble() bool {
	for _, d := range r.Dice {
		if d.Fumble {
			return true
		}
	}

	return false
}

// Roller rolls dice from a single random source. A Roller is not safe for concurrent use.
type Roller struct {
	src Source
}

// New returns a Roller drawing from src.
func New(src Source) *Roller {
	return &Roller{src: src}
}

// NewSeededRoller returns a deterministic Roller for the seed.
func NewSeededRoller(seed int64) *Roller {
	return New(rand.New(rand.NewSource(seed)))
}

// NewRoller returns a Roller seeded from crypto/rand.
func NewRoller() (*Roller, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}

	return NewSeededRoller(int64(binary.LittleEndian.Uint64(b[:]))), nil
}

// RollDie returns a uniformly random value in [1, sides].
func (r *Roller) RollDie(sides int) (int, error) {
	if sides < 1 {
		return 0, ErrInvalidDiceSpec
	}

	return r.rollDie(sides), nil
}

// Roll rolls count dice with the given number of sides, without crit or fumble thresholds.
func (r *Roller) Roll(count, sides int) (RollResult, error) {
	return r.RollDice(DiceSpec{Count: count, Sides: sides})
}

// RollDice rolls the dice described by spec. The crit and fumble flags are informational
// only and never change the rolled values.
func (r *Roller) RollDice(spec DiceSpec) (RollResult, error) {
	if spec.Count <= 0 || spec.Count > MaxDice || spec.Sides < 1 {
		return RollResult{}, ErrInvalidDiceSpec
	}

	dice := []Die{}
	for i := 0; i < spec.Count; i++ {
		value := r.rollDie(spec.Sides)
		dice = append(dice, Die{
			Value:    value,
			Critical: spec.Crit != nil && value >= *spec.Crit,
			Fumble:   spec.Fumble != nil && value <= *spec.Fumble,
		})
	}

	return RollResult{
		Sides: spec.Sides,
		Dice:  dice,
	}, nil
}

// mustRoll is for the hard-coded specs below, which cannot be invalid.
func (r *Roller) mustRoll(spec DiceSpec) RollResult {
	result, err := r.RollDice(spec)
	if err != nil {
		panic(err)
	}

	return result
}

func (r *Roller) rollDie(sides int) int {
	return r.src.Intn(sides) + 1
}

// Threshold returns a pointer to v, for populating DiceSpec thresholds.
func Threshold(v int) *int {
	return &v
}
