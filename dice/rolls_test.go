package dice

import (
	"errors"
	"testing"
)

func TestDeepSum(t *testing.T) {
	tests := []struct {
		value    any
		expected int
	}{
		{5, 5},
		{-3, -3},
		{[]int{}, 0},
		{[]any{}, 0},
		{[]int{1, 2, 3}, 6},
		{[]any{[]any{1, 2}, []any{3, []any{4}}}, 10},
		{[][]int{{1, 2}, {3, 4}}, 10},
		{[]any{1, []int{2, 3}, [][]int{{4}, {5, 6}}}, 21},
		{[2]int{7, 8}, 15},
		{RollResult{Sides: 6, Dice: []Die{{Value: 2}, {Value: 5}}}, 7},
		{Damage{Magic: 14, Physical: 6, Sneak: 10}, 30},
		{[]Damage{{Magic: 1, Physical: 2}, {Magic: 3, Physical: 4}}, 10},
	}

	for _, test := range tests {
		sum, err := DeepSum(test.value)
		if err != nil {
			t.Errorf("Unexpected error summing %v (%v)", test.value, err)
		} else if sum != test.expected {
			t.Errorf("Incorrect sum for %v - expected %v, got %v", test.value, test.expected, sum)
		}
	}
}

func TestDeepSumWithInvalidValues(t *testing.T) {
	tests := []any{
		nil,
		"6",
		[]any{1, "2"},
		[]any{1, []any{2, 3.5}},
		map[string]int{"a": 1},
	}

	for _, v := range tests {
		if _, err := DeepSum(v); !errors.Is(err, ErrNotSummable) {
			t.Errorf("Expected ErrNotSummable for %#v, got %v", v, err)
		}
	}
}

func TestCheck(t *testing.T) {
	check := New(fixed{max: true}).Check(7)

	if check.Total != 27 {
		t.Errorf("Incorrect check total - expected %v, got %v", 27, check.Total)
	}

	if check.Natural() != 20 {
		t.Errorf("Incorrect natural roll - expected %v, got %v", 20, check.Natural())
	}

	if !check.Roll.Critical() {
		t.Errorf("Expected natural 20 to be flagged as a critical")
	}

	low := New(fixed{}).Check(3)
	if low.Total != 4 || !low.Roll.Fumble() || low.Roll.Critical() {
		t.Errorf("Incorrect low check - expected total 4 flagged as fumble, got %+v", low)
	}
}

func TestCheckRange(t *testing.T) {
	r := NewSeededRoller(11)

	for i := 0; i < 1000; i++ {
		check := r.Check(5)
		if check.Total < 6 || check.Total > 25 {
			t.Fatalf("Check out of range: %v", check.Total)
		}

		if check.Roll.Critical() != (check.Natural() >= CheckCrit) {
			t.Fatalf("Incorrect critical flag for natural %v", check.Natural())
		}
	}
}

func TestAttackRoll(t *testing.T) {
	check := New(fixed{max: true}).AttackRoll(2, DefaultAttack)

	if check.Total != 36 {
		t.Errorf("Incorrect attack roll - expected %v, got %v", 36, check.Total)
	}

	if check.Bonus != 16 {
		t.Errorf("Incorrect attack bonus - expected %v, got %v", 16, check.Bonus)
	}
}

func TestNormalDamage(t *testing.T) {
	damage, err := New(fixed{max: true}).NormalDamage(2)
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if damage.Magic != 14 {
		t.Errorf("Incorrect magic damage - expected %v, got %v", 14, damage.Magic)
	}

	if damage.Physical != 6 {
		t.Errorf("Incorrect physical damage - expected %v, got %v", 6, damage.Physical)
	}

	if damage.Sneak != 0 {
		t.Errorf("Unexpected sneak damage %v", damage.Sneak)
	}
}

func TestNormalDamageWithMinimumRolls(t *testing.T) {
	damage, err := New(fixed{}).NormalDamage(3)
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if damage.Magic != 5 || damage.Physical != 3 {
		t.Errorf("Incorrect damage - expected magic:5 physical:3, got %+v", damage)
	}
}

func TestNormalDamageWithInvalidDice(t *testing.T) {
	if _, err := NewSeededRoller(1).NormalDamage(0); !errors.Is(err, ErrInvalidDiceSpec) {
		t.Errorf("Expected ErrInvalidDiceSpec, got %v", err)
	}
}

func TestNormalDamageWithTooManyDice(t *testing.T) {
	if _, err := NewSeededRoller(1).NormalDamage(MaxDice + 1); !errors.Is(err, ErrInvalidDiceSpec) {
		t.Errorf("Expected ErrInvalidDiceSpec, got %v", err)
	}
}

func TestSneakAttackDamage(t *testing.T) {
	damage, err := New(fixed{max: true}).SneakAttackDamage(2)
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	expected := Damage{Magic: 14, Physical: 6, Sneak: 30}
	if damage != expected {
		t.Errorf("Incorrect sneak attack damage\n   expected: %+v\n   got:      %+v", expected, damage)
	}
}

func TestAverage(t *testing.T) {
	for _, runs := range []int{1, 2, 17, 100} {
		avg, err := Average(runs, func() any { return []any{3, []int{4}} })
		if err != nil {
			t.Fatalf("Unexpected error (%v)", err)
		}

		if avg != 7 {
			t.Errorf("Incorrect average over %v runs - expected %v, got %v", runs, 7, avg)
		}
	}
}

func TestAverageFloors(t *testing.T) {
	tests := []struct {
		values   []int
		expected int
	}{
		{[]int{1, 2}, 1},
		{[]int{-1, -2}, -2},
		{[]int{-7, -7}, -7},
		{[]int{-3, 2}, -1},
		{[]int{0, 0}, 0},
	}

	for _, test := range tests {
		i := 0
		avg, err := Average(len(test.values), func() any {
			v := test.values[i]
			i++
			return v
		})

		if err != nil {
			t.Fatalf("Unexpected error (%v)", err)
		} else if avg != test.expected {
			t.Errorf("Incorrect average of %v - expected %v, got %v", test.values, test.expected, avg)
		}
	}
}

func TestAverageWithNegativeConstant(t *testing.T) {
	avg, err := Average(3, func() any { return []int{-4, 1} })
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	} else if avg != -3 {
		t.Errorf("Incorrect average - expected %v, got %v", -3, avg)
	}
}

func TestAverageWithDamage(t *testing.T) {
	r := New(fixed{max: true})

	avg, err := Average(DefaultRuns, func() any {
		damage, _ := r.SneakAttackDamage(DefaultMagicDice)
		return damage
	})

	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	} else if avg != 50 {
		t.Errorf("Incorrect average - expected %v, got %v", 50, avg)
	}
}

func TestAverageWithInvalidRuns(t *testing.T) {
	called := false
	fn := func() any {
		called = true
		return 1
	}

	for _, runs := range []int{0, -1} {
		if _, err := Average(runs, fn); !errors.Is(err, ErrInvalidRuns) {
			t.Errorf("Expected ErrInvalidRuns for %v runs, got %v", runs, err)
		}
	}

	if called {
		t.Errorf("Expected roll function not to be invoked for invalid runs")
	}
}

func TestAbilityModifier(t *testing.T) {
	tests := map[int]int{
		18: 4,
		17: 3,
		12: 1,
		11: 0,
		10: 0,
		9:  -1,
		8:  -1,
		7:  -2,
		3:  -4,
		1:  -5,
		0:  -5,
	}

	for score, expected := range tests {
		if m := AbilityModifier(score); m != expected {
			t.Errorf("Incorrect modifier for %v - expected %v, got %v", score, expected, m)
		}
	}
}

func TestParseNotation(t *testing.T) {
	tests := map[string]DiceSpec{
		"2d6":   {Count: 2, Sides: 6},
		"d20":   {Count: 1, Sides: 20},
		"10D4":  {Count: 10, Sides: 4},
		" 1d8 ": {Count: 1, Sides: 8},
	}

	for s, expected := range tests {
		spec, err := ParseNotation(s)
		if err != nil {
			t.Errorf("Unexpected error parsing '%s' (%v)", s, err)
		} else if spec.Count != expected.Count || spec.Sides != expected.Sides {
			t.Errorf("Incorrect spec for '%s' - expected %v, got %v", s, expected, spec)
		}
	}

	for _, s := range []string{"", "6", "2x6", "d", "-1d6", "0d6", "2d0"} {
		if _, err := ParseNotation(s); err == nil {
			t.Errorf("Expected error parsing '%s'", s)
		}
	}
}

func TestParseNotationWithTooManyDice(t *testing.T) {
	for _, s := range []string{"1001d6", "999999999999999d6", "99999999999999999999999d6"} {
		if _, err := ParseNotation(s); !errors.Is(err, ErrInvalidDiceSpec) {
			t.Errorf("Expected ErrInvalidDiceSpec parsing '%s', got %v", s, err)
		}
	}

	if spec, err := ParseNotation("1000d6"); err != nil {
		t.Errorf("Unexpected error parsing '1000d6' (%v)", err)
	} else if spec.Count != MaxDice {
		t.Errorf("Incorrect count - expected %v, got %v", MaxDice, spec.Count)
	}
}
