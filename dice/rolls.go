package dice

// d20 checks flag a natural 19 or 20 as a critical and a natural 1 as a fumble.
const (
	CheckCrit   = 19
	CheckFumble = 1

	DamageBonus      = 2
	SneakAttackDice  = 5
	DefaultMagicDice = 2
	DefaultAttack    = 14
	DefaultRuns      = 100
)

// Check is the outcome of a d20 check or attack roll.
type Check struct {
	Roll  RollResult
	Bonus int
	Total int
}

// Sum returns the check total, so that checks can be averaged.
func (c Check) Sum() int {
	return c.Total
}

// Natural returns the face value of the d20.
func (c Check) Natural() int {
	return c.Roll.Sum()
}

// Damage holds the independently rolled components of a damage roll. Resistances apply
// per damage type, so the components are never pre-summed.
type Damage struct {
	Magic    int
	Physical int
	Sneak    int
}

// Sum returns the total damage across all components.
func (d Damage) Sum() int {
	return d.Magic + d.Physical + d.Sneak
}

// Check rolls a d20 and adds bonus. Used for skill checks and saving throws.
func (r *Roller) Check(bonus int) Check {
	roll := r.mustRoll(DiceSpec{
		Count:  1,
		Sides:  20,
		Crit:   Threshold(CheckCrit),
		Fumble: Threshold(CheckFumble),
	})

	return Check{
		Roll:  roll,
		Bonus: bonus,
		Total: roll.Sum() + bonus,
	}
}

// AttackRoll is a check against the character's base attack bonus plus a situational bonus.
func (r *Roller) AttackRoll(bonus, base int) Check {
	check := r.Check(base)

	check.Bonus += bonus
	check.Total += bonus

	return check
}

// NormalDamage rolls magicDice d6 + 2 of magic damage and 1d4 + 2 of physical damage.
func (r *Roller) NormalDamage(magicDice int) (Damage, error) {
	magic, err := r.Roll(magicDice, 6)
	if err != nil {
		return Damage{}, err
	}

	physical := r.mustRoll(DiceSpec{Count: 1, Sides: 4})

	return Damage{
		Magic:    magic.Sum() + DamageBonus,
		Physical: physical.Sum() + DamageBonus,
	}, nil
}

// SneakAttackDamage is NormalDamage plus a separate 5d6 sneak attack component.
func (r *Roller) SneakAttackDamage(magicDice int) (Damage, error) {
	damage, err := r.NormalDamage(magicDice)
	if err != nil {
		return Damage{}, err
	}

	damage.Sneak = r.mustRoll(DiceSpec{Count: SneakAttackDice, Sides: 6}).Sum()

	return damage, nil
}

// Average calls fn runs times and returns the mean of the deep sums of the results, rounded
// down (so an average of -1.5 is -2).
func Average(runs int, fn func() any) (int, error) {
	if runs < 1 {
		return 0, ErrInvalidRuns
	}

	total := 0
	for i := 0; i < runs; i++ {
		n, err := DeepSum(fn())
		if err != nil {
			return 0, err
		}

		total += n
	}

	if total < 0 && total%runs != 0 {
		return total/runs - 1, nil
	}

	return total / runs, nil
}

// AbilityModifier returns floor((score - 10) / 2).
func AbilityModifier(score int) int {
	d := score - 10
	if d < 0 && d%2 != 0 {
		return d/2 - 1
	}

	return d / 2
}
