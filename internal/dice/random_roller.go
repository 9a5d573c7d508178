package dice

import (
	"math/rand"
)

// randomRoller implements Roller on top of a seeded math/rand source
type randomRoller struct {
	rng *rand.Rand
}

// NewRandomRoller creates a roller seeded with the given value
func NewRandomRoller(seed int64) Roller {
	return &randomRoller{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if err := validate(count, sides); err != nil {
		return nil, err
	}

	rolls := make([]int, count)
	for i := range rolls {
		rolls[i] = r.rng.Intn(sides) + 1
	}

	return newRollResult(count, sides, bonus, rolls), nil
}

// Rand implements Roller.Rand
func (r *randomRoller) Rand(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rng.Intn(max-min+1)
}
