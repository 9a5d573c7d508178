package mockdice

import (
	"fmt"

	"github.com/KirkDiggler/tactics-engine/internal/dice"
)

// ManualMockRoller implements dice.Roller with predetermined results
type ManualMockRoller struct {
	rolls     []int
	rollIndex int
	picks     []int
	pickIndex int
}

// NewManualMockRoller creates a new mock dice roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{}
}

// SetRolls sets the die faces returned by Roll
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.rolls = rolls
	m.rollIndex = 0
}

// SetPicks sets the values returned by Rand, clamped into the requested range
func (m *ManualMockRoller) SetPicks(picks []int) {
	m.picks = picks
	m.pickIndex = 0
}

// Roll implements dice.Roller.Roll
func (m *ManualMockRoller) Roll(count, sides, bonus int) (*dice.RollResult, error) {
	rolls := make([]int, count)
	raw := 0

	for i := 0; i < count; i++ {
		if m.rollIndex >= len(m.rolls) {
			return nil, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
		}
		roll := m.rolls[m.rollIndex]
		m.rollIndex++
		if roll < 1 || roll > sides {
			return nil, fmt.Errorf("invalid roll %d for d%d", roll, sides)
		}
		rolls[i] = roll
		raw += roll
	}

	return &dice.RollResult{
		Total:    raw + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: raw,
	}, nil
}

// Rand implements dice.Roller.Rand. Without predetermined picks it returns min.
func (m *ManualMockRoller) Rand(min, max int) int {
	if m.pickIndex >= len(m.picks) {
		return min
	}
	pick := m.picks[m.pickIndex]
	m.pickIndex++
	if pick < min {
		return min
	}
	if pick > max {
		return max
	}
	return pick
}
