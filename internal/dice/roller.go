package dice

// Roller provides randomness to the engine. The game loop is single
// threaded, so implementations are not required to be safe for concurrent use.
type Roller interface {
	// Roll rolls count dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)

	// Rand returns a uniformly distributed integer in [min, max]
	Rand(min, max int) int
}
