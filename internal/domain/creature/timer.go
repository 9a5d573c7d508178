package creature

// BaseActionPoints is the AP every creature starts its turn with before
// ActionPoint bonuses
const BaseActionPoints = 10000

// Timer is a creature's action point budget for the current turn
type Timer struct {
	ap      int
	maxAP   int
	bonusAP func() int
}

// NewTimer creates a timer. bonusAP returns extra whole actions granted by
// effects and may be nil.
func NewTimer(bonusAP func() int) *Timer {
	t := &Timer{bonusAP: bonusAP}
	t.Reset()
	return t
}

// Reset refills the budget at the start of a turn
func (t *Timer) Reset() {
	t.maxAP = BaseActionPoints
	if t.bonusAP != nil {
		t.maxAP += t.bonusAP() * 100
	}
	t.ap = t.maxAP
}

// AP returns the points left this turn
func (t *Timer) AP() int { return t.ap }

// MaxAP returns the budget of the turn
func (t *Timer) MaxAP() int { return t.maxAP }

// HasTakenAnAction reports whether anything was spent this turn
func (t *Timer) HasTakenAnAction() bool { return t.ap < t.maxAP }

// CanPerformAction reports whether cost is affordable
func (t *Timer) CanPerformAction(cost int) bool {
	return cost <= t.ap
}

// PerformAction spends cost, false when it cannot be afforded
func (t *Timer) PerformAction(cost int) bool {
	if !t.CanPerformAction(cost) {
		return false
	}
	t.ap -= cost
	return true
}

// EndTurn drops whatever is left
func (t *Timer) EndTurn() { t.ap = 0 }
