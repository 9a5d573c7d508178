package ui

import (
	"log"
	"slices"

	"github.com/KirkDiggler/tactics-engine/internal/domain/grid"
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
)

// Targeter asks for a point among its candidates and runs OnTarget with it
type Targeter struct {
	Title     string
	AbilityID string
	Points    []grid.Point
	OnTarget  func(p grid.Point) error
}

// Allows reports whether p is a legal target
func (t *Targeter) Allows(p grid.Point) bool {
	return slices.Contains(t.Points, p)
}

// TargeterManager tracks the targeter of the current action. At most one
// targeter is active at a time.
type TargeterManager struct {
	current *Targeter
}

// NewTargeterManager creates an idle manager
func NewTargeterManager() *TargeterManager {
	return &TargeterManager{}
}

// Begin makes t the active targeter, replacing any previous one
func (m *TargeterManager) Begin(t *Targeter) {
	if m.current != nil {
		log.Printf("Targeter: replacing %q with %q", m.current.Title, t.Title)
	}
	m.current = t
}

// Current returns the active targeter or nil
func (m *TargeterManager) Current() *Targeter {
	return m.current
}

// End drops the active targeter without choosing a point
func (m *TargeterManager) End() {
	m.current = nil
}

// Select chooses p on the active targeter and ends it
func (m *TargeterManager) Select(p grid.Point) error {
	t := m.current
	if t == nil {
		return rpgerr.NotFound("no active targeter")
	}
	if !t.Allows(p) {
		return rpgerr.InvalidArgumentf("point %s is not a target of %q", p, t.Title)
	}

	m.current = nil
	if t.OnTarget == nil {
		return nil
	}
	return t.OnTarget(p)
}
