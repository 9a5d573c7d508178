// Package script defines the calling convention between the rules engine and
// ability or effect behaviour. A script is a set of hook functions keyed by
// FunctionType; the engine calls a hook only when the script declares it.
package script

import (
	"github.com/KirkDiggler/tactics-engine/internal/dice"
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/KirkDiggler/tactics-engine/internal/events"
	"github.com/KirkDiggler/tactics-engine/internal/ui"
)

// FunctionType names a hook a script may implement
type FunctionType string

const (
	OnActivate         FunctionType = "onActivate"
	OnDeactivate       FunctionType = "onDeactivate"
	OnEffectApplied    FunctionType = "onEffectApplied"
	OnAbilityActivated FunctionType = "onAbilityActivated"
	OnApply            FunctionType = "onApply"
	OnRemove           FunctionType = "onRemove"
	OnRoundElapsed     FunctionType = "onRoundElapsed"
	OnTargetEnter      FunctionType = "onTargetEnter"
	OnTargetExit       FunctionType = "onTargetExit"
)

// FunctionTypes lists every hook in declaration order
var FunctionTypes = []FunctionType{
	OnActivate, OnDeactivate, OnEffectApplied, OnAbilityActivated,
	OnApply, OnRemove, OnRoundElapsed, OnTargetEnter, OnTargetExit,
}

// ParseFunctionType converts a hook name into a FunctionType
func ParseFunctionType(name string) (FunctionType, error) {
	for _, ft := range FunctionTypes {
		if string(ft) == name {
			return ft, nil
		}
	}
	return "", rpgerr.InvalidArgumentf("unknown script function %q", name)
}

// Func is a hook. The engine is always first; the dispatcher appends the
// owning effect or slot as the last argument.
type Func func(engine Engine, args ...any) error

// Engine is the view of the game a hook may use
type Engine interface {
	Dice() dice.Roller
	Menu() *ui.Menu
	Targeters() *ui.TargeterManager
	Messages() events.Messenger
}

// Script is a named bundle of hooks
type Script struct {
	ID    string
	Hooks map[FunctionType]Func
}

// Has reports whether the script implements fn
func (s *Script) Has(fn FunctionType) bool {
	if s == nil {
		return false
	}
	_, ok := s.Hooks[fn]
	return ok
}

// Call invokes fn when the script implements it. A missing hook is a no-op.
func (s *Script) Call(engine Engine, fn FunctionType, args ...any) error {
	if s == nil {
		return nil
	}
	hook, ok := s.Hooks[fn]
	if !ok {
		return nil
	}
	return hook(engine, args...)
}
