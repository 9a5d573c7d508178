package ability

//go:generate mockgen -destination=mock/mock_service.go -package=mockability -source=service.go

import (
	"log"

	"github.com/KirkDiggler/tactics-engine/internal/domain/ability"
	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"github.com/KirkDiggler/tactics-engine/internal/script"
)

// Service runs ability scripts the same way for players and the AI
type Service interface {
	// RunCallback calls hook fn of the slot's ability script with the slot
	RunCallback(slot ability.Slot, fn script.FunctionType) error

	// Activate runs onActivate when the slot can be activated, otherwise
	// onDeactivate when it can be deactivated
	Activate(slot ability.Slot) error
}

type service struct {
	engine  script.Engine
	scripts *script.Registry
}

// ServiceConfig holds configuration for the ability service
type ServiceConfig struct {
	Engine  script.Engine
	Scripts *script.Registry
}

// NewService creates a new ability service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Engine == nil {
		panic("engine is required")
	}
	if cfg.Scripts == nil {
		panic("script registry is required")
	}

	return &service{
		engine:  cfg.Engine,
		scripts: cfg.Scripts,
	}
}

func (s *service) RunCallback(slot ability.Slot, fn script.FunctionType) error {
	if slot == nil || slot.Ability() == nil {
		return rpgerr.InvalidArgument("slot cannot be nil")
	}

	a := slot.Ability()
	if a.ScriptID() == "" {
		return rpgerr.NotFoundf("ability %s has no script", a.ID())
	}

	sc, ok := s.scripts.Get(a.ScriptID())
	if !ok {
		return rpgerr.NotFoundf("script %s for ability %s not found", a.ScriptID(), a.ID())
	}
	if !sc.Has(fn) {
		return rpgerr.NotFoundf("script %s has no %s hook", sc.ID, fn).
			WithMeta("ability", a.ID())
	}

	if err := sc.Call(s.engine, fn, slot); err != nil {
		log.Printf("AbilityService: %s of %s failed: %v", fn, a.ID(), err)
		return rpgerr.Wrapf(err, "%s of %s failed", fn, a.ID())
	}
	return nil
}

func (s *service) Activate(slot ability.Slot) error {
	if slot == nil {
		return rpgerr.InvalidArgument("slot cannot be nil")
	}

	switch {
	case slot.CanActivate():
		return s.RunCallback(slot, script.OnActivate)
	case slot.CanDeactivate():
		return s.RunCallback(slot, script.OnDeactivate)
	default:
		return rpgerr.InvalidArgumentf("slot %s can neither be activated nor deactivated", slot.AbilityID())
	}
}
