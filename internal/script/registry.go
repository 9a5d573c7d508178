package script

import (
	"slices"
	"sync"

	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
)

// Registry holds every script known to a ruleset
type Registry struct {
	mu      sync.RWMutex
	scripts map[string]*Script
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		scripts: make(map[string]*Script),
	}
}

// Register adds a script. Registering the same ID twice fails.
func (r *Registry) Register(s *Script) error {
	if s == nil || s.ID == "" {
		return rpgerr.InvalidArgument("script must have an id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scripts[s.ID]; exists {
		return rpgerr.AlreadyExistsf("script %s already registered", s.ID)
	}
	r.scripts[s.ID] = s
	return nil
}

// Get retrieves a script by ID
func (r *Registry) Get(id string) (*Script, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.scripts[id]
	return s, exists
}

// List returns all registered script IDs, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.scripts))
	for id := range r.scripts {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
