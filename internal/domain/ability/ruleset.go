package ability

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"path"
	"slices"
	"strings"
	"sync"

	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
	"golang.org/x/sync/errgroup"
)

// Ruleset owns exactly one Ability per ID
type Ruleset struct {
	mu        sync.RWMutex
	abilities map[string]*Ability
	order     []string
}

// NewRuleset creates an empty ruleset
func NewRuleset() *Ruleset {
	return &Ruleset{
		abilities: make(map[string]*Ability),
	}
}

// Register builds an ability from def and adds it. The first ability
// registered for an ID wins; later ones are rejected.
func (r *Ruleset) Register(def *Definition) (*Ability, error) {
	a, err := New(def, r)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.abilities[a.id]; exists {
		return nil, rpgerr.AlreadyExistsf("ability %s already registered", a.id)
	}
	r.abilities[a.id] = a
	r.order = append(r.order, a.id)
	return a, nil
}

// Ability returns the ability with the given ID or nil
func (r *Ruleset) Ability(id string) *Ability {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.abilities[id]
}

// IDs returns every ability ID, sorted
func (r *Ruleset) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := slices.Clone(r.order)
	slices.Sort(ids)
	return ids
}

// Len returns the number of abilities
func (r *Ruleset) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.abilities)
}

// RegisterAll registers every definition, logging and collecting the
// failures. A bad entry never prevents the others from loading.
func (r *Ruleset) RegisterAll(source string, defs []*Definition) error {
	var errs []error
	for _, def := range defs {
		if _, err := r.Register(def); err != nil {
			log.Printf("Ruleset: skipping ability from %s: %v", source, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadFS parses every *.json file in dir concurrently and registers the
// definitions in file name order. The returned error joins every per-file
// and per-entry failure; whatever could be loaded stays loaded.
func (r *Ruleset) LoadFS(ctx context.Context, fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return rpgerr.Wrapf(err, "failed to read ability directory %s", dir)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			files = append(files, path.Join(dir, e.Name()))
		}
	}
	slices.Sort(files)

	parsed := make([][]*Definition, len(files))
	parseErrs := make([]error, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(fsys, file)
			if err != nil {
				parseErrs[i] = rpgerr.Wrapf(err, "failed to read %s", file)
				return nil
			}
			defs, err := ParseDefinitions(data)
			if err != nil {
				parseErrs[i] = rpgerr.Wrapf(err, "failed to parse %s", file)
				return nil
			}
			parsed[i] = defs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var errs []error
	for i, file := range files {
		if parseErrs[i] != nil {
			log.Printf("Ruleset: %v", parseErrs[i])
			errs = append(errs, parseErrs[i])
			continue
		}
		if err := r.RegisterAll(file, parsed[i]); err != nil {
			errs = append(errs, err)
		}
	}

	log.Printf("Ruleset: loaded %d abilities from %s", r.Len(), dir)
	return errors.Join(errs...)
}
