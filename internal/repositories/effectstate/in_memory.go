package effectstate

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
)

// InMemoryRepository keeps effect state in process, for tests and runs
// without Redis
type InMemoryRepository struct {
	mu           sync.RWMutex
	records      map[string][]byte
	areas        map[string]map[string]struct{}
	timeProvider TimeProvider
}

// NewInMemoryRepository creates an empty repository. A nil time provider
// uses the wall clock.
func NewInMemoryRepository(tp TimeProvider) *InMemoryRepository {
	if tp == nil {
		tp = RealTimeProvider{}
	}
	return &InMemoryRepository{
		records:      make(map[string][]byte),
		areas:        make(map[string]map[string]struct{}),
		timeProvider: tp,
	}
}

// Save stores a copy of rec
func (r *InMemoryRepository) Save(_ context.Context, rec *Record) error {
	if rec == nil {
		return rpgerr.InvalidArgument("record cannot be nil")
	}
	if rec.EntityID == "" {
		return rpgerr.InvalidArgument("entity ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if previous, err := r.decode(rec.EntityID); err == nil && previous.AreaID != rec.AreaID {
		delete(r.areas[previous.AreaID], rec.EntityID)
	}

	rec.UpdatedAt = r.timeProvider.Now()
	data, err := json.Marshal(rec)
	if err != nil {
		return rpgerr.Wrap(err, "failed to marshal effect state")
	}
	r.records[rec.EntityID] = data

	if rec.AreaID != "" {
		if r.areas[rec.AreaID] == nil {
			r.areas[rec.AreaID] = make(map[string]struct{})
		}
		r.areas[rec.AreaID][rec.EntityID] = struct{}{}
	}
	return nil
}

// Get returns a copy of the stored record
func (r *InMemoryRepository) Get(_ context.Context, entityID string) (*Record, error) {
	if entityID == "" {
		return nil, rpgerr.InvalidArgument("entity ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.decode(entityID)
}

// Delete removes the record
func (r *InMemoryRepository) Delete(_ context.Context, entityID string) error {
	if entityID == "" {
		return rpgerr.InvalidArgument("entity ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, err := r.decode(entityID)
	if err != nil {
		return err
	}
	delete(r.records, entityID)
	delete(r.areas[rec.AreaID], entityID)
	return nil
}

// ListByArea returns the records saved in areaID ordered by entity ID
func (r *InMemoryRepository) ListByArea(_ context.Context, areaID string) ([]*Record, error) {
	if areaID == "" {
		return nil, rpgerr.InvalidArgument("area ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.areas[areaID]))
	for id := range r.areas[areaID] {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	records := make([]*Record, 0, len(ids))
	for _, id := range ids {
		rec, err := r.decode(id)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *InMemoryRepository) decode(entityID string) (*Record, error) {
	data, ok := r.records[entityID]
	if !ok {
		return nil, rpgerr.NotFoundf("effect state for %s not found", entityID)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, rpgerr.WrapWithCode(err, rpgerr.CodeValidation, "failed to unmarshal effect state")
	}
	return &rec, nil
}
