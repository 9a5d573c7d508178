// Package effectstate persists the save data of creatures' effect sets
// between encounters.
package effectstate

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=repository.go

import (
	"context"
	"time"

	"github.com/KirkDiggler/tactics-engine/internal/domain/effect"
)

// Record is the stored effect state of one creature
type Record struct {
	EntityID  string          `json:"entity_id"`
	AreaID    string          `json:"area_id,omitempty"`
	Effects   *effect.SetData `json:"effects"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Repository defines the interface for effect state storage operations
type Repository interface {
	// Save stores rec, stamping UpdatedAt
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, entityID string) (*Record, error)
	Delete(ctx context.Context, entityID string) error
	// ListByArea returns the records of every creature last saved in areaID
	ListByArea(ctx context.Context, areaID string) ([]*Record, error)
}
