package effectstate

import "time"

//go:generate mockgen -destination=mocks/mock_time_provider.go -package=mocks github.com/KirkDiggler/tactics-engine/internal/repositories/effectstate TimeProvider

type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the wall clock
type RealTimeProvider struct{}

// Now returns the current UTC time
func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
