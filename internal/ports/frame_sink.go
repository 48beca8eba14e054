package ports

import "github.com/avasek/sim-interact-cli/internal/domain"

// FrameSink persists the sensor frames of one step. Implementations
// decide which channels they are configured to keep.
type FrameSink interface {
	Persist(event domain.Event, step int) error
}
