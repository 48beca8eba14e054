package ports

import (
	"context"

	"github.com/avasek/sim-interact-cli/internal/domain"
)

// Controller is the external simulation the session drives. Step
// blocks until the simulator has applied the command and rendered the
// requested frames; there is no retry or timeout on top of it.
type Controller interface {
	Step(ctx context.Context, cmd domain.Command) (domain.Event, error)
	Reset(ctx context.Context) (domain.Event, error)
}
