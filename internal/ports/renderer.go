package ports

import (
	"time"

	"github.com/avasek/sim-interact-cli/internal/domain"
)

// StepView is everything the renderer shows after a step.
type StepView struct {
	Position       domain.Position
	Instructions   string
	VisibleObjects []string
	Dynamic        domain.CommandTable
	Elapsed        time.Duration
}

// StepRenderer turns a step view into console text.
type StepRenderer interface {
	RenderStep(view StepView) string
}
