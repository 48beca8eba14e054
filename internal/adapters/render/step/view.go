// Package step renders the per-step console block: agent position,
// instructions, visible objects and the numbered object commands.
package step

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/avasek/sim-interact-cli/internal/domain"
	"github.com/avasek/sim-interact-cli/internal/ports"
	"github.com/charmbracelet/lipgloss"
)

type Renderer struct {
	styles styles
}

var _ ports.StepRenderer = (*Renderer)(nil)

func NewRenderer() *Renderer {
	return &Renderer{styles: newStyles()}
}

func (r *Renderer) RenderStep(view ports.StepView) string {
	s := r.styles

	lines := []string{
		s.position.Render(fmt.Sprintf("Position: %s", view.Position)),
		s.instructions.Render(view.Instructions),
		s.heading.Render("Visible Objects:"),
	}

	if len(view.VisibleObjects) == 0 {
		lines = append(lines, s.empty.Render("No visible objects."))
	} else {
		visible := append([]string(nil), view.VisibleObjects...)
		sort.Strings(visible)
		for _, id := range visible {
			lines = append(lines, s.object.Render(id))
		}
	}

	for _, slot := range sortedSlots(view.Dynamic) {
		lines = append(lines, r.commandLine(slot, view.Dynamic[slot]))
	}

	if view.Elapsed > 0 {
		lines = append(lines, s.latency.Render(fmt.Sprintf("step took %s", view.Elapsed.Round(time.Millisecond))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (r *Renderer) commandLine(slot string, cmd domain.Command) string {
	s := r.styles

	parts := []string{
		s.slot.Render(slot + ")"),
		s.command.Render(string(cmd.Action)),
	}
	if cmd.ObjectID != "" {
		parts = append(parts, s.object.Render(cmd.ObjectID))
	}
	if cmd.ReceptacleObjectID != "" {
		parts = append(parts, s.param.Render(fmt.Sprintf("receptacleObjectId: %s", cmd.ReceptacleObjectID)))
	}
	if cmd.MoveMagnitude != 0 {
		parts = append(parts, s.param.Render(fmt.Sprintf("moveMagnitude: %g", cmd.MoveMagnitude)))
	}

	return strings.Join(parts, " ")
}

// sortedSlots orders the dynamic table by slot number, not
// lexicographically, so "2" lists before "10".
func sortedSlots(dynamic domain.CommandTable) []string {
	slots := make([]string, 0, len(dynamic))
	for slot := range dynamic {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		a, _ := strconv.Atoi(slots[i])
		b, _ := strconv.Atoi(slots[j])
		return a < b
	})
	return slots
}
