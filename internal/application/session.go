package application

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/avasek/sim-interact-cli/internal/domain"
	"github.com/avasek/sim-interact-cli/internal/ports"
)

// Instructions is the standing prompt printed before the loop and
// after every step.
const Instructions = "Enter a Command: Move ←↑→↓, Rotate/Look Shift + ←↑→↓, Quit 'q' or Ctrl-C"

// Session is the interactive control loop: it resolves keystrokes
// into commands, dispatches them to the controller, persists the
// resulting frames and rebuilds the object command menu after every
// step. Single-threaded and blocking throughout; the session owns the
// active keymap and the step counter exclusively.
type Session struct {
	controller    ports.Controller
	keys          ports.KeyReader
	sink          ports.FrameSink
	renderer      ports.StepRenderer
	clock         ports.Clock
	out           io.Writer
	static        domain.Keymap
	active        domain.Keymap
	objectActions bool
	counter       int
}

type SessionConfig struct {
	Controller    ports.Controller
	Keys          ports.KeyReader
	Sink          ports.FrameSink
	Renderer      ports.StepRenderer
	Clock         ports.Clock
	Output        io.Writer
	Keymap        domain.Keymap
	ObjectActions bool
}

func NewSession(cfg SessionConfig) *Session {
	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	return &Session{
		controller:    cfg.Controller,
		keys:          cfg.Keys,
		sink:          cfg.Sink,
		renderer:      cfg.Renderer,
		clock:         cfg.Clock,
		out:           cfg.Output,
		static:        cfg.Keymap,
		active:        cfg.Keymap,
		objectActions: cfg.ObjectActions,
	}
}

// Run drives the loop until the quit key is pressed or a collaborator
// fails. Controller and frame-sink failures are not retried; they end
// the session (this is an interactive debugging tool, not a service).
func (s *Session) Run(ctx context.Context) error {
	if !s.keys.Interactive() {
		return domain.ErrNotATerminal
	}

	fmt.Fprintln(s.out, Instructions)

	for {
		cmd, quit, err := s.nextCommand()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		if quit {
			return nil
		}
		if err := s.step(ctx, cmd); err != nil {
			return err
		}
	}
}

// nextCommand accumulates keystrokes until the buffer resolves.
// An exact match yields the command, a partial match keeps reading,
// and anything else drops the buffer and starts over.
func (s *Session) nextCommand() (domain.Command, bool, error) {
	var buffer []byte
	for {
		b, err := s.keys.ReadKey()
		if err != nil {
			return domain.Command{}, false, err
		}
		if b == domain.KeyQuit || b == domain.KeyInterrupt {
			return domain.Command{}, true, nil
		}
		buffer = append(buffer, b)

		cmd, kind := s.active.Resolve(string(buffer))
		switch kind {
		case domain.MatchExact:
			return cmd, false, nil
		case domain.MatchPartial:
			// keep accumulating
		default:
			buffer = buffer[:0]
		}
	}
}

func (s *Session) step(ctx context.Context, cmd domain.Command) error {
	started := s.clock.Now()
	event, err := s.controller.Step(ctx, cmd)
	if err != nil {
		return fmt.Errorf("controller step: %w", err)
	}
	elapsed := s.clock.Now().Sub(started)

	if err := s.sink.Persist(event, s.counter); err != nil {
		return fmt.Errorf("persist frames: %w", err)
	}
	s.counter++

	dynamic := domain.CommandTable{}
	var visible []string
	if s.objectActions {
		dynamic, visible = domain.EnumerateAffordances(event)
	}
	s.active = s.static.Overlay(dynamic)

	fmt.Fprintln(s.out, s.renderer.RenderStep(ports.StepView{
		Position:       event.Metadata.Agent.Position,
		Instructions:   Instructions,
		VisibleObjects: visible,
		Dynamic:        dynamic,
		Elapsed:        elapsed,
	}))

	return nil
}

// Steps reports how many commands have been dispatched so far.
func (s *Session) Steps() int { return s.counter }
