package domain

import (
	"fmt"
	"strings"
)

// DefaultAction names one of the built-in movement/look/rotate
// actions a session may enable.
type DefaultAction string

const (
	DefaultMoveRight   DefaultAction = "MoveRight"
	DefaultMoveLeft    DefaultAction = "MoveLeft"
	DefaultMoveAhead   DefaultAction = "MoveAhead"
	DefaultMoveBack    DefaultAction = "MoveBack"
	DefaultLookUp      DefaultAction = "LookUp"
	DefaultLookDown    DefaultAction = "LookDown"
	DefaultRotateRight DefaultAction = "RotateRight"
	DefaultRotateLeft  DefaultAction = "RotateLeft"
)

// AllDefaultActions lists every built-in action, in display order.
func AllDefaultActions() []DefaultAction {
	return []DefaultAction{
		DefaultMoveRight,
		DefaultMoveLeft,
		DefaultMoveAhead,
		DefaultMoveBack,
		DefaultLookUp,
		DefaultLookDown,
		DefaultRotateRight,
		DefaultRotateLeft,
	}
}

// ParseDefaultAction validates an action name from configuration.
func ParseDefaultAction(name string) (DefaultAction, error) {
	for _, action := range AllDefaultActions() {
		if string(action) == name {
			return action, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// Key sequences delivered by a raw-mode terminal. Arrow keys and their
// shifted variants arrive as multi-byte escape sequences sharing the
// ESC prefix with each other, which is why command resolution buffers
// partial matches instead of reading a fixed width.
// Quit keys end the session from any buffer state, empty or partial,
// without yielding a final command.
const (
	KeyQuit      byte = 'q'
	KeyInterrupt byte = 0x03
)

const (
	keyRight      = "\x1b[C"
	keyLeft       = "\x1b[D"
	keyUp         = "\x1b[A"
	keyDown       = "\x1b[B"
	keyShiftUp    = "\x1b[1;2A"
	keyShiftDown  = "\x1b[1;2B"
	keyShiftRight = "\x1b[1;2C"
	keyShiftLeft  = "\x1b[1;2D"
)

type binding struct {
	key string
	cmd Command
}

func defaultBindings() []binding {
	return []binding{
		{keyRight, Command{Action: ActionMoveRight, MoveMagnitude: MoveMagnitude}},
		{keyLeft, Command{Action: ActionMoveLeft, MoveMagnitude: MoveMagnitude}},
		{keyUp, Command{Action: ActionMoveAhead, MoveMagnitude: MoveMagnitude}},
		{keyDown, Command{Action: ActionMoveBack, MoveMagnitude: MoveMagnitude}},
		{keyShiftUp, Command{Action: ActionLookUp}},
		{keyShiftDown, Command{Action: ActionLookDown}},
		{"i", Command{Action: ActionLookUp}},
		{"k", Command{Action: ActionLookDown}},
		{"l", Command{Action: ActionRotateRight}},
		{"j", Command{Action: ActionRotateLeft}},
		{keyShiftRight, Command{Action: ActionRotateRight}},
		{keyShiftLeft, Command{Action: ActionRotateLeft}},
	}
}

// MatchKind is the outcome of resolving an input buffer against a
// keymap.
type MatchKind int

const (
	// MatchNone means the buffer matches no key and prefixes none.
	MatchNone MatchKind = iota
	// MatchPartial means the buffer is a strict prefix of at least
	// one key.
	MatchPartial
	// MatchExact means the buffer is a key.
	MatchExact
)

// Keymap holds the active command table for a session: the static
// default bindings overlaid with the current step's object commands.
// Static keys are letters or escape sequences; object command keys
// are all-digit slot numbers. The two key spaces are kept disjoint by
// Bind rejecting all-digit static keys.
type Keymap struct {
	table CommandTable
}

// NewKeymap builds the static keymap for the enabled default actions
// plus any rebind overrides (key sequence to default action name).
func NewKeymap(enabled []DefaultAction, rebinds map[string]DefaultAction) (Keymap, error) {
	active := make(map[DefaultAction]bool, len(enabled))
	for _, action := range enabled {
		active[action] = true
	}

	km := Keymap{table: make(CommandTable)}
	for _, b := range defaultBindings() {
		if !active[DefaultAction(b.cmd.Action)] {
			continue
		}
		if err := km.bind(b.key, b.cmd); err != nil {
			return Keymap{}, err
		}
	}

	for key, action := range rebinds {
		if !active[action] {
			return Keymap{}, fmt.Errorf("rebind %q: action %q is not enabled", key, action)
		}
		cmd, ok := commandForDefault(action)
		if !ok {
			return Keymap{}, fmt.Errorf("rebind %q: %w: %q", key, ErrUnknownAction, action)
		}
		if err := km.bind(key, cmd); err != nil {
			return Keymap{}, fmt.Errorf("rebind %q: %w", key, err)
		}
	}

	return km, nil
}

func commandForDefault(action DefaultAction) (Command, bool) {
	for _, b := range defaultBindings() {
		if DefaultAction(b.cmd.Action) == action {
			return b.cmd, true
		}
	}
	return Command{}, false
}

func (k *Keymap) bind(key string, cmd Command) error {
	if key == "" {
		return fmt.Errorf("empty key sequence")
	}
	if strings.ContainsAny(key, string([]byte{KeyQuit, KeyInterrupt})) {
		return fmt.Errorf("key %q contains a quit key", key)
	}
	if allDigits(key) {
		return fmt.Errorf("key %q: %w", key, ErrReservedKey)
	}
	if _, exists := k.table[key]; exists {
		return fmt.Errorf("key %q: %w", key, ErrDuplicateBinding)
	}
	k.table[key] = cmd
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Overlay returns the keymap with the given object command table laid
// over the static bindings. The receiver is unchanged, so the static
// keymap survives from step to step.
func (k Keymap) Overlay(dynamic CommandTable) Keymap {
	return Keymap{table: k.table.Overlay(dynamic)}
}

// Resolve matches the input buffer against the active table.
func (k Keymap) Resolve(buffer string) (Command, MatchKind) {
	if cmd, ok := k.table[buffer]; ok {
		return cmd, MatchExact
	}
	for key := range k.table {
		if strings.HasPrefix(key, buffer) {
			return Command{}, MatchPartial
		}
	}
	return Command{}, MatchNone
}

// Table returns a copy of the active command table.
func (k Keymap) Table() CommandTable {
	return CommandTable(nil).Overlay(k.table)
}

// Len reports the number of bound key sequences.
func (k Keymap) Len() int { return len(k.table) }
