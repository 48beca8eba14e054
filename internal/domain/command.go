package domain

type Action string

const (
	ActionMoveRight   Action = "MoveRight"
	ActionMoveLeft    Action = "MoveLeft"
	ActionMoveAhead   Action = "MoveAhead"
	ActionMoveBack    Action = "MoveBack"
	ActionLookUp      Action = "LookUp"
	ActionLookDown    Action = "LookDown"
	ActionRotateRight Action = "RotateRight"
	ActionRotateLeft  Action = "RotateLeft"

	ActionOpenObject      Action = "OpenObject"
	ActionCloseObject     Action = "CloseObject"
	ActionToggleObjectOff Action = "ToggleObjectOff"
	ActionPickupObject    Action = "PickupObject"
	ActionPutObject       Action = "PutObject"
	ActionMoveHandAhead   Action = "MoveHandAhead"
	ActionMoveHandBack    Action = "MoveHandBack"
	ActionMoveHandRight   Action = "MoveHandRight"
	ActionMoveHandLeft    Action = "MoveHandLeft"
	ActionMoveHandUp      Action = "MoveHandUp"
	ActionMoveHandDown    Action = "MoveHandDown"
	ActionDropHandObject  Action = "DropHandObject"
)

const (
	// MoveMagnitude applied to the default movement bindings.
	MoveMagnitude = 0.25
	// HandMagnitude applied to the MoveHand* micro-adjustments.
	HandMagnitude = 0.1
)

// Command is one step request for the controller: an action name plus
// whichever named parameters the action takes. A zero parameter means
// the parameter is not sent.
type Command struct {
	Action             Action
	MoveMagnitude      float64
	ObjectID           string
	ReceptacleObjectID string
}

// CommandTable maps a key sequence to the command it triggers.
type CommandTable map[string]Command

// Overlay returns a new table with entries from both, preferring
// overlay entries on key clashes. The receiver is left untouched.
func (t CommandTable) Overlay(overlay CommandTable) CommandTable {
	merged := make(CommandTable, len(t)+len(overlay))
	for key, cmd := range t {
		merged[key] = cmd
	}
	for key, cmd := range overlay {
		merged[key] = cmd
	}
	return merged
}
