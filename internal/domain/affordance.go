package domain

import "strconv"

// MaxDynamicCommands caps the number of object commands generated per
// step. Slots beyond the cap are silently dropped.
const MaxDynamicCommands = 14

// EnumerateAffordances derives the step's object command table from
// the event's visible objects, along with the visible object ids in
// encounter order. Slots are numbered "1".."14" with one counter
// shared across all objects; numbering is only stable within a step.
//
// Per visible object, in precedence order: open/close when openable,
// toggle-off when toggleable, put + hand adjustments + drop when
// holding something and the object is a usable receptacle, otherwise
// pickup when pickupable.
func EnumerateAffordances(event Event) (CommandTable, []string) {
	dynamic := make(CommandTable)
	var visible []string

	slot := 1
	add := func(cmd Command) {
		if slot > MaxDynamicCommands {
			return
		}
		dynamic[strconv.Itoa(slot)] = cmd
		slot++
	}

	var held string
	if len(event.Metadata.InventoryObjects) > 0 {
		held = event.Metadata.InventoryObjects[0].ObjectID
	}

	for _, o := range event.Metadata.Objects {
		if !o.Visible {
			continue
		}
		visible = append(visible, o.ObjectID)

		if o.Openable {
			if o.IsOpen {
				add(Command{Action: ActionCloseObject, ObjectID: o.ObjectID})
			} else {
				add(Command{Action: ActionOpenObject, ObjectID: o.ObjectID})
			}
		}
		if o.Toggleable {
			add(Command{Action: ActionToggleObjectOff, ObjectID: o.ObjectID})
		}

		if held != "" {
			if o.Receptacle && (!o.Openable || o.IsOpen) && held != o.ObjectID {
				add(Command{Action: ActionPutObject, ObjectID: held, ReceptacleObjectID: o.ObjectID})
				add(Command{Action: ActionMoveHandAhead, MoveMagnitude: HandMagnitude})
				add(Command{Action: ActionMoveHandBack, MoveMagnitude: HandMagnitude})
				add(Command{Action: ActionMoveHandRight, MoveMagnitude: HandMagnitude})
				add(Command{Action: ActionMoveHandLeft, MoveMagnitude: HandMagnitude})
				add(Command{Action: ActionMoveHandUp, MoveMagnitude: HandMagnitude})
				add(Command{Action: ActionMoveHandDown, MoveMagnitude: HandMagnitude})
				add(Command{Action: ActionDropHandObject})
			}
		} else if o.Pickupable {
			add(Command{Action: ActionPickupObject, ObjectID: o.ObjectID})
		}
	}

	return dynamic, visible
}
