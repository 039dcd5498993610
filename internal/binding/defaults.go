package binding

import (
	"github.com/dshills/sceneinput/internal/raw"
)

// Default action names shared by the built-in tables.
const (
	ActionMoveForward  = "moveForward"
	ActionMoveBackward = "moveBackward"
	ActionMoveLeft     = "moveLeft"
	ActionMoveRight    = "moveRight"
	ActionLookAround   = "lookAround"
	ActionZoom         = "zoom"
	ActionPan          = "pan"
	ActionWalkTo       = "walkTo"
	ActionContextMenu  = "contextMenu"
	ActionSelect       = "select"
	ActionDragMove     = "dragMove"
	ActionOrbit        = "orbit"
	ActionDelete       = "delete"
	ActionDuplicate    = "duplicate"
)

// lookTrigger is movement while middle or alt+left is held, or a one-finger
// pan; orbit and lookAround share it.
func lookTrigger() Trigger {
	return OneOf(
		MoveTrigger{While: raw.ButtonSet(raw.ButtonMiddle, raw.ButtonAltLeft)},
		GestureTrigger{Gesture: raw.GesturePan},
	)
}

// menuTrigger is right click, a long press, or a second touch contact landing
// while the first is held.
func menuTrigger() Trigger {
	return OneOf(
		ButtonTrigger{Button: raw.ButtonRight, On: EdgePress},
		GestureTrigger{Gesture: raw.GestureLongPress},
		GestureTrigger{Gesture: raw.GestureTwoFingerDown},
	)
}

// zoomTrigger is the scroll wheel or a two-finger pinch.
func zoomTrigger() Trigger {
	return OneOf(WheelTrigger{}, GestureTrigger{Gesture: raw.GesturePinch})
}

// ViewContext returns the default viewing-mode table: WASD flight, look
// around while middle (or alt+left) is held, zoom on wheel and pinch,
// click-to-walk and a picked context menu.
func ViewContext() *Context {
	return MustContext("view",
		Bind(ActionMoveForward, KeyTrigger{Code: "W"}).
			WithDescription("Move the camera forward"),
		Bind(ActionMoveBackward, KeyTrigger{Code: "S"}).
			WithDescription("Move the camera backward"),
		Bind(ActionMoveLeft, KeyTrigger{Code: "A"}).
			WithDescription("Strafe left"),
		Bind(ActionMoveRight, KeyTrigger{Code: "D"}).
			WithDescription("Strafe right"),
		Bind(ActionLookAround, lookTrigger()).
			WithDescription("Rotate the view while middle or alt+left is held"),
		Bind(ActionZoom, zoomTrigger()).
			WithDescription("Zoom with the wheel or a pinch"),
		Bind(ActionPan, GestureTrigger{Gesture: raw.GestureTwoFingerPan}).
			WithDescription("Pan with two fingers"),
		Bind(ActionWalkTo, ButtonTrigger{Button: raw.ButtonLeft, On: EdgePress}).
			When(CondNoMods).
			WithPick().
			WithDescription("Walk to the picked point"),
		Bind(ActionContextMenu, menuTrigger()).
			WithPick().
			WithDescription("Open the context menu at the picked point"),
	)
}

// EditContext returns the default editing-mode table. The same physical
// gestures resolve differently here: left selects instead of walking and
// left drag moves the selection.
func EditContext() *Context {
	return MustContext("edit",
		Bind(ActionSelect, ButtonTrigger{Button: raw.ButtonLeft, On: EdgePress}).
			When(CondNoMods).
			WithPick().
			WithDescription("Select the picked object"),
		Bind(ActionDragMove, MoveTrigger{While: raw.ButtonSet(raw.ButtonLeft)}).
			WithDescription("Move the selection while left is held"),
		Bind(ActionOrbit, lookTrigger()).
			WithDescription("Orbit the view while middle or alt+left is held"),
		Bind(ActionZoom, zoomTrigger()).
			WithDescription("Zoom with the wheel or a pinch"),
		Bind(ActionDelete, KeyTrigger{Code: "Delete", On: EdgePress}).
			WithDescription("Delete the selection"),
		Bind(ActionDuplicate, KeyTrigger{Code: "D", On: EdgePress}).
			When(CondCtrl).
			WithDescription("Duplicate the selection"),
		Bind(ActionContextMenu, menuTrigger()).
			WithPick().
			WithDescription("Open the context menu at the picked point"),
	)
}
