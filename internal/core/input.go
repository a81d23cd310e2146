package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - move/steer up, rotate in Block-Stack
	ActionDown           // S, J, Down arrow - move/steer down, soft drop
	ActionLeft           // A, H, Left arrow
	ActionRight          // D, L, Right arrow
	ActionConfirm        // Enter, Space - activate the card/tile under the cursor
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart or reshuffle
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
	ActionAnyKey         // any other key; only meaningful on game-over screens
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionAnyKey:
		return "AnyKey"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single host tick.
// It contains all actions that were triggered during this frame plus at most
// one pointer activation.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// Pointer is the screen cell that was clicked this frame, if any.
	Pointer *Point

	// order keeps direction presses in arrival order so two quick turns
	// inside one frame are not collapsed.
	order []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	if !f.Actions[a] {
		f.order = append(f.order, a)
	}
	f.Actions[a] = true
}

// Click records a pointer activation at the given screen cell.
func (f *InputFrame) Click(x, y int) {
	p := Pt(x, y)
	f.Pointer = &p
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Any reports whether anything at all was pressed or clicked this frame.
func (f InputFrame) Any() bool {
	return len(f.Actions) > 0 || f.Pointer != nil
}

// Ordered returns the triggered actions in the order they arrived.
func (f InputFrame) Ordered() []Action {
	return f.order
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = nil
	f.order = f.order[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for _, a := range f.order {
		clone.Set(a)
	}
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if f.Pointer != nil {
		clone.Click(f.Pointer.X, f.Pointer.Y)
	}
	return clone
}
