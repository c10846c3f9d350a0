package core

// Action is a platform-level input, independent of the physical key.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm // blast the tile under the cursor
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "Unknown"
}

// InputFrame is the input gathered between two ticks.
type InputFrame struct {
	actions uint16 // bit per Action
	// Clicks lists mouse presses in screen coordinates, oldest first.
	Clicks []Point
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a as triggered. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || int(a) >= len(actionNames) {
		return
	}
	f.actions |= 1 << a
}

// Click records a mouse press at screen cell (x, y).
func (f *InputFrame) Click(x, y int) {
	f.Clicks = append(f.Clicks, Point{X: x, Y: y})
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a != ActionNone && f.actions&(1<<a) != 0
}

// Empty reports whether nothing happened this frame.
func (f InputFrame) Empty() bool {
	return f.actions == 0 && len(f.Clicks) == 0
}

// Clear resets the frame for the next tick, keeping the click buffer.
func (f *InputFrame) Clear() {
	f.actions = 0
	f.Clicks = f.Clicks[:0]
}
