package wm

// Event is something the display server reported.
type Event interface {
	event()
}

// Action is what a bound key combination asks for.
type Action int

const (
	ActionNone Action = iota
	ActionTerminal
	ActionBrowser
	ActionClose
	ActionWorkspace
	ActionEnter
)

// KeyEvent is a bound key combination, or Enter on the root window.
// Workspace is 1-based and only set for ActionWorkspace; Text is the typed
// line submitted with ActionEnter.
type KeyEvent struct {
	Action    Action
	Workspace int
	Text      string
}

// MapEvent reports that a window became visible.
type MapEvent struct {
	Window Window
}

// DestroyEvent reports that a window is gone.
type DestroyEvent struct {
	Window Window
}

// ButtonEvent reports a pointer button press on the root window.
// Modifier is set when the configured modifier was held.
type ButtonEvent struct {
	Button   int
	Modifier bool
}

// EnterEvent reports that the pointer entered a managed window.
type EnterEvent struct {
	Window Window
}

func (KeyEvent) event()     {}
func (MapEvent) event()     {}
func (DestroyEvent) event() {}
func (ButtonEvent) event()  {}
func (EnterEvent) event()   {}
