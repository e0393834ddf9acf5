package wm

import (
	"github.com/tommyzliu/tilewm/internal/classify"
	"github.com/tommyzliu/tilewm/internal/layout"
)

// Window is an X window id. Zero means no window.
type Window uint32

// Server is the display server as seen by the manager. Every request is
// best-effort: failures are the server's business and never reach the core.
type Server interface {
	ScreenSize() (width, height int)
	MoveResize(win Window, r layout.Rect)
	SetBorder(win Window, width int, color uint32)
	Focus(win Window)
	Destroy(win Window)
	SetBackground(color uint32)
	// WindowUnderPointer returns the top-level window below the pointer, or 0.
	WindowUnderPointer() Window
	// ClassHint returns the WM_CLASS of win; ok is false when it has none.
	ClassHint(win Window) (hint classify.Hint, ok bool)
	// Track asks for pointer-enter notifications on a newly managed window.
	Track(win Window)
}

// Launcher starts external programs without waiting for them.
type Launcher interface {
	Launch(app string)
}
