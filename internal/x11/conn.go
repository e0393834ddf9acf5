package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/tommyzliu/tilewm/internal/classify"
	"github.com/tommyzliu/tilewm/internal/command"
	"github.com/tommyzliu/tilewm/internal/layout"
	"github.com/tommyzliu/tilewm/internal/logging"
	"github.com/tommyzliu/tilewm/internal/wm"
)

// Conn is a connection to the X server. It implements wm.Server.
type Conn struct {
	xu   *xgbutil.XUtil
	root xproto.Window
	log  *logging.Logger

	handler Handler
	line    *command.Line
	modMask uint16
}

var _ wm.Server = (*Conn)(nil)

// Open connects to display, or to $DISPLAY when display is empty.
func Open(display string, log *logging.Logger) (*Conn, error) {
	if log == nil {
		log = logging.Discard()
	}

	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to open display %q: %w", display, err)
	}

	keybind.Initialize(xu)
	mousebind.Initialize(xu)

	c := &Conn{
		xu:   xu,
		root: xu.RootWin(),
		log:  log,
		line: command.NewLine(0),
	}

	// Requests are unchecked, so failures arrive here
	xevent.ErrorHandlerSet(xu, func(err xgb.Error) {
		c.log.Debugf("x error: %v", err)
	})

	return c, nil
}

// Close disconnects from the X server.
func (c *Conn) Close() {
	c.xu.Conn().Close()
}

// ScreenSize returns the root window size in pixels.
func (c *Conn) ScreenSize() (width, height int) {
	screen := c.xu.Screen()
	return int(screen.WidthInPixels), int(screen.HeightInPixels)
}

// MoveResize sets the geometry of win.
func (c *Conn) MoveResize(win wm.Window, r layout.Rect) {
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
	xproto.ConfigureWindow(c.xu.Conn(), xproto.Window(win), mask, []uint32{
		uint32(int32(r.X)),
		uint32(int32(r.Y)),
		uint32(max(r.Width, 1)),
		uint32(max(r.Height, 1)),
	})
}

// SetBorder sets the border width and colour of win.
func (c *Conn) SetBorder(win wm.Window, width int, color uint32) {
	xproto.ConfigureWindow(c.xu.Conn(), xproto.Window(win),
		xproto.ConfigWindowBorderWidth, []uint32{uint32(max(width, 0))})
	xproto.ChangeWindowAttributes(c.xu.Conn(), xproto.Window(win),
		xproto.CwBorderPixel, []uint32{color})
}

// Focus gives input focus to win.
func (c *Conn) Focus(win wm.Window) {
	xproto.SetInputFocus(c.xu.Conn(), xproto.InputFocusPointerRoot,
		xproto.Window(win), xproto.TimeCurrentTime)
}

// Destroy destroys win.
func (c *Conn) Destroy(win wm.Window) {
	xproto.DestroyWindow(c.xu.Conn(), xproto.Window(win))
}

// SetBackground paints the root window with color and redraws it.
func (c *Conn) SetBackground(color uint32) {
	xproto.ChangeWindowAttributes(c.xu.Conn(), c.root, xproto.CwBackPixel, []uint32{color})
	xproto.ClearArea(c.xu.Conn(), false, c.root, 0, 0, 0, 0)
}

// WindowUnderPointer returns the top-level child of the root below the
// pointer, or 0.
func (c *Conn) WindowUnderPointer() wm.Window {
	reply, err := xproto.QueryPointer(c.xu.Conn(), c.root).Reply()
	if err != nil {
		c.log.Debugf("query pointer: %v", err)
		return 0
	}
	return wm.Window(reply.Child)
}

// ClassHint reads WM_CLASS of win.
func (c *Conn) ClassHint(win wm.Window) (classify.Hint, bool) {
	class, err := icccm.WmClassGet(c.xu, xproto.Window(win))
	if err != nil {
		return classify.Hint{}, false
	}
	return classify.Hint{Instance: class.Instance, Class: class.Class}, true
}

// Track asks for enter and structure notifications on win.
func (c *Conn) Track(win wm.Window) {
	w := xproto.Window(win)
	xproto.ChangeWindowAttributes(c.xu.Conn(), w, xproto.CwEventMask,
		[]uint32{xproto.EventMaskEnterWindow | xproto.EventMaskStructureNotify})

	xevent.EnterNotifyFun(func(xu *xgbutil.XUtil, ev xevent.EnterNotifyEvent) {
		c.dispatch(wm.EnterEvent{Window: wm.Window(ev.Event)})
	}).Connect(c.xu, w)
}
