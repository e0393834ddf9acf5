package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/tommyzliu/tilewm/internal/config"
	"github.com/tommyzliu/tilewm/internal/wm"
)

// ErrEventStreamClosed is returned by Run when the X event loop ends.
var ErrEventStreamClosed = errors.New("event stream closed")

// Handler receives translated X events.
type Handler interface {
	Handle(ev wm.Event)
}

// Run selects root window events, installs the key and button grabs from
// keys and delivers events to h until the connection ends.
func (c *Conn) Run(h Handler, keys config.KeysConfig) error {
	c.handler = h
	c.modMask = ModMask(keys.Modifier)

	mask := uint32(xproto.EventMaskSubstructureNotify | xproto.EventMaskKeyPress |
		xproto.EventMaskButtonPress)
	err := xproto.ChangeWindowAttributesChecked(c.xu.Conn(), c.root,
		xproto.CwEventMask, []uint32{mask}).Check()
	if err != nil {
		return fmt.Errorf("failed to select root window events: %w", err)
	}

	for _, b := range KeyBindings(keys) {
		ev := b.Event
		err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, _ xevent.KeyPressEvent) {
			c.dispatch(ev)
		}).Connect(c.xu, c.root, b.Combo, true)
		if err != nil {
			c.log.Warnf("failed to bind %s: %v", b.Combo, err)
		}
	}

	button := ButtonCombo(keys)
	err = mousebind.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		c.dispatch(wm.ButtonEvent{
			Button:   int(ev.Detail),
			Modifier: ev.State&c.modMask != 0,
		})
	}).Connect(c.xu, c.root, button, false, true)
	if err != nil {
		c.log.Warnf("failed to bind %s: %v", button, err)
	}

	xevent.KeyPressFun(c.onKeyPress).Connect(c.xu, c.root)

	xevent.MapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MapNotifyEvent) {
		if ev.OverrideRedirect {
			return
		}
		c.dispatch(wm.MapEvent{Window: wm.Window(ev.Window)})
	}).Connect(c.xu, c.root)

	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		xevent.Detach(xu, ev.Window)
		c.dispatch(wm.DestroyEvent{Window: wm.Window(ev.Window)})
	}).Connect(c.xu, c.root)

	c.log.Verbosef("event loop started on root 0x%x", uint32(c.root))
	xevent.Main(c.xu)
	return ErrEventStreamClosed
}

// onKeyPress feeds un-grabbed key presses into the typed line. Presses with
// the binding modifier belong to the grabs.
func (c *Conn) onKeyPress(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
	if c.modMask != 0 && ev.State&c.modMask != 0 {
		return
	}

	column := byte(0)
	if ev.State&xproto.ModMaskShift != 0 {
		column = 1
	}
	sym := keybind.KeysymGet(xu, ev.Detail, column)

	op, r := translateKeysym(sym)
	switch op {
	case opInsert:
		c.line.Insert(r)
	case opBackspace:
		c.line.Backspace()
	case opClear:
		c.line.Reset()
	case opSubmit:
		c.dispatch(wm.KeyEvent{Action: wm.ActionEnter, Text: c.line.Submit()})
	}
}

func (c *Conn) dispatch(ev wm.Event) {
	if c.handler != nil {
		c.handler.Handle(ev)
	}
}
