package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/tommyzliu/tilewm/internal/config"
	"github.com/tommyzliu/tilewm/internal/wm"
)

// KeyBinding pairs a key combination in xgbutil notation ("Mod1-q") with
// the event it produces.
type KeyBinding struct {
	Combo string
	Event wm.KeyEvent
}

// KeyBindings expands the configured keys into grab combinations. Empty keys
// are skipped.
func KeyBindings(keys config.KeysConfig) []KeyBinding {
	var out []KeyBinding
	add := func(key string, ev wm.KeyEvent) {
		if key == "" {
			return
		}
		out = append(out, KeyBinding{Combo: combo(keys.Modifier, key), Event: ev})
	}

	add(keys.Terminal, wm.KeyEvent{Action: wm.ActionTerminal})
	add(keys.Browser, wm.KeyEvent{Action: wm.ActionBrowser})
	add(keys.Close, wm.KeyEvent{Action: wm.ActionClose})
	for i, key := range keys.Workspaces {
		add(key, wm.KeyEvent{Action: wm.ActionWorkspace, Workspace: i + 1})
	}
	return out
}

// ButtonCombo returns the focus button combination, e.g. "Mod1-1".
func ButtonCombo(keys config.KeysConfig) string {
	return combo(keys.Modifier, fmt.Sprint(keys.FocusButton))
}

func combo(modifier, key string) string {
	if modifier == "" {
		return key
	}
	return modifier + "-" + key
}

var modMasks = map[string]uint16{
	"shift":   xproto.ModMaskShift,
	"lock":    xproto.ModMaskLock,
	"control": xproto.ModMaskControl,
	"ctrl":    xproto.ModMaskControl,
	"mod1":    xproto.ModMask1,
	"mod2":    xproto.ModMask2,
	"mod3":    xproto.ModMask3,
	"mod4":    xproto.ModMask4,
	"mod5":    xproto.ModMask5,
}

// ModMask returns the X modifier mask for a modifier name, or 0 when the
// name is unknown.
func ModMask(name string) uint16 {
	return modMasks[strings.ToLower(name)]
}

// keyOp is what a key press does to the typed line.
type keyOp int

const (
	opIgnore keyOp = iota
	opInsert
	opBackspace
	opClear
	opSubmit
)

const (
	keysymBackSpace xproto.Keysym = 0xff08
	keysymReturn    xproto.Keysym = 0xff0d
	keysymKPEnter   xproto.Keysym = 0xff8d
	keysymEscape    xproto.Keysym = 0xff1b
)

// translateKeysym maps a keysym to a line edit. Latin-1 printable keysyms
// equal their code points.
func translateKeysym(sym xproto.Keysym) (keyOp, rune) {
	switch {
	case sym >= 0x20 && sym <= 0x7e:
		return opInsert, rune(sym)
	case sym == keysymReturn || sym == keysymKPEnter:
		return opSubmit, 0
	case sym == keysymBackSpace:
		return opBackspace, 0
	case sym == keysymEscape:
		return opClear, 0
	}
	return opIgnore, 0
}
