package wm

import (
	"os"

	"github.com/tommyzliu/tilewm/internal/classify"
	"github.com/tommyzliu/tilewm/internal/command"
	"github.com/tommyzliu/tilewm/internal/config"
	"github.com/tommyzliu/tilewm/internal/layout"
	"github.com/tommyzliu/tilewm/internal/logging"
	"github.com/tommyzliu/tilewm/internal/registry"
	"github.com/tommyzliu/tilewm/internal/state"
)

// State is the process-wide manager state. Zero window handles mean none.
type State struct {
	Active     int
	Focused    Window
	Hovered    Window
	Background uint32
}

// Client is a managed window and the treatment it last received.
type Client struct {
	Window      Window
	Workspace   int
	Class       classify.Class
	Geometry    layout.Rect
	BorderWidth int
	BorderColor uint32
}

// Manager owns the window registry, the focus state and the layout of every
// workspace. It is driven by Handle and is not safe for concurrent use; the
// event loop calls it from a single goroutine.
type Manager struct {
	cfg      *config.Config
	server   Server
	launcher Launcher
	log      *logging.Logger

	registry *registry.Registry
	clients  map[Window]*Client
	state    State

	// OnChange, if set, receives a snapshot after every handled event.
	OnChange func(*state.Snapshot)
}

// NewManager creates a manager for the given configuration and collaborators.
func NewManager(cfg *config.Config, server Server, launcher Launcher, log *logging.Logger) *Manager {
	if log == nil {
		log = logging.Discard()
	}

	return &Manager{
		cfg:      cfg,
		server:   server,
		launcher: launcher,
		log:      log,
		registry: registry.New(cfg.WM.Workspaces, cfg.WM.MaxWindows),
		clients:  make(map[Window]*Client),
		state: State{
			Background: cfg.Colors.Background,
		},
	}
}

// Start paints the configured background. Call once before handling events.
func (m *Manager) Start() {
	m.SetBackground(m.cfg.Colors.Background)
	m.notify()
}

// Handle applies one server event. Unrecognized events are ignored.
func (m *Manager) Handle(ev Event) {
	switch e := ev.(type) {
	case KeyEvent:
		if e.Action == ActionNone {
			m.log.Debugf("ignoring unbound key")
			return
		}
		m.handleKey(e)
	case MapEvent:
		m.handleMap(e.Window)
	case DestroyEvent:
		m.handleDestroy(e.Window)
	case ButtonEvent:
		m.handleButton(e)
	case EnterEvent:
		m.OnPointerEnter(e.Window)
	default:
		m.log.Debugf("ignoring event %T", ev)
		return
	}

	m.notify()
}

func (m *Manager) handleKey(e KeyEvent) {
	switch e.Action {
	case ActionTerminal:
		m.launcher.Launch(m.cfg.Apps.Terminal)
	case ActionBrowser:
		m.launcher.Launch(m.cfg.Apps.Browser)
	case ActionClose:
		if win := m.server.WindowUnderPointer(); win != 0 {
			m.log.Verbosef("closing window 0x%x", uint32(win))
			m.server.Destroy(win)
		}
	case ActionWorkspace:
		m.SwitchTo(e.Workspace - 1)
	case ActionEnter:
		hex, ok := command.ParseBackground(e.Text, m.cfg.Command.BackgroundKeyword)
		if ok {
			m.SetBackground(command.ParseColor(hex))
		}
	}
}

func (m *Manager) handleMap(win Window) {
	ws := m.state.Active
	if err := m.registry.Register(ws, uint32(win)); err != nil {
		m.log.Debugf("window 0x%x left unmanaged: %v", uint32(win), err)
		return
	}

	m.clients[win] = &Client{Window: win, Workspace: ws}
	m.server.Track(win)
	m.log.Debugf("managing window 0x%x on workspace %d", uint32(win), ws+1)
	m.Tile(ws)
}

func (m *Manager) handleDestroy(win Window) {
	if ws, ok := m.registry.WorkspaceOf(uint32(win)); ok && m.registry.Unregister(ws, uint32(win)) {
		delete(m.clients, win)
		m.log.Debugf("window 0x%x destroyed", uint32(win))
		m.Tile(ws)
	}
	m.OnWindowDestroyed(win)
}

func (m *Manager) handleButton(e ButtonEvent) {
	if !e.Modifier || e.Button != m.cfg.Keys.FocusButton {
		return
	}
	if win := m.server.WindowUnderPointer(); win != 0 {
		m.OnPointerClick(win)
	}
}

// Tile lays out every window of workspace ws. Windows are classified on each
// pass: bars are stretched across the top edge and browsers get the accent
// border colour.
func (m *Manager) Tile(ws int) {
	wins := m.registry.Windows(ws)
	if len(wins) == 0 {
		return
	}

	width, height := m.server.ScreenSize()
	screen := layout.Rect{Width: width, Height: height}
	border := m.cfg.WM.BorderWidth
	rects := layout.Tile(len(wins), screen, border)

	for i, id := range wins {
		win := Window(id)
		hint, ok := m.server.ClassHint(win)
		class := classify.Classify(hint, ok, m.cfg.Classify)

		geom := rects[i]
		color := m.cfg.Colors.Border
		switch class {
		case classify.BrowserLike:
			color = m.cfg.Colors.Accent
		case classify.Bar:
			geom = layout.Bar(screen, m.cfg.WM.BarHeight)
		}

		m.server.SetBorder(win, border, color)
		m.server.MoveResize(win, geom)

		c := m.clients[win]
		c.Class = class
		c.Geometry = geom
		c.BorderWidth = border
		c.BorderColor = color
	}
}

// SwitchTo makes workspace index active and tiles it. Out-of-range indexes
// are ignored. Windows of the previous workspace are left where they are.
func (m *Manager) SwitchTo(index int) bool {
	if index < 0 || index >= m.registry.Workspaces() {
		return false
	}

	m.state.Active = index
	m.log.Verbosef("switched to workspace %d", index+1)
	m.Tile(index)
	return true
}

// OnPointerClick gives win the input focus. Clicks on windows that are not
// managed are ignored.
func (m *Manager) OnPointerClick(win Window) {
	if !m.managed(win) {
		m.log.Debugf("not focusing unmanaged window 0x%x", uint32(win))
		return
	}
	m.state.Focused = win
	m.server.Focus(win)
}

// OnPointerEnter records the managed window under the pointer.
func (m *Manager) OnPointerEnter(win Window) {
	if !m.managed(win) {
		return
	}
	m.state.Hovered = win
}

func (m *Manager) managed(win Window) bool {
	return win != 0 && m.registry.Contains(uint32(win))
}

// OnWindowDestroyed drops focus and hover references to win. Focus is not
// handed to another window.
func (m *Manager) OnWindowDestroyed(win Window) {
	if m.state.Focused == win {
		m.state.Focused = 0
	}
	if m.state.Hovered == win {
		m.state.Hovered = 0
	}
}

// SetBackground paints the root window.
func (m *Manager) SetBackground(color uint32) {
	m.state.Background = color
	m.server.SetBackground(color)
}

// State returns a copy of the manager state.
func (m *Manager) State() State {
	return m.state
}

// Windows returns the windows of workspace ws in tiling order.
func (m *Manager) Windows(ws int) []Window {
	ids := m.registry.Windows(ws)
	out := make([]Window, len(ids))
	for i, id := range ids {
		out[i] = Window(id)
	}
	return out
}

// Client returns a copy of the record for a managed window.
func (m *Manager) Client(win Window) (Client, bool) {
	c, ok := m.clients[win]
	if !ok {
		return Client{}, false
	}
	return *c, true
}

// Snapshot captures the current state for status reporting.
func (m *Manager) Snapshot() *state.Snapshot {
	snap := &state.Snapshot{
		PID:        os.Getpid(),
		Active:     m.state.Active,
		Focused:    uint32(m.state.Focused),
		Hovered:    uint32(m.state.Hovered),
		Background: m.state.Background,
		Capacity:   m.registry.Capacity(),
		Workspaces: make([]state.Workspace, m.registry.Workspaces()),
	}

	for ws := range snap.Workspaces {
		ids := m.registry.Windows(ws)
		windows := make([]state.Window, 0, len(ids))
		for _, id := range ids {
			c := m.clients[Window(id)]
			windows = append(windows, state.Window{
				ID:          id,
				Class:       c.Class.String(),
				Geometry:    c.Geometry,
				BorderWidth: c.BorderWidth,
				BorderColor: c.BorderColor,
			})
		}
		snap.Workspaces[ws] = state.Workspace{Index: ws, Windows: windows}
	}

	return snap
}

func (m *Manager) notify() {
	if m.OnChange != nil {
		m.OnChange(m.Snapshot())
	}
}
