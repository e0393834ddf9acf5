package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tommyzliu/tilewm/internal/classify"
	"github.com/tommyzliu/tilewm/internal/config"
	"github.com/tommyzliu/tilewm/internal/layout"
	"github.com/tommyzliu/tilewm/internal/state"
)

type border struct {
	width int
	color uint32
}

type fakeServer struct {
	width, height int
	geometry      map[Window]layout.Rect
	borders       map[Window]border
	hints         map[Window]classify.Hint
	tracked       []Window
	destroyed     []Window
	focused       Window
	background    uint32
	pointer       Window
	moves         int
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		width:    1000,
		height:   800,
		geometry: make(map[Window]layout.Rect),
		borders:  make(map[Window]border),
		hints:    make(map[Window]classify.Hint),
	}
}

func (f *fakeServer) ScreenSize() (int, int) { return f.width, f.height }

func (f *fakeServer) MoveResize(win Window, r layout.Rect) {
	f.moves++
	f.geometry[win] = r
}

func (f *fakeServer) SetBorder(win Window, width int, color uint32) {
	f.borders[win] = border{width: width, color: color}
}

func (f *fakeServer) Focus(win Window) { f.focused = win }
func (f *fakeServer) Destroy(win Window) { f.destroyed = append(f.destroyed, win) }
func (f *fakeServer) SetBackground(color uint32) { f.background = color }
func (f *fakeServer) WindowUnderPointer() Window { return f.pointer }
func (f *fakeServer) Track(win Window) { f.tracked = append(f.tracked, win) }

func (f *fakeServer) ClassHint(win Window) (classify.Hint, bool) {
	h, ok := f.hints[win]
	return h, ok
}

type fakeLauncher struct {
	launched []string
}

func (l *fakeLauncher) Launch(app string) { l.launched = append(l.launched, app) }

func newTestManager(t *testing.T) (*Manager, *fakeServer, *fakeLauncher) {
	t.Helper()
	srv := newFakeServer()
	launcher := &fakeLauncher{}
	return NewManager(config.DefaultConfig(), srv, launcher, nil), srv, launcher
}

func mapAll(m *Manager, wins ...Window) {
	for _, w := range wins {
		m.Handle(MapEvent{Window: w})
	}
}

const (
	winA Window = 0xa00001
	winB Window = 0xb00001
	winC Window = 0xc00001
)

func TestMapTilesIntoGrid(t *testing.T) {
	m, srv, _ := newTestManager(t)

	mapAll(m, winA, winB, winC)

	assert.Equal(t, []Window{winA, winB, winC}, m.Windows(0))
	// 3 windows: 2 columns, 2 rows of 500x400 cells.
	assert.Equal(t, layout.Rect{X: 0, Y: 0, Width: 496, Height: 396}, srv.geometry[winA])
	assert.Equal(t, layout.Rect{X: 500, Y: 0, Width: 496, Height: 396}, srv.geometry[winB])
	assert.Equal(t, layout.Rect{X: 0, Y: 400, Width: 496, Height: 396}, srv.geometry[winC])
	assert.Equal(t, []Window{winA, winB, winC}, srv.tracked)

	for _, w := range []Window{winA, winB, winC} {
		assert.Equal(t, border{width: 2, color: 0xff0000}, srv.borders[w])
	}
}

func TestDestroyCompactsSequence(t *testing.T) {
	m, srv, _ := newTestManager(t)
	mapAll(m, winA, winB, winC)

	m.Handle(DestroyEvent{Window: winB})

	assert.Equal(t, []Window{winA, winC}, m.Windows(0))
	assert.Equal(t, layout.Rect{X: 0, Y: 0, Width: 496, Height: 796}, srv.geometry[winA])
	assert.Equal(t, layout.Rect{X: 500, Y: 0, Width: 496, Height: 796}, srv.geometry[winC])

	_, ok := m.Client(winB)
	assert.False(t, ok)
}

func TestSingleWindowFillsScreen(t *testing.T) {
	m, srv, _ := newTestManager(t)

	mapAll(m, winA)

	assert.Equal(t, layout.Rect{X: 0, Y: 0, Width: 996, Height: 796}, srv.geometry[winA])
}

func TestTileIsIdempotent(t *testing.T) {
	m, srv, _ := newTestManager(t)
	mapAll(m, winA, winB, winC)

	m.Tile(0)
	first := make(map[Window]layout.Rect)
	for k, v := range srv.geometry {
		first[k] = v
	}
	m.Tile(0)

	assert.Equal(t, first, srv.geometry)
}

func TestTileEmptyWorkspaceIsNoop(t *testing.T) {
	m, srv, _ := newTestManager(t)

	m.Tile(0)
	m.Tile(42)

	assert.Equal(t, 0, srv.moves)
}

func TestMapDuplicateIsIgnored(t *testing.T) {
	m, srv, _ := newTestManager(t)
	mapAll(m, winA)
	moves := srv.moves

	m.Handle(MapEvent{Window: winA})

	assert.Equal(t, []Window{winA}, m.Windows(0))
	assert.Equal(t, moves, srv.moves)
	assert.Len(t, srv.tracked, 1)
}

func TestMapPastCapacityLeavesWindowUnmanaged(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.WM.MaxWindows = 2
	srv := newFakeServer()
	m := NewManager(cfg, srv, &fakeLauncher{}, nil)

	mapAll(m, winA, winB, winC)

	assert.Equal(t, []Window{winA, winB}, m.Windows(0))
	_, touched := srv.geometry[winC]
	assert.False(t, touched)
	_, ok := m.Client(winC)
	assert.False(t, ok)
}

func TestCapacityIsSharedAcrossWorkspaces(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.WM.MaxWindows = 2
	m := NewManager(cfg, newFakeServer(), &fakeLauncher{}, nil)

	mapAll(m, winA)
	require.True(t, m.SwitchTo(1))
	mapAll(m, winB, winC)

	assert.Equal(t, []Window{winA}, m.Windows(0))
	assert.Equal(t, []Window{winB}, m.Windows(1))
}

func TestMapGoesToActiveWorkspace(t *testing.T) {
	m, _, _ := newTestManager(t)

	mapAll(m, winA)
	m.Handle(KeyEvent{Action: ActionWorkspace, Workspace: 2})
	mapAll(m, winB)

	assert.Equal(t, 1, m.State().Active)
	assert.Equal(t, []Window{winA}, m.Windows(0))
	assert.Equal(t, []Window{winB}, m.Windows(1))

	c, ok := m.Client(winB)
	require.True(t, ok)
	assert.Equal(t, 1, c.Workspace)
}

func TestDestroyOnInactiveWorkspace(t *testing.T) {
	m, srv, _ := newTestManager(t)
	mapAll(m, winA, winB)
	require.True(t, m.SwitchTo(1))
	mapAll(m, winC)

	m.Handle(DestroyEvent{Window: winA})

	assert.Equal(t, []Window{winB}, m.Windows(0))
	assert.Equal(t, []Window{winC}, m.Windows(1))
	assert.Equal(t, 1, m.State().Active)
	assert.Equal(t, layout.Rect{X: 0, Y: 0, Width: 996, Height: 796}, srv.geometry[winB])
}

func TestDestroyUnknownWindow(t *testing.T) {
	m, srv, _ := newTestManager(t)
	mapAll(m, winA)
	moves := srv.moves

	m.Handle(DestroyEvent{Window: 0xdead})

	assert.Equal(t, []Window{winA}, m.Windows(0))
	assert.Equal(t, moves, srv.moves)
}

func TestSwitchTo(t *testing.T) {
	m, srv, _ := newTestManager(t)
	mapAll(m, winA)
	require.True(t, m.SwitchTo(1))
	mapAll(m, winB)
	moves := srv.moves

	assert.True(t, m.SwitchTo(0))
	assert.Equal(t, 0, m.State().Active)
	// Only the newly active workspace is re-tiled.
	assert.Equal(t, moves+1, srv.moves)
}

func TestSwitchToOutOfRange(t *testing.T) {
	m, srv, _ := newTestManager(t)
	mapAll(m, winA, winB)
	before := make(map[Window]layout.Rect)
	for k, v := range srv.geometry {
		before[k] = v
	}
	moves := srv.moves

	for _, idx := range []int{-1, 10, 99} {
		assert.False(t, m.SwitchTo(idx))
	}
	m.Handle(KeyEvent{Action: ActionWorkspace, Workspace: 0})
	m.Handle(KeyEvent{Action: ActionWorkspace, Workspace: 11})

	assert.Equal(t, 0, m.State().Active)
	assert.Equal(t, moves, srv.moves)
	assert.Equal(t, before, srv.geometry)
}

func TestPointerClickFocuses(t *testing.T) {
	m, srv, _ := newTestManager(t)
	mapAll(m, winA, winB)

	srv.pointer = winB
	m.Handle(ButtonEvent{Button: 1, Modifier: true})

	assert.Equal(t, winB, m.State().Focused)
	assert.Equal(t, winB, srv.focused)

	srv.pointer = winA
	m.Handle(ButtonEvent{Button: 1, Modifier: true})
	assert.Equal(t, winA, m.State().Focused)
}

func TestPointerClickIgnored(t *testing.T) {
	tests := []struct {
		name    string
		event   ButtonEvent
		pointer Window
	}{
		{name: "no modifier", event: ButtonEvent{Button: 1}, pointer: winA},
		{name: "other button", event: ButtonEvent{Button: 3, Modifier: true}, pointer: winA},
		{name: "nothing under pointer", event: ButtonEvent{Button: 1, Modifier: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, srv, _ := newTestManager(t)
			mapAll(m, winA)
			srv.pointer = tt.pointer

			m.Handle(tt.event)

			assert.Equal(t, Window(0), m.State().Focused)
			assert.Equal(t, Window(0), srv.focused)
		})
	}
}

func TestPointerClickOnUnmanagedWindow(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.WM.MaxWindows = 1
	srv := newFakeServer()
	m := NewManager(cfg, srv, &fakeLauncher{}, nil)

	mapAll(m, winA, winB)
	require.Equal(t, []Window{winA}, m.Windows(0), "winB is over capacity")

	srv.pointer = winB
	m.Handle(ButtonEvent{Button: 1, Modifier: true})
	assert.Equal(t, Window(0), m.State().Focused)
	assert.Equal(t, Window(0), srv.focused)

	srv.pointer = winA
	m.Handle(ButtonEvent{Button: 1, Modifier: true})
	m.Handle(DestroyEvent{Window: winA})
	m.OnPointerClick(winA)
	assert.Equal(t, Window(0), m.State().Focused, "destroyed windows cannot regain focus")
}

func TestDestroyFocusedClearsFocus(t *testing.T) {
	m, srv, _ := newTestManager(t)
	mapAll(m, winA, winB)
	srv.pointer = winA
	m.Handle(ButtonEvent{Button: 1, Modifier: true})
	m.Handle(EnterEvent{Window: winA})

	m.Handle(DestroyEvent{Window: winA})

	assert.Equal(t, Window(0), m.State().Focused)
	assert.Equal(t, Window(0), m.State().Hovered)
}

func TestDestroyOtherKeepsFocus(t *testing.T) {
	m, srv, _ := newTestManager(t)
	mapAll(m, winA, winB)
	srv.pointer = winA
	m.Handle(ButtonEvent{Button: 1, Modifier: true})
	m.Handle(EnterEvent{Window: winA})

	m.Handle(DestroyEvent{Window: winB})

	assert.Equal(t, winA, m.State().Focused)
	assert.Equal(t, winA, m.State().Hovered)
}

func TestEnterUnmanagedIgnored(t *testing.T) {
	m, _, _ := newTestManager(t)
	mapAll(m, winA)

	m.Handle(EnterEvent{Window: 0xdead})

	assert.Equal(t, Window(0), m.State().Hovered)
}

func TestBarIsStretchedAcrossTop(t *testing.T) {
	m, srv, _ := newTestManager(t)
	srv.hints[winB] = classify.Hint{Instance: "bar", Class: "Polybar"}

	mapAll(m, winA, winB, winC)

	assert.Equal(t, layout.Rect{X: 0, Y: 0, Width: 1000, Height: 2}, srv.geometry[winB])
	assert.Equal(t, border{width: 2, color: 0xff0000}, srv.borders[winB])
	// The bar keeps its slot; C stays in the second row.
	assert.Equal(t, layout.Rect{X: 0, Y: 400, Width: 496, Height: 396}, srv.geometry[winC])

	c, ok := m.Client(winB)
	require.True(t, ok)
	assert.Equal(t, classify.Bar, c.Class)
}

func TestBrowserGetsAccentBorder(t *testing.T) {
	m, srv, _ := newTestManager(t)
	srv.hints[winA] = classify.Hint{Instance: "Navigator", Class: "firefox"}

	mapAll(m, winA, winB)

	assert.Equal(t, border{width: 2, color: 0x00ff00}, srv.borders[winA])
	assert.Equal(t, border{width: 2, color: 0xff0000}, srv.borders[winB])
	assert.Equal(t, layout.Rect{X: 0, Y: 0, Width: 496, Height: 796}, srv.geometry[winA])
}

func TestLaunchKeys(t *testing.T) {
	m, _, launcher := newTestManager(t)

	m.Handle(KeyEvent{Action: ActionTerminal})
	m.Handle(KeyEvent{Action: ActionBrowser})

	assert.Equal(t, []string{"kitty", "firefox"}, launcher.launched)
}

func TestCloseDestroysWindowUnderPointer(t *testing.T) {
	m, srv, _ := newTestManager(t)
	mapAll(m, winA)

	m.Handle(KeyEvent{Action: ActionClose})
	assert.Empty(t, srv.destroyed)

	srv.pointer = winA
	m.Handle(KeyEvent{Action: ActionClose})
	assert.Equal(t, []Window{winA}, srv.destroyed)
	// The registry only changes when the server reports the destruction.
	assert.Equal(t, []Window{winA}, m.Windows(0))
}

func TestBackgroundCommand(t *testing.T) {
	m, srv, _ := newTestManager(t)

	m.Handle(KeyEvent{Action: ActionEnter, Text: "background #112233"})

	assert.Equal(t, uint32(0x112233), srv.background)
	assert.Equal(t, uint32(0x112233), m.State().Background)
}

func TestBackgroundCommandIgnoresOtherText(t *testing.T) {
	m, srv, _ := newTestManager(t)
	m.Start()

	m.Handle(KeyEvent{Action: ActionEnter, Text: "hello #112233"})
	m.Handle(KeyEvent{Action: ActionEnter, Text: "background"})

	assert.Equal(t, uint32(0x006400), srv.background)
}

func TestBackgroundCommandInvalidHex(t *testing.T) {
	m, srv, _ := newTestManager(t)
	m.Start()

	m.Handle(KeyEvent{Action: ActionEnter, Text: "background #zzzzzz"})

	assert.Equal(t, uint32(0), srv.background)
}

func TestStartPaintsBackground(t *testing.T) {
	m, srv, _ := newTestManager(t)

	m.Start()

	assert.Equal(t, uint32(0x006400), srv.background)
}

type unknownEvent struct{}

func (unknownEvent) event() {}

func TestUnknownEventIgnored(t *testing.T) {
	m, srv, launcher := newTestManager(t)
	var notified int
	m.OnChange = func(*state.Snapshot) { notified++ }

	m.Handle(unknownEvent{})
	m.Handle(nil)
	m.Handle(KeyEvent{Action: ActionNone})

	assert.Equal(t, 0, srv.moves)
	assert.Empty(t, launcher.launched)
	assert.Equal(t, 0, notified, "ignored events write no snapshot")
}

func TestSnapshot(t *testing.T) {
	m, srv, _ := newTestManager(t)
	srv.hints[winC] = classify.Hint{Class: "Firefox"}
	mapAll(m, winA)
	require.True(t, m.SwitchTo(2))
	mapAll(m, winC)
	srv.pointer = winC
	m.Handle(ButtonEvent{Button: 1, Modifier: true})

	var got *state.Snapshot
	m.OnChange = func(s *state.Snapshot) { got = s }
	m.Handle(EnterEvent{Window: winC})

	require.NotNil(t, got)
	assert.Equal(t, 2, got.Active)
	assert.Equal(t, uint32(winC), got.Focused)
	assert.Equal(t, uint32(winC), got.Hovered)
	assert.Equal(t, 50, got.Capacity)
	require.Len(t, got.Workspaces, 10)
	assert.Equal(t, 2, got.WindowCount())
	require.Len(t, got.Workspaces[2].Windows, 1)
	assert.Equal(t, "browser", got.Workspaces[2].Windows[0].Class)
	assert.Equal(t, uint32(0x00ff00), got.Workspaces[2].Windows[0].BorderColor)
	assert.Equal(t, uint32(winA), got.Workspaces[0].Windows[0].ID)
}
