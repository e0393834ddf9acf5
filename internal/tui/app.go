package tui

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/tommyzliu/tilewm/internal/state"
	"github.com/tommyzliu/tilewm/internal/tui/views"
)

// RefreshInterval is how often the snapshot file is re-read when no file
// change was reported
const RefreshInterval = time.Second

// AppState represents the current state of the application
type AppState string

const (
	StateDashboard AppState = "dashboard"
	StateHelp      AppState = "help"
)

type tickMsg time.Time

// snapshotChangedMsg reports a write to the snapshot file
type snapshotChangedMsg struct{}

type watchErrMsg struct{ err error }

// App is the root Bubbletea model
type App struct {
	ctx       *Context
	state     AppState
	keyMap    KeyMap
	styles    Styles
	snapshot  *state.Snapshot
	dashboard *views.Dashboard
	help      *views.Help
	watcher   *fsnotify.Watcher
	err       error
}

// NewApp creates a new App instance
func NewApp(ctx *Context) *App {
	app := &App{
		ctx:    ctx,
		state:  StateDashboard,
		keyMap: DefaultKeyMap(),
		styles: DefaultStyles(),
	}

	app.dashboard = views.NewDashboard(app.styles.Dashboard)
	app.help = views.NewHelp(app.styles.Help, app.keyMap.Bindings())
	app.reload()

	return app
}

// Init starts the refresh ticker and, after Watch, the file watcher
func (a *App) Init() tea.Cmd {
	if a.watcher != nil {
		return tea.Batch(tick(), a.waitForChange())
	}
	return tick()
}

// Watch reloads the snapshot as soon as the window manager rewrites it
// rather than on the next tick.
func (a *App) Watch() error {
	if a.ctx.Store == nil {
		return fmt.Errorf("no state store configured")
	}
	if err := os.MkdirAll(a.ctx.Store.Dir(), 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(a.ctx.Store.Dir()); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch %s: %w", a.ctx.Store.Dir(), err)
	}

	a.watcher = w
	return nil
}

// Close stops the file watcher
func (a *App) Close() error {
	if a.watcher == nil {
		return nil
	}
	err := a.watcher.Close()
	a.watcher = nil
	return err
}

// waitForChange blocks until the snapshot file itself changes. The store
// replaces it by rename, which shows up as Create.
func (a *App) waitForChange() tea.Cmd {
	w := a.watcher
	path := a.ctx.Store.Path()
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if ev.Name != path {
					continue
				}
				if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Remove) {
					return snapshotChangedMsg{}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		a.ctx.Width = msg.Width
		a.ctx.Height = msg.Height
		a.dashboard.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil
	case tickMsg:
		a.reload()
		return a, tick()
	case snapshotChangedMsg:
		a.reload()
		return a, a.waitForChange()
	case watchErrMsg:
		a.err = msg.err
		return a, a.waitForChange()
	}
	return a, nil
}

// View renders the app
func (a *App) View() string {
	var out string
	switch a.state {
	case StateHelp:
		out = a.help.View()
	default:
		out = a.dashboard.View()
	}

	if a.err != nil {
		out += "\n" + a.styles.ErrorText.Render(fmt.Sprintf("Error: %v", a.err))
	}
	return out
}

// handleKeyMsg handles key messages
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keyMap.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keyMap.Help):
		if a.state == StateDashboard {
			a.state = StateHelp
		} else {
			a.state = StateDashboard
		}
	case key.Matches(msg, a.keyMap.Refresh):
		a.reload()
	case key.Matches(msg, a.keyMap.Up):
		a.dashboard.MoveUp()
	case key.Matches(msg, a.keyMap.Down):
		a.dashboard.MoveDown()
	}
	return a, nil
}

// reload re-reads the snapshot. A missing file means the window manager is
// not running and is not an error.
func (a *App) reload() {
	if a.ctx.Store == nil {
		return
	}

	snap, err := a.ctx.Store.Load()
	switch {
	case errors.Is(err, os.ErrNotExist):
		a.snapshot, a.err = nil, nil
	case err != nil:
		a.err = err
		return
	default:
		a.snapshot, a.err = snap, nil
	}
	a.dashboard.SetSnapshot(a.snapshot)
}

// Snapshot returns the snapshot currently shown
func (a *App) Snapshot() *state.Snapshot {
	return a.snapshot
}
