package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/tommyzliu/tilewm/internal/layout"
)

// Snapshot is a point-in-time view of the window manager, written for
// `tilewm status`. It is never read back by the manager itself.
type Snapshot struct {
	PID        int         `json:"pid" yaml:"pid"`
	Active     int         `json:"active_workspace" yaml:"active_workspace"`
	Focused    uint32      `json:"focused" yaml:"focused"`
	Hovered    uint32      `json:"hovered" yaml:"hovered"`
	Background uint32      `json:"background" yaml:"background"`
	Capacity   int         `json:"capacity" yaml:"capacity"`
	Workspaces []Workspace `json:"workspaces" yaml:"workspaces"`
	UpdatedAt  time.Time   `json:"updated_at" yaml:"updated_at"`
}

// Workspace lists the managed windows of one workspace in tiling order
type Workspace struct {
	Index   int      `json:"index" yaml:"index"`
	Windows []Window `json:"windows" yaml:"windows"`
}

// Window is one managed window as last configured
type Window struct {
	ID          uint32      `json:"id" yaml:"id"`
	Class       string      `json:"class" yaml:"class"`
	Geometry    layout.Rect `json:"geometry" yaml:"geometry"`
	BorderWidth int         `json:"border_width" yaml:"border_width"`
	BorderColor uint32      `json:"border_color" yaml:"border_color"`
}

// WindowCount returns the number of managed windows across all workspaces
func (s *Snapshot) WindowCount() int {
	n := 0
	for _, ws := range s.Workspaces {
		n += len(ws.Windows)
	}
	return n
}

// Store manages snapshot persistence with file locking
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a new Store for the specified directory
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// DefaultDir returns $XDG_RUNTIME_DIR/tilewm, or a directory under the OS
// temp dir when no runtime dir is set.
func DefaultDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "tilewm")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("tilewm-%d", os.Getuid()))
}

// Dir returns the directory holding the snapshot
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the snapshot file location
func (s *Store) Path() string {
	return filepath.Join(s.dir, "state.json")
}

func (s *Store) lockPath() string {
	return filepath.Join(s.dir, "state.json.lock")
}

// Load reads the snapshot with a read lock. A missing file yields
// os.ErrNotExist wrapped in the returned error.
func (s *Store) Load() (*Snapshot, error) {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	lock := flock.New(s.lockPath())
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("failed to acquire read lock: %w", err)
	}
	defer lock.Unlock()

	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	if snap.Workspaces == nil {
		snap.Workspaces = []Workspace{}
	}

	return &snap, nil
}

// Save writes the snapshot with write lock and atomic write
func (s *Store) Save(snap *Snapshot) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	lock := flock.New(s.lockPath())
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()

	snap.UpdatedAt = s.now()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Write to temp file first (atomic write)
	path := s.Path()
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // Clean up temp file on error
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Reset removes any snapshot left by a previous run
func (s *Store) Reset() error {
	lock := flock.New(s.lockPath())
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()

	if err := os.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}
