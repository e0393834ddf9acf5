package registry

import "errors"

var (
	// ErrCapacityExceeded is returned when every window slot is in use.
	ErrCapacityExceeded = errors.New("window capacity exceeded")
	// ErrInvalidWorkspace is returned for a workspace index outside the registry.
	ErrInvalidWorkspace = errors.New("invalid workspace index")
	// ErrAlreadyManaged is returned when the window is already tracked in some workspace.
	ErrAlreadyManaged = errors.New("window already managed")
	// ErrInvalidWindow is returned for the zero window handle.
	ErrInvalidWindow = errors.New("invalid window handle")
)

// Registry tracks which windows belong to which workspace, in insertion order.
// The capacity bounds the number of windows across all workspaces.
type Registry struct {
	workspaces [][]uint32
	owner      map[uint32]int
	capacity   int
}

// New creates a registry with the given number of workspaces and a global
// window capacity.
func New(workspaces, capacity int) *Registry {
	if workspaces < 1 {
		workspaces = 1
	}
	if capacity < 0 {
		capacity = 0
	}

	return &Registry{
		workspaces: make([][]uint32, workspaces),
		owner:      make(map[uint32]int),
		capacity:   capacity,
	}
}

// Register appends win to the sequence of workspace ws.
func (r *Registry) Register(ws int, win uint32) error {
	if !r.valid(ws) {
		return ErrInvalidWorkspace
	}
	if win == 0 {
		return ErrInvalidWindow
	}
	if _, ok := r.owner[win]; ok {
		return ErrAlreadyManaged
	}
	if len(r.owner) >= r.capacity {
		return ErrCapacityExceeded
	}

	r.workspaces[ws] = append(r.workspaces[ws], win)
	r.owner[win] = ws
	return nil
}

// Unregister removes win from workspace ws, shifting later entries down by
// one. It reports whether win was found there; nothing changes otherwise.
func (r *Registry) Unregister(ws int, win uint32) bool {
	if !r.valid(ws) {
		return false
	}
	if owner, ok := r.owner[win]; !ok || owner != ws {
		return false
	}

	seq := r.workspaces[ws]
	for i, w := range seq {
		if w == win {
			copy(seq[i:], seq[i+1:])
			seq[len(seq)-1] = 0
			r.workspaces[ws] = seq[:len(seq)-1]
			delete(r.owner, win)
			return true
		}
	}

	return false
}

// WorkspaceOf returns the workspace holding win.
func (r *Registry) WorkspaceOf(win uint32) (int, bool) {
	ws, ok := r.owner[win]
	return ws, ok
}

// Contains reports whether win is registered in any workspace.
func (r *Registry) Contains(win uint32) bool {
	_, ok := r.owner[win]
	return ok
}

// Windows returns a copy of the ordered sequence of workspace ws.
func (r *Registry) Windows(ws int) []uint32 {
	if !r.valid(ws) {
		return nil
	}
	out := make([]uint32, len(r.workspaces[ws]))
	copy(out, r.workspaces[ws])
	return out
}

// Len returns the number of windows in workspace ws.
func (r *Registry) Len(ws int) int {
	if !r.valid(ws) {
		return 0
	}
	return len(r.workspaces[ws])
}

// Total returns the number of windows across all workspaces.
func (r *Registry) Total() int {
	return len(r.owner)
}

// Capacity returns the global window limit.
func (r *Registry) Capacity() int {
	return r.capacity
}

// Workspaces returns the number of workspaces.
func (r *Registry) Workspaces() int {
	return len(r.workspaces)
}

func (r *Registry) valid(ws int) bool {
	return ws >= 0 && ws < len(r.workspaces)
}
