package tui

import (
	"github.com/tommyzliu/tilewm/internal/config"
	"github.com/tommyzliu/tilewm/internal/state"
)

// Context holds the TUI application context
type Context struct {
	Config *config.Config
	Store  *state.Store
	Width  int
	Height int
}

// NewContext creates a new TUI context
func NewContext(cfg *config.Config, store *state.Store) *Context {
	return &Context{
		Config: cfg,
		Store:  store,
		Width:  80,
		Height: 24,
	}
}
