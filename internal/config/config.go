package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tommyzliu/tilewm/internal/classify"
)

// Config represents the complete tilewm configuration
type Config struct {
	WM       WMConfig       `toml:"wm"`
	Colors   ColorConfig    `toml:"colors"`
	Apps     AppsConfig     `toml:"apps"`
	Keys     KeysConfig     `toml:"keys"`
	Classify classify.Rules `toml:"classify"`
	Command  CommandConfig  `toml:"command"`
}

// WMConfig contains workspace, capacity and border settings
type WMConfig struct {
	Workspaces  int `toml:"workspaces"`
	MaxWindows  int `toml:"max_windows"`
	BorderWidth int `toml:"border_width"`
	BarHeight   int `toml:"bar_height"`
}

// ColorConfig contains colours as 0xRRGGBB values
type ColorConfig struct {
	Border     uint32 `toml:"border"`
	Accent     uint32 `toml:"accent"`
	Background uint32 `toml:"background"`
}

// AppsConfig names the programs started by the launch bindings
type AppsConfig struct {
	Terminal string `toml:"terminal"`
	Browser  string `toml:"browser"`
}

// KeysConfig contains key and button bindings in xgbutil notation
type KeysConfig struct {
	Modifier    string   `toml:"modifier"`
	Terminal    string   `toml:"terminal"`
	Browser     string   `toml:"browser"`
	Close       string   `toml:"close"`
	Workspaces  []string `toml:"workspaces"`
	FocusButton int      `toml:"focus_button"`
}

// CommandConfig contains settings for commands typed on the root window
type CommandConfig struct {
	BackgroundKeyword string `toml:"background_keyword"`
}

// Modifiers lists the accepted keys.modifier names, matched case-insensitively
var Modifiers = []string{"shift", "lock", "control", "ctrl", "mod1", "mod2", "mod3", "mod4", "mod5"}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		WM: WMConfig{
			Workspaces:  10,
			MaxWindows:  50,
			BorderWidth: 2,
			BarHeight:   2,
		},
		Colors: ColorConfig{
			Border:     0xff0000,
			Accent:     0x00ff00,
			Background: 0x006400,
		},
		Apps: AppsConfig{
			Terminal: "kitty",
			Browser:  "firefox",
		},
		Keys: KeysConfig{
			Modifier:    "Mod1",
			Terminal:    "q",
			Browser:     "f",
			Close:       "c",
			Workspaces:  []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"},
			FocusButton: 1,
		},
		Classify: classify.DefaultRules(),
		Command: CommandConfig{
			BackgroundKeyword: "background",
		},
	}
}

// Validate checks values that would make the window manager misbehave.
func (c *Config) Validate() error {
	if c.WM.Workspaces < 1 {
		return fmt.Errorf("wm.workspaces must be at least 1, got %d", c.WM.Workspaces)
	}
	if c.WM.MaxWindows < 1 {
		return fmt.Errorf("wm.max_windows must be at least 1, got %d", c.WM.MaxWindows)
	}
	if c.WM.BorderWidth < 0 {
		return fmt.Errorf("wm.border_width cannot be negative, got %d", c.WM.BorderWidth)
	}
	if c.WM.BarHeight < 1 {
		return fmt.Errorf("wm.bar_height must be at least 1, got %d", c.WM.BarHeight)
	}
	if !slices.Contains(Modifiers, strings.ToLower(c.Keys.Modifier)) {
		return fmt.Errorf("keys.modifier %q is not one of %s", c.Keys.Modifier, strings.Join(Modifiers, ", "))
	}
	if len(c.Keys.Workspaces) > c.WM.Workspaces {
		return fmt.Errorf("keys.workspaces binds %d workspaces but only %d exist", len(c.Keys.Workspaces), c.WM.Workspaces)
	}

	seen := make(map[string]bool)
	for _, k := range append([]string{c.Keys.Terminal, c.Keys.Browser, c.Keys.Close}, c.Keys.Workspaces...) {
		if k == "" {
			continue
		}
		if seen[k] {
			return fmt.Errorf("key %q is bound more than once", k)
		}
		seen[k] = true
	}

	if c.Keys.FocusButton < 1 || c.Keys.FocusButton > 5 {
		return fmt.Errorf("keys.focus_button must be between 1 and 5, got %d", c.Keys.FocusButton)
	}

	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/tilewm/config.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "tilewm", "config.toml"), nil
}

// LoadConfig reads the config file at path.
// Missing fields are filled with defaults from DefaultConfig().
func LoadConfig(path string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Return defaults if file doesn't exist
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the config to path, creating parent directories
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
