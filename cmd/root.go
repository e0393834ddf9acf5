package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tommyzliu/tilewm/internal/config"
	"github.com/tommyzliu/tilewm/internal/launch"
	"github.com/tommyzliu/tilewm/internal/logging"
	"github.com/tommyzliu/tilewm/internal/state"
	"github.com/tommyzliu/tilewm/internal/wm"
	"github.com/tommyzliu/tilewm/internal/x11"
)

var (
	configFlag  string
	debugFlag   bool
	verboseFlag bool
	displayFlag string
)

var rootCmd = &cobra.Command{
	Use:           "tilewm",
	Short:         "tilewm - a minimal tiling window manager",
	SilenceErrors: true,
	SilenceUsage:  true,
	Long: `tilewm is a minimal tiling window manager for X11.

Windows on the active workspace are laid out in a grid. Alt+q starts a
terminal, Alt+f a browser, Alt+c closes the window under the pointer and
Alt+1..0 switch workspaces. Typing "background #RRGGBB" on the desktop and
pressing Enter changes the background colour.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runWM(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// runWM connects to the display and runs the event loop until the
// connection ends.
func runWM() error {
	log := newLogger()

	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	log.Verbosef("config: %s", path)

	conn, err := x11.Open(displayFlag, log)
	if err != nil {
		return err
	}
	defer conn.Close()

	store := state.NewStore(state.DefaultDir())
	if err := store.Reset(); err != nil {
		log.Warnf("status snapshots disabled: %v", err)
		store = nil
	}

	mgr := wm.NewManager(cfg, conn, launch.NewLauncher(log), log)
	if store != nil {
		mgr.OnChange = func(snap *state.Snapshot) {
			if err := store.Save(snap); err != nil {
				log.Debugf("failed to write status: %v", err)
			}
		}
	}
	mgr.Start()

	width, height := conn.ScreenSize()
	log.Infof("managing %dx%d screen with %d workspaces", width, height, cfg.WM.Workspaces)

	return conn.Run(mgr, cfg.Keys)
}

// newLogger builds the logger selected by --debug and --verbose
func newLogger() *logging.Logger {
	log := logging.Default()
	switch {
	case debugFlag:
		log.SetLevel(logging.LevelDebug)
	case verboseFlag:
		log.SetLevel(logging.LevelVerbose)
	}
	return log
}

// configPath returns --config or the default location
func configPath() (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	return config.DefaultPath()
}

// loadConfig loads the configuration and returns it with its path
func loadConfig() (*config.Config, string, error) {
	path, err := configPath()
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, path, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default $XDG_CONFIG_HOME/tilewm/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log every event and X error")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log launches and window changes")
	rootCmd.PersistentFlags().StringVar(&displayFlag, "display", "", "X display to manage (default $DISPLAY)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
