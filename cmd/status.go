package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tommyzliu/tilewm/internal/state"
	"github.com/tommyzliu/tilewm/internal/tui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show window manager status",
	Long:  "Print the running window manager's workspaces and windows as JSON or YAML, or follow them live with --watch",
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")
		format, _ := cmd.Flags().GetString("format")

		store := state.NewStore(state.DefaultDir())

		if watch {
			return runDashboard(store)
		}

		snap, err := store.Load()
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no status available\n\nIs tilewm running? It writes %s while it runs", store.Path())
		}
		if err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}

		return state.Encode(os.Stdout, snap, format)
	},
}

// runDashboard launches the Bubbletea status dashboard
func runDashboard(store *state.Store) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.NewContext(cfg, store))
	if err := app.Watch(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; falling back to polling\n", err)
	}
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func init() {
	statusCmd.Flags().BoolP("watch", "w", false, "Show a live dashboard")
	statusCmd.Flags().StringP("format", "o", state.FormatJSON, "Output format: json or yaml")
	rootCmd.AddCommand(statusCmd)
}
