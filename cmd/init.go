package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/tommyzliu/tilewm/internal/config"
	"github.com/tommyzliu/tilewm/internal/launch"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  "Create config.toml with the default settings, asking for the terminal and browser to launch",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		useDefaults, _ := cmd.Flags().GetBool("defaults")

		path, err := configPath()
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil && !force {
			if useDefaults {
				return fmt.Errorf("config already exists\n\nLocation: %s\n\nTo overwrite it: tilewm init --force", path)
			}

			overwrite := false
			err := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title("Config already exists").
						Description(path).
						Affirmative("Overwrite").
						Negative("Keep").
						Value(&overwrite),
				),
			).
				WithTheme(huh.ThemeCatppuccin()).
				Run()
			if err != nil {
				return fmt.Errorf("failed to read answer: %w", err)
			}
			if !overwrite {
				fmt.Printf("Kept existing config: %s\n", path)
				return nil
			}
		}

		cfg := config.DefaultConfig()
		if !useDefaults {
			if err := promptApps(cfg); err != nil {
				return err
			}
		}

		if err := config.SaveConfig(path, cfg); err != nil {
			return err
		}

		fmt.Printf("✓ Config written successfully\n")
		fmt.Printf("  Location: %s\n", path)
		fmt.Printf("\nNext steps:\n")
		fmt.Printf("  1. Review and customize %s\n", path)
		fmt.Printf("  2. Run 'tilewm doctor' to check your setup\n")
		fmt.Printf("  3. Add 'exec tilewm' to ~/.xinitrc\n")

		return nil
	},
}

// promptApps asks for the programs behind the launch bindings
func promptApps(cfg *config.Config) error {
	validate := func(s string) error {
		if len(launch.SplitCommand(s)) == 0 {
			return errors.New("command cannot be empty")
		}
		return nil
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Terminal").
				Description("Started with " + cfg.Keys.Modifier + "-" + cfg.Keys.Terminal).
				Value(&cfg.Apps.Terminal).
				Validate(validate),
			huh.NewInput().
				Title("Browser").
				Description("Started with " + cfg.Keys.Modifier + "-" + cfg.Keys.Browser).
				Value(&cfg.Apps.Browser).
				Validate(validate),
		),
	).
		WithTheme(huh.ThemeCatppuccin()).
		WithShowHelp(true).
		WithShowErrors(true)

	if err := form.Run(); err != nil {
		return fmt.Errorf("failed to read answers: %w", err)
	}
	return nil
}

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite an existing config without asking")
	initCmd.Flags().Bool("defaults", false, "Write the defaults without prompting")
	rootCmd.AddCommand(initCmd)
}
