package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"github.com/tommyzliu/tilewm/internal/config"
	"github.com/tommyzliu/tilewm/internal/launch"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open or display config file",
	Long:  "Open the config.toml file in $EDITOR, display its path with --path, or check it with --check",
	RunE: func(cmd *cobra.Command, args []string) error {
		showPath, _ := cmd.Flags().GetBool("path")
		check, _ := cmd.Flags().GetBool("check")

		configPath, err := configPath()
		if err != nil {
			return err
		}

		// If --path flag, just print the path
		if showPath {
			fmt.Println(configPath)
			return nil
		}

		if check {
			if _, err := config.LoadConfig(configPath); err != nil {
				return err
			}
			fmt.Printf("✓ %s is valid\n", configPath)
			return nil
		}

		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return fmt.Errorf("config file not found; run 'tilewm init' first")
		}

		// Try to open in $EDITOR
		editor := launch.SplitCommand(os.Getenv("EDITOR"))
		if len(editor) == 0 {
			// Fallback: cat the file
			content, err := os.ReadFile(configPath)
			if err != nil {
				return fmt.Errorf("failed to read config file: %w", err)
			}
			fmt.Println(string(content))
			return nil
		}

		// Open in editor
		editorCmd := exec.Command(editor[0], append(editor[1:], configPath)...)
		editorCmd.Stdin = os.Stdin
		editorCmd.Stdout = os.Stdout
		editorCmd.Stderr = os.Stderr

		if err := editorCmd.Run(); err != nil {
			return fmt.Errorf("failed to open editor: %w", err)
		}

		return nil
	},
}

func init() {
	configCmd.Flags().Bool("path", false, "Print config file path instead of opening")
	configCmd.Flags().Bool("check", false, "Load and validate the config file")
	rootCmd.AddCommand(configCmd)
}
