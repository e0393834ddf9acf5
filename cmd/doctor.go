package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tommyzliu/tilewm/internal/deps"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment",
	Long:  "Check that an X display is available, the config is valid and the configured terminal and browser are installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Printf("✓ config: %s\n", path)

		results := deps.NewChecker().CheckAll(cfg, displayFlag)
		fmt.Print(deps.FormatResults(results))

		if deps.HasCriticalErrors(results) {
			return fmt.Errorf("environment check failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
