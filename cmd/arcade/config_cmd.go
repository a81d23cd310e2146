package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crescent-arcade/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config <game>",
	Short: "Print a game's default tuning YAML",
	Long: `Prints the built-in tuning for a game. Save it as
~/.arcade/configs/<game>.yaml (or ./configs/<game>.yaml) and edit it
to change grid sizes, speeds and scoring.

Examples:
  arcade config snake > ~/.arcade/configs/snake.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data := config.GetDefaultYAML(args[0])
		if data == nil {
			return fmt.Errorf("no tuning for %q", args[0])
		}
		_, err := cmd.OutOrStdout().Write(data)
		return err
	},
}
