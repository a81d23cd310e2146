package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/crescent-arcade/internal/platform/tui"
	"github.com/vovakirdan/crescent-arcade/internal/registry"
)

var flagInfoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info <game>",
	Short: "Describe a game",
	Long: `Prints a game's descriptive record: title, description,
instructions and features.

Examples:
  arcade info match
  arcade info puzzle --json`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&flagInfoJSON, "json", false, "Print the record as JSON")
}

func runInfo(cmd *cobra.Command, args []string) error {
	info, err := registry.Describe(args[0])
	if err != nil {
		return fmt.Errorf("%w (run 'arcade list' to see available games)", err)
	}

	if flagInfoJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	width := 0
	if w, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
	}
	fmt.Fprintln(cmd.OutOrStdout(), tui.RenderInfo(info.Info, width))
	return nil
}
