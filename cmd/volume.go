package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zjrosen/typetwice/internal/config"
)

var volumeCmd = &cobra.Command{
	Use:   "volume [level]",
	Short: "Show or set the cue volume (0.0 to 1.0)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVolume,
}

func init() {
	rootCmd.AddCommand(volumeCmd)
}

func runVolume(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%g\n", cfg.Audio.Volume)
		return nil
	}

	level, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("parsing volume %q: %w", args[0], err)
	}
	path := configPath()
	if err := config.SaveVolume(path, level); err != nil {
		return fmt.Errorf("saving volume: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Volume set to %g in %s\n", level, path)
	return nil
}
