package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/gopxl/beep"
	"github.com/spf13/cobra"

	"github.com/zjrosen/typetwice/internal/config"
	"github.com/zjrosen/typetwice/internal/cue"
)

var cuesCmd = &cobra.Command{
	Use:   "cues",
	Short: "List the cue played for each symbol",
	Long: `List every symbol with its cue and the file that will be played for it.
Cues without a file in the cue directory are synthesized.`,
	Args: cobra.NoArgs,
	RunE: runCues,
}

func init() {
	rootCmd.AddCommand(cuesCmd)
}

func runCues(cmd *cobra.Command, _ []string) error {
	dir := config.ExpandHome(cfg.Audio.CueDir)
	loader := cue.NewLoader(dir, beep.SampleRate(cfg.Audio.SampleRate))

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Cue directory: %s\n\n", displayDir(dir))
	return printCues(out, loader)
}

func displayDir(dir string) string {
	if dir == "" {
		return "(none)"
	}
	return dir
}

func printCues(out io.Writer, loader *cue.Loader) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SYMBOL\tCUE\tFILE")

	row := func(symbol string, id cue.ID) {
		file := "(synthesized)"
		if path, ok := loader.Resolve(id); ok {
			file = path
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", symbol, id, file)
	}
	for _, m := range cue.Symbols() {
		row(cue.Printable(m.Symbol), m.ID)
	}
	row("(other)", cue.Default)

	return w.Flush()
}
