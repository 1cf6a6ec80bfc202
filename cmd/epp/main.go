package main

import (
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var tlevel string

	rootCmd := &cobra.Command{
		Use:   "epp",
		Short: "Experiments with effectful parser combinators",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initTracing(tlevel)
			initDisplay()
		},
	}
	rootCmd.PersistentFlags().StringVar(&tlevel, "trace", "Error", "Trace level [Debug|Info|Error]")

	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newCheckCmd())

	return rootCmd
}

// All packages of epp trace to a Go logger.
func initTracing(level string) {
	gtrace.SyntaxTracer = gologadapter.New()
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracer().SetTraceLevel(tracing.TraceLevelFromString(level))
	gtrace.SyntaxTracer.SetTraceLevel(tracing.TraceLevelFromString(level))
	tracer().Infof("Trace level is %s", level)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
