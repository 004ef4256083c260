// Command lichen runs the rendering core headlessly against a built-in
// demo page: a self-chaining animation-frame script mutates styles and
// reads layout back while input events exercise the compositor. It exists
// to demonstrate the engine end to end; real embedders supply their own
// content trees and drawing surface.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cadence time.Duration
		frames  int
		zoom    int
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "lichen",
		Short: "Run the lichen rendering core against a demo page",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := buildLogger(verbose)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck
			return runDemo(log, cadence, frames, zoom)
		},
	}

	cmd.Flags().DurationVar(&cadence, "cadence", 16*time.Millisecond, "target delay between animation frames")
	cmd.Flags().IntVar(&frames, "frames", 60, "number of frames to run before exiting")
	cmd.Flags().IntVar(&zoom, "zoom", 0, "zoom increments to apply at startup (negative zooms out)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
