package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(),
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "tromp",
		Short: "Reduce lambda terms and draw them as Tromp diagrams",
		Long: `tromp parses lambda calculus terms (λx.M or \x.M), reduces them by
beta reduction and lays the results out as Tromp diagrams.

Input is taken from the arguments, from --file, or from stdin.`,
		Example: `  # Show every step of a reduction
  tromp reduce '(λx.λy.x) a b'

  # Draw the normal form of 2 + 3
  tromp render --normal --prelude 'plus (λf.λx.f (f x)) (λf.λx.f (f (f x)))'

  # Evaluate arithmetic through Church numerals
  tromp arith '2 * (3 + 1)'`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), cfg.Debug || os.Getenv("TROMP_DEBUG") != "")
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	flags.StringVar(&cfg.ConfigPath, "config", "", "Path to tromp.toml (searched upwards from the working directory by default)")
	flags.StringVarP(&cfg.File, "file", "f", "", "Read the input from a file")
	flags.StringVarP(&cfg.Strategy, "strategy", "s", "normal", "Reduction strategy: normal or applicative")
	flags.IntVarP(&cfg.MaxSteps, "max-steps", "n", 0, "Maximum number of beta steps (default from config, else 1000)")
	flags.StringVar(&cfg.LinkStyle, "link-style", "leftmost", "Application link convention: leftmost or nearest-deepest")
	flags.Float64Var(&cfg.Unit, "unit", 0, "Size of one grid unit in rendered output")
	flags.BoolVar(&cfg.Names, "names", false, "Keep variable names in diagrams")
	flags.BoolVar(&cfg.Prelude, "prelude", false, "Expand the standard combinators (I, K, S, succ, plus, ...)")
	flags.BoolVar(&cfg.Strict, "strict", false, "Reject free variables when converting to de Bruijn form")
	flags.BoolVar(&cfg.ASCII, "ascii", false, `Print \ instead of λ`)

	rootCmd.AddCommand(
		reduceCmd(&cfg),
		normalCmd(&cfg),
		debruijnCmd(&cfg),
		layoutCmd(&cfg),
		renderCmd(&cfg),
		arithCmd(&cfg),
		batchCmd(&cfg),
		preludeCmd(&cfg),
	)
	return rootCmd
}

func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
