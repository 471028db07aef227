package main

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vic/tromp/pkg/reduce"
)

type batchResult struct {
	line   int
	input  string
	output string
	steps  int
	normal bool
	err    error
}

func batchCmd(cfg *Config) *cobra.Command {
	var (
		jobs     int
		failFast bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Reduce one term per line to normal form, in parallel",
		Long: `Reduce every line of the input to normal form. Blank lines and lines
starting with # are skipped. Results are printed in input order, numbered
by their line in the input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jobs < 1 {
				return fmt.Errorf("--jobs must be at least 1, got %d", jobs)
			}
			s, err := resolveSettings(cmd, cfg)
			if err != nil {
				return err
			}
			src, err := readInput(cmd, cfg, nil)
			if err != nil {
				return err
			}
			lines := splitLines(src)
			results := make([]batchResult, len(lines))

			eg, ctx := errgroup.WithContext(cmd.Context())
			eg.SetLimit(jobs)
			for i, line := range lines {
				eg.Go(func() error {
					r := &results[i]
					r.line = line.num
					r.input = line.text
					term, err := s.parseTerm(line.text)
					if err == nil {
						var res *reduce.Result
						res, err = reduce.Run(ctx, term, s.reduce)
						if err == nil {
							r.output = format(cfg, res.Final())
							r.steps = res.Stats.Steps
							r.normal = res.Normal
						}
					}
					if err != nil {
						slog.Debug("batch item failed", "line", line.num, "err", err)
						r.err = err
						if failFast {
							return fmt.Errorf("line %d: %w", line.num, err)
						}
					}
					return nil
				})
			}
			waitErr := eg.Wait()

			out := cmd.OutOrStdout()
			var failed int
			for _, r := range results {
				switch {
				case r.err != nil:
					failed++
					fmt.Fprintf(out, "%d: error: %v\n", r.line, r.err)
				case !r.normal:
					fmt.Fprintf(out, "%d: %s (not normal after %d steps)\n", r.line, r.output, r.steps)
				default:
					fmt.Fprintf(out, "%d: %s\n", r.line, r.output)
				}
			}
			if waitErr != nil {
				return waitErr
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d terms failed", failed, len(lines))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Number of terms reduced concurrently")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first failing term")
	return cmd
}
