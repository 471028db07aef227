package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vic/tromp/pkg/church"
	"github.com/vic/tromp/pkg/debruijn"
	"github.com/vic/tromp/pkg/diagram"
	"github.com/vic/tromp/pkg/lambda"
	"github.com/vic/tromp/pkg/reduce"
	"github.com/vic/tromp/pkg/render"
)

var (
	stepStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func reduceCmd(cfg *Config) *cobra.Command {
	var events bool

	cmd := &cobra.Command{
		Use:   "reduce [term]",
		Short: "Print every step of the reduction of a term",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd, cfg)
			if err != nil {
				return err
			}
			term, err := s.loadTerm(cmd, cfg, args)
			if err != nil {
				return err
			}

			opts := s.reduce
			if events {
				opts.TraceEvents = max(opts.MaxSteps, reduce.DefaultMaxSteps)
			}
			res, err := reduce.Run(cmd.Context(), term, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, t := range res.Terms {
				fmt.Fprintf(out, "%s %s\n", stepStyle.Render(fmt.Sprintf("%3d", i)), format(cfg, t))
				if events && i < len(res.Events) {
					ev := res.Events[i]
					fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("    redex at /%s: %s", ev.Path, format(cfg, ev.Redex))))
				}
			}
			writeStats(cmd.ErrOrStderr(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&events, "events", false, "Show the location of each contracted redex")
	return cmd
}

func normalCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "normal [term]",
		Short: "Print the normal form of a term",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd, cfg)
			if err != nil {
				return err
			}
			term, err := s.loadTerm(cmd, cfg, args)
			if err != nil {
				return err
			}
			res, err := reduce.Run(cmd.Context(), term, s.reduce)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), format(cfg, res.Final()))
			writeStats(cmd.ErrOrStderr(), res)
			return nil
		},
	}
}

func writeStats(w io.Writer, res *reduce.Result) {
	fmt.Fprintf(w, "\nStats:\n")
	fmt.Fprintf(w, "  Steps:     %6d\n", res.Stats.Steps)
	fmt.Fprintf(w, "  Peak size: %6d\n", res.Stats.PeakSize)
	if res.Normal {
		fmt.Fprintf(w, "  Reached normal form\n")
	} else {
		fmt.Fprintf(w, "  Step budget exhausted; the last term is still reducible\n")
	}
}

func debruijnCmd(cfg *Config) *cobra.Command {
	var back bool

	cmd := &cobra.Command{
		Use:   "debruijn [term]",
		Short: "Print the de Bruijn form of a term",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd, cfg)
			if err != nil {
				return err
			}
			term, err := s.loadTerm(cmd, cfg, args)
			if err != nil {
				return err
			}
			policy := debruijn.Permissive
			if cfg.Strict {
				policy = debruijn.Strict
			}
			db, err := debruijn.FromNamed(term, debruijn.WithPolicy(policy))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), db)
			if back {
				named, err := debruijn.ToNamed(db)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), format(cfg, named))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&back, "back", false, "Also convert back to a named term")
	return cmd
}

// targetTerms picks what to draw: the input, its normal form, or the whole
// trace.
func targetTerms(cmd *cobra.Command, s *settings, term lambda.Term, normal, trace bool) ([]lambda.Term, error) {
	if !normal && !trace {
		return []lambda.Term{term}, nil
	}
	res, err := reduce.Run(cmd.Context(), term, s.reduce)
	if err != nil {
		return nil, err
	}
	if trace {
		return res.Terms, nil
	}
	return []lambda.Term{res.Final()}, nil
}

func layoutCmd(cfg *Config) *cobra.Command {
	var normal, trace bool

	cmd := &cobra.Command{
		Use:   "layout [term]",
		Short: "Print the diagram layout of a term as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd, cfg)
			if err != nil {
				return err
			}
			term, err := s.loadTerm(cmd, cfg, args)
			if err != nil {
				return err
			}
			terms, err := targetTerms(cmd, s, term, normal, trace)
			if err != nil {
				return err
			}

			var diagrams []*diagram.Diagram
			for _, t := range terms {
				d, err := diagram.LayoutNamed(t, s.layout)
				if err != nil {
					return err
				}
				diagrams = append(diagrams, d)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if trace {
				return enc.Encode(diagrams)
			}
			return enc.Encode(diagrams[0])
		},
	}
	cmd.Flags().BoolVar(&normal, "normal", false, "Lay out the normal form instead of the input")
	cmd.Flags().BoolVar(&trace, "trace", false, "Lay out every term of the reduction trace")
	return cmd
}

func renderCmd(cfg *Config) *cobra.Command {
	var (
		normal, trace, color bool
		formatName           string
	)

	cmd := &cobra.Command{
		Use:   "render [term]",
		Short: "Draw a term as a Tromp diagram",
		Long: `Draw a term as a Tromp diagram, either with box-drawing characters
(--format text, the default) or as an SVG document (--format svg).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd, cfg)
			if err != nil {
				return err
			}
			term, err := s.loadTerm(cmd, cfg, args)
			if err != nil {
				return err
			}
			terms, err := targetTerms(cmd, s, term, normal, trace)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch formatName {
			case "text":
				for i, t := range terms {
					d, err := diagram.LayoutNamed(t, s.layout)
					if err != nil {
						return err
					}
					if len(terms) > 1 {
						fmt.Fprintf(out, "%s %s\n", stepStyle.Render(fmt.Sprintf("%3d", i)), format(cfg, t))
					}
					fmt.Fprint(out, render.Text(d, render.TextOptions{Color: color}))
					fmt.Fprint(out, render.Labels(d))
					if i < len(terms)-1 {
						fmt.Fprintln(out)
					}
				}
				return nil
			case "svg":
				if len(terms) > 1 {
					return errors.New("svg output draws a single term; use --normal or no trace")
				}
				d, err := diagram.LayoutNamed(terms[0], s.layout)
				if err != nil {
					return err
				}
				return render.SVG(out, d)
			default:
				return errors.Errorf("unknown format %q (want text or svg)", formatName)
			}
		},
	}
	cmd.Flags().BoolVar(&normal, "normal", false, "Draw the normal form instead of the input")
	cmd.Flags().BoolVar(&trace, "trace", false, "Draw every term of the reduction trace")
	cmd.Flags().BoolVar(&color, "color", false, "Color the text diagram")
	cmd.Flags().StringVar(&formatName, "format", "text", "Output format: text or svg")
	return cmd
}

func arithCmd(cfg *Config) *cobra.Command {
	var showTerm bool

	cmd := &cobra.Command{
		Use:   "arith [expression]",
		Short: "Evaluate natural-number arithmetic through Church numerals",
		Example: `  tromp arith '2 + 3 * 4'
  tromp arith --term '2 ^ 3'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd, cfg)
			if err != nil {
				return err
			}
			src, err := readInput(cmd, cfg, args)
			if err != nil {
				return err
			}
			n, final, res, err := evalArith(cmd, s, src)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if showTerm {
				fmt.Fprintln(out, format(cfg, final))
			}
			fmt.Fprintln(out, n)
			writeStats(cmd.ErrOrStderr(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showTerm, "term", false, "Also print the normal form")
	return cmd
}

func evalArith(cmd *cobra.Command, s *settings, src string) (int, lambda.Term, *reduce.Result, error) {
	defs, err := s.definitions()
	if err != nil {
		return 0, nil, nil, err
	}
	if !s.prelude {
		for name, term := range church.Prelude() {
			if _, ok := defs[name]; !ok {
				defs[name] = term
			}
		}
	}
	compiler := church.Compiler{Defs: defs}
	term, err := compiler.Compile(src)
	if err != nil {
		return 0, nil, nil, err
	}
	res, err := reduce.Run(cmd.Context(), term, s.reduce)
	if err != nil {
		return 0, nil, nil, err
	}
	if !res.Normal {
		return 0, nil, res, errors.Errorf("no normal form within %d steps", res.Stats.Steps)
	}
	n, ok := church.Decode(res.Final())
	if !ok {
		return 0, nil, res, errors.Errorf("result is not a Church numeral: %s", res.Final())
	}
	return n, res.Final(), res, nil
}

func preludeCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "prelude",
		Short: "List the standard combinators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs := church.Prelude()
			out := cmd.OutOrStdout()
			for _, name := range church.Names() {
				fmt.Fprintf(out, "%-6s = %s\n", name, format(cfg, defs[name]))
			}
			return nil
		},
	}
}

// sourceLine is a line of input with its 1-based line number.
type sourceLine struct {
	num  int
	text string
}

// splitLines drops blank lines and # comments, keeping the original line
// numbers.
func splitLines(src string) []sourceLine {
	var lines []sourceLine
	for i, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, sourceLine{num: i + 1, text: line})
	}
	return lines
}
