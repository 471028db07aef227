package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vic/tromp/pkg/church"
	"github.com/vic/tromp/pkg/config"
	"github.com/vic/tromp/pkg/diagram"
	"github.com/vic/tromp/pkg/lambda"
	"github.com/vic/tromp/pkg/reduce"
)

// Config holds the command line flags.
type Config struct {
	Debug      bool
	ConfigPath string
	File       string
	Strategy   string
	MaxSteps   int
	LinkStyle  string
	Unit       float64
	Names      bool
	Prelude    bool
	Strict     bool
	ASCII      bool
}

// settings is the effective configuration: tromp.toml, then TROMP_*
// environment variables, then flags given explicitly.
type settings struct {
	reduce  reduce.Options
	layout  diagram.Options
	prelude bool
	defines map[string]string
}

func resolveSettings(cmd *cobra.Command, cfg *Config) (*settings, error) {
	var file *config.Config
	if cfg.ConfigPath != "" {
		loaded, err := config.Load(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		file = loaded
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		path, found, err := config.Find(cwd)
		if err != nil {
			return nil, err
		}
		if found != nil {
			slog.Debug("loaded config", "path", path)
			file = found
		} else {
			file = config.Default()
		}
	}
	if err := file.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("strategy") {
		file.Reduce.Strategy = cfg.Strategy
	}
	if flags.Changed("max-steps") {
		file.Reduce.MaxSteps = cfg.MaxSteps
	}
	if flags.Changed("link-style") {
		file.Layout.LinkStyle = cfg.LinkStyle
	}
	if flags.Changed("unit") {
		file.Layout.Unit = cfg.Unit
	}
	if flags.Changed("names") {
		file.Layout.ShowNames = cfg.Names
	}
	if flags.Changed("prelude") {
		file.Prelude.Enabled = cfg.Prelude
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}

	return &settings{
		reduce:  file.ReduceOptions(),
		layout:  file.LayoutOptions(),
		prelude: file.Prelude.Enabled,
		defines: file.Prelude.Defines,
	}, nil
}

// readInput joins the arguments, or reads --file, or stdin.
func readInput(cmd *cobra.Command, cfg *Config, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if cfg.File != "" {
		data, err := os.ReadFile(cfg.File)
		if err != nil {
			return "", errors.Wrap(err, "reading input")
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, "reading stdin")
	}
	return string(data), nil
}

// parseTerm parses src and expands prelude definitions when enabled.
func (s *settings) parseTerm(src string) (lambda.Term, error) {
	term, err := lambda.Parse(src)
	if err != nil {
		return nil, err
	}
	if s.prelude || len(s.defines) > 0 {
		defs, err := s.definitions()
		if err != nil {
			return nil, err
		}
		term, err = church.Expand(term, defs)
		if err != nil {
			return nil, err
		}
	}
	slog.Debug("parsed term", "term", term, "ast", pretty.Sprint(term))
	return term, nil
}

func (s *settings) definitions() (map[string]lambda.Term, error) {
	defs := map[string]lambda.Term{}
	if s.prelude {
		defs = church.Prelude()
	}
	extra, err := church.ParseDefinitions(s.defines)
	if err != nil {
		return nil, errors.Wrap(err, "prelude.defines")
	}
	for name, term := range extra {
		defs[name] = term
	}
	return defs, nil
}

func (s *settings) loadTerm(cmd *cobra.Command, cfg *Config, args []string) (lambda.Term, error) {
	src, err := readInput(cmd, cfg, args)
	if err != nil {
		return nil, err
	}
	return s.parseTerm(src)
}

func format(cfg *Config, term lambda.Term) string {
	return lambda.Format(term, cfg.ASCII)
}
