// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/seqdiag/internal/config"
	"github.com/kraklabs/seqdiag/internal/errors"
	"github.com/kraklabs/seqdiag/internal/output"
	"github.com/kraklabs/seqdiag/internal/ui"
	"github.com/kraklabs/seqdiag/pkg/generate"
	"github.com/kraklabs/seqdiag/pkg/render"
	"github.com/kraklabs/seqdiag/pkg/sourcemodel"
)

type generateOptions struct {
	Diagrams    []string
	OutputDir   string
	Workers     int
	Stdout      bool
	Debug       bool
	MetricsAddr string
}

// commandEnv carries the writers and helpers a command runs with.
type commandEnv struct {
	printer  *ui.Printer
	stdout   io.Writer
	logger   *slog.Logger
	progress ProgressConfig
}

// runGenerate executes the 'generate' CLI command.
//
// Flags:
//   - -d, --diagram: Diagram to build; repeatable (default: all)
//   - -o, --output-dir: Override output_directory from the configuration
//   - -j, --workers: Translation units traversed in parallel (default: GOMAXPROCS)
//   - --stdout: Print diagrams to stdout instead of writing files
//   - --debug: Enable debug logging
//   - --metrics-addr: HTTP address for Prometheus metrics (default: disabled)
func runGenerate(args []string, globals GlobalFlags) {
	var opts generateOptions

	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	fs.StringArrayVarP(&opts.Diagrams, "diagram", "d", nil, "Diagram to build (repeatable, default: all)")
	fs.StringVarP(&opts.OutputDir, "output-dir", "o", "", "Override the configured output directory")
	fs.IntVarP(&opts.Workers, "workers", "j", 0, "Translation units traversed in parallel (default: GOMAXPROCS)")
	fs.BoolVar(&opts.Stdout, "stdout", false, "Print diagrams to stdout instead of writing files")
	fs.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&opts.MetricsAddr, "metrics-addr", "", "HTTP listen address for Prometheus metrics (empty to disable)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: seqdiag generate [options]

Builds the diagrams defined in the configuration file from their translation
unit dumps and writes one file per diagram to the output directory.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  seqdiag generate
  seqdiag generate -d t20006_sequence -j 8
  seqdiag generate -d t20006_sequence --stdout | plantuml -pipe > t20006.png
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if opts.Stdout && globals.JSON {
		errors.FatalError(errors.NewInputError(
			"--stdout cannot be combined with --json",
			"Both would write to standard output",
			"Drop one of the two flags",
		), globals.JSON)
	}

	logger := newLogger(os.Stderr, opts.Debug)
	slog.SetDefault(logger)
	startMetrics(opts.MetricsAddr, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	statusOut := io.Writer(os.Stdout)
	if opts.Stdout {
		statusOut = os.Stderr
	}
	env := commandEnv{
		printer:  ui.NewPrinter(statusOut, globals.Quiet),
		stdout:   os.Stdout,
		logger:   logger,
		progress: NewProgressConfig(globals),
	}

	report, err := generateDiagrams(ctx, globals.Config, opts, env)
	if err != nil {
		stop()
		errors.FatalError(err, globals.JSON)
	}
	if globals.JSON {
		if err := output.JSONTo(os.Stdout, report); err != nil {
			errors.FatalError(errors.NewInternalError("Cannot encode report", "", "", err), true)
		}
	}
}

// generateDiagrams builds, renders and writes the selected diagrams.
func generateDiagrams(ctx context.Context, configPath string, opts generateOptions, env commandEnv) (*output.GenerateReport, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	diagrams, err := selectDiagrams(cfg, opts.Diagrams)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, d := range diagrams {
		total += len(d.TranslationUnits)
	}
	bar := NewProgressBar(env.progress, int64(total), "Traversing")
	onUnit := func(string) {
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	gen := generate.New(sourcemodel.NewFileProvider(env.logger), generate.Options{
		Workers: opts.Workers,
		OnUnit:  onUnit,
	}, env.logger)

	report := &output.GenerateReport{Config: cfg.Path(), Diagrams: []output.DiagramReport{}}
	for _, d := range diagrams {
		entry, err := generateOne(ctx, cfg, d, gen, opts, env)
		if err != nil {
			if bar != nil {
				_ = bar.Exit()
			}
			return nil, err
		}
		report.Diagrams = append(report.Diagrams, entry)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	for _, entry := range report.Diagrams {
		if entry.Output != "" {
			env.printer.Successf("Wrote %s (%s participants, %s calls)",
				entry.Output, ui.CountText(entry.Participants), ui.CountText(entry.Events))
		}
	}
	return report, nil
}

func generateOne(ctx context.Context, cfg *config.Config, d *config.Diagram, gen *generate.Generator, opts generateOptions, env commandEnv) (output.DiagramReport, error) {
	env.printer.Infof("Building %s from %d translation units", d.Name, len(d.TranslationUnits))

	res, err := gen.Generate(ctx, generate.Request{
		Name:   d.Name,
		Units:  d.TranslationUnits,
		Filter: d.Predicates(),
	})
	if err != nil {
		return output.DiagramReport{}, generateError(d.Name, err)
	}

	r, err := render.New(d.Format, render.Options{UsingNamespace: d.UsingNamespace})
	if err != nil {
		return output.DiagramReport{}, errors.NewConfigError(
			fmt.Sprintf("Cannot render '%s'", d.Name), err.Error(), "Use format plantuml, mermaid or json", err)
	}
	data, err := r.Render(res.Diagram)
	if err != nil {
		return output.DiagramReport{}, errors.NewInternalError(
			fmt.Sprintf("Cannot render '%s'", d.Name), err.Error(), "This is a bug. Please report it", err)
	}

	path := ""
	if opts.Stdout {
		if err := output.Raw(env.stdout, data); err != nil {
			return output.DiagramReport{}, errors.NewOutputError(
				fmt.Sprintf("Cannot print '%s'", d.Name), err.Error(), "", err)
		}
	} else {
		path = outputPath(cfg, d, opts.OutputDir, r.Extension())
		if err := writeDiagram(path, data); err != nil {
			return output.DiagramReport{}, errors.NewOutputError(
				fmt.Sprintf("Cannot write '%s'", d.Name),
				err.Error(),
				"Check that the output directory is writable or pass --output-dir",
				err,
			)
		}
	}

	stats := res.Diagram.Stats()
	return output.NewDiagramReport(d.Name, string(d.Format), path, res.Units, stats.Participants, stats.Events, res.Duration), nil
}

func outputPath(cfg *config.Config, d *config.Diagram, override, ext string) string {
	if override != "" {
		return filepath.Join(override, d.Name+ext)
	}
	return cfg.OutputPath(d, ext)
}

func writeDiagram(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
