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
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/seqdiag/internal/errors"
	"github.com/kraklabs/seqdiag/internal/output"
	"github.com/kraklabs/seqdiag/internal/ui"
	"github.com/kraklabs/seqdiag/pkg/generate"
	"github.com/kraklabs/seqdiag/pkg/render"
	"github.com/kraklabs/seqdiag/pkg/sequence"
	"github.com/kraklabs/seqdiag/pkg/sourcemodel"
)

// runShow executes the 'show' CLI command. It builds one diagram and prints
// its participants and calls without writing any file.
//
// Flags:
//   - -j, --workers: Translation units traversed in parallel
//   - --keys: Also print canonical participant keys
//   - --debug: Enable debug logging
func runShow(args []string, globals GlobalFlags) {
	var (
		workers  int
		showKeys bool
		debug    bool
	)
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	fs.IntVarP(&workers, "workers", "j", 0, "Translation units traversed in parallel (default: GOMAXPROCS)")
	fs.BoolVar(&showKeys, "keys", false, "Print canonical participant keys")
	fs.BoolVar(&debug, "debug", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: seqdiag show [options] <diagram>

Builds one diagram and prints its participants and calls. With --json the
rendered JSON document is printed instead.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(errors.ExitInput)
	}

	logger := newLogger(os.Stderr, debug)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, usingNamespace, err := buildDiagram(ctx, globals.Config, fs.Arg(0), workers, logger)
	if err != nil {
		stop()
		errors.FatalError(err, globals.JSON)
	}

	if globals.JSON {
		if err := writeDiagramJSON(os.Stdout, d, usingNamespace); err != nil {
			errors.FatalError(err, true)
		}
		return
	}
	printDiagram(ui.NewPrinter(os.Stdout, false), d, usingNamespace, showKeys)
}

// writeDiagramJSON prints the JSON rendering of d to w.
func writeDiagramJSON(w io.Writer, d *sequence.Diagram, usingNamespace string) error {
	r, err := render.New(render.FormatJSON, render.Options{UsingNamespace: usingNamespace})
	if err != nil {
		return errors.NewInternalError("Cannot render diagram", err.Error(), "", err)
	}
	data, err := r.Render(d)
	if err != nil {
		return errors.NewInternalError(
			fmt.Sprintf("Cannot render '%s'", d.Name()), err.Error(), "This is a bug. Please report it", err)
	}
	if err := output.Raw(w, data); err != nil {
		return errors.NewOutputError(
			fmt.Sprintf("Cannot print '%s'", d.Name()), err.Error(), "Check that standard output is writable", err)
	}
	return nil
}

func buildDiagram(ctx context.Context, configPath, name string, workers int, logger *slog.Logger) (*sequence.Diagram, string, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, "", err
	}
	selected, err := selectDiagrams(cfg, []string{name})
	if err != nil {
		return nil, "", err
	}
	d := selected[0]

	gen := generate.New(sourcemodel.NewFileProvider(logger), generate.Options{Workers: workers}, logger)
	res, err := gen.Generate(ctx, generate.Request{
		Name:   d.Name,
		Units:  d.TranslationUnits,
		Filter: d.Predicates(),
	})
	if err != nil {
		return nil, "", generateError(d.Name, err)
	}
	return res.Diagram, d.UsingNamespace, nil
}

func printDiagram(p *ui.Printer, d *sequence.Diagram, usingNamespace string, showKeys bool) {
	opts := render.Options{UsingNamespace: usingNamespace}
	aliases := make(map[sequence.ParticipantID]string)

	p.Header(d.Name())
	p.Line("")
	p.Line("%s", ui.Label("Participants"))
	for i, part := range d.Participants() {
		alias := render.Alias(i)
		aliases[part.ID] = alias
		p.Line("  %s  %-8s %s", alias, part.Kind, opts.Display(part.DisplayName))
		if showKeys {
			p.Line("          %s", ui.DimText(part.Key))
		}
	}

	p.Line("")
	p.Line("%s", ui.Label("Calls"))
	for _, e := range d.Events() {
		p.Line("  %3d  %s -> %s : %s()", e.Seq, aliases[e.From], aliases[e.To], e.Label)
	}

	stats := d.Stats()
	p.Line("")
	p.Line("%s participants, %s calls", ui.CountText(stats.Participants), ui.CountText(stats.Events))
}
