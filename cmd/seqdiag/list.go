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
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/seqdiag/internal/errors"
	"github.com/kraklabs/seqdiag/internal/output"
	"github.com/kraklabs/seqdiag/internal/ui"
)

// runList executes the 'list' CLI command, printing the configured diagrams.
func runList(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: seqdiag list

Lists the diagrams defined in the configuration file with their output
format, translation units and start_from functions.

Examples:
  seqdiag list
  seqdiag --json list | jq '.diagrams[].name'
`)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	report, err := listDiagrams(globals.Config)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	if globals.JSON {
		if err := output.JSON(report); err != nil {
			errors.FatalError(errors.NewInternalError("Cannot encode report", "", "", err), true)
		}
		return
	}
	printList(ui.NewPrinter(os.Stdout, false), report)
}

func listDiagrams(configPath string) (*output.ListReport, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	report := &output.ListReport{Config: cfg.Path(), Diagrams: []output.DiagramEntry{}}
	for _, name := range cfg.Names() {
		d, _ := cfg.Diagram(name)
		entry := output.DiagramEntry{
			Name:             d.Name,
			Format:           string(d.Format),
			UsingNamespace:   d.UsingNamespace,
			TranslationUnits: d.TranslationUnits,
		}
		for _, sf := range d.StartFrom {
			entry.StartFrom = append(entry.StartFrom, sf.Function)
		}
		report.Diagrams = append(report.Diagrams, entry)
	}
	return report, nil
}

func printList(p *ui.Printer, report *output.ListReport) {
	p.Header(fmt.Sprintf("Diagrams in %s", report.Config))
	if len(report.Diagrams) == 0 {
		p.Line("%s", ui.DimText("(none)"))
		return
	}
	for _, d := range report.Diagrams {
		p.Line("%s", ui.Label(d.Name))
		p.Field("Format:", d.Format)
		if d.UsingNamespace != "" {
			p.Field("Namespace:", d.UsingNamespace)
		}
		p.Field("Units:", ui.CountText(len(d.TranslationUnits)))
		if len(d.StartFrom) > 0 {
			p.Field("Start from:", strings.Join(d.StartFrom, ", "))
		}
	}
}
