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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"

	"github.com/kraklabs/seqdiag/internal/config"
	"github.com/kraklabs/seqdiag/internal/errors"
)

// initFlags holds parsed flags for the init command.
type initFlags struct {
	force, nonInteractive bool
	name, namespace       string
	units, startFrom      string
}

// runInit executes the 'init' CLI command, writing a starter configuration
// with one diagram to the --config path.
//
// Flags:
//   - --force: Overwrite an existing configuration
//   - -y, --yes: Non-interactive mode, use flag values and defaults
//   - --name: Diagram name (default: <directory>_sequence)
//   - --namespace: Namespace to include and strip from names
//   - --units: Translation unit dump glob (default: units/*.yaml)
//   - --start-from: Signature of the function the diagram starts from
func runInit(args []string, globals GlobalFlags) {
	var f initFlags
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	fs.BoolVar(&f.force, "force", false, "Overwrite existing configuration")
	fs.BoolVarP(&f.nonInteractive, "yes", "y", false, "Non-interactive mode (use defaults)")
	fs.StringVar(&f.name, "name", "", "Diagram name (default: <directory>_sequence)")
	fs.StringVar(&f.namespace, "namespace", "", "Namespace to include and strip from participant names")
	fs.StringVar(&f.units, "units", "units/*.yaml", "Translation unit dumps, relative to the configuration file")
	fs.StringVar(&f.startFrom, "start-from", "", "Function the diagram starts from, e.g. ns::tmain()")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: seqdiag init [options]

Creates a configuration file with one sequence diagram.

Examples:
  seqdiag init
  seqdiag init -y --namespace clanguml::t20006 --start-from 'clanguml::t20006::tmain()'
  seqdiag -c docs/seqdiag.yaml init --force

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	interactive := !f.nonInteractive && !globals.JSON && isatty.IsTerminal(os.Stdin.Fd())
	var in io.Reader
	if interactive {
		in = os.Stdin
	}
	if err := initConfig(globals.Config, f, in, os.Stdout); err != nil {
		errors.FatalError(err, globals.JSON)
	}
}

// initConfig writes the starter configuration to path. When in is non-nil
// each value is prompted for, with the flag value as default.
func initConfig(path string, f initFlags, in io.Reader, out io.Writer) error {
	if _, err := os.Stat(path); err == nil && !f.force {
		return errors.NewInputError(
			"Configuration already exists",
			fmt.Sprintf("%s already exists", path),
			"Use --force to overwrite it",
		)
	}

	if f.name == "" {
		abs, err := filepath.Abs(filepath.Dir(path))
		if err != nil {
			abs = "."
		}
		f.name = sanitizeName(filepath.Base(abs)) + "_sequence"
	}

	if in != nil {
		reader := bufio.NewReader(in)
		fmt.Fprintln(out, "seqdiag configuration")
		fmt.Fprintln(out, "=====================")
		f.name = prompt(reader, out, "Diagram name", f.name)
		f.namespace = prompt(reader, out, "Namespace (empty for all)", f.namespace)
		f.units = prompt(reader, out, "Translation unit dumps", f.units)
		f.startFrom = prompt(reader, out, "Start from function (empty for whole units)", f.startFrom)
		fmt.Fprintln(out)
	}

	cfg := config.Default(f.name, f.namespace, f.units, config.NormalizeSignature(f.startFrom))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.NewPermissionError("Cannot create configuration directory", err.Error(), "", err)
	}
	if err := cfg.Save(path); err != nil {
		return errors.NewConfigError("Cannot save configuration", err.Error(), "Check the values passed to init", err)
	}

	fmt.Fprintf(out, "Created %s\n", path)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintf(out, "  1. Dump translation units to %s\n", f.units)
	fmt.Fprintln(out, "  2. Run 'seqdiag list' to check the configuration")
	fmt.Fprintln(out, "  3. Run 'seqdiag generate' to write the diagrams")
	return nil
}

// prompt reads one line from reader, returning defaultValue for empty input.
func prompt(reader *bufio.Reader, out io.Writer, label, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprintf(out, "%s [%s]: ", label, defaultValue)
	} else {
		fmt.Fprintf(out, "%s: ", label)
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue
	}
	return input
}

func sanitizeName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
	if s == "" || s == "_" {
		return "diagram"
	}
	return s
}
