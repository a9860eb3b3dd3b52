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

// Package main implements the seqdiag CLI, which turns resolved translation
// unit dumps into sequence diagrams.
//
// Usage:
//
//	seqdiag init                    Create a starter configuration
//	seqdiag generate [-d name]...   Build and write configured diagrams
//	seqdiag list [--json]           List configured diagrams
//	seqdiag show <diagram>          Print participants and calls of a diagram
//	seqdiag completion <shell>      Generate a shell completion script
//	seqdiag version                 Show version information
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/seqdiag/internal/ui"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// defaultConfigPath is used when --config is not given.
const defaultConfigPath = "seqdiag.yaml"

// GlobalFlags holds flags accepted before the command name.
type GlobalFlags struct {
	Config  string
	JSON    bool
	Quiet   bool
	NoColor bool
}

func main() {
	var globals GlobalFlags

	fs := flag.NewFlagSet("seqdiag", flag.ExitOnError)
	fs.SetInterspersed(false)
	fs.StringVarP(&globals.Config, "config", "c", defaultConfigPath, "Path to the configuration file")
	fs.BoolVar(&globals.JSON, "json", false, "Machine-readable JSON output")
	fs.BoolVarP(&globals.Quiet, "quiet", "q", false, "Suppress progress and informational output")
	fs.BoolVar(&globals.NoColor, "no-color", false, "Disable colored output")
	showVersion := fs.Bool("version", false, "Show version and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `seqdiag - sequence diagrams from resolved C++ translation units

Usage:
  seqdiag [global options] <command> [options]

Commands:
  init          Create a starter configuration file
  generate      Build and write the configured diagrams
  list          List configured diagrams
  show          Print the participants and calls of one diagram
  completion    Generate shell completion script (bash|zsh|fish)
  version       Show version information

Global Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  seqdiag generate                      Write every diagram in seqdiag.yaml
  seqdiag generate -d t20006_sequence   Write one diagram
  seqdiag -c tests/seqdiag.yaml list --json
  seqdiag show t20006_sequence

For detailed command help: seqdiag <command> --help
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if *showVersion {
		printVersion()
		return
	}

	// JSON output implies quiet: nothing but the document goes to stdout.
	if globals.JSON {
		globals.Quiet = true
	}
	ui.InitColors(globals.NoColor || os.Getenv("NO_COLOR") != "")

	args := fs.Args()
	if len(args) == 0 {
		fs.Usage()
		os.Exit(1)
	}

	command, cmdArgs := args[0], args[1:]
	switch command {
	case "init":
		runInit(cmdArgs, globals)
	case "generate":
		runGenerate(cmdArgs, globals)
	case "list":
		runList(cmdArgs, globals)
	case "show":
		runShow(cmdArgs, globals)
	case "completion":
		runCompletion(cmdArgs, globals)
	case "version":
		printVersion()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		fs.Usage()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("seqdiag version %s\n", version)
	fmt.Printf("commit: %s\n", commit)
	fmt.Printf("built: %s\n", date)
}
