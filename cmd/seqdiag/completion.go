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
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/seqdiag/internal/errors"
)

const bashCompletionTemplate = `#!/bin/bash

# Bash completion for seqdiag
# Installation:
#   source <(seqdiag completion bash)

_seqdiag_completion() {
    local cur prev commands
    commands="init generate list show completion version"

    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    if [[ ${prev} == "-c" || ${prev} == "--config" ]] ; then
        COMPREPLY=( $(compgen -f -X '!*.y*ml' -- ${cur}) )
        return 0
    fi

    if [ $COMP_CWORD -eq 1 ] && [[ ${cur} == -* ]] ; then
        COMPREPLY=( $(compgen -W "--config --json --quiet --no-color --version" -- ${cur}) )
        return 0
    fi

    local i cmd=""
    for (( i=1; i < COMP_CWORD; i++ )); do
        case "${COMP_WORDS[i]}" in
            init|generate|list|show|completion|version) cmd="${COMP_WORDS[i]}"; break ;;
        esac
    done

    if [ -z "${cmd}" ]; then
        COMPREPLY=( $(compgen -W "${commands}" -- ${cur}) )
        return 0
    fi

    case "${cmd}" in
        init)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--force --yes --name --namespace --units --start-from" -- ${cur}) )
            fi
            ;;
        generate)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--diagram --output-dir --workers --stdout --debug --metrics-addr" -- ${cur}) )
            fi
            ;;
        show)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--workers --keys --debug" -- ${cur}) )
            fi
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh fish" -- ${cur}) )
            ;;
    esac
}

complete -F _seqdiag_completion seqdiag
`

const zshCompletionTemplate = `#compdef seqdiag

# Zsh completion for seqdiag
# Installation:
#   seqdiag completion zsh > "${fpath[1]}/_seqdiag"

_seqdiag() {
    local -a commands
    commands=(
        'init:Create a starter configuration file'
        'generate:Build and write the configured diagrams'
        'list:List configured diagrams'
        'show:Print the participants and calls of one diagram'
        'completion:Generate shell completion script'
        'version:Show version information'
    )

    _arguments -C \
        '(- *)--version[Show version and exit]' \
        '(-c --config)'{-c,--config}'[Path to the configuration file]:config file:_files -g "*.y(a|)ml"' \
        '--json[Machine-readable JSON output]' \
        '(-q --quiet)'{-q,--quiet}'[Suppress informational output]' \
        '--no-color[Disable colored output]' \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                init)
                    _arguments \
                        '--force[Overwrite existing configuration]' \
                        '(-y --yes)'{-y,--yes}'[Non-interactive mode]' \
                        '--name[Diagram name]:name:' \
                        '--namespace[Namespace to include]:namespace:' \
                        '--units[Translation unit dumps]:glob:' \
                        '--start-from[Start-from function]:signature:'
                    ;;
                generate)
                    _arguments \
                        '*'{-d,--diagram}'[Diagram to build]:diagram:' \
                        '(-o --output-dir)'{-o,--output-dir}'[Output directory]:directory:_directories' \
                        '(-j --workers)'{-j,--workers}'[Parallel translation units]:workers:' \
                        '--stdout[Print diagrams to stdout]' \
                        '--debug[Enable debug logging]' \
                        '--metrics-addr[Prometheus metrics address]:address:'
                    ;;
                show)
                    _arguments \
                        '(-j --workers)'{-j,--workers}'[Parallel translation units]:workers:' \
                        '--keys[Print canonical participant keys]' \
                        '--debug[Enable debug logging]' \
                        '1:diagram:'
                    ;;
                completion)
                    _arguments \
                        '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_seqdiag
`

const fishCompletionTemplate = `# Fish completion for seqdiag
# Installation:
#   seqdiag completion fish > ~/.config/fish/completions/seqdiag.fish

complete -c seqdiag -f -n "__fish_use_subcommand" -a "init" -d "Create a starter configuration file"
complete -c seqdiag -f -n "__fish_use_subcommand" -a "generate" -d "Build and write the configured diagrams"
complete -c seqdiag -f -n "__fish_use_subcommand" -a "list" -d "List configured diagrams"
complete -c seqdiag -f -n "__fish_use_subcommand" -a "show" -d "Print the participants and calls of one diagram"
complete -c seqdiag -f -n "__fish_use_subcommand" -a "completion" -d "Generate shell completion script"
complete -c seqdiag -f -n "__fish_use_subcommand" -a "version" -d "Show version information"

complete -c seqdiag -l version -d "Show version and exit"
complete -c seqdiag -s c -l config -d "Path to the configuration file" -r
complete -c seqdiag -l json -d "Machine-readable JSON output"
complete -c seqdiag -s q -l quiet -d "Suppress informational output"
complete -c seqdiag -l no-color -d "Disable colored output"

complete -c seqdiag -n "__fish_seen_subcommand_from init" -l force -d "Overwrite existing configuration"
complete -c seqdiag -n "__fish_seen_subcommand_from init" -s y -l yes -d "Non-interactive mode"
complete -c seqdiag -n "__fish_seen_subcommand_from init" -l name -d "Diagram name" -r
complete -c seqdiag -n "__fish_seen_subcommand_from init" -l namespace -d "Namespace to include" -r
complete -c seqdiag -n "__fish_seen_subcommand_from init" -l units -d "Translation unit dumps" -r
complete -c seqdiag -n "__fish_seen_subcommand_from init" -l start-from -d "Start-from function" -r

complete -c seqdiag -n "__fish_seen_subcommand_from generate" -s d -l diagram -d "Diagram to build" -r
complete -c seqdiag -n "__fish_seen_subcommand_from generate" -s o -l output-dir -d "Output directory" -r
complete -c seqdiag -n "__fish_seen_subcommand_from generate" -s j -l workers -d "Parallel translation units" -r
complete -c seqdiag -n "__fish_seen_subcommand_from generate" -l stdout -d "Print diagrams to stdout"
complete -c seqdiag -n "__fish_seen_subcommand_from generate" -l debug -d "Enable debug logging"
complete -c seqdiag -n "__fish_seen_subcommand_from generate" -l metrics-addr -d "Prometheus metrics address" -r

complete -c seqdiag -n "__fish_seen_subcommand_from show" -s j -l workers -d "Parallel translation units" -r
complete -c seqdiag -n "__fish_seen_subcommand_from show" -l keys -d "Print canonical participant keys"
complete -c seqdiag -n "__fish_seen_subcommand_from show" -l debug -d "Enable debug logging"

complete -c seqdiag -n "__fish_seen_subcommand_from completion" -f -a "bash zsh fish"
`

// runCompletion executes the 'completion' CLI command, writing the
// completion script for bash, zsh or fish to stdout.
func runCompletion(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("completion", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: seqdiag completion <shell>

Generate a shell completion script for bash, zsh or fish.

Examples:
  source <(seqdiag completion bash)
  seqdiag completion zsh > "${fpath[1]}/_seqdiag"
  seqdiag completion fish > ~/.config/fish/completions/seqdiag.fish
`)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		errors.FatalError(errors.NewInputError(
			"Invalid arguments",
			"The completion command requires exactly one argument: the shell name",
			"Run 'seqdiag completion bash', 'seqdiag completion zsh', or 'seqdiag completion fish'",
		), globals.JSON)
	}
	if err := writeCompletion(os.Stdout, fs.Arg(0)); err != nil {
		errors.FatalError(err, globals.JSON)
	}
}

func writeCompletion(w io.Writer, shell string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletionTemplate
	case "zsh":
		script = zshCompletionTemplate
	case "fish":
		script = fishCompletionTemplate
	default:
		return errors.NewInputError(
			"Unsupported shell",
			fmt.Sprintf("Shell '%s' is not supported. Valid options: bash, zsh, fish", shell),
			"Run 'seqdiag completion bash', 'seqdiag completion zsh', or 'seqdiag completion fish'",
		)
	}
	_, err := io.WriteString(w, script)
	return err
}
