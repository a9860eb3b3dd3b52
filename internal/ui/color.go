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

// Package ui provides terminal output helpers for the seqdiag CLI.
//
// Colors respect the --no-color flag and the NO_COLOR environment variable.
//
// Color usage guidelines:
//   - Red: Errors, failures
//   - Yellow: Warnings, skipped work
//   - Green: Diagrams written
//   - Cyan: Info, counts
//   - Bold: Headers, labels
//   - Dim: Paths, keys
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Pre-configured color instances for consistent CLI output.
var (
	Red    = color.New(color.FgRed)
	Yellow = color.New(color.FgYellow)
	Green  = color.New(color.FgGreen)
	Cyan   = color.New(color.FgCyan)
	Bold   = color.New(color.Bold)
	Dim    = color.New(color.Faint)
)

// InitColors configures global color output. Call it right after flag
// parsing.
func InitColors(noColor bool) {
	color.NoColor = noColor
}

// Printer writes status messages. A quiet printer drops everything except
// errors and warnings.
type Printer struct {
	w     io.Writer
	quiet bool
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, quiet bool) *Printer {
	return &Printer{w: w, quiet: quiet}
}

// Quiet reports whether informational output is suppressed.
func (p *Printer) Quiet() bool { return p.quiet }

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.w }

// Successf prints a green message with a checkmark prefix.
//
// Example output: "✓ Wrote diagrams/t20006_sequence.puml"
func (p *Printer) Successf(format string, args ...any) {
	if p.quiet {
		return
	}
	_, _ = Green.Fprintf(p.w, "✓ "+format+"\n", args...)
}

// Warningf prints a yellow message with a warning symbol prefix.
func (p *Printer) Warningf(format string, args ...any) {
	_, _ = Yellow.Fprintf(p.w, "⚠ "+format+"\n", args...)
}

// Errorf prints a red message with an X prefix.
func (p *Printer) Errorf(format string, args ...any) {
	_, _ = Red.Fprintf(p.w, "✗ "+format+"\n", args...)
}

// Infof prints a cyan message with an info symbol prefix.
//
// Example output: "ℹ Building t20006_sequence from 3 translation units"
func (p *Printer) Infof(format string, args ...any) {
	if p.quiet {
		return
	}
	_, _ = Cyan.Fprintf(p.w, "ℹ "+format+"\n", args...)
}

// Header prints a bold header with an underline separator.
//
//	t20006_sequence
//	===============
func (p *Printer) Header(text string) {
	if p.quiet {
		return
	}
	_, _ = Bold.Fprintln(p.w, text)
	fmt.Fprintln(p.w, strings.Repeat("=", len([]rune(text))))
}

// Field prints an indented "label value" line.
func (p *Printer) Field(label string, value any) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.w, "  %s %v\n", Label(label), value)
}

// Line prints a plain line.
func (p *Printer) Line(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Label returns a bold-formatted label for inline use.
func Label(text string) string {
	return Bold.Sprint(text)
}

// DimText returns a dim-formatted string for paths and keys.
func DimText(text string) string {
	return Dim.Sprint(text)
}

// CountText returns a cyan-formatted count.
func CountText(count int) string {
	return Cyan.Sprint(count)
}
