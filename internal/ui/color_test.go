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

package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

// noColor disables colors for the duration of the test.
func noColor(t *testing.T) {
	t.Helper()
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = original })
}

func TestInitColors(t *testing.T) {
	original := color.NoColor
	defer func() { color.NoColor = original }()

	for _, want := range []bool{false, true} {
		InitColors(want)
		if color.NoColor != want {
			t.Errorf("InitColors(%v): color.NoColor = %v", want, color.NoColor)
		}
	}
}

func TestPrinter_Messages(t *testing.T) {
	noColor(t)

	tests := []struct {
		name  string
		print func(p *Printer)
		want  string
	}{
		{"success", func(p *Printer) { p.Successf("Wrote %s", "a.puml") }, "✓ Wrote a.puml\n"},
		{"warning", func(p *Printer) { p.Warningf("%d units skipped", 2) }, "⚠ 2 units skipped\n"},
		{"error", func(p *Printer) { p.Errorf("failed") }, "✗ failed\n"},
		{"info", func(p *Printer) { p.Infof("Building %s", "d") }, "ℹ Building d\n"},
		{"header", func(p *Printer) { p.Header("t20006") }, "t20006\n======\n"},
		{"field", func(p *Printer) { p.Field("Format:", "plantuml") }, "  Format: plantuml\n"},
		{"line", func(p *Printer) { p.Line("%s", "x") }, "x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(NewPrinter(&buf, false))
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrinter_Quiet(t *testing.T) {
	noColor(t)

	var buf bytes.Buffer
	p := NewPrinter(&buf, true)
	p.Successf("hidden")
	p.Infof("hidden")
	p.Header("hidden")
	p.Field("hidden", 1)
	p.Line("hidden")
	p.Warningf("shown")
	p.Errorf("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("quiet printer wrote informational output: %q", buf.String())
	}
	if strings.Count(buf.String(), "shown") != 2 {
		t.Errorf("quiet printer dropped warnings or errors: %q", buf.String())
	}
	if !p.Quiet() {
		t.Error("Quiet() = false")
	}
}

func TestFormatters(t *testing.T) {
	noColor(t)

	if got := Label("Participants:"); got != "Participants:" {
		t.Errorf("Label() = %q", got)
	}
	if got := DimText("class:ns::B<int>"); got != "class:ns::B<int>" {
		t.Errorf("DimText() = %q", got)
	}
	if got := CountText(15); got != "15" {
		t.Errorf("CountText() = %q", got)
	}
}
