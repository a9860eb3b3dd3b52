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
	"bytes"
	"os"
	"testing"
)

func TestNewProgressConfig(t *testing.T) {
	tests := []struct {
		name            string
		globals         GlobalFlags
		expectedNoColor bool
	}{
		{"default flags", GlobalFlags{}, false},
		{"quiet mode", GlobalFlags{Quiet: true}, false},
		{"JSON mode", GlobalFlags{JSON: true, Quiet: true}, false},
		{"noColor propagates", GlobalFlags{NoColor: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewProgressConfig(tt.globals)
			// stderr is not a TTY under go test
			if cfg.Enabled {
				t.Error("NewProgressConfig().Enabled = true, want false")
			}
			if cfg.NoColor != tt.expectedNoColor {
				t.Errorf("NewProgressConfig().NoColor = %v, want %v", cfg.NoColor, tt.expectedNoColor)
			}
			if cfg.Writer != os.Stderr {
				t.Error("NewProgressConfig().Writer should be os.Stderr")
			}
		})
	}
}

func TestNewProgressBar(t *testing.T) {
	t.Run("disabled config returns nil", func(t *testing.T) {
		if bar := NewProgressBar(ProgressConfig{Enabled: false}, 100, "Test"); bar != nil {
			t.Error("NewProgressBar() should return nil when disabled")
		}
	})

	t.Run("zero total returns nil", func(t *testing.T) {
		var buf bytes.Buffer
		if bar := NewProgressBar(ProgressConfig{Enabled: true, Writer: &buf}, 0, "Empty"); bar != nil {
			t.Error("NewProgressBar() should return nil for zero total")
		}
	})

	t.Run("enabled config counts units", func(t *testing.T) {
		var buf bytes.Buffer
		bar := NewProgressBar(ProgressConfig{Enabled: true, Writer: &buf, NoColor: true}, 3, "Traversing")
		if bar == nil {
			t.Fatal("NewProgressBar() should return non-nil when enabled")
		}
		for range 3 {
			_ = bar.Add(1)
		}
		if got := bar.State().CurrentNum; got != 3 {
			t.Errorf("CurrentNum = %d, want 3", got)
		}
		_ = bar.Finish()
	})
}
