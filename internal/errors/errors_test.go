// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

// TestUserError_Error verifies the Error() method implementation.
func TestUserError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *UserError
		want string
	}{
		{
			name: "message only",
			err:  &UserError{Message: "Cannot load configuration"},
			want: "Cannot load configuration",
		},
		{
			name: "with underlying error",
			err:  &UserError{Message: "Cannot load translation unit", Err: fmt.Errorf("unexpected EOF")},
			want: "Cannot load translation unit: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestErrorChain verifies errors.Is and errors.As see through UserError.
func TestErrorChain(t *testing.T) {
	underlying := fmt.Errorf("open build/t20006.yaml: %w", os.ErrNotExist)
	err := fmt.Errorf("generate: %w", NewSourceModelError("Cannot load translation unit", "", "", underlying))

	if !errors.Is(err, os.ErrNotExist) {
		t.Error("errors.Is should find os.ErrNotExist through UserError")
	}

	var ue *UserError
	if !errors.As(err, &ue) {
		t.Fatal("errors.As should find the UserError")
	}
	if ue.ExitCode != ExitSourceModel {
		t.Errorf("ExitCode = %d, want %d", ue.ExitCode, ExitSourceModel)
	}
}

// TestExitCodes_Uniqueness verifies that no two categories share a code.
func TestExitCodes_Uniqueness(t *testing.T) {
	codes := map[string]int{
		"ExitSuccess":     ExitSuccess,
		"ExitConfig":      ExitConfig,
		"ExitSourceModel": ExitSourceModel,
		"ExitOutput":      ExitOutput,
		"ExitInput":       ExitInput,
		"ExitPermission":  ExitPermission,
		"ExitNotFound":    ExitNotFound,
		"ExitInternal":    ExitInternal,
	}

	seen := make(map[int]string)
	for name, code := range codes {
		if other, ok := seen[code]; ok {
			t.Errorf("%s and %s share exit code %d", name, other, code)
		}
		seen[code] = name
	}
}

// TestConstructors verifies every constructor sets its exit code.
func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("cause")
	tests := []struct {
		name     string
		err      *UserError
		wantCode int
		wantErr  error
	}{
		{"config", NewConfigError("m", "c", "f", cause), ExitConfig, cause},
		{"source model", NewSourceModelError("m", "c", "f", cause), ExitSourceModel, cause},
		{"output", NewOutputError("m", "c", "f", cause), ExitOutput, cause},
		{"input", NewInputError("m", "c", "f"), ExitInput, nil},
		{"permission", NewPermissionError("m", "c", "f", cause), ExitPermission, cause},
		{"not found", NewNotFoundError("m", "c", "f"), ExitNotFound, nil},
		{"internal", NewInternalError("m", "c", "f", cause), ExitInternal, cause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.ExitCode != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d", tt.err.ExitCode, tt.wantCode)
			}
			if tt.err.Message != "m" || tt.err.Cause != "c" || tt.err.Fix != "f" {
				t.Errorf("fields not set: %+v", tt.err)
			}
			if tt.err.Err != tt.wantErr {
				t.Errorf("Err = %v, want %v", tt.err.Err, tt.wantErr)
			}
		})
	}
}

// TestUserError_Format verifies the Format() method implementation.
func TestUserError_Format(t *testing.T) {
	tests := []struct {
		name    string
		err     *UserError
		want    []string
		notWant []string
	}{
		{
			name: "full error",
			err: &UserError{
				Message: "Cannot load configuration",
				Cause:   "no diagrams defined",
				Fix:     "Add a diagram",
			},
			want: []string{"Error: Cannot load configuration\n", "Cause: no diagrams defined\n", "Fix:   Add a diagram\n"},
		},
		{
			name:    "message only",
			err:     &UserError{Message: "Something failed"},
			want:    []string{"Error: Something failed\n"},
			notWant: []string{"Cause:", "Fix:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(true)
			for _, s := range tt.want {
				if !strings.Contains(got, s) {
					t.Errorf("Format() output missing %q\nGot: %s", s, got)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(got, s) {
					t.Errorf("Format() output should not contain %q\nGot: %s", s, got)
				}
			}
			if strings.Contains(got, "\x1b[") {
				t.Error("Format(true) output contains ANSI codes")
			}
		})
	}
}

// TestUserError_Format_NoColorEnv verifies that NO_COLOR is respected.
func TestUserError_Format_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	output := (&UserError{Message: "Test error", Cause: "Test cause"}).Format(false)
	if strings.Contains(output, "\x1b[") {
		t.Error("Format() output contains ANSI codes despite NO_COLOR being set")
	}
}

// TestReport verifies text and JSON reporting and the returned exit codes.
func TestReport(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		var buf bytes.Buffer
		if code := Report(&buf, nil, false, true); code != ExitSuccess {
			t.Errorf("code = %d, want %d", code, ExitSuccess)
		}
		if buf.Len() != 0 {
			t.Errorf("unexpected output %q", buf.String())
		}
	})

	t.Run("user error text", func(t *testing.T) {
		var buf bytes.Buffer
		code := Report(&buf, NewInputError("Unknown diagram", "", "Run 'seqdiag list'"), false, true)
		if code != ExitInput {
			t.Errorf("code = %d, want %d", code, ExitInput)
		}
		if !strings.Contains(buf.String(), "Error: Unknown diagram") {
			t.Errorf("missing message in %q", buf.String())
		}
	})

	t.Run("user error json", func(t *testing.T) {
		var buf bytes.Buffer
		code := Report(&buf, NewConfigError("Bad config", "no diagrams", "", nil), true, true)
		if code != ExitConfig {
			t.Errorf("code = %d, want %d", code, ExitConfig)
		}
		var got ErrorJSON
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON %q: %v", buf.String(), err)
		}
		want := ErrorJSON{Error: "Bad config", Cause: "no diagrams", ExitCode: ExitConfig}
		if got != want {
			t.Errorf("ToJSON() = %+v, want %+v", got, want)
		}
	})

	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer
		code := Report(&buf, fmt.Errorf("boom"), false, true)
		if code != ExitInternal {
			t.Errorf("code = %d, want %d", code, ExitInternal)
		}
		if buf.String() != "Error: boom\n" {
			t.Errorf("output = %q", buf.String())
		}
	})
}

// TestFatalError_Nil verifies FatalError returns for a nil error.
func TestFatalError_Nil(t *testing.T) {
	FatalError(nil, false)
}
