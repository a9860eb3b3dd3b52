// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package output provides machine-readable output for seqdiag commands.
//
// Every command that supports --json writes one of the report types below,
// pretty-printed with two-space indentation:
//
//	report := output.GenerateReport{Diagrams: []output.DiagramReport{...}}
//	if err := output.JSONTo(os.Stdout, report); err != nil {
//	    errors.FatalError(err, true)
//	}
//
// Human-readable output lives in the ui package and error reporting in the
// errors package.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// DiagramReport summarizes one generated diagram.
type DiagramReport struct {
	Name         string `json:"name"`
	Format       string `json:"format"`
	Output       string `json:"output,omitempty"`
	Units        int    `json:"translation_units"`
	Participants int    `json:"participants"`
	Events       int    `json:"events"`
	DurationMS   int64  `json:"duration_ms"`
}

// NewDiagramReport fills the timing field from d.
func NewDiagramReport(name, format, path string, units, participants, events int, d time.Duration) DiagramReport {
	return DiagramReport{
		Name:         name,
		Format:       format,
		Output:       path,
		Units:        units,
		Participants: participants,
		Events:       events,
		DurationMS:   d.Milliseconds(),
	}
}

// GenerateReport is the --json output of 'seqdiag generate'.
type GenerateReport struct {
	Config   string          `json:"config"`
	Diagrams []DiagramReport `json:"diagrams"`
}

// DiagramEntry describes one configured diagram in 'seqdiag list'.
type DiagramEntry struct {
	Name             string   `json:"name"`
	Format           string   `json:"format"`
	UsingNamespace   string   `json:"using_namespace,omitempty"`
	TranslationUnits []string `json:"translation_units"`
	StartFrom        []string `json:"start_from,omitempty"`
}

// ListReport is the --json output of 'seqdiag list'.
type ListReport struct {
	Config   string         `json:"config"`
	Diagrams []DiagramEntry `json:"diagrams"`
}

// JSON writes data to stdout as indented JSON.
func JSON(data any) error {
	return JSONTo(os.Stdout, data)
}

// JSONTo writes data to w as indented JSON.
func JSONTo(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

// JSONCompactTo writes data to w as a single JSON line.
func JSONCompactTo(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

// Raw writes an already encoded document to w, ensuring a trailing newline.
func Raw(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
