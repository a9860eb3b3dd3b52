// Copyright 2025 KrakLabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package sourcemodel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/kraklabs/seqdiag/internal/contract"
)

// Provider supplies resolved translation units.
// This allows switching between on-disk dumps and in-process front-ends.
type Provider interface {
	// Load returns the translation unit identified by path.
	Load(ctx context.Context, path string) (*TranslationUnit, error)
}

// Ensure implementations satisfy the interface
var _ Provider = (*FileProvider)(nil)
var _ Provider = (*MemoryProvider)(nil)

// Format is the encoding of a translation unit dump.
type Format string

const (
	// FormatYAML is a YAML document (.yaml, .yml).
	FormatYAML Format = "yaml"

	// FormatJSON is a JSON document (.json).
	FormatJSON Format = "json"

	// FormatMsgpack is a MessagePack document (.msgpack, .mpk).
	FormatMsgpack Format = "msgpack"
)

// ErrUnknownFormat is returned for dump files with an unrecognized extension.
var ErrUnknownFormat = errors.New("unknown translation unit format")

// FormatFor picks the dump format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Decode reads a translation unit in the given format.
func Decode(data []byte, format Format) (*TranslationUnit, error) {
	var tu TranslationUnit
	var err error
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&tu); errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&tu)
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &tu)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	if tu.Root == nil {
		tu.Root = &Node{Kind: KindTranslationUnit}
	}
	return &tu, nil
}

// Encode writes a translation unit in the given format.
func Encode(tu *TranslationUnit, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(tu)
	case FormatJSON:
		return json.MarshalIndent(tu, "", "  ")
	case FormatMsgpack:
		return msgpack.Marshal(tu)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// FileProvider loads translation unit dumps written by the front-end.
type FileProvider struct {
	logger *slog.Logger
}

// NewFileProvider creates a provider reading dumps from disk.
func NewFileProvider(logger *slog.Logger) *FileProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileProvider{logger: logger}
}

// Load reads and decodes the dump at path. Dumps larger than
// contract.MaxUnitBytes are rejected before reading. The unit's Path
// defaults to the dump path when the dump does not name its source file.
func (p *FileProvider) Load(ctx context.Context, path string) (*TranslationUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read translation unit: %w", err)
	}
	if err := contract.ValidateUnitSize(path, info.Size()).Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read translation unit: %w", err)
	}
	tu, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if tu.Path == "" {
		tu.Path = path
	}
	p.logger.Debug("sourcemodel.load", "path", path, "format", format, "bytes", len(data))
	return tu, nil
}

// MemoryProvider serves translation units already held in memory, keyed by path.
// It is what in-process front-ends and tests use.
type MemoryProvider struct {
	units map[string]*TranslationUnit
}

// NewMemoryProvider creates a provider over the given units.
func NewMemoryProvider(units ...*TranslationUnit) *MemoryProvider {
	m := &MemoryProvider{units: make(map[string]*TranslationUnit, len(units))}
	for _, tu := range units {
		m.units[tu.Path] = tu
	}
	return m
}

// Load returns the unit registered under path.
func (m *MemoryProvider) Load(ctx context.Context, path string) (*TranslationUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tu, ok := m.units[path]
	if !ok {
		return nil, fmt.Errorf("translation unit %q: %w", path, os.ErrNotExist)
	}
	return tu, nil
}
