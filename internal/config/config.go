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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/seqdiag/pkg/render"
	"github.com/kraklabs/seqdiag/pkg/sequence"
	"github.com/kraklabs/seqdiag/pkg/sourcemodel"
)

// DiagramTypeSequence is the only supported diagram type.
const DiagramTypeSequence = "sequence"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the root of a configuration file.
type Config struct {
	// CompilationDatabaseDir is informational; dumps are produced out of band.
	CompilationDatabaseDir string `yaml:"compilation_database_dir,omitempty"`

	// OutputDirectory receives rendered diagrams. Defaults to the directory
	// of the configuration file.
	OutputDirectory string `yaml:"output_directory,omitempty"`

	Diagrams map[string]*Diagram `yaml:"diagrams"`

	path string
}

// Diagram configures one sequence diagram.
type Diagram struct {
	Name             string        `yaml:"-"`
	Type             string        `yaml:"type"`
	Format           render.Format `yaml:"format,omitempty"`
	UsingNamespace   string        `yaml:"using_namespace,omitempty"`
	TranslationUnits []string      `yaml:"translation_units"`
	Include          Selector      `yaml:"include,omitempty"`
	Exclude          Selector      `yaml:"exclude,omitempty"`
	StartFrom        []StartFrom   `yaml:"start_from,omitempty"`
}

// Selector matches declarations by namespace prefix or exact element name.
type Selector struct {
	Namespaces []string `yaml:"namespaces,omitempty"`
	Elements   []string `yaml:"elements,omitempty"`
}

// StartFrom names a function whose call tree the diagram shows.
type StartFrom struct {
	// Function is a signature such as ns::tmain() or ns::f(int,std::string).
	Function string `yaml:"function"`
}

// Load reads, resolves and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.path = path

	if err := cfg.resolve(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates configuration data. Paths are left as written.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for name, d := range cfg.Diagrams {
		if d == nil {
			d = &Diagram{}
			cfg.Diagrams[name] = d
		}
		d.Name = name
		if d.Type == "" {
			d.Type = DiagramTypeSequence
		}
		if d.Format == "" {
			d.Format = render.FormatPlantUML
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first problem found, in diagram name order.
func (c *Config) Validate() error {
	if len(c.Diagrams) == 0 {
		return fmt.Errorf("%w: no diagrams defined", ErrInvalid)
	}
	for _, name := range c.Names() {
		d := c.Diagrams[name]
		if d.Type != DiagramTypeSequence {
			return fmt.Errorf("%w: diagram %q: unsupported type %q", ErrInvalid, name, d.Type)
		}
		if !slices.Contains(render.Formats(), d.Format) {
			return fmt.Errorf("%w: diagram %q: unknown format %q", ErrInvalid, name, d.Format)
		}
		if len(d.TranslationUnits) == 0 {
			return fmt.Errorf("%w: diagram %q: no translation units", ErrInvalid, name)
		}
		for i, s := range d.StartFrom {
			if strings.TrimSpace(s.Function) == "" {
				return fmt.Errorf("%w: diagram %q: start_from[%d] has no function", ErrInvalid, name, i)
			}
		}
	}
	return nil
}

func (c *Config) resolve(dir string) error {
	if !filepath.IsAbs(c.OutputDirectory) {
		c.OutputDirectory = filepath.Join(dir, c.OutputDirectory)
	}
	for _, name := range c.Names() {
		d := c.Diagrams[name]
		units, err := expandUnits(dir, d.TranslationUnits)
		if err != nil {
			return fmt.Errorf("diagram %q: %w", name, err)
		}
		d.TranslationUnits = units
	}
	return nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string { return c.path }

// Names returns the diagram names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Diagrams))
	for name := range c.Diagrams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Diagram returns the named diagram.
func (c *Config) Diagram(name string) (*Diagram, bool) {
	d, ok := c.Diagrams[name]
	return d, ok
}

// OutputPath returns where the rendered diagram is written.
func (c *Config) OutputPath(d *Diagram, ext string) string {
	return filepath.Join(c.OutputDirectory, d.Name+ext)
}

// Predicates builds the traversal filter for d.
//
// A declaration is included when it lies in one of the include namespaces
// (all namespaces when none are listed) and is neither in an excluded
// namespace nor an excluded element. Start-from entries match the
// declaration's qualified signature.
func (d *Diagram) Predicates() sequence.Filter {
	include := d.Include
	exclude := d.Exclude

	starts := make(map[string]bool, len(d.StartFrom))
	for _, s := range d.StartFrom {
		starts[NormalizeSignature(s.Function)] = true
	}

	f := sequence.Filter{
		Include: func(decl *sourcemodel.Decl) bool {
			if len(include.Namespaces) > 0 && !inNamespaces(decl, include.Namespaces) {
				return false
			}
			return !inNamespaces(decl, exclude.Namespaces) && !isElement(decl, exclude.Elements)
		},
	}
	if len(starts) > 0 {
		f.StartFrom = func(decl *sourcemodel.Decl) bool {
			return starts[decl.Signature()]
		}
	}
	return f
}

// NormalizeSignature removes insignificant whitespace from a signature so
// that "ns::f (int, float)" matches "ns::f(int,float)".
func NormalizeSignature(sig string) string {
	sig = strings.TrimSpace(sig)
	sig = strings.ReplaceAll(sig, " (", "(")
	sig = strings.ReplaceAll(sig, "( ", "(")
	sig = strings.ReplaceAll(sig, " )", ")")
	sig = strings.ReplaceAll(sig, ", ", ",")
	return sig
}

func inNamespaces(decl *sourcemodel.Decl, namespaces []string) bool {
	for _, ns := range namespaces {
		ns = strings.TrimSuffix(ns, "::")
		if strings.HasPrefix(decl.QualifiedName, ns+"::") {
			return true
		}
	}
	return false
}

func isElement(decl *sourcemodel.Decl, elements []string) bool {
	for _, e := range elements {
		if decl.QualifiedName == e {
			return true
		}
		if decl.Record != nil && (decl.Record.QualifiedName == e || decl.Record.String() == e) {
			return true
		}
	}
	return false
}

// Default returns a one-diagram configuration for the given start function.
// It is what 'seqdiag init' writes.
func Default(name, namespace, units, start string) *Config {
	d := &Diagram{
		Name:             name,
		Type:             DiagramTypeSequence,
		Format:           render.FormatPlantUML,
		UsingNamespace:   namespace,
		TranslationUnits: []string{units},
	}
	if namespace != "" {
		d.Include.Namespaces = []string{namespace}
	}
	if start != "" {
		d.StartFrom = []StartFrom{{Function: start}}
	}
	return &Config{
		OutputDirectory: "diagrams",
		Diagrams:        map[string]*Diagram{name: d},
	}
}

// Save validates c and writes it to path as YAML.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append([]byte("# seqdiag configuration. See 'seqdiag list' for the diagrams it defines.\n"), data...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	c.path = path
	return nil
}
