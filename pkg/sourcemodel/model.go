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
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind identifies the kind of a tree node or declaration.
type Kind string

const (
	// KindTranslationUnit is the root of one translation unit.
	KindTranslationUnit Kind = "translation_unit"

	// KindNamespace groups declarations; it never opens a scope.
	KindNamespace Kind = "namespace"

	// KindRecord is a class or struct (or a concrete template specialization).
	KindRecord Kind = "record"

	// KindFunction is a free function with a body.
	KindFunction Kind = "function"

	// KindMethod is a member function with a body.
	KindMethod Kind = "method"

	// KindConstructor is a constructor with a body.
	KindConstructor Kind = "constructor"

	// KindCall is a call expression.
	KindCall Kind = "call"

	// KindBlock is any statement or expression container (compound statement,
	// lambda body, argument list). Blocks are traversed but never open a scope.
	KindBlock Kind = "block"
)

// HasBody reports whether declarations of this kind open a call scope.
func (k Kind) HasBody() bool {
	return k == KindFunction || k == KindMethod || k == KindConstructor
}

// Location is a source position, used for diagnostics only.
type Location struct {
	File   string `yaml:"file,omitempty" json:"file,omitempty" msgpack:"file,omitempty"`
	Line   int    `yaml:"line,omitempty" json:"line,omitempty" msgpack:"line,omitempty"`
	Column int    `yaml:"column,omitempty" json:"column,omitempty" msgpack:"column,omitempty"`
}

// String returns file:line:column, or an empty string for an unknown location.
func (l Location) String() string {
	if l.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Type is a printed type as reported by the front-end. Template arguments
// are themselves types, so BB<int,BB<int,float>> nests.
type Type struct {
	Name string `yaml:"name" json:"name" msgpack:"name"`
	Args []Type `yaml:"args,omitempty" json:"args,omitempty" msgpack:"args,omitempty"`
}

// T is shorthand for building a Type.
func T(name string, args ...Type) Type {
	return Type{Name: name, Args: args}
}

// String prints the type without whitespace: Name or Name<a,b>.
func (t Type) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t Type) write(b *strings.Builder) {
	b.WriteString(t.Name)
	if len(t.Args) == 0 {
		return
	}
	b.WriteByte('<')
	writeTypes(b, t.Args)
	b.WriteByte('>')
}

func writeTypes(b *strings.Builder, types []Type) {
	for i, arg := range types {
		if i > 0 {
			b.WriteByte(',')
		}
		arg.write(b)
	}
}

// JoinTypes prints a list of types separated by commas.
func JoinTypes(types []Type) string {
	var b strings.Builder
	writeTypes(&b, types)
	return b.String()
}

// UnmarshalYAML accepts either a scalar ("int") or a mapping ({name, args}).
func (t *Type) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		t.Name = value.Value
		t.Args = nil
		return nil
	}
	if value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			if key := value.Content[i].Value; key != "name" && key != "args" {
				return fmt.Errorf("line %d: field %s not found in type", value.Content[i].Line, key)
			}
		}
	}
	type plain Type
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*t = Type(p)
	return nil
}

// UnmarshalJSON accepts either a string ("int") or an object ({name, args}).
func (t *Type) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		t.Name = name
		t.Args = nil
		return nil
	}
	type plain Type
	var p plain
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return err
	}
	*t = Type(p)
	return nil
}

// Record describes the record enclosing a method, or a record declaration itself.
type Record struct {
	QualifiedName string `yaml:"qualified_name" json:"qualified_name" msgpack:"qualified_name"`
	TemplateArgs  []Type `yaml:"template_args,omitempty" json:"template_args,omitempty" msgpack:"template_args,omitempty"`
}

// Type returns the record as a printable type.
func (r *Record) Type() Type {
	return Type{Name: r.QualifiedName, Args: r.TemplateArgs}
}

// String prints the record name with its template arguments.
func (r *Record) String() string {
	return r.Type().String()
}

// Decl is a resolved declaration: a scope-opening body in the tree, or the
// target of a call expression.
type Decl struct {
	Kind          Kind     `yaml:"kind" json:"kind" msgpack:"kind"`
	Name          string   `yaml:"name" json:"name" msgpack:"name"`
	QualifiedName string   `yaml:"qualified_name" json:"qualified_name" msgpack:"qualified_name"`
	Record        *Record  `yaml:"record,omitempty" json:"record,omitempty" msgpack:"record,omitempty"`
	TemplateArgs  []Type   `yaml:"template_args,omitempty" json:"template_args,omitempty" msgpack:"template_args,omitempty"`
	Params        []Type   `yaml:"params,omitempty" json:"params,omitempty" msgpack:"params,omitempty"`
	Overloaded    bool     `yaml:"overloaded,omitempty" json:"overloaded,omitempty" msgpack:"overloaded,omitempty"`
	Dependent     bool     `yaml:"dependent,omitempty" json:"dependent,omitempty" msgpack:"dependent,omitempty"`
	Location      Location `yaml:"location,omitempty" json:"location,omitempty" msgpack:"location,omitempty"`
}

// Signature is the qualified name followed by the parameter list, e.g.
// "clanguml::t20006::tmain()". Start-from filters match against it.
func (d *Decl) Signature() string {
	return d.QualifiedName + "(" + JoinTypes(d.Params) + ")"
}

// IsMember reports whether the declaration belongs to a record.
func (d *Decl) IsMember() bool {
	return d.Record != nil && (d.Kind == KindMethod || d.Kind == KindConstructor)
}

// Call is a call expression with the front-end's resolved target.
// A nil Target means the front-end could not resolve the call.
type Call struct {
	Name     string   `yaml:"name" json:"name" msgpack:"name"`
	Target   *Decl    `yaml:"target,omitempty" json:"target,omitempty" msgpack:"target,omitempty"`
	Location Location `yaml:"location,omitempty" json:"location,omitempty" msgpack:"location,omitempty"`
}

// Node is one element of the declaration/expression tree. Exactly one of
// Decl or Call is set, depending on Kind; namespaces, blocks and the
// translation unit root may carry neither.
type Node struct {
	Kind     Kind    `yaml:"kind" json:"kind" msgpack:"kind"`
	Decl     *Decl   `yaml:"decl,omitempty" json:"decl,omitempty" msgpack:"decl,omitempty"`
	Call     *Call   `yaml:"call,omitempty" json:"call,omitempty" msgpack:"call,omitempty"`
	Children []*Node `yaml:"children,omitempty" json:"children,omitempty" msgpack:"children,omitempty"`
}

// TranslationUnit is the resolved tree of one source file.
type TranslationUnit struct {
	Path string `yaml:"path" json:"path" msgpack:"path"`
	Root *Node  `yaml:"root" json:"root" msgpack:"root"`
}
