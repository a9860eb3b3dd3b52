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

package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kraklabs/seqdiag/pkg/sourcemodel"
)

// Rec builds a record, optionally a template specialization.
//
// Example:
//
//	bb := testing.Rec("ns::BB", sourcemodel.T("int"), sourcemodel.T("float"))
func Rec(qualifiedName string, args ...sourcemodel.Type) *sourcemodel.Record {
	return &sourcemodel.Record{QualifiedName: qualifiedName, TemplateArgs: args}
}

// Types builds a parameter list of non-templated types.
func Types(names ...string) []sourcemodel.Type {
	out := make([]sourcemodel.Type, len(names))
	for i, n := range names {
		out[i] = sourcemodel.T(n)
	}
	return out
}

// MethodDecl declares a member function of rec.
func MethodDecl(rec *sourcemodel.Record, name string, params ...sourcemodel.Type) *sourcemodel.Decl {
	return &sourcemodel.Decl{
		Kind:          sourcemodel.KindMethod,
		Name:          name,
		QualifiedName: rec.QualifiedName + "::" + name,
		Record:        rec,
		Params:        params,
	}
}

// FunctionDecl declares a free function.
func FunctionDecl(qualifiedName string, params ...sourcemodel.Type) *sourcemodel.Decl {
	return &sourcemodel.Decl{
		Kind:          sourcemodel.KindFunction,
		Name:          lastComponent(qualifiedName),
		QualifiedName: qualifiedName,
		Params:        params,
	}
}

// Body wraps a declaration and its body nodes into a tree node.
func Body(decl *sourcemodel.Decl, children ...*sourcemodel.Node) *sourcemodel.Node {
	kind := decl.Kind
	if kind == "" {
		kind = sourcemodel.KindFunction
	}
	return &sourcemodel.Node{Kind: kind, Decl: decl, Children: children}
}

// Call builds a call expression to target, labelled with the target's name.
// Argument subexpressions (nested calls) become children.
func Call(target *sourcemodel.Decl, args ...*sourcemodel.Node) *sourcemodel.Node {
	name := ""
	if target != nil {
		name = target.Name
	}
	return &sourcemodel.Node{
		Kind:     sourcemodel.KindCall,
		Call:     &sourcemodel.Call{Name: name, Target: target},
		Children: args,
	}
}

// Unresolved builds a call expression the front-end could not resolve.
func Unresolved(name string) *sourcemodel.Node {
	return &sourcemodel.Node{Kind: sourcemodel.KindCall, Call: &sourcemodel.Call{Name: name}}
}

// Class builds a record node holding the given method bodies.
func Class(rec *sourcemodel.Record, members ...*sourcemodel.Node) *sourcemodel.Node {
	return &sourcemodel.Node{
		Kind: sourcemodel.KindRecord,
		Decl: &sourcemodel.Decl{
			Kind:          sourcemodel.KindRecord,
			Name:          lastComponent(rec.QualifiedName),
			QualifiedName: rec.QualifiedName,
			Record:        rec,
		},
		Children: members,
	}
}

// Block builds a statement container.
func Block(children ...*sourcemodel.Node) *sourcemodel.Node {
	return &sourcemodel.Node{Kind: sourcemodel.KindBlock, Children: children}
}

// Unit builds a translation unit whose root holds the given top-level nodes.
func Unit(path string, children ...*sourcemodel.Node) *sourcemodel.TranslationUnit {
	return &sourcemodel.TranslationUnit{
		Path: path,
		Root: &sourcemodel.Node{Kind: sourcemodel.KindTranslationUnit, Children: children},
	}
}

// WriteUnit encodes tu into dir using the format implied by name and returns
// the file path. The file is removed with the test's temp dir.
//
// Example:
//
//	path := testing.WriteUnit(t, t.TempDir(), "t20006.yaml", testing.T20006())
func WriteUnit(t *testing.T, dir, name string, tu *sourcemodel.TranslationUnit) string {
	t.Helper()

	format, err := sourcemodel.FormatFor(name)
	if err != nil {
		t.Fatalf("unit format: %v", err)
	}
	data, err := sourcemodel.Encode(tu, format)
	if err != nil {
		t.Fatalf("encode unit: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write unit: %v", err)
	}
	return path
}

func lastComponent(qualifiedName string) string {
	for i := len(qualifiedName) - 1; i > 0; i-- {
		if qualifiedName[i] == ':' && qualifiedName[i-1] == ':' {
			return qualifiedName[i+1:]
		}
	}
	return qualifiedName
}
