// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: Apache-2.0

package sourcemodel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/seqdiag/internal/contract"
)

func TestType_String(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{name: "plain", typ: T("int"), want: "int"},
		{name: "single arg", typ: T("B", T("int")), want: "B<int>"},
		{name: "two args", typ: T("BB", T("int"), T("std::string")), want: "BB<int,std::string>"},
		{name: "nested", typ: T("BB", T("int"), T("BB", T("int"), T("float"))), want: "BB<int,BB<int,float>>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestDecl_Signature(t *testing.T) {
	d := &Decl{Kind: KindFunction, QualifiedName: "ns::f", Params: []Type{T("int"), T("std::vector", T("int"))}}
	assert.Equal(t, "ns::f(int,std::vector<int>)", d.Signature())

	tmain := &Decl{Kind: KindFunction, QualifiedName: "clanguml::t20006::tmain"}
	assert.Equal(t, "clanguml::t20006::tmain()", tmain.Signature())
}

const yamlUnit = `
path: t.cc
root:
  kind: translation_unit
  children:
    - kind: method
      decl:
        kind: method
        name: bb1
        qualified_name: ns::BB::bb1
        record:
          qualified_name: ns::BB
          template_args: [int, {name: std::vector, args: [float]}]
      children:
        - kind: call
          call:
            name: aa1
            target:
              kind: method
              name: aa1
              qualified_name: ns::AA::aa1
              record: {qualified_name: ns::AA, template_args: [int]}
`

func TestDecode_YAMLScalarAndMappingTypes(t *testing.T) {
	tu, err := Decode([]byte(yamlUnit), FormatYAML)
	require.NoError(t, err)
	require.Len(t, tu.Root.Children, 1)

	method := tu.Root.Children[0]
	require.NotNil(t, method.Decl)
	assert.Equal(t, "ns::BB<int,std::vector<float>>", method.Decl.Record.String())

	call := method.Children[0].Call
	require.NotNil(t, call)
	assert.Equal(t, "ns::AA<int>", call.Target.Record.String())
}

func TestEncodeDecode_AllFormatsAgree(t *testing.T) {
	src, err := Decode([]byte(yamlUnit), FormatYAML)
	require.NoError(t, err)

	for _, format := range []Format{FormatYAML, FormatJSON, FormatMsgpack} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Encode(src, format)
			require.NoError(t, err)

			got, err := Decode(data, format)
			require.NoError(t, err)
			assert.Equal(t, src, got)
		})
	}
}

func TestDecode_JSONStringTypes(t *testing.T) {
	data := `{"path":"a.cc","root":{"kind":"translation_unit","children":[
		{"kind":"function","decl":{"kind":"function","name":"f","qualified_name":"f","params":["int",{"name":"B","args":["int"]}]}}]}}`

	tu, err := Decode([]byte(data), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "f(int,B<int>)", tu.Root.Children[0].Decl.Signature())
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{
			name:   "misspelled record field",
			format: FormatYAML,
			data: `root:
  kind: translation_unit
  children:
    - kind: record
      decl: {kind: record, name: B, qualified_name: ns::B, record: {qualified_name: ns::B, template_arg: [int]}}
`,
		},
		{
			name:   "misspelled type field",
			format: FormatYAML,
			data: `root:
  kind: function
  decl: {kind: function, name: f, qualified_name: f, params: [{name: B, arg: [int]}]}
`,
		},
		{
			name:   "misspelled JSON type field",
			format: FormatJSON,
			data:   `{"root":{"kind":"function","decl":{"kind":"function","name":"f","qualified_name":"f","params":[{"name":"B","arg":["int"]}]}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestDecode_EmptyYAML(t *testing.T) {
	tu, err := Decode(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, KindTranslationUnit, tu.Root.Kind)
}

func TestFormatFor(t *testing.T) {
	for path, want := range map[string]Format{
		"a.yaml":    FormatYAML,
		"a.YML":     FormatYAML,
		"a.json":    FormatJSON,
		"a.msgpack": FormatMsgpack,
		"a.mpk":     FormatMsgpack,
	} {
		got, err := FormatFor(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFor("a.txt")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestFileProvider_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root:\n  kind: translation_unit\n"), 0o644))

	tu, err := NewFileProvider(nil).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, tu.Path, "path defaults to the dump path")
	assert.Equal(t, KindTranslationUnit, tu.Root.Kind)

	_, err = NewFileProvider(nil).Load(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestFileProvider_SizeLimit(t *testing.T) {
	t.Setenv(contract.MaxUnitBytesEnv, "16")
	path := filepath.Join(t.TempDir(), "unit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root:\n  kind: translation_unit\n"), 0o644))

	_, err := NewFileProvider(nil).Load(context.Background(), path)
	assert.ErrorIs(t, err, contract.ErrUnitTooLarge)
}

func TestMemoryProvider_Load(t *testing.T) {
	p := NewMemoryProvider(&TranslationUnit{Path: "x.cc", Root: &Node{Kind: KindTranslationUnit}})

	tu, err := p.Load(context.Background(), "x.cc")
	require.NoError(t, err)
	assert.Equal(t, "x.cc", tu.Path)

	_, err = p.Load(context.Background(), "y.cc")
	assert.True(t, errors.Is(err, os.ErrNotExist))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Load(ctx, "x.cc")
	assert.ErrorIs(t, err, context.Canceled)
}
