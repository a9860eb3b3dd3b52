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

package sequence

import (
	"strings"
	"testing"

	"github.com/kraklabs/seqdiag/pkg/sourcemodel"
)

func TestGenerateParticipantID_Deterministic(t *testing.T) {
	key := "class:ns::B<int>"

	id1 := GenerateParticipantID(key)
	id2 := GenerateParticipantID(key)

	if id1 != id2 {
		t.Errorf("GenerateParticipantID should be deterministic: got %q and %q", id1, id2)
	}
	if !strings.HasPrefix(string(id1), "p:") {
		t.Errorf("GenerateParticipantID should start with 'p:': got %q", id1)
	}
	// "p:" + 16 bytes hex encoded
	if len(id1) != 2+32 {
		t.Errorf("unexpected ID length %d for %q", len(id1), id1)
	}
}

func TestGenerateActivationID_Prefix(t *testing.T) {
	id := GenerateActivationID("class:ns::B<int>::b(int)")
	if !strings.HasPrefix(string(id), "a:") {
		t.Errorf("GenerateActivationID should start with 'a:': got %q", id)
	}
}

func TestParticipantIdentity_DistinctInstantiations(t *testing.T) {
	str := sourcemodel.T("std::string")
	cases := []*sourcemodel.Record{
		{QualifiedName: "ns::B", TemplateArgs: []sourcemodel.Type{sourcemodel.T("int")}},
		{QualifiedName: "ns::B", TemplateArgs: []sourcemodel.Type{str}},
		{QualifiedName: "ns::BB", TemplateArgs: []sourcemodel.Type{sourcemodel.T("int"), sourcemodel.T("int")}},
		{QualifiedName: "ns::BB", TemplateArgs: []sourcemodel.Type{sourcemodel.T("int"), str}},
		{QualifiedName: "ns::BB", TemplateArgs: []sourcemodel.Type{str, sourcemodel.T("int")}},
		{QualifiedName: "ns::B", TemplateArgs: []sourcemodel.Type{sourcemodel.T("std::vector", sourcemodel.T("int"))}},
		{QualifiedName: "ns::B", TemplateArgs: []sourcemodel.Type{sourcemodel.T("std::vector", sourcemodel.T("float"))}},
	}

	seen := make(map[string]int)
	for i, rec := range cases {
		d := &sourcemodel.Decl{Kind: sourcemodel.KindMethod, Name: "m", QualifiedName: rec.QualifiedName + "::m", Record: rec}
		key := participantIdentity(d).key
		if j, ok := seen[key]; ok {
			t.Errorf("cases %d and %d share key %q", j, i, key)
		}
		seen[key] = i
	}
}

func TestParticipantIdentity_MethodsShareClass(t *testing.T) {
	rec := &sourcemodel.Record{QualifiedName: "ns::AA", TemplateArgs: []sourcemodel.Type{sourcemodel.T("int")}}
	aa1 := &sourcemodel.Decl{Kind: sourcemodel.KindMethod, Name: "aa1", QualifiedName: "ns::AA::aa1", Record: rec}
	aa2 := &sourcemodel.Decl{Kind: sourcemodel.KindMethod, Name: "aa2", QualifiedName: "ns::AA::aa2", Record: rec}
	class := &sourcemodel.Decl{Kind: sourcemodel.KindRecord, Name: "AA", QualifiedName: "ns::AA", Record: rec}

	want := identity{key: "class:ns::AA<int>", kind: ParticipantClass, display: "ns::AA<int>"}
	for _, d := range []*sourcemodel.Decl{aa1, aa2, class} {
		if got := participantIdentity(d); got != want {
			t.Errorf("participantIdentity(%s) = %+v, want %+v", d.Signature(), got, want)
		}
	}

	if activationKey(aa1) == activationKey(aa2) {
		t.Errorf("methods of one class should have distinct activations")
	}
}

func TestParticipantIdentity_Functions(t *testing.T) {
	tests := []struct {
		name        string
		decl        *sourcemodel.Decl
		wantKey     string
		wantDisplay string
		wantKind    ParticipantKind
	}{
		{
			name:        "plain",
			decl:        &sourcemodel.Decl{Kind: sourcemodel.KindFunction, Name: "tmain", QualifiedName: "ns::tmain"},
			wantKey:     "function:ns::tmain",
			wantDisplay: "ns::tmain()",
			wantKind:    ParticipantFunction,
		},
		{
			name: "overloaded",
			decl: &sourcemodel.Decl{
				Kind: sourcemodel.KindFunction, Name: "f", QualifiedName: "ns::f",
				Params: []sourcemodel.Type{sourcemodel.T("int")}, Overloaded: true,
			},
			wantKey:     "function:ns::f(int)",
			wantDisplay: "ns::f(int)",
			wantKind:    ParticipantFunction,
		},
		{
			name: "function template",
			decl: &sourcemodel.Decl{
				Kind: sourcemodel.KindFunction, Name: "g", QualifiedName: "ns::g",
				TemplateArgs: []sourcemodel.Type{sourcemodel.T("int")},
			},
			wantKey:     "function:ns::g<int>",
			wantDisplay: "ns::g<int>()",
			wantKind:    ParticipantFunction,
		},
		{
			name: "method without record",
			decl: &sourcemodel.Decl{
				Kind: sourcemodel.KindMethod, Name: "m", QualifiedName: "ns::C::m",
				Params: []sourcemodel.Type{sourcemodel.T("int")},
			},
			wantKey:     "method:ns::C::m(int)",
			wantDisplay: "ns::C::m(int)",
			wantKind:    ParticipantMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := participantIdentity(tt.decl)
			if got.key != tt.wantKey {
				t.Errorf("key = %q, want %q", got.key, tt.wantKey)
			}
			if got.display != tt.wantDisplay {
				t.Errorf("display = %q, want %q", got.display, tt.wantDisplay)
			}
			if got.kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", got.kind, tt.wantKind)
			}
		})
	}
}

func TestParticipantIdentity_OverloadsDiffer(t *testing.T) {
	fInt := &sourcemodel.Decl{Kind: sourcemodel.KindFunction, Name: "f", QualifiedName: "ns::f", Params: []sourcemodel.Type{sourcemodel.T("int")}, Overloaded: true}
	fStr := &sourcemodel.Decl{Kind: sourcemodel.KindFunction, Name: "f", QualifiedName: "ns::f", Params: []sourcemodel.Type{sourcemodel.T("std::string")}, Overloaded: true}

	if Key(fInt) == Key(fStr) {
		t.Errorf("overloads should not share a participant: %q", Key(fInt))
	}
}
