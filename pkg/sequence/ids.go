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
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/kraklabs/seqdiag/pkg/sourcemodel"
)

// ParticipantID is the stable identifier of a participant, derived from its
// canonical key.
type ParticipantID string

// ActivationID is the stable identifier of a function or method body.
type ActivationID string

// ParticipantKind classifies what a participant stands for.
type ParticipantKind string

const (
	// ParticipantFunction is a free function (one per overload when overloaded).
	ParticipantFunction ParticipantKind = "function"

	// ParticipantMethod is a member function reported without its record.
	ParticipantMethod ParticipantKind = "method"

	// ParticipantClass is a class (or template instantiation) acting as the
	// activation target of its methods.
	ParticipantClass ParticipantKind = "class"
)

// identity is the canonical form of a declaration as a participant.
type identity struct {
	key     string
	kind    ParticipantKind
	display string
}

// participantIdentity computes the canonical key of the participant a
// declaration belongs to.
//
// Key layout:
//   - methods and constructors with a record: class:<record<args>>
//   - methods without record information:    method:<qualified name>(<params>)
//   - free functions:                         function:<qualified name><<args>>[(<params>)]
//
// Parameters only take part in a free function key when the front-end marks
// the function as overloaded. Template arguments are printed recursively in
// declared order and are never reordered or normalized.
func participantIdentity(d *sourcemodel.Decl) identity {
	if d.Kind == sourcemodel.KindRecord {
		rec := recordOf(d)
		return identity{key: "class:" + rec.String(), kind: ParticipantClass, display: rec.String()}
	}
	if d.IsMember() {
		name := d.Record.String()
		return identity{key: "class:" + name, kind: ParticipantClass, display: name}
	}

	params := "(" + sourcemodel.JoinTypes(d.Params) + ")"
	if d.Kind == sourcemodel.KindMethod || d.Kind == sourcemodel.KindConstructor {
		name := templated(d.QualifiedName, d.TemplateArgs)
		return identity{key: "method:" + name + params, kind: ParticipantMethod, display: name + params}
	}

	name := templated(d.QualifiedName, d.TemplateArgs)
	if d.Overloaded {
		return identity{key: "function:" + name + params, kind: ParticipantFunction, display: name + params}
	}
	return identity{key: "function:" + name, kind: ParticipantFunction, display: name + "()"}
}

// activationKey identifies one function or method body. Unlike participant
// keys, parameters always take part so that overloaded methods of the same
// instantiation get separate activations.
func activationKey(d *sourcemodel.Decl) string {
	params := "(" + sourcemodel.JoinTypes(d.Params) + ")"
	if d.IsMember() {
		return "class:" + d.Record.String() + "::" + templated(d.Name, d.TemplateArgs) + params
	}
	return participantIdentity(d).key + "::" + templated(d.QualifiedName, d.TemplateArgs) + params
}

func recordOf(d *sourcemodel.Decl) *sourcemodel.Record {
	if d.Record != nil {
		return d.Record
	}
	return &sourcemodel.Record{QualifiedName: d.QualifiedName, TemplateArgs: d.TemplateArgs}
}

func templated(name string, args []sourcemodel.Type) string {
	if len(args) == 0 {
		return name
	}
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('<')
	b.WriteString(sourcemodel.JoinTypes(args))
	b.WriteByte('>')
	return b.String()
}

// GenerateParticipantID derives a deterministic participant ID from a
// canonical key.
func GenerateParticipantID(key string) ParticipantID {
	return ParticipantID("p:" + hashKey(key))
}

// GenerateActivationID derives a deterministic activation ID from an
// activation key.
func GenerateActivationID(key string) ActivationID {
	return ActivationID("a:" + hashKey(key))
}

func hashKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:16])
}
