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

package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kraklabs/seqdiag/pkg/sequence"
)

// Format names an output notation.
type Format string

const (
	FormatPlantUML Format = "plantuml"
	FormatMermaid  Format = "mermaid"
	FormatJSON     Format = "json"
)

var (
	// ErrNotFinalized is returned when rendering a diagram that can still
	// change.
	ErrNotFinalized = errors.New("diagram is not finalized")

	// ErrUnknownFormat is returned by New for unsupported formats.
	ErrUnknownFormat = errors.New("unknown diagram format")
)

// Renderer turns a finalized diagram into text.
type Renderer interface {
	Render(d *sequence.Diagram) ([]byte, error)

	// Extension is the file extension of the output, including the dot.
	Extension() string
}

// Options adjust how names are displayed.
type Options struct {
	// UsingNamespace is stripped from display names, so that
	// ns::B<ns::A> renders as B<A>.
	UsingNamespace string
}

// New returns the renderer for format.
func New(format Format, opts Options) (Renderer, error) {
	switch format {
	case FormatPlantUML, "":
		return &PlantUML{opts: opts}, nil
	case FormatMermaid:
		return &Mermaid{opts: opts}, nil
	case FormatJSON:
		return &JSON{opts: opts}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatPlantUML, FormatMermaid, FormatJSON}
}

// Alias returns the rendering alias of the participant at order.
func Alias(order int) string {
	return fmt.Sprintf("C_%04d", order+1)
}

type entry struct {
	Alias       string                   `json:"alias"`
	DisplayName string                   `json:"display_name"`
	Kind        sequence.ParticipantKind `json:"kind"`
}

type message struct {
	Seq   int    `json:"seq"`
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}

// document is the aliased, display-ready form of a diagram shared by all
// formats.
type document struct {
	Name         string    `json:"name"`
	Participants []entry   `json:"participants"`
	Messages     []message `json:"messages"`
}

func layout(d *sequence.Diagram, opts Options) (*document, error) {
	if d == nil || !d.Finalized() {
		return nil, ErrNotFinalized
	}

	doc := &document{Name: d.Name(), Participants: []entry{}, Messages: []message{}}
	aliases := make(map[sequence.ParticipantID]string)
	for i, p := range d.Participants() {
		alias := Alias(i)
		aliases[p.ID] = alias
		doc.Participants = append(doc.Participants, entry{
			Alias:       alias,
			DisplayName: opts.Display(p.DisplayName),
			Kind:        p.Kind,
		})
	}

	for _, e := range d.Events() {
		from, ok := aliases[e.From]
		if !ok {
			return nil, fmt.Errorf("event %d: unknown caller %s", e.Seq, e.From)
		}
		to, ok := aliases[e.To]
		if !ok {
			return nil, fmt.Errorf("event %d: unknown callee %s", e.Seq, e.To)
		}
		doc.Messages = append(doc.Messages, message{Seq: e.Seq, From: from, To: to, Label: e.Label})
	}
	return doc, nil
}

// Display strips the UsingNamespace prefix from every qualified name in
// name: the name itself and each template argument or parameter type.
// The prefix is only removed where a qualified name starts, so
// other::<ns>::Foo keeps its full form.
func (o Options) Display(name string) string {
	if o.UsingNamespace == "" {
		return name
	}
	prefix := strings.TrimSuffix(o.UsingNamespace, "::") + "::"

	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); {
		if startsName(name, i) && strings.HasPrefix(name[i:], prefix) {
			i += len(prefix)
			continue
		}
		b.WriteByte(name[i])
		i++
	}
	return b.String()
}

// startsName reports whether a qualified name can begin at offset i.
func startsName(s string, i int) bool {
	if i == 0 {
		return true
	}
	switch s[i-1] {
	case '<', ',', '(', ' ', '*', '&':
		return true
	}
	return false
}
