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
	"bytes"
	"fmt"
	"strings"

	"github.com/kraklabs/seqdiag/pkg/sequence"
)

// PlantUML renders @startuml documents.
type PlantUML struct {
	opts Options
}

// Extension implements Renderer.
func (r *PlantUML) Extension() string { return ".puml" }

// Render implements Renderer.
//
// Example output:
//
//	@startuml
//	participant "tmain()" as C_0001
//	participant "B<int>" as C_0002
//	C_0001 -> C_0002 : b()
//	@enduml
func (r *PlantUML) Render(d *sequence.Diagram) ([]byte, error) {
	doc, err := layout(d, r.opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("@startuml\n")
	for _, p := range doc.Participants {
		fmt.Fprintf(&buf, "participant \"%s\" as %s\n", plantumlQuote(p.DisplayName), p.Alias)
	}
	for _, m := range doc.Messages {
		fmt.Fprintf(&buf, "%s -> %s : %s()\n", m.From, m.To, m.Label)
	}
	buf.WriteString("@enduml\n")
	return buf.Bytes(), nil
}

func plantumlQuote(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Mermaid renders sequenceDiagram blocks.
type Mermaid struct {
	opts Options
}

// Extension implements Renderer.
func (r *Mermaid) Extension() string { return ".mmd" }

// Render implements Renderer.
func (r *Mermaid) Render(d *sequence.Diagram) ([]byte, error) {
	doc, err := layout(d, r.opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("sequenceDiagram\n")
	for _, p := range doc.Participants {
		fmt.Fprintf(&buf, "    participant %s as %s\n", p.Alias, mermaidEscape(p.DisplayName))
	}
	for _, m := range doc.Messages {
		fmt.Fprintf(&buf, "    %s->>%s: %s()\n", m.From, m.To, m.Label)
	}
	return buf.Bytes(), nil
}

// mermaidEscape replaces characters Mermaid treats as syntax in participant
// labels with Mermaid entity codes.
func mermaidEscape(s string) string {
	r := strings.NewReplacer(";", "#59;", "<", "#60;", ">", "#62;")
	return r.Replace(s)
}
