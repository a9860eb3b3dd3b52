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

// Package render serializes finalized sequence diagrams into text.
//
// Every participant gets an alias (C_0001, C_0002, ...) in first-appearance
// order. Aliases exist only in the rendered text; they play no part in
// participant identity.
//
// Supported formats:
//   - plantuml: @startuml / @enduml documents
//   - mermaid: sequenceDiagram blocks
//   - json: the aliased document as JSON, for tooling
//
// Rendering is a pure function of the diagram: the same finalized diagram
// always yields byte-identical output.
package render
