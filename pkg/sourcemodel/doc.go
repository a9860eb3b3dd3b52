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

// Package sourcemodel defines the resolved declaration/expression tree that
// seqdiag consumes.
//
// The tree is produced by an external front-end (a compiler plugin or an
// indexer) after overload and template resolution. seqdiag does not parse or
// type-check source text: every call expression already names its resolved
// target declaration, and every declaration carries its qualified name,
// enclosing record and printed template arguments.
//
// # Dump Formats
//
// Front-ends hand translation units over as dump files. The format is picked
// from the file extension:
//   - .yaml, .yml: YAML
//   - .json: JSON
//   - .msgpack, .mpk: MessagePack
//
// Types may be written as plain strings when they carry no template
// arguments:
//
//	kind: method
//	decl:
//	  kind: method
//	  name: bb1
//	  qualified_name: ns::BB::bb1
//	  record:
//	    qualified_name: ns::BB
//	    template_args: [int, {name: std::string}]
//
// # Providers
//
// FileProvider reads dumps from disk; MemoryProvider serves units built in
// process. Both implement Provider.
package sourcemodel
