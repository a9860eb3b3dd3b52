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

// Package config loads diagram definitions from a YAML file.
//
// A configuration names one or more sequence diagrams. Each diagram lists
// the translation unit dumps it is built from and the filters applied while
// traversing them:
//
//	output_directory: diagrams
//	diagrams:
//	  t20006_sequence:
//	    type: sequence
//	    format: plantuml
//	    using_namespace: clanguml::t20006
//	    translation_units:
//	      - build/t20006.yaml
//	      - build/extra/**/*.msgpack
//	    include:
//	      namespaces: [clanguml::t20006]
//	    exclude:
//	      elements: [clanguml::t20006::detail::Impl]
//	    start_from:
//	      - function: clanguml::t20006::tmain()
//
// Relative paths (translation units and the output directory) resolve
// against the directory holding the configuration file. Translation unit
// entries may be glob patterns; matches are expanded in lexical order.
package config
