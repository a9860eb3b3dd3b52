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

// Package sequence builds sequence-diagram models from a resolved source
// model.
//
// # Pipeline Overview
//
// A translation unit is walked once, depth first:
//
//  1. Walker dispatches every node to the handler registered for its kind.
//  2. Tracker keeps the enclosing record and function body; only function,
//     method and constructor bodies open a scope.
//  3. Registry turns declarations into participants keyed by their canonical
//     signature (qualified name plus printed template arguments, plus the
//     parameter list for overloaded free functions).
//  4. Recorder appends one CallEvent per resolved call expression, attributed
//     to the active scope.
//
// Builder wires the four together for one diagram fragment:
//
//	b := sequence.NewBuilder("t20006_sequence", filter, logger)
//	if err := b.Build(tu); err != nil {
//	    return err
//	}
//	diagram := sequence.NewDiagram("t20006_sequence")
//	if err := diagram.Merge(b.Fragment()); err != nil {
//	    return err
//	}
//	diagram.Finalize()
//
// # Identity
//
// Distinct template instantiations are distinct participants: B<int> and
// B<std::string> never merge, and neither do BB<int,int> and
// BB<int,std::string>. Methods are attributed to the class instantiation
// that owns them; calls between methods of the same instantiation are kept
// as self-calls.
//
// # Concurrency
//
// Tracker, Registry, Recorder and Builder are single-threaded. Translation
// units may be built in parallel, one Builder each, and the fragments merged
// afterwards on one goroutine.
package sequence
