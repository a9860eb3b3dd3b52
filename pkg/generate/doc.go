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

// Package generate builds finalized sequence diagrams from translation unit
// dumps.
//
// Each translation unit is loaded and traversed on its own goroutine into a
// private diagram fragment. Fragments are slotted by input index and merged
// in input order on the calling goroutine once every unit is done, so the
// result does not depend on scheduling:
//
//	g := generate.New(sourcemodel.NewFileProvider(logger), generate.Options{Workers: 4}, logger)
//	res, err := g.Generate(ctx, generate.Request{
//	    Name:   "t20006_sequence",
//	    Units:  []string{"build/t20006.yaml"},
//	    Filter: diagramConfig.Predicates(),
//	})
//
// The first failing unit cancels the remaining ones and no diagram is
// returned.
package generate
