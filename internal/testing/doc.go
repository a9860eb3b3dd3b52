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

// Package testing provides fixture builders for sequence diagram tests.
//
// Resolved source trees are tedious to write by hand; the builders here
// produce the common shapes (records, method bodies, call expressions) and
// the canned scenarios used across packages.
//
// # Quick Start
//
//	import seqtest "github.com/kraklabs/seqdiag/internal/testing"
//
//	func TestMyFeature(t *testing.T) {
//	    rec := seqtest.Rec("ns::A", sourcemodel.T("int"))
//	    a := seqtest.MethodDecl(rec, "a")
//	    main := seqtest.FunctionDecl("ns::main")
//
//	    tu := seqtest.Unit("main.cc",
//	        seqtest.Class(rec, seqtest.Body(a)),
//	        seqtest.Body(main, seqtest.Call(a)),
//	    )
//	    // Build a diagram from tu...
//	}
//
// # Scenarios
//
// T20006 returns a translation unit instantiating several class templates
// with distinct argument lists. T20006Participants and T20006Edges hold the
// expected diagram when it is built from T20006Start with T20006Namespace as
// the using namespace.
//
// # Dumps on Disk
//
// WriteUnit encodes a unit into a temp dir in the format implied by the file
// extension (.yaml, .json or .msgpack), for tests exercising providers and
// the command line.
package testing
