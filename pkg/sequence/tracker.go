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

import "github.com/kraklabs/seqdiag/pkg/sourcemodel"

// Scope is the innermost active function or method body.
type Scope struct {
	// Decl is the function, method or constructor whose body is being visited.
	Decl *sourcemodel.Decl

	// Record is the class enclosing Decl, if any.
	Record *sourcemodel.Record
}

type frame struct {
	decl   *sourcemodel.Decl // nil for record-only frames
	record *sourcemodel.Record
}

// Tracker keeps the stack of enclosing declarations during a traversal.
// It holds references only; it never owns diagram state.
type Tracker struct {
	frames []frame
}

// NewTracker creates an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// EnterRecord makes decl the enclosing class. Calls are not attributed to a
// record frame until a method body is entered inside it.
func (t *Tracker) EnterRecord(decl *sourcemodel.Decl) (leave func()) {
	return t.push(frame{record: recordOf(decl)})
}

// EnterFunction makes decl the active scope until the returned func is called.
func (t *Tracker) EnterFunction(decl *sourcemodel.Decl) (leave func()) {
	rec := decl.Record
	if rec == nil && decl.Kind != sourcemodel.KindFunction {
		rec = t.Class()
	}
	return t.push(frame{decl: decl, record: rec})
}

func (t *Tracker) push(f frame) func() {
	t.frames = append(t.frames, f)
	depth := len(t.frames)
	left := false
	return func() {
		if left {
			return
		}
		if len(t.frames) != depth {
			panic("sequence: scope left out of order")
		}
		left = true
		t.frames = t.frames[:depth-1]
	}
}

// Current returns the active scope, or nil when no function body is being
// visited. Only the innermost frame counts: a record nested in a function
// body suspends the function's scope.
func (t *Tracker) Current() *Scope {
	if len(t.frames) == 0 {
		return nil
	}
	top := t.frames[len(t.frames)-1]
	if top.decl == nil {
		return nil
	}
	return &Scope{Decl: top.decl, Record: top.record}
}

// Class returns the innermost enclosing record, or nil.
func (t *Tracker) Class() *sourcemodel.Record {
	for i := len(t.frames) - 1; i >= 0; i-- {
		if t.frames[i].record != nil {
			return t.frames[i].record
		}
	}
	return nil
}

// Depth returns the number of open frames.
func (t *Tracker) Depth() int { return len(t.frames) }

// Idle reports whether no frame is open.
func (t *Tracker) Idle() bool { return len(t.frames) == 0 }
