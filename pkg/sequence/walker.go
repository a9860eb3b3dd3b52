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

// VisitFunc handles one node. Returning descend=false prunes the subtree.
// A non-nil leave runs once the subtree is done, or right away when pruned.
type VisitFunc func(n *sourcemodel.Node) (descend bool, leave func())

// Stack capacity for iterative traversal.
const walkerStackInitCap = 64

// Walker drives a depth-first traversal, dispatching each node to the
// VisitFunc registered for its kind. Kinds without a handler are descended
// into. Children are visited left to right.
type Walker struct {
	handlers map[sourcemodel.Kind]VisitFunc
}

// NewWalker creates a walker with no handlers.
func NewWalker() *Walker {
	return &Walker{handlers: make(map[sourcemodel.Kind]VisitFunc)}
}

// Handle registers fn for nodes of the given kind, replacing any previous one.
func (w *Walker) Handle(kind sourcemodel.Kind, fn VisitFunc) {
	w.handlers[kind] = fn
}

// walkFrame is a stack frame for iterative traversal. next is the index of
// the next child to push.
type walkFrame struct {
	node  *sourcemodel.Node
	leave func()
	next  int
}

// Walk traverses root. Pending leave funcs run on every exit path, including
// a panic inside a handler, innermost first.
func (w *Walker) Walk(root *sourcemodel.Node) {
	if root == nil {
		return
	}

	stack := make([]walkFrame, 0, walkerStackInitCap)
	defer func() {
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i].leave != nil {
				stack[i].leave()
			}
		}
	}()

	if f, ok := w.enter(root); ok {
		stack = append(stack, f)
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.next < len(top.node.Children) {
			child := top.node.Children[top.next]
			top.next++
			if child == nil {
				continue
			}
			if f, ok := w.enter(child); ok {
				stack = append(stack, f)
			}
			continue
		}

		leave := top.leave
		stack = stack[:len(stack)-1]
		if leave != nil {
			leave()
		}
	}
}

// enter visits n and reports whether its children should be traversed.
func (w *Walker) enter(n *sourcemodel.Node) (walkFrame, bool) {
	fn, ok := w.handlers[n.Kind]
	if !ok {
		return walkFrame{node: n}, true
	}
	descend, leave := fn(n)
	if !descend {
		if leave != nil {
			leave()
		}
		return walkFrame{}, false
	}
	return walkFrame{node: n, leave: leave}, true
}
