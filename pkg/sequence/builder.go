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

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kraklabs/seqdiag/pkg/sourcemodel"
)

// Filter carries the boolean predicates a configuration loader derives from
// a diagram entry. Nil predicates accept everything (Include) or nothing
// (StartFrom).
type Filter struct {
	// Include decides whether a declaration takes part in the diagram.
	// Excluded records and functions are not traversed; calls to excluded
	// targets are not recorded.
	Include func(*sourcemodel.Decl) bool

	// StartFrom marks the functions whose call trees the diagram shows.
	StartFrom func(*sourcemodel.Decl) bool
}

func (f Filter) includes(d *sourcemodel.Decl) bool {
	return f.Include == nil || f.Include(d)
}

func (f Filter) seeds(d *sourcemodel.Decl) bool {
	return f.StartFrom != nil && f.StartFrom(d)
}

// Builder is the translation unit visitor: it binds a Tracker, Registry and
// Recorder to one diagram fragment and feeds them from a Walker.
// A Builder is single-threaded; use one per goroutine.
type Builder struct {
	diagram  *Diagram
	tracker  *Tracker
	registry *Registry
	recorder *Recorder
	walker   *Walker
	filter   Filter
	logger   *slog.Logger

	err error
}

// NewBuilder creates a builder producing a fragment of the named diagram.
func NewBuilder(name string, filter Filter, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	d := NewDiagram(name)
	registry := NewRegistry(d)
	b := &Builder{
		diagram:  d,
		tracker:  NewTracker(),
		registry: registry,
		recorder: NewRecorder(d, registry, filter.Include, logger),
		filter:   filter,
		logger:   logger,
	}

	w := NewWalker()
	w.Handle(sourcemodel.KindRecord, b.visitRecord)
	w.Handle(sourcemodel.KindFunction, b.visitFunction)
	w.Handle(sourcemodel.KindMethod, b.visitFunction)
	w.Handle(sourcemodel.KindConstructor, b.visitFunction)
	w.Handle(sourcemodel.KindCall, b.visitCall)
	b.walker = w

	return b
}

// Build traverses one translation unit into the fragment. It always runs the
// whole unit; the first error stops further recording and is returned.
func (b *Builder) Build(tu *sourcemodel.TranslationUnit) error {
	if tu == nil {
		return nil
	}
	start := time.Now()
	before := b.diagram.Stats()

	b.walker.Walk(tu.Root)

	after := b.diagram.Stats()
	observeUnitDuration(time.Since(start))
	b.logger.Debug("sequence.unit.done",
		"diagram", b.diagram.Name(),
		"path", tu.Path,
		"events", after.Events-before.Events,
		"participants", after.Participants-before.Participants,
		"duration", time.Since(start),
	)

	if b.err != nil {
		return fmt.Errorf("%s: %w", tu.Path, b.err)
	}
	return nil
}

// Fragment returns the diagram fragment built so far.
func (b *Builder) Fragment() *Diagram {
	return b.diagram
}

func (b *Builder) visitRecord(n *sourcemodel.Node) (bool, func()) {
	if b.err != nil || n.Decl == nil {
		return b.err == nil, nil
	}
	if n.Decl.Dependent || !b.filter.includes(n.Decl) {
		return false, nil
	}
	return true, b.tracker.EnterRecord(n.Decl)
}

func (b *Builder) visitFunction(n *sourcemodel.Node) (bool, func()) {
	if b.err != nil || n.Decl == nil {
		return b.err == nil, nil
	}
	// Only instantiated bodies are visited; template patterns are skipped.
	if n.Decl.Dependent || !b.filter.includes(n.Decl) {
		return false, nil
	}

	if seed := b.filter.seeds(n.Decl); seed {
		if _, err := b.registry.Activation(n.Decl, true); err != nil {
			b.err = fmt.Errorf("start from %s: %w", n.Decl.Signature(), err)
			return false, nil
		}
		b.logger.Debug("sequence.seed", "signature", n.Decl.Signature())
	}
	return true, b.tracker.EnterFunction(n.Decl)
}

func (b *Builder) visitCall(n *sourcemodel.Node) (bool, func()) {
	if b.err != nil {
		return false, nil
	}
	if n.Call == nil {
		return true, nil
	}
	if _, err := b.recorder.Record(b.tracker.Current(), n.Call); err != nil {
		b.err = err
		return false, nil
	}
	return true, nil
}
