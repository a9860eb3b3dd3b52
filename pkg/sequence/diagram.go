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
	"errors"
	"fmt"

	"github.com/kraklabs/seqdiag/pkg/sourcemodel"
)

var (
	// ErrFinalized is returned when a finalized diagram is mutated.
	ErrFinalized = errors.New("diagram is finalized")

	// ErrIdentityCollision is returned when two different canonical keys hash
	// to the same ID. Distinct keys are never merged.
	ErrIdentityCollision = errors.New("participant identity collision")
)

// Participant is a uniquely identified caller/callee of the diagram.
type Participant struct {
	ID          ParticipantID   `json:"id"`
	Key         string          `json:"key"`
	DisplayName string          `json:"display_name"`
	Kind        ParticipantKind `json:"kind"`
	Order       int             `json:"order"`
}

// Activation is one function or method body. Events recorded inside it name
// it as their caller activation; events invoking it name it as their callee
// activation.
type Activation struct {
	ID          ActivationID  `json:"id"`
	Key         string        `json:"key"`
	Participant ParticipantID `json:"participant"`
	Signature   string        `json:"signature"`
	Seed        bool          `json:"seed,omitempty"`
	Order       int           `json:"order"`
}

// CallEvent is one recorded caller → callee invocation.
type CallEvent struct {
	Seq              int                  `json:"seq"`
	From             ParticipantID        `json:"from"`
	To               ParticipantID        `json:"to"`
	Label            string               `json:"label"`
	CallerActivation ActivationID         `json:"caller_activation"`
	CalleeActivation ActivationID         `json:"callee_activation"`
	Location         sourcemodel.Location `json:"location,omitempty"`
}

// Stats summarizes a diagram.
type Stats struct {
	Participants int `json:"participants"`
	Activations  int `json:"activations"`
	Seeds        int `json:"seeds"`
	Events       int `json:"events"`
}

// Diagram accumulates participants and call events for one configured
// diagram. It exclusively owns both lists. A Diagram is not safe for
// concurrent use; fragments built in parallel are combined with Merge on a
// single goroutine.
type Diagram struct {
	name string

	participants []*Participant
	byKey        map[string]*Participant
	byID         map[ParticipantID]*Participant

	activations   []*Activation
	activationIDs map[ActivationID]*Activation

	events []CallEvent

	// callers holds every caller activation with at least one event.
	callers   map[ActivationID]bool
	finalized bool
}

// NewDiagram creates an empty diagram.
func NewDiagram(name string) *Diagram {
	return &Diagram{
		name:          name,
		byKey:         make(map[string]*Participant),
		byID:          make(map[ParticipantID]*Participant),
		activationIDs: make(map[ActivationID]*Activation),
		callers:       make(map[ActivationID]bool),
	}
}

// Name returns the diagram name.
func (d *Diagram) Name() string { return d.name }

// Finalized reports whether Finalize has been called.
func (d *Diagram) Finalized() bool { return d.finalized }

// AddParticipant registers p under its key. If a participant with the same
// key exists its ID is returned and created is false. The order index is
// assigned by the diagram.
func (d *Diagram) AddParticipant(p Participant) (id ParticipantID, created bool, err error) {
	if d.finalized {
		return "", false, ErrFinalized
	}
	if existing, ok := d.byKey[p.Key]; ok {
		return existing.ID, false, nil
	}
	if p.ID == "" {
		p.ID = GenerateParticipantID(p.Key)
	}
	if clash, ok := d.byID[p.ID]; ok {
		return "", false, fmt.Errorf("%w: %q and %q share %s", ErrIdentityCollision, clash.Key, p.Key, p.ID)
	}
	p.Order = len(d.participants)
	stored := p
	d.participants = append(d.participants, &stored)
	d.byKey[stored.Key] = &stored
	d.byID[stored.ID] = &stored
	return stored.ID, true, nil
}

// AddActivation registers a. Registering an existing activation again only
// promotes it to a seed when a.Seed is set.
func (d *Diagram) AddActivation(a Activation) (ActivationID, error) {
	if d.finalized {
		return "", ErrFinalized
	}
	if a.ID == "" {
		a.ID = GenerateActivationID(a.Key)
	}
	if existing, ok := d.activationIDs[a.ID]; ok {
		if existing.Key != a.Key {
			return "", fmt.Errorf("%w: %q and %q share %s", ErrIdentityCollision, existing.Key, a.Key, a.ID)
		}
		existing.Seed = existing.Seed || a.Seed
		return existing.ID, nil
	}
	a.Order = len(d.activations)
	stored := a
	d.activations = append(d.activations, &stored)
	d.activationIDs[stored.ID] = &stored
	return stored.ID, nil
}

// AppendEvent appends e with the next sequence index and returns the stored
// event.
func (d *Diagram) AppendEvent(e CallEvent) (CallEvent, error) {
	if d.finalized {
		return CallEvent{}, ErrFinalized
	}
	e.Seq = len(d.events)
	d.events = append(d.events, e)
	d.callers[e.CallerActivation] = true
	return e, nil
}

// Merge folds a fragment into d. Participants and activations are unioned
// by key, keeping the IDs and order already established in d; the
// fragment's events are appended and re-indexed to continue d's sequence.
//
// A body already recorded in d (an inline function or template
// instantiation compiled in several translation units) keeps the events of
// its first fragment; later copies of its events are dropped. The fragment
// itself is left untouched.
func (d *Diagram) Merge(fragment *Diagram) error {
	if fragment == nil {
		return nil
	}
	if fragment == d {
		return errors.New("merge diagram into itself")
	}
	if d.finalized {
		return ErrFinalized
	}

	for _, p := range fragment.participants {
		if _, _, err := d.AddParticipant(*p); err != nil {
			return fmt.Errorf("merge participant %s: %w", p.DisplayName, err)
		}
	}
	for _, a := range fragment.activations {
		if _, err := d.AddActivation(*a); err != nil {
			return fmt.Errorf("merge activation %s: %w", a.Signature, err)
		}
	}
	recorded := make(map[ActivationID]bool)
	for _, e := range fragment.events {
		if d.callers[e.CallerActivation] {
			recorded[e.CallerActivation] = true
		}
	}
	for _, e := range fragment.events {
		if recorded[e.CallerActivation] {
			continue
		}
		if _, err := d.AppendEvent(e); err != nil {
			return err
		}
	}

	recordFragmentMerged()
	return nil
}

// Finalize freezes the diagram; later mutations return ErrFinalized.
//
// When seed (start-from) activations exist, the event list is rewritten into
// the call sequence rooted at them: every seed's events in sequence order,
// each followed depth-first by the events of the activation it invokes. An
// activation already being expanded is not expanded again, so recursion
// terminates. Events and participants not reachable from a seed are dropped
// and both lists are renumbered. Without seeds the traversal order is kept.
func (d *Diagram) Finalize() {
	if d.finalized {
		return
	}
	d.finalized = true

	var seeds []*Activation
	for _, a := range d.activations {
		if a.Seed {
			seeds = append(seeds, a)
		}
	}
	if len(seeds) == 0 {
		return
	}

	byCaller := make(map[ActivationID][]CallEvent)
	for _, e := range d.events {
		byCaller[e.CallerActivation] = append(byCaller[e.CallerActivation], e)
	}

	var sequence []CallEvent
	expanding := make(map[ActivationID]bool)
	var expand func(id ActivationID)
	expand = func(id ActivationID) {
		if expanding[id] {
			return
		}
		expanding[id] = true
		defer delete(expanding, id)

		for _, e := range byCaller[id] {
			e.Seq = len(sequence)
			sequence = append(sequence, e)
			expand(e.CalleeActivation)
		}
	}
	for _, seed := range seeds {
		expand(seed.ID)
	}
	d.events = sequence

	d.reorderParticipants(seeds)
}

// reorderParticipants keeps only participants referenced by the finalized
// events (plus seed owners) and renumbers them by first appearance.
func (d *Diagram) reorderParticipants(seeds []*Activation) {
	var ordered []*Participant
	seen := make(map[ParticipantID]bool)
	add := func(id ParticipantID) {
		if seen[id] {
			return
		}
		seen[id] = true
		if p, ok := d.byID[id]; ok {
			p.Order = len(ordered)
			ordered = append(ordered, p)
		}
	}
	for _, e := range d.events {
		add(e.From)
		add(e.To)
	}
	for _, seed := range seeds {
		add(seed.Participant)
	}

	for _, p := range d.participants {
		if !seen[p.ID] {
			delete(d.byKey, p.Key)
			delete(d.byID, p.ID)
		}
	}
	d.participants = ordered
}

// Participants returns the participants in first-appearance order.
func (d *Diagram) Participants() []Participant {
	out := make([]Participant, len(d.participants))
	for i, p := range d.participants {
		out[i] = *p
	}
	return out
}

// Participant looks up a participant by ID.
func (d *Diagram) Participant(id ParticipantID) (Participant, bool) {
	p, ok := d.byID[id]
	if !ok {
		return Participant{}, false
	}
	return *p, true
}

// Activations returns the registered activations in first-appearance order.
func (d *Diagram) Activations() []Activation {
	out := make([]Activation, len(d.activations))
	for i, a := range d.activations {
		out[i] = *a
	}
	return out
}

// Events returns the call events in sequence order.
func (d *Diagram) Events() []CallEvent {
	out := make([]CallEvent, len(d.events))
	copy(out, d.events)
	return out
}

// Stats returns counts of the diagram contents.
func (d *Diagram) Stats() Stats {
	s := Stats{
		Participants: len(d.participants),
		Activations:  len(d.activations),
		Events:       len(d.events),
	}
	for _, a := range d.activations {
		if a.Seed {
			s.Seeds++
		}
	}
	return s
}
