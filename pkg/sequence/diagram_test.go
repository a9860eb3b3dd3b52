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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chain builds a diagram with activations main → a → b and the given seed.
func chain(t *testing.T, seedMain bool) *Diagram {
	t.Helper()
	d := NewDiagram("chain")

	mainP, _, err := d.AddParticipant(Participant{Key: "function:main", DisplayName: "main()"})
	require.NoError(t, err)
	aP, _, err := d.AddParticipant(Participant{Key: "class:A", DisplayName: "A"})
	require.NoError(t, err)
	bP, _, err := d.AddParticipant(Participant{Key: "class:B", DisplayName: "B"})
	require.NoError(t, err)
	_, _, err = d.AddParticipant(Participant{Key: "class:Unused", DisplayName: "Unused"})
	require.NoError(t, err)

	mainA, err := d.AddActivation(Activation{Key: "main()", Participant: mainP, Seed: seedMain})
	require.NoError(t, err)
	aA, err := d.AddActivation(Activation{Key: "A::a()", Participant: aP})
	require.NoError(t, err)
	bA, err := d.AddActivation(Activation{Key: "B::b()", Participant: bP})
	require.NoError(t, err)

	// Traversal order: the callee bodies come first, main last.
	events := []CallEvent{
		{From: aP, To: bP, Label: "b", CallerActivation: aA, CalleeActivation: bA},
		{From: mainP, To: aP, Label: "a", CallerActivation: mainA, CalleeActivation: aA},
		{From: mainP, To: bP, Label: "b", CallerActivation: mainA, CalleeActivation: bA},
	}
	for _, e := range events {
		_, err := d.AppendEvent(e)
		require.NoError(t, err)
	}
	return d
}

func labels(d *Diagram) []string {
	var out []string
	for _, e := range d.Events() {
		out = append(out, e.Label)
	}
	return out
}

func TestDiagram_AddParticipantDeduplicates(t *testing.T) {
	d := NewDiagram("d")

	id1, created, err := d.AddParticipant(Participant{Key: "class:B<int>", DisplayName: "B<int>"})
	require.NoError(t, err)
	assert.True(t, created)

	id2, created, err := d.AddParticipant(Participant{Key: "class:B<int>", DisplayName: "other"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id1, id2)

	id3, _, err := d.AddParticipant(Participant{Key: "class:B<std::string>"})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id3)

	ps := d.Participants()
	require.Len(t, ps, 2)
	assert.Equal(t, "B<int>", ps[0].DisplayName)
	assert.Equal(t, 0, ps[0].Order)
	assert.Equal(t, 1, ps[1].Order)
}

func TestDiagram_IdentityCollision(t *testing.T) {
	d := NewDiagram("d")
	_, _, err := d.AddParticipant(Participant{ID: "p:x", Key: "class:A"})
	require.NoError(t, err)

	_, _, err = d.AddParticipant(Participant{ID: "p:x", Key: "class:B"})
	assert.ErrorIs(t, err, ErrIdentityCollision)
}

func TestDiagram_AddActivationPromotesSeed(t *testing.T) {
	d := NewDiagram("d")

	id1, err := d.AddActivation(Activation{Key: "f()"})
	require.NoError(t, err)
	id2, err := d.AddActivation(Activation{Key: "f()", Seed: true})
	require.NoError(t, err)
	_, err = d.AddActivation(Activation{Key: "f()"})
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	require.Len(t, d.Activations(), 1)
	assert.True(t, d.Activations()[0].Seed)
	assert.Equal(t, 1, d.Stats().Seeds)
}

func TestDiagram_AppendEventAssignsSequence(t *testing.T) {
	d := chain(t, false)
	for i, e := range d.Events() {
		assert.Equal(t, i, e.Seq)
	}
}

func TestDiagram_FinalizeWithoutSeedsKeepsTraversalOrder(t *testing.T) {
	d := chain(t, false)
	d.Finalize()

	assert.Equal(t, []string{"b", "a", "b"}, labels(d))
	assert.Len(t, d.Participants(), 4)
}

func TestDiagram_FinalizeExpandsSeeds(t *testing.T) {
	d := chain(t, true)
	d.Finalize()

	assert.Equal(t, []string{"a", "b", "b"}, labels(d))
	for i, e := range d.Events() {
		assert.Equal(t, i, e.Seq)
	}

	var names []string
	for i, p := range d.Participants() {
		names = append(names, p.DisplayName)
		assert.Equal(t, i, p.Order)
	}
	assert.Equal(t, []string{"main()", "A", "B"}, names, "unreachable participants are dropped")

	_, ok := d.Participant(GenerateParticipantID("class:Unused"))
	assert.False(t, ok)
}

func TestDiagram_FinalizeTerminatesOnRecursion(t *testing.T) {
	d := NewDiagram("rec")
	p, _, err := d.AddParticipant(Participant{Key: "function:f", DisplayName: "f()"})
	require.NoError(t, err)
	f, err := d.AddActivation(Activation{Key: "f()", Participant: p, Seed: true})
	require.NoError(t, err)
	_, err = d.AppendEvent(CallEvent{From: p, To: p, Label: "f", CallerActivation: f, CalleeActivation: f})
	require.NoError(t, err)

	d.Finalize()

	assert.Equal(t, []string{"f"}, labels(d))
}

func TestDiagram_FinalizeIsIdempotent(t *testing.T) {
	d := chain(t, true)
	d.Finalize()
	first := d.Events()
	d.Finalize()

	assert.Equal(t, first, d.Events())
	assert.True(t, d.Finalized())
}

func TestDiagram_FinalizedRejectsMutation(t *testing.T) {
	d := chain(t, false)
	d.Finalize()

	_, _, err := d.AddParticipant(Participant{Key: "class:X"})
	assert.ErrorIs(t, err, ErrFinalized)
	_, err = d.AddActivation(Activation{Key: "x()"})
	assert.ErrorIs(t, err, ErrFinalized)
	_, err = d.AppendEvent(CallEvent{})
	assert.ErrorIs(t, err, ErrFinalized)
	assert.ErrorIs(t, d.Merge(NewDiagram("f")), ErrFinalized)
}

func TestDiagram_Merge(t *testing.T) {
	target := NewDiagram("d")
	_, _, err := target.AddParticipant(Participant{Key: "class:B", DisplayName: "B"})
	require.NoError(t, err)
	_, err = target.AppendEvent(CallEvent{Label: "first"})
	require.NoError(t, err)

	fragment := chain(t, true)
	before := fragment.Events()
	require.NoError(t, target.Merge(fragment))

	names := make([]string, 0)
	for _, p := range target.Participants() {
		names = append(names, p.DisplayName)
	}
	assert.Equal(t, []string{"B", "main()", "A", "Unused"}, names)
	assert.Equal(t, []string{"first", "b", "a", "b"}, labels(target))
	for i, e := range target.Events() {
		assert.Equal(t, i, e.Seq)
	}
	assert.Equal(t, 1, target.Stats().Seeds)
	assert.Equal(t, before, fragment.Events(), "fragment is left untouched")
}

func TestDiagram_MergeDropsBodiesRecordedByEarlierFragment(t *testing.T) {
	target := NewDiagram("d")
	require.NoError(t, target.Merge(chain(t, true)))
	require.NoError(t, target.Merge(chain(t, true)))

	assert.Equal(t, []string{"b", "a", "b"}, labels(target))

	target.Finalize()
	assert.Equal(t, []string{"a", "b", "b"}, labels(target))
}

func TestDiagram_MergeKeepsNewBodies(t *testing.T) {
	target := chain(t, false)
	cP, _, err := target.AddParticipant(Participant{Key: "class:C", DisplayName: "C"})
	require.NoError(t, err)

	fragment := chain(t, false)
	cA, err := fragment.AddActivation(Activation{Key: "C::c()", Participant: cP})
	require.NoError(t, err)
	bP, _, err := fragment.AddParticipant(Participant{Key: "class:B"})
	require.NoError(t, err)
	_, err = fragment.AppendEvent(CallEvent{From: cP, To: bP, Label: "c_to_b", CallerActivation: cA})
	require.NoError(t, err)

	require.NoError(t, target.Merge(fragment))
	assert.Equal(t, []string{"b", "a", "b", "c_to_b"}, labels(target))
}

func TestDiagram_MergeNilAndSelf(t *testing.T) {
	d := chain(t, false)

	assert.NoError(t, d.Merge(nil))
	assert.Error(t, d.Merge(d))
	assert.Len(t, d.Events(), 3)
}
