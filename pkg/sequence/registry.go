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

// Registry maps declarations to participants and activations of one diagram
// fragment. It is scoped to a single construction pass and is not safe for
// concurrent use.
type Registry struct {
	diagram *Diagram

	// identities caches canonical keys per declaration; call targets of the
	// same declaration are frequently repeated.
	identities  map[*sourcemodel.Decl]identity
	activations map[*sourcemodel.Decl]string
}

// NewRegistry creates a registry that populates d.
func NewRegistry(d *Diagram) *Registry {
	return &Registry{
		diagram:     d,
		identities:  make(map[*sourcemodel.Decl]identity),
		activations: make(map[*sourcemodel.Decl]string),
	}
}

// Identify returns the participant for decl, creating it with the next
// first-appearance index when its canonical key is new.
func (r *Registry) Identify(decl *sourcemodel.Decl) (ParticipantID, error) {
	id, ok := r.identities[decl]
	if !ok {
		id = participantIdentity(decl)
		r.identities[decl] = id
	}

	pid, created, err := r.diagram.AddParticipant(Participant{
		Key:         id.key,
		DisplayName: id.display,
		Kind:        id.kind,
	})
	if err != nil {
		return "", err
	}
	if created {
		recordParticipantCreated()
	}
	return pid, nil
}

// Activation returns the activation for the body of decl, registering it
// (and its participant) on first use. seed marks it as a start-from root.
func (r *Registry) Activation(decl *sourcemodel.Decl, seed bool) (ActivationID, error) {
	pid, err := r.Identify(decl)
	if err != nil {
		return "", err
	}
	key, ok := r.activations[decl]
	if !ok {
		key = activationKey(decl)
		r.activations[decl] = key
	}
	return r.diagram.AddActivation(Activation{
		Key:         key,
		Participant: pid,
		Signature:   decl.Signature(),
		Seed:        seed,
	})
}

// Key returns the canonical participant key of decl without registering it.
func Key(decl *sourcemodel.Decl) string {
	return participantIdentity(decl).key
}
