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

	"github.com/kraklabs/seqdiag/pkg/sourcemodel"
)

// SkipReason explains why a call expression was not recorded.
type SkipReason string

const (
	// SkipNone means the call was recorded.
	SkipNone SkipReason = ""

	// SkipNoScope: the call is outside any traversed function body
	// (e.g. a static initializer).
	SkipNoScope SkipReason = "no_scope"

	// SkipUnresolved: the front-end did not resolve the target.
	SkipUnresolved SkipReason = "unresolved"

	// SkipDependent: the target or the caller is an uninstantiated template.
	SkipDependent SkipReason = "dependent"

	// SkipFiltered: the target is excluded by the diagram filters.
	SkipFiltered SkipReason = "filtered"
)

// Recorder turns resolved call expressions into call events.
type Recorder struct {
	diagram  *Diagram
	registry *Registry
	include  func(*sourcemodel.Decl) bool
	logger   *slog.Logger
}

// NewRecorder creates a recorder appending to d through registry.
// include may be nil to accept every target.
func NewRecorder(d *Diagram, registry *Registry, include func(*sourcemodel.Decl) bool, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{diagram: d, registry: registry, include: include, logger: logger}
}

// Record appends a call event for call made from scope. Calls outside any
// scope, unresolved or dependent targets, and filtered targets are skipped
// without error.
func (r *Recorder) Record(scope *Scope, call *sourcemodel.Call) (SkipReason, error) {
	if reason := r.check(scope, call); reason != SkipNone {
		recordCallSkipped(reason)
		r.logger.Debug("sequence.call.skip",
			"call", call.Name,
			"reason", string(reason),
			"location", call.Location.String(),
		)
		return reason, nil
	}

	from, err := r.registry.Identify(scope.Decl)
	if err != nil {
		return SkipNone, fmt.Errorf("identify caller %s: %w", scope.Decl.Signature(), err)
	}
	callerActivation, err := r.registry.Activation(scope.Decl, false)
	if err != nil {
		return SkipNone, fmt.Errorf("caller activation %s: %w", scope.Decl.Signature(), err)
	}
	to, err := r.registry.Identify(call.Target)
	if err != nil {
		return SkipNone, fmt.Errorf("identify callee %s: %w", call.Target.Signature(), err)
	}
	calleeActivation, err := r.registry.Activation(call.Target, false)
	if err != nil {
		return SkipNone, fmt.Errorf("callee activation %s: %w", call.Target.Signature(), err)
	}

	label := call.Name
	if label == "" {
		label = call.Target.Name
	}
	if _, err := r.diagram.AppendEvent(CallEvent{
		From:             from,
		To:               to,
		Label:            label,
		CallerActivation: callerActivation,
		CalleeActivation: calleeActivation,
		Location:         call.Location,
	}); err != nil {
		return SkipNone, err
	}

	recordCallRecorded()
	return SkipNone, nil
}

func (r *Recorder) check(scope *Scope, call *sourcemodel.Call) SkipReason {
	switch {
	case scope == nil || scope.Decl == nil:
		return SkipNoScope
	case call.Target == nil:
		return SkipUnresolved
	case call.Target.Dependent || scope.Decl.Dependent:
		return SkipDependent
	case r.include != nil && !r.include(call.Target):
		return SkipFiltered
	}
	return SkipNone
}
