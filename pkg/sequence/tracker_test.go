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

	seqtest "github.com/kraklabs/seqdiag/internal/testing"
	"github.com/kraklabs/seqdiag/pkg/sourcemodel"
)

func TestTracker_EnterLeave(t *testing.T) {
	tr := NewTracker()
	require.True(t, tr.Idle())
	assert.Nil(t, tr.Current())

	rec := seqtest.Rec("ns::A", sourcemodel.T("int"))
	class := seqtest.Class(rec).Decl
	method := seqtest.MethodDecl(rec, "a")

	leaveClass := tr.EnterRecord(class)
	assert.Nil(t, tr.Current(), "a record frame alone is not a scope")
	assert.Equal(t, rec, tr.Class())

	leaveMethod := tr.EnterFunction(method)
	scope := tr.Current()
	require.NotNil(t, scope)
	assert.Same(t, method, scope.Decl)
	assert.Equal(t, rec, scope.Record)
	assert.Equal(t, 2, tr.Depth())

	leaveMethod()
	leaveMethod() // idempotent
	assert.Equal(t, 1, tr.Depth())

	leaveClass()
	assert.True(t, tr.Idle())
}

func TestTracker_MethodWithoutRecordUsesEnclosingClass(t *testing.T) {
	tr := NewTracker()
	rec := seqtest.Rec("ns::C")

	defer tr.EnterRecord(seqtest.Class(rec).Decl)()
	defer tr.EnterFunction(&sourcemodel.Decl{Kind: sourcemodel.KindMethod, Name: "m", QualifiedName: "ns::C::m"})()

	assert.Equal(t, rec, tr.Current().Record)
}

func TestTracker_FreeFunctionHasNoRecord(t *testing.T) {
	tr := NewTracker()

	defer tr.EnterRecord(seqtest.Class(seqtest.Rec("ns::C")).Decl)()
	defer tr.EnterFunction(seqtest.FunctionDecl("ns::f"))()

	assert.Nil(t, tr.Current().Record)
}

func TestTracker_NestedRecordSuspendsScope(t *testing.T) {
	tr := NewTracker()

	leaveFn := tr.EnterFunction(seqtest.FunctionDecl("ns::f"))
	leaveLocal := tr.EnterRecord(seqtest.Class(seqtest.Rec("ns::f::Local")).Decl)
	assert.Nil(t, tr.Current())

	leaveLocal()
	require.NotNil(t, tr.Current())
	assert.Equal(t, "ns::f", tr.Current().Decl.QualifiedName)
	leaveFn()
}

func TestTracker_LeaveOutOfOrderPanics(t *testing.T) {
	tr := NewTracker()
	leaveOuter := tr.EnterFunction(seqtest.FunctionDecl("ns::f"))
	tr.EnterFunction(seqtest.FunctionDecl("ns::g"))

	assert.Panics(t, leaveOuter)
}
