// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package bounds

import (
	"testing"

	"github.com/consensys/go-bvbounds/pkg/util/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Store_Empty(t *testing.T) {
	store := NewStore[string]()
	//
	assert.Equal(t, uint(0), store.Level())
	//
	_, ok := store.Get("x")
	assert.False(t, ok)
	assert.Panics(t, func() { store.Pop(1) })
}

func Test_Store_Refine(t *testing.T) {
	store := NewStore[string]()
	//
	assert.True(t, store.Refine("x", math.NewInterval64(0, 5, 8)))
	assert.True(t, store.Refine("x", math.NewInterval64(3, 255, 8)))
	//
	b, ok := store.Get("x")
	require.True(t, ok)
	assert.False(t, b.IsEmpty())
	assert.Equal(t, "[3, 5]", b.String())
}

func Test_Store_Contradiction(t *testing.T) {
	store := NewStore[string]()
	//
	require.True(t, store.Refine("x", math.NewInterval64(0, 5, 8)))
	assert.False(t, store.Refine("x", math.NewInterval64(6, 10, 8)))
	//
	b, _ := store.Get("x")
	assert.True(t, b.IsEmpty())
	assert.Equal(t, "∅", b.String())
	// Last consistent interval is retained
	iv := b.Interval()
	assert.True(t, iv.Equals(math.NewInterval64(0, 5, 8)))
	// Once empty, always empty (within this scope)
	assert.False(t, store.Refine("x", math.NewInterval64(0, 255, 8)))
}

func Test_Store_PushPop(t *testing.T) {
	store := NewStore[string]()
	//
	require.True(t, store.Refine("x", math.NewInterval64(0, 5, 8)))
	store.Push()
	store.Push()
	assert.Equal(t, uint(2), store.Level())
	require.True(t, store.Refine("x", math.NewInterval64(2, 255, 8)))
	require.True(t, store.Refine("y", math.NewInterval64(1, 1, 8)))
	//
	b, _ := store.Get("x")
	assert.Equal(t, "[2, 5]", b.String())
	// Enclosing scopes are unaffected
	store.Pop(2)
	assert.Equal(t, uint(0), store.Level())
	//
	b, _ = store.Get("x")
	assert.Equal(t, "[0, 5]", b.String())
	//
	_, ok := store.Get("y")
	assert.False(t, ok)
}

func Test_Store_PopTooFar(t *testing.T) {
	store := NewStore[string]()
	//
	store.Push()
	assert.Panics(t, func() { store.Pop(2) })
}
