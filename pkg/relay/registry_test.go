// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package relay

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterResolve(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Resolve("alice")
	assert.False(t, ok)

	q1 := NewQueue(1)
	r.Register("alice", q1)

	q, ok := r.Resolve("alice")
	require.True(t, ok)
	assert.Same(t, q1, q)

	// a later registration replaces the former one
	q2 := NewQueue(1)
	r.Register("alice", q2)

	q, ok = r.Resolve("alice")
	require.True(t, ok)
	assert.Same(t, q2, q)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("alice", NewQueue(1))

	r.Unregister("alice")
	r.Unregister("alice")
	r.Unregister("unknown")

	_, ok := r.Resolve("alice")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistryRelease(t *testing.T) {
	r := NewRegistry()

	old, current := NewQueue(1), NewQueue(1)
	r.Register("alice", old)
	r.Register("alice", current)

	assert.False(t, r.Release("alice", old))

	q, ok := r.Resolve("alice")
	require.True(t, ok)
	assert.Same(t, current, q)

	assert.True(t, r.Release("alice", current))
	assert.False(t, r.Release("alice", current))

	_, ok = r.Resolve("alice")
	assert.False(t, ok)
}

func TestRegistryEndpoints(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Endpoints())

	for _, id := range []string{"carol", "alice", "bob"} {
		r.Register(id, NewQueue(1))
	}

	assert.Equal(t, []string{"alice", "bob", "carol"}, r.Endpoints())
	assert.Equal(t, 3, r.Len())
}

func TestRegistryConcurrent(t *testing.T) {
	const workers = 16
	const ids = 100

	r := NewRegistry()

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()

			for i := 0; i < ids; i++ {
				id := fmt.Sprintf("endpoint-%d-%d", w, i)
				q := NewQueue(1)

				r.Register(id, q)
				if resolved, ok := r.Resolve(id); !ok || resolved != q {
					t.Errorf("%s resolved to a different Queue", id)
				}
				if i%2 == 0 && !r.Release(id, q) {
					t.Errorf("%s was not released", id)
				}
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, workers*ids/2, r.Len())
}
