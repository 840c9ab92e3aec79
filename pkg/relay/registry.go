// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package relay

import (
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Registry maps endpoint identities to the Queue of the connection currently registered for it.
// All methods are safe for concurrent use.
type Registry interface {
	// Register a Queue for an identity, replacing a previously registered one.
	Register(id string, q *Queue)

	// Resolve the Queue registered for an identity.
	Resolve(id string) (q *Queue, ok bool)

	// Unregister an identity, no matter which Queue is registered. Unknown identities are ignored.
	Unregister(id string)

	// Release an identity only if it is still registered with this Queue. It reports whether it was removed.
	// A connection cleaning up after itself uses Release, so it cannot remove a newer connection's entry.
	Release(id string, q *Queue) bool

	// Len is the amount of registered identities.
	Len() int

	// Endpoints returns all registered identities in lexical order.
	Endpoints() []string
}

const registryShards = 64

// shardedRegistry spreads identities over independently locked shards.
type shardedRegistry struct {
	shards [registryShards]registryShard
}

type registryShard struct {
	sync.RWMutex
	queues map[string]*Queue
}

// NewRegistry creates an empty Registry.
func NewRegistry() Registry {
	r := &shardedRegistry{}
	for i := range r.shards {
		r.shards[i].queues = make(map[string]*Queue)
	}
	return r
}

func (r *shardedRegistry) shard(id string) *registryShard {
	return &r.shards[xxhash.Sum64String(id)%registryShards]
}

func (r *shardedRegistry) Register(id string, q *Queue) {
	s := r.shard(id)
	s.Lock()
	defer s.Unlock()

	s.queues[id] = q
}

func (r *shardedRegistry) Resolve(id string) (q *Queue, ok bool) {
	s := r.shard(id)
	s.RLock()
	defer s.RUnlock()

	q, ok = s.queues[id]
	return
}

func (r *shardedRegistry) Unregister(id string) {
	s := r.shard(id)
	s.Lock()
	defer s.Unlock()

	delete(s.queues, id)
}

func (r *shardedRegistry) Release(id string, q *Queue) bool {
	s := r.shard(id)
	s.Lock()
	defer s.Unlock()

	if current, ok := s.queues[id]; !ok || current != q {
		return false
	}
	delete(s.queues, id)
	return true
}

func (r *shardedRegistry) Len() (n int) {
	for i := range r.shards {
		s := &r.shards[i]
		s.RLock()
		n += len(s.queues)
		s.RUnlock()
	}
	return
}

func (r *shardedRegistry) Endpoints() (ids []string) {
	for i := range r.shards {
		s := &r.shards[i]
		s.RLock()
		for id := range s.queues {
			ids = append(ids, id)
		}
		s.RUnlock()
	}

	sort.Strings(ids)
	return
}
