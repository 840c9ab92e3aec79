// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package relay

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/grpchub/grpchub-go/pkg/channel"
)

// DefaultQueueSize is the capacity of a Queue if nothing else is configured.
const DefaultQueueSize = 32

// ErrQueueClosed is returned when pushing into a Queue whose owner terminated or whose reader is gone.
var ErrQueueClosed = errors.New("delivery queue is closed")

// Queue is the bounded delivery queue of one connection. Any forwarding task may Push into it; only the owning
// connection Pops from it.
//
// The owner's forwarding task closes the Queue exactly once when it terminates. Envelopes already queued can still
// be popped afterwards. If the reader stops draining, it abandons the Queue and all further pushes fail.
type Queue struct {
	msgs chan *channel.ChannelMessage

	// Pushes hold pushMutex shared. Close wakes them by closing closing and takes it exclusively before closing
	// done, so no envelope enters msgs after done was closed.
	pushMutex sync.RWMutex
	closing   chan struct{}

	// closed by Close, after the owner stopped forwarding
	done      chan struct{}
	closeOnce sync.Once

	// closed by Abandon, after the reader is gone
	gone        chan struct{}
	abandonOnce sync.Once
}

// NewQueue with the given capacity. A non-positive size results in DefaultQueueSize.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}

	return &Queue{
		msgs:    make(chan *channel.ChannelMessage, size),
		closing: make(chan struct{}),
		done:    make(chan struct{}),
		gone:    make(chan struct{}),
	}
}

// Push an envelope into this Queue. This blocks while the Queue is full, until there is space again, the Queue is
// closed or abandoned, or the context is done.
func (q *Queue) Push(ctx context.Context, msg *channel.ChannelMessage) error {
	q.pushMutex.RLock()
	defer q.pushMutex.RUnlock()

	// Checked first, as select picks randomly between ready cases.
	select {
	case <-q.closing:
		return ErrQueueClosed
	case <-q.gone:
		return ErrQueueClosed
	default:
	}

	select {
	case q.msgs <- msg:
		return nil
	case <-q.closing:
		return ErrQueueClosed
	case <-q.gone:
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pop the next envelope. After the Queue was closed, the remaining envelopes are returned before io.EOF.
func (q *Queue) Pop(ctx context.Context) (*channel.ChannelMessage, error) {
	select {
	case msg := <-q.msgs:
		return msg, nil

	case <-q.done:
		select {
		case msg := <-q.msgs:
			return msg, nil
		default:
			return nil, io.EOF
		}

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close this Queue; only the owner's forwarding task calls it.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.closing)

		q.pushMutex.Lock()
		close(q.done)
		q.pushMutex.Unlock()
	})
}

// Abandon this Queue, signaling that nobody reads from it anymore.
func (q *Queue) Abandon() {
	q.abandonOnce.Do(func() {
		close(q.gone)
	})
}

// Done is closed after the Queue was closed.
func (q *Queue) Done() <-chan struct{} {
	return q.done
}

// Len of currently queued envelopes.
func (q *Queue) Len() int {
	return len(q.msgs)
}

// Cap is the Queue's capacity.
func (q *Queue) Cap() int {
	return cap(q.msgs)
}
