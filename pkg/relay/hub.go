// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package relay

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/grpchub/grpchub-go/pkg/channel"
	"github.com/grpchub/grpchub-go/pkg/metrics"
)

// Stream is a bidirectional connection to one endpoint.
type Stream interface {
	Inbound
	Send(*channel.ChannelMessage) error
	Context() context.Context
}

// Hub accepts connections, registers them and wires each one to its own forwarding task.
type Hub struct {
	channel.UnimplementedChannelServiceServer

	registry  Registry
	queueSize int
}

var _ channel.ChannelServiceServer = (*Hub)(nil)

// NewHub for the given Registry. A nil Registry results in a new, empty one; a non-positive queueSize in
// DefaultQueueSize.
func NewHub(registry Registry, queueSize int) *Hub {
	if registry == nil {
		registry = NewRegistry()
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	return &Hub{
		registry:  registry,
		queueSize: queueSize,
	}
}

// Registry of this Hub.
func (h *Hub) Registry() Registry {
	return h.registry
}

// Open a connection: its Queue is registered for the sender and a forwarding task starts reading from in. Open
// returns immediately; the Session delivers everything queued for this connection.
//
// Invalid identities result in an InvalidArgument status error before anything is registered. The forwarding task
// uses ctx for blocking pushes; it should be canceled when the underlying transport goes away.
func (h *Hub) Open(ctx context.Context, in Inbound, ids Identities) (*Session, error) {
	if err := ids.CheckValid(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	f := &forwarder{
		registry: h.registry,
		ids:      ids,
		in:       in,
		queue:    NewQueue(h.queueSize),
		state:    Registering,
		logger: log.WithFields(log.Fields{
			"connection": uuid.NewString(),
			"sender":     ids.Sender,
			"receiver":   ids.Receiver,
		}),
		done: make(chan struct{}),
	}

	h.registry.Register(ids.Sender, f.queue)
	metrics.ConnectionOpened(ctx)
	f.logger.Info("Client connected")

	if err := f.state.Next(); err != nil {
		f.logger.WithError(err).Warn("Forwarding task failed to start")
	}
	go f.run(ctx)

	return &Session{
		ids:    ids,
		queue:  f.queue,
		done:   f.done,
		logger: f.logger,
	}, nil
}

// Serve a Stream until its Session ends: everything queued for it is sent back on the Stream. Transport errors are
// not reported; only invalid identities result in an error.
func (h *Hub) Serve(stream Stream, ids Identities) error {
	ctx := stream.Context()

	session, err := h.Open(ctx, stream, ids)
	if err != nil {
		return err
	}
	defer session.Close()

	for {
		msg, err := session.Recv(ctx)
		if err != nil {
			return nil
		}

		if err := stream.Send(msg); err != nil {
			session.logger.WithError(err).Debug("Sending to client errored")
			return nil
		}
	}
}

// Channel implements the channel.v1.ChannelService.
func (h *Hub) Channel(stream channel.ChannelService_ChannelServer) error {
	ids, err := IdentitiesFromContext(stream.Context())
	if err != nil {
		log.WithError(err).Warn("Rejected connection")
		return err
	}

	return h.Serve(stream, ids)
}

// Session is the response side of an opened connection.
type Session struct {
	ids    Identities
	queue  *Queue
	done   <-chan struct{}
	logger *log.Entry
}

// Identities of this Session's connection.
func (s *Session) Identities() Identities {
	return s.ids
}

// Recv the next envelope for this connection. It returns io.EOF after the forwarding task terminated and all
// queued envelopes were received.
func (s *Session) Recv(ctx context.Context) (*channel.ChannelMessage, error) {
	return s.queue.Pop(ctx)
}

// Done is closed after the forwarding task terminated.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close signals that nobody receives from this Session anymore; pushes into its Queue fail from now on.
func (s *Session) Close() {
	s.queue.Abandon()
}
