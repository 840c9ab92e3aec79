// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package relay

import (
	"context"
	"errors"
	"io"

	log "github.com/sirupsen/logrus"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/grpchub/grpchub-go/pkg/channel"
	"github.com/grpchub/grpchub-go/pkg/metrics"
)

// Inbound is the read side of a connection, e.g., a gRPC server stream.
type Inbound interface {
	Recv() (*channel.ChannelMessage, error)
}

// forwarder is the task driving one connection from its registration until its cleanup.
type forwarder struct {
	registry Registry
	ids      Identities
	in       Inbound
	queue    *Queue

	state  State
	logger *log.Entry

	// closed after terminate
	done chan struct{}
}

// run reads the inbound envelopes until the stream ends, fails or the receiver is missing.
// The cleanup in terminate happens on every exit path.
func (f *forwarder) run(ctx context.Context) {
	reason := metrics.ReasonClosed
	defer func() {
		f.terminate(ctx, reason)
	}()

	for {
		msg, err := f.in.Recv()
		if err != nil {
			reason = f.handleRecvError(err)
			return
		}

		if !f.forward(ctx, msg) {
			reason = metrics.ReasonUnavailable
			return
		}
	}
}

// handleRecvError logs why reading stopped and returns the termination reason.
func (f *forwarder) handleRecvError(err error) string {
	if errors.Is(err, io.EOF) || status.Code(err) == codes.Canceled || errors.Is(err, context.Canceled) {
		f.logger.Debug("Inbound stream was closed")
		return metrics.ReasonClosed
	}

	// Transport errors and undecodable envelopes end the connection just like a regular close.
	f.logger.WithError(err).Warn("Reading from inbound stream errored")
	return metrics.ReasonFault
}

// forward one envelope to the receiver's Queue. If the receiver is not registered, an unavailable error is queued
// for the sender itself and false is returned to stop forwarding.
func (f *forwarder) forward(ctx context.Context, msg *channel.ChannelMessage) bool {
	logger := f.logger.WithFields(log.Fields{
		"sid":  msg.GetSid(),
		"type": msg.Type(),
	})

	peer, ok := f.registry.Resolve(f.ids.Receiver)
	if !ok {
		logger.Info("Receiver is not registered, sending unavailable error")

		if err := f.queue.Push(ctx, BuildUnavailable(msg.GetSid())); err != nil {
			logger.WithError(err).Debug("Queueing unavailable error for sender failed")
			metrics.Dropped(ctx)
		}
		return false
	}

	if err := peer.Push(ctx, msg); err != nil {
		logger.WithError(err).Warn("Dropped envelope for receiver")
		metrics.Dropped(ctx)
		return true
	}

	logger.Debug("Forwarded envelope")
	metrics.Forwarded(ctx, msg.Type().Kind().String())
	return true
}

// terminate releases the registration and closes the Queue.
func (f *forwarder) terminate(ctx context.Context, reason string) {
	if err := f.state.Next(); err != nil {
		f.logger.WithError(err).Warn("Forwarding task is already terminating")
	}

	if !f.registry.Release(f.ids.Sender, f.queue) {
		f.logger.Debug("Registration was already replaced or removed")
	}
	f.queue.Close()

	metrics.ConnectionClosed(ctx, reason)
	close(f.done)

	f.logger.WithFields(log.Fields{
		"state":  f.state,
		"reason": reason,
	}).Info("Client disconnected")
}
