// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package tunnel

import (
	"context"
	"errors"
	"io"
	"sync"

	log "github.com/sirupsen/logrus"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/grpchub/grpchub-go/pkg/channel"
)

var (
	// ErrManagerClosed is returned for operations on a closed Manager.
	ErrManagerClosed = errors.New("tunnel manager is closed")

	// ErrStreamExists is returned when opening a Stream for a Sid already in use.
	ErrStreamExists = errors.New("stream id is already in use")

	// ErrNotAccepting is returned by Accept of a Manager which was not created for accepting.
	ErrNotAccepting = errors.New("tunnel manager does not accept streams")
)

// Conn is one Channel call, e.g., a channel.ChannelService_ChannelClient or a wsbridge.Connector.
type Conn interface {
	Send(*channel.ChannelMessage) error
	Recv() (*channel.ChannelMessage, error)
}

// Manager dispatches the envelopes of one Conn to its Streams.
type Manager struct {
	conn      Conn
	sendMutex sync.Mutex

	streamsMutex sync.Mutex
	streams      map[string]*Stream

	// nil, unless accepting
	accept chan *Stream

	// err is set before closed is closed.
	closed    chan struct{}
	closeOnce sync.Once
	err       error
}

// NewManager for a Conn. If accept is set, Streams opened by the peer are handed out by Accept, which must be called
// continuously; otherwise envelopes for unknown Streams are dropped.
//
// Run must be started afterwards.
func NewManager(conn Conn, accept bool) *Manager {
	m := &Manager{
		conn:    conn,
		streams: make(map[string]*Stream),
		closed:  make(chan struct{}),
	}
	if accept {
		m.accept = make(chan *Stream)
	}
	return m
}

// Run receives from the Conn until it ends. A regular end, by io.EOF or cancellation, results in nil. All Streams
// end together with Run, after their already received envelopes.
func (m *Manager) Run() error {
	for {
		msg, err := m.conn.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) || status.Code(err) == codes.Canceled {
				err = nil
			}
			if err != nil {
				log.WithError(err).Warn("Receiving from tunnel errored")
			}

			m.shutdown(err)
			return err
		}

		m.dispatch(msg)
	}
}

func (m *Manager) dispatch(msg *channel.ChannelMessage) {
	logger := log.WithFields(log.Fields{
		"sid":  msg.GetSid(),
		"type": msg.Type(),
	})

	if s, ok := m.lookup(msg.GetSid()); ok {
		s.deliver(msg.GetPkg())
		return
	}

	if m.accept == nil || msg.Type() != channel.PackageHello {
		logger.Debug("Dropped envelope for unknown stream")
		return
	}

	s, err := m.register(msg.GetSid(), msg.GetPkg().GetMethod())
	if err != nil {
		logger.WithError(err).Debug("Dropped stream opening")
		return
	}
	logger.WithField("method", s.Method()).Debug("Peer opened stream")

	select {
	case m.accept <- s:
	case <-m.closed:
	}
}

// Open a new Stream for a Sid and announce it with its method to the peer.
func (m *Manager) Open(sid, method string) (*Stream, error) {
	s, err := m.register(sid, method)
	if err != nil {
		return nil, err
	}

	if err := s.send(channel.PackageHello, nil); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Accept the next Stream opened by the peer. After the Manager ended, its terminal error or io.EOF is returned.
func (m *Manager) Accept(ctx context.Context) (*Stream, error) {
	if m.accept == nil {
		return nil, ErrNotAccepting
	}

	select {
	case s := <-m.accept:
		return s, nil
	case <-m.closed:
		return nil, m.terminalErr()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close this Manager. All Streams end with ErrManagerClosed. The Conn itself is not closed; Run returns after the
// Conn's Recv returned.
func (m *Manager) Close() {
	m.shutdown(ErrManagerClosed)
}

// Done is closed after the Manager ended.
func (m *Manager) Done() <-chan struct{} {
	return m.closed
}

// Len of currently known Streams.
func (m *Manager) Len() int {
	m.streamsMutex.Lock()
	defer m.streamsMutex.Unlock()

	return len(m.streams)
}

func (m *Manager) shutdown(err error) {
	m.closeOnce.Do(func() {
		m.err = err
		close(m.closed)
	})
}

// terminalErr may only be called after closed was closed.
func (m *Manager) terminalErr() error {
	if m.err == nil {
		return io.EOF
	}
	return m.err
}

func (m *Manager) register(sid, method string) (*Stream, error) {
	select {
	case <-m.closed:
		return nil, ErrManagerClosed
	default:
	}

	m.streamsMutex.Lock()
	defer m.streamsMutex.Unlock()

	if _, ok := m.streams[sid]; ok {
		return nil, ErrStreamExists
	}

	s := newStream(m, sid, method)
	m.streams[sid] = s
	return s, nil
}

func (m *Manager) lookup(sid string) (s *Stream, ok bool) {
	m.streamsMutex.Lock()
	defer m.streamsMutex.Unlock()

	s, ok = m.streams[sid]
	return
}

// release a Stream, only if sid still belongs to it.
func (m *Manager) release(sid string, s *Stream) {
	m.streamsMutex.Lock()
	defer m.streamsMutex.Unlock()

	if m.streams[sid] == s {
		delete(m.streams, sid)
	}
}

func (m *Manager) send(msg *channel.ChannelMessage) error {
	select {
	case <-m.closed:
		return ErrManagerClosed
	default:
	}

	m.sendMutex.Lock()
	defer m.sendMutex.Unlock()

	return m.conn.Send(msg)
}
