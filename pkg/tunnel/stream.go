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

	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/grpchub/grpchub-go/pkg/channel"
)

// inboxSize of each Stream. A full inbox holds back the Manager's receiving.
const inboxSize = 16

// ErrStreamClosed is returned for operations on a closed Stream.
var ErrStreamClosed = errors.New("stream is closed")

// Stream is one logical stream within a Manager's Conn.
type Stream struct {
	sid     string
	method  string
	manager *Manager
	logger  *log.Entry

	inbox chan *channel.MessagePackage

	closed    chan struct{}
	closeOnce sync.Once

	mutex    sync.Mutex
	header   metadata.MD
	trailer  metadata.MD
	recvErr  error // io.EOF after PT_CLOSE or the status error of PT_ERROR
	sentDone bool  // PT_CLOSE or PT_ERROR was sent
}

func newStream(manager *Manager, sid, method string) *Stream {
	return &Stream{
		sid:     sid,
		method:  method,
		manager: manager,
		logger:  log.WithField("sid", sid),
		inbox:   make(chan *channel.MessagePackage, inboxSize),
		closed:  make(chan struct{}),
		header:  metadata.MD{},
		trailer: metadata.MD{},
	}
}

// Sid of this Stream.
func (s *Stream) Sid() string {
	return s.sid
}

// Method announced by the PT_HELLO which opened this Stream.
func (s *Stream) Method() string {
	return s.method
}

// Header received so far.
func (s *Stream) Header() metadata.MD {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.header.Copy()
}

// Trailer received so far.
func (s *Stream) Trailer() metadata.MD {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.trailer.Copy()
}

func (s *Stream) deliver(pkg *channel.MessagePackage) {
	select {
	case s.inbox <- pkg:
	case <-s.closed:
		s.logger.WithField("type", pkg.GetType()).Debug("Dropped envelope for closed stream")
	case <-s.manager.closed:
	}
}

// SendHeader sends header metadata.
func (s *Stream) SendHeader(md metadata.MD) error {
	return s.send(channel.PackageHeader, func(pkg *channel.MessagePackage) error {
		pkg.Md = channel.MetadataEntries(md)
		return nil
	})
}

// SendPayload sends one message, packed into a google.protobuf.Any.
func (s *Stream) SendPayload(msg proto.Message) error {
	return s.send(channel.PackagePayload, func(pkg *channel.MessagePackage) (err error) {
		pkg.Payload, err = anypb.New(msg)
		return
	})
}

// SendBytes sends data as a google.protobuf.BytesValue payload.
func (s *Stream) SendBytes(data []byte) error {
	return s.SendPayload(wrapperspb.Bytes(data))
}

// SendTrailer sends trailer metadata.
func (s *Stream) SendTrailer(md metadata.MD) error {
	return s.send(channel.PackageTrailer, func(pkg *channel.MessagePackage) error {
		pkg.Md = channel.MetadataEntries(md)
		return nil
	})
}

// SendStatus ends the sending side with a gRPC status.
func (s *Stream) SendStatus(st *status.Status) error {
	err := s.send(channel.PackageError, func(pkg *channel.MessagePackage) error {
		pkg.Payload = channel.NewErrorPackage(st).GetPayload()
		return nil
	})
	if err == nil {
		s.markSent()
	}
	return err
}

// CloseSend ends the sending side regularly.
func (s *Stream) CloseSend() error {
	err := s.send(channel.PackageClose, nil)
	if err == nil {
		s.markSent()
	}
	return err
}

func (s *Stream) send(pt channel.PackageType, fill func(*channel.MessagePackage) error) error {
	select {
	case <-s.closed:
		return ErrStreamClosed
	default:
	}

	pkg := &channel.MessagePackage{
		Type:   pt,
		Method: s.method,
	}
	if fill != nil {
		if err := fill(pkg); err != nil {
			return err
		}
	}

	return s.manager.send(&channel.ChannelMessage{Sid: s.sid, Pkg: pkg})
}

// Recv the next payload. Headers and trailers are collected on the way. A PT_CLOSE results in io.EOF, a PT_ERROR in
// its status error; both are returned for all further calls.
func (s *Stream) Recv(ctx context.Context) (*anypb.Any, error) {
	for {
		s.mutex.Lock()
		recvErr := s.recvErr
		s.mutex.Unlock()
		if recvErr != nil {
			return nil, recvErr
		}

		pkg, err := s.next(ctx)
		if err != nil {
			return nil, err
		}

		switch pkg.GetType() {
		case channel.PackagePayload:
			return pkg.GetPayload(), nil

		case channel.PackageHeader:
			s.mergeMetadata(s.header, pkg)

		case channel.PackageTrailer:
			s.mergeMetadata(s.trailer, pkg)

		case channel.PackageClose:
			s.finish(io.EOF)

		case channel.PackageError:
			st, stErr := channel.ErrorStatus(pkg)
			if stErr != nil {
				s.finish(stErr)
			} else {
				s.finish(st.Err())
			}

		default:
			s.logger.WithField("type", pkg.GetType()).Debug("Ignored envelope")
		}
	}
}

// RecvBytes receives the next payload sent by SendBytes.
func (s *Stream) RecvBytes(ctx context.Context) ([]byte, error) {
	payload, err := s.Recv(ctx)
	if err != nil {
		return nil, err
	}

	var value wrapperspb.BytesValue
	if err := payload.UnmarshalTo(&value); err != nil {
		return nil, err
	}
	return value.GetValue(), nil
}

// next package from the inbox. Packages delivered before the Manager ended are returned first.
func (s *Stream) next(ctx context.Context) (*channel.MessagePackage, error) {
	select {
	case pkg := <-s.inbox:
		return pkg, nil
	default:
	}

	select {
	case pkg := <-s.inbox:
		return pkg, nil

	case <-s.closed:
		return nil, ErrStreamClosed

	case <-s.manager.closed:
		select {
		case pkg := <-s.inbox:
			return pkg, nil
		default:
			return nil, s.manager.terminalErr()
		}

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Stream) mergeMetadata(md metadata.MD, pkg *channel.MessagePackage) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for k, v := range channel.MetadataFromEntries(pkg.GetMd()) {
		md.Append(k, v...)
	}
}

// finish the receiving side. Once both sides are done, the Sid is released.
func (s *Stream) finish(err error) {
	s.mutex.Lock()
	s.recvErr = err
	done := s.sentDone
	s.mutex.Unlock()

	if done {
		s.manager.release(s.sid, s)
	}
}

func (s *Stream) markSent() {
	s.mutex.Lock()
	s.sentDone = true
	done := s.recvErr != nil
	s.mutex.Unlock()

	if done {
		s.manager.release(s.sid, s)
	}
}

// Close this Stream locally without notifying the peer; its Sid is released and later envelopes are dropped.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		s.manager.release(s.sid, s)
		close(s.closed)
	})
}
