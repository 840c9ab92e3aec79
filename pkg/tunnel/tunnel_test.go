// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package tunnel

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/grpchub/grpchub-go/pkg/channel"
)

const testTimeout = 2 * time.Second

// pipeConn is one end of an in-memory Conn pair. CloseSend results in io.EOF at the other end.
type pipeConn struct {
	in  <-chan *channel.ChannelMessage
	out chan<- *channel.ChannelMessage

	closeOnce sync.Once
}

func newPipe() (*pipeConn, *pipeConn) {
	ab := make(chan *channel.ChannelMessage, 64)
	ba := make(chan *channel.ChannelMessage, 64)
	return &pipeConn{in: ba, out: ab}, &pipeConn{in: ab, out: ba}
}

func (c *pipeConn) Send(msg *channel.ChannelMessage) error {
	c.out <- msg
	return nil
}

func (c *pipeConn) Recv() (*channel.ChannelMessage, error) {
	msg, ok := <-c.in
	if !ok {
		return nil, io.EOF
	}
	return msg, nil
}

func (c *pipeConn) CloseSend() {
	c.closeOnce.Do(func() {
		close(c.out)
	})
}

// run a Manager in the background; its result is available from the returned channel.
func run(m *Manager) <-chan error {
	errs := make(chan error, 1)
	go func() {
		errs <- m.Run()
	}()
	return errs
}

func newManagers(t *testing.T) (client, server *Manager, clientConn, serverConn *pipeConn) {
	clientConn, serverConn = newPipe()
	client = NewManager(clientConn, false)
	server = NewManager(serverConn, true)

	clientErrs, serverErrs := run(client), run(server)
	t.Cleanup(func() {
		clientConn.CloseSend()
		serverConn.CloseSend()
		for _, errs := range []<-chan error{clientErrs, serverErrs} {
			select {
			case <-errs:
			case <-time.After(testTimeout):
				t.Error("Manager did not stop")
			}
		}
	})
	return
}

func accept(t *testing.T, m *Manager) *Stream {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	s, err := m.Accept(ctx)
	require.NoError(t, err)
	return s
}

func TestStreamLifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	client, server, _, _ := newManagers(t)

	cs, err := client.Open("s1", "/echo.Echo/Say")
	require.NoError(t, err)

	require.NoError(t, cs.SendHeader(metadata.Pairs("authorization", "bearer foo")))
	require.NoError(t, cs.SendBytes([]byte("hello")))
	require.NoError(t, cs.SendBytes([]byte("world")))
	require.NoError(t, cs.CloseSend())

	ss := accept(t, server)
	assert.Equal(t, "s1", ss.Sid())
	assert.Equal(t, "/echo.Echo/Say", ss.Method())

	for _, expected := range []string{"hello", "world"} {
		data, err := ss.RecvBytes(ctx)
		require.NoError(t, err)
		assert.Equal(t, expected, string(data))
	}
	_, err = ss.RecvBytes(ctx)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []string{"bearer foo"}, ss.Header().Get("authorization"))

	// the response travels on the same Sid
	require.NoError(t, ss.SendBytes([]byte("pong")))
	require.NoError(t, ss.SendTrailer(metadata.Pairs("x-result", "ok")))
	require.NoError(t, ss.CloseSend())

	data, err := cs.RecvBytes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(data))

	_, err = cs.RecvBytes(ctx)
	assert.ErrorIs(t, err, io.EOF)
	_, err = cs.RecvBytes(ctx)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []string{"ok"}, cs.Trailer().Get("x-result"))

	// both sides are done, so both Sids were released
	assert.Equal(t, 0, client.Len())
	assert.Equal(t, 0, server.Len())
}

func TestStreamStatus(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	client, server, _, _ := newManagers(t)

	cs, err := client.Open("s1", "/svc/Fail")
	require.NoError(t, err)

	ss := accept(t, server)
	require.NoError(t, ss.SendStatus(status.New(codes.PermissionDenied, "nope")))

	for i := 0; i < 2; i++ {
		_, err = cs.Recv(ctx)
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
		assert.Equal(t, "nope", status.Convert(err).Message())
	}

	// the server side is done sending, the client side never sent PT_CLOSE
	assert.Equal(t, 1, server.Len())
	require.NoError(t, cs.CloseSend())
}

func TestStreamsInterleaved(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	client, server, _, _ := newManagers(t)

	a, err := client.Open("a", "/svc/A")
	require.NoError(t, err)
	sa := accept(t, server)

	b, err := client.Open("b", "/svc/B")
	require.NoError(t, err)
	sb := accept(t, server)

	require.NoError(t, b.SendBytes([]byte("b1")))
	require.NoError(t, a.SendBytes([]byte("a1")))
	require.NoError(t, b.SendBytes([]byte("b2")))

	for _, c := range []struct {
		s        *Stream
		expected []string
	}{
		{sa, []string{"a1"}},
		{sb, []string{"b1", "b2"}},
	} {
		for _, expected := range c.expected {
			data, err := c.s.RecvBytes(ctx)
			require.NoError(t, err)
			assert.Equal(t, expected, string(data), c.s.Method())
		}
	}
}

func TestOpenExistingSid(t *testing.T) {
	client, _, _, _ := newManagers(t)

	_, err := client.Open("s1", "/svc/A")
	require.NoError(t, err)

	_, err = client.Open("s1", "/svc/A")
	assert.ErrorIs(t, err, ErrStreamExists)
}

func TestAcceptNotAccepting(t *testing.T) {
	client, _, _, _ := newManagers(t)

	_, err := client.Accept(context.Background())
	assert.ErrorIs(t, err, ErrNotAccepting)
}

func TestUnknownStreamDropped(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	client, server, _, serverConn := newManagers(t)

	cs, err := client.Open("s1", "/svc/A")
	require.NoError(t, err)
	ss := accept(t, server)

	// payloads for unknown Sids are dropped by both kinds of Managers
	unknown, err := channel.NewBytesMessage("nobody", "/svc/A", []byte("lost"))
	require.NoError(t, err)
	require.NoError(t, serverConn.Send(unknown))

	require.NoError(t, ss.SendBytes([]byte("found")))
	data, err := cs.RecvBytes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "found", string(data))
	assert.Equal(t, 1, client.Len())
}

func TestManagerEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	clientConn, relayConn := newPipe()
	client := NewManager(clientConn, false)

	cs, err := client.Open("x", "/svc/Call")
	require.NoError(t, err)

	hello, err := relayConn.Recv()
	require.NoError(t, err)
	assert.Equal(t, channel.PackageHello, hello.Type())

	// an unavailable error followed by the end of the call, as the relay does it
	require.NoError(t, relayConn.Send(&channel.ChannelMessage{
		Sid: "x",
		Pkg: channel.NewErrorPackage(status.New(codes.Unavailable, "target service is offline or not available")),
	}))
	relayConn.CloseSend()

	require.NoError(t, <-run(client))

	_, err = cs.Recv(ctx)
	assert.Equal(t, codes.Unavailable, status.Code(err))

	_, err = client.Open("y", "/svc/Call")
	assert.ErrorIs(t, err, ErrManagerClosed)
	assert.ErrorIs(t, cs.SendBytes(nil), ErrManagerClosed)
}

func TestManagerEndDrainsStreams(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	clientConn, relayConn := newPipe()
	client := NewManager(clientConn, false)

	cs, err := client.Open("x", "/svc/Call")
	require.NoError(t, err)

	for _, data := range []string{"1", "2"} {
		msg, err := channel.NewBytesMessage("x", "/svc/Call", []byte(data))
		require.NoError(t, err)
		require.NoError(t, relayConn.Send(msg))
	}
	relayConn.CloseSend()

	require.NoError(t, <-run(client))

	for _, expected := range []string{"1", "2"} {
		data, err := cs.RecvBytes(ctx)
		require.NoError(t, err)
		assert.Equal(t, expected, string(data))
	}
	_, err = cs.RecvBytes(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

type failingConn struct {
	*pipeConn
	err error
}

func (c *failingConn) Recv() (*channel.ChannelMessage, error) {
	return nil, c.err
}

func TestManagerTransportError(t *testing.T) {
	clientConn, _ := newPipe()
	broken := errors.New("connection reset")
	client := NewManager(&failingConn{pipeConn: clientConn, err: broken}, true)

	assert.ErrorIs(t, client.Run(), broken)

	_, err := client.Accept(context.Background())
	assert.ErrorIs(t, err, broken)
}

func TestCanceledCallEndsRegularly(t *testing.T) {
	clientConn, _ := newPipe()
	client := NewManager(&failingConn{pipeConn: clientConn, err: status.Error(codes.Canceled, "context canceled")}, false)

	assert.NoError(t, client.Run())
	select {
	case <-client.Done():
	default:
		t.Fatal("Manager is not done")
	}
}

func TestStreamClose(t *testing.T) {
	client, _, _, _ := newManagers(t)

	cs, err := client.Open("s1", "/svc/A")
	require.NoError(t, err)
	require.Equal(t, 1, client.Len())

	cs.Close()
	cs.Close()
	assert.Equal(t, 0, client.Len())
	assert.ErrorIs(t, cs.SendBytes(nil), ErrStreamClosed)

	_, err = cs.Recv(context.Background())
	assert.ErrorIs(t, err, ErrStreamClosed)
}
