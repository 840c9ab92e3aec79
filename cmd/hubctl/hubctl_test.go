// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grpchub/grpchub-go/pkg/admin"
	"github.com/grpchub/grpchub-go/pkg/channel"
	"github.com/grpchub/grpchub-go/pkg/relay"
	"github.com/grpchub/grpchub-go/pkg/tunnel"
)

// pipeConn is one end of an in-memory connection pair. CloseSend results in io.EOF at the other end.
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

func (c *pipeConn) CloseSend() error {
	c.closeOnce.Do(func() {
		close(c.out)
	})
	return nil
}

func TestCat(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	catConn, peerConn := newPipe()

	peer := tunnel.NewManager(peerConn, true)
	go func() {
		_ = peer.Run()
	}()

	peerErrs := make(chan error, 1)
	go func() {
		peerErrs <- func() error {
			s, err := peer.Accept(ctx)
			if err != nil {
				return err
			}
			if s.Method() != catMethod {
				return fmt.Errorf("unexpected method %s", s.Method())
			}

			// echo upper cased
			for {
				data, err := s.RecvBytes(ctx)
				if errors.Is(err, io.EOF) {
					break
				} else if err != nil {
					return err
				}
				if err := s.SendBytes(bytes.ToUpper(data)); err != nil {
					return err
				}
			}
			if err := s.CloseSend(); err != nil {
				return err
			}

			own, err := peer.Open("peer-stream", "/peer/Say")
			if err != nil {
				return err
			}
			if err := own.SendBytes([]byte("from peer\n")); err != nil {
				return err
			}
			if err := own.CloseSend(); err != nil {
				return err
			}

			return peerConn.CloseSend()
		}()
	}()

	var out bytes.Buffer
	require.NoError(t, cat(ctx, catConn, strings.NewReader("hello\nworld\n"), &out))
	require.NoError(t, <-peerErrs)

	assert.Contains(t, out.String(), "HELLO\nWORLD\n")
	assert.Contains(t, out.String(), "from peer\n")
	assert.Len(t, out.String(), len("HELLO\nWORLD\nfrom peer\n"))
}

func TestCatReceiverUnavailable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	catConn, relayConn := newPipe()

	go func() {
		hello, err := relayConn.Recv()
		if err != nil {
			return
		}
		_ = relayConn.Send(relay.BuildUnavailable(hello.GetSid()))
		_ = relayConn.CloseSend()
	}()

	var out bytes.Buffer
	require.NoError(t, cat(ctx, catConn, strings.NewReader("hello\n"), &out))
	assert.Empty(t, out.String())
}

func TestFetchEndpoints(t *testing.T) {
	registry := relay.NewRegistry()
	registry.Register("alice", relay.NewQueue(2))

	srv := httptest.NewServer(admin.NewAPI(mux.NewRouter(), registry, nil))
	defer srv.Close()

	endpoints, err := fetchEndpoints(http.DefaultClient, srv.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, []admin.Endpoint{{ID: "alice", Queued: 0, Capacity: 2}}, endpoints)

	_, err = fetchEndpoints(http.DefaultClient, srv.URL+"/nope")
	assert.Error(t, err)
}
