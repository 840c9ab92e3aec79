// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package wsbridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/gorilla/websocket"
	"google.golang.org/protobuf/proto"

	"github.com/grpchub/grpchub-go/pkg/channel"
)

// bridgeClient is the server side of one WebSocket connection, acting as a relay.Stream.
type bridgeClient struct {
	writeMutex sync.Mutex

	conn   *websocket.Conn
	logger *log.Entry

	// The request's context is not canceled after hijacking, so each client has its own.
	ctx    context.Context
	cancel context.CancelFunc

	shutdownOnce sync.Once
}

func newBridgeClient(conn *websocket.Conn) *bridgeClient {
	ctx, cancel := context.WithCancel(context.Background())

	// A close frame only ends the client's sending half. Our close frame follows in shutdown, after the queued
	// envelopes were written.
	conn.SetCloseHandler(func(int, string) error {
		return nil
	})

	return &bridgeClient{
		conn:   conn,
		logger: log.WithField("websocket client", conn.RemoteAddr().String()),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (client *bridgeClient) shutdown() {
	client.shutdownOnce.Do(func() {
		client.logger.Debug("Reached shutdown")

		client.cancel()

		closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = client.conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(time.Second))
		_ = client.conn.Close()
	})
}

func (client *bridgeClient) Context() context.Context {
	return client.ctx
}

// Recv the next ChannelMessage. A closed WebSocket results in io.EOF.
func (client *bridgeClient) Recv() (*channel.ChannelMessage, error) {
	msg, err := readMessage(client.conn)
	if err != nil && !errors.Is(err, io.EOF) {
		client.cancel()
	}
	return msg, err
}

func (client *bridgeClient) Send(msg *channel.ChannelMessage) error {
	client.writeMutex.Lock()
	defer client.writeMutex.Unlock()

	return writeMessage(client.conn, msg)
}

func readMessage(conn *websocket.Conn) (*channel.ChannelMessage, error) {
	messageType, reader, err := conn.NextReader()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil, io.EOF
		}
		return nil, err
	}

	if messageType != websocket.BinaryMessage {
		return nil, fmt.Errorf("websocket message type %d is not binary", messageType)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	msg := new(channel.ChannelMessage)
	if err := proto.Unmarshal(data, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func writeMessage(conn *websocket.Conn, msg *channel.ChannelMessage) error {
	data, err := proto.Marshal(msg)
	if err != nil {
		return err
	}

	return conn.WriteMessage(websocket.BinaryMessage, data)
}
