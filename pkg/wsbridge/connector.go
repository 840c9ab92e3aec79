// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package wsbridge

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/grpchub/grpchub-go/pkg/channel"
	"github.com/grpchub/grpchub-go/pkg/relay"
)

// Connector is the client side of a Bridge connection.
type Connector struct {
	writeMutex sync.Mutex
	conn       *websocket.Conn
}

// Dial a Bridge, e.g., at ws://localhost:8080/ws, as the given identities.
func Dial(ctx context.Context, url string, ids relay.Identities) (*Connector, error) {
	if err := ids.CheckValid(); err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set(channel.SenderIDKey, ids.Sender)
	header.Set(channel.ReceiverIDKey, ids.Receiver)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	return &Connector{conn: conn}, nil
}

// Send a ChannelMessage to the relay.
func (c *Connector) Send(msg *channel.ChannelMessage) error {
	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()

	return writeMessage(c.conn, msg)
}

// Recv the next ChannelMessage. After the relay closed the connection, io.EOF is returned.
func (c *Connector) Recv() (*channel.ChannelMessage, error) {
	return readMessage(c.conn)
}

// CloseSend announces the end of outgoing messages; the relay finishes this endpoint afterwards.
func (c *Connector) CloseSend() error {
	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()

	return c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
}

// Close the underlying connection.
func (c *Connector) Close() error {
	return c.conn.Close()
}
