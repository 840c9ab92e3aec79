// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package wsbridge

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/gorilla/websocket"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/grpchub/grpchub-go/pkg/channel"
	"github.com/grpchub/grpchub-go/pkg/relay"
)

// Bridge accepts WebSocket connections as relay endpoints. The ServeHTTP function must be bound to a HTTP server.
type Bridge struct {
	hub      *relay.Hub
	upgrader websocket.Upgrader
}

// NewBridge for a Hub.
func NewBridge(hub *relay.Hub) *Bridge {
	return &Bridge{
		hub:      hub,
		upgrader: websocket.Upgrader{},
	}
}

// ServeHTTP must be bound to a HTTP endpoint, e.g., to /ws by a http.ServeMux. It blocks until the connection ends.
func (b *Bridge) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	ids, err := requestIdentities(r)
	if err != nil {
		log.WithError(err).WithField("remote", r.RemoteAddr).Warn("Rejected WebSocket connection")
		http.Error(rw, status.Convert(err).Message(), http.StatusBadRequest)
		return
	}

	conn, err := b.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		log.WithError(err).Warn("Upgrading HTTP request to WebSocket errored")
		return
	}

	client := newBridgeClient(conn)
	defer client.shutdown()

	if err := b.hub.Serve(client, ids); err != nil {
		client.logger.WithError(err).Warn("Serving WebSocket client errored")
	}
}

// requestIdentities reads the identities from the headers, falling back to the query parameters.
func requestIdentities(r *http.Request) (relay.Identities, error) {
	md := metadata.MD{}
	query := r.URL.Query()

	for _, key := range []string{channel.SenderIDKey, channel.ReceiverIDKey} {
		if values := r.Header.Values(key); len(values) > 0 {
			md.Append(key, values...)
		} else if values, ok := query[key]; ok {
			md.Append(key, values...)
		}
	}

	return relay.IdentitiesFromMetadata(md)
}
