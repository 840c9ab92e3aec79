// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package wsbridge exposes the relay to WebSocket clients, e.g., browsers which cannot open bidirectional gRPC
// streams.
//
// A client connects with its identities either as HTTP headers or as query parameters, named sender_id and
// receiver_id. Afterwards, each binary WebSocket message carries exactly one protobuf encoded ChannelMessage in both
// directions. WebSocket endpoints and gRPC endpoints share the same registry and can talk to each other.
package wsbridge
