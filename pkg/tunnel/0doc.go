// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package tunnel multiplexes logical streams over one Channel call.
//
// The relay only knows whole connections. On top of one connection a Manager runs many Streams, each named by the
// Sid of its envelopes. A Stream is opened by a PT_HELLO carrying the method, transports headers, payloads and
// trailers, and ends with PT_CLOSE for a regular end of the sending side or PT_ERROR for a gRPC status. A Manager
// created for accepting creates a Stream for each PT_HELLO of an unknown Sid and hands it out by Accept.
package tunnel
