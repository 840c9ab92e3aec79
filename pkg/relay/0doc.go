// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package relay forwards channel envelopes between logical endpoints.
//
// Each connection announces its own endpoint identity (sender) and the identity of its peer (receiver). The Hub
// registers a bounded Queue for the sender in a Registry and starts a forwarding task, which reads the connection's
// inbound envelopes and pushes them into the Queue the receiver has registered. The connection's own Queue is
// drained into its response stream. If the receiver is not registered, the sender gets one synthesized error
// envelope and the connection is torn down from the relay's side.
//
// Delivery is best-effort and in-memory only; nothing is retried.
package relay
