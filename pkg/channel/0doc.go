// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package channel holds the envelopes exchanged over the channel.v1.ChannelService and the generated gRPC bindings.
//
// Each party of a relayed conversation opens one bidirectional Channel call and sends ChannelMessages, which are
// forwarded unchanged to its peer. A ChannelMessage carries an opaque stream id (Sid) and a MessagePackage, whose
// PackageType tags the payload as data, control or error. The relay never looks into data or control payloads;
// only error packages are produced by the relay itself, carrying a google.rpc.Status.
package channel

//go:generate protoc -I ../../proto --go_out=../.. --go_opt=module=github.com/grpchub/grpchub-go --go-grpc_out=../.. --go-grpc_opt=module=github.com/grpchub/grpchub-go channel/v1/channel.proto
