// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package channel

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	// ServiceName is the fully qualified gRPC service name, also used for health reporting.
	ServiceName = "channel.v1.ChannelService"

	// SenderIDKey is the call metadata key naming the caller's own endpoint.
	SenderIDKey = "sender_id"

	// ReceiverIDKey is the call metadata key naming the caller's peer endpoint.
	ReceiverIDKey = "receiver_id"
)

// Connect opens a Channel call announcing sender as the own endpoint and receiver as its peer.
func Connect(ctx context.Context, client ChannelServiceClient, sender, receiver string, opts ...grpc.CallOption) (ChannelService_ChannelClient, error) {
	ctx = metadata.AppendToOutgoingContext(ctx, SenderIDKey, sender, ReceiverIDKey, receiver)
	return client.Channel(ctx, opts...)
}
