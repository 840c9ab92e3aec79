// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package relay

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/grpchub/grpchub-go/pkg/channel"
)

// UnavailableMessage is the status message of a synthesized unavailable envelope.
const UnavailableMessage = "target service is offline or not available"

// BuildUnavailable creates the error envelope sent back to a sender whose receiver is not registered. It echoes
// the sid of the envelope which could not be delivered.
func BuildUnavailable(sid string) *channel.ChannelMessage {
	return &channel.ChannelMessage{
		Sid: sid,
		Pkg: channel.NewErrorPackage(status.New(codes.Unavailable, UnavailableMessage)),
	}
}
