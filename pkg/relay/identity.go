// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package relay

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/grpchub/grpchub-go/pkg/channel"
)

// ErrMissingIdentity is wrapped by errors about absent endpoint identities.
var ErrMissingIdentity = errors.New("missing endpoint identity")

// Identities of one connection: its own endpoint and the endpoint of its peer.
type Identities struct {
	Sender   string
	Receiver string
}

func (ids Identities) String() string {
	return fmt.Sprintf("%s => %s", ids.Sender, ids.Receiver)
}

// CheckValid returns an error if one of both identities is empty.
func (ids Identities) CheckValid() error {
	switch {
	case ids.Sender == "":
		return fmt.Errorf("%w: %s", ErrMissingIdentity, channel.SenderIDKey)
	case ids.Receiver == "":
		return fmt.Errorf("%w: %s", ErrMissingIdentity, channel.ReceiverIDKey)
	default:
		return nil
	}
}

// IdentitiesFromContext reads the identities from the incoming gRPC metadata of a call.
// Errors are gRPC status errors with the InvalidArgument code.
func IdentitiesFromContext(ctx context.Context) (Identities, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	return IdentitiesFromMetadata(md)
}

// IdentitiesFromMetadata reads the sender_id and receiver_id entries. The first value of each key is used.
// Errors are gRPC status errors with the InvalidArgument code, naming the offending key.
func IdentitiesFromMetadata(md metadata.MD) (ids Identities, err error) {
	if ids.Sender, err = identityValue(md, channel.SenderIDKey); err != nil {
		return
	}
	ids.Receiver, err = identityValue(md, channel.ReceiverIDKey)
	return
}

func identityValue(md metadata.MD, key string) (string, error) {
	values := md.Get(key)
	if len(values) == 0 {
		return "", status.Errorf(codes.InvalidArgument, "no %s in metadata", key)
	}

	value := values[0]
	switch {
	case value == "":
		return "", status.Errorf(codes.InvalidArgument, "%s to str err in metadata: empty value", key)
	case !utf8.ValidString(value):
		return "", status.Errorf(codes.InvalidArgument, "%s to str err in metadata: invalid UTF-8", key)
	default:
		return value, nil
	}
}
