// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package channel

import (
	"fmt"

	spb "google.golang.org/genproto/googleapis/rpc/status"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
)

// StatusTypeURL is the type URL of a google.rpc.Status packed into an error package.
const StatusTypeURL = "type.googleapis.com/google.rpc.Status"

// NewErrorPackage wraps a gRPC status into a PackageError MessagePackage.
func NewErrorPackage(st *status.Status) *MessagePackage {
	payload, err := anypb.New(st.Proto())
	if err != nil {
		// A google.rpc.Status always marshals, but keep the package recognizable anyway.
		payload = &anypb.Any{TypeUrl: StatusTypeURL}
	}

	return &MessagePackage{
		Type:    PackageError,
		Payload: payload,
	}
}

// ErrorStatus extracts the gRPC status of a PackageError MessagePackage.
func ErrorStatus(pkg *MessagePackage) (*status.Status, error) {
	if t := pkg.GetType(); t != PackageError {
		return nil, fmt.Errorf("package of type %v carries no status", t)
	}

	payload := pkg.GetPayload()
	if payload == nil {
		return nil, fmt.Errorf("error package has no payload")
	}

	var st spb.Status
	if err := anypb.UnmarshalTo(payload, &st, proto.UnmarshalOptions{}); err != nil {
		return nil, fmt.Errorf("error package payload is no status: %w", err)
	}
	return status.FromProto(&st), nil
}
