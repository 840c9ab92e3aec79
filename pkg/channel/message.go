// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package channel

import (
	"sort"

	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// NewMessage creates a ChannelMessage of the given type without metadata.
func NewMessage(sid string, pt PackageType, method string, payload *anypb.Any) *ChannelMessage {
	return &ChannelMessage{
		Sid: sid,
		Pkg: &MessagePackage{
			Type:    pt,
			Method:  method,
			Payload: payload,
		},
	}
}

// NewBytesMessage creates a PackagePayload ChannelMessage carrying data as a google.protobuf.BytesValue.
func NewBytesMessage(sid, method string, data []byte) (*ChannelMessage, error) {
	payload, err := anypb.New(wrapperspb.Bytes(data))
	if err != nil {
		return nil, err
	}
	return NewMessage(sid, PackagePayload, method, payload), nil
}

// BytesPayload returns the data of a payload created by NewBytesMessage.
func BytesPayload(pkg *MessagePackage) ([]byte, error) {
	var value wrapperspb.BytesValue
	if err := pkg.GetPayload().UnmarshalTo(&value); err != nil {
		return nil, err
	}
	return value.GetValue(), nil
}

// MetadataEntries converts gRPC metadata into entries, ordered by key.
func MetadataEntries(md metadata.MD) []*MetadataEntry {
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]*MetadataEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, &MetadataEntry{
			Key:    k,
			Values: append([]string(nil), md[k]...),
		})
	}
	return entries
}

// MetadataFromEntries converts entries back into gRPC metadata. Keys are lower cased and repeated keys are merged.
func MetadataFromEntries(entries []*MetadataEntry) metadata.MD {
	md := metadata.MD{}
	for _, e := range entries {
		if e == nil {
			continue
		}
		md.Append(e.Key, e.Values...)
	}
	return md
}
