// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/dynamicpb"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func newTestMessage(t *testing.T) *ChannelMessage {
	payload, err := anypb.New(wrapperspb.String("hello world"))
	require.NoError(t, err)

	return &ChannelMessage{
		Sid: "23",
		Pkg: &MessagePackage{
			Type:    PackagePayload,
			Method:  "/test.TestService/Echo",
			Payload: payload,
			Md: []*MetadataEntry{
				{Key: "authorization", Values: []string{"bearer foo"}},
				{Key: "x-trace", Values: []string{"a", "b"}},
			},
		},
	}
}

func TestFileDescriptorRegistered(t *testing.T) {
	fd, err := protoregistry.GlobalFiles.FindFileByPath("channel/v1/channel.proto")
	require.NoError(t, err)
	assert.Equal(t, File_channel_v1_channel_proto, fd)

	svc := fd.Services().ByName("ChannelService")
	require.NotNil(t, svc)
	assert.Equal(t, ServiceName, string(svc.FullName()))

	method := svc.Methods().ByName("Channel")
	require.NotNil(t, method)
	assert.True(t, method.IsStreamingClient())
	assert.True(t, method.IsStreamingServer())
	assert.Equal(t, "/"+ServiceName+"/Channel", ChannelService_Channel_FullMethodName)
}

func TestChannelMessageWireFormat(t *testing.T) {
	raw, err := proto.Marshal(&ChannelMessage{Sid: "7", Pkg: &MessagePackage{Type: PackageHello, Method: "/a/B"}})
	require.NoError(t, err)

	expected := []byte{
		0x0a, 0x01, '7', // sid
		0x12, 0x08, // pkg
		0x08, 0x01, // type
		0x12, 0x04, '/', 'a', '/', 'B', // method
	}
	assert.Equal(t, expected, raw)
}

func TestChannelMessageDynamic(t *testing.T) {
	msgDesc := File_channel_v1_channel_proto.Messages().ByName("ChannelMessage")
	require.NotNil(t, msgDesc)

	msg := newTestMessage(t)
	raw, err := proto.Marshal(msg)
	require.NoError(t, err)

	dyn := dynamicpb.NewMessage(msgDesc)
	require.NoError(t, proto.Unmarshal(raw, dyn))

	assert.Equal(t, "23", dyn.Get(msgDesc.Fields().ByName("sid")).String())

	pkg := dyn.Get(msgDesc.Fields().ByName("pkg")).Message()
	pkgFields := pkg.Descriptor().Fields()
	assert.EqualValues(t, PackagePayload, pkg.Get(pkgFields.ByName("type")).Enum())
	assert.Equal(t, "/test.TestService/Echo", pkg.Get(pkgFields.ByName("method")).String())
	assert.Equal(t, 2, pkg.Get(pkgFields.ByName("md")).List().Len())

	dynRaw, err := proto.Marshal(dyn)
	require.NoError(t, err)

	var back ChannelMessage
	require.NoError(t, proto.Unmarshal(dynRaw, &back))
	assert.True(t, proto.Equal(msg, &back))
}

func TestChannelMessageKeepsUnknownFields(t *testing.T) {
	raw, err := proto.Marshal(newTestMessage(t))
	require.NoError(t, err)

	raw = protowire.AppendTag(raw, 15, protowire.VarintType)
	raw = protowire.AppendVarint(raw, 1337)

	var msg ChannelMessage
	require.NoError(t, proto.Unmarshal(raw, &msg))
	assert.NotEmpty(t, msg.ProtoReflect().GetUnknown())

	out, err := proto.Marshal(&msg)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestChannelMessageUnmarshalTruncated(t *testing.T) {
	raw, err := proto.Marshal(newTestMessage(t))
	require.NoError(t, err)

	var msg ChannelMessage
	assert.Error(t, proto.Unmarshal(raw[:len(raw)-1], &msg))
}

func TestChannelMessageEmpty(t *testing.T) {
	raw, err := proto.Marshal(&ChannelMessage{})
	require.NoError(t, err)
	assert.Empty(t, raw)

	var msg ChannelMessage
	require.NoError(t, proto.Unmarshal(nil, &msg))
	assert.Nil(t, msg.Pkg)
	assert.Equal(t, PackageUnknown, msg.Type())
}

func TestPackageTypeUnknownValue(t *testing.T) {
	raw, err := proto.Marshal(&MessagePackage{Type: PackageType(-1)})
	require.NoError(t, err)

	var pkg MessagePackage
	require.NoError(t, proto.Unmarshal(raw, &pkg))
	assert.Equal(t, PackageType(-1), pkg.Type)
	assert.Equal(t, KindUnknown, pkg.Type.Kind())
}
