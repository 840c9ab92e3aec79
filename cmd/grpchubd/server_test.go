// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	reflectionpb "google.golang.org/grpc/reflection/grpc_reflection_v1"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/grpchub/grpchub-go/pkg/channel"
	"github.com/grpchub/grpchub-go/pkg/zstd"
)

func TestDaemon(t *testing.T) {
	conf := tomlConfig{
		Relay:     relayConf{Name: "test", Listen: "127.0.0.1:0"},
		WebSocket: webSocketConf{Listen: "127.0.0.1:0", Path: "/ws"},
		Admin:     adminConf{Listen: "127.0.0.1:0"},
		Metrics:   metricsConf{Enabled: true},
	}
	require.NoError(t, conf.validate())

	d, err := newDaemon(conf)
	require.NoError(t, err)
	require.Len(t, d.httpServers, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		runErr <- d.run(ctx)
	}()

	conn, err := grpc.NewClient(d.grpcListener.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	callCtx, callCancel := context.WithTimeout(ctx, 5*time.Second)
	defer callCancel()

	// health
	resp, err := healthpb.NewHealthClient(conn).Check(callCtx, &healthpb.HealthCheckRequest{Service: channel.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	// reflection serves the generated descriptor
	refl, err := reflectionpb.NewServerReflectionClient(conn).ServerReflectionInfo(callCtx)
	require.NoError(t, err)
	require.NoError(t, refl.Send(&reflectionpb.ServerReflectionRequest{
		MessageRequest: &reflectionpb.ServerReflectionRequest_FileContainingSymbol{FileContainingSymbol: channel.ServiceName},
	}))
	reflResp, err := refl.Recv()
	require.NoError(t, err)
	files := reflResp.GetFileDescriptorResponse().GetFileDescriptorProto()
	require.NotEmpty(t, files)
	var fd descriptorpb.FileDescriptorProto
	require.NoError(t, proto.Unmarshal(files[0], &fd))
	assert.Equal(t, "channel/v1/channel.proto", fd.GetName())
	require.Len(t, fd.GetService(), 1)
	assert.Equal(t, "ChannelService", fd.GetService()[0].GetName())
	require.NoError(t, refl.CloseSend())

	// relay, zstd compressed
	stream, err := channel.Connect(callCtx, channel.NewChannelServiceClient(conn), "alice", "bob",
		grpc.UseCompressor(zstd.Name))
	require.NoError(t, err)
	require.NoError(t, stream.Send(channel.NewMessage("s1", channel.PackageHeader, "/svc/Call", nil)))

	msg, err := stream.Recv()
	require.NoError(t, err)
	st, err := channel.ErrorStatus(msg.GetPkg())
	require.NoError(t, err)
	assert.Equal(t, codes.Unavailable, st.Code())

	_, err = stream.Recv()
	assert.ErrorIs(t, err, io.EOF)

	// admin API and metrics
	httpAddr := d.httpListeners[0].Addr().String()
	for _, path := range []string{"/status", "/endpoints", "/metrics"} {
		httpResp, err := http.Get(fmt.Sprintf("http://%s%s", httpAddr, path))
		require.NoError(t, err)
		_ = httpResp.Body.Close()
		assert.Equal(t, http.StatusOK, httpResp.StatusCode, path)
	}

	require.NoError(t, conn.Close())

	cancel()
	select {
	case err := <-runErr:
		assert.NoError(t, err)
	case <-time.After(2 * shutdownTimeout):
		t.Fatal("daemon did not shut down")
	}
}
