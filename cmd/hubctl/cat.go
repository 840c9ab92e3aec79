// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/grpchub/grpchub-go/pkg/channel"
	"github.com/grpchub/grpchub-go/pkg/relay"
	"github.com/grpchub/grpchub-go/pkg/tlsconf"
	"github.com/grpchub/grpchub-go/pkg/tunnel"
	"github.com/grpchub/grpchub-go/pkg/wsbridge"
	"github.com/grpchub/grpchub-go/pkg/zstd"
)

// catMethod is announced by the streams opened by hubctl cat.
const catMethod = "/hubctl/Cat"

// conn is implemented by both a gRPC ChannelService_ChannelClient and a WebSocket Connector.
type conn interface {
	tunnel.Conn
	CloseSend() error
}

// startCat for the "cat" CLI option.
func startCat(args []string) {
	if len(args) != 3 && len(args) != 4 {
		printUsage()
	}

	var (
		ids  = relay.Identities{Sender: args[0], Receiver: args[1]}
		addr = args[2]
		pem  string
	)
	if len(args) == 4 {
		pem = args[3]
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c, closer, err := dial(ctx, addr, ids, pem)
	if err != nil {
		printFatal(err, "Connecting to relay errored")
	}
	defer closer()

	if err := cat(ctx, c, os.Stdin, os.Stdout); err != nil {
		printFatal(err, "Relaying errored")
	}
}

// cat sends r as one stream to the peer and prints every stream received from the peer, including the replies on
// the own stream, to w. It returns after the relay ended the connection or ctx is done.
func cat(ctx context.Context, c conn, r io.Reader, w io.Writer) error {
	manager := tunnel.NewManager(c, true)
	defer manager.Close()

	runErr := make(chan error, 1)
	go func() {
		runErr <- manager.Run()
	}()

	out := &lockedWriter{w: w}
	var printers sync.WaitGroup

	s, err := manager.Open(uuid.NewString(), catMethod)
	if err != nil {
		return err
	}
	printers.Add(1)
	go printStream(ctx, s, out, &printers)

	printers.Add(1)
	go func() {
		defer printers.Done()
		for {
			peerStream, err := manager.Accept(ctx)
			if err != nil {
				return
			}
			printers.Add(1)
			go printStream(ctx, peerStream, out, &printers)
		}
	}()

	if err := sendLines(s, r); err != nil {
		log.WithError(err).Warn("Sending errored")
	}
	if err := c.CloseSend(); err != nil {
		log.WithError(err).Debug("Closing the sending side errored")
	}

	select {
	case err = <-runErr:
	case <-ctx.Done():
		log.Info("Received interrupt signal")
		return nil
	}

	printers.Wait()
	return err
}

func dial(ctx context.Context, addr string, ids relay.Identities, pem string) (conn, func(), error) {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		c, err := wsbridge.Dial(ctx, addr, ids)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	}

	creds := insecure.NewCredentials()
	if pem != "" {
		loader, err := tlsconf.Load(pem)
		if err != nil {
			return nil, nil, err
		}

		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, nil, err
		}
		creds = credentials.NewTLS(loader.ClientConfig(host))
	}

	cc, err := grpc.NewClient(addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, nil, err
	}

	stream, err := channel.Connect(ctx, channel.NewChannelServiceClient(cc), ids.Sender, ids.Receiver,
		grpc.UseCompressor(zstd.Name))
	if err != nil {
		_ = cc.Close()
		return nil, nil, err
	}
	return stream, func() { _ = cc.Close() }, nil
}

// sendLines sends each line of r as a payload and ends the stream afterwards.
func sendLines(s *tunnel.Stream, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := append([]byte(nil), scanner.Bytes()...)
		if err := s.SendBytes(append(line, '\n')); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	return s.CloseSend()
}

// printStream writes the payloads of a stream to w until it ends. Errors are logged.
func printStream(ctx context.Context, s *tunnel.Stream, w io.Writer, wg *sync.WaitGroup) {
	defer wg.Done()

	logger := log.WithFields(log.Fields{
		"sid":    s.Sid(),
		"method": s.Method(),
	})

	for {
		data, err := s.RecvBytes(ctx)
		if errors.Is(err, io.EOF) {
			logger.Debug("Stream ended")
			return
		} else if st, ok := status.FromError(err); ok && err != nil {
			logger.WithFields(log.Fields{
				"code":    st.Code(),
				"message": st.Message(),
			}).Error("Received error")
			return
		} else if err != nil {
			logger.WithError(err).Warn("Receiving errored")
			return
		}

		_, _ = fmt.Fprint(w, string(data))
	}
}

type lockedWriter struct {
	mutex sync.Mutex
	w     io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mutex.Lock()
	defer lw.mutex.Unlock()

	return lw.w.Write(p)
}
