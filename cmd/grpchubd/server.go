// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/gorilla/mux"
	"go.opencensus.io/plugin/ocgrpc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/grpchub/grpchub-go/pkg/admin"
	"github.com/grpchub/grpchub-go/pkg/channel"
	"github.com/grpchub/grpchub-go/pkg/discovery"
	"github.com/grpchub/grpchub-go/pkg/metrics"
	"github.com/grpchub/grpchub-go/pkg/relay"
	"github.com/grpchub/grpchub-go/pkg/tlsconf"
	"github.com/grpchub/grpchub-go/pkg/wsbridge"

	// registers the zstd compressor
	_ "github.com/grpchub/grpchub-go/pkg/zstd"
)

const shutdownTimeout = 5 * time.Second

// daemon bundles all services of a running grpchubd.
type daemon struct {
	conf tomlConfig
	hub  *relay.Hub

	grpcServer   *grpc.Server
	grpcListener net.Listener
	health       *health.Server

	httpServers   []*http.Server
	httpListeners []net.Listener

	tls       *tlsconf.Loader
	exporter  *metrics.Exporter
	discovery *discovery.Manager
}

// newDaemon creates and binds all configured services. They start serving by run.
func newDaemon(conf tomlConfig) (d *daemon, err error) {
	d = &daemon{
		conf: conf,
		hub:  relay.NewHub(relay.NewRegistry(), conf.Relay.QueueSize),
	}
	defer func() {
		if err != nil {
			d.close()
			d = nil
		}
	}()

	var opts []grpc.ServerOption

	if conf.Metrics.Enabled {
		if err = metrics.Register(); err != nil {
			return
		}
		if d.exporter, err = metrics.NewExporter(conf.Metrics.Prefix); err != nil {
			return
		}
		opts = append(opts, grpc.StatsHandler(&ocgrpc.ServerHandler{}))
	}

	if conf.TLS.Pem != "" {
		if d.tls, err = tlsconf.Load(conf.TLS.Pem); err != nil {
			return
		}
		if conf.TLS.Watch {
			if err = d.tls.Watch(); err != nil {
				return
			}
		}
		opts = append(opts, grpc.Creds(credentials.NewTLS(d.tls.ServerConfig(conf.TLS.ClientAuth))))
	}

	d.grpcServer = grpc.NewServer(opts...)
	channel.RegisterChannelServiceServer(d.grpcServer, d.hub)

	d.health = health.NewServer()
	d.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	d.health.SetServingStatus(channel.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(d.grpcServer, d.health)

	reflection.Register(d.grpcServer)

	if d.grpcListener, err = net.Listen("tcp", conf.Relay.Listen); err != nil {
		return
	}

	if err = d.bindHttp(); err != nil {
		return
	}

	if conf.Discovery.IPv4 || conf.Discovery.IPv6 {
		err = d.startDiscovery()
	}
	return
}

// bindHttp creates the HTTP servers for the WebSocket bridge and the admin API, sharing one if both listen on the
// same address.
func (d *daemon) bindHttp() error {
	routers := make(map[string]*mux.Router)
	router := func(listen string) *mux.Router {
		if r, ok := routers[listen]; ok {
			return r
		}
		r := mux.NewRouter()
		routers[listen] = r
		return r
	}

	if d.conf.Admin.Listen != "" {
		var metricsHandler http.Handler
		if d.exporter != nil {
			metricsHandler = d.exporter
		}
		admin.NewAPI(router(d.conf.Admin.Listen), d.hub.Registry(), metricsHandler)
	}

	if d.conf.WebSocket.Listen != "" {
		router(d.conf.WebSocket.Listen).Handle(d.conf.WebSocket.Path, wsbridge.NewBridge(d.hub))
	}

	for listen, r := range routers {
		l, err := net.Listen("tcp", listen)
		if err != nil {
			return err
		}

		d.httpListeners = append(d.httpListeners, l)
		d.httpServers = append(d.httpServers, &http.Server{
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		})
	}
	return nil
}

func (d *daemon) startDiscovery() (err error) {
	var announcements []discovery.Announcement

	services := []struct {
		service discovery.Service
		listen  string
	}{
		{discovery.GRPC, d.conf.Relay.Listen},
		{discovery.WebSocket, d.conf.WebSocket.Listen},
		{discovery.Admin, d.conf.Admin.Listen},
	}
	for _, s := range services {
		if s.listen == "" {
			continue
		}

		port, portErr := parseListenPort(s.listen)
		if portErr != nil {
			return portErr
		}
		announcements = append(announcements, discovery.Announcement{
			Service: s.service,
			Relay:   d.conf.Relay.Name,
			Port:    uint(port),
		})
	}

	d.discovery, err = discovery.NewManager(
		d.conf.Relay.Name,
		func(peer discovery.Peer) {
			log.WithFields(log.Fields{
				"relay":   peer.Relay,
				"service": peer.Service,
				"address": peer.Addr(),
			}).Info("Discovered another relay")
		},
		announcements, time.Duration(d.conf.Discovery.Interval)*time.Second,
		d.conf.Discovery.IPv4, d.conf.Discovery.IPv6)
	return
}

// run all services until the context is canceled or one of them fails.
func (d *daemon) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("listen", d.grpcListener.Addr()).Info("Serving gRPC relay")
		return d.grpcServer.Serve(d.grpcListener)
	})

	for i := range d.httpServers {
		srv, l := d.httpServers[i], d.httpListeners[i]
		g.Go(func() error {
			log.WithField("listen", l.Addr()).Info("Serving HTTP")
			if err := srv.Serve(l); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		d.close()
		return nil
	})

	return g.Wait()
}

// close all services. Open streams are canceled after the shutdown timeout.
func (d *daemon) close() {
	if d.health != nil {
		d.health.Shutdown()
	}

	if d.grpcServer != nil {
		stopped := make(chan struct{})
		go func() {
			d.grpcServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopped:
		case <-time.After(shutdownTimeout):
			log.Warn("Graceful shutdown timed out, canceling open streams")
			d.grpcServer.Stop()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range d.httpServers {
		if err := srv.Shutdown(ctx); err != nil {
			log.WithError(err).Warn("Shutting down HTTP server errored")
		}
	}

	// Listeners are only closed by the servers if they were served.
	for _, l := range append(d.httpListeners, d.grpcListener) {
		if l != nil {
			_ = l.Close()
		}
	}

	if d.discovery != nil {
		d.discovery.Close()
	}
	if d.tls != nil {
		if err := d.tls.Close(); err != nil {
			log.WithError(err).Warn("Closing TLS watcher errored")
		}
	}
	if d.exporter != nil {
		_ = d.exporter.Close()
	}
}
