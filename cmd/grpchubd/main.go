// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// grpchubd is the relay daemon. It is configured by a single TOML file, passed as its only argument.
package main

import (
	"context"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"

	"github.com/pkg/profile"
)

// waitSigint blocks the current thread until a SIGINT appears.
func waitSigint() {
	signalSyn := make(chan os.Signal, 1)
	signalAck := make(chan struct{})

	signal.Notify(signalSyn, os.Interrupt)

	go func() {
		<-signalSyn
		close(signalAck)
	}()

	<-signalAck
}

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("Usage: %s configuration.toml", os.Args[0])
	}

	conf, err := parseConfig(os.Args[1])
	if err != nil {
		log.WithError(err).Fatal("Failed to parse config")
	}

	if conf.Profiling {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	d, err := newDaemon(conf)
	if err != nil {
		log.WithError(err).Error("Failed to start grpchubd")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		waitSigint()
		log.Info("Shutting down..")
		cancel()
	}()

	if err := d.run(ctx); err != nil {
		log.WithError(err).Error("grpchubd errored")
	}
}
