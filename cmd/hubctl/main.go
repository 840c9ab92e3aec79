// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// hubctl is a command line client for grpchubd.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

// printUsage of hubctl and exit with an error code afterwards.
func printUsage() {
	_, _ = fmt.Fprintf(os.Stderr, "Usage of %s cat|endpoints|discover:\n\n", os.Args[0])

	_, _ = fmt.Fprintf(os.Stderr, "%s cat sender receiver address [pem]\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "  Connects to the relay at address as sender, talking to receiver. Each line of\n")
	_, _ = fmt.Fprintf(os.Stderr, "  stdin is sent as a payload, received payloads are printed to stdout. The address\n")
	_, _ = fmt.Fprintf(os.Stderr, "  is either host:port for gRPC or a ws:// URL for the WebSocket bridge. An optional\n")
	_, _ = fmt.Fprintf(os.Stderr, "  PEM file enables mutual TLS for gRPC.\n\n")

	_, _ = fmt.Fprintf(os.Stderr, "%s endpoints admin-url\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "  Lists the registered endpoints of the relay's admin API, e.g., http://localhost:8081.\n\n")

	_, _ = fmt.Fprintf(os.Stderr, "%s discover [seconds]\n", os.Args[0])
	_, _ = fmt.Fprintf(os.Stderr, "  Listens for relay announcements in the local network, default for 10 seconds.\n\n")

	os.Exit(1)
}

// printFatal of an error with a short context description and exits afterwards.
func printFatal(err error, msg string) {
	log.WithError(err).Fatal(msg)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
	}

	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	if lvl, err := log.ParseLevel(os.Getenv("HUBCTL_LOG")); err == nil {
		log.SetLevel(lvl)
	}

	switch os.Args[1] {
	case "cat":
		startCat(os.Args[2:])

	case "endpoints":
		listEndpoints(os.Args[2:])

	case "discover":
		discoverRelays(os.Args[2:])

	default:
		printUsage()
	}
}
