// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/grpchub/grpchub-go/pkg/discovery"
)

// discoverRelays for the "discover" CLI option.
func discoverRelays(args []string) {
	timeout := 10 * time.Second

	switch len(args) {
	case 0:
	case 1:
		seconds, err := strconv.Atoi(args[0])
		if err != nil || seconds <= 0 {
			printUsage()
		}
		timeout = time.Duration(seconds) * time.Second
	default:
		printUsage()
	}

	peers, err := discovery.Discover(timeout, true, true)
	if err != nil {
		printFatal(err, "Discovering relays errored")
	}

	for _, peer := range peers {
		fmt.Printf("%s\t%v\t%s\n", peer.Relay, peer.Service, peer.Addr())
	}
}
