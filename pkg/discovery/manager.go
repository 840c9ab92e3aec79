// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package discovery

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/hashicorp/go-multierror"
	"github.com/schollz/peerdiscovery"
)

// Peer is an Announcement received from some address.
type Peer struct {
	Announcement
	Address string
}

// Addr to connect to the announced listener.
func (p Peer) Addr() string {
	return fmt.Sprintf("%s:%d", p.Address, p.Port)
}

// Manager publishes Announcements of this relay and receives those of other relays.
type Manager struct {
	Relay      string
	NotifyFunc func(Peer)

	stopChan4 chan struct{}
	stopChan6 chan struct{}
}

// NewManager for Announcements will be created and started. The optional notify function is called for each
// Announcement of another relay.
func NewManager(
	relay string, notify func(Peer),
	announcements []Announcement, announcementInterval time.Duration,
	ipv4, ipv6 bool) (*Manager, error) {

	var manager = &Manager{
		Relay:      relay,
		NotifyFunc: notify,
	}
	if ipv4 {
		manager.stopChan4 = make(chan struct{})
	}
	if ipv6 {
		manager.stopChan6 = make(chan struct{})
	}

	log.WithFields(log.Fields{
		"interval":      announcementInterval,
		"IPv4":          ipv4,
		"IPv6":          ipv6,
		"announcements": announcements,
	}).Info("Starting discovery Manager")

	msg, err := MarshalAnnouncements(announcements)
	if err != nil {
		return nil, err
	}

	for _, set := range manager.settings(msg, announcementInterval, -1, ipv4, ipv6) {
		set := set

		discoverErrChan := make(chan error)
		go func() {
			_, discoverErr := peerdiscovery.Discover(set)
			discoverErrChan <- discoverErr
		}()

		select {
		case discoverErr := <-discoverErrChan:
			if discoverErr != nil {
				return nil, discoverErr
			}

		case <-time.After(time.Second):
			break
		}
	}

	return manager, nil
}

func (manager *Manager) settings(payload []byte, delay, timeLimit time.Duration, ipv4, ipv6 bool) (sets []peerdiscovery.Settings) {
	candidates := []struct {
		active           bool
		multicastAddress string
		stopChan         chan struct{}
		ipVersion        peerdiscovery.IPVersion
		notify           func(discovered peerdiscovery.Discovered)
	}{
		{ipv4, address4, manager.stopChan4, peerdiscovery.IPv4, manager.notify},
		{ipv6, address6, manager.stopChan6, peerdiscovery.IPv6, manager.notify6},
	}

	for _, c := range candidates {
		if !c.active {
			continue
		}

		sets = append(sets, peerdiscovery.Settings{
			Limit:            -1,
			Port:             fmt.Sprintf("%d", port),
			MulticastAddress: c.multicastAddress,
			Payload:          payload,
			Delay:            delay,
			TimeLimit:        timeLimit,
			StopChan:         c.stopChan,
			AllowSelf:        true,
			IPVersion:        c.ipVersion,
			Notify:           c.notify,
		})
	}
	return
}

func (manager *Manager) notify6(discovered peerdiscovery.Discovered) {
	discovered.Address = fmt.Sprintf("[%s]", discovered.Address)

	manager.notify(discovered)
}

func (manager *Manager) notify(discovered peerdiscovery.Discovered) {
	announcements, err := UnmarshalAnnouncements(discovered.Payload)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"discovery": manager.Relay,
			"peer":      discovered.Address,
		}).Warn("Peer discovery failed to parse incoming package")

		return
	}

	for _, announcement := range announcements {
		manager.handleDiscovery(Peer{Announcement: announcement, Address: discovered.Address})
	}
}

func (manager *Manager) handleDiscovery(peer Peer) {
	log.WithFields(log.Fields{
		"discovery": manager.Relay,
		"peer":      peer.Address,
		"message":   peer.Announcement,
	}).Debug("Peer discovery received a message")

	if peer.Relay == manager.Relay || manager.NotifyFunc == nil {
		return
	}

	manager.NotifyFunc(peer)
}

// Close this Manager.
func (manager *Manager) Close() {
	for _, c := range []chan struct{}{manager.stopChan4, manager.stopChan6} {
		if c != nil {
			c <- struct{}{}
		}
	}
}

// discoverFunc performs one blocking peer discovery.
var discoverFunc = peerdiscovery.Discover

// Discover listens for Announcements for the given duration and returns all announced listeners. IPv4 and IPv6 are
// searched at the same time; a failing address family is logged and only results in an error if no search succeeded.
func Discover(timeout time.Duration, ipv4, ipv6 bool) (peers []Peer, err error) {
	msg, err := MarshalAnnouncements(nil)
	if err != nil {
		return
	}

	sets := (&Manager{}).settings(msg, time.Second, timeout, ipv4, ipv6)
	results := make([][]Peer, len(sets))
	errs := make([]error, len(sets))

	var wg sync.WaitGroup
	wg.Add(len(sets))
	for i := range sets {
		go func(i int) {
			defer wg.Done()

			set := sets[i]
			set.Notify = nil

			discovered, discoverErr := discoverFunc(set)
			if discoverErr != nil {
				errs[i] = fmt.Errorf("IPv%d discovery: %w", set.IPVersion, discoverErr)
				return
			}
			results[i] = discoveredPeers(set.IPVersion, discovered)
		}(i)
	}
	wg.Wait()

	var failed *multierror.Error
	for i := range sets {
		if errs[i] != nil {
			log.WithError(errs[i]).Warn("Peer discovery errored")
			failed = multierror.Append(failed, errs[i])
			continue
		}
		peers = append(peers, results[i]...)
	}

	if failed != nil && len(failed.Errors) == len(sets) {
		err = failed.ErrorOrNil()
	}
	return
}

func discoveredPeers(version peerdiscovery.IPVersion, discovered []peerdiscovery.Discovered) (peers []Peer) {
	for _, d := range discovered {
		address := d.Address
		if version == peerdiscovery.IPv6 {
			address = fmt.Sprintf("[%s]", address)
		}

		announcements, parseErr := UnmarshalAnnouncements(d.Payload)
		if parseErr != nil {
			log.WithError(parseErr).WithField("peer", address).Warn("Peer discovery failed to parse incoming package")
			continue
		}

		for _, announcement := range announcements {
			peers = append(peers, Peer{Announcement: announcement, Address: address})
		}
	}
	return
}
