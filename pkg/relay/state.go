// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package relay

import "errors"

// State of a forwarding task. A task only moves forward, ending in Terminating.
type State int

const (
	// Registering creates and registers the connection's Queue.
	Registering State = iota

	// Forwarding reads inbound envelopes and hands them to the receiver's Queue.
	Forwarding

	// Terminating releases the registration and closes the Queue.
	Terminating
)

func (s State) String() string {
	switch s {
	case Registering:
		return "registering"
	case Forwarding:
		return "forwarding"
	case Terminating:
		return "terminating"
	default:
		return "INVALID"
	}
}

// Next enters the following State or errors if there is no next state.
func (s *State) Next() error {
	if *s == Terminating {
		return errors.New("there is no state after terminating")
	}

	*s += 1
	return nil
}
