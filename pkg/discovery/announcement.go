// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package discovery

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dtn7/cboring"
)

// Service of a relay which might be announced.
type Service uint64

const (
	// GRPC is the bidirectional gRPC Channel service.
	GRPC Service = 0

	// WebSocket is the WebSocket bridge.
	WebSocket Service = 1

	// Admin is the admin HTTP API.
	Admin Service = 2

	serviceEnd
)

// CheckValid returns an error for unknown Services.
func (s Service) CheckValid() error {
	if s >= serviceEnd {
		return fmt.Errorf("unknown service %d", uint64(s))
	}
	return nil
}

func (s Service) String() string {
	switch s {
	case GRPC:
		return "grpc"
	case WebSocket:
		return "websocket"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

// Announcement of some relay's listener.
type Announcement struct {
	Service Service
	Relay   string
	Port    uint
}

// UnmarshalAnnouncements creates a new array of Announcement based on a CBOR byte string.
func UnmarshalAnnouncements(data []byte) (announcements []Announcement, err error) {
	buff := bytes.NewBuffer(data)

	if l, cErr := cboring.ReadArrayLength(buff); cErr != nil {
		err = cErr
		return
	} else {
		announcements = make([]Announcement, l)
	}

	for i := 0; i < len(announcements); i++ {
		if cErr := cboring.Unmarshal(&announcements[i], buff); cErr != nil {
			err = fmt.Errorf("unmarshalling Announcement %d failed: %v", i, cErr)
			return
		}
	}

	return
}

// MarshalAnnouncements into a CBOR byte string.
func MarshalAnnouncements(announcements []Announcement) (data []byte, err error) {
	buff := new(bytes.Buffer)

	if cErr := cboring.WriteArrayLength(uint64(len(announcements)), buff); cErr != nil {
		err = cErr
		return
	}

	for i := range announcements {
		if cErr := cboring.Marshal(&announcements[i], buff); cErr != nil {
			err = fmt.Errorf("marshalling Announcement %d (%v) failed: %v", i, announcements[i], cErr)
			return
		}
	}

	data = buff.Bytes()
	return
}

// MarshalCbor creates a CBOR representation for an Announcement.
func (announcement *Announcement) MarshalCbor(w io.Writer) error {
	if err := cboring.WriteArrayLength(3, w); err != nil {
		return err
	}

	if err := cboring.WriteUInt(uint64(announcement.Service), w); err != nil {
		return err
	}
	if err := cboring.WriteByteString([]byte(announcement.Relay), w); err != nil {
		return fmt.Errorf("marshalling relay name failed: %v", err)
	}
	if err := cboring.WriteUInt(uint64(announcement.Port), w); err != nil {
		return err
	}

	return nil
}

// UnmarshalCbor creates an Announcement from its CBOR representation.
func (announcement *Announcement) UnmarshalCbor(r io.Reader) error {
	if l, err := cboring.ReadArrayLength(r); err != nil {
		return err
	} else if l != 3 {
		return fmt.Errorf("wrong array length: %d instead of 3", l)
	}

	if n, err := cboring.ReadUInt(r); err != nil {
		return err
	} else if service := Service(n); service.CheckValid() != nil {
		return service.CheckValid()
	} else {
		announcement.Service = service
	}
	if relay, err := cboring.ReadByteString(r); err != nil {
		return fmt.Errorf("unmarshalling relay name failed: %v", err)
	} else {
		announcement.Relay = string(relay)
	}
	if n, err := cboring.ReadUInt(r); err != nil {
		return err
	} else if n > 0xffff {
		return fmt.Errorf("port %d exceeds range", n)
	} else {
		announcement.Port = uint(n)
	}

	return nil
}

func (announcement Announcement) String() string {
	return fmt.Sprintf("Announcement(%v,%s,%d)", announcement.Service, announcement.Relay, announcement.Port)
}
