// SPDX-FileCopyrightText: 2025 The grpchub Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package channel

// Short names of the PackageType values.
const (
	PackageUnknown = PackageType_PT_UNKNOWN
	PackageHello   = PackageType_PT_HELLO
	PackageHeader  = PackageType_PT_HEADER
	PackagePayload = PackageType_PT_PAYLOAD
	PackageTrailer = PackageType_PT_TRAILER
	PackageClose   = PackageType_PT_CLOSE
	PackageError   = PackageType_PT_ERROR
)

// Kind of this PackageType. Unknown type codes are KindUnknown.
func (x PackageType) Kind() Kind {
	switch x {
	case PackageHeader, PackagePayload, PackageTrailer:
		return KindData
	case PackageHello, PackageClose:
		return KindControl
	case PackageError:
		return KindError
	default:
		return KindUnknown
	}
}

// Kind is the closed set of variants a MessagePackage can be.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindData
	KindControl
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindControl:
		return "control"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Type of the contained MessagePackage, PackageUnknown if there is none.
func (x *ChannelMessage) Type() PackageType {
	return x.GetPkg().GetType()
}
