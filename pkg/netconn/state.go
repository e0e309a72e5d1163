// SPDX-FileCopyrightText: 2026 Lennart Hoffmann
//
// SPDX-License-Identifier: GPL-3.0-or-later

package netconn

// ConnState describes the lifecycle position of a connection record.
type ConnState uint

const (
	// StateUninitialized marks a slot which was never used or whose record
	// was freed again. No operation except Init may touch such a slot.
	StateUninitialized ConnState = iota

	// StateDisconnected marks a record owning an open descriptor without a
	// peer association.
	StateDisconnected

	// StateConnected marks a record with an established peer endpoint.
	StateConnected
)

func (cs ConnState) String() string {
	switch cs {
	case StateUninitialized:
		return "uninitialized"
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	default:
		return "unknown state"
	}
}
