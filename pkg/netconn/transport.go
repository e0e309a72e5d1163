// SPDX-FileCopyrightText: 2026 Lennart Hoffmann
//
// SPDX-License-Identifier: GPL-3.0-or-later

package netconn

import "time"

// TransportType selects the underlying protocol of a connection record.
type TransportType uint

const (
	// Datagram is the UDP transport.
	Datagram TransportType = iota

	// Stream is the TCP transport.
	Stream
)

func (tt TransportType) String() string {
	switch tt {
	case Datagram:
		return "udp"
	case Stream:
		return "tcp"
	default:
		return "unknown transport"
	}
}

// transport is the per-record capability backing a connection. The Manager
// runs one state machine for all transports and dispatches the wire work to
// this interface; a datagram and a stream implementation exist.
type transport interface {
	// connect establishes the given peer. For a datagram socket this is
	// local bookkeeping and cannot fail; a stream client performs the TCP
	// handshake here.
	connect(peer Endpoint, timeout time.Duration) error

	// send writes buf to the peer and reports the bytes written, which may
	// be less than len(buf).
	send(buf []byte, timeout time.Duration) (int, error)

	// receive reads up to len(buf) bytes and reports the sender's endpoint.
	// An elapsed timeout without data is reported as ErrNoData.
	receive(buf []byte, timeout time.Duration) (int, Endpoint, error)

	// disconnect drops the peer association. A stream transport closes its
	// connection since it cannot be reused for another peer.
	disconnect() error

	// close releases all descriptors owned by this transport.
	close() error

	// localPort reports the actually bound local port, which differs from
	// the requested one if an ephemeral port was used.
	localPort() uint16
}
