// SPDX-FileCopyrightText: 2026 Lennart Hoffmann
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package netconn provides a connection-handle abstraction over datagram
// (UDP) and stream (TCP) transports. A Manager owns a fixed-capacity table of
// connection records, identified by monotonically assigned integer handles,
// and exposes the per-connection lifecycle as six blocking operations: Init,
// Connect, Send, Receive, Disconnect and Free.
//
//	m := netconn.NewManager()
//
//	server, err := m.Init(netconn.Datagram, 4556, true)
//	// the server waits for its first peer; receiving adopts the sender
//	n, err := m.Receive(server, buf)
//
//	client, err := m.Init(netconn.Datagram, 0, false)
//	err = m.Connect(client, netconn.MustEndpointFrom(net.IPv4(127, 0, 0, 1), 4556))
//	n, err := m.Send(client, []byte("hello world!"))
//
// All operations block the calling goroutine for up to the configured
// timeout. Calling an operation on an invalid handle or in the wrong state is
// a programming error and panics with a ContractViolation; transport failures
// are returned as errors.
package netconn
