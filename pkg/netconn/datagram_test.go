// SPDX-FileCopyrightText: 2026 Lennart Hoffmann
//
// SPDX-License-Identifier: GPL-3.0-or-later

package netconn

import (
	"bytes"
	"net"
	"testing"
	"time"
)

func TestDatagramRoundTrip(t *testing.T) {
	m := NewManagerWith(4, time.Second)

	server, err := m.Init(Datagram, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	serverPort := m.LocalPort(server)

	client, err := m.Init(Datagram, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Connect(client, MustEndpointFrom(net.IPv4(127, 0, 0, 1), serverPort)); err != nil {
		t.Fatal(err)
	}

	// The server stays disconnected until its first successful receive.
	if state := m.State(server); state != StateDisconnected {
		t.Fatalf("server is %v before its first receive", state)
	}

	payload := []byte("hello world!")

	type recvResult struct {
		n   int
		buf []byte
		err error
	}
	resultChan := make(chan recvResult)

	go func() {
		buf := make([]byte, 64)
		n, err := m.Receive(server, buf)
		resultChan <- recvResult{n: n, buf: buf, err: err}
	}()

	if n, err := m.Send(client, payload); err != nil {
		t.Fatal(err)
	} else if n != len(payload) {
		t.Fatalf("sent %d bytes, not %d", n, len(payload))
	}

	result := <-resultChan
	if result.err != nil {
		t.Fatal(result.err)
	}
	if result.n != len(payload) || !bytes.Equal(result.buf[:result.n], payload) {
		t.Fatalf("received %q, not %q", result.buf[:result.n], payload)
	}

	// Lazy peer binding: the sender is now the server's peer.
	if state := m.State(server); state != StateConnected {
		t.Fatalf("server is %v after its first receive", state)
	}
	if peer := m.Peer(server); peer.Port != m.LocalPort(client) {
		t.Fatalf("server's peer port is %d, the client's local port is %d",
			peer.Port, m.LocalPort(client))
	}

	// The bound peer makes the server's send path usable.
	if _, err := m.Send(server, []byte("ack")); err != nil {
		t.Fatal(err)
	}

	buf := make([]byte, 64)
	if n, err := m.Receive(client, buf); err != nil {
		t.Fatal(err)
	} else if string(buf[:n]) != "ack" {
		t.Fatalf("client received %q, not \"ack\"", buf[:n])
	}

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestDatagramBindConflict(t *testing.T) {
	m := NewManagerWith(4, 500*time.Millisecond)

	first, err := m.Init(Datagram, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	port := m.LocalPort(first)

	if _, err := m.Init(Datagram, port, true); err == nil {
		t.Fatalf("binding port %d twice did not fail", port)
	}

	// The conflicting init must not corrupt the first record.
	if state := m.State(first); state != StateDisconnected {
		t.Fatalf("first record is %v after the bind conflict", state)
	}
	if got := m.LocalPort(first); got != port {
		t.Fatalf("first record's port changed from %d to %d", port, got)
	}

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestDatagramReceiveTimeout(t *testing.T) {
	const timeout = 250 * time.Millisecond

	m := NewManagerWith(2, timeout)

	server, err := m.Init(Datagram, 0, true)
	if err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	_, err = m.Receive(server, make([]byte, 16))
	elapsed := time.Since(start)

	if err != ErrNoData {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if elapsed < timeout-50*time.Millisecond {
		t.Fatalf("receive returned after %v, before the %v timeout", elapsed, timeout)
	}
	if elapsed > 10*timeout {
		t.Fatalf("receive blocked for %v, far beyond the %v timeout", elapsed, timeout)
	}

	if state := m.State(server); state != StateDisconnected {
		t.Fatalf("server is %v after a timed-out receive", state)
	}

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestDatagramDisconnectRebind(t *testing.T) {
	m := NewManagerWith(4, time.Second)

	server, err := m.Init(Datagram, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	serverPort := m.LocalPort(server)

	sendFrom := func() uint16 {
		client, err := m.Init(Datagram, 0, false)
		if err != nil {
			t.Fatal(err)
		}
		if err := m.Connect(client, MustEndpointFrom(net.IPv4(127, 0, 0, 1), serverPort)); err != nil {
			t.Fatal(err)
		}
		if _, err := m.Send(client, []byte("ping")); err != nil {
			t.Fatal(err)
		}
		return m.LocalPort(client)
	}

	firstPort := sendFrom()
	if _, err := m.Receive(server, make([]byte, 16)); err != nil {
		t.Fatal(err)
	}
	if peer := m.Peer(server); peer.Port != firstPort {
		t.Fatalf("server adopted port %d, not %d", peer.Port, firstPort)
	}

	// After a disconnect the server may adopt another peer.
	if err := m.Disconnect(server); err != nil {
		t.Fatal(err)
	}

	secondPort := sendFrom()
	if _, err := m.Receive(server, make([]byte, 16)); err != nil {
		t.Fatal(err)
	}
	if peer := m.Peer(server); peer.Port != secondPort {
		t.Fatalf("server adopted port %d, not %d", peer.Port, secondPort)
	}

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
}
