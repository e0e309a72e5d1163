// SPDX-FileCopyrightText: 2026 Lennart Hoffmann
//
// SPDX-License-Identifier: GPL-3.0-or-later

package netconn

import (
	"errors"
	"net"
	"testing"
	"time"
)

// expectViolation runs f and fails the test unless f panics with a
// ContractViolation.
func expectViolation(t *testing.T, op string, f func()) {
	t.Helper()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("%s: expected a contract violation panic", op)
		}
		if _, ok := r.(ContractViolation); !ok {
			t.Fatalf("%s: panic value %v is no ContractViolation", op, r)
		}
	}()

	f()
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManagerWith(4, 500*time.Millisecond)

	handle, err := m.Init(Datagram, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if state := m.State(handle); state != StateDisconnected {
		t.Fatalf("state after init is %v, not disconnected", state)
	}

	peer := MustEndpointFrom(net.IPv4(127, 0, 0, 1), 4556)
	if err := m.Connect(handle, peer); err != nil {
		t.Fatal(err)
	}
	if state := m.State(handle); state != StateConnected {
		t.Fatalf("state after connect is %v, not connected", state)
	}
	if got := m.Peer(handle); got != peer {
		t.Fatalf("peer is %v, not %v", got, peer)
	}

	if err := m.Disconnect(handle); err != nil {
		t.Fatal(err)
	}
	if state := m.State(handle); state != StateDisconnected {
		t.Fatalf("state after disconnect is %v, not disconnected", state)
	}

	if err := m.Free(handle); err != nil {
		t.Fatal(err)
	}
	if state := m.State(handle); state != StateUninitialized {
		t.Fatalf("state after free is %v, not uninitialized", state)
	}

	// Handles are not recycled; the freed slot must stay untouched.
	next, err := m.Init(Datagram, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if next != handle+1 {
		t.Fatalf("handle %d was expected, got %d", handle+1, next)
	}
	if state := m.State(handle); state != StateUninitialized {
		t.Fatalf("freed slot changed state to %v", state)
	}
}

func TestManagerContractViolations(t *testing.T) {
	m := NewManagerWith(8, 500*time.Millisecond)

	expectViolation(t, "invalid handle", func() {
		m.State(8)
	})
	expectViolation(t, "negative handle", func() {
		_ = m.Disconnect(-1)
	})

	handle, err := m.Init(Datagram, 0, false)
	if err != nil {
		t.Fatal(err)
	}

	expectViolation(t, "send while disconnected", func() {
		_, _ = m.Send(handle, []byte("nope"))
	})
	expectViolation(t, "client receive while disconnected", func() {
		_, _ = m.Receive(handle, make([]byte, 16))
	})
	expectViolation(t, "peer while disconnected", func() {
		_ = m.Peer(handle)
	})

	peer := MustEndpointFrom(net.IPv4(127, 0, 0, 1), 4556)
	if err := m.Connect(handle, peer); err != nil {
		t.Fatal(err)
	}

	expectViolation(t, "connect while connected", func() {
		_ = m.Connect(handle, peer)
	})
	expectViolation(t, "free while connected", func() {
		_ = m.Free(handle)
	})

	// Sending after a disconnect must be rejected before any I/O happens.
	if err := m.Disconnect(handle); err != nil {
		t.Fatal(err)
	}
	expectViolation(t, "send after disconnect", func() {
		_, _ = m.Send(handle, []byte("nope"))
	})

	srv, err := m.Init(Stream, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	expectViolation(t, "connect on stream server", func() {
		_ = m.Connect(srv, peer)
	})

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestManagerCapacity(t *testing.T) {
	m := NewManagerWith(2, 500*time.Millisecond)

	first, err := m.Init(Datagram, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Init(Datagram, 0, false); err != nil {
		t.Fatal(err)
	}

	var capErr CapacityError
	if _, err := m.Init(Datagram, 0, false); !errors.As(err, &capErr) {
		t.Fatalf("expected a CapacityError, got %v", err)
	} else if capErr.Capacity != 2 {
		t.Fatalf("CapacityError reports capacity %d, not 2", capErr.Capacity)
	}

	// Freeing does not recycle handle numbers.
	if err := m.Free(first); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Init(Datagram, 0, false); !errors.As(err, &capErr) {
		t.Fatalf("expected a CapacityError after free, got %v", err)
	}

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestManagerConcurrentInit(t *testing.T) {
	const workers = 16

	m := NewManagerWith(workers, 500*time.Millisecond)

	handles := make(chan int, workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			handle, err := m.Init(Datagram, 0, false)
			handles <- handle
			errCh <- err
		}()
	}

	seen := make(map[int]bool)
	for i := 0; i < workers; i++ {
		if err := <-errCh; err != nil {
			t.Fatal(err)
		}

		handle := <-handles
		if seen[handle] {
			t.Fatalf("handle %d was assigned twice", handle)
		}
		seen[handle] = true
	}

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestManagerClose(t *testing.T) {
	m := NewManagerWith(4, 500*time.Millisecond)

	connected, err := m.Init(Datagram, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Connect(connected, MustEndpointFrom(net.IPv4(127, 0, 0, 1), 4556)); err != nil {
		t.Fatal(err)
	}

	disconnected, err := m.Init(Datagram, 0, true)
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Close(); err != nil {
		t.Fatal(err)
	}

	for _, handle := range []int{connected, disconnected} {
		if state := m.State(handle); state != StateUninitialized {
			t.Fatalf("handle %d is %v after Close", handle, state)
		}
	}
}
