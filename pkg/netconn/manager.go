// SPDX-FileCopyrightText: 2026 Lennart Hoffmann
//
// SPDX-License-Identifier: GPL-3.0-or-later

package netconn

import (
	"fmt"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/hashicorp/go-multierror"
)

const (
	// DefaultCapacity is the connection table's size if none was configured.
	DefaultCapacity = 32

	// DefaultTimeout is the blocking duration of send and receive operations
	// if none was configured.
	DefaultTimeout = 3 * time.Second
)

// Manager owns a fixed-capacity table of connection records and exposes the
// lifecycle operations on them. Handles are assigned through an atomic
// counter, so Init may be called from concurrently running goroutines; each
// record itself assumes a single logical caller, like the underlying sockets.
type Manager struct {
	records []record
	next    int32
	timeout time.Duration
}

// NewManager creates a Manager with DefaultCapacity and DefaultTimeout.
func NewManager() *Manager {
	return NewManagerWith(DefaultCapacity, DefaultTimeout)
}

// NewManagerWith creates a Manager with the given table capacity and
// send/receive timeout.
func NewManagerWith(capacity int, timeout time.Duration) *Manager {
	if capacity <= 0 {
		panic(fmt.Sprintf("invalid connection table capacity %d", capacity))
	}

	return &Manager{
		records: make([]record, capacity),
		timeout: timeout,
	}
}

// get returns the record for a handle or panics with a ContractViolation for
// handles outside the table.
func (m *Manager) get(op string, handle int) *record {
	if handle < 0 || handle >= len(m.records) {
		panic(ContractViolation{
			Op:     op,
			Handle: handle,
			Msg:    "handle is outside the connection table",
		})
	}

	return &m.records[handle]
}

// Init allocates the next handle and opens the underlying socket, bound to
// the given port on the wildcard address if the port is nonzero. A datagram
// record's server flag selects the lazy peer binding behavior; a stream
// record's server flag selects a listening socket whose peer is adopted by
// accepting during Receive. Returns a CapacityError once all handles were
// allocated; handles are never recycled. On a socket or bind failure the
// record stays uninitialized, but its handle number is used up.
func (m *Manager) Init(kind TransportType, port uint16, server bool) (int, error) {
	handle := int(atomic.AddInt32(&m.next, 1)) - 1
	if handle >= len(m.records) {
		return -1, CapacityError{Capacity: len(m.records)}
	}

	rec := &m.records[handle]
	rec.mustBe("init", StateUninitialized)

	var trans transport
	var err error

	switch kind {
	case Datagram:
		trans, err = newDatagramTransport(port)
	case Stream:
		if server {
			trans, err = newStreamServer(port)
		} else {
			trans, err = newStreamClient(port)
		}
	default:
		panic(ContractViolation{
			Op:     "init",
			Handle: handle,
			Msg:    "unknown transport type",
		})
	}

	if err != nil {
		log.WithFields(log.Fields{
			"transport": kind,
			"port":      port,
		}).WithError(err).Error("Opening socket failed")

		return -1, &transportError{op: "init", cause: err}
	}

	rec.handle = handle
	rec.kind = kind
	rec.server = server
	rec.trans = trans
	rec.state = StateDisconnected

	log.WithFields(log.Fields{
		"handle":    handle,
		"transport": kind,
		"port":      trans.localPort(),
		"server":    server,
	}).Debug("Initialized connection")

	return handle, nil
}

// Connect establishes the given peer for a Disconnected record. For a
// datagram record this is local bookkeeping and cannot fail; a stream client
// performs the TCP handshake and reports its failure, leaving the record
// Disconnected. A stream server must not Connect, its peer arrives through
// Receive.
func (m *Manager) Connect(handle int, peer Endpoint) error {
	rec := m.get("connect", handle)
	rec.mustBe("connect", StateDisconnected)

	if rec.kind == Stream && rec.server {
		panic(ContractViolation{
			Op:     "connect",
			Handle: handle,
			State:  rec.state,
			Msg:    "a stream server adopts its peer on receive",
		})
	}

	if err := rec.trans.connect(peer, m.timeout); err != nil {
		log.WithFields(log.Fields{
			"handle": handle,
			"peer":   peer,
		}).WithError(err).Error("Connecting failed")

		return &transportError{op: "connect", cause: err}
	}

	rec.peer = peer
	rec.state = StateConnected
	return nil
}

// Send writes buf to the Connected record's peer and returns the number of
// bytes written, which may be less than len(buf); handling partial writes is
// the caller's responsibility. The transfer is traced to the debug log even
// if the transport reported an error.
func (m *Manager) Send(handle int, buf []byte) (int, error) {
	rec := m.get("send", handle)
	rec.mustBe("send", StateConnected)

	n, err := rec.trans.send(buf, m.timeout)
	if err != nil {
		log.WithFields(log.Fields{
			"handle": handle,
			"peer":   rec.peer,
		}).WithError(err).Error("Sending failed")
	}

	tracePayload(fmt.Sprintf("sent %d/%d bytes to %d", n, len(buf), rec.peer.Port), buf)

	if err != nil {
		return n, &transportError{op: "send", cause: err}
	}
	return n, nil
}

// Receive reads up to len(buf) bytes into buf within the configured timeout.
// An elapsed timeout returns ErrNoData without logging; this is a normal,
// frequent outcome. Other transport failures are logged and returned.
//
// A server record may receive while still Disconnected: a datagram server
// adopts the first sender as its peer, a stream server accepts a pending
// connection first. Both transition the record to Connected, exactly as if
// Connect had been called with the remote's endpoint. A client record must be
// Connected.
func (m *Manager) Receive(handle int, buf []byte) (int, error) {
	rec := m.get("receive", handle)

	if rec.server {
		if rec.state == StateUninitialized {
			panic(ContractViolation{
				Op:     "receive",
				Handle: handle,
				State:  rec.state,
				Msg:    "requires an initialized record",
			})
		}
	} else {
		rec.mustBe("receive", StateConnected)
	}

	n, sender, err := rec.trans.receive(buf, m.timeout)
	if err != nil {
		if err == ErrNoData {
			return 0, ErrNoData
		}

		log.WithFields(log.Fields{
			"handle": handle,
		}).WithError(err).Error("Receiving failed")

		return 0, &transportError{op: "receive", cause: err}
	}

	tracePayload(fmt.Sprintf("received %d bytes from %d", n, sender.Port), buf[:n])

	if rec.server && rec.state == StateDisconnected {
		// A datagram connect is local bookkeeping and cannot fail; a stream
		// server's accepted connection is already established at this point.
		_ = rec.trans.connect(sender, m.timeout)

		rec.peer = sender
		rec.state = StateConnected

		log.WithFields(log.Fields{
			"handle": handle,
			"peer":   sender,
		}).Debug("Adopted first peer")
	}

	return n, nil
}

// Disconnect drops a Connected record's peer association and transitions it
// back to Disconnected. A datagram record keeps its socket; a stream record
// closes its connection, since a TCP socket cannot be reused for a new peer.
func (m *Manager) Disconnect(handle int) error {
	rec := m.get("disconnect", handle)
	rec.mustBe("disconnect", StateConnected)

	err := rec.trans.disconnect()

	rec.peer = Endpoint{}
	rec.state = StateDisconnected

	if err != nil {
		log.WithField("handle", handle).WithError(err).Warn("Disconnecting errored")
		return &transportError{op: "disconnect", cause: err}
	}
	return nil
}

// Free releases a Disconnected record's descriptors and returns the slot to
// StateUninitialized. The handle number is not recycled. Freeing a Connected
// record is a contract violation; it must be disconnected first.
func (m *Manager) Free(handle int) error {
	rec := m.get("free", handle)
	rec.mustBe("free", StateDisconnected)

	err := rec.trans.close()

	rec.trans = nil
	rec.state = StateUninitialized

	if err != nil {
		log.WithField("handle", handle).WithError(err).Warn("Freeing errored")
		return &transportError{op: "free", cause: err}
	}
	return nil
}

// Close releases every live record, regardless of its state, and folds the
// close errors into one. This is an owner-side teardown for process shutdown
// and bypasses the per-handle state machine.
func (m *Manager) Close() error {
	var errs *multierror.Error

	for i := range m.records {
		rec := &m.records[i]
		if rec.state == StateUninitialized {
			continue
		}

		if err := rec.trans.close(); err != nil {
			errs = multierror.Append(errs, err)
		}

		rec.peer = Endpoint{}
		rec.trans = nil
		rec.state = StateUninitialized
	}

	return errs.ErrorOrNil()
}

// State reports the record's current state. The handle must be within the
// table, but may point to an uninitialized slot.
func (m *Manager) State(handle int) ConnState {
	return m.get("state", handle).state
}

// Peer reports a Connected record's peer endpoint.
func (m *Manager) Peer(handle int) Endpoint {
	rec := m.get("peer", handle)
	rec.mustBe("peer", StateConnected)

	return rec.peer
}

// LocalPort reports the record's actually bound local port. For a stream
// client this is the requested port until the dialer bound a socket during
// Connect.
func (m *Manager) LocalPort(handle int) uint16 {
	rec := m.get("local port", handle)
	if rec.state == StateUninitialized {
		rec.mustBe("local port", StateDisconnected)
	}

	return rec.trans.localPort()
}
