// SPDX-FileCopyrightText: 2026 Lennart Hoffmann
//
// SPDX-License-Identifier: GPL-3.0-or-later

package netconn

import (
	"errors"
	"fmt"
)

// ErrNoData is returned by Receive if no data arrived within the configured
// timeout window. This is a frequent, benign outcome and not logged; the
// caller decides whether to poll again.
var ErrNoData = errors.New("no data within the timeout window")

// ContractViolation indicates caller misuse of the Manager: an operation was
// invoked with an invalid handle or in the wrong connection state. It is used
// as a panic value, never as a returned error, because such a call is a bug
// in the calling code and must not be handled like a transport failure.
type ContractViolation struct {
	Op     string
	Handle int
	State  ConnState
	Msg    string
}

func (cv ContractViolation) Error() string {
	return fmt.Sprintf("%s on handle %d (%v): %s", cv.Op, cv.Handle, cv.State, cv.Msg)
}

// CapacityError is returned by Init after the Manager's handle counter
// reached the table's capacity. Handles are never recycled, so freeing
// records does not clear this condition.
type CapacityError struct {
	Capacity int
}

func (ce CapacityError) Error() string {
	return fmt.Sprintf("connection table capacity of %d handles is exhausted", ce.Capacity)
}

// transportError wraps a socket-level error together with the operation it
// occurred in.
type transportError struct {
	op    string
	cause error
}

func (te *transportError) Error() string {
	return fmt.Sprintf("%s: %v", te.op, te.cause)
}

func (te *transportError) Unwrap() error {
	return te.cause
}
