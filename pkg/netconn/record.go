// SPDX-FileCopyrightText: 2026 Lennart Hoffmann
//
// SPDX-License-Identifier: GPL-3.0-or-later

package netconn

// record is one slot of the Manager's connection table. Its handle is the
// slot's index and stays stable for the table's lifetime; the slot returns to
// StateUninitialized when freed, but the handle number is never reassigned.
type record struct {
	handle int
	kind   TransportType
	server bool
	state  ConnState
	peer   Endpoint
	trans  transport
}

// mustBe panics with a ContractViolation unless the record is in the wanted
// state. Operations call this to enforce their preconditions; a violation is
// a bug in the calling code, not a runtime condition.
func (rec *record) mustBe(op string, want ConnState) {
	if rec.state != want {
		panic(ContractViolation{
			Op:     op,
			Handle: rec.handle,
			State:  rec.state,
			Msg:    "requires state " + want.String(),
		})
	}
}
