// SPDX-FileCopyrightText: 2026 Lennart Hoffmann
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build linux
// +build linux

package netconn

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// reuseAddr is the Control function for stream listeners and dialers, setting
// SO_REUSEADDR on the raw socket. This allows rebinding a port whose previous
// occupant lingers in TIME_WAIT.
func reuseAddr(_, _ string, rawConn syscall.RawConn) (err error) {
	ctrlErr := rawConn.Control(func(fd uintptr) {
		err = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})

	if err == nil {
		err = ctrlErr
	}
	return
}
