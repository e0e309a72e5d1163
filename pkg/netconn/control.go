// SPDX-FileCopyrightText: 2026 Lennart Hoffmann
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !linux
// +build !linux

package netconn

import "syscall"

// reuseAddr is a no-op on operating systems next to Linux. The Linux file
// additionally sets SO_REUSEADDR on the raw socket.
func reuseAddr(_, _ string, _ syscall.RawConn) error {
	return nil
}
