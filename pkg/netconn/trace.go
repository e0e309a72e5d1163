// SPDX-FileCopyrightText: 2026 Lennart Hoffmann
//
// SPDX-License-Identifier: GPL-3.0-or-later

package netconn

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/howeyc/crc16"
)

var crcTable = crc16.MakeTable(crc16.CCITT)

// tracePayload emits a transfer's diagnostic trace: a summary line with the
// payload's length and CRC-16/CCITT checksum, followed by a hex dump. This is
// strictly observability; nothing of the Manager's contract depends on it.
func tracePayload(label string, buf []byte) {
	if !log.IsLevelEnabled(log.DebugLevel) {
		return
	}

	log.WithFields(log.Fields{
		"len": len(buf),
		"crc": fmt.Sprintf("%04x", crc16.Checksum(buf, crcTable)),
	}).Debug(label)

	for off := 0; off < len(buf); off += 16 {
		end := off + 16
		if end > len(buf) {
			end = len(buf)
		}

		log.Debugf("%04x  % x", off, buf[off:end])
	}
}
