// SPDX-FileCopyrightText: 2026 Lennart Hoffmann
//
// SPDX-License-Identifier: GPL-3.0-or-later

package netconn

import (
	"fmt"
	"net"
	"time"
)

// datagramTransport is the UDP implementation of the transport capability.
// One UDP socket is opened at creation and lives until close; connect and
// disconnect only manipulate the peer association.
type datagramTransport struct {
	conn *net.UDPConn
	peer *net.UDPAddr
}

// newDatagramTransport opens a UDP socket, bound to the given port on the
// wildcard address. A port of zero selects an ephemeral port.
func newDatagramTransport(port uint16) (*datagramTransport, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: int(port)})
	if err != nil {
		return nil, err
	}

	return &datagramTransport{conn: conn}, nil
}

func (dt *datagramTransport) connect(peer Endpoint, _ time.Duration) error {
	dt.peer = peer.udpAddr()
	return nil
}

func (dt *datagramTransport) send(buf []byte, timeout time.Duration) (int, error) {
	if err := dt.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return 0, err
	}

	return dt.conn.WriteToUDP(buf, dt.peer)
}

func (dt *datagramTransport) receive(buf []byte, timeout time.Duration) (int, Endpoint, error) {
	if err := dt.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return 0, Endpoint{}, err
	}

	n, sender, err := dt.conn.ReadFromUDP(buf)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			err = ErrNoData
		}
		return 0, Endpoint{}, err
	}

	return n, endpointFromAddr(sender), nil
}

func (dt *datagramTransport) disconnect() error {
	dt.peer = nil
	return nil
}

func (dt *datagramTransport) close() error {
	return dt.conn.Close()
}

func (dt *datagramTransport) localPort() uint16 {
	return endpointFromAddr(dt.conn.LocalAddr()).Port
}

func (dt *datagramTransport) String() string {
	return fmt.Sprintf("udp://%v", dt.conn.LocalAddr())
}
