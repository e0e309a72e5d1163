// SPDX-FileCopyrightText: 2026 Lennart Hoffmann
//
// SPDX-License-Identifier: GPL-3.0-or-later

package netconn

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/hashicorp/go-multierror"
)

// streamTransport is the TCP implementation of the transport capability. A
// client record dials its peer on connect. A server record owns a listener
// for its whole lifetime and adopts its peer by accepting a pending
// connection during the first receive; after a disconnect the listener stays
// open, so the record can accept a new peer.
type streamTransport struct {
	reqPort uint16
	ln      *net.TCPListener
	conn    net.Conn
}

// newStreamClient prepares a TCP client. The descriptor itself is created by
// the dialer during connect; a nonzero port is bound at that point.
func newStreamClient(port uint16) (*streamTransport, error) {
	return &streamTransport{reqPort: port}, nil
}

// newStreamServer opens a TCP listener on the given port on the wildcard
// address, with SO_REUSEADDR set.
func newStreamServer(port uint16) (*streamTransport, error) {
	lc := net.ListenConfig{Control: reuseAddr}

	ln, err := lc.Listen(context.Background(), "tcp4", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, err
	}

	return &streamTransport{reqPort: port, ln: ln.(*net.TCPListener)}, nil
}

func (st *streamTransport) connect(peer Endpoint, timeout time.Duration) error {
	if st.ln != nil {
		return fmt.Errorf("a stream server adopts its peer by accepting, not dialing")
	}

	dialer := net.Dialer{
		Timeout: timeout,
		Control: reuseAddr,
	}
	if st.reqPort > 0 {
		dialer.LocalAddr = &net.TCPAddr{IP: net.IPv4zero, Port: int(st.reqPort)}
	}

	conn, err := dialer.Dial("tcp4", peer.tcpAddr().String())
	if err != nil {
		return err
	}

	st.conn = conn
	return nil
}

func (st *streamTransport) send(buf []byte, timeout time.Duration) (int, error) {
	if err := st.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return 0, err
	}

	return st.conn.Write(buf)
}

func (st *streamTransport) receive(buf []byte, timeout time.Duration) (int, Endpoint, error) {
	deadline := time.Now().Add(timeout)

	if st.conn == nil {
		if err := st.ln.SetDeadline(deadline); err != nil {
			return 0, Endpoint{}, err
		}

		conn, err := st.ln.AcceptTCP()
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				err = ErrNoData
			}
			return 0, Endpoint{}, err
		}

		st.conn = conn
	}

	if err := st.conn.SetReadDeadline(deadline); err != nil {
		return 0, Endpoint{}, err
	}

	n, err := st.conn.Read(buf)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			err = ErrNoData
		}
		return 0, Endpoint{}, err
	}

	return n, endpointFromAddr(st.conn.RemoteAddr()), nil
}

func (st *streamTransport) disconnect() error {
	if st.conn == nil {
		return nil
	}

	err := st.conn.Close()
	st.conn = nil
	return err
}

func (st *streamTransport) close() (err error) {
	if st.conn != nil {
		if connErr := st.conn.Close(); connErr != nil {
			err = multierror.Append(err, connErr)
		}
		st.conn = nil
	}

	if st.ln != nil {
		if lnErr := st.ln.Close(); lnErr != nil {
			err = multierror.Append(err, lnErr)
		}
		st.ln = nil
	}

	return
}

func (st *streamTransport) localPort() uint16 {
	switch {
	case st.ln != nil:
		return endpointFromAddr(st.ln.Addr()).Port
	case st.conn != nil:
		return endpointFromAddr(st.conn.LocalAddr()).Port
	default:
		return st.reqPort
	}
}

func (st *streamTransport) String() string {
	if st.ln != nil {
		return fmt.Sprintf("tcp://%v", st.ln.Addr())
	} else if st.conn != nil {
		return fmt.Sprintf("tcp://%v", st.conn.LocalAddr())
	}
	return "tcp://"
}
