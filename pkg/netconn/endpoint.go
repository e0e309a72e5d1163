// SPDX-FileCopyrightText: 2026 Lennart Hoffmann
//
// SPDX-License-Identifier: GPL-3.0-or-later

package netconn

import (
	"encoding/binary"
	"fmt"
	"net"
)

// Endpoint is an IPv4 address and port pair, the address packed in network
// byte order. It is the address representation crossing the Manager's API;
// conversions from and to the net package's address types happen internally.
type Endpoint struct {
	// Addr is the IPv4 address in network byte order, e.g., 10.0.0.1 is
	// represented as 0x0a000001.
	Addr uint32

	// Port is the port number.
	Port uint16
}

// EndpointFrom creates an Endpoint for an IPv4 address and a port. Returns an
// error for addresses which are not representable as IPv4.
func EndpointFrom(ip net.IP, port uint16) (ep Endpoint, err error) {
	ip4 := ip.To4()
	if ip4 == nil {
		err = fmt.Errorf("address %v is no IPv4 address", ip)
		return
	}

	ep.Addr = binary.BigEndian.Uint32(ip4)
	ep.Port = port
	return
}

// MustEndpointFrom works like EndpointFrom, but panics instead of returning
// an error.
func MustEndpointFrom(ip net.IP, port uint16) Endpoint {
	ep, err := EndpointFrom(ip, port)
	if err != nil {
		panic(err)
	}
	return ep
}

// ResolveEndpoint creates an Endpoint from a "host:port" string.
func ResolveEndpoint(address string) (Endpoint, error) {
	addr, err := net.ResolveUDPAddr("udp4", address)
	if err != nil {
		return Endpoint{}, err
	}

	return EndpointFrom(addr.IP, uint16(addr.Port))
}

// IP unpacks the Endpoint's address into a net.IP.
func (ep Endpoint) IP() net.IP {
	var ip4 [4]byte
	binary.BigEndian.PutUint32(ip4[:], ep.Addr)
	return net.IPv4(ip4[0], ip4[1], ip4[2], ip4[3])
}

func (ep Endpoint) String() string {
	return fmt.Sprintf("%v:%d", ep.IP(), ep.Port)
}

func (ep Endpoint) udpAddr() *net.UDPAddr {
	return &net.UDPAddr{IP: ep.IP(), Port: int(ep.Port)}
}

func (ep Endpoint) tcpAddr() *net.TCPAddr {
	return &net.TCPAddr{IP: ep.IP(), Port: int(ep.Port)}
}

// endpointFromAddr converts a net.Addr of an IPv4 UDP or TCP socket back
// into an Endpoint. Unsupported net.Addr types result in a zero Endpoint.
func endpointFromAddr(addr net.Addr) Endpoint {
	switch a := addr.(type) {
	case *net.UDPAddr:
		ep, _ := EndpointFrom(a.IP, uint16(a.Port))
		return ep
	case *net.TCPAddr:
		ep, _ := EndpointFrom(a.IP, uint16(a.Port))
		return ep
	default:
		return Endpoint{}
	}
}
