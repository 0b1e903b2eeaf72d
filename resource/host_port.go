package resource

import (
	"fmt"
	"net"
	"strconv"
)

// HostPortPair is a host name or literal address with a TCP port.
type HostPortPair struct {
	Host string
	Port uint16
}

// ParseHostPort splits "host:port" (IPv6 literals bracketed).
func ParseHostPort(s string) (HostPortPair, error) {
	host, port, err := net.SplitHostPort(s)
	if err != nil {
		return HostPortPair{}, fmt.Errorf("resource: host/port %q: %w", s, err)
	}
	p, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return HostPortPair{}, fmt.Errorf("resource: port %q: %w", port, err)
	}
	return HostPortPair{Host: host, Port: uint16(p)}, nil
}

func (h HostPortPair) IsEmpty() bool { return h.Host == "" && h.Port == 0 }

func (h HostPortPair) Equal(o HostPortPair) bool { return h == o }

func (h HostPortPair) String() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(int(h.Port)))
}
