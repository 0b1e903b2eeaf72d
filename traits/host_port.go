package traits

import (
	"github.com/cockroachdb/errors"

	"github.com/unkn0wn-root/paramwire/param"
	"github.com/unkn0wn-root/paramwire/resource"
	"github.com/unkn0wn-root/paramwire/wire"
)

var _ param.Traits[resource.HostPortPair] = HostPortPair{}

// HostPortPair writes the host string followed by the 16-bit port.
type HostPortPair struct{}

func (HostPortPair) Write(w *wire.Writer, p resource.HostPortPair) {
	param.String{}.Write(w, p.Host)
	param.Uint16{}.Write(w, p.Port)
}

func (HostPortPair) Read(r *wire.Reader) (resource.HostPortPair, error) {
	host, err := param.String{}.Read(r)
	if err != nil {
		return resource.HostPortPair{}, errors.Wrap(err, "host")
	}
	port, err := param.Uint16{}.Read(r)
	if err != nil {
		return resource.HostPortPair{}, errors.Wrap(err, "port")
	}
	return resource.HostPortPair{Host: host, Port: port}, nil
}

func (HostPortPair) Log(p resource.HostPortPair, l *param.LogBuffer) { l.WriteString(p.String()) }
