package traits

import (
	"github.com/cockroachdb/errors"

	"github.com/unkn0wn-root/paramwire/param"
	"github.com/unkn0wn-root/paramwire/resource"
	"github.com/unkn0wn-root/paramwire/wire"
)

var (
	_ param.Traits[*resource.DevToolsInfo] = DevToolsInfo{}
	_ param.Traits[resource.Header]        = Header{}
)

// Header writes a name/value pair as two strings.
type Header struct{}

func (Header) Write(w *wire.Writer, p resource.Header) {
	w.WriteString(p.Name)
	w.WriteString(p.Value)
}

func (Header) Read(r *wire.Reader) (resource.Header, error) {
	name, err := r.ReadString()
	if err != nil {
		return resource.Header{}, err
	}
	value, err := r.ReadString()
	if err != nil {
		return resource.Header{}, err
	}
	return resource.Header{Name: name, Value: value}, nil
}

func (Header) Log(p resource.Header, l *param.LogBuffer) {
	l.WriteString(p.Name)
	l.WriteString(": ")
	l.WriteString(p.Value)
}

// Headers is an ordered header list.
type Headers = param.Vector[resource.Header, Header]

// DevToolsInfo writes a presence flag and, when present, status code, status
// text, request and response header lists and both raw header texts.
type DevToolsInfo struct{}

func (DevToolsInfo) Write(w *wire.Writer, p *resource.DevToolsInfo) {
	w.WriteBool(p != nil)
	if p == nil {
		return
	}
	w.WriteInt32(p.HTTPStatusCode)
	w.WriteString(p.HTTPStatusText)
	Headers{}.Write(w, p.RequestHeaders)
	Headers{}.Write(w, p.ResponseHeaders)
	w.WriteString(p.RequestHeadersText)
	w.WriteString(p.ResponseHeadersText)
}

func (DevToolsInfo) Read(r *wire.Reader) (*resource.DevToolsInfo, error) {
	present, err := r.ReadBool()
	if err != nil || !present {
		return nil, err
	}
	d := &resource.DevToolsInfo{}
	if d.HTTPStatusCode, err = r.ReadInt32(); err != nil {
		return nil, errors.Wrap(err, "http status code")
	}
	if d.HTTPStatusText, err = r.ReadString(); err != nil {
		return nil, errors.Wrap(err, "http status text")
	}
	if d.RequestHeaders, err = (Headers{}).Read(r); err != nil {
		return nil, errors.Wrap(err, "request headers")
	}
	if d.ResponseHeaders, err = (Headers{}).Read(r); err != nil {
		return nil, errors.Wrap(err, "response headers")
	}
	if d.RequestHeadersText, err = r.ReadString(); err != nil {
		return nil, errors.Wrap(err, "request headers text")
	}
	if d.ResponseHeadersText, err = r.ReadString(); err != nil {
		return nil, errors.Wrap(err, "response headers text")
	}
	return d, nil
}

func (DevToolsInfo) Log(p *resource.DevToolsInfo, l *param.LogBuffer) {
	if p == nil {
		l.WriteString("(null)")
		return
	}
	l.Printf("{%d %s, request: ", p.HTTPStatusCode, p.HTTPStatusText)
	Headers{}.Log(p.RequestHeaders, l)
	l.WriteString(", response: ")
	Headers{}.Log(p.ResponseHeaders, l)
	l.WriteString("}")
}
