package traits

import (
	"github.com/unkn0wn-root/paramwire/param"
	"github.com/unkn0wn-root/paramwire/resource"
	"github.com/unkn0wn-root/paramwire/wire"
)

var _ param.Traits[*resource.ResponseHeaders] = ResponseHeaders{}

// ResponseHeaders writes a presence flag and the canonical raw block. The reader
// re-parses the block.
type ResponseHeaders struct{}

func (ResponseHeaders) Write(w *wire.Writer, p *resource.ResponseHeaders) {
	w.WriteBool(p != nil)
	if p != nil {
		w.WriteString(p.RawHeaders())
	}
}

func (ResponseHeaders) Read(r *wire.Reader) (*resource.ResponseHeaders, error) {
	present, err := r.ReadBool()
	if err != nil || !present {
		return nil, err
	}
	start := r.Offset()
	raw, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	h, err := resource.ParseResponseHeaders(raw)
	if err != nil {
		return nil, wire.Malformed(start, "%v", err)
	}
	return h, nil
}

func (ResponseHeaders) Log(p *resource.ResponseHeaders, l *param.LogBuffer) {
	if p == nil {
		l.WriteString("(null)")
		return
	}
	l.WriteString("<")
	l.WriteString(p.StatusLine())
	for _, h := range p.Headers() {
		if l.Truncated() {
			return
		}
		l.WriteString("; ")
		l.WriteString(h.Name)
		l.WriteString(": ")
		l.WriteString(h.Value)
	}
	l.WriteString(">")
}
