package traits

import (
	"unicode/utf8"

	"github.com/unkn0wn-root/paramwire/param"
	"github.com/unkn0wn-root/paramwire/resource"
	"github.com/unkn0wn-root/paramwire/wire"
)

var _ param.Traits[resource.URL] = URL{}

// URL writes the canonical spec. Invalid URLs and specs longer than
// resource.MaxURLChars are written as the empty string.
type URL struct{}

func (URL) Write(w *wire.Writer, p resource.URL) {
	spec := p.Spec()
	if len(spec) > resource.MaxURLChars {
		spec = ""
	}
	w.WriteString(spec)
}

func (URL) Read(r *wire.Reader) (resource.URL, error) {
	start := r.Offset()
	n, err := r.ReadLength()
	if err != nil {
		return resource.URL{}, err
	}
	if n > resource.MaxURLChars {
		return resource.URL{}, wire.Malformed(start, "url length %d exceeds %d", n, resource.MaxURLChars)
	}
	b, err := r.ReadBytes(n)
	if err != nil {
		return resource.URL{}, err
	}
	if !utf8.Valid(b) {
		return resource.URL{}, wire.Malformed(start, "url is not valid UTF-8")
	}
	if n == 0 {
		return resource.URL{}, nil
	}
	return resource.ParseURL(string(b)), nil
}

func (URL) Log(p resource.URL, l *param.LogBuffer) {
	l.WriteString(p.PossiblyInvalidSpec())
}
