package traits

import (
	"github.com/cockroachdb/errors"

	"github.com/unkn0wn-root/paramwire/param"
	"github.com/unkn0wn-root/paramwire/resource"
	"github.com/unkn0wn-root/paramwire/wire"
)

var _ param.Traits[resource.RequestStatus] = RequestStatus{}

// RequestStatus writes the status and, for canceled and failed requests only,
// the error detail.
type RequestStatus struct{}

func (RequestStatus) Write(w *wire.Writer, p resource.RequestStatus) {
	w.WriteInt32(int32(p.Status))
	if p.HasDetail() {
		w.WriteInt32(p.Error)
	}
}

func (RequestStatus) Read(r *wire.Reader) (resource.RequestStatus, error) {
	v, err := readEnum(r, "request status", int32(resource.StatusSuccess), int32(resource.StatusFailed))
	if err != nil {
		return resource.RequestStatus{}, err
	}
	out := resource.RequestStatus{Status: resource.Status(v)}
	if out.HasDetail() {
		if out.Error, err = r.ReadInt32(); err != nil {
			return resource.RequestStatus{}, errors.Wrapf(err, "%s detail", out.Status)
		}
	}
	return out, nil
}

func (RequestStatus) Log(p resource.RequestStatus, l *param.LogBuffer) {
	l.WriteString("(")
	l.WriteString(p.String())
	l.WriteString(")")
}
