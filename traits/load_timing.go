package traits

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/unkn0wn-root/paramwire/param"
	"github.com/unkn0wn-root/paramwire/resource"
	"github.com/unkn0wn-root/paramwire/wire"
)

var _ param.Traits[resource.LoadTimingInfo] = LoadTiming{}

// timingUnset is the wire sentinel for a missing base or offset.
const timingUnset = -1

// LoadTiming writes 13 int64 values: the base time in microseconds since the
// Unix epoch, then every phase offset in microseconds. Missing values are -1 and
// a null record is written as all -1 regardless of its offsets.
//
// The base must not precede the Unix epoch.
type LoadTiming struct{}

func (LoadTiming) Write(w *wire.Writer, p resource.LoadTimingInfo) {
	if p.IsNull() {
		for i := 0; i <= resource.NumTimingOffsets; i++ {
			w.WriteInt64(timingUnset)
		}
		return
	}
	w.WriteInt64(p.Base.UnixMicro())
	for _, d := range p.Offsets() {
		w.WriteInt64(resource.OffsetMicros(d))
	}
}

func (LoadTiming) Read(r *wire.Reader) (resource.LoadTimingInfo, error) {
	start := r.Offset()
	base, err := r.ReadInt64()
	if err != nil {
		return resource.LoadTimingInfo{}, errors.Wrap(err, "load timing base")
	}
	if base < timingUnset {
		return resource.LoadTimingInfo{}, wire.Malformed(start, "load timing base %d", base)
	}
	var offsets [resource.NumTimingOffsets]int64
	for i := range offsets {
		at := r.Offset()
		v, err := r.ReadInt64()
		if err != nil {
			return resource.LoadTimingInfo{}, errors.Wrapf(err, "load timing %s", resource.TimingName(i))
		}
		if v < timingUnset || (base == timingUnset && v != timingUnset) {
			return resource.LoadTimingInfo{}, wire.Malformed(at, "load timing %s = %d with base %d",
				resource.TimingName(i), v, base)
		}
		offsets[i] = v
	}
	if base == timingUnset {
		return resource.NullLoadTiming(), nil
	}
	var out resource.LoadTimingInfo
	var ds [resource.NumTimingOffsets]time.Duration
	for i, v := range offsets {
		ds[i] = resource.OffsetFromMicros(v)
	}
	out.Base = time.UnixMicro(base).UTC()
	out.SetOffsets(ds)
	return out, nil
}

func (LoadTiming) Log(p resource.LoadTimingInfo, l *param.LogBuffer) {
	if p.IsNull() {
		l.WriteString("(null)")
		return
	}
	l.WriteString("{base: ")
	param.Time{}.Log(p.Base, l)
	for i, d := range p.Offsets() {
		if d < 0 {
			continue
		}
		l.WriteString(", ")
		l.WriteString(resource.TimingName(i))
		l.WriteString(": ")
		l.WriteString(d.String())
	}
	l.WriteString("}")
}
