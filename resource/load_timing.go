package resource

import "time"

// TimingUnset marks an offset that was never recorded.
const TimingUnset time.Duration = -1

// NumTimingOffsets is the number of phase offsets in LoadTimingInfo.
const NumTimingOffsets = 12

// LoadTimingInfo records when each phase of a request started and ended,
// relative to Base. A zero Base means no timing was collected.
type LoadTimingInfo struct {
	Base time.Time

	ProxyStart          time.Duration
	ProxyEnd            time.Duration
	DNSStart            time.Duration
	DNSEnd              time.Duration
	ConnectStart        time.Duration
	ConnectEnd          time.Duration
	SSLStart            time.Duration
	SSLEnd              time.Duration
	SendStart           time.Duration
	SendEnd             time.Duration
	ReceiveHeadersStart time.Duration
	ReceiveHeadersEnd   time.Duration
}

// NullLoadTiming returns a record with no base and every offset unset.
func NullLoadTiming() LoadTimingInfo {
	var t LoadTimingInfo
	t.SetOffsets(unsetOffsets())
	return t
}

func unsetOffsets() [NumTimingOffsets]time.Duration {
	var o [NumTimingOffsets]time.Duration
	for i := range o {
		o[i] = TimingUnset
	}
	return o
}

// IsNull reports whether no timing was collected.
func (t LoadTimingInfo) IsNull() bool { return t.Base.IsZero() }

// Offsets lists the phase offsets in wire order.
func (t LoadTimingInfo) Offsets() [NumTimingOffsets]time.Duration {
	return [NumTimingOffsets]time.Duration{
		t.ProxyStart, t.ProxyEnd,
		t.DNSStart, t.DNSEnd,
		t.ConnectStart, t.ConnectEnd,
		t.SSLStart, t.SSLEnd,
		t.SendStart, t.SendEnd,
		t.ReceiveHeadersStart, t.ReceiveHeadersEnd,
	}
}

// SetOffsets assigns the phase offsets from wire order.
func (t *LoadTimingInfo) SetOffsets(o [NumTimingOffsets]time.Duration) {
	t.ProxyStart, t.ProxyEnd = o[0], o[1]
	t.DNSStart, t.DNSEnd = o[2], o[3]
	t.ConnectStart, t.ConnectEnd = o[4], o[5]
	t.SSLStart, t.SSLEnd = o[6], o[7]
	t.SendStart, t.SendEnd = o[8], o[9]
	t.ReceiveHeadersStart, t.ReceiveHeadersEnd = o[10], o[11]
}

var timingNames = [NumTimingOffsets]string{
	"proxy_start", "proxy_end",
	"dns_start", "dns_end",
	"connect_start", "connect_end",
	"ssl_start", "ssl_end",
	"send_start", "send_end",
	"receive_headers_start", "receive_headers_end",
}

// TimingName is the log name of offset i in wire order.
func TimingName(i int) string { return timingNames[i] }

// Equal compares at microsecond resolution. Negative offsets are all unset and
// null records are equal whatever their offsets hold.
func (t LoadTimingInfo) Equal(o LoadTimingInfo) bool {
	if t.IsNull() || o.IsNull() {
		return t.IsNull() && o.IsNull()
	}
	if t.Base.UnixMicro() != o.Base.UnixMicro() {
		return false
	}
	a, b := t.Offsets(), o.Offsets()
	for i := range a {
		if OffsetMicros(a[i]) != OffsetMicros(b[i]) {
			return false
		}
	}
	return true
}

// OffsetMicros converts an offset to its wire form: whole microseconds, or -1
// for unset (any negative duration).
func OffsetMicros(d time.Duration) int64 {
	if d < 0 {
		return -1
	}
	return d.Microseconds()
}

// OffsetFromMicros is the inverse of OffsetMicros.
func OffsetFromMicros(us int64) time.Duration {
	if us < 0 {
		return TimingUnset
	}
	return time.Duration(us) * time.Microsecond
}
