package param

import (
	"encoding/hex"
	"strconv"
	"time"

	"github.com/unkn0wn-root/paramwire/wire"
)

// compile-time checks
var (
	_ Traits[bool]      = Bool{}
	_ Traits[uint8]     = Uint8{}
	_ Traits[uint16]    = Uint16{}
	_ Traits[int32]     = Int32{}
	_ Traits[uint32]    = Uint32{}
	_ Traits[int64]     = Int64{}
	_ Traits[uint64]    = Uint64{}
	_ Traits[string]    = String{}
	_ Traits[[]byte]    = Bytes{}
	_ Traits[time.Time] = Time{}
)

type Bool struct{}

func (Bool) Write(w *wire.Writer, p bool)      { w.WriteBool(p) }
func (Bool) Read(r *wire.Reader) (bool, error) { return r.ReadBool() }
func (Bool) Log(p bool, l *LogBuffer)          { l.WriteString(strconv.FormatBool(p)) }

type Uint8 struct{}

func (Uint8) Write(w *wire.Writer, p uint8)      { w.WriteUint8(p) }
func (Uint8) Read(r *wire.Reader) (uint8, error) { return r.ReadUint8() }
func (Uint8) Log(p uint8, l *LogBuffer)          { l.WriteString(strconv.FormatUint(uint64(p), 10)) }

type Uint16 struct{}

func (Uint16) Write(w *wire.Writer, p uint16)      { w.WriteUint16(p) }
func (Uint16) Read(r *wire.Reader) (uint16, error) { return r.ReadUint16() }
func (Uint16) Log(p uint16, l *LogBuffer)          { l.WriteString(strconv.FormatUint(uint64(p), 10)) }

type Int32 struct{}

func (Int32) Write(w *wire.Writer, p int32)      { w.WriteInt32(p) }
func (Int32) Read(r *wire.Reader) (int32, error) { return r.ReadInt32() }
func (Int32) Log(p int32, l *LogBuffer)          { l.WriteString(strconv.FormatInt(int64(p), 10)) }

type Uint32 struct{}

func (Uint32) Write(w *wire.Writer, p uint32)      { w.WriteUint32(p) }
func (Uint32) Read(r *wire.Reader) (uint32, error) { return r.ReadUint32() }
func (Uint32) Log(p uint32, l *LogBuffer)          { l.WriteString(strconv.FormatUint(uint64(p), 10)) }

type Int64 struct{}

func (Int64) Write(w *wire.Writer, p int64)      { w.WriteInt64(p) }
func (Int64) Read(r *wire.Reader) (int64, error) { return r.ReadInt64() }
func (Int64) Log(p int64, l *LogBuffer)          { l.WriteString(strconv.FormatInt(p, 10)) }

type Uint64 struct{}

func (Uint64) Write(w *wire.Writer, p uint64)      { w.WriteUint64(p) }
func (Uint64) Read(r *wire.Reader) (uint64, error) { return r.ReadUint64() }
func (Uint64) Log(p uint64, l *LogBuffer)          { l.WriteString(strconv.FormatUint(p, 10)) }

// String is a length-prefixed byte string. No UTF-8 validation.
type String struct{}

func (String) Write(w *wire.Writer, p string)      { w.WriteString(p) }
func (String) Read(r *wire.Reader) (string, error) { return r.ReadString() }
func (String) Log(p string, l *LogBuffer)          { l.WriteString(p) }

// Bytes is a length-prefixed payload. Decoded slices never alias the message;
// an empty payload decodes as nil.
type Bytes struct{}

// logBytesMax bounds the hex dump independently of the LogBuffer limit.
const logBytesMax = 32

func (Bytes) Write(w *wire.Writer, p []byte)      { w.WriteData(p) }
func (Bytes) Read(r *wire.Reader) ([]byte, error) { return r.ReadData() }
func (Bytes) Log(p []byte, l *LogBuffer) {
	l.Printf("[%d bytes]", len(p))
	if len(p) == 0 {
		return
	}
	n := len(p)
	if n > logBytesMax {
		n = logBytesMax
	}
	l.WriteString(" ")
	l.WriteString(hex.EncodeToString(p[:n]))
	if n < len(p) {
		l.WriteString(ellipsis)
	}
}

// Time is an instant normalized to int64 microseconds since the Unix epoch.
// The zero time.Time is written as 0 and 0 decodes as the zero time.
type Time struct{}

// TimeToWire converts t to its wire representation.
func TimeToWire(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

// TimeFromWire is the inverse of TimeToWire. Results are in UTC.
func TimeFromWire(us int64) time.Time {
	if us == 0 {
		return time.Time{}
	}
	return time.UnixMicro(us).UTC()
}

func (Time) Write(w *wire.Writer, p time.Time) { w.WriteInt64(TimeToWire(p)) }
func (Time) Read(r *wire.Reader) (time.Time, error) {
	us, err := r.ReadInt64()
	if err != nil {
		return time.Time{}, err
	}
	return TimeFromWire(us), nil
}
func (Time) Log(p time.Time, l *LogBuffer) {
	if p.IsZero() {
		l.WriteString("(null)")
		return
	}
	l.WriteString(p.UTC().Format(time.RFC3339Nano))
}
