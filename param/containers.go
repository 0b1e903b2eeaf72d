package param

import (
	"github.com/unkn0wn-root/paramwire/wire"
)

// Vector encodes a slice as an int32 count followed by the elements.
// Every element trait must write at least one byte; counts that could not fit in
// the remaining input are rejected before anything is allocated.
type Vector[T any, Tr Traits[T]] struct{}

func (Vector[T, Tr]) Write(w *wire.Writer, p []T) {
	var tr Tr
	w.WriteLength(len(p))
	for i := range p {
		tr.Write(w, p[i])
	}
}

func (Vector[T, Tr]) Read(r *wire.Reader) ([]T, error) {
	var tr Tr
	n, err := r.ReadCount(1)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, err := tr.Read(r)
		if err != nil {
			return nil, wrap(err, "element %d", i)
		}
		out = append(out, v)
	}
	return out, nil
}

func (Vector[T, Tr]) Log(p []T, l *LogBuffer) {
	var tr Tr
	l.WriteString("[")
	for i := range p {
		if l.Truncated() {
			return
		}
		if i > 0 {
			l.WriteString(", ")
		}
		tr.Log(p[i], l)
	}
	l.WriteString("]")
}

// Optional encodes a possibly-nil pointer as a presence flag and, when set, the
// value. A decoded pointer always refers to fresh memory.
type Optional[T any, Tr Traits[T]] struct{}

func (Optional[T, Tr]) Write(w *wire.Writer, p *T) {
	var tr Tr
	w.WriteBool(p != nil)
	if p != nil {
		tr.Write(w, *p)
	}
}

func (Optional[T, Tr]) Read(r *wire.Reader) (*T, error) {
	var tr Tr
	present, err := r.ReadBool()
	if err != nil || !present {
		return nil, err
	}
	v, err := tr.Read(r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (Optional[T, Tr]) Log(p *T, l *LogBuffer) {
	if p == nil {
		l.WriteString("(null)")
		return
	}
	var tr Tr
	tr.Log(*p, l)
}

// KV is an ordered two-field record.
type KV[A, B any] struct {
	First  A
	Second B
}

// Pair encodes a KV as its two fields back to back.
type Pair[A, B any, TA Traits[A], TB Traits[B]] struct{}

func (Pair[A, B, TA, TB]) Write(w *wire.Writer, p KV[A, B]) {
	var ta TA
	var tb TB
	ta.Write(w, p.First)
	tb.Write(w, p.Second)
}

func (Pair[A, B, TA, TB]) Read(r *wire.Reader) (KV[A, B], error) {
	var ta TA
	var tb TB
	var out KV[A, B]
	var err error
	if out.First, err = ta.Read(r); err != nil {
		return KV[A, B]{}, err
	}
	if out.Second, err = tb.Read(r); err != nil {
		return KV[A, B]{}, err
	}
	return out, nil
}

func (Pair[A, B, TA, TB]) Log(p KV[A, B], l *LogBuffer) {
	var ta TA
	var tb TB
	l.WriteString("(")
	ta.Log(p.First, l)
	l.WriteString(", ")
	tb.Log(p.Second, l)
	l.WriteString(")")
}

// StringPairs is the trait for ordered string key/value lists.
type StringPairs = Vector[KV[string, string], Pair[string, string, String, String]]
