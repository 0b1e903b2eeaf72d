// Package envelope frames captured records for storage.
package envelope

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/unkn0wn-root/paramwire/wire"
)

const (
	version     byte = 1
	kindSingle  byte = 1
	kindBatch   byte = 2
	headerSize       = 4 + 1 + 1
	maxKeyBytes      = 1 << 10
)

var (
	ErrCorrupt = errors.New("paramwire: corrupt capture envelope")
	magic4     = [...]byte{'P', 'W', 'C', 'R'}
)

// Item is one framed record. Body aliases the decoded input.
type Item struct {
	Key    string
	Seq    uint64
	TypeID uint16
	Body   []byte
}

func header(w *wire.Writer, kind byte) {
	w.WriteBytes(magic4[:])
	w.WriteUint8(version)
	w.WriteUint8(kind)
}

func checkHeader(b []byte, kind byte) error {
	if len(b) < headerSize || !bytes.Equal(b[:4], magic4[:]) || b[4] != version || b[5] != kind {
		return ErrCorrupt
	}
	return nil
}

func corrupt(err error) error { return fmt.Errorf("%w: %v", ErrCorrupt, err) }

// EncodeSingle frames one record body.
//
//	magic(4) | ver(1) | kind(1=single) | seq(u64) | type(u16) | blen(i32) | body(blen)
func EncodeSingle(seq uint64, typeID uint16, body []byte) []byte {
	w := wire.NewWriter(headerSize + 8 + 2 + 4 + len(body))
	header(w, kindSingle)
	w.WriteUint64(seq)
	w.WriteUint16(typeID)
	w.WriteLength(len(body))
	w.WriteBytes(body)
	return w.Bytes()
}

// DecodeSingle is the inverse of EncodeSingle. Trailing bytes are corruption.
func DecodeSingle(b []byte) (Item, error) {
	if err := checkHeader(b, kindSingle); err != nil {
		return Item{}, err
	}
	r := wire.NewReaderAt(b, headerSize)
	it, err := readItem(r, false)
	if err != nil {
		return Item{}, corrupt(err)
	}
	if !r.Done() {
		return Item{}, corrupt(fmt.Errorf("%d trailing bytes", r.Remaining()))
	}
	return it, nil
}

// EncodeBatch frames records with their storage keys.
//
//	magic(4) | ver(1) | kind(2=batch) | n(i32)
//	klen(i32) | key(klen) | seq(u64) | type(u16) | blen(i32) | body(blen) * n
func EncodeBatch(items []Item) ([]byte, error) {
	size := headerSize + 4
	for i, it := range items {
		if l := len(it.Key); l == 0 || l > maxKeyBytes {
			return nil, fmt.Errorf("envelope: item %d: invalid key length %d", i, l)
		}
		size += 4 + len(it.Key) + 8 + 2 + 4 + len(it.Body)
	}

	w := wire.NewWriter(size)
	header(w, kindBatch)
	w.WriteLength(len(items))
	for _, it := range items {
		w.WriteString(it.Key)
		w.WriteUint64(it.Seq)
		w.WriteUint16(it.TypeID)
		w.WriteLength(len(it.Body))
		w.WriteBytes(it.Body)
	}
	return w.Bytes(), nil
}

// DecodeBatch is the inverse of EncodeBatch.
func DecodeBatch(b []byte) ([]Item, error) {
	if err := checkHeader(b, kindBatch); err != nil {
		return nil, err
	}
	r := wire.NewReaderAt(b, headerSize)
	// key prefix + seq + type + body prefix
	n, err := r.ReadCount(4 + 1 + 8 + 2 + 4)
	if err != nil {
		return nil, corrupt(err)
	}
	items := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		it, err := readItem(r, true)
		if err != nil {
			return nil, corrupt(fmt.Errorf("item %d: %w", i, err))
		}
		items = append(items, it)
	}
	if !r.Done() {
		return nil, corrupt(fmt.Errorf("%d trailing bytes", r.Remaining()))
	}
	return items, nil
}

func readItem(r *wire.Reader, keyed bool) (Item, error) {
	var it Item
	var err error
	if keyed {
		if it.Key, err = r.ReadString(); err != nil {
			return Item{}, err
		}
		if l := len(it.Key); l == 0 || l > maxKeyBytes {
			return Item{}, fmt.Errorf("invalid key length %d", l)
		}
	}
	if it.Seq, err = r.ReadUint64(); err != nil {
		return Item{}, err
	}
	if it.TypeID, err = r.ReadUint16(); err != nil {
		return Item{}, err
	}
	n, err := r.ReadLength()
	if err != nil {
		return Item{}, err
	}
	if it.Body, err = r.ReadBytes(n); err != nil {
		return Item{}, err
	}
	return it, nil
}
