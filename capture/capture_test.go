package capture_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/paramwire"
	"github.com/unkn0wn-root/paramwire/capture"
	"github.com/unkn0wn-root/paramwire/codec"
	"github.com/unkn0wn-root/paramwire/provider"
	"github.com/unkn0wn-root/paramwire/resource"
	"github.com/unkn0wn-root/paramwire/seqstore"
	"github.com/unkn0wn-root/paramwire/traits"
)

type memProvider struct {
	mu     sync.Mutex
	m      map[string][]byte
	reject bool
}

func newMem() *memProvider { return &memProvider{m: make(map[string][]byte)} }

func (p *memProvider) Get(_ context.Context, k string) ([]byte, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.m[k]
	return b, ok, nil
}

func (p *memProvider) Set(_ context.Context, k string, v []byte, _ int64, _ time.Duration) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.reject {
		return false, nil
	}
	p.m[k] = append([]byte(nil), v...)
	return true, nil
}

func (p *memProvider) Del(_ context.Context, k string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.m, k)
	return nil
}

func (p *memProvider) Close(context.Context) error { return nil }

func (p *memProvider) put(k string, v []byte) {
	p.mu.Lock()
	p.m[k] = v
	p.mu.Unlock()
}

func (p *memProvider) has(k string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.m[k]
	return ok
}

// scanProvider adds key enumeration and batched writes.
type scanProvider struct {
	*memProvider
	batches int
}

func (p *scanProvider) Scan(_ context.Context, prefix string, fn func(string) bool) error {
	p.mu.Lock()
	keys := make([]string, 0, len(p.m))
	for k := range p.m {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	p.mu.Unlock()
	for _, k := range keys {
		if !fn(k) {
			return nil
		}
	}
	return nil
}

func (p *scanProvider) SetMany(ctx context.Context, items map[string][]byte, ttl time.Duration) error {
	p.batches++
	for k, v := range items {
		if _, err := p.Set(ctx, k, v, 0, ttl); err != nil {
			return err
		}
	}
	return nil
}

func newStore(t *testing.T, prov provider.Provider, mut func(*capture.Options)) *capture.Store {
	t.Helper()
	opts := capture.Options{
		Namespace: "ns",
		Provider:  prov,
		Sequencer: seqstore.NewLocal(0, 0),
		Registry:  traits.NewRegistry(),
	}
	if mut != nil {
		mut(&opts)
	}
	s, err := capture.New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func hostPortPayload(t *testing.T, host string, port uint16) []byte {
	t.Helper()
	b, err := codec.Wire[resource.HostPortPair, traits.HostPortPair]{}.Encode(resource.HostPortPair{Host: host, Port: port})
	require.NoError(t, err)
	return b
}

func assertSameRecord(t *testing.T, want, got capture.Record) {
	t.Helper()
	assert.Equal(t, want.Channel, got.Channel)
	assert.Equal(t, want.Seq, got.Seq)
	assert.Equal(t, want.TypeID, got.TypeID)
	assert.Equal(t, want.Type, got.Type)
	assert.Equal(t, want.Payload, got.Payload)
	// float-second time encodings may round the last microsecond
	assert.WithinDuration(t, want.At, got.At, time.Microsecond)
}

func TestCaptureGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newMem(), nil)

	rec, err := s.Capture(ctx, "net", traits.TypeHostPortPair, hostPortPayload(t, "example.com", 443))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rec.Seq)
	assert.Equal(t, "host_port", rec.Type)
	assert.False(t, rec.At.IsZero())

	got, ok, err := s.Get(ctx, "net", 1)
	require.NoError(t, err)
	require.True(t, ok)
	assertSameRecord(t, rec, got)

	desc, err := s.Describe(got, 0)
	require.NoError(t, err)
	assert.Equal(t, "example.com:443", desc)
}

func TestSequencesArePerChannel(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newMem(), nil)
	p := hostPortPayload(t, "a", 1)

	for want := uint64(1); want <= 3; want++ {
		rec, err := s.Capture(ctx, "a", traits.TypeHostPortPair, p)
		require.NoError(t, err)
		assert.Equal(t, want, rec.Seq)
	}
	rec, err := s.Capture(ctx, "b", traits.TypeHostPortPair, p)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rec.Seq)

	last, ok, err := s.Last(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(3), last.Seq)

	heads, err := s.Heads(ctx, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, map[string]uint64{"a": 3, "b": 1, "c": 0}, heads)

	_, ok, err = s.Last(ctx, "c")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCorruptEntriesSelfHeal(t *testing.T) {
	ctx := context.Background()
	prov := newMem()
	s := newStore(t, prov, nil)

	rec, err := s.Capture(ctx, "net", traits.TypeHostPortPair, hostPortPayload(t, "h", 80))
	require.NoError(t, err)

	prov.put("rec:ns:n:net:1", []byte("garbage"))
	_, ok, err := s.Get(ctx, "net", 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, prov.has("rec:ns:n:net:1"), "corrupt entry should be deleted")

	// a valid record stored under the wrong key is foreign
	_, err = s.Capture(ctx, "net", traits.TypeHostPortPair, rec.Payload)
	require.NoError(t, err)
	raw, _, _ := prov.Get(ctx, "rec:ns:n:net:2")
	prov.put("rec:ns:n:net:7", raw)
	_, ok, err = s.Get(ctx, "net", 7)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, prov.has("rec:ns:n:net:7"))
}

func TestValidateRejectsBadPayloads(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newMem(), func(o *capture.Options) { o.Validate = true })

	_, err := s.Capture(ctx, "net", traits.TypeHostPortPair, []byte{1, 0})
	require.Error(t, err)

	_, err = s.Capture(ctx, "net", paramwire.TypeID(999), hostPortPayload(t, "h", 1))
	require.ErrorIs(t, err, paramwire.ErrUnknownType)
}

func TestOptionsAndLimits(t *testing.T) {
	_, err := capture.New(capture.Options{Namespace: "ns"})
	require.Error(t, err)
	_, err = capture.New(capture.Options{Provider: newMem()})
	require.Error(t, err)
	_, err = capture.New(capture.Options{Namespace: "ns", Provider: newMem(), Validate: true})
	require.Error(t, err)

	ctx := context.Background()
	s := newStore(t, newMem(), func(o *capture.Options) { o.MaxPayload = 4; o.Registry = nil })
	_, err = s.Capture(ctx, "net", 1, make([]byte, 5))
	require.ErrorIs(t, err, capture.ErrPayloadTooLarge)
	_, err = s.Capture(ctx, "", 1, nil)
	require.Error(t, err)

	rec, err := s.Capture(ctx, "net", 1, []byte{1})
	require.NoError(t, err)
	assert.Empty(t, rec.Type)
	_, err = s.Describe(rec, 0)
	require.ErrorIs(t, err, capture.ErrNoRegistry)
}

func TestDrop(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newMem(), nil)
	_, err := s.Capture(ctx, "net", traits.TypeHostPortPair, hostPortPayload(t, "h", 1))
	require.NoError(t, err)
	require.NoError(t, s.Drop(ctx, "net", 1))
	_, ok, err := s.Get(ctx, "net", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := newStore(t, newMem(), nil)

	var recs []capture.Record
	for i := 0; i < 3; i++ {
		rec, err := src.Capture(ctx, "net", traits.TypeHostPortPair, hostPortPayload(t, "h", uint16(i)))
		require.NoError(t, err)
		recs = append(recs, rec)
	}
	require.NoError(t, src.Drop(ctx, "net", 2))

	batch, err := src.Export(ctx, "net", 0, 0)
	require.NoError(t, err)

	dstProv := newMem()
	dst := newStore(t, dstProv, func(o *capture.Options) { o.Namespace = "other" })
	imported, err := dst.Import(ctx, batch)
	require.NoError(t, err)
	require.Len(t, imported, 2)
	assert.Equal(t, uint64(1), imported[0].Seq)
	assert.Equal(t, uint64(3), imported[1].Seq)
	assert.True(t, dstProv.has("rec:other:n:net:1"))

	got, ok, err := dst.Get(ctx, "net", 3)
	require.NoError(t, err)
	require.True(t, ok)
	assertSameRecord(t, recs[2], got)

	_, ok, err = dst.Get(ctx, "net", 2)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = dst.Import(ctx, []byte("not a batch"))
	require.Error(t, err)
}

func TestRecordCodecs(t *testing.T) {
	cases := map[string]codec.Codec[capture.Record]{
		"msgpack":  codec.Msgpack[capture.Record]{},
		"json":     codec.JSON[capture.Record]{},
		"cbor":     codec.MustCBOR[capture.Record](codec.CBOROptions{Deterministic: true}),
		"protobuf": capture.ProtoRecordCodec{},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t, newMem(), func(o *capture.Options) { o.Codec = c })
			rec, err := s.Capture(ctx, "net", traits.TypeHostPortPair, hostPortPayload(t, "example.com", 443))
			require.NoError(t, err)
			got, ok, err := s.Get(ctx, "net", rec.Seq)
			require.NoError(t, err)
			require.True(t, ok)
			assertSameRecord(t, rec, got)
		})
	}
}

func TestProtoRecordCodecKeepsLargeSeq(t *testing.T) {
	in := capture.Record{Channel: "c", Seq: 1<<60 + 1, TypeID: 7, At: time.Unix(1, 0).UTC()}
	b, err := capture.ProtoRecordCodec{}.Encode(in)
	require.NoError(t, err)
	out, err := capture.ProtoRecordCodec{}.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, in.Seq, out.Seq)
	assert.Nil(t, out.Payload)
}

func TestSeqsAndImportWithScanningProvider(t *testing.T) {
	ctx := context.Background()
	src := newStore(t, &scanProvider{memProvider: newMem()}, nil)
	for i := 0; i < 12; i++ {
		_, err := src.Capture(ctx, "net", traits.TypeHostPortPair, hostPortPayload(t, "h", uint16(i)))
		require.NoError(t, err)
	}
	_, err := src.Capture(ctx, "other", traits.TypeHostPortPair, hostPortPayload(t, "h", 1))
	require.NoError(t, err)
	require.NoError(t, src.Drop(ctx, "net", 5))

	seqs, err := src.Seqs(ctx, "net", 0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3, 4, 6, 7, 8, 9, 10, 11, 12}, seqs, "numeric order, not key order")

	seqs, err = src.Seqs(ctx, "net", 3)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, seqs)

	batch, err := src.Export(ctx, "net", 10, 0)
	require.NoError(t, err)

	dstProv := &scanProvider{memProvider: newMem()}
	dst := newStore(t, dstProv, nil)
	recs, err := dst.Import(ctx, batch)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, 1, dstProv.batches)

	// imported records are visible to a scan even though the sequencer never moved
	seqs, err = dst.Seqs(ctx, "net", 0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{10, 11, 12}, seqs)
}

func TestSeqsProbesWithoutScanner(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newMem(), nil)
	for i := 0; i < 3; i++ {
		_, err := s.Capture(ctx, "net", traits.TypeHostPortPair, hostPortPayload(t, "h", 1))
		require.NoError(t, err)
	}
	require.NoError(t, s.Drop(ctx, "net", 2))

	seqs, err := s.Seqs(ctx, "net", 0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 3}, seqs)
}

// uncomparable option values must not break New
type taggedCodec struct {
	codec.Msgpack[capture.Record]
	tags map[string]string
}

type bufferedLogger struct {
	paramwire.NopLogger
	lines []string
}

func TestNewAcceptsUncomparableOptions(t *testing.T) {
	ctx := context.Background()
	var s *capture.Store
	require.NotPanics(t, func() {
		s = newStore(t, newMem(), func(o *capture.Options) {
			o.Codec = taggedCodec{tags: map[string]string{"k": "v"}}
			o.Logger = bufferedLogger{lines: []string{"x"}}
		})
	})
	rec, err := s.Capture(ctx, "net", traits.TypeHostPortPair, hostPortPayload(t, "h", 1))
	require.NoError(t, err)
	got, ok, err := s.Get(ctx, "net", rec.Seq)
	require.NoError(t, err)
	require.True(t, ok)
	assertSameRecord(t, rec, got)
}

func TestRecordLimit(t *testing.T) {
	assert.Equal(t, capture.RecordLimit(16<<20), capture.RecordLimit(0))
	assert.Greater(t, capture.RecordLimit(100), 200)
	assert.Zero(t, capture.RecordLimit(-1))
	assert.Zero(t, capture.RecordLimit(int(^uint(0)>>1)))
}

func TestOversizedRecordsAreKeptAndReported(t *testing.T) {
	ctx := context.Background()
	prov := newMem()
	big := newStore(t, prov, func(o *capture.Options) { o.MaxPayload = 1 << 20 })
	rec, err := big.Capture(ctx, "net", traits.TypeURL, make([]byte, 64<<10))
	require.NoError(t, err)
	batch, err := big.Export(ctx, "net", 0, 0)
	require.NoError(t, err)

	small := newStore(t, prov, func(o *capture.Options) { o.MaxPayload = 16 })
	_, ok, err := small.Get(ctx, "net", rec.Seq)
	require.ErrorIs(t, err, codec.ErrPayloadTooLarge)
	assert.False(t, ok)
	assert.True(t, prov.has("rec:ns:n:net:1"), "oversized entry is not corrupt")

	other := newStore(t, newMem(), func(o *capture.Options) { o.MaxPayload = 16 })
	imported, err := other.Import(ctx, batch)
	require.NoError(t, err)
	assert.Empty(t, imported)
}

func TestChannelLimits(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newMem(), nil)
	_, err := s.Capture(ctx, strings.Repeat("c", 1<<10+1), traits.TypeHostPortPair, hostPortPayload(t, "h", 1))
	require.ErrorIs(t, err, capture.ErrChannelTooLong)
}

func TestLookalikeChannelKeepsHashedChannelRecords(t *testing.T) {
	ctx := context.Background()
	prov := newMem()
	s := newStore(t, prov, nil)

	long := strings.Repeat("x", 65)
	sum := sha256.Sum256([]byte(long))
	lookalike := "h" + hex.EncodeToString(sum[:8])
	a, err := s.Capture(ctx, long, traits.TypeHostPortPair, hostPortPayload(t, "a", 1))
	require.NoError(t, err)
	_, err = s.Capture(ctx, lookalike, traits.TypeHostPortPair, hostPortPayload(t, "b", 2))
	require.NoError(t, err)

	got, ok, err := s.Get(ctx, long, a.Seq)
	require.NoError(t, err)
	require.True(t, ok)
	assertSameRecord(t, a, got)
	_, ok, err = s.Get(ctx, lookalike, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}
