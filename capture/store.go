package capture

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/unkn0wn-root/paramwire"
	"github.com/unkn0wn-root/paramwire/codec"
	"github.com/unkn0wn-root/paramwire/internal/envelope"
	"github.com/unkn0wn-root/paramwire/internal/util"
	"github.com/unkn0wn-root/paramwire/provider"
	"github.com/unkn0wn-root/paramwire/seqstore"
)

// Store is safe for concurrent use.
type Store struct {
	ns         string
	provider   provider.Provider
	seq        seqstore.Sequencer
	codec      codec.Codec[Record]
	reg        *paramwire.Registry
	validate   bool
	ttl        time.Duration
	maxPayload int
	log        paramwire.Logger
}

func (s *Store) Close(ctx context.Context) error {
	// sequencer first (best effort)
	_ = s.seq.Close(ctx)
	return s.provider.Close(ctx)
}

// Capture stores payload as the next record of channel and returns it.
func (s *Store) Capture(ctx context.Context, channel string, id paramwire.TypeID, payload []byte) (Record, error) {
	if channel == "" {
		return Record{}, fmt.Errorf("capture: channel is required")
	}
	if len(channel) > maxChannel {
		return Record{}, fmt.Errorf("%w: %d > %d", ErrChannelTooLong, len(channel), maxChannel)
	}
	if len(payload) > s.maxPayload {
		return Record{}, fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, len(payload), s.maxPayload)
	}
	if s.validate {
		if err := s.reg.Validate(id, payload); err != nil {
			return Record{}, fmt.Errorf("capture: %s: %w", channel, err)
		}
	}

	n, err := s.seq.Next(ctx, channel)
	if err != nil {
		return Record{}, fmt.Errorf("capture: next seq: %w", err)
	}
	rec := Record{
		Channel: channel,
		Seq:     n,
		TypeID:  id,
		At:      time.Now().UTC().Truncate(time.Microsecond),
		Payload: append([]byte(nil), payload...),
	}
	if s.reg != nil {
		rec.Type, _ = s.reg.Name(id)
	}
	if err := s.put(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Store) entry(rec Record) (string, []byte, error) {
	body, err := s.codec.Encode(rec)
	if err != nil {
		return "", nil, fmt.Errorf("capture: encode record: %w", err)
	}
	return util.RecordKey(s.ns, rec.Channel, rec.Seq), envelope.EncodeSingle(rec.Seq, uint16(rec.TypeID), body), nil
}

func (s *Store) put(ctx context.Context, rec Record) error {
	k, env, err := s.entry(rec)
	if err != nil {
		return err
	}
	ok, err := s.provider.Set(ctx, k, env, int64(len(env)), s.ttl)
	if err != nil {
		return fmt.Errorf("capture: store %s: %w", k, err)
	}
	if !ok {
		s.log.Debug("capture rejected by provider (pressure)", paramwire.Fields{"key": k})
	}
	return nil
}

// Get returns record seq of channel. Corrupt or foreign entries are deleted and
// reported as a miss.
func (s *Store) Get(ctx context.Context, channel string, seq uint64) (Record, bool, error) {
	k := util.RecordKey(s.ns, channel, seq)
	raw, ok, err := s.provider.Get(ctx, k)
	if err != nil || !ok {
		return Record{}, false, err
	}
	rec, err := s.open(raw)
	if errors.Is(err, codec.ErrPayloadTooLarge) {
		// written under a larger MaxPayload; not corrupt
		return Record{}, false, fmt.Errorf("capture: %s: %w", k, err)
	}
	if err == nil && (rec.Seq != seq || rec.Channel != channel) {
		err = fmt.Errorf("record %s:%d stored under %s", rec.Channel, rec.Seq, k)
	}
	if err != nil {
		s.log.Warn("dropping corrupt capture", paramwire.Fields{"key": k, "err": err})
		_ = s.provider.Del(ctx, k) // self-heal
		return Record{}, false, nil
	}
	return rec, true, nil
}

func (s *Store) open(raw []byte) (Record, error) {
	it, err := envelope.DecodeSingle(raw)
	if err != nil {
		return Record{}, err
	}
	return s.decodeItem(it)
}

func (s *Store) decodeItem(it envelope.Item) (Record, error) {
	rec, err := s.codec.Decode(it.Body)
	if err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	if rec.Seq != it.Seq || uint16(rec.TypeID) != it.TypeID {
		return Record{}, fmt.Errorf("record header mismatch")
	}
	rec.At = rec.At.UTC()
	return rec, nil
}

// Last returns the newest record of channel, if it is still stored.
func (s *Store) Last(ctx context.Context, channel string) (Record, bool, error) {
	n, err := s.seq.Current(ctx, channel)
	if err != nil || n == 0 {
		return Record{}, false, err
	}
	return s.Get(ctx, channel, n)
}

// Heads returns the last issued sequence of each channel (0 when unused).
func (s *Store) Heads(ctx context.Context, channels []string) (map[string]uint64, error) {
	return s.seq.CurrentMany(ctx, channels)
}

func (s *Store) Drop(ctx context.Context, channel string, seq uint64) error {
	return s.provider.Del(ctx, util.RecordKey(s.ns, channel, seq))
}

// Describe renders the record payload through the registry.
func (s *Store) Describe(rec Record, limit int) (string, error) {
	if s.reg == nil {
		return "", ErrNoRegistry
	}
	return s.reg.Describe(rec.TypeID, rec.Payload, limit)
}

// Export frames the stored records of channel with seq in [from, to] as one
// batch. to == 0 means no upper bound. Missing records are skipped.
func (s *Store) Export(ctx context.Context, channel string, from, to uint64) ([]byte, error) {
	seqs, err := s.Seqs(ctx, channel, to)
	if err != nil {
		return nil, err
	}
	var items []envelope.Item
	for _, n := range seqs {
		if n < from {
			continue
		}
		rec, ok, err := s.Get(ctx, channel, n)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		body, err := s.codec.Encode(rec)
		if err != nil {
			return nil, fmt.Errorf("capture: encode record: %w", err)
		}
		items = append(items, envelope.Item{
			Key:    util.RecordKey(s.ns, channel, n),
			Seq:    n,
			TypeID: uint16(rec.TypeID),
			Body:   body,
		})
	}
	return envelope.EncodeBatch(items)
}

// Import stores every record of an Export batch under this store's namespace
// and returns the stored records. Records that fail validation are skipped.
// Sequencers are not advanced: a later Capture on the same channel may replace
// imported records.
func (s *Store) Import(ctx context.Context, batch []byte) ([]Record, error) {
	items, err := envelope.DecodeBatch(batch)
	if err != nil {
		return nil, err
	}
	var recs []Record
	for _, it := range items {
		rec, err := s.decodeItem(it)
		if err == nil && !strings.HasSuffix(it.Key, ":"+strconv.FormatUint(rec.Seq, 10)) {
			err = fmt.Errorf("key %q does not match seq %d", it.Key, rec.Seq)
		}
		if err == nil && s.validate {
			err = s.reg.Validate(rec.TypeID, rec.Payload)
		}
		if err != nil {
			s.log.Warn("skipping imported capture", paramwire.Fields{"key": it.Key, "err": err})
			continue
		}
		recs = append(recs, rec)
	}

	if bs, ok := s.provider.(provider.BatchSetter); ok {
		entries := make(map[string][]byte, len(recs))
		for _, rec := range recs {
			k, env, err := s.entry(rec)
			if err != nil {
				return nil, err
			}
			entries[k] = env
		}
		if err := bs.SetMany(ctx, entries, s.ttl); err != nil {
			return nil, fmt.Errorf("capture: import: %w", err)
		}
		return recs, nil
	}

	for i, rec := range recs {
		if err := s.put(ctx, rec); err != nil {
			return recs[:i], err
		}
	}
	return recs, nil
}

// Seqs lists the stored sequence numbers of channel in ascending order, up to
// upTo (0 = no bound). Providers that cannot enumerate keys are probed from 1 to
// upTo, or to the channel head when upTo is 0.
func (s *Store) Seqs(ctx context.Context, channel string, upTo uint64) ([]uint64, error) {
	if sc, ok := s.provider.(provider.Scanner); ok {
		prefix := util.RecordPrefix(s.ns, channel)
		var out []uint64
		err := sc.Scan(ctx, prefix, func(k string) bool {
			n, err := strconv.ParseUint(k[len(prefix):], 10, 64)
			if err == nil && n != 0 && (upTo == 0 || n <= upTo) {
				out = append(out, n)
			}
			return true
		})
		if err != nil {
			return nil, fmt.Errorf("capture: scan %s: %w", prefix, err)
		}
		slices.Sort(out)
		return out, nil
	}

	if upTo == 0 {
		n, err := s.seq.Current(ctx, channel)
		if err != nil {
			return nil, fmt.Errorf("capture: current seq: %w", err)
		}
		upTo = n
	}
	var out []uint64
	for n := uint64(1); n <= upTo && n != 0; n++ {
		_, ok, err := s.provider.Get(ctx, util.RecordKey(s.ns, channel, n))
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}
