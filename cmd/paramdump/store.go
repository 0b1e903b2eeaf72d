package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/paramwire/capture"
	"github.com/unkn0wn-root/paramwire/codec"
	"github.com/unkn0wn-root/paramwire/provider"
	"github.com/unkn0wn-root/paramwire/provider/bigcache"
	"github.com/unkn0wn-root/paramwire/provider/redis"
	"github.com/unkn0wn-root/paramwire/provider/ristretto"
	"github.com/unkn0wn-root/paramwire/seqstore"
)

// waiter is implemented by providers that apply writes asynchronously.
type waiter interface{ Wait() }

func (e *env) openStore() (*capture.Store, provider.Provider, error) {
	var (
		prov provider.Provider
		seq  seqstore.Sequencer
		err  error
	)
	switch e.cfg.Provider {
	case "ristretto":
		prov, err = ristretto.New(ristretto.Config{NumCounters: 1e5, MaxCost: 64 << 20, BufferItems: 64})
	case "bigcache":
		prov, err = bigcache.New(bigcache.Config{
			LifeWindow:         e.cfg.TTL,
			MaxEntriesInWindow: 1 << 12,
			MaxEntrySize:       1 << 10,
		})
	case "redis":
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     e.cfg.RedisAddr,
			Password: e.cfg.RedisPassword,
			DB:       e.cfg.RedisDB,
		})
		if prov, err = redis.New(redis.Config{Client: rdb, CloseClient: true}); err == nil {
			seq, err = seqstore.NewRedis(seqstore.RedisConfig{Client: rdb, Namespace: e.cfg.Namespace, TTL: e.cfg.TTL})
		}
	default:
		err = fmt.Errorf("unsupported provider %q", e.cfg.Provider)
	}
	if err != nil {
		return nil, nil, err
	}

	maxPayload := e.cfg.MaxMessageSize
	if maxPayload < 0 {
		maxPayload = math.MaxInt
	}

	var rc codec.Codec[capture.Record]
	switch e.cfg.RecordCodec {
	case "json":
		rc = codec.JSON[capture.Record]{}
	case "cbor":
		rc, err = codec.NewCBOR[capture.Record](codec.CBOROptions{
			Deterministic: true,
			MaxDecode:     capture.RecordLimit(maxPayload),
		})
	case "protobuf":
		rc = capture.ProtoRecordCodec{}
	default:
		rc = codec.Msgpack[capture.Record]{}
	}
	if err != nil {
		_ = prov.Close(context.Background())
		return nil, nil, err
	}

	st, err := capture.New(capture.Options{
		Namespace:  e.cfg.Namespace,
		Provider:   prov,
		Sequencer:  seq,
		Codec:      rc,
		Registry:   e.reg,
		Validate:   true,
		TTL:        e.cfg.TTL,
		MaxPayload: maxPayload,
		Logger:     e.logger,
	})
	if err != nil {
		_ = prov.Close(context.Background())
		return nil, nil, err
	}
	return st, prov, nil
}

func settle(p provider.Provider) {
	if w, ok := p.(waiter); ok {
		w.Wait()
	}
}

func (e *env) capture(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	fs.SetOutput(stderr)
	channel := fs.String("channel", "", "capture channel")
	typ := fs.String("type", "", "payload type name")
	value := fs.String("value", "", "value text")
	export := fs.String("export", "", "write the channel's records to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *channel == "" || *typ == "" {
		fs.Usage()
		return errUsage
	}

	b, id, err := e.encodeValue(*typ, *value)
	if err != nil {
		return err
	}
	st, prov, err := e.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(ctx) }()

	rec, err := st.Capture(ctx, *channel, id, b)
	if err != nil {
		return err
	}
	settle(prov)
	e.zl.Debug("captured", zapFields(rec)...)
	if err := e.printRecord(st, rec); err != nil {
		return err
	}

	if *export != "" {
		batch, err := st.Export(ctx, *channel, 0, 0)
		if err != nil {
			return err
		}
		return os.WriteFile(*export, batch, 0o644)
	}
	return nil
}

func (e *env) show(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(stderr)
	channel := fs.String("channel", "", "capture channel")
	seq := fs.Uint64("seq", 0, "record sequence (0 = every stored record)")
	last := fs.Uint64("last", 0, "highest sequence to show (0 = no bound)")
	imp := fs.String("import", "", "load records exported by capture -export")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *channel == "" {
		fs.Usage()
		return errUsage
	}

	st, prov, err := e.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(ctx) }()

	if *imp != "" {
		batch, err := os.ReadFile(*imp)
		if err != nil {
			return err
		}
		recs, err := st.Import(ctx, batch)
		if err != nil {
			return err
		}
		settle(prov)
		e.zl.Debug("imported captures", zap.Int("records", len(recs)), zap.String("file", *imp))
		// imported records do not advance the sequencer; probe up to the newest one
		for _, rec := range recs {
			if rec.Channel == *channel && rec.Seq > *last {
				*last = rec.Seq
			}
		}
	}

	if *seq != 0 {
		rec, ok, err := st.Get(ctx, *channel, *seq)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no record %s:%d", *channel, *seq)
		}
		return e.printRecord(st, rec)
	}

	seqs, err := st.Seqs(ctx, *channel, *last)
	if err != nil {
		return err
	}
	found := 0
	for _, n := range seqs {
		rec, ok, err := st.Get(ctx, *channel, n)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		found++
		if err := e.printRecord(st, rec); err != nil {
			return err
		}
	}
	if found == 0 {
		return fmt.Errorf("no records for channel %q", *channel)
	}
	return nil
}

func (e *env) printRecord(st *capture.Store, rec capture.Record) error {
	desc, err := st.Describe(rec, e.cfg.DescribeLimit)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "%s#%d\t%s\t%s\t%s\n", rec.Channel, rec.Seq, rec.At.Format(time.RFC3339Nano), rec.Type, desc)
	return nil
}

func zapFields(rec capture.Record) []zap.Field {
	return []zap.Field{
		zap.String("channel", rec.Channel),
		zap.Uint64("seq", rec.Seq),
		zap.String("type", rec.Type),
		zap.Int("size", len(rec.Payload)),
	}
}
