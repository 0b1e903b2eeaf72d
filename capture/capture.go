// Package capture records encoded messages per channel for later inspection.
//
// Each Capture takes the next sequence number of its channel from a
// seqstore.Sequencer and stores the record under "rec:<ns>:<token>:<seq>" in a
// provider.Provider, framed by a versioned envelope. Entries that fail envelope
// or record validation are deleted on read and reported as misses. <token> is
// "n:<channel>" for short plain names and "h:" plus a sha256 prefix otherwise.
//
//	st, _ := capture.New(capture.Options{
//	    Namespace: "renderer",
//	    Provider:  prov,
//	    Registry:  traits.NewRegistry(),
//	})
//	rec, _ := st.Capture(ctx, "net", traits.TypeURL, payload)
//	out, _ := st.Describe(rec, 256)
package capture

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/unkn0wn-root/paramwire"
	"github.com/unkn0wn-root/paramwire/codec"
	"github.com/unkn0wn-root/paramwire/provider"
	"github.com/unkn0wn-root/paramwire/seqstore"
)

const (
	defaultTTL        = time.Hour
	defaultMaxPayload = 16 << 20
	defaultSweep      = time.Hour
	defaultRetention  = 24 * time.Hour

	maxChannel = 1 << 10
	// channel (escaped by text codecs), seq, type and time of an encoded record
	recordOverhead = 8 << 10
)

var (
	ErrNoRegistry      = errors.New("capture: no registry configured")
	ErrPayloadTooLarge = errors.New("capture: payload too large")
	ErrChannelTooLong  = errors.New("capture: channel name too long")
)

type Options struct {
	// Required
	Namespace string
	Provider  provider.Provider

	// Sequencer issues per-channel sequence numbers. nil => in-process counters
	// pruned after a day of inactivity.
	Sequencer seqstore.Sequencer
	// Codec encodes records inside the envelope. nil => Msgpack.
	Codec codec.Codec[Record]
	// Registry names type ids and describes payloads. nil => records keep only ids.
	Registry *paramwire.Registry
	// Validate rejects payloads that do not decode as their type. Needs Registry.
	Validate bool

	TTL        time.Duration // 0 => 1h
	MaxPayload int           // 0 => 16 MiB
	Logger     paramwire.Logger
}

func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// RecordLimit bounds the encoded size of a record whose payload is at most
// maxPayload bytes, with 0 read as the default MaxPayload. Text codecs carry the
// payload as base64. A result of 0 means unbounded.
func RecordLimit(maxPayload int) int {
	maxPayload = coalesce(maxPayload, defaultMaxPayload)
	if maxPayload < 0 || maxPayload > (math.MaxInt-recordOverhead)/2 {
		return 0
	}
	return 2*maxPayload + recordOverhead
}

func New(opts Options) (*Store, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("capture: provider is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("capture: namespace is required")
	}
	if opts.Validate && opts.Registry == nil {
		return nil, fmt.Errorf("capture: Validate needs a Registry")
	}

	s := &Store{
		ns:       opts.Namespace,
		provider: opts.Provider,
		reg:      opts.Registry,
		validate: opts.Validate,
		log:      opts.Logger,
	}
	if s.log == nil {
		s.log = paramwire.NopLogger{}
	}
	s.ttl = coalesce(opts.TTL, defaultTTL)
	s.maxPayload = coalesce(opts.MaxPayload, defaultMaxPayload)

	inner := opts.Codec
	if inner == nil {
		inner = codec.Msgpack[Record]{}
	}
	s.codec = codec.Limit[Record]{Inner: inner, MaxDecode: RecordLimit(s.maxPayload)}

	if opts.Sequencer != nil {
		s.seq = opts.Sequencer
	} else {
		s.seq = seqstore.NewLocal(defaultSweep, defaultRetention)
	}
	return s, nil
}
