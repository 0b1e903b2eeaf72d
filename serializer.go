package paramwire

import (
	"errors"

	"github.com/unkn0wn-root/paramwire/codec"
	"github.com/unkn0wn-root/paramwire/param"
	"github.com/unkn0wn-root/paramwire/wire"
)

type serializer[V any] struct {
	name    string
	codec   codec.Codec[V]
	log     func(V, *param.LogBuffer)
	logger  Logger
	hooks   Hooks
	maxSize int
	limit   int
	verbose bool
}

var _ Serializer[struct{}] = (*serializer[struct{}])(nil)

func newSerializer[V any](opts Options[V]) (*serializer[V], error) {
	if opts.Name == "" {
		return nil, errors.New("paramwire: Options.Name is required")
	}
	if opts.Codec == nil {
		return nil, errors.New("paramwire: Options.Codec is required")
	}
	var logger Logger = NopLogger{}
	if opts.Logger != nil {
		logger = opts.Logger
	}
	var hooks Hooks = NopHooks{}
	if opts.Hooks != nil {
		hooks = opts.Hooks
	}
	log := opts.Log
	if log == nil {
		log = func(v V, l *param.LogBuffer) { l.Printf("%+v", v) }
	}
	return &serializer[V]{
		name:    opts.Name,
		codec:   opts.Codec,
		log:     log,
		logger:  logger,
		hooks:   hooks,
		maxSize: coalesce(opts.MaxMessageSize, defaultMaxMessageSize),
		limit:   coalesce(opts.DescribeLimit, defaultDescribeLimit),
		verbose: opts.LogValues,
	}, nil
}

func (s *serializer[V]) Name() string { return s.name }

func (s *serializer[V]) Marshal(v V) ([]byte, error) {
	b, err := s.codec.Encode(v)
	if err != nil {
		s.logger.Error("paramwire: encode failed", Fields{"type": s.name, "err": err})
		return nil, &MessageError{Type: s.name, Op: "encode", Err: err}
	}
	if s.oversized("encode", len(b)) {
		return nil, &MessageError{Type: s.name, Op: "encode", Size: len(b), Err: ErrMessageTooLarge}
	}
	s.hooks.MessageEncoded(s.name, len(b))
	if s.verbose {
		s.logger.Debug("paramwire: encoded", Fields{"type": s.name, "size": len(b), "value": s.Describe(v)})
	}
	return b, nil
}

func (s *serializer[V]) Unmarshal(b []byte) (V, error) {
	var zero V
	if s.oversized("decode", len(b)) {
		return zero, &MessageError{Type: s.name, Op: "decode", Size: len(b), Err: ErrMessageTooLarge}
	}
	v, err := s.codec.Decode(b)
	if err != nil {
		kind, _ := wire.KindOf(err)
		s.hooks.DecodeFailed(s.name, kind, len(b))
		f := Fields{"type": s.name, "size": len(b), "err": err}
		var de *wire.DecodeError
		if errors.As(err, &de) {
			f["kind"] = de.Kind.String()
			f["offset"] = de.Offset
		}
		s.logger.Warn("paramwire: decode failed", f)
		return zero, &MessageError{Type: s.name, Op: "decode", Size: len(b), Err: err}
	}
	if s.verbose {
		s.logger.Debug("paramwire: decoded", Fields{"type": s.name, "size": len(b), "value": s.Describe(v)})
	}
	return v, nil
}

func (s *serializer[V]) Describe(v V) string {
	l := param.NewLogBuffer(s.limit)
	s.log(v, l)
	if l.Truncated() {
		s.hooks.DescribeTruncated(s.name, s.limit)
	}
	return l.String()
}

func (s *serializer[V]) oversized(op string, size int) bool {
	if s.maxSize <= 0 || size <= s.maxSize {
		return false
	}
	s.hooks.MessageOversized(s.name, op, size, s.maxSize)
	s.logger.Warn("paramwire: message too large", Fields{
		"type": s.name, "op": op, "size": size, "limit": s.maxSize,
	})
	return true
}
