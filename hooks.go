package paramwire

import "github.com/unkn0wn-root/paramwire/wire"

// Hooks are callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; they run on the encode/decode path.
type Hooks interface {
	// A message of the named type was encoded.
	MessageEncoded(name string, size int)

	// A message failed to decode. kind is 0 when the failure was not a wire
	// decode error (e.g. a structured codec rejected it).
	DecodeFailed(name string, kind wire.Kind, size int)

	// A message exceeded MaxMessageSize. op ∈ {"encode", "decode"}.
	MessageOversized(name, op string, size, limit int)

	// Describe output was cut at the limit.
	DescribeTruncated(name string, limit int)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) MessageEncoded(string, int)                {}
func (NopHooks) DecodeFailed(string, wire.Kind, int)       {}
func (NopHooks) MessageOversized(string, string, int, int) {}
func (NopHooks) DescribeTruncated(string, int)             {}
