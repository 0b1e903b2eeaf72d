package wire

import (
	"errors"
	"fmt"
)

// Kind classifies a decode failure.
type Kind uint8

const (
	// KindTruncated: fewer bytes remain than the value needs. The message is
	// incomplete and should be discarded.
	KindTruncated Kind = iota + 1
	// KindMalformed: the bytes are present but violate a type invariant. The
	// message is corrupt; discard it and flag the peer.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindTruncated:
		return "truncated"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

var (
	ErrTruncated = errors.New("wire: truncated")
	ErrMalformed = errors.New("wire: malformed")
)

// DecodeError is returned by every failing read. It matches ErrTruncated or
// ErrMalformed under errors.Is depending on Kind.
type DecodeError struct {
	Kind   Kind
	Offset int // cursor position where the failing read started
	Msg    string
}

func (e *DecodeError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("wire: %s at offset %d", e.Kind, e.Offset)
	}
	return fmt.Sprintf("wire: %s at offset %d: %s", e.Kind, e.Offset, e.Msg)
}

func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrTruncated:
		return e.Kind == KindTruncated
	case ErrMalformed:
		return e.Kind == KindMalformed
	}
	return false
}

// Truncated reports that need bytes were required at off but only have remain.
func Truncated(off, need, have int) error {
	return &DecodeError{
		Kind:   KindTruncated,
		Offset: off,
		Msg:    fmt.Sprintf("need %d bytes, have %d", need, have),
	}
}

// Malformed reports an invariant violation found at off.
func Malformed(off int, format string, args ...any) error {
	return &DecodeError{
		Kind:   KindMalformed,
		Offset: off,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// KindOf extracts the decode kind from err (through any wrap chain).
// ok is false when err is not a decode failure.
func KindOf(err error) (k Kind, ok bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	switch {
	case errors.Is(err, ErrTruncated):
		return KindTruncated, true
	case errors.Is(err, ErrMalformed):
		return KindMalformed, true
	}
	return 0, false
}
