package paramwire

import (
	"errors"
	"fmt"
)

var (
	ErrMessageTooLarge = errors.New("paramwire: message too large")
	ErrUnknownType     = errors.New("paramwire: unknown type id")
	ErrDuplicateType   = errors.New("paramwire: duplicate type registration")
)

// MessageError reports a failed encode or decode of one message.
// It unwraps to the underlying cause, so errors.Is(err, wire.ErrTruncated) and
// friends keep working.
type MessageError struct {
	Type string // Options.Name of the serializer
	Op   string // "encode" or "decode"
	Size int    // payload size in bytes
	Err  error
}

func (e *MessageError) Error() string {
	return fmt.Sprintf("paramwire: %s %s (%d bytes): %v", e.Op, e.Type, e.Size, e.Err)
}

func (e *MessageError) Unwrap() error { return e.Err }
