// Package traits holds the codec entries for the resource types: one zero-size
// trait per type, each implementing param.Traits.
//
//	w := wire.NewWriter(0)
//	traits.RequestStatus{}.Write(w, resource.NewRequestStatus(resource.StatusFailed, -7))
//	st, err := traits.RequestStatus{}.Read(wire.NewReader(w.Bytes()))
//
// Decode failures are *wire.DecodeError values, annotated with the field that
// failed; errors.Is against wire.ErrTruncated and wire.ErrMalformed works through
// the annotation.
package traits
