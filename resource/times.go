package resource

import "time"

// sameMicro compares instants at the resolution they travel with. The zero time
// and the Unix epoch share the wire value 0 and compare equal.
func sameMicro(a, b time.Time) bool {
	return micros(a) == micros(b)
}

func micros(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}
