package paramwire

const (
	defaultMaxMessageSize = 16 << 20
	defaultDescribeLimit  = 4096
)

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
