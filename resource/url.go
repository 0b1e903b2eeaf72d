package resource

import (
	"net/url"
	"strings"
)

// MaxURLChars is the longest spec that is carried over the wire. Longer URLs are
// sent as the empty (invalid) URL.
const MaxURLChars = 2 * 1024 * 1024

// URL is an immutable parsed URL with a canonical serialization.
// The zero value is the empty, invalid URL.
type URL struct {
	spec  string
	valid bool
}

// ParseURL canonicalizes s: scheme and host are lowercased and the rest is
// re-serialized by net/url. Parse failures produce an invalid URL that still
// remembers the input.
func ParseURL(s string) URL {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return URL{spec: s}
	}
	if u.Host == "" && u.Opaque == "" && u.Scheme != "file" {
		return URL{spec: s}
	}
	u.Host = strings.ToLower(u.Host)
	return URL{spec: u.String(), valid: true}
}

// MustParseURL is ParseURL for literals known to be valid.
func MustParseURL(s string) URL {
	u := ParseURL(s)
	if !u.valid {
		panic("resource: invalid URL " + s)
	}
	return u
}

func (u URL) IsValid() bool { return u.valid }

func (u URL) IsEmpty() bool { return u.spec == "" }

// Spec returns the canonical serialization, or "" for invalid URLs.
func (u URL) Spec() string {
	if !u.valid {
		return ""
	}
	return u.spec
}

// PossiblyInvalidSpec returns whatever text the URL was built from.
func (u URL) PossiblyInvalidSpec() string { return u.spec }

// Scheme returns the lowercased scheme of a valid URL.
func (u URL) Scheme() string {
	if !u.valid {
		return ""
	}
	i := strings.IndexByte(u.spec, ':')
	return u.spec[:i]
}

// Equal compares canonical specs. All invalid URLs are equal to each other.
func (u URL) Equal(o URL) bool { return u.valid == o.valid && u.Spec() == o.Spec() }

func (u URL) String() string { return u.spec }
