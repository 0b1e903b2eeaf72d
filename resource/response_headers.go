package resource

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// ErrInvalidHeaders is returned for blocks that do not start with a valid status
// line or contain a line that is not "name: value".
var ErrInvalidHeaders = errors.New("resource: invalid response headers")

// Header is one name/value line. Names keep the case they arrived with.
type Header struct {
	Name  string
	Value string
}

// ResponseHeaders is a parsed HTTP response head.
//
// The canonical raw form (RawHeaders) is the status line followed by one
// "Name: value" line per header, each terminated by NUL, and one extra NUL at the
// end of the block.
type ResponseHeaders struct {
	statusLine string
	code       int
	headers    []Header
}

// ParseResponseHeaders parses a NUL-, CRLF- or LF-separated header block. Empty
// lines (including the trailing terminator) are skipped.
func ParseResponseHeaders(raw string) (*ResponseHeaders, error) {
	lines := strings.FieldsFunc(raw, func(r rune) bool {
		return r == 0 || r == '\n' || r == '\r'
	})
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty block", ErrInvalidHeaders)
	}
	statusLine, code, err := parseStatusLine(lines[0])
	if err != nil {
		return nil, err
	}
	h := &ResponseHeaders{statusLine: statusLine, code: code}
	for _, line := range lines[1:] {
		hd, err := parseHeaderLine(line)
		if err != nil {
			return nil, err
		}
		h.headers = append(h.headers, hd)
	}
	return h, nil
}

// NewResponseHeaders builds headers from a status line and header list.
func NewResponseHeaders(statusLine string, headers ...Header) (*ResponseHeaders, error) {
	line, code, err := parseStatusLine(statusLine)
	if err != nil {
		return nil, err
	}
	h := &ResponseHeaders{statusLine: line, code: code}
	for _, hd := range headers {
		if !validHeaderName(hd.Name) || strings.ContainsAny(hd.Value, "\x00\r\n") {
			return nil, fmt.Errorf("%w: header %q", ErrInvalidHeaders, hd.Name)
		}
		h.headers = append(h.headers, Header{Name: hd.Name, Value: strings.TrimSpace(hd.Value)})
	}
	return h, nil
}

func parseStatusLine(line string) (string, int, error) {
	line = strings.TrimSpace(line)
	if strings.ContainsAny(line, "\x00\r\n") {
		return "", 0, fmt.Errorf("%w: status line %q", ErrInvalidHeaders, line)
	}
	proto, rest, _ := strings.Cut(line, " ")
	if !strings.HasPrefix(proto, "HTTP/") || len(proto) == len("HTTP/") {
		return "", 0, fmt.Errorf("%w: status line %q", ErrInvalidHeaders, line)
	}
	codeStr, reason, _ := strings.Cut(strings.TrimSpace(rest), " ")
	code, err := strconv.Atoi(codeStr)
	if err != nil || len(codeStr) != 3 || code < 100 {
		return "", 0, fmt.Errorf("%w: status code %q", ErrInvalidHeaders, codeStr)
	}
	out := proto + " " + codeStr
	if reason = strings.TrimSpace(reason); reason != "" {
		out += " " + reason
	}
	return out, code, nil
}

func parseHeaderLine(line string) (Header, error) {
	name, value, ok := strings.Cut(line, ":")
	if !ok || !validHeaderName(name) {
		return Header{}, fmt.Errorf("%w: header line %q", ErrInvalidHeaders, line)
	}
	return Header{Name: name, Value: strings.TrimSpace(value)}, nil
}

func validHeaderName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c <= ' ' || c >= 0x7f || c == ':' {
			return false
		}
	}
	return true
}

func (h *ResponseHeaders) StatusLine() string { return h.statusLine }

func (h *ResponseHeaders) ResponseCode() int { return h.code }

// Headers returns a copy of the header lines in arrival order.
func (h *ResponseHeaders) Headers() []Header {
	return append([]Header(nil), h.headers...)
}

// Get returns the first value of name (case-insensitive).
func (h *ResponseHeaders) Get(name string) (string, bool) {
	hd, ok := lo.Find(h.headers, func(hd Header) bool { return strings.EqualFold(hd.Name, name) })
	return hd.Value, ok
}

// Values returns every value of name (case-insensitive).
func (h *ResponseHeaders) Values(name string) []string {
	return lo.FilterMap(h.headers, func(hd Header, _ int) (string, bool) {
		return hd.Value, strings.EqualFold(hd.Name, name)
	})
}

func (h *ResponseHeaders) Has(name string) bool {
	_, ok := h.Get(name)
	return ok
}

// RawHeaders is the canonical NUL-separated block.
func (h *ResponseHeaders) RawHeaders() string {
	return h.persist(h.headers)
}

// PersistOptions select header groups dropped by Persist.
type PersistOptions uint8

const (
	PersistRaw         PersistOptions = 0
	PersistSansCookies PersistOptions = 1 << (iota - 1)
	PersistSansHopByHop
	PersistSansRanges
)

var (
	cookieHeaders   = []string{"set-cookie", "set-cookie2"}
	hopByHopHeaders = []string{
		"connection", "proxy-connection", "keep-alive", "te", "trailer",
		"transfer-encoding", "upgrade", "proxy-authenticate", "proxy-authorization",
	}
	rangeHeaders = []string{"content-range", "accept-ranges"}
)

// Persist renders the raw block without the header groups selected by opts.
func (h *ResponseHeaders) Persist(opts PersistOptions) string {
	var drop []string
	if opts&PersistSansCookies != 0 {
		drop = append(drop, cookieHeaders...)
	}
	if opts&PersistSansHopByHop != 0 {
		drop = append(drop, hopByHopHeaders...)
	}
	if opts&PersistSansRanges != 0 {
		drop = append(drop, rangeHeaders...)
	}
	kept := lo.Reject(h.headers, func(hd Header, _ int) bool {
		return lo.Contains(drop, strings.ToLower(hd.Name))
	})
	return h.persist(kept)
}

func (h *ResponseHeaders) persist(headers []Header) string {
	var b strings.Builder
	b.WriteString(h.statusLine)
	b.WriteByte(0)
	for _, hd := range headers {
		b.WriteString(hd.Name)
		b.WriteString(": ")
		b.WriteString(hd.Value)
		b.WriteByte(0)
	}
	b.WriteByte(0)
	return b.String()
}

// Clone returns a deep copy.
func (h *ResponseHeaders) Clone() *ResponseHeaders {
	if h == nil {
		return nil
	}
	c := *h
	c.headers = h.Headers()
	return &c
}

// Equal compares canonical raw blocks. Two nils are equal.
func (h *ResponseHeaders) Equal(o *ResponseHeaders) bool {
	if h == nil || o == nil {
		return h == o
	}
	return h.RawHeaders() == o.RawHeaders()
}
