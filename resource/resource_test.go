package resource

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURL(t *testing.T) {
	testCases := []struct {
		name  string
		in    string
		valid bool
		spec  string
	}{
		{name: "lowercases host", in: "HTTP://Example.COM/Path?q=1", valid: true, spec: "http://example.com/Path?q=1"},
		{name: "opaque", in: "about:blank", valid: true, spec: "about:blank"},
		{name: "file", in: "file:///tmp/a.txt", valid: true, spec: "file:///tmp/a.txt"},
		{name: "no scheme", in: "example.com/x", valid: false},
		{name: "garbage", in: "http://[::1", valid: false},
		{name: "empty", in: "", valid: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u := ParseURL(tc.in)
			assert.Equal(t, tc.valid, u.IsValid())
			assert.Equal(t, tc.spec, u.Spec())
			assert.Equal(t, tc.in, u.PossiblyInvalidSpec())
		})
	}
}

func TestURLCanonicalIsStable(t *testing.T) {
	u := ParseURL("HTTPS://Example.com:8443/a b?x=1#frag")
	require.True(t, u.IsValid())
	again := ParseURL(u.Spec())
	assert.True(t, u.Equal(again))
	assert.Equal(t, "https", u.Scheme())
	assert.True(t, ParseURL("nope").Equal(URL{}))
}

func TestResourceType(t *testing.T) {
	assert.True(t, Favicon.Valid())
	assert.False(t, ResourceType(13).Valid())
	assert.False(t, ResourceType(-1).Valid())
	assert.Equal(t, "stylesheet", Stylesheet.String())
	assert.Equal(t, "resource_type(99)", ResourceType(99).String())
	assert.True(t, SubFrame.IsFrame())

	rt, ok := ParseResourceType("shared_worker")
	require.True(t, ok)
	assert.Equal(t, SharedWorker, rt)
}

func TestRequestStatus(t *testing.T) {
	assert.Equal(t, RequestStatus{Status: StatusSuccess}, NewRequestStatus(StatusSuccess, -7))
	failed := NewRequestStatus(StatusFailed, -7)
	assert.True(t, failed.HasDetail())
	assert.Equal(t, "failed: -7", failed.String())
	assert.False(t, failed.Equal(NewRequestStatus(StatusFailed, -3)))
	assert.True(t, RequestStatus{Status: StatusIOPending, Error: 5}.Equal(RequestStatus{Status: StatusIOPending}))

	st, ok := ParseStatus("canceled")
	require.True(t, ok)
	assert.Equal(t, StatusCanceled, st)
}

func TestUploadDataOwnsItsBytes(t *testing.T) {
	src := []byte("body")
	d := NewUploadData()
	d.AppendBytes(src)
	d.AppendFileRange("/tmp/f", 10, 20, time.Unix(100, 0))
	d.AppendBlob(MustParseURL("blob:http://example.com/uuid"))
	d.SetIdentifier(42)

	src[0] = 'X'
	els := d.Elements()
	require.Len(t, els, 3)
	assert.Equal(t, "body", string(els[0].Bytes))

	els[0].Bytes[0] = 'Y'
	assert.Equal(t, "body", string(d.Elements()[0].Bytes))

	c := d.Clone()
	assert.True(t, d.Equal(c))
	c.SetIdentifier(7)
	assert.False(t, d.Equal(c))
	assert.True(t, (*UploadData)(nil).Equal(nil))
	assert.False(t, d.Equal(nil))
	assert.Equal(t, 4, d.InMemorySize())
}

func TestHostPort(t *testing.T) {
	hp, err := ParseHostPort("example.com:443")
	require.NoError(t, err)
	assert.Equal(t, HostPortPair{Host: "example.com", Port: 443}, hp)
	assert.Equal(t, "[::1]:80", HostPortPair{Host: "::1", Port: 80}.String())

	_, err = ParseHostPort("example.com:70000")
	assert.Error(t, err)
	_, err = ParseHostPort("example.com")
	assert.Error(t, err)
}

func TestResponseHeaders(t *testing.T) {
	h, err := ParseResponseHeaders("HTTP/1.1 200 OK\r\nContent-Type:  text/html \r\nSet-Cookie: a=1\r\nset-cookie: b=2\r\nConnection: close\r\n\r\n")
	require.NoError(t, err)
	assert.Equal(t, 200, h.ResponseCode())
	assert.Equal(t, "HTTP/1.1 200 OK", h.StatusLine())

	v, ok := h.Get("content-type")
	require.True(t, ok)
	assert.Equal(t, "text/html", v)
	assert.Equal(t, []string{"a=1", "b=2"}, h.Values("Set-Cookie"))

	raw := h.RawHeaders()
	assert.Equal(t, "HTTP/1.1 200 OK\x00Content-Type: text/html\x00Set-Cookie: a=1\x00set-cookie: b=2\x00Connection: close\x00\x00", raw)

	again, err := ParseResponseHeaders(raw)
	require.NoError(t, err)
	assert.True(t, h.Equal(again))
	assert.NotSame(t, h, again)

	sans := h.Persist(PersistSansCookies | PersistSansHopByHop)
	assert.Equal(t, "HTTP/1.1 200 OK\x00Content-Type: text/html\x00\x00", sans)
	assert.Equal(t, raw, h.Persist(PersistRaw))
}

func TestResponseHeadersRejects(t *testing.T) {
	for _, raw := range []string{
		"",
		"\x00\x00",
		"HTTP/1.1 abc OK\x00\x00",
		"FTP 200\x00\x00",
		"HTTP/1.1 200\x00no colon here\x00\x00",
		"HTTP/1.1 200\x00: empty name\x00\x00",
	} {
		_, err := ParseResponseHeaders(raw)
		assert.True(t, errors.Is(err, ErrInvalidHeaders), "raw %q: %v", raw, err)
	}

	_, err := NewResponseHeaders("HTTP/1.0 404 Not Found", Header{Name: "X", Value: "a\x00b"})
	assert.ErrorIs(t, err, ErrInvalidHeaders)

	for _, line := range []string{
		"HTTP/1.1 200 OK\nX-Injected: 1",
		"HTTP/1.1 200 OK\rX-Injected: 1",
		"HTTP/1.1 200 O\x00bad",
	} {
		_, err := NewResponseHeaders(line)
		assert.ErrorIs(t, err, ErrInvalidHeaders, "status line %q", line)
	}

	h, err := NewResponseHeaders("HTTP/1.1 200 OK\r\n")
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 200 OK", h.StatusLine())
}

func TestLoadTiming(t *testing.T) {
	null := NullLoadTiming()
	assert.True(t, null.IsNull())
	for _, d := range null.Offsets() {
		assert.Equal(t, TimingUnset, d)
	}

	lt := LoadTimingInfo{Base: time.Unix(1700000000, 123456000)}
	lt.SetOffsets(null.Offsets())
	lt.DNSStart = 2 * time.Millisecond
	lt.DNSEnd = 5*time.Millisecond + 300*time.Nanosecond
	assert.Equal(t, int64(5000), OffsetMicros(lt.DNSEnd))

	other := lt
	other.DNSEnd = 5 * time.Millisecond
	assert.True(t, lt.Equal(other))
	other.SendStart = 0
	assert.False(t, lt.Equal(other))

	assert.Equal(t, "receive_headers_end", TimingName(NumTimingOffsets-1))
	assert.Equal(t, TimingUnset, OffsetFromMicros(-1))
}

func TestDevToolsInfoClone(t *testing.T) {
	d := &DevToolsInfo{
		HTTPStatusCode: 200,
		HTTPStatusText: "OK",
		RequestHeaders: []Header{{Name: "Accept", Value: "*/*"}},
	}
	c := d.Clone()
	require.True(t, d.Equal(c))
	c.RequestHeaders[0].Value = "text/html"
	assert.False(t, d.Equal(c))
	assert.True(t, (&DevToolsInfo{}).Equal(&DevToolsInfo{RequestHeaders: []Header{}}))
}

func TestFileInfoFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 17)), 0o600))
	st, err := os.Stat(path)
	require.NoError(t, err)

	fi := FileInfoFrom(st)
	assert.Equal(t, int64(17), fi.Size)
	assert.False(t, fi.IsDirectory)
	assert.True(t, fi.LastModified.Equal(st.ModTime()))
	assert.False(t, fi.LastAccessed.IsZero())
	assert.False(t, fi.CreationTime.IsZero())
	assert.Equal(t, time.UTC, fi.LastModified.Location())

	dir, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, FileInfoFrom(dir).IsDirectory)
}

func TestFileError(t *testing.T) {
	assert.Equal(t, "not_empty", FileErrorNotEmpty.String())
	assert.False(t, FileError(1).Valid())
	assert.False(t, FileError(-15).Valid())

	_, err := os.Open(filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, FileErrorNotFound, FileErrorFrom(err))
	assert.Equal(t, FileErrorAccessDenied, FileErrorFrom(fs.ErrPermission))
	assert.Equal(t, FileOK, FileErrorFrom(nil))
	assert.Equal(t, FileErrorFailed, FileErrorFrom(errors.New("boom")))
}
