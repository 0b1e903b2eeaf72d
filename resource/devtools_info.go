package resource

import "slices"

// DevToolsInfo is the raw request/response exchange shown by developer tools.
type DevToolsInfo struct {
	HTTPStatusCode      int32
	HTTPStatusText      string
	RequestHeaders      []Header
	ResponseHeaders     []Header
	RequestHeadersText  string
	ResponseHeadersText string
}

// Clone returns a deep copy.
func (d *DevToolsInfo) Clone() *DevToolsInfo {
	if d == nil {
		return nil
	}
	c := *d
	c.RequestHeaders = slices.Clone(d.RequestHeaders)
	c.ResponseHeaders = slices.Clone(d.ResponseHeaders)
	return &c
}

// Equal compares every field. Nil and empty header lists are equal. Two nils are
// equal.
func (d *DevToolsInfo) Equal(o *DevToolsInfo) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.HTTPStatusCode == o.HTTPStatusCode &&
		d.HTTPStatusText == o.HTTPStatusText &&
		slices.Equal(d.RequestHeaders, o.RequestHeaders) &&
		slices.Equal(d.ResponseHeaders, o.ResponseHeaders) &&
		d.RequestHeadersText == o.RequestHeadersText &&
		d.ResponseHeadersText == o.ResponseHeadersText
}
