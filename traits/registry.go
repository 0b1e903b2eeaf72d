package traits

import (
	"github.com/unkn0wn-root/paramwire"
	"github.com/unkn0wn-root/paramwire/resource"
)

// Type ids of the resource payloads. They label captured payloads and must stay
// stable across releases.
const (
	TypeURL paramwire.TypeID = iota + 1
	TypeResourceType
	TypeRequestStatus
	TypeUploadData
	TypeHostPortPair
	TypeResponseHeaders
	TypeLoadTiming
	TypeDevToolsInfo
	TypeFileInfo
	TypeFileError
)

// Register adds every resource payload type to r.
func Register(r *paramwire.Registry) error {
	regs := []func() error{
		func() error { return paramwire.Register[resource.URL, URL](r, TypeURL, "url") },
		func() error {
			return paramwire.Register[resource.ResourceType, ResourceType](r, TypeResourceType, "resource_type")
		},
		func() error {
			return paramwire.Register[resource.RequestStatus, RequestStatus](r, TypeRequestStatus, "request_status")
		},
		func() error {
			return paramwire.Register[*resource.UploadData, UploadData](r, TypeUploadData, "upload_data")
		},
		func() error {
			return paramwire.Register[resource.HostPortPair, HostPortPair](r, TypeHostPortPair, "host_port")
		},
		func() error {
			return paramwire.Register[*resource.ResponseHeaders, ResponseHeaders](r, TypeResponseHeaders, "response_headers")
		},
		func() error {
			return paramwire.Register[resource.LoadTimingInfo, LoadTiming](r, TypeLoadTiming, "load_timing")
		},
		func() error {
			return paramwire.Register[*resource.DevToolsInfo, DevToolsInfo](r, TypeDevToolsInfo, "devtools_info")
		},
		func() error {
			return paramwire.Register[resource.FileInfo, FileInfo](r, TypeFileInfo, "file_info")
		},
		func() error {
			return paramwire.Register[resource.FileError, FileError](r, TypeFileError, "file_error")
		},
	}
	for _, reg := range regs {
		if err := reg(); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding every resource payload type.
func NewRegistry() *paramwire.Registry {
	r := paramwire.NewRegistry()
	if err := Register(r); err != nil {
		panic(err)
	}
	return r
}
