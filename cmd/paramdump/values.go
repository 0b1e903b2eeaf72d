package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/unkn0wn-root/paramwire"
	"github.com/unkn0wn-root/paramwire/codec"
	"github.com/unkn0wn-root/paramwire/param"
	"github.com/unkn0wn-root/paramwire/resource"
	"github.com/unkn0wn-root/paramwire/traits"
)

// encoder turns command-line text into a versioned wire payload.
type encoder func(e *env, in string) ([]byte, error)

// marshal encodes v through a Serializer so encodes are logged, hooked and
// size-checked like any other message.
func marshal[V any, Tr param.Traits[V]](e *env, name string, v V) ([]byte, error) {
	s, err := paramwire.NewTraits[V, Tr](paramwire.Options[V]{
		Name:           name,
		Logger:         e.logger,
		Hooks:          e.hooks,
		MaxMessageSize: e.cfg.MaxMessageSize,
		DescribeLimit:  e.cfg.DescribeLimit,
		LogValues:      e.cfg.LogValues,
	})
	if err != nil {
		return nil, err
	}
	return s.Marshal(v)
}

var encoders = map[string]encoder{
	// https://example.com/path
	"url": func(e *env, in string) ([]byte, error) {
		u := resource.ParseURL(in)
		if !u.IsValid() {
			return nil, fmt.Errorf("invalid url %q", in)
		}
		return marshal[resource.URL, traits.URL](e, "url", u)
	},
	// main_frame | 3
	"resource_type": func(e *env, in string) ([]byte, error) {
		t, ok := resource.ParseResourceType(in)
		if !ok {
			n, err := strconv.ParseInt(in, 10, 32)
			if err != nil || !resource.ResourceType(n).Valid() {
				return nil, fmt.Errorf("unknown resource type %q", in)
			}
			t = resource.ResourceType(n)
		}
		return marshal[resource.ResourceType, traits.ResourceType](e, "resource_type", t)
	},
	// success | failed:-7
	"request_status": func(e *env, in string) ([]byte, error) {
		name, detail, _ := strings.Cut(in, ":")
		st, ok := resource.ParseStatus(name)
		if !ok {
			return nil, fmt.Errorf("unknown request status %q", name)
		}
		var code int64
		if detail != "" {
			var err error
			if code, err = strconv.ParseInt(detail, 10, 32); err != nil {
				return nil, fmt.Errorf("request status detail: %w", err)
			}
		}
		return marshal[resource.RequestStatus, traits.RequestStatus](e, "request_status", resource.NewRequestStatus(st, int32(code)))
	},
	// bytes=hello;file=/tmp/x;blob=blob:https://a/b ("" is an absent body)
	"upload_data": func(e *env, in string) ([]byte, error) {
		if in == "" {
			return marshal[*resource.UploadData, traits.UploadData](e, "upload_data", nil)
		}
		d := resource.NewUploadData()
		for _, part := range strings.Split(in, ";") {
			kind, val, ok := strings.Cut(part, "=")
			if !ok {
				return nil, fmt.Errorf("upload element %q: want kind=value", part)
			}
			switch kind {
			case "bytes":
				d.AppendBytes([]byte(val))
			case "file":
				d.AppendFile(val)
			case "blob":
				d.AppendBlob(resource.ParseURL(val))
			default:
				return nil, fmt.Errorf("upload element %q: unknown kind %q", part, kind)
			}
		}
		return marshal[*resource.UploadData, traits.UploadData](e, "upload_data", d)
	},
	// example.com:443
	"host_port": func(e *env, in string) ([]byte, error) {
		hp, err := resource.ParseHostPort(in)
		if err != nil {
			return nil, err
		}
		return marshal[resource.HostPortPair, traits.HostPortPair](e, "host_port", hp)
	},
	// HTTP/1.1 200 OK\nContent-Type: text/html (literal \n accepted)
	"response_headers": func(e *env, in string) ([]byte, error) {
		h, err := resource.ParseResponseHeaders(strings.ReplaceAll(in, `\n`, "\n"))
		if err != nil {
			return nil, err
		}
		return marshal[*resource.ResponseHeaders, traits.ResponseHeaders](e, "response_headers", h)
	},
	// JSON object of LoadTimingInfo fields; "null" for no timing
	"load_timing": func(e *env, in string) ([]byte, error) {
		// offsets absent from the object stay unset
		t := resource.NullLoadTiming()
		if err := (codec.JSON[resource.LoadTimingInfo]{}).DecodeInto([]byte(in), &t); err != nil {
			return nil, fmt.Errorf("load timing json: %w", err)
		}
		return marshal[resource.LoadTimingInfo, traits.LoadTiming](e, "load_timing", t)
	},
	// JSON object of DevToolsInfo fields; "null" for absent
	"devtools_info": func(e *env, in string) ([]byte, error) {
		info, err := codec.JSON[*resource.DevToolsInfo]{}.Decode([]byte(in))
		if err != nil {
			return nil, fmt.Errorf("devtools json: %w", err)
		}
		return marshal[*resource.DevToolsInfo, traits.DevToolsInfo](e, "devtools_info", info)
	},
	// path to stat
	"file_info": func(e *env, in string) ([]byte, error) {
		fi, err := os.Stat(in)
		if err != nil {
			return nil, err
		}
		return marshal[resource.FileInfo, traits.FileInfo](e, "file_info", resource.FileInfoFrom(fi))
	},
	// -6 | not_found
	"file_error": func(e *env, in string) ([]byte, error) {
		fe, ok := parseFileError(in)
		if !ok {
			return nil, fmt.Errorf("unknown file error %q", in)
		}
		return marshal[resource.FileError, traits.FileError](e, "file_error", fe)
	},
}

func parseFileError(in string) (resource.FileError, bool) {
	if n, err := strconv.ParseInt(in, 10, 32); err == nil {
		fe := resource.FileError(n)
		return fe, fe.Valid()
	}
	for fe := resource.FileOK; fe >= resource.FileErrorNotEmpty; fe-- {
		if fe.String() == in {
			return fe, true
		}
	}
	return 0, false
}

func encoderNames() []string {
	names := make([]string, 0, len(encoders))
	for n := range encoders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
