package traits

import (
	"github.com/cockroachdb/errors"

	"github.com/unkn0wn-root/paramwire/param"
	"github.com/unkn0wn-root/paramwire/resource"
	"github.com/unkn0wn-root/paramwire/wire"
)

var _ param.Traits[resource.FileInfo] = FileInfo{}

// FileInfo writes size, directory flag and the three timestamps as microseconds
// since the Unix epoch (0 for unknown).
type FileInfo struct{}

func (FileInfo) Write(w *wire.Writer, p resource.FileInfo) {
	w.WriteInt64(p.Size)
	w.WriteBool(p.IsDirectory)
	param.Time{}.Write(w, p.LastModified)
	param.Time{}.Write(w, p.LastAccessed)
	param.Time{}.Write(w, p.CreationTime)
}

func (FileInfo) Read(r *wire.Reader) (resource.FileInfo, error) {
	var out resource.FileInfo
	start := r.Offset()
	size, err := r.ReadInt64()
	if err != nil {
		return out, errors.Wrap(err, "file size")
	}
	if size < 0 {
		return out, wire.Malformed(start, "negative file size %d", size)
	}
	out.Size = size
	if out.IsDirectory, err = r.ReadBool(); err != nil {
		return resource.FileInfo{}, errors.Wrap(err, "is directory")
	}
	if out.LastModified, err = (param.Time{}).Read(r); err != nil {
		return resource.FileInfo{}, errors.Wrap(err, "last modified")
	}
	if out.LastAccessed, err = (param.Time{}).Read(r); err != nil {
		return resource.FileInfo{}, errors.Wrap(err, "last accessed")
	}
	if out.CreationTime, err = (param.Time{}).Read(r); err != nil {
		return resource.FileInfo{}, errors.Wrap(err, "creation time")
	}
	return out, nil
}

func (FileInfo) Log(p resource.FileInfo, l *param.LogBuffer) {
	l.Printf("{size: %d, dir: %t, modified: ", p.Size, p.IsDirectory)
	param.Time{}.Log(p.LastModified, l)
	l.WriteString("}")
}
