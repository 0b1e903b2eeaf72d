package traits

import (
	"github.com/unkn0wn-root/paramwire/param"
	"github.com/unkn0wn-root/paramwire/resource"
	"github.com/unkn0wn-root/paramwire/wire"
)

var _ param.Traits[resource.FileError] = FileError{}

// FileError travels as its int32 value.
type FileError struct{}

func (FileError) Write(w *wire.Writer, p resource.FileError) { w.WriteInt32(int32(p)) }

func (FileError) Read(r *wire.Reader) (resource.FileError, error) {
	v, err := readEnum(r, "file error", int32(resource.FileErrorNotEmpty), int32(resource.FileOK))
	return resource.FileError(v), err
}

func (FileError) Log(p resource.FileError, l *param.LogBuffer) { l.WriteString(p.String()) }
