package traits

import (
	"github.com/unkn0wn-root/paramwire/param"
	"github.com/unkn0wn-root/paramwire/resource"
	"github.com/unkn0wn-root/paramwire/wire"
)

var _ param.Traits[resource.ResourceType] = ResourceType{}

type ResourceType struct{}

func (ResourceType) Write(w *wire.Writer, p resource.ResourceType) { w.WriteInt32(int32(p)) }

func (ResourceType) Read(r *wire.Reader) (resource.ResourceType, error) {
	v, err := readEnum(r, "resource type", int32(resource.MainFrame), int32(resource.Favicon))
	return resource.ResourceType(v), err
}

func (ResourceType) Log(p resource.ResourceType, l *param.LogBuffer) { l.WriteString(p.String()) }
