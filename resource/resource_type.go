package resource

import "strconv"

// ResourceType classifies what a network request loads.
type ResourceType int32

const (
	MainFrame ResourceType = iota
	SubFrame
	Stylesheet
	Script
	Image
	FontResource
	SubResource
	Object
	Media
	Worker
	SharedWorker
	Prefetch
	Favicon
)

var resourceTypeNames = [...]string{
	MainFrame:    "main_frame",
	SubFrame:     "sub_frame",
	Stylesheet:   "stylesheet",
	Script:       "script",
	Image:        "image",
	FontResource: "font_resource",
	SubResource:  "sub_resource",
	Object:       "object",
	Media:        "media",
	Worker:       "worker",
	SharedWorker: "shared_worker",
	Prefetch:     "prefetch",
	Favicon:      "favicon",
}

// Valid reports whether t is one of the declared kinds.
func (t ResourceType) Valid() bool { return t >= MainFrame && t <= Favicon }

// IsFrame reports whether t loads a document into a frame.
func (t ResourceType) IsFrame() bool { return t == MainFrame || t == SubFrame }

// IsSharedWorker reports whether t is a worker script shared across documents.
func (t ResourceType) IsSharedWorker() bool { return t == SharedWorker }

func (t ResourceType) String() string {
	if !t.Valid() {
		return "resource_type(" + strconv.Itoa(int(t)) + ")"
	}
	return resourceTypeNames[t]
}

// ParseResourceType is the inverse of String for valid kinds.
func ParseResourceType(s string) (ResourceType, bool) {
	for i, n := range resourceTypeNames {
		if n == s {
			return ResourceType(i), true
		}
	}
	return 0, false
}
