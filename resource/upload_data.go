package resource

import (
	"bytes"
	"math"
	"slices"
	"strconv"
	"time"
)

// ElementType tags the body of an UploadElement.
type ElementType int32

const (
	ElementBytes ElementType = iota
	ElementFile
	ElementBlob
)

func (t ElementType) Valid() bool { return t >= ElementBytes && t <= ElementBlob }

func (t ElementType) String() string {
	switch t {
	case ElementBytes:
		return "bytes"
	case ElementFile:
		return "file"
	case ElementBlob:
		return "blob"
	default:
		return "element(" + strconv.Itoa(int(t)) + ")"
	}
}

// ToEOF as a file range length means "until the end of the file".
const ToEOF = math.MaxUint64

// UploadElement is one piece of a request body. Only the fields belonging to
// Type are significant.
type UploadElement struct {
	Type ElementType

	// ElementBytes
	Bytes []byte

	// ElementFile
	Path   string
	Offset uint64
	Length uint64
	// ExpectedModTime, when set, lets the reader detect that the file changed
	// after the upload was built.
	ExpectedModTime time.Time

	// ElementBlob
	BlobURL URL
}

// Equal compares the fields significant for the element type. Times compare at
// microsecond resolution.
func (e UploadElement) Equal(o UploadElement) bool {
	if e.Type != o.Type {
		return false
	}
	switch e.Type {
	case ElementBytes:
		return bytes.Equal(e.Bytes, o.Bytes)
	case ElementFile:
		return e.Path == o.Path && e.Offset == o.Offset && e.Length == o.Length &&
			sameMicro(e.ExpectedModTime, o.ExpectedModTime)
	case ElementBlob:
		return e.BlobURL.Equal(o.BlobURL)
	}
	return true
}

func (e UploadElement) clone() UploadElement {
	e.Bytes = slices.Clone(e.Bytes)
	return e
}

// UploadData is a request body assembled from in-memory bytes, file ranges and
// blob references. Decoding always yields a fresh instance owned by the caller.
type UploadData struct {
	elements   []UploadElement
	identifier int64
}

func NewUploadData() *UploadData { return &UploadData{} }

// AppendBytes adds a copy of b.
func (d *UploadData) AppendBytes(b []byte) {
	d.elements = append(d.elements, UploadElement{Type: ElementBytes, Bytes: slices.Clone(b)})
}

// AppendFile adds a whole file.
func (d *UploadData) AppendFile(path string) {
	d.AppendFileRange(path, 0, ToEOF, time.Time{})
}

// AppendFileRange adds length bytes of path starting at offset.
func (d *UploadData) AppendFileRange(path string, offset, length uint64, expectedModTime time.Time) {
	d.elements = append(d.elements, UploadElement{
		Type:            ElementFile,
		Path:            path,
		Offset:          offset,
		Length:          length,
		ExpectedModTime: expectedModTime,
	})
}

// AppendBlob adds a reference to a blob by URL.
func (d *UploadData) AppendBlob(u URL) {
	d.elements = append(d.elements, UploadElement{Type: ElementBlob, BlobURL: u})
}

// AppendElement adds a copy of e as is.
func (d *UploadData) AppendElement(e UploadElement) {
	d.elements = append(d.elements, e.clone())
}

// Elements returns a copy of the element list.
func (d *UploadData) Elements() []UploadElement {
	out := make([]UploadElement, len(d.elements))
	for i := range d.elements {
		out[i] = d.elements[i].clone()
	}
	return out
}

func (d *UploadData) Len() int { return len(d.elements) }

// Identifier distinguishes bodies with identical content, e.g. for cache keys.
// Zero means unset.
func (d *UploadData) Identifier() int64 { return d.identifier }

func (d *UploadData) SetIdentifier(id int64) { d.identifier = id }

// InMemorySize is the total length of the byte elements.
func (d *UploadData) InMemorySize() int {
	n := 0
	for _, e := range d.elements {
		if e.Type == ElementBytes {
			n += len(e.Bytes)
		}
	}
	return n
}

// Clone returns a deep copy.
func (d *UploadData) Clone() *UploadData {
	if d == nil {
		return nil
	}
	return &UploadData{elements: d.Elements(), identifier: d.identifier}
}

// Equal compares content and identifier. Two nils are equal.
func (d *UploadData) Equal(o *UploadData) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.identifier != o.identifier || len(d.elements) != len(o.elements) {
		return false
	}
	for i := range d.elements {
		if !d.elements[i].Equal(o.elements[i]) {
			return false
		}
	}
	return true
}
