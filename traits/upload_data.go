package traits

import (
	"github.com/cockroachdb/errors"

	"github.com/unkn0wn-root/paramwire/param"
	"github.com/unkn0wn-root/paramwire/resource"
	"github.com/unkn0wn-root/paramwire/wire"
)

var (
	_ param.Traits[*resource.UploadData]   = UploadData{}
	_ param.Traits[resource.UploadElement] = UploadElement{}
)

// UploadElement writes the int32 element type followed by the body for that type:
//
//	bytes  data
//	file   path | uint64 offset | uint64 length | int64 expected mtime (µs)
//	blob   url
type UploadElement struct{}

// minElementSize is the type tag plus the smallest body (an empty data prefix).
const minElementSize = 8

func (UploadElement) Write(w *wire.Writer, p resource.UploadElement) {
	w.WriteInt32(int32(p.Type))
	switch p.Type {
	case resource.ElementBytes:
		param.Bytes{}.Write(w, p.Bytes)
	case resource.ElementFile:
		param.String{}.Write(w, p.Path)
		param.Uint64{}.Write(w, p.Offset)
		param.Uint64{}.Write(w, p.Length)
		param.Time{}.Write(w, p.ExpectedModTime)
	case resource.ElementBlob:
		URL{}.Write(w, p.BlobURL)
	default:
		panic(errors.AssertionFailedf("traits: unknown upload element type %d", p.Type))
	}
}

func (UploadElement) Read(r *wire.Reader) (resource.UploadElement, error) {
	v, err := readEnum(r, "upload element type", int32(resource.ElementBytes), int32(resource.ElementBlob))
	if err != nil {
		return resource.UploadElement{}, err
	}
	e := resource.UploadElement{Type: resource.ElementType(v)}
	switch e.Type {
	case resource.ElementBytes:
		e.Bytes, err = param.Bytes{}.Read(r)
	case resource.ElementFile:
		err = readFileElement(r, &e)
	case resource.ElementBlob:
		e.BlobURL, err = URL{}.Read(r)
	}
	if err != nil {
		return resource.UploadElement{}, errors.Wrapf(err, "%s element", e.Type)
	}
	return e, nil
}

func readFileElement(r *wire.Reader, e *resource.UploadElement) error {
	var err error
	if e.Path, err = (param.String{}).Read(r); err != nil {
		return errors.Wrap(err, "path")
	}
	if e.Offset, err = (param.Uint64{}).Read(r); err != nil {
		return errors.Wrap(err, "offset")
	}
	if e.Length, err = (param.Uint64{}).Read(r); err != nil {
		return errors.Wrap(err, "length")
	}
	if e.ExpectedModTime, err = (param.Time{}).Read(r); err != nil {
		return errors.Wrap(err, "expected modification time")
	}
	return nil
}

func (UploadElement) Log(p resource.UploadElement, l *param.LogBuffer) {
	switch p.Type {
	case resource.ElementBytes:
		l.Printf("bytes(%d)", len(p.Bytes))
	case resource.ElementFile:
		l.WriteString("file(")
		l.WriteString(p.Path)
		if p.Length == resource.ToEOF {
			l.Printf(", %d-eof)", p.Offset)
		} else {
			l.Printf(", %d+%d)", p.Offset, p.Length)
		}
	case resource.ElementBlob:
		l.WriteString("blob(")
		URL{}.Log(p.BlobURL, l)
		l.WriteString(")")
	default:
		l.WriteString(p.Type.String())
	}
}

type uploadElements = param.Vector[resource.UploadElement, UploadElement]

// UploadData writes a presence flag and, when present, the element list and the
// identifier. A nil body is the single byte 0.
type UploadData struct{}

func (UploadData) Write(w *wire.Writer, p *resource.UploadData) {
	w.WriteBool(p != nil)
	if p == nil {
		return
	}
	uploadElements{}.Write(w, p.Elements())
	w.WriteInt64(p.Identifier())
}

func (UploadData) Read(r *wire.Reader) (*resource.UploadData, error) {
	present, err := r.ReadBool()
	if err != nil || !present {
		return nil, err
	}
	n, err := r.ReadCount(minElementSize)
	if err != nil {
		return nil, errors.Wrap(err, "upload element count")
	}
	d := resource.NewUploadData()
	for i := 0; i < n; i++ {
		e, err := UploadElement{}.Read(r)
		if err != nil {
			return nil, errors.Wrapf(err, "upload element %d", i)
		}
		d.AppendElement(e)
	}
	id, err := r.ReadInt64()
	if err != nil {
		return nil, errors.Wrap(err, "upload identifier")
	}
	d.SetIdentifier(id)
	return d, nil
}

func (UploadData) Log(p *resource.UploadData, l *param.LogBuffer) {
	if p == nil {
		l.WriteString("(null)")
		return
	}
	l.Printf("{id: %d, elements: ", p.Identifier())
	uploadElements{}.Log(p.Elements(), l)
	l.WriteString("}")
}
