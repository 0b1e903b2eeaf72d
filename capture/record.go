package capture

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/unkn0wn-root/paramwire"
	"github.com/unkn0wn-root/paramwire/codec"
)

// Record is one captured message. Payload holds the versioned wire encoding of
// the type named by TypeID.
type Record struct {
	Channel string           `json:"channel"`
	Seq     uint64           `json:"seq"`
	TypeID  paramwire.TypeID `json:"type_id"`
	Type    string           `json:"type,omitempty"`
	At      time.Time        `json:"at"`
	Payload []byte           `json:"payload"`
}

// ProtoRecordCodec stores records as google.protobuf.Struct messages, for
// stores shared with tooling that only speaks protobuf.
type ProtoRecordCodec struct{}

var _ codec.Codec[Record] = ProtoRecordCodec{}

var structCodec = codec.NewProtobuf(func() *structpb.Struct { return &structpb.Struct{} })

func (ProtoRecordCodec) Encode(r Record) ([]byte, error) {
	// seq is a string: protobuf numbers are float64 and would round above 2^53
	st, err := structpb.NewStruct(map[string]any{
		"channel": r.Channel,
		"seq":     strconv.FormatUint(r.Seq, 10),
		"type_id": float64(r.TypeID),
		"type":    r.Type,
		"at":      r.At.UTC().Format(time.RFC3339Nano),
		"payload": base64.StdEncoding.EncodeToString(r.Payload),
	})
	if err != nil {
		return nil, err
	}
	return structCodec.Encode(st)
}

func (ProtoRecordCodec) Decode(b []byte) (Record, error) {
	st, err := structCodec.Decode(b)
	if err != nil {
		return Record{}, err
	}
	f := st.GetFields()
	str := func(k string) string { return f[k].GetStringValue() }

	var r Record
	r.Channel = str("channel")
	r.Type = str("type")
	if r.Seq, err = strconv.ParseUint(str("seq"), 10, 64); err != nil {
		return Record{}, fmt.Errorf("capture: record seq: %w", err)
	}
	id := f["type_id"].GetNumberValue()
	if id < 0 || id > 0xFFFF || id != float64(uint16(id)) {
		return Record{}, fmt.Errorf("capture: record type_id %v out of range", id)
	}
	r.TypeID = paramwire.TypeID(id)
	if r.At, err = time.Parse(time.RFC3339Nano, str("at")); err != nil {
		return Record{}, fmt.Errorf("capture: record time: %w", err)
	}
	if r.Payload, err = base64.StdEncoding.DecodeString(str("payload")); err != nil {
		return Record{}, fmt.Errorf("capture: record payload: %w", err)
	}
	if len(r.Payload) == 0 {
		r.Payload = nil
	}
	return r, nil
}
