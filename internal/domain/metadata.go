package domain

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Metadata is an opaque structured value attached to a log event.
//
// The held value is always in normalized JSON form: map[string]any, []any,
// string, json.Number or bool. Values are never JSON null; absent metadata is
// represented by a nil *Metadata.
type Metadata struct {
	value any
}

// NewMetadata normalizes v into a Metadata. A nil v yields a nil Metadata.
func NewMetadata(v any) (*Metadata, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return DecodeMetadata(b)
}

// DecodeMetadata parses a serialized metadata blob. Empty input and JSON null
// both decode to nil.
func DecodeMetadata(b []byte) (*Metadata, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return &Metadata{value: v}, nil
}

func (m *Metadata) Value() any {
	if m == nil {
		return nil
	}
	return m.value
}

// Encode serializes the metadata for storage. Nil metadata encodes to nil.
func (m *Metadata) Encode() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m.value)
}

// Equal reports structural equality.
func (m *Metadata) Equal(other *Metadata) bool {
	if m == nil || other == nil {
		return m == nil && other == nil
	}
	return reflect.DeepEqual(m.value, other.value)
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.value)
}

func (m *Metadata) UnmarshalJSON(b []byte) error {
	parsed, err := DecodeMetadata(b)
	if err != nil {
		return err
	}
	if parsed == nil {
		m.value = nil
		return nil
	}
	*m = *parsed
	return nil
}
