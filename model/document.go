package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrCyclicDocument is returned when a document tree references itself.
	ErrCyclicDocument = errors.New("cyclic document structure")
)

// maxDocumentDepth bounds conversion of list structures that cannot be
// tracked by identity.
const maxDocumentDepth = 1000

// Document is an ordered string-keyed value tree. Values are JSON primitives
// (string, bool, int64, float64, nil), nested *Document or List.
type Document struct {
	keys   []string
	values map[string]any
}

// List is an ordered sequence of document values.
type List []any

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{values: make(map[string]any)}
}

// Put sets a key, keeping first-insertion order. Returns the document for
// chaining.
func (d *Document) Put(key string, value any) *Document {
	if d.values == nil {
		d.values = make(map[string]any)
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
	return d
}

// Get returns the value for key and whether it is present.
func (d *Document) Get(key string) (any, bool) {
	if d == nil || d.values == nil {
		return nil, false
	}
	v, ok := d.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Len returns the number of keys.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Encode renders the document as JSON text, preserving key order.
func (d *Document) Encode() (string, error) {
	data, err := d.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// MarshalJSON implements json.Marshaler with stable key order.
func (d *Document) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(d.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order. Numbers decode to
// int64 when they have no fraction or exponent, float64 otherwise.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	doc, err := decodeObject(dec)
	if err != nil {
		return err
	}
	*d = *doc
	return nil
}

// DecodeDocument parses JSON object text into an ordered document.
func DecodeDocument(data []byte) (*Document, error) {
	d := NewDocument()
	if err := d.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return d, nil
}

// decodeObject consumes tokens after an opening '{'.
func decodeObject(dec *json.Decoder) (*Document, error) {
	doc := NewDocument()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		doc.Put(key, value)
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeArray(dec *json.Decoder) (List, error) {
	list := List{}
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		list = append(list, value)
	}
	// closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return list, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %v", v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		return v.Float64()
	default:
		return v, nil
	}
}

// ToGenericForm recursively converts the document into the plain nested
// map/list form accepted by the engine client. The input is not mutated.
// Cyclic structures are rejected with ErrCyclicDocument.
func (d *Document) ToGenericForm() (map[string]any, error) {
	if d == nil {
		return nil, nil
	}
	return convertDocument(d, map[*Document]struct{}{}, 0)
}

func convertDocument(d *Document, visited map[*Document]struct{}, depth int) (map[string]any, error) {
	if depth > maxDocumentDepth {
		return nil, ErrCyclicDocument
	}
	if _, seen := visited[d]; seen {
		return nil, ErrCyclicDocument
	}
	visited[d] = struct{}{}
	defer delete(visited, d)

	out := make(map[string]any, len(d.keys))
	for _, key := range d.keys {
		v, err := convertValue(d.values[key], visited, depth+1)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

func convertList(l List, visited map[*Document]struct{}, depth int) ([]any, error) {
	if depth > maxDocumentDepth {
		return nil, ErrCyclicDocument
	}
	out := make([]any, 0, len(l))
	for _, item := range l {
		v, err := convertValue(item, visited, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func convertValue(v any, visited map[*Document]struct{}, depth int) (any, error) {
	switch t := v.(type) {
	case *Document:
		return convertDocument(t, visited, depth)
	case List:
		return convertList(t, visited, depth)
	default:
		return v, nil
	}
}

// EncodeValue renders a single document value as JSON text.
func EncodeValue(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
