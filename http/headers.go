package http

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Header is a single name/value pair.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered header collection. Lookups are case-insensitive;
// setting an existing name replaces its value in place, so serialization
// order is insertion order.
type Headers struct {
	kv []Header
}

func (h *Headers) index(name string) int {
	for i := range h.kv {
		if strings.EqualFold(h.kv[i].Name, name) {
			return i
		}
	}
	return -1
}

// Set stores a header, replacing any previous value under the same name.
func (h *Headers) Set(name, value string) {
	if i := h.index(name); i >= 0 {
		h.kv[i].Value = value
		return
	}
	h.kv = append(h.kv, Header{Name: name, Value: value})
}

// Get returns the value stored under name, matched case-insensitively.
func (h *Headers) Get(name string) (string, bool) {
	if i := h.index(name); i >= 0 {
		return h.kv[i].Value, true
	}
	return "", false
}

func (h *Headers) Del(name string) {
	if i := h.index(name); i >= 0 {
		h.kv = append(h.kv[:i], h.kv[i+1:]...)
	}
}

func (h *Headers) Len() int {
	return len(h.kv)
}

// All returns the headers in insertion order. The slice is shared; callers
// must not mutate it.
func (h *Headers) All() []Header {
	return h.kv
}

func (h *Headers) Reset() {
	h.kv = h.kv[:0]
}

// MarshalJSON renders the headers as an object, preserving insertion order.
func (h Headers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range h.kv {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(kv.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
