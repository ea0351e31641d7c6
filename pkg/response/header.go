package response

import (
	"net/http"
	"slices"
	"strings"
)

// Header is an ordered set of header fields with case-insensitive lookup.
// Names keep the spelling they were first added with.
type Header struct {
	fields []field
}

type field struct {
	name   string
	values []string
}

// NewHeader returns an empty header set.
func NewHeader() *Header {
	return &Header{}
}

func (h *Header) index(name string) int {
	for i, f := range h.fields {
		if strings.EqualFold(f.name, name) {
			return i
		}
	}
	return -1
}

// Add appends a value to the named field.
func (h *Header) Add(name, value string) {
	if i := h.index(name); i >= 0 {
		h.fields[i].values = append(h.fields[i].values, value)
		return
	}
	h.fields = append(h.fields, field{name: name, values: []string{value}})
}

// Set replaces all values of the named field.
func (h *Header) Set(name string, values ...string) {
	values = slices.Clone(values)
	if i := h.index(name); i >= 0 {
		h.fields[i].values = values
		return
	}
	h.fields = append(h.fields, field{name: name, values: values})
}

// Get returns the first value of the named field.
func (h *Header) Get(name string) string {
	if h == nil {
		return ""
	}
	if i := h.index(name); i >= 0 && len(h.fields[i].values) > 0 {
		return h.fields[i].values[0]
	}
	return ""
}

// Values returns every value of the named field.
func (h *Header) Values(name string) []string {
	if h == nil {
		return nil
	}
	if i := h.index(name); i >= 0 {
		return slices.Clone(h.fields[i].values)
	}
	return nil
}

// Has reports whether the named field is present.
func (h *Header) Has(name string) bool {
	return h != nil && h.index(name) >= 0
}

// Del removes the named field.
func (h *Header) Del(name string) {
	if i := h.index(name); i >= 0 {
		h.fields = slices.Delete(h.fields, i, i+1)
	}
}

// Keys returns field names in insertion order.
func (h *Header) Keys() []string {
	if h == nil {
		return nil
	}
	keys := make([]string, len(h.fields))
	for i, f := range h.fields {
		keys[i] = f.name
	}
	return keys
}

// Len returns the number of fields.
func (h *Header) Len() int {
	if h == nil {
		return 0
	}
	return len(h.fields)
}

// Clone returns a deep copy. Cloning nil yields an empty header set.
func (h *Header) Clone() *Header {
	out := NewHeader()
	if h == nil {
		return out
	}
	out.fields = make([]field, len(h.fields))
	for i, f := range h.fields {
		out.fields[i] = field{name: f.name, values: slices.Clone(f.values)}
	}
	return out
}

// HTTP converts the set into an http.Header with canonical keys.
func (h *Header) HTTP() http.Header {
	out := make(http.Header, h.Len())
	if h == nil {
		return out
	}
	for _, f := range h.fields {
		for _, v := range f.values {
			out.Add(f.name, v)
		}
	}
	return out
}
