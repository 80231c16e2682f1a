// Package schema flattens JSON settings schemas into key/descriptor maps and
// computes the delta between two of them.
package schema

import (
	"github.com/pkg/errors"
)

// Descriptor describes one setting: its type, default value and
// descriptions. It wraps the object produced by the flattening query, so
// members beyond the well-known ones are kept as well.
type Descriptor struct {
	obj *Object
}

// Object returns the underlying JSON object.
func (d Descriptor) Object() *Object {
	return d.obj
}

// Type returns the "type" member, or "" when absent or not a string.
func (d Descriptor) Type() string {
	return d.str("type")
}

// Default returns the "default" member and whether it is present.
func (d Descriptor) Default() (any, bool) {
	return d.obj.Get("default")
}

// Description returns the plain "description" member.
func (d Descriptor) Description() string {
	return d.str("description")
}

// MarkdownDescription returns the "markdownDescription" member and whether it
// is present as a string.
func (d Descriptor) MarkdownDescription() (string, bool) {
	v, ok := d.obj.Get("markdownDescription")
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Text returns the richest description available.
func (d Descriptor) Text() string {
	if md, ok := d.MarkdownDescription(); ok {
		return md
	}
	return d.Description()
}

// Equal reports whether both descriptors are structurally identical.
func (d Descriptor) Equal(o Descriptor) bool {
	return Equal(d.obj, o.obj)
}

func (d Descriptor) str(key string) string {
	v, _ := d.obj.Get(key)
	s, _ := v.(string)
	return s
}

// Settings is a flattened schema: setting key to descriptor, in insertion order.
type Settings struct {
	obj *Object
}

// EmptySettings returns a Settings with no keys.
func EmptySettings() *Settings {
	return &Settings{obj: NewObject()}
}

// NewSettings interprets a decoded JSON value as a flattened schema. The value
// must be an object whose members are all objects.
func NewSettings(v any) (*Settings, error) {
	obj, ok := v.(*Object)
	if !ok {
		return nil, errors.Errorf("flattened schema must be a JSON object, got %s", kindOf(v))
	}
	for _, k := range obj.keys {
		if _, ok := obj.vals[k].(*Object); !ok {
			return nil, errors.Errorf("setting %q: descriptor must be a JSON object, got %s", k, kindOf(obj.vals[k]))
		}
	}
	return &Settings{obj: obj}, nil
}

// ParseSettings decodes a flattened schema from JSON text.
func ParseSettings(data []byte) (*Settings, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return NewSettings(v)
}

// Set stores d under key.
func (s *Settings) Set(key string, d Descriptor) {
	s.obj.Set(key, d.obj)
}

// Get returns the descriptor stored under key.
func (s *Settings) Get(key string) (Descriptor, bool) {
	v, ok := s.obj.Get(key)
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{obj: v.(*Object)}, true
}

// Has reports whether key is present.
func (s *Settings) Has(key string) bool {
	_, ok := s.obj.vals[key]
	return ok
}

// Keys returns the setting keys in order.
func (s *Settings) Keys() []string {
	return s.obj.Keys()
}

// Len returns the number of settings. A nil Settings is empty.
func (s *Settings) Len() int {
	if s == nil {
		return 0
	}
	return s.obj.Len()
}

// Indent renders the settings as a two-space indented JSON object.
func (s *Settings) Indent() string {
	return Indent(s.obj)
}

func kindOf(v any) string {
	switch v.(type) {
	case *Object:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return "number"
	}
}
