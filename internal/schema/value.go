package schema

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"strings"

	"github.com/pkg/errors"

	"settings-diff/internal/textutil"
)

// Object is a JSON object that remembers member order.
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{vals: map[string]any{}}
}

// Set stores v under key. A new key is appended; an existing key keeps its
// position and takes the new value.
func (o *Object) Set(key string, v any) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Keys returns the member names in order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.keys)
}

// Parse decodes exactly one JSON value. Objects become *Object, arrays []any,
// numbers json.Number; strings, booleans and null map to string, bool and nil.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, errors.Wrap(err, "parse JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("parse JSON: unexpected data after top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		obj := NewObject()
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, errors.Errorf("object key %v is not a string", kt)
			}
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, errors.Errorf("unexpected delimiter %q", delim)
}

// Equal reports whether a and b are structurally equal. Object member order
// is ignored and numbers compare by value.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case *Object:
		y, ok := b.(*Object)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, k := range x.keys {
			yv, ok := y.vals[k]
			if !ok || !Equal(x.vals[k], yv) {
				return false
			}
		}
		return true
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case json.Number:
		y, ok := b.(json.Number)
		if !ok {
			return false
		}
		return x == y || numbersEqual(x, y)
	case string, bool, nil:
		return a == b
	}
	return false
}

func numbersEqual(a, b json.Number) bool {
	x, _, errA := big.ParseFloat(string(a), 10, 256, big.ToNearestEven)
	y, _, errB := big.ParseFloat(string(b), 10, 256, big.ToNearestEven)
	if errA != nil || errB != nil {
		return false
	}
	return x.Cmp(y) == 0
}

// Indent renders v as JSON with two-space indentation. Object member order is
// preserved and number literals are written as decoded.
func Indent(v any) string {
	var sb strings.Builder
	writeIndented(&sb, v, 0)
	return sb.String()
}

func writeIndented(sb *strings.Builder, v any, depth int) {
	switch x := v.(type) {
	case *Object:
		if x.Len() == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{\n")
		for i, k := range x.keys {
			if i > 0 {
				sb.WriteString(",\n")
			}
			pad(sb, depth+1)
			sb.WriteString(textutil.QuoteJSON(k))
			sb.WriteString(": ")
			writeIndented(sb, x.vals[k], depth+1)
		}
		sb.WriteString("\n")
		pad(sb, depth)
		sb.WriteString("}")
	case []any:
		if len(x) == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteString("[\n")
		for i, e := range x {
			if i > 0 {
				sb.WriteString(",\n")
			}
			pad(sb, depth+1)
			writeIndented(sb, e, depth+1)
		}
		sb.WriteString("\n")
		pad(sb, depth)
		sb.WriteString("]")
	case string:
		sb.WriteString(textutil.QuoteJSON(x))
	case json.Number:
		sb.WriteString(x.String())
	case bool:
		if x {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case nil:
		sb.WriteString("null")
	default:
		// Values built outside Parse, e.g. plain Go numbers in tests.
		b, err := json.Marshal(x)
		if err != nil {
			sb.WriteString("null")
			return
		}
		sb.Write(b)
	}
}

func pad(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}
