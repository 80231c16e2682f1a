package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) any {
	t.Helper()
	v, err := Parse([]byte(s))
	require.NoError(t, err)
	return v
}

func TestParseKeepsMemberOrder(t *testing.T) {
	v := mustParse(t, `{"z": 1, "a": {"y": true, "b": null}, "m": [1, "two"]}`)
	obj, ok := v.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "m"}, obj.Keys())

	inner, _ := obj.Get("a")
	assert.Equal(t, []string{"y", "b"}, inner.(*Object).Keys())

	n, _ := obj.Get("z")
	assert.Equal(t, json.Number("1"), n)
}

func TestParseDuplicateKeyKeepsFirstPosition(t *testing.T) {
	obj := mustParse(t, `{"a": 1, "b": 2, "a": 3}`).(*Object)
	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	v, _ := obj.Get("a")
	assert.Equal(t, json.Number("3"), v)
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{``, `{`, `{"a": }`, `{"a": 1} {"b": 2}`, `[1,]`} {
		_, err := Parse([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{`{"a": 1, "b": 2}`, `{"b": 2, "a": 1}`, true},
		{`{"a": 1}`, `{"a": 1.0}`, true},
		{`{"a": 1}`, `{"a": 2}`, false},
		{`{"a": 1}`, `{"a": 1, "b": null}`, false},
		{`[1, 2]`, `[2, 1]`, false},
		{`"x"`, `"x"`, true},
		{`null`, `false`, false},
		{`{"a": [{"x": "y"}]}`, `{"a": [{"x": "y"}]}`, true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Equal(mustParse(t, c.a), mustParse(t, c.b)), "%s vs %s", c.a, c.b)
	}
}

func TestIndent(t *testing.T) {
	v := mustParse(t, `{"b":{"type":"string","default":"<x>","list":[1,2.50],"empty":{},"none":[]},"a":false}`)
	want := `{
  "b": {
    "type": "string",
    "default": "<x>",
    "list": [
      1,
      2.50
    ],
    "empty": {},
    "none": []
  },
  "a": false
}`
	assert.Equal(t, want, Indent(v))
	assert.Equal(t, "null", Indent(nil))
	assert.Equal(t, `"a\"b"`, Indent("a\"b"))
}
