package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUTF8LF(t *testing.T) {
	got := NormalizeUTF8LF([]byte("a\r\nb\rc\xff"))
	assert.Equal(t, "a\nb\nc\uFFFD", string(got))
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"one"}, SplitLines("one\n"))
	assert.Equal(t, []string{"one", "", "three"}, SplitLines("one\r\n\nthree"))
}

func TestQuoteJSON(t *testing.T) {
	assert.Equal(t, `"Hello"`, QuoteJSON("Hello"))
	assert.Equal(t, `"say \"hi\"\n"`, QuoteJSON("say \"hi\"\n"))
	assert.Equal(t, `"<a> & <b>"`, QuoteJSON("<a> & <b>"))
}
