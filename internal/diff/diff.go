// Package diff provides unified-diff generation for settings files.
// It uses github.com/pmezard/go-difflib/difflib to produce classic unified
// patches (---/+++ headers, @@ hunks, lines prefixed with ' ', '-', '+').
package diff

import (
	"strings"

	"github.com/pkg/errors"
	difflib "github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of context lines around each hunk.
const DefaultContext = 3

// Options controls patch generation behavior.
type Options struct {
	// Context controls the number of CONTEXT LINES in unified hunks.
	// If 0, default to DefaultContext.
	Context int
}

// Unified produces a unified patch for a↦b labeled with fromName and toName.
// Texts are compared line by line after splitting on '\n'. The result has no
// trailing newline and is empty when the texts have no line difference.
func Unified(fromName, toName, a, b string, opt Options) (string, error) {
	ctx := opt.Context
	if ctx <= 0 {
		ctx = DefaultContext
	}

	u := difflib.UnifiedDiff{
		A:        splitLinesTerminated(a),
		B:        splitLinesTerminated(b),
		FromFile: fromName,
		ToFile:   toName,
		Context:  ctx,
		Eol:      "\n",
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return "", errors.Wrap(err, "unified diff")
	}
	return strings.TrimSuffix(s, "\n"), nil
}

// splitLinesTerminated splits on '\n' the way a line-oriented reader would
// and terminates every element with '\n', so that difflib emits one output
// line per input line. A final line without newline still gets one; the
// caller trims the last terminator of the patch.
func splitLinesTerminated(s string) []string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] += "\n"
	}
	return lines
}
