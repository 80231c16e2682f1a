package schema

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultJQPath is the jq binary looked up on PATH when none is configured.
const DefaultJQPath = "jq"

// Flattener turns a JSON settings document into a flattened schema using a
// caller-supplied query.
type Flattener interface {
	Flatten(ctx context.Context, query, contents string) (*Settings, error)
}

// JQ runs the jq command-line processor as a subprocess. The query is passed
// as the only argument and the document on stdin; stdout must hold one JSON
// object.
type JQ struct {
	// Path of the jq binary. Empty means DefaultJQPath.
	Path string
}

// Flatten implements Flattener.
func (j JQ) Flatten(ctx context.Context, query, contents string) (*Settings, error) {
	bin := j.Path
	if bin == "" {
		bin = DefaultJQPath
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, query)
	cmd.Stdin = strings.NewReader(contents)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logrus.WithField("query", query).Debug("running jq")
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.Wrapf(err, "%s %q: %s", bin, query, msg)
		}
		return nil, errors.Wrapf(err, "%s %q", bin, query)
	}

	settings, err := ParseSettings(stdout.Bytes())
	if err != nil {
		return nil, errors.Wrapf(err, "%s %q output", bin, query)
	}
	return settings, nil
}
