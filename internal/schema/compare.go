package schema

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Comparator flattens two settings documents and computes their delta.
type Comparator struct {
	Flattener Flattener
}

// Compare flattens older and newer with query and returns what changed.
func (c Comparator) Compare(ctx context.Context, query, older, newer string) (Delta, error) {
	from, err := c.Flattener.Flatten(ctx, query, older)
	if err != nil {
		return Delta{}, errors.Wrap(err, "flatten older schema")
	}
	to, err := c.Flattener.Flatten(ctx, query, newer)
	if err != nil {
		return Delta{}, errors.Wrap(err, "flatten newer schema")
	}
	d := Diff(from, to)
	logrus.WithFields(logrus.Fields{
		"added":   d.Added.Len(),
		"changed": d.Changed.Len(),
		"removed": len(d.Removed),
	}).Debug("compared schemas")
	return d, nil
}
