// Package settingsdiff compares a settings schema between two tags of a
// repository and writes the markdown report.
package settingsdiff

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"settings-diff/internal/archive"
	"settings-diff/internal/diff"
	"settings-diff/internal/report"
	"settings-diff/internal/schema"
)

// Config holds the parameters of one comparison.
type Config struct {
	RepositoryURL string
	ConfigPath    string
	Query         string
	FromTag       string
	ToTag         string
}

// Validate checks that every parameter is set.
func (c Config) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"repository_url", c.RepositoryURL},
		{"configuration_file_path", c.ConfigPath},
		{"configuration_jq_query", c.Query},
		{"tag_from", c.FromTag},
		{"tag_to", c.ToTag},
	} {
		if strings.TrimSpace(f.value) == "" {
			return errors.Errorf("%s must not be empty", f.name)
		}
	}
	return nil
}

// Runner wires the download, comparison and rendering steps.
type Runner struct {
	Client    *http.Client
	Flattener schema.Flattener
	// TempDir is where the scratch directory is created; empty means os.TempDir.
	TempDir string
}

// Run performs one comparison. All downloads go to a scratch directory that is
// removed before Run returns. The report is written to out only once every
// step has succeeded.
func (r *Runner) Run(ctx context.Context, cfg Config, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	dir, err := os.MkdirTemp(r.TempDir, "settings-diff-")
	if err != nil {
		return errors.Wrap(err, "create scratch directory")
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			logrus.WithError(err).WithField("dir", dir).Warn("error removing scratch directory")
		}
	}()

	fetcher := &archive.Fetcher{Client: r.Client, Dir: dir}
	older, err := r.load(ctx, fetcher, cfg, cfg.FromTag)
	if err != nil {
		return err
	}
	newer, err := r.load(ctx, fetcher, cfg, cfg.ToTag)
	if err != nil {
		return err
	}

	patch, err := diff.Unified(cfg.FromTag, cfg.ToTag, older, newer, diff.Options{})
	if err != nil {
		return err
	}

	in := report.Input{
		RepositoryURL: cfg.RepositoryURL,
		ConfigPath:    cfg.ConfigPath,
		FromTag:       cfg.FromTag,
		ToTag:         cfg.ToTag,
		Diff:          patch,
	}
	if patch != "" {
		cmp := schema.Comparator{Flattener: r.flattener()}
		in.Delta, err = cmp.Compare(ctx, cfg.Query, older, newer)
		if err != nil {
			return err
		}
	} else {
		logrus.Debug("files are identical, skipping key comparison")
	}

	_, err = fmt.Fprintln(out, report.Render(in))
	return errors.Wrap(err, "write report")
}

func (r *Runner) load(ctx context.Context, f *archive.Fetcher, cfg Config, tag string) (string, error) {
	zipPath, err := f.Fetch(ctx, cfg.RepositoryURL, tag)
	if err != nil {
		return "", err
	}
	text, err := archive.ReadConfig(zipPath, cfg.ConfigPath)
	if err != nil {
		return "", errors.Wrapf(err, "tag %s", tag)
	}
	return text, nil
}

func (r *Runner) flattener() schema.Flattener {
	if r.Flattener == nil {
		return schema.JQ{}
	}
	return r.Flattener
}
