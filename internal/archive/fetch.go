// Package archive downloads repository snapshots for a tag and reads single
// files out of them.
package archive

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"settings-diff/internal/ziputil"
)

// URL returns the zip archive location of tag in a repository hosted with the
// "<repo>/archive/<tag>.zip" convention.
func URL(repositoryURL, tag string) string {
	return strings.TrimRight(repositoryURL, "/") + "/archive/" + tag + ".zip"
}

// Fetcher downloads tag archives into Dir. The caller owns Dir.
type Fetcher struct {
	Client *http.Client
	Dir    string
}

// Fetch downloads the archive of tag and returns the local file path.
func (f *Fetcher) Fetch(ctx context.Context, repositoryURL, tag string) (string, error) {
	archiveURL := URL(repositoryURL, tag)
	log := logrus.WithField("url", archiveURL)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		log.Debug("error creating request")
		return "", errors.Wrapf(err, "download %s", archiveURL)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	log.Debug("downloading archive")
	resp, err := client.Do(request)
	if err != nil {
		log.Debug("error doing request")
		return "", errors.Wrapf(err, "download %s", archiveURL)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.WithError(err).Debug("error closing response body")
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("status", resp.Status).Debug("unexpected response status")
		return "", errors.Errorf("download %s: unexpected status %s", archiveURL, resp.Status)
	}

	zipPath := filepath.Join(f.Dir, "archive-"+ziputil.SafeFileName(tag)+".zip")
	out, err := os.Create(zipPath)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", zipPath)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(zipPath)
		log.Debug("error reading response body")
		return "", errors.Wrapf(err, "download %s", archiveURL)
	}
	if err := out.Close(); err != nil {
		return "", errors.Wrapf(err, "write %s", zipPath)
	}
	return zipPath, nil
}
