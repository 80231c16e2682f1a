package archive

import (
	"archive/zip"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/Jeffail/gabs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"settings-diff/internal/textutil"
	"settings-diff/internal/ziputil"
)

// ErrEntryNotFound is returned when the archive has no entry for the
// requested path.
var ErrEntryNotFound = errors.New("archive entry not found")

// TranslationSuffix replaces the extension of a settings file to name its
// translations file, e.g. package.json -> package.nls.json.
const TranslationSuffix = ".nls.json"

// placeholderRe matches a quoted "%key%" translation token.
var placeholderRe = regexp.MustCompile(`"%([^"%]+)%"`)

// ReadFile returns the text of the entry at name. A top-level directory shared
// by every entry is added in front of name before the exact-match lookup.
func ReadFile(zipPath, name string) (string, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", errors.Wrapf(err, "open %s", zipPath)
	}
	defer zr.Close()

	text, err := readEntry(&zr.Reader, name)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", zipPath)
	}
	return text, nil
}

// ReadConfig is ReadFile followed by translation: when the archive holds the
// sibling translations file, every "%key%" placeholder it defines is replaced
// by the JSON-quoted translation. A missing translations file is not an error.
func ReadConfig(zipPath, name string) (string, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", errors.Wrapf(err, "open %s", zipPath)
	}
	defer zr.Close()

	text, err := readEntry(&zr.Reader, name)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", zipPath)
	}

	nlsName := TranslationPath(name)
	nls, err := readEntry(&zr.Reader, nlsName)
	if errors.Is(err, ErrEntryNotFound) {
		return text, nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "read %s", zipPath)
	}

	table, err := parseTranslations(nls)
	if err != nil {
		return "", errors.Wrapf(err, "translations %s", nlsName)
	}
	logrus.WithFields(logrus.Fields{"file": nlsName, "entries": len(table)}).Debug("applying translations")
	return Translate(text, table), nil
}

// TranslationPath derives the translations file path of a settings file.
func TranslationPath(name string) string {
	return strings.TrimSuffix(name, path.Ext(name)) + TranslationSuffix
}

// Translate replaces each "%key%" token (quotes included) whose key is in
// table with the JSON string literal of the translation. Unknown keys are
// left as they are.
func Translate(text string, table map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(token string) string {
		key := token[2 : len(token)-2]
		value, ok := table[key]
		if !ok {
			return token
		}
		return textutil.QuoteJSON(value)
	})
}

func parseTranslations(text string) (map[string]string, error) {
	parsed, err := gabs.ParseJSON([]byte(text))
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}
	children, err := parsed.ChildrenMap()
	if err != nil {
		return nil, errors.Wrap(err, "expected a JSON object")
	}
	table := make(map[string]string, len(children))
	for key, child := range children {
		value, ok := child.Data().(string)
		if !ok {
			return nil, errors.Errorf("translation %q is not a string", key)
		}
		table[key] = value
	}
	return table, nil
}

func readEntry(zr *zip.Reader, name string) (string, error) {
	f := ziputil.Lookup(zr, name)
	if f == nil {
		return "", errors.Wrapf(ErrEntryNotFound, "archive does not contain expected file %s", name)
	}
	logrus.WithField("entry", f.Name).Debug("found archive entry")

	rc, err := f.Open()
	if err != nil {
		return "", errors.Wrapf(err, "open entry %s", f.Name)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", errors.Wrapf(err, "read entry %s", f.Name)
	}
	return string(textutil.NormalizeUTF8LF(data)), nil
}
