package ziputil

import (
	"archive/zip"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// FixedZipTime ensures byte-for-byte reproducible archives (1980-01-01 UTC).
var FixedZipTime = time.Unix(315532800, 0).UTC()

// invalidFileCharsRe contains characters that are invalid in Windows filenames,
// plus the path separator.
var invalidFileCharsRe = regexp.MustCompile(`[<>:"/\\|?*]`)

// SafeFileName replaces every character that is unsafe in a file name with '_'.
func SafeFileName(s string) string {
	return invalidFileCharsRe.ReplaceAllString(s, "_")
}

// SanitizePath normalizes ZIP entry paths (forward slashes, no drive, no leading '/'),
// and removes '.' and '..' segments without escaping the root.
func SanitizePath(p string) string {
	s := filepath.ToSlash(p)
	if len(s) > 1 && s[1] == ':' {
		s = s[2:]
	}
	s = strings.TrimLeft(s, "/")
	parts := strings.Split(s, "/")
	stack := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		if part == ".." {
			if n := len(stack); n > 0 {
				stack = stack[:n-1]
			}
			continue
		}
		stack = append(stack, part)
	}
	s = strings.Join(stack, "/")
	if s == "" {
		return "entry"
	}
	return s
}

// TopLevelDir returns the single top-level directory shared by every entry
// name, or "" when there is none. An entry at the archive root (no '/') means
// the archive is not wrapped.
func TopLevelDir(names []string) string {
	common := ""
	for _, name := range names {
		i := strings.IndexByte(name, '/')
		if i <= 0 {
			return ""
		}
		dir := name[:i]
		if common == "" {
			common = dir
			continue
		}
		if dir != common {
			return ""
		}
	}
	return common
}

// EntryNames lists the names of all entries in archive order.
func EntryNames(zr *zip.Reader) []string {
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

// Lookup resolves a logical path against the archive, prefixing it with the
// common top-level directory when the archive has one. It returns the entry
// with exactly that name, or nil.
func Lookup(zr *zip.Reader, logical string) *zip.File {
	target := SanitizePath(logical)
	if dir := TopLevelDir(EntryNames(zr)); dir != "" {
		target = path.Join(dir, target)
	}
	for _, f := range zr.File {
		if f.Name == target {
			return f
		}
	}
	return nil
}

// WriteText writes raw text (bytes) entry with fixed timestamp.
func WriteText(zw *zip.Writer, name string, data []byte) error {
	h := &zip.FileHeader{Name: SanitizePath(name), Method: zip.Deflate}
	h.SetMode(0o644)
	h.Modified = FixedZipTime
	w, err := zw.CreateHeader(h)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
