// Package report renders the markdown change report for a settings schema.
//
// All functions are pure: identical input yields byte-identical output.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"settings-diff/internal/schema"
	"settings-diff/internal/textutil"
)

// Input carries everything the report needs.
type Input struct {
	RepositoryURL string
	ConfigPath    string
	FromTag       string
	ToTag         string
	// Diff is the unified diff of the raw files; empty means no change.
	Diff string
	// Delta is ignored when Diff is empty.
	Delta schema.Delta
}

// NoChanges is printed instead of any section when the files are identical.
const NoChanges = "No changes"

const introTemplate = "Following are the [settings schema]({{.Link}}) changes between tags `{{.From}}` and `{{.To}}`. " +
	"Make sure that those are reflected in the package settings and the `sublime-package.json` file.\n"

// The blank lines around summary and body are required for GitHub to render
// the markdown inside <details>.
const collapsibleTemplate = `<details>

<summary>{{.Summary}}</summary>

{{.Body}}

</details>`

var (
	introTpl       = template.Must(template.New("intro").Parse(introTemplate))
	collapsibleTpl = template.Must(template.New("collapsible").Parse(collapsibleTemplate))
)

// Render assembles the full report. Sections are separated by a blank line.
func Render(in Input) string {
	out := []string{Intro(in)}
	if in.Diff == "" {
		out = append(out, NoChanges)
		return strings.Join(out, "\n\n")
	}

	if a := in.Delta.Added; a != nil && a.Len() > 0 {
		out = append(out,
			Collapsible(fmt.Sprintf("Added keys (%d)", a.Len()), JSONBlock(a)),
			Collapsible("New sublime settings", SettingsSnippet(a)),
		)
	}
	if c := in.Delta.Changed; c != nil && c.Len() > 0 {
		out = append(out,
			Collapsible(fmt.Sprintf("Changed keys (%d)", c.Len()), JSONBlock(c)),
			Collapsible("Changed sublime settings", SettingsSnippet(c)),
		)
	}
	if len(in.Delta.Removed) > 0 {
		out = append(out, RemovedList(in.Delta.Removed))
	}
	out = append(out, Collapsible(fmt.Sprintf("All changes in `%s`", in.ConfigPath), "```diff\n"+in.Diff+"\n```"))
	return strings.Join(out, "\n\n")
}

// Intro renders the leading sentence linking the schema file at the newer tag.
func Intro(in Input) string {
	return execute(introTpl, struct{ Link, From, To string }{
		Link: BlobURL(in.RepositoryURL, in.ToTag, in.ConfigPath),
		From: in.FromTag,
		To:   in.ToTag,
	})
}

// BlobURL links path at tag in the repository web view.
func BlobURL(repositoryURL, tag, path string) string {
	return strings.TrimRight(repositoryURL, "/") + "/blob/" + tag + "/" + strings.TrimLeft(path, "/")
}

// Collapsible wraps body in a <details> block titled summary.
func Collapsible(summary, body string) string {
	return execute(collapsibleTpl, struct{ Summary, Body string }{summary, body})
}

// JSONBlock renders settings as an indented JSON code block.
func JSONBlock(s *schema.Settings) string {
	return "```json\n" + s.Indent() + "\n```"
}

// SettingsSnippet renders settings the way they appear in an editor settings
// file: the description as line comments above a "key": default pair.
func SettingsSnippet(s *schema.Settings) string {
	entries := make([]string, 0, s.Len())
	for _, key := range s.Keys() {
		d, _ := s.Get(key)
		def, _ := d.Default()
		entries = append(entries, CommentLines(d.Text())+"\n\""+key+"\": "+schema.Indent(def)+",")
	}
	return "```\n" + strings.Join(entries, "\n\n") + "\n```"
}

// CommentLines prefixes every line of text with "// " and trims trailing
// whitespace. An empty text yields an empty string.
func CommentLines(text string) string {
	lines := textutil.SplitLines(text)
	for i, ln := range lines {
		lines[i] = strings.TrimRightFunc("// "+ln, unicode.IsSpace)
	}
	return strings.Join(lines, "\n")
}

// RemovedList renders the removed keys as a bullet list.
func RemovedList(keys []string) string {
	items := make([]string, 0, len(keys))
	for _, k := range keys {
		items = append(items, " - `"+k+"`")
	}
	return fmt.Sprintf("Removed keys (%d):\n%s", len(keys), strings.Join(items, "\n"))
}

func execute(t *template.Template, data any) string {
	var buf bytes.Buffer
	// Templates are static and data fields are plain strings.
	_ = t.Execute(&buf, data)
	return buf.String()
}
