// Package help finds and renders the README of a runner's help folder.
package help

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"

	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/types"
)

// ReadmeNames are tried in order inside a help folder.
var ReadmeNames = []string{"README.md", "readme.md", "README.txt", "README"}

// Renderer turns raw help content into terminal output.
type Renderer interface {
	// Render formats content; format is the file extension, e.g. ".md".
	Render(content string, format string) string
}

// PlainRenderer returns content unchanged.
type PlainRenderer struct{}

func (PlainRenderer) Render(content string, format string) string {
	return content
}

// GlamourRenderer renders markdown with glamour.
type GlamourRenderer struct {
	Style string // "auto", a builtin style name or a path to a style file
	Width int    // 0 keeps glamour's default
}

func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// Render falls back to the raw content when glamour fails or the content is
// not markdown.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// Find returns the first README in folder, or "" when the folder has none.
func Find(fsys types.FS, folder string) string {
	if folder == "" {
		return ""
	}
	for _, name := range ReadmeNames {
		path := filepath.Join(folder, name)
		if info, err := fsys.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads the README of the first folder that has one. ok is false when
// none does, which is not an error.
func Load(fsys types.FS, folders ...string) (content, folder string, ok bool, err error) {
	for _, f := range folders {
		path := Find(fsys, f)
		if path == "" {
			continue
		}
		data, err := fsys.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", f, false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
		}
		return string(data), f, true, nil
	}
	return "", "", false, nil
}
