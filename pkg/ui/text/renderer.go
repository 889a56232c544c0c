// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/devgen/pkg/ui/display"
)

// Renderer writes unstyled text, suitable for pipes and logs.
type Renderer struct {
	output io.Writer
}

func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

func (r *Renderer) RenderResult(result interface{}) error {
	var b strings.Builder
	switch v := result.(type) {
	case *display.GenerateView:
		writeGenerate(&b, v)
	case *display.ListView:
		writeList(&b, v)
	case *display.HelpView:
		writeHelp(&b, v)
	default:
		fmt.Fprintf(&b, "%+v\n", result)
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) RenderError(err error) error {
	e := display.NewError(err)
	if e == nil {
		return nil
	}
	_, werr := fmt.Fprintf(r.output, "Error: %s\n", e.Message)
	return werr
}

func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func writeGenerate(b *strings.Builder, v *display.GenerateView) {
	if v.DryRun {
		b.WriteString("Dry run: nothing was written.\n\n")
	}
	for i, req := range v.Requests {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "%s: %s\n", req.Resource, req.Status)
		if len(req.Executed) > 0 {
			fmt.Fprintf(b, "  ran: %s\n", strings.Join(req.Executed, ", "))
		}
		for _, out := range req.Outputs {
			fmt.Fprintf(b, "  wrote %s\n", out)
		}
		for _, m := range req.Skipped {
			fmt.Fprintf(b, "  skipped %s (in %s): %s\n", m.Resource, m.Parent, m.Reason)
		}
		if req.Error != nil {
			fmt.Fprintf(b, "  error: %s\n", req.Error.Message)
		}
	}
	if failed := v.Failed(); failed > 0 {
		fmt.Fprintf(b, "\n%d of %d requests failed\n", failed, len(v.Requests))
	}
}

func writeList(b *strings.Builder, v *display.ListView) {
	source := v.ConfigPath
	if source == "" {
		source = "embedded defaults"
	}
	fmt.Fprintf(b, "Types (%s):\n", source)
	for _, t := range v.Types {
		fmt.Fprintf(b, "  %s [%s] %s -> %s\n", t.Type, t.Runner, t.SourceFolder, t.TargetFolder)
		if len(t.Names) > 0 {
			fmt.Fprintf(b, "    names: %s\n", strings.Join(t.Names, ", "))
		}
		if len(t.Templates) > 0 {
			fmt.Fprintf(b, "    templates: %s\n", strings.Join(t.Templates, ", "))
		}
	}
	if len(v.Compounds) == 0 {
		return
	}
	b.WriteString("\nCompounds:\n")
	for _, c := range v.Compounds {
		fmt.Fprintf(b, "  %s: %s\n", c.Name, strings.Join(c.Members, ", "))
	}
}

func writeHelp(b *strings.Builder, v *display.HelpView) {
	if v.Markdown == "" {
		fmt.Fprintf(b, "No help for %s (looked in %s)\n", v.Resource, v.Folder)
		return
	}
	b.WriteString(v.Markdown)
	if !strings.HasSuffix(v.Markdown, "\n") {
		b.WriteString("\n")
	}
}
