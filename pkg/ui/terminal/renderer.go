// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/devgen/pkg/ui/display"
	"github.com/arthur-debert/devgen/pkg/ui/help"
)

// Renderer draws styled output for interactive terminals.
type Renderer struct {
	output   io.Writer
	markdown help.Renderer
}

func New(w io.Writer) *Renderer {
	return &Renderer{output: w, markdown: help.NewGlamourRenderer()}
}

func (r *Renderer) RenderResult(result interface{}) error {
	var b strings.Builder
	switch v := result.(type) {
	case *display.GenerateView:
		r.writeGenerate(&b, v)
	case *display.ListView:
		r.writeList(&b, v)
	case *display.HelpView:
		r.writeHelp(&b, v)
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
	line := fmt.Sprintf("%s %s %s\n",
		pterm.Error.Prefix.Text,
		pterm.Error.MessageStyle.Sprint(e.Code),
		e.Message)
	if e.Defect {
		line += mutedStyle.Render("  this is a bug in devgen or one of its runners, please report it") + "\n"
	}
	_, werr := io.WriteString(r.output, line)
	return werr
}

func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintf(r.output, "%s %s\n", pterm.Info.Prefix.Text, msg)
	return err
}

func (r *Renderer) writeGenerate(b *strings.Builder, v *display.GenerateView) {
	if v.DryRun {
		b.WriteString(warnStyle.Render("Dry run: nothing was written.") + "\n\n")
	}
	for i, req := range v.Requests {
		if i > 0 {
			b.WriteString("\n")
		}
		badge := statusStyle(req.Status).Sprintf(" %s ", strings.ToUpper(req.Status))
		fmt.Fprintf(b, "%s %s\n", badge, titleStyle.Render(req.Resource))

		if len(req.Executed) > 0 {
			steps := make([]string, len(req.Executed))
			for j, s := range req.Executed {
				steps[j] = commandStyle.Render(s)
			}
			b.WriteString(listItemStyle.Render(strings.Join(steps, mutedStyle.Render(" → "))) + "\n")
		}
		for _, out := range req.Outputs {
			b.WriteString(listItemStyle.Render("+ "+pathStyle.Render(out)) + "\n")
		}
		for _, m := range req.Skipped {
			line := fmt.Sprintf("%s %s %s", statusStyle("skipped").Sprint(" SKIP "), m.Resource, mutedStyle.Render(m.Reason))
			b.WriteString(listItemStyle.Render(line) + "\n")
		}
		if req.Error != nil {
			b.WriteString(listItemStyle.Render(pterm.Error.MessageStyle.Sprint(req.Error.Message)) + "\n")
		}
	}
	if failed := v.Failed(); failed > 0 {
		fmt.Fprintf(b, "\n%s\n", pterm.Error.MessageStyle.Sprintf("%d of %d requests failed", failed, len(v.Requests)))
	}
}

func (r *Renderer) writeList(b *strings.Builder, v *display.ListView) {
	source := v.ConfigPath
	if source == "" {
		source = "embedded defaults"
	}
	b.WriteString(titleStyle.Render("Types") + " " + mutedStyle.Render("("+source+")") + "\n")
	for _, t := range v.Types {
		line := fmt.Sprintf("%s %s %s → %s",
			titleStyle.Render(t.Type),
			commandStyle.Render("["+t.Runner+"]"),
			pathStyle.Render(t.SourceFolder),
			pathStyle.Render(t.TargetFolder))
		b.WriteString(listItemStyle.Render(line) + "\n")
		if len(t.Names) > 0 {
			b.WriteString(listItemStyle.Render("  "+mutedStyle.Render("names: ")+strings.Join(t.Names, ", ")) + "\n")
		}
		if len(t.Templates) > 0 {
			b.WriteString(listItemStyle.Render("  "+mutedStyle.Render("templates: ")+strings.Join(t.Templates, ", ")) + "\n")
		}
	}
	if len(v.Compounds) == 0 {
		return
	}
	b.WriteString("\n" + titleStyle.Render("Compounds") + "\n")
	for _, c := range v.Compounds {
		b.WriteString(listItemStyle.Render(titleStyle.Render(c.Name)+" "+mutedStyle.Render(strings.Join(c.Members, " → "))) + "\n")
	}
}

func (r *Renderer) writeHelp(b *strings.Builder, v *display.HelpView) {
	if v.Markdown == "" {
		b.WriteString(warnStyle.Render("No help for "+v.Resource) + " " + mutedStyle.Render("(looked in "+v.Folder+")") + "\n")
		return
	}
	b.WriteString(r.markdown.Render(v.Markdown, ".md"))
}
