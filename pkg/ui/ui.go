// Package ui renders command results as styled terminal output, plain text
// or JSON.
package ui

import (
	"io"

	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/ui/json"
	"github.com/arthur-debert/devgen/pkg/ui/terminal"
	"github.com/arthur-debert/devgen/pkg/ui/text"
)

// Renderer draws the display views.
type Renderer interface {
	// RenderResult draws a *display.GenerateView, *display.ListView or
	// *display.HelpView. Other values are printed as-is.
	RenderResult(result interface{}) error

	RenderError(err error) error

	RenderMessage(msg string) error
}

// NewRenderer creates the renderer for format, detecting it for FormatAuto.
func NewRenderer(format Format, w io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(DetectFormat(w), w)
	case FormatTerminal:
		return terminal.New(w), nil
	case FormatText:
		return text.New(w), nil
	case FormatJSON:
		return json.New(w), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown output format %d", int(format))
	}
}
