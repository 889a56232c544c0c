// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/devgen/pkg/ui/display"
)

// Renderer writes one indented JSON document per call.
type Renderer struct {
	encoder *json.Encoder
}

func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

func (r *Renderer) RenderResult(result interface{}) error {
	return r.encoder.Encode(result)
}

// RenderError encodes the code, message and details of err.
func (r *Renderer) RenderError(err error) error {
	e := display.NewError(err)
	if e == nil {
		return nil
	}
	return r.encoder.Encode(map[string]*display.Error{"error": e})
}

func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
