// Package command holds the single-purpose steps runners assemble into a
// pipeline, and the Menu that executes them by name.
package command

import (
	"context"
)

// Pipeline step names.
const (
	CreateFileName             = "create-file"
	ReplacePlaceholdersName    = "replace-placeholders"
	CreateFileFromResourceName = "create-file-from-resource"
	FormatXMLName              = "format-xml"
)

// Command is one unit of work bound to a Resource at construction.
type Command interface {
	Execute(ctx context.Context) error
}

// Func adapts a function to Command.
type Func func(ctx context.Context) error

func (f Func) Execute(ctx context.Context) error {
	return f(ctx)
}
