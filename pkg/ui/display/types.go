// Package display holds the view models the renderers draw. Commands build
// them from engine results; renderers never reach into the engine.
package display

import (
	"time"

	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/generator"
	"github.com/arthur-debert/devgen/pkg/runner"
)

// GenerateView is the output of `devgen generate`.
type GenerateView struct {
	Requests  []Request `json:"requests"`
	DryRun    bool      `json:"dryRun"`
	Timestamp time.Time `json:"timestamp"`
}

// Request is one (type, name) generation request.
type Request struct {
	Resource string   `json:"resource"`
	Status   string   `json:"status"`
	Executed []string `json:"executed"`
	Outputs  []string `json:"outputs"`
	Skipped  []Member `json:"skipped,omitempty"`
	Resolved []string `json:"resolved,omitempty"`
	Error    *Error   `json:"error,omitempty"`
}

// Member is a skipped compound member.
type Member struct {
	Resource string `json:"resource"`
	Parent   string `json:"parent"`
	Reason   string `json:"reason"`
}

// Error is the renderable form of an engine error.
type Error struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Defect  bool                   `json:"defect,omitempty"`
}

// NewError flattens err. nil yields nil.
func NewError(err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    string(errors.GetErrorCode(err)),
		Message: err.Error(),
		Details: errors.GetErrorDetails(err),
		Defect:  errors.IsDefect(err),
	}
}

// NewGenerateView converts generator results.
func NewGenerateView(results []*generator.Result, dryRun bool) *GenerateView {
	view := &GenerateView{DryRun: dryRun, Timestamp: time.Now()}
	for _, r := range results {
		req := Request{
			Resource: r.Key(),
			Status:   string(r.Status),
			Executed: r.Executed,
			Outputs:  r.Outputs,
			Error:    NewError(r.Err),
		}
		for _, m := range r.Members {
			if m.Status == runner.MemberSkipped {
				reason := ""
				if m.Err != nil {
					reason = m.Err.Error()
				}
				req.Skipped = append(req.Skipped, Member{Resource: m.Key(), Parent: m.Parent, Reason: reason})
				continue
			}
			req.Resolved = append(req.Resolved, m.Key())
		}
		view.Requests = append(view.Requests, req)
	}
	return view
}

// Failed counts the requests that did not succeed.
func (v *GenerateView) Failed() int {
	n := 0
	for _, r := range v.Requests {
		if r.Status != string(generator.StatusSucceeded) {
			n++
		}
	}
	return n
}

// ListView is the output of `devgen list`.
type ListView struct {
	ConfigPath string         `json:"configPath"`
	Types      []TypeListing  `json:"types"`
	Compounds  []CompoundView `json:"compounds"`
}

// TypeListing describes one configured type.
type TypeListing struct {
	Type         string   `json:"type"`
	Runner       string   `json:"runner"`
	SourceFolder string   `json:"sourceFolder"`
	TargetFolder string   `json:"targetFolder"`
	Names        []string `json:"names,omitempty"`
	Templates    []string `json:"templates,omitempty"`
}

// CompoundView is one compound with its members in run order.
type CompoundView struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// HelpView is the output of `devgen help <type> [name]`.
type HelpView struct {
	Resource string `json:"resource"`
	Folder   string `json:"folder"`
	// Markdown is the README of the folder, empty when there is none.
	Markdown string `json:"markdown"`
}
