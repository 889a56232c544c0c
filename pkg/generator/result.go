package generator

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/logging"
	"github.com/arthur-debert/devgen/pkg/runner"
	"github.com/arthur-debert/devgen/pkg/types"
)

type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Result is the outcome of one Generate call.
type Result struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Status Status `json:"status"`

	// Executed lists the commands run, "type/name:command" for compounds.
	Executed []string `json:"executed"`

	// Outputs lists the files written, in write order.
	Outputs []string `json:"outputs"`

	// Members is set for compounds.
	Members []runner.Member `json:"members,omitempty"`

	Err error `json:"-"`
}

func (r *Result) Key() string {
	return types.ResourceKey(r.Type, r.Name)
}

func (r *Result) OK() bool {
	return r.Status == StatusSucceeded
}

// Skipped lists the compound members that did not resolve.
func (r *Result) Skipped() []runner.Member {
	var out []runner.Member
	for _, m := range r.Members {
		if m.Status == runner.MemberSkipped {
			out = append(out, m)
		}
	}
	return out
}

// ErrorCode is the code of Err, empty on success.
func (r *Result) ErrorCode() errors.ErrorCode {
	if r.Err == nil {
		return ""
	}
	return errors.GetErrorCode(r.Err)
}

func (r *Result) capture(run runner.Runner) {
	r.Executed = run.Executed()
	r.Outputs = outputs(run)
	if c, ok := run.(*runner.Compound); ok {
		r.Members = c.Members()
	}
}

func (r *Result) fail(logger zerolog.Logger, err error) (*Result, error) {
	r.Status = StatusFailed
	r.Err = err
	if errors.IsDefect(err) {
		logging.Defect(logger, err, "Generation hit a wiring defect")
	} else {
		logger.Error().Err(err).Str("code", string(errors.GetErrorCode(err))).Msg("Generation failed")
	}
	return r, err
}

// outputs collects the files written by run and, for a compound, by every
// child in run order.
func outputs(run runner.Runner) []string {
	c, ok := run.(*runner.Compound)
	if !ok {
		return append([]string{}, run.Resource().Outputs...)
	}
	out := []string{}
	for _, child := range c.Children() {
		out = append(out, outputs(child)...)
	}
	return out
}
