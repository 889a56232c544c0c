package runner

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/devgen/pkg/config"
	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/logging"
	"github.com/arthur-debert/devgen/pkg/replacer"
	"github.com/arthur-debert/devgen/pkg/types"
)

// State is the lifecycle of a Compound.
type State int

const (
	StatePending State = iota
	StateExpanded
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateExpanded:
		return "expanded"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MemberStatus says what expansion did with one compound member.
type MemberStatus string

const (
	MemberResolved MemberStatus = "resolved"
	MemberSkipped  MemberStatus = "skipped"
)

// Member reports one (type, name) pair of a compound.
type Member struct {
	Type   string       `json:"type"`
	Name   string       `json:"name"`
	Status MemberStatus `json:"status"`
	// Parent is the compound that declared the member.
	Parent string `json:"parent"`
	Err    error  `json:"-"`
}

func (m Member) Key() string {
	return types.ResourceKey(m.Type, m.Name)
}

// Compound fans out into the runners of its compound list. Members that do
// not resolve are skipped and reported; the first member that fails to run
// fails the whole compound.
type Compound struct {
	res      *types.Resource
	props    config.Properties
	env      Env
	children []Runner
	members  []Member
	state    State
	err      error
	executed []string
	logger   zerolog.Logger
}

func newCompound(r *Resolver, res *types.Resource, props config.Properties) (Runner, error) {
	res.SourceFolderPath = props.SourceFolder
	applyEntry(res, props)

	c := &Compound{
		res:    res,
		props:  props,
		env:    r.Env(),
		logger: logging.GetLogger("runner.compound").With().Str("resource", res.Key()).Logger(),
	}
	c.expand(r)
	return c, nil
}

// expand resolves every member in declaration order. It never fails past
// itself: a missing definition puts the compound in StateFailed, a bad
// member is recorded and skipped.
func (c *Compound) expand(r *Resolver) {
	if c.res.SourceName == "" {
		c.fail(errors.New(errors.ErrCompoundUndefined, "a compound needs a name"))
		return
	}
	list := c.env.Store.CompoundList(c.res.SourceName)
	if list.Empty() {
		c.fail(errors.Newf(errors.ErrCompoundUndefined, "compound %q has no definition", c.res.SourceName).
			WithDetail("name", c.res.SourceName))
		return
	}

	for _, m := range list.Members() {
		child := c.res.Child(m.Type, m.Name)
		member := Member{Type: m.Type, Name: m.Name, Parent: c.res.Key()}

		if child.Revisits() || child.Depth() > types.MaxExpansionDepth {
			member.Status = MemberSkipped
			member.Err = errors.Newf(errors.ErrCompoundCycle, "compound expansion loops: %s", child.TrailString()).
				WithDetail("trail", child.TrailString())
			c.skip(member)
			continue
		}

		run, err := r.Resolve(child)
		if err == nil {
			err = InitError(run)
		}
		if err != nil {
			member.Status = MemberSkipped
			member.Err = errors.Wrapf(err, errors.ErrCompoundMember, "member %s of %s skipped", member.Key(), c.res.Key()).
				WithDetail("type", m.Type).
				WithDetail("name", m.Name)
			c.skip(member)
			continue
		}

		member.Status = MemberResolved
		c.members = append(c.members, member)
		if nested, ok := run.(*Compound); ok {
			c.members = append(c.members, nested.members...)
		}
		c.children = append(c.children, run)
	}

	c.state = StateExpanded
	c.logger.Debug().
		Int("resolved", len(c.children)).
		Int("skipped", len(c.Skipped())).
		Msg("Compound expanded")
}

func (c *Compound) skip(m Member) {
	c.logger.Warn().Err(m.Err).Str("member", m.Key()).Msg("Skipping unresolvable compound member")
	c.members = append(c.members, m)
}

func (c *Compound) fail(err error) {
	c.state = StateFailed
	c.err = err
	c.logger.Error().Err(err).Msg("Compound failed")
}

func (c *Compound) Resource() *types.Resource {
	return c.res
}

// Err is the failure that moved the compound to StateFailed, if any.
func (c *Compound) Err() error {
	return c.err
}

func (c *Compound) State() State {
	return c.state
}

// Children are the resolved member runners in run order.
func (c *Compound) Children() []Runner {
	return append([]Runner(nil), c.children...)
}

// Members reports every member seen during expansion, nested compounds
// included, in expansion order.
func (c *Compound) Members() []Member {
	return append([]Member(nil), c.members...)
}

// Skipped is the subset of Members that did not resolve.
func (c *Compound) Skipped() []Member {
	var out []Member
	for _, m := range c.members {
		if m.Status == MemberSkipped {
			out = append(out, m)
		}
	}
	return out
}

func (c *Compound) CheckConfiguration() bool {
	return c.state != StateFailed
}

func (c *Compound) ListAvailableTemplates(string) ([]string, error) {
	return []string{}, nil
}

func (c *Compound) PlaceholderReplacer() replacer.Replacer {
	return nil
}

func (c *Compound) HelpFolder() string {
	h, _ := helpFolders(c.env.Store, c.res)
	return h
}

func (c *Compound) TemplateHelpFolder() string {
	_, h := helpFolders(c.env.Store, c.res)
	return h
}

func (c *Compound) SourceFolder() string {
	return c.res.SourceFolderPath
}

// Run runs every child in expansion order. A child whose preconditions do
// not hold, or whose run fails, stops the compound; files already written
// by earlier children stay.
func (c *Compound) Run(ctx context.Context) error {
	switch c.state {
	case StateFailed:
		return c.err
	case StateCompleted:
		return errors.Newf(errors.ErrAlreadyRan, "%s has already run", c.res.Key())
	}

	for _, child := range c.children {
		key := child.Resource().Key()
		if err := ctx.Err(); err != nil {
			c.fail(errors.Wrapf(err, errors.ErrCanceled, "%s canceled before %s", c.res.Key(), key))
			return c.err
		}
		if !child.CheckConfiguration() {
			c.fail(errors.Newf(errors.ErrConfigPrecondition, "%s: configuration check failed for %s", c.res.Key(), key).
				WithDetail("member", key))
			return c.err
		}

		err := child.Run(ctx)
		for _, step := range child.Executed() {
			c.executed = append(c.executed, qualify(key, step))
		}
		if err != nil {
			c.fail(errors.Wrapf(err, errors.ErrRunFailed, "%s failed while generating %s", c.res.Key(), key).
				WithDetail("member", key))
			return c.err
		}
	}

	c.state = StateCompleted
	c.logger.Info().Int("members", len(c.children)).Msg("Compound completed")
	return nil
}

// Executed lists the children's commands as "type/name:command".
func (c *Compound) Executed() []string {
	return append([]string(nil), c.executed...)
}

// qualify prefixes step with key unless a nested compound already did.
func qualify(key, step string) string {
	if strings.Contains(step, ":") {
		return step
	}
	return key + ":" + step
}
