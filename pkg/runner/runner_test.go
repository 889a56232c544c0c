// pkg/runner/runner_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: afero MemMapFs, config.LoadBytes
// PURPOSE: Test resolution, the leaf pipelines and compound expansion

package runner

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/devgen/pkg/command"
	"github.com/arthur-debert/devgen/pkg/config"
	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/filesystem"
	"github.com/arthur-debert/devgen/pkg/registry"
	"github.com/arthur-debert/devgen/pkg/replacer"
	"github.com/arthur-debert/devgen/pkg/types"
)

const testConfig = `
[properties]
"source.root" = "/tpl"
"target.go.root" = "/app/internal"
"target.go.module" = "example.com/app"
"target.ui.root" = "/app/web"

[types.service]
templates = ["foo", "billing"]

[types.service.names.billing]
target_folder = "/elsewhere"

[types.config]
target_folder = "/app"

[types.alpha]
runner = "file"
source_folder = "/tpl/alpha"
target_folder = "/out/alpha"

[types.beta]
runner = "file"
source_folder = "/tpl/beta"
target_folder = "/out/beta"
templates = ["z"]

[types.ghost]
runner = "nope"

[[compounds.bar]]
type = "service"
names = ["foo"]
[[compounds.bar]]
type = "config"
names = ["baz"]

[[compounds.ab]]
type = "alpha"
names = ["x", "y"]
[[compounds.ab]]
type = "beta"
names = ["z"]

[[compounds.partial]]
type = "alpha"
names = ["x", "y"]
[[compounds.partial]]
type = "beta"
names = ["q"]

[[compounds.dup]]
type = "alpha"
names = ["x", "y", "x"]
[[compounds.dup]]
type = "alpha"
names = ["y"]

[[compounds.loop]]
type = "alpha"
names = ["x"]
[[compounds.loop]]
type = "compound"
names = ["loop"]

[[compounds.outer]]
type = "compound"
names = ["ab", "nowhere"]
[[compounds.outer]]
type = "alpha"
names = ["w"]

[[compounds.broken]]
type = "alpha"
names = ["x"]
[[compounds.broken]]
type = "alpha"
names = ["absent"]
[[compounds.broken]]
type = "beta"
names = ["z"]
`

var testTemplates = map[string]string{
	"/tpl/types/service/foo.go":          "package {{go.package}}\n\ntype {{go.type}} struct{}\n\n// {{go.import}} {{unknown}}\n",
	"/tpl/types/component/card/card.xml": "<card><title>{{name}}</title></card>",
	"/tpl/types/component/card/card.md":  "# {{path.target}}",
	"/tpl/types/file/notes.txt":          "{{name}}",
	"/tpl/alpha/x.txt":                   "x",
	"/tpl/alpha/y.txt":                   "y",
	"/tpl/alpha/w.txt":                   "w",
	"/tpl/beta/z.txt":                    "z",
}

type fixture struct {
	fs       types.FS
	store    *config.Config
	resolver *Resolver
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store, err := config.LoadBytes([]byte(testConfig))
	require.NoError(t, err)

	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())
	for path, content := range testTemplates {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, fsys.WriteFile(path, []byte(content), 0644))
	}

	return &fixture{
		fs:       fsys,
		store:    store,
		resolver: NewResolver(Env{Store: store, FS: fsys, WorkDir: "/app"}, nil),
	}
}

func (f *fixture) read(t *testing.T, path string) string {
	t.Helper()
	data, err := f.fs.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func (f *fixture) resolve(t *testing.T, typ, name string) Runner {
	t.Helper()
	r, err := f.resolver.Resolve(types.NewResource(typ, name))
	require.NoError(t, err)
	return r
}

func (f *fixture) compound(t *testing.T, name string) *Compound {
	t.Helper()
	c, ok := f.resolve(t, "compound", name).(*Compound)
	require.True(t, ok)
	return c
}

func memberKeys(members []Member) []string {
	keys := make([]string, 0, len(members))
	for _, m := range members {
		keys = append(keys, m.Key())
	}
	return keys
}

func TestResolve_ConfiguredKinds(t *testing.T) {
	f := setup(t)

	tests := []struct {
		typ, name string
		want      interface{}
	}{
		{"service", "foo", &Service{}},
		{"component", "card", &Component{}},
		{"file", "notes", &File{}},
		{"config", "", &ConfigProps{}},
		{"alpha", "x", &File{}},
		{"compound", "ab", &Compound{}},
	}
	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.name, func(t *testing.T) {
			r := f.resolve(t, tt.typ, tt.name)
			assert.IsType(t, tt.want, r)
			assert.Equal(t, tt.name, r.Resource().SourceName)
		})
	}
}

func TestResolve_Failures(t *testing.T) {
	f := setup(t)

	tests := []struct {
		typ, name string
		code      errors.ErrorCode
	}{
		{"nosuchtype", "foo", errors.ErrUnknownType},
		{"service", "missing", errors.ErrUnknownType},
		{"beta", "q", errors.ErrUnknownType},
		{"ghost", "x", errors.ErrUnknownRunner},
	}
	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.name, func(t *testing.T) {
			r, err := f.resolver.Resolve(types.NewResource(tt.typ, tt.name))
			require.Error(t, err)
			assert.Nil(t, r)
			assert.True(t, errors.IsErrorCode(err, tt.code))
			if tt.code == errors.ErrUnknownType {
				details := errors.GetErrorDetails(err)
				assert.Equal(t, tt.typ, details["type"])
				assert.Equal(t, tt.name, details["name"])
			}
		})
	}
}

func TestResolve_CustomFactoryTable(t *testing.T) {
	f := setup(t)
	table := Factories()
	called := false
	registry.MustRegister[Factory](table, "nope", func(r *Resolver, res *types.Resource, props config.Properties) (Runner, error) {
		called = true
		return newFile(r, res, props)
	})

	r, err := NewResolver(f.resolver.Env(), table).Resolve(types.NewResource("ghost", "x"))
	require.NoError(t, err)
	assert.True(t, called)
	assert.IsType(t, &File{}, r)

	_, err = f.resolver.Resolve(types.NewResource("ghost", "x"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownRunner), "the process table is untouched")
}

func TestService_Pipeline(t *testing.T) {
	f := setup(t)
	r := f.resolve(t, "service", "foo")

	assert.True(t, r.CheckConfiguration())
	assert.IsType(t, replacer.Go{}, r.PlaceholderReplacer())
	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, []string{command.CreateFileName, command.ReplacePlaceholdersName}, r.Executed())
	assert.Equal(t, "foo", r.Resource().SourceName)
	assert.Equal(t,
		"package service\n\ntype Foo struct{}\n\n// example.com/app/internal/service {{unknown}}\n",
		f.read(t, "/app/internal/service/foo.go"))
}

func TestService_RunsOnce(t *testing.T) {
	f := setup(t)
	r := f.resolve(t, "service", "foo")
	require.NoError(t, r.Run(context.Background()))

	err := r.Run(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyRan))
	assert.Len(t, r.Executed(), 2)
}

func TestService_TargetOutsideGoRoot(t *testing.T) {
	f := setup(t)
	r := f.resolve(t, "service", "billing")

	assert.Equal(t, "/elsewhere", r.Resource().TargetFolderPath)
	assert.False(t, r.CheckConfiguration())
}

func TestService_ListAvailableTemplates(t *testing.T) {
	f := setup(t)
	r := f.resolve(t, "service", "foo")

	files, err := r.ListAvailableTemplates("")
	require.NoError(t, err)
	assert.Equal(t, []string{"/tpl/types/service/foo.go"}, files)

	files, err = r.ListAvailableTemplates("/does/not/exist")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestService_HelpFoldersAreNotTemplates(t *testing.T) {
	f := setup(t)
	for path, content := range map[string]string{
		"/tpl/types/service/help/README.md":     "# Services",
		"/tpl/types/service/foo/help/README.md": "# Foo",
	} {
		require.NoError(t, f.fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, f.fs.WriteFile(path, []byte(content), 0644))
	}

	r := f.resolve(t, "service", "foo")
	files, err := r.ListAvailableTemplates("")
	require.NoError(t, err)
	assert.Equal(t, []string{"/tpl/types/service/foo.go"}, files)

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, []string{"/app/internal/service/foo.go"}, r.Resource().Outputs)
	assert.Contains(t, f.read(t, "/app/internal/service/foo.go"), "type Foo struct{}")
}

func TestComponent_HelpFolderNotCopied(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.fs.MkdirAll("/tpl/types/component/card/help", 0755))
	require.NoError(t, f.fs.WriteFile("/tpl/types/component/card/help/README.md", []byte("# {{name}}"), 0644))

	r := f.resolve(t, "component", "card")
	require.NoError(t, r.Run(context.Background()))

	assert.ElementsMatch(t, []string{"/app/web/card/card.md", "/app/web/card/card.xml"}, r.Resource().Outputs)
	_, err := f.fs.Stat("/app/web/card/help")
	assert.Error(t, err)
}

func TestComponent_Pipeline(t *testing.T) {
	f := setup(t)
	res := types.NewResource("component", "card")
	res.TargetName = "promo"
	r, err := f.resolver.Resolve(res)
	require.NoError(t, err)

	assert.True(t, r.CheckConfiguration())
	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, []string{
		command.CreateFileName,
		command.ReplacePlaceholdersName,
		command.FormatXMLName,
	}, r.Executed())
	assert.Contains(t, f.read(t, "/app/web/promo/promo.xml"), "<card>\n  <title>card</title>\n</card>")
	assert.Equal(t, "# /app/web/promo", f.read(t, "/app/web/promo/promo.md"))
}

func TestFile_NoReplacer(t *testing.T) {
	f := setup(t)
	r := f.resolve(t, "file", "notes")

	assert.Nil(t, r.PlaceholderReplacer())
	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, []string{command.CreateFileName}, r.Executed())
	assert.Equal(t, "{{name}}", f.read(t, "notes.txt"))
}

func TestFile_MissingTemplateFailsRun(t *testing.T) {
	f := setup(t)
	r := f.resolve(t, "alpha", "absent")

	err := r.Run(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestConfigProps(t *testing.T) {
	f := setup(t)
	r := f.resolve(t, "config", "")

	assert.True(t, r.CheckConfiguration())
	files, err := r.ListAvailableTemplates("")
	require.NoError(t, err)
	assert.Empty(t, files)

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, []string{command.CreateFileFromResourceName}, r.Executed())
	assert.Equal(t, string(config.DefaultConfigContent()), f.read(t, "/app/devgen.toml"))
}

func TestHelpFolders(t *testing.T) {
	f := setup(t)

	r := f.resolve(t, "service", "foo")
	assert.Equal(t, "/tpl/types/service/help", r.HelpFolder())
	assert.Equal(t, "/tpl/types/service/foo/help", r.TemplateHelpFolder())
	assert.Equal(t, "/tpl/types/service", r.SourceFolder())

	r = f.resolve(t, "config", "")
	assert.Equal(t, "", r.TemplateHelpFolder())
}

func TestCompound_ExpansionOrder(t *testing.T) {
	f := setup(t)
	c := f.compound(t, "ab")

	assert.Equal(t, StateExpanded, c.State())
	assert.Equal(t, []string{"alpha/x", "alpha/y", "beta/z"}, memberKeys(c.Members()))
	assert.Empty(t, c.Skipped())
	require.Len(t, c.Children(), 3)
	for _, child := range c.Children() {
		assert.Equal(t, []string{"compound/ab"}, child.Resource().Trail())
	}
}

func TestCompound_SkipsUnresolvableMember(t *testing.T) {
	f := setup(t)
	c := f.compound(t, "partial")

	assert.Len(t, c.Children(), 2)
	skipped := c.Skipped()
	require.Len(t, skipped, 1)
	assert.Equal(t, "beta/q", skipped[0].Key())
	assert.True(t, errors.IsErrorCode(skipped[0].Err, errors.ErrCompoundMember))
	assert.True(t, errors.HasErrorCode(skipped[0].Err, errors.ErrUnknownType))

	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, StateCompleted, c.State())
}

func TestCompound_DeduplicatesPairs(t *testing.T) {
	f := setup(t)
	c := f.compound(t, "dup")
	assert.Equal(t, []string{"alpha/x", "alpha/y"}, memberKeys(c.Members()))
}

func TestCompound_ChildClonesAreIndependent(t *testing.T) {
	f := setup(t)
	res := types.NewResource("compound", "ab")
	res.SetProp("owner", "team-a")
	r, err := f.resolver.Resolve(res)
	require.NoError(t, err)

	children := r.(*Compound).Children()
	children[0].Resource().SetProp("owner", "changed")
	assert.Equal(t, "team-a", res.Props["owner"])
	assert.Equal(t, "team-a", children[1].Resource().Props["owner"])
	assert.Equal(t, "compound", res.Type)
	assert.Equal(t, "ab", res.SourceName)
}

func TestCompound_MemberEntryWins(t *testing.T) {
	f := setup(t)
	store, err := config.LoadBytes([]byte(testConfig + `
[types.compound.props]
owner = "compound-team"
region = "eu"

[types.alpha.props]
owner = "alpha-team"
`))
	require.NoError(t, err)
	resolver := NewResolver(Env{Store: store, FS: f.fs}, nil)

	res := types.NewResource("compound", "ab")
	res.TargetName = "renamed"
	r, err := resolver.Resolve(res)
	require.NoError(t, err)
	assert.Equal(t, "compound-team", res.Props["owner"])

	alpha := r.(*Compound).Children()[0].Resource()
	assert.Equal(t, "alpha/x", alpha.Key())
	assert.Equal(t, "alpha-team", alpha.Props["owner"], "the member's own entry overrides the compound")
	assert.Equal(t, "eu", alpha.Props["region"], "unset values still come from the compound")
	assert.Equal(t, "x", alpha.EffectiveTargetName())

	require.NoError(t, r.Run(context.Background()))
	assert.True(t, filesystem.Exists(f.fs, "/out/alpha/x.txt"))
	assert.False(t, filesystem.Exists(f.fs, "/out/alpha/renamed.txt"))
}

func TestCompound_DetectsCycle(t *testing.T) {
	f := setup(t)
	c := f.compound(t, "loop")

	assert.Len(t, c.Children(), 1)
	skipped := c.Skipped()
	require.Len(t, skipped, 1)
	assert.Equal(t, "compound/loop", skipped[0].Key())
	assert.True(t, errors.IsErrorCode(skipped[0].Err, errors.ErrCompoundCycle))
}

func TestCompound_Nested(t *testing.T) {
	f := setup(t)
	c := f.compound(t, "outer")

	assert.Equal(t,
		[]string{"compound/ab", "alpha/x", "alpha/y", "beta/z", "compound/nowhere", "alpha/w"},
		memberKeys(c.Members()))
	skipped := c.Skipped()
	require.Len(t, skipped, 1)
	assert.True(t, errors.HasErrorCode(skipped[0].Err, errors.ErrCompoundUndefined))

	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, []string{
		"alpha/x:create-file",
		"alpha/y:create-file",
		"beta/z:create-file",
		"alpha/w:create-file",
	}, c.Executed())
}

func TestCompound_Undefined(t *testing.T) {
	f := setup(t)

	for _, name := range []string{"nowhere", ""} {
		r, err := f.resolver.Resolve(types.NewResource("compound", name))
		require.NoError(t, err, "init failures are recorded, not returned")
		c := r.(*Compound)

		assert.Equal(t, StateFailed, c.State())
		assert.False(t, c.CheckConfiguration())
		assert.True(t, errors.IsErrorCode(InitError(r), errors.ErrCompoundUndefined))
		assert.True(t, errors.IsErrorCode(c.Run(context.Background()), errors.ErrCompoundUndefined))
	}
}

func TestCompound_RunFailureStopsSiblings(t *testing.T) {
	f := setup(t)
	c := f.compound(t, "broken")

	err := c.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRunFailed))
	assert.True(t, errors.HasErrorCode(err, errors.ErrFileNotFound))
	assert.Equal(t, StateFailed, c.State())

	assert.Equal(t, []string{"alpha/x:create-file", "alpha/absent:create-file"}, c.Executed())
	assert.True(t, filesystem.Exists(f.fs, "/out/alpha/x.txt"), "earlier output is kept")
	assert.False(t, filesystem.Exists(f.fs, "/out/beta/z.txt"))
}

func TestCompound_PreconditionStopsRun(t *testing.T) {
	f := setup(t)
	store, err := config.LoadBytes([]byte(testConfig + `
[[compounds.offroad]]
type = "service"
names = ["billing"]
`))
	require.NoError(t, err)
	resolver := NewResolver(Env{Store: store, FS: f.fs}, nil)

	r, err := resolver.Resolve(types.NewResource("compound", "offroad"))
	require.NoError(t, err)

	err = r.Run(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigPrecondition))
	assert.Empty(t, r.Executed())
}

func TestCompound_Canceled(t *testing.T) {
	f := setup(t)
	c := f.compound(t, "ab")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Run(ctx)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCanceled))
	assert.Empty(t, c.Executed())
}

func TestCompound_EndToEndServiceBeforeConfig(t *testing.T) {
	f := setup(t)
	c := f.compound(t, "bar")

	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, []string{
		"service/foo:create-file",
		"service/foo:replace-placeholders",
		"config/baz:create-file-from-resource",
	}, c.Executed())
	assert.True(t, filesystem.Exists(f.fs, "/app/internal/service/foo.go"))
	assert.True(t, filesystem.Exists(f.fs, "/app/devgen.toml"))

	err := c.Run(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyRan))
}
