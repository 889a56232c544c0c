// pkg/generator/generator_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: testutil.MemFS (afero MemMapFs), config.LoadBytes
// PURPOSE: Test generate(type, name) end to end

package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/devgen/pkg/config"
	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/filesystem"
	"github.com/arthur-debert/devgen/pkg/registry"
	"github.com/arthur-debert/devgen/pkg/runner"
	"github.com/arthur-debert/devgen/pkg/testutil"
	"github.com/arthur-debert/devgen/pkg/types"
)

const testConfig = `
[properties]
"source.root" = "/tpl"
"target.go.root" = "/app/internal"
"target.go.module" = "example.com/app"

[types.service]
templates = ["foo", "bar", "broken"]

[types.config]
target_folder = "/app"

[types.wired]
runner = "wired"

[[compounds.bar]]
type = "service"
names = ["foo"]
[[compounds.bar]]
type = "config"
names = ["baz"]

[[compounds.mixed]]
type = "service"
names = ["foo", "missing"]
`

func setup(t *testing.T) (Options, types.FS) {
	t.Helper()
	store, err := config.LoadBytes([]byte(testConfig))
	require.NoError(t, err)

	fsys := testutil.MemFS(t, map[string]string{
		"/tpl/types/service/foo.go": "package {{go.package}}\n\ntype {{go.type}} struct{}\n",
		"/tpl/types/service/bar.go": "package {{go.package}}\n",
	})
	return Options{Store: store, FS: fsys}, fsys
}

func TestGenerate_Service(t *testing.T) {
	opts, fsys := setup(t)

	result, err := Generate(context.Background(), "service", "foo", opts)
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, []string{"create-file", "replace-placeholders"}, result.Executed)
	assert.Equal(t, []string{"/app/internal/service/foo.go"}, result.Outputs)
	assert.Empty(t, result.Members)

	data, err := fsys.ReadFile("/app/internal/service/foo.go")
	require.NoError(t, err)
	assert.Equal(t, "package service\n\ntype Foo struct{}\n", string(data))
}

func TestGenerate_TargetName(t *testing.T) {
	opts, fsys := setup(t)
	opts.TargetName = "billing"

	result, err := Generate(context.Background(), "service", "foo", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"/app/internal/service/billing.go"}, result.Outputs)

	data, err := fsys.ReadFile("/app/internal/service/billing.go")
	require.NoError(t, err)
	assert.Contains(t, string(data), "type Billing struct{}")
}

func TestGenerate_CompoundServiceBeforeConfig(t *testing.T) {
	opts, fsys := setup(t)

	result, err := Generate(context.Background(), "compound", "bar", opts)
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, []string{
		"service/foo:create-file",
		"service/foo:replace-placeholders",
		"config/baz:create-file-from-resource",
	}, result.Executed)
	assert.Equal(t, []string{"/app/internal/service/foo.go", "/app/devgen.toml"}, result.Outputs)
	assert.Len(t, result.Members, 2)
	assert.Empty(t, result.Skipped())
	assert.True(t, filesystem.Exists(fsys, "/app/devgen.toml"))
}

func TestGenerate_UnknownName(t *testing.T) {
	opts, fsys := setup(t)

	result, err := Generate(context.Background(), "service", "missing", opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownType))
	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, errors.ErrUnknownType, result.ErrorCode())
	assert.Empty(t, result.Executed)
	assert.False(t, filesystem.Exists(fsys, "/app"), "no command ran")
}

func TestGenerate_CompoundReportsSkipped(t *testing.T) {
	opts, _ := setup(t)

	result, err := Generate(context.Background(), "compound", "mixed", opts)
	require.NoError(t, err)
	skipped := result.Skipped()
	require.Len(t, skipped, 1)
	assert.Equal(t, "service/missing", skipped[0].Key())
	assert.Equal(t, []string{"service/foo:create-file", "service/foo:replace-placeholders"}, result.Executed)
}

func TestGenerate_UndefinedCompound(t *testing.T) {
	opts, _ := setup(t)

	result, err := Generate(context.Background(), "compound", "nope", opts)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCompoundUndefined))
	assert.False(t, result.OK())
}

func TestGenerate_PreconditionBlocksRun(t *testing.T) {
	opts, fsys := setup(t)
	opts.Store = mustLoad(t, testConfig+"\n[types.service.names.foo]\ntarget_folder = \"/tmp/out\"\n")

	result, err := Generate(context.Background(), "service", "foo", opts)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigPrecondition))
	assert.Empty(t, result.Executed)
	assert.False(t, filesystem.Exists(fsys, "/tmp/out"))
}

func TestGenerate_RunFailure(t *testing.T) {
	opts, _ := setup(t)

	result, err := Generate(context.Background(), "service", "broken", opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRunFailed))
	assert.True(t, errors.HasErrorCode(err, errors.ErrFileNotFound))
	assert.Equal(t, []string{"create-file"}, result.Executed)
}

func TestGenerate_ExistingTargetNeedsOverwrite(t *testing.T) {
	opts, _ := setup(t)
	_, err := Generate(context.Background(), "service", "foo", opts)
	require.NoError(t, err)

	_, err = Generate(context.Background(), "service", "foo", opts)
	assert.True(t, errors.HasErrorCode(err, errors.ErrFileExists))

	opts.Overwrite = true
	_, err = Generate(context.Background(), "service", "foo", opts)
	assert.NoError(t, err)
}

func TestGenerate_WiringDefect(t *testing.T) {
	opts, _ := setup(t)
	table := runner.Factories()
	registry.MustRegister[runner.Factory](table, "wired", func(r *runner.Resolver, res *types.Resource, props config.Properties) (runner.Runner, error) {
		return &miswired{res: res}, nil
	})
	opts.Factories = table

	_, err := Generate(context.Background(), "wired", "x", opts)
	require.Error(t, err)
	assert.True(t, errors.IsDefect(err))
}

func TestGenerateAll_ContinuesAfterFailure(t *testing.T) {
	opts, fsys := setup(t)

	results, err := New(opts).GenerateAll(context.Background(), "service", []string{"foo", "missing", "bar"})
	require.Error(t, err)
	assert.Equal(t, []string{"service/missing"}, errors.GetErrorDetails(err)["failed"])

	require.Len(t, results, 3)
	assert.True(t, results[0].OK())
	assert.False(t, results[1].OK())
	assert.True(t, results[2].OK())
	assert.True(t, filesystem.Exists(fsys, "/app/internal/service/bar.go"))
}

func TestGenerate_WriteFailure(t *testing.T) {
	opts, fsys := setup(t)
	failing := testutil.NewFailingFS(fsys).FailOn("/app/internal/service/foo.go", assert.AnError)
	opts.FS = failing

	result, err := Generate(context.Background(), "service", "foo", opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRunFailed))
	assert.True(t, errors.HasErrorCode(err, errors.ErrFileWrite))
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, result.OK())
	assert.Equal(t, 0, failing.Writes())
}

func mustLoad(t *testing.T, text string) config.Store {
	t.Helper()
	store, err := config.LoadBytes([]byte(text))
	require.NoError(t, err)
	return store
}
