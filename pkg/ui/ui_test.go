// pkg/ui/ui_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: bytes.Buffer writers
// PURPOSE: Test renderer selection and the text, terminal and json renderers

package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/generator"
	"github.com/arthur-debert/devgen/pkg/runner"
	"github.com/arthur-debert/devgen/pkg/ui"
	"github.com/arthur-debert/devgen/pkg/ui/display"
)

func sampleView() *display.GenerateView {
	results := []*generator.Result{
		{
			Type:     "compound",
			Name:     "bar",
			Status:   generator.StatusSucceeded,
			Executed: []string{"service/foo:create-file", "service/foo:replace-placeholders"},
			Outputs:  []string{"internal/service/foo.go"},
			Members: []runner.Member{
				{Type: "service", Name: "foo", Status: runner.MemberResolved, Parent: "compound/bar"},
				{
					Type:   "service",
					Name:   "missing",
					Status: runner.MemberSkipped,
					Parent: "compound/bar",
					Err:    errors.New(errors.ErrCompoundMember, "member service/missing of compound/bar skipped"),
				},
			},
		},
		{
			Type:   "service",
			Name:   "nope",
			Status: generator.StatusFailed,
			Err:    errors.New(errors.ErrUnknownType, "unknown type/name service/nope"),
		},
	}
	return display.NewGenerateView(results, false)
}

func TestNewRenderer(t *testing.T) {
	for _, format := range []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			renderer, err := ui.NewRenderer(format, &bytes.Buffer{})
			require.NoError(t, err)
			assert.NotNil(t, renderer)
		})
	}

	renderer, err := ui.NewRenderer(ui.Format(999), &bytes.Buffer{})
	assert.Error(t, err)
	assert.Nil(t, renderer)
}

func TestRendererInterface(t *testing.T) {
	for _, format := range []ui.Format{ui.FormatTerminal, ui.FormatText, ui.FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			buf := &bytes.Buffer{}
			renderer, err := ui.NewRenderer(format, buf)
			require.NoError(t, err)

			assert.NoError(t, renderer.RenderMessage("test message"))
			assert.NoError(t, renderer.RenderError(assert.AnError))
			assert.NoError(t, renderer.RenderError(nil))
			assert.NoError(t, renderer.RenderResult(sampleView()))
			assert.NoError(t, renderer.RenderResult(&display.ListView{}))
			assert.NoError(t, renderer.RenderResult(&display.HelpView{Resource: "service"}))
			assert.NoError(t, renderer.RenderResult(map[string]string{"test": "data"}))
		})
	}
}

func TestNewGenerateView(t *testing.T) {
	view := sampleView()

	require.Len(t, view.Requests, 2)
	assert.Equal(t, 1, view.Failed())

	bar := view.Requests[0]
	assert.Equal(t, "compound/bar", bar.Resource)
	assert.Equal(t, []string{"service/foo"}, bar.Resolved)
	require.Len(t, bar.Skipped, 1)
	assert.Equal(t, "service/missing", bar.Skipped[0].Resource)
	assert.Nil(t, bar.Error)

	nope := view.Requests[1]
	require.NotNil(t, nope.Error)
	assert.Equal(t, "UNKNOWN_TYPE", nope.Error.Code)
	assert.False(t, nope.Error.Defect)
}

func TestJSONRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatJSON, buf)
	require.NoError(t, err)

	t.Run("message", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderMessage("hello world"))

		var result map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "hello world", result["message"])
	})

	t.Run("coded error", func(t *testing.T) {
		buf.Reset()
		err := errors.New(errors.ErrWiring, "command \"x\" is not registered").WithDetail("owner", "service/foo")
		require.NoError(t, renderer.RenderError(err))

		var result map[string]display.Error
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "WIRING", result["error"].Code)
		assert.True(t, result["error"].Defect)
		assert.Equal(t, "service/foo", result["error"].Details["owner"])
	})

	t.Run("generate view", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(sampleView()))

		var result display.GenerateView
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		require.Len(t, result.Requests, 2)
		assert.Equal(t, "succeeded", result.Requests[0].Status)
		assert.Equal(t, "service/missing", result.Requests[0].Skipped[0].Resource)
		assert.Equal(t, "UNKNOWN_TYPE", result.Requests[1].Error.Code)
	})
}

func TestTextRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatText, buf)
	require.NoError(t, err)

	t.Run("error", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderError(assert.AnError))
		assert.Equal(t, "Error: assert.AnError general error for testing\n", buf.String())
	})

	t.Run("generate view", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(sampleView()))
		out := buf.String()
		assert.Contains(t, out, "compound/bar: succeeded\n")
		assert.Contains(t, out, "  ran: service/foo:create-file, service/foo:replace-placeholders\n")
		assert.Contains(t, out, "  wrote internal/service/foo.go\n")
		assert.Contains(t, out, "  skipped service/missing (in compound/bar): ")
		assert.Contains(t, out, "service/nope: failed\n")
		assert.Contains(t, out, "1 of 2 requests failed")
	})

	t.Run("dry run banner", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(&display.GenerateView{DryRun: true}))
		assert.Contains(t, buf.String(), "Dry run")
	})

	t.Run("list view", func(t *testing.T) {
		buf.Reset()
		view := &display.ListView{
			Types: []display.TypeListing{
				{Type: "service", Runner: "service", SourceFolder: "templates/types/service", TargetFolder: "internal/service", Names: []string{"foo"}},
			},
			Compounds: []display.CompoundView{{Name: "bar", Members: []string{"service/foo", "config/baz"}}},
		}
		require.NoError(t, renderer.RenderResult(view))
		out := buf.String()
		assert.Contains(t, out, "Types (embedded defaults):")
		assert.Contains(t, out, "  service [service] templates/types/service -> internal/service\n")
		assert.Contains(t, out, "    names: foo\n")
		assert.Contains(t, out, "  bar: service/foo, config/baz\n")
	})

	t.Run("help without readme", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(&display.HelpView{Resource: "service/foo", Folder: "t/service/foo/help"}))
		assert.Equal(t, "No help for service/foo (looked in t/service/foo/help)\n", buf.String())
	})
}

func TestTerminalRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatTerminal, buf)
	require.NoError(t, err)

	t.Run("generate view", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderResult(sampleView()))
		out := buf.String()
		assert.Contains(t, out, "compound/bar")
		assert.Contains(t, out, "internal/service/foo.go")
		assert.Contains(t, out, "service/missing")
		assert.Contains(t, out, "SUCCEEDED")
		assert.Contains(t, out, "FAILED")
	})

	t.Run("defect hint", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, renderer.RenderError(errors.New(errors.ErrWiring, "bad wiring")))
		assert.Contains(t, buf.String(), "bad wiring")
		assert.Contains(t, buf.String(), "please report it")
	})
}
