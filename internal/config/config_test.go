package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/require"

	"github.com/errctx/errctx/internal/rewrite"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(dedent.Dedent(content)), 0o644))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("missing default file means defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
	})

	t.Run("full file", func(t *testing.T) {
		path := writeConfig(t, `
			wrapper:
			  package: github.com/pkg/errors
			  name: Wrap
			fn-message: "%s failed"
			custom:
			  - package: corp.example/liberr
			    name: Annotate
			    style: wrap
		`)

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "github.com/pkg/errors", cfg.Wrapper.Package)
		require.Equal(t, "Wrap", cfg.Wrapper.Name)
		require.Equal(t, "%s failed", cfg.FnMessage)
		require.Equal(t, []CustomWrapper{
			{
				Package: "corp.example/liberr",
				Name:    "Annotate",
				Style:   rewrite.WrapStyleWrap,
			},
		}, cfg.Custom)
	})

	t.Run("env templating", func(t *testing.T) {
		t.Setenv("ERRCTX_WRAP_PKG", "github.com/sirkon/errors")
		path := writeConfig(t, `
			wrapper:
			  package: "{{ env.ERRCTX_WRAP_PKG || fmt }}"
			  name: Wrap
		`)

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "github.com/sirkon/errors", cfg.Wrapper.Package)
	})

	t.Run("env fallback", func(t *testing.T) {
		path := writeConfig(t, `
			fn-message: "{{ env.ERRCTX_NO_SUCH_VARIABLE || call %s fail }}"
		`)

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "call %s fail", cfg.FnMessage)
	})

	t.Run("unresolved template", func(t *testing.T) {
		path := writeConfig(t, `
			fn-message: "{{ env.ERRCTX_NO_SUCH_VARIABLE }}"
		`)

		_, err := Load(path)
		require.Error(t, err)
		require.Contains(t, err.Error(), "no value available")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, `
			wrapper: [broken
		`)

		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("custom wrapper without name", func(t *testing.T) {
		path := writeConfig(t, `
			custom:
			  - package: corp.example/liberr
			    style: wrap
		`)

		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("custom wrapper without style", func(t *testing.T) {
		path := writeConfig(t, `
			custom:
			  - package: corp.example/liberr
			    name: Annotate
		`)

		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("unknown style", func(t *testing.T) {
		path := writeConfig(t, `
			custom:
			  - package: corp.example/liberr
			    name: Annotate
			    style: banana
		`)

		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts := Default().Options()
		require.Equal(t, rewrite.Wrapper{}, opts.Wrapper)
		require.Equal(t, "call %s fail", opts.FnTemplate)
	})

	t.Run("custom wrappers are registered", func(t *testing.T) {
		cfg := Default()
		cfg.Custom = []CustomWrapper{
			{
				Package: "corp.example/liberr",
				Name:    "Annotate",
				Style:   rewrite.WrapStyleWrap,
			},
		}

		opts := cfg.Options()
		style, ok := opts.Registry.StyleOf(rewrite.Wrapper{
			PkgPath: "corp.example/liberr",
			Name:    "Annotate",
		})
		require.True(t, ok)
		require.Equal(t, rewrite.WrapStyleWrap, style)
	})
}
