package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadThemes(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		themes, err := LoadThemes("", zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "#f2c14e", themes.SentenceAnalysis.DefaultHighlight)
		assert.Equal(t, "rgba(8, 16, 32, 0.58)", themes.Sandbox.Overlay)
	})

	t.Run("missing file returns defaults", func(t *testing.T) {
		themes, err := LoadThemes(filepath.Join(t.TempDir(), "nope.yaml"), zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "#22c55e", themes.SentenceAnalysis.RoleColors["verb"])
	})

	t.Run("partial file keeps unspecified defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "themes.yaml")
		body := "sentence_analysis:\n  accent_color: \"#00ff00\"\nsandbox:\n  accent: \"#ff00ff\"\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		themes, err := LoadThemes(path, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "#00ff00", themes.SentenceAnalysis.AccentColor)
		assert.Equal(t, "#ff00ff", themes.Sandbox.Accent)
		// Untouched fields keep their built-in values.
		assert.Equal(t, "#f2c14e", themes.SentenceAnalysis.DefaultHighlight)
		assert.Equal(t, "#ffffff", themes.Sandbox.Foreground)
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "themes.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sandbox: [not: a: map"), 0o644))

		_, err := LoadThemes(path, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestRoleColor(t *testing.T) {
	themes := defaultThemes()

	t.Run("document override wins", func(t *testing.T) {
		got := themes.RoleColor("object", map[string]string{"object": "#abcdef"})
		assert.Equal(t, "#abcdef", got)
	})

	t.Run("role table is case insensitive", func(t *testing.T) {
		assert.Equal(t, "#3b82f6", themes.RoleColor("Object", nil))
	})

	t.Run("unknown role falls back to the default highlight", func(t *testing.T) {
		assert.Equal(t, "#f2c14e", themes.RoleColor("interjection", nil))
	})

	t.Run("empty override entry is skipped", func(t *testing.T) {
		assert.Equal(t, "#22c55e", themes.RoleColor("verb", map[string]string{"verb": ""}))
	})
}
