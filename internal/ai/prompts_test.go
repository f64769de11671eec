package ai

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writePrompt(t *testing.T, dir, key, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, key+".md"), []byte(content), 0o644))
}

func TestPromptProvider(t *testing.T) {
	log := zap.NewNop()

	t.Run("substitutes placeholders", func(t *testing.T) {
		dir := t.TempDir()
		writePrompt(t, dir, "lesson", "Teach {{TOPIC}} in {{LANGUAGE_NAME}}. Repeat: {{TOPIC}}.")

		p := NewPromptProvider(dir, log)
		got, err := p.Get("lesson", map[string]string{
			"TOPIC":         "greetings",
			"LANGUAGE_NAME": "Korean",
		})
		require.NoError(t, err)
		assert.Equal(t, "Teach greetings in Korean. Repeat: greetings.", got)
	})

	t.Run("missing file yields ErrPromptNotFound", func(t *testing.T) {
		p := NewPromptProvider(t.TempDir(), log)
		_, err := p.Get("lesson", nil)
		assert.ErrorIs(t, err, ErrPromptNotFound)
	})

	t.Run("caches until reload", func(t *testing.T) {
		dir := t.TempDir()
		writePrompt(t, dir, "lesson", "version one")

		p := NewPromptProvider(dir, log)
		got, err := p.Get("lesson", nil)
		require.NoError(t, err)
		assert.Equal(t, "version one", got)

		writePrompt(t, dir, "lesson", "version two")

		got, err = p.Get("lesson", nil)
		require.NoError(t, err)
		assert.Equal(t, "version one", got, "cached content should survive the file change")

		p.Reload()
		got, err = p.Get("lesson", nil)
		require.NoError(t, err)
		assert.Equal(t, "version two", got)
	})

	t.Run("unknown placeholders pass through untouched", func(t *testing.T) {
		dir := t.TempDir()
		writePrompt(t, dir, "lesson", "Keep {{UNKNOWN}} as is")

		p := NewPromptProvider(dir, log)
		got, err := p.Get("lesson", map[string]string{"TOPIC": "x"})
		require.NoError(t, err)
		assert.Equal(t, "Keep {{UNKNOWN}} as is", got)
	})
}
