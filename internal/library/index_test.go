package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lesson-server/internal/model"
)

type testItem struct {
	id     string
	meta   map[string]any
	slides int
}

func writeItem(t *testing.T, outputDir string, item testItem) {
	t.Helper()
	dir := filepath.Join(outputDir, item.id)
	require.NoError(t, os.MkdirAll(dir, 0o755))

	if item.meta != nil {
		data, err := json.Marshal(item.meta)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.json"), data, 0o644))
	}
	for n := 1; n <= item.slides; n++ {
		path := filepath.Join(dir, fmt.Sprintf("slide-%d.png", n))
		require.NoError(t, os.WriteFile(path, []byte("png"), 0o644))
	}
}

func TestList(t *testing.T) {
	t.Run("missing output directory yields an empty list", func(t *testing.T) {
		index := NewIndex(filepath.Join(t.TempDir(), "nope"), zap.NewNop())
		items, err := index.List()
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("items come back newest first", func(t *testing.T) {
		outputDir := t.TempDir()
		writeItem(t, outputDir, testItem{
			id:     "older-topic",
			meta:   map[string]any{"title": "Older", "createdAt": "2025-03-01T10:00:00Z"},
			slides: 3,
		})
		writeItem(t, outputDir, testItem{
			id:     "newer-topic",
			meta:   map[string]any{"title": "Newer", "createdAt": "2025-06-15T10:00:00Z"},
			slides: 5,
		})

		index := NewIndex(outputDir, zap.NewNop())
		items, err := index.List()
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "newer-topic", items[0].ID)
		assert.Equal(t, "older-topic", items[1].ID)
		assert.Equal(t, 5, items[0].Slides)
	})

	t.Run("legacy sidecars get defaults", func(t *testing.T) {
		outputDir := t.TempDir()
		writeItem(t, outputDir, testItem{
			id:     "legacy",
			meta:   map[string]any{"title": "Old Lesson", "createdAt": "2024-01-01T00:00:00Z"},
			slides: 2,
		})

		index := NewIndex(outputDir, zap.NewNop())
		items, err := index.List()
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, model.LanguageKorean, items[0].Language)
		assert.Equal(t, 1, items[0].EpisodeNumber)
		assert.Equal(t, model.KindLesson, items[0].Type)
		// No originalTopic falls back to the title.
		assert.Equal(t, "Old Lesson", items[0].Topic)
	})

	t.Run("originalTopic wins over title", func(t *testing.T) {
		outputDir := t.TempDir()
		writeItem(t, outputDir, testItem{
			id: "item",
			meta: map[string]any{
				"title":         "💡 1-Minute Korean: Coffee",
				"originalTopic": "Ordering Coffee",
				"createdAt":     "2025-01-01T00:00:00Z",
			},
		})

		index := NewIndex(outputDir, zap.NewNop())
		items, err := index.List()
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Ordering Coffee", items[0].Topic)
	})

	t.Run("bad and missing metadata are skipped", func(t *testing.T) {
		outputDir := t.TempDir()
		writeItem(t, outputDir, testItem{
			id:     "good",
			meta:   map[string]any{"title": "Good", "createdAt": "2025-01-01T00:00:00Z"},
			slides: 1,
		})
		writeItem(t, outputDir, testItem{id: "in-progress", slides: 2})
		broken := filepath.Join(outputDir, "broken")
		require.NoError(t, os.MkdirAll(broken, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(broken, "metadata.json"), []byte("{not json"), 0o644))
		// Stray files at the top level are ignored too.
		require.NoError(t, os.WriteFile(filepath.Join(outputDir, "notes.txt"), []byte("x"), 0o644))

		index := NewIndex(outputDir, zap.NewNop())
		items, err := index.List()
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "good", items[0].ID)
	})

	t.Run("slide count ignores other files", func(t *testing.T) {
		outputDir := t.TempDir()
		writeItem(t, outputDir, testItem{
			id:     "item",
			meta:   map[string]any{"title": "T", "createdAt": "2025-01-01T00:00:00Z"},
			slides: 3,
		})
		dir := filepath.Join(outputDir, "item")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "slide-4.jpeg"), []byte("x"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "thumbnail.png"), []byte("x"), 0o644))

		index := NewIndex(outputDir, zap.NewNop())
		items, err := index.List()
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Slides)
	})
}

func TestGet(t *testing.T) {
	t.Run("returns slide urls in order", func(t *testing.T) {
		outputDir := t.TempDir()
		writeItem(t, outputDir, testItem{
			id: "cheat-sheet-Food",
			meta: map[string]any{
				"title":         "Korean Vocab: Food",
				"originalTopic": "Food",
				"type":          "cheat-sheet",
				"language":      "korean",
				"createdAt":     "2025-01-01T00:00:00Z",
			},
			slides: 3,
		})

		index := NewIndex(outputDir, zap.NewNop())
		detail, err := index.Get("cheat-sheet-Food")
		require.NoError(t, err)
		assert.Equal(t, "cheat-sheet-Food", detail.ID)
		assert.Equal(t, model.KindCheatSheet, detail.Type)
		assert.Equal(t, []string{
			"/output/cheat-sheet-Food/slide-1.png",
			"/output/cheat-sheet-Food/slide-2.png",
			"/output/cheat-sheet-Food/slide-3.png",
		}, detail.Slides)
		assert.JSONEq(t, "[]", string(detail.Assets))
	})

	t.Run("keeps stored assets", func(t *testing.T) {
		outputDir := t.TempDir()
		writeItem(t, outputDir, testItem{
			id: "item",
			meta: map[string]any{
				"title":     "T",
				"createdAt": "2025-01-01T00:00:00Z",
				"assets":    []string{"hook.png"},
			},
			slides: 1,
		})

		index := NewIndex(outputDir, zap.NewNop())
		detail, err := index.Get("item")
		require.NoError(t, err)
		assert.JSONEq(t, `["hook.png"]`, string(detail.Assets))
	})

	t.Run("missing item yields ErrNotFound", func(t *testing.T) {
		index := NewIndex(t.TempDir(), zap.NewNop())
		_, err := index.Get("ghost")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("half-written metadata yields ErrNotFound", func(t *testing.T) {
		outputDir := t.TempDir()
		dir := filepath.Join(outputDir, "half-written")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.json"), []byte(`{"title":"Colo`), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "slide-1.png"), []byte("png"), 0o644))

		index := NewIndex(outputDir, zap.NewNop())
		_, err := index.Get("half-written")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
