package job

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesson-server/internal/model"
)

func TestStore(t *testing.T) {
	t.Run("begin registers a received record", func(t *testing.T) {
		store := NewStore()
		store.Begin("Ordering-Coffee", model.KindLesson)

		record, ok := store.Get("Ordering-Coffee")
		require.True(t, ok)
		assert.Equal(t, model.StageReceived, record.Stage)
		assert.Equal(t, model.KindLesson, record.Kind)
		assert.False(t, record.UpdatedAt.IsZero())
	})

	t.Run("get on an unknown id", func(t *testing.T) {
		store := NewStore()
		_, ok := store.Get("missing")
		assert.False(t, ok)
	})

	t.Run("rendering tracks slide progress", func(t *testing.T) {
		store := NewStore()
		store.Begin("job", model.KindLesson)
		store.Rendering("job", 3, 7)

		record, _ := store.Get("job")
		assert.Equal(t, model.StageSlidesRendering, record.Stage)
		assert.Equal(t, 3, record.Slide)
		assert.Equal(t, 7, record.TotalSlides)
	})

	t.Run("advance resets the slide counter", func(t *testing.T) {
		store := NewStore()
		store.Begin("job", model.KindLesson)
		store.Rendering("job", 5, 5)
		store.Advance("job", model.StageMetadataWritten)

		record, _ := store.Get("job")
		assert.Equal(t, model.StageMetadataWritten, record.Stage)
		assert.Zero(t, record.Slide)
		assert.Equal(t, 5, record.TotalSlides)
	})

	t.Run("fail records the error", func(t *testing.T) {
		store := NewStore()
		store.Begin("job", model.KindCheatSheet)
		store.Fail("job", errors.New("model returned garbage"))

		record, _ := store.Get("job")
		assert.Equal(t, model.StageFailed, record.Stage)
		assert.Equal(t, "model returned garbage", record.Error)
		assert.True(t, record.Stage.Terminal())
	})

	t.Run("complete is terminal", func(t *testing.T) {
		store := NewStore()
		store.Begin("job", model.KindLesson)
		store.Complete("job")

		record, _ := store.Get("job")
		assert.Equal(t, model.StageComplete, record.Stage)
		assert.True(t, record.Stage.Terminal())
	})

	t.Run("rename keeps both identifiers resolving", func(t *testing.T) {
		store := NewStore()
		store.Begin("sentence-tentative", model.KindSentenceAnalysis)
		store.Rename("sentence-tentative", "sentence-final")
		store.Rendering("sentence-tentative", 2, 4)

		oldRecord, ok := store.Get("sentence-tentative")
		require.True(t, ok)
		newRecord, ok := store.Get("sentence-final")
		require.True(t, ok)

		assert.Equal(t, "sentence-final", oldRecord.ID)
		assert.Equal(t, oldRecord.Stage, newRecord.Stage)
		assert.Equal(t, 2, newRecord.Slide)
	})

	t.Run("rename of an unknown id is a no-op", func(t *testing.T) {
		store := NewStore()
		store.Rename("ghost", "other")
		_, ok := store.Get("other")
		assert.False(t, ok)
	})

	t.Run("updates to unknown ids are ignored", func(t *testing.T) {
		store := NewStore()
		store.Advance("ghost", model.StageComplete)
		store.Fail("ghost", errors.New("x"))
		_, ok := store.Get("ghost")
		assert.False(t, ok)
	})

	t.Run("begin replaces a previous run", func(t *testing.T) {
		store := NewStore()
		store.Begin("job", model.KindLesson)
		store.Fail("job", errors.New("first run"))
		store.Begin("job", model.KindLesson)

		record, _ := store.Get("job")
		assert.Equal(t, model.StageReceived, record.Stage)
		assert.Empty(t, record.Error)
	})
}
