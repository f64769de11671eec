package render

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentText(t *testing.T) {
	t.Run("plain English is one segment", func(t *testing.T) {
		segs := SegmentText("Hello there")
		require.Len(t, segs, 1)
		assert.Equal(t, "Hello there", segs[0].Text)
		assert.False(t, segs[0].Asian)
	})

	t.Run("mixed text alternates", func(t *testing.T) {
		segs := SegmentText("Say 안녕하세요 (annyeonghaseyo) to greet!")
		require.Len(t, segs, 3)
		assert.Equal(t, "Say ", segs[0].Text)
		assert.False(t, segs[0].Asian)
		assert.Equal(t, "안녕하세요", segs[1].Text)
		assert.True(t, segs[1].Asian)
		assert.Equal(t, " (annyeonghaseyo) to greet!", segs[2].Text)
		assert.False(t, segs[2].Asian)
	})

	t.Run("japanese kana and kanji are highlighted", func(t *testing.T) {
		segs := SegmentText("水 means water, みず too")
		require.GreaterOrEqual(t, len(segs), 3)
		assert.True(t, segs[0].Asian)
		assert.Equal(t, "水", segs[0].Text)
	})

	t.Run("empty input yields no segments", func(t *testing.T) {
		assert.Empty(t, SegmentText(""))
	})

	t.Run("concatenation reproduces the input exactly", func(t *testing.T) {
		inputs := []string{
			"Hello",
			"안녕하세요",
			"Say 안녕 then 잘 가",
			"カタカナとひらがなと漢字",
			"mixed 한국어 and 日本語 and english",
			"  spaces  around 한글  ",
		}
		for _, input := range inputs {
			var b strings.Builder
			for _, seg := range SegmentText(input) {
				b.WriteString(seg.Text)
			}
			assert.Equal(t, input, b.String())
		}
	})

	t.Run("round-trips random mixed-script strings", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		alphabet := []rune("ab 한글カナかな漢字!?.")
		for i := 0; i < 200; i++ {
			runes := make([]rune, rng.Intn(30))
			for j := range runes {
				runes[j] = alphabet[rng.Intn(len(alphabet))]
			}
			input := string(runes)

			var b strings.Builder
			for _, seg := range SegmentText(input) {
				require.NotEmpty(t, seg.Text)
				b.WriteString(seg.Text)
			}
			require.Equal(t, input, b.String())
		}
	})
}

func TestWrapAsian(t *testing.T) {
	t.Run("wraps Asian runs in highlight spans", func(t *testing.T) {
		html := string(WrapAsian("Say 안녕"))
		assert.Equal(t, `Say <span class="asian">안녕</span>`, html)
	})

	t.Run("escapes HTML in every segment", func(t *testing.T) {
		html := string(WrapAsian(`<b>bold</b> 한글 & more`))
		assert.NotContains(t, html, "<b>")
		assert.Contains(t, html, "&lt;b&gt;")
		assert.Contains(t, html, `<span class="asian">한글</span>`)
		assert.Contains(t, html, "&amp; more")
	})

	t.Run("plain text passes through", func(t *testing.T) {
		assert.Equal(t, "just english", string(WrapAsian("just english")))
	})
}
