package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"lesson-server/internal/model"
)

func validLesson() *model.LessonDocument {
	return &model.LessonDocument{
		Title: "Ordering Coffee",
		Slides: []model.LessonSlide{
			{Text: "💡 1-Minute Korean: Stop saying just 커피 (keopi)!"},
			{Text: "커피 주세요 (keopi juseyo) means please give me coffee."},
			{Text: "Add 아이스 (aiseu) for iced drinks."},
			{Text: "Quiz: ___ 주세요 means please give me water."},
			{Text: "Need more? Use HanbokStudy for vocab and grammar breakdowns!"},
		},
	}
}

func TestValidateLesson(t *testing.T) {
	log := zap.NewNop()

	t.Run("accepts a well-formed lesson", func(t *testing.T) {
		assert.NoError(t, ValidateLesson(validLesson(), log))
	})

	t.Run("rejects empty title", func(t *testing.T) {
		doc := validLesson()
		doc.Title = ""
		assert.ErrorIs(t, ValidateLesson(doc, log), model.ErrInvalidDocument)
	})

	t.Run("rejects too few slides", func(t *testing.T) {
		doc := validLesson()
		doc.Slides = doc.Slides[:4]
		assert.ErrorIs(t, ValidateLesson(doc, log), model.ErrInvalidDocument)
	})

	t.Run("rejects too many slides", func(t *testing.T) {
		doc := validLesson()
		for len(doc.Slides) <= 12 {
			doc.Slides = append(doc.Slides, model.LessonSlide{Text: "filler"})
		}
		assert.ErrorIs(t, ValidateLesson(doc, log), model.ErrInvalidDocument)
	})

	t.Run("rejects blank slide text", func(t *testing.T) {
		doc := validLesson()
		doc.Slides[2].Text = "   "
		assert.ErrorIs(t, ValidateLesson(doc, log), model.ErrInvalidDocument)
	})

	t.Run("hook and CTA drift are warnings only", func(t *testing.T) {
		doc := validLesson()
		doc.Slides[0].Text = "A hook without the emoji"
		doc.Slides[len(doc.Slides)-1].Text = "Follow me for more!"
		assert.NoError(t, ValidateLesson(doc, log))
	})
}

func validCheatSheet() *model.CheatSheetDocument {
	return &model.CheatSheetDocument{
		Title: "Korean Vocabulary: Food",
		Slides: []model.CheatSheetSlide{
			{Content: model.TitleContent{Text: "Korean Vocab of the Day: Food 🍜"}},
			{Content: model.CategoryContent{Text: "Basic Foods 🍚"}},
			{Content: model.VocabularyContent{Items: []model.VocabularyItem{
				{Korean: "밥", Romanization: "bap", English: "rice"},
				{Korean: "김치", Romanization: "gimchi", English: "kimchi"},
			}}},
			{Content: model.CtaContent{Text: "Follow for more Korean lessons! 📚"}},
		},
	}
}

func TestValidateCheatSheet(t *testing.T) {
	t.Run("accepts a well-formed cheat sheet", func(t *testing.T) {
		assert.NoError(t, ValidateCheatSheet(validCheatSheet()))
	})

	t.Run("rejects empty slide list", func(t *testing.T) {
		doc := validCheatSheet()
		doc.Slides = nil
		assert.ErrorIs(t, ValidateCheatSheet(doc), model.ErrInvalidDocument)
	})

	t.Run("rejects more than eight slides", func(t *testing.T) {
		doc := validCheatSheet()
		for len(doc.Slides) <= 8 {
			doc.Slides = append(doc.Slides, model.CheatSheetSlide{Content: model.CategoryContent{Text: "More"}})
		}
		assert.ErrorIs(t, ValidateCheatSheet(doc), model.ErrInvalidDocument)
	})

	t.Run("rejects vocabulary item without translation", func(t *testing.T) {
		doc := validCheatSheet()
		doc.Slides[2].Content = model.VocabularyContent{Items: []model.VocabularyItem{
			{Korean: "밥", English: ""},
		}}
		assert.ErrorIs(t, ValidateCheatSheet(doc), model.ErrInvalidDocument)
	})

	t.Run("rejects blank category text", func(t *testing.T) {
		doc := validCheatSheet()
		doc.Slides[1].Content = model.CategoryContent{Text: "  "}
		assert.ErrorIs(t, ValidateCheatSheet(doc), model.ErrInvalidDocument)
	})
}

func validAnalysis() *model.SentenceAnalysisDocument {
	return &model.SentenceAnalysisDocument{
		Sentence: model.Sentence{
			Hangul:      "저는 커피를 마셔요",
			Translation: "I drink coffee",
		},
		Tokens: []model.Token{
			{Surface: "저는", POS: "pronoun", Role: "topic", GlossEN: "I"},
			{Surface: "커피를", POS: "noun", Role: "object", GlossEN: "coffee"},
			{Surface: "마셔요", POS: "verb", Role: "verb", GlossEN: "drink"},
		},
	}
}

func TestValidateSentenceAnalysis(t *testing.T) {
	t.Run("accepts a well-formed analysis", func(t *testing.T) {
		assert.NoError(t, ValidateSentenceAnalysis(validAnalysis()))
	})

	t.Run("rejects missing hangul", func(t *testing.T) {
		doc := validAnalysis()
		doc.Sentence.Hangul = ""
		assert.ErrorIs(t, ValidateSentenceAnalysis(doc), model.ErrInvalidDocument)
	})

	t.Run("rejects missing translation", func(t *testing.T) {
		doc := validAnalysis()
		doc.Sentence.Translation = " "
		assert.ErrorIs(t, ValidateSentenceAnalysis(doc), model.ErrInvalidDocument)
	})

	t.Run("rejects zero tokens", func(t *testing.T) {
		doc := validAnalysis()
		doc.Tokens = nil
		assert.ErrorIs(t, ValidateSentenceAnalysis(doc), model.ErrInvalidDocument)
	})

	t.Run("rejects token without surface", func(t *testing.T) {
		doc := validAnalysis()
		doc.Tokens[1].Surface = ""
		assert.ErrorIs(t, ValidateSentenceAnalysis(doc), model.ErrInvalidDocument)
	})

	t.Run("narrative slides are ignored", func(t *testing.T) {
		doc := validAnalysis()
		doc.Slides = []model.NarrativeSlide{{Text: "whatever"}, {Text: ""}}
		assert.NoError(t, ValidateSentenceAnalysis(doc))
	})
}
