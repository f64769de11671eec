package ai

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"lesson-server/internal/model"
)

// Fixed strings the prompts instruct the model to emit. Drift is
// logged, not fatal: a paraphrased CTA should not kill a render batch.
const (
	HookPrefix        = "\U0001F4A1 1-Minute"
	LessonCTA         = "Need more? Use HanbokStudy for vocab and grammar breakdowns!"
	CheatSheetCTAHint = "Follow for more Korean"
)

const (
	minLessonSlides     = 5
	maxLessonSlides     = 12
	maxCheatSheetSlides = 8
)

// ValidateLesson enforces the lesson document invariants: 5-12 slides,
// every slide non-empty.
func ValidateLesson(doc *model.LessonDocument, log *zap.Logger) error {
	if doc.Title == "" {
		return fmt.Errorf("%w: lesson title is empty", model.ErrInvalidDocument)
	}
	n := len(doc.Slides)
	if n < minLessonSlides || n > maxLessonSlides {
		return fmt.Errorf("%w: lesson has %d slides, want %d-%d", model.ErrInvalidDocument, n, minLessonSlides, maxLessonSlides)
	}
	for i, slide := range doc.Slides {
		if strings.TrimSpace(slide.Text) == "" {
			return fmt.Errorf("%w: lesson slide %d has no text", model.ErrInvalidDocument, i+1)
		}
	}
	if log != nil {
		if !strings.HasPrefix(doc.Slides[0].Text, HookPrefix) {
			log.Warn("Lesson hook slide is missing the fixed prefix", zap.String("text", doc.Slides[0].Text))
		}
		if doc.Slides[n-1].Text != LessonCTA {
			log.Warn("Lesson CTA slide deviates from the fixed line", zap.String("text", doc.Slides[n-1].Text))
		}
	}
	return nil
}

// ValidateCheatSheet enforces the cheat-sheet invariants: 1-8 slides,
// headings carry text, vocabulary grids carry complete items.
func ValidateCheatSheet(doc *model.CheatSheetDocument) error {
	if doc.Title == "" {
		return fmt.Errorf("%w: cheat sheet title is empty", model.ErrInvalidDocument)
	}
	n := len(doc.Slides)
	if n == 0 || n > maxCheatSheetSlides {
		return fmt.Errorf("%w: cheat sheet has %d slides, want 1-%d", model.ErrInvalidDocument, n, maxCheatSheetSlides)
	}
	for i, slide := range doc.Slides {
		switch c := slide.Content.(type) {
		case model.TitleContent:
			if strings.TrimSpace(c.Text) == "" {
				return fmt.Errorf("%w: cheat sheet slide %d (title) has no text", model.ErrInvalidDocument, i+1)
			}
		case model.CategoryContent:
			if strings.TrimSpace(c.Text) == "" {
				return fmt.Errorf("%w: cheat sheet slide %d (category) has no text", model.ErrInvalidDocument, i+1)
			}
		case model.CtaContent:
			if strings.TrimSpace(c.Text) == "" {
				return fmt.Errorf("%w: cheat sheet slide %d (cta) has no text", model.ErrInvalidDocument, i+1)
			}
		case model.VocabularyContent:
			if len(c.Items) == 0 {
				return fmt.Errorf("%w: cheat sheet slide %d (vocabulary) has no items", model.ErrInvalidDocument, i+1)
			}
			for j, item := range c.Items {
				if item.Korean == "" || item.English == "" {
					return fmt.Errorf("%w: cheat sheet slide %d item %d is incomplete", model.ErrInvalidDocument, i+1, j+1)
				}
			}
		default:
			return fmt.Errorf("%w: cheat sheet slide %d has unknown content %T", model.ErrInvalidDocument, i+1, c)
		}
	}
	return nil
}

// ValidateSentenceAnalysis enforces the sentence-analysis invariants.
// The narrative slides array is deliberately not checked: the rendered
// slide count is the token count.
func ValidateSentenceAnalysis(doc *model.SentenceAnalysisDocument) error {
	if strings.TrimSpace(doc.Sentence.Hangul) == "" {
		return fmt.Errorf("%w: sentence hangul is empty", model.ErrInvalidDocument)
	}
	if strings.TrimSpace(doc.Sentence.Translation) == "" {
		return fmt.Errorf("%w: sentence translation is empty", model.ErrInvalidDocument)
	}
	if len(doc.Tokens) == 0 {
		return fmt.Errorf("%w: sentence analysis has no tokens", model.ErrInvalidDocument)
	}
	for i, tok := range doc.Tokens {
		if strings.TrimSpace(tok.Surface) == "" {
			return fmt.Errorf("%w: token %d has no surface form", model.ErrInvalidDocument, i+1)
		}
	}
	return nil
}
