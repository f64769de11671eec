package model

import (
	"encoding/json"
	"fmt"
)

// Kind identifies what sort of slideshow a generation request produces.
type Kind string

const (
	KindLesson           Kind = "lesson"
	KindCheatSheet       Kind = "cheat-sheet"
	KindSentenceAnalysis Kind = "sentence-analysis"
)

// LessonSlide is one slide of a classic lesson. Type is advisory
// ("hook"/"content"/"cta"); position in the slide list is what actually
// decides the role at render time.
type LessonSlide struct {
	Text string `json:"text"`
	Type string `json:"type,omitempty"`
}

// LessonDocument is the AI output for a classic lesson.
type LessonDocument struct {
	Title  string        `json:"title"`
	Slides []LessonSlide `json:"slides"`
}

// VocabularyItem is one card in a cheat-sheet vocabulary grid.
type VocabularyItem struct {
	Korean       string `json:"korean"`
	Romanization string `json:"romanization,omitempty"`
	English      string `json:"english"`
}

// CheatSheetContent is the closed set of cheat-sheet slide payloads.
// The template engine dispatches over this variant with a type switch,
// so a new subtype cannot be silently ignored.
type CheatSheetContent interface {
	cheatSheetContent()
}

// TitleContent is the opening title slide of a cheat sheet.
type TitleContent struct {
	Text string
}

// CategoryContent introduces a vocabulary category.
type CategoryContent struct {
	Text string
}

// VocabularyContent is a grid of vocabulary cards.
type VocabularyContent struct {
	Items []VocabularyItem
}

// CtaContent is the closing call-to-action slide.
type CtaContent struct {
	Text string
}

func (TitleContent) cheatSheetContent()      {}
func (CategoryContent) cheatSheetContent()   {}
func (VocabularyContent) cheatSheetContent() {}
func (CtaContent) cheatSheetContent()        {}

// CheatSheetSlide wraps one slide's tagged content. It round-trips the
// original {"type": ..., "text"/"items": ...} wire shape.
type CheatSheetSlide struct {
	Content CheatSheetContent
}

type cheatSheetSlideWire struct {
	Type  string           `json:"type"`
	Text  string           `json:"text,omitempty"`
	Items []VocabularyItem `json:"items,omitempty"`
}

// UnmarshalJSON decodes the wire shape into the tagged variant.
// Unknown subtypes fall back to TitleContent, matching the original
// renderer's default branch.
func (s *CheatSheetSlide) UnmarshalJSON(data []byte) error {
	var wire cheatSheetSlideWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("failed to parse cheat sheet slide: %w", err)
	}
	switch wire.Type {
	case "category":
		s.Content = CategoryContent{Text: wire.Text}
	case "vocabulary":
		s.Content = VocabularyContent{Items: wire.Items}
	case "cta":
		s.Content = CtaContent{Text: wire.Text}
	default:
		s.Content = TitleContent{Text: wire.Text}
	}
	return nil
}

// MarshalJSON restores the wire shape so metadata.json keeps the
// schema the client already understands.
func (s CheatSheetSlide) MarshalJSON() ([]byte, error) {
	var wire cheatSheetSlideWire
	switch c := s.Content.(type) {
	case TitleContent:
		wire = cheatSheetSlideWire{Type: "title", Text: c.Text}
	case CategoryContent:
		wire = cheatSheetSlideWire{Type: "category", Text: c.Text}
	case VocabularyContent:
		wire = cheatSheetSlideWire{Type: "vocabulary", Items: c.Items}
	case CtaContent:
		wire = cheatSheetSlideWire{Type: "cta", Text: c.Text}
	default:
		return nil, fmt.Errorf("unknown cheat sheet content %T", s.Content)
	}
	return json.Marshal(wire)
}

// CheatSheetDocument is the AI output for a vocabulary cheat sheet.
type CheatSheetDocument struct {
	Title  string            `json:"title"`
	Slides []CheatSheetSlide `json:"slides"`
}

// Sentence is the analyzed source sentence.
type Sentence struct {
	Hangul       string `json:"hangul"`
	Romanization string `json:"romanization,omitempty"`
	Translation  string `json:"translation"`
}

// Token is one analyzed token of the sentence. A sentence-analysis
// document renders exactly one slide per token.
type Token struct {
	Surface      string            `json:"surface"`
	Romanization string            `json:"romanization,omitempty"`
	Lemma        string            `json:"lemma,omitempty"`
	POS          string            `json:"pos"`
	Role         string            `json:"role"`
	Morphology   map[string]string `json:"morphology,omitempty"`
	GlossEN      string            `json:"gloss_en"`
	Notes        string            `json:"notes,omitempty"`
}

// RenderHints carries the designer-facing theme of a sentence analysis.
type RenderHints struct {
	Theme          string            `json:"theme,omitempty"`
	PrimaryColor   string            `json:"primary_color,omitempty"`
	SecondaryColor string            `json:"secondary_color,omitempty"`
	HighlightMap   map[string]string `json:"highlight_map,omitempty"`
}

// NarrativeSlide is the AI's own slideshow outline. Informational only:
// the rendered slide count is len(Tokens), never len(Slides).
type NarrativeSlide struct {
	Text string `json:"text"`
	Type string `json:"type,omitempty"`
}

// SentenceAnalysisDocument is the AI output for a per-token sentence
// breakdown. Chunks and Quiz are kept opaque; they are persisted with
// the metadata but nothing in the rendering pipeline reads them.
type SentenceAnalysisDocument struct {
	ID          string           `json:"id,omitempty"`
	Sentence    Sentence         `json:"sentence"`
	Tokens      []Token          `json:"tokens"`
	Chunks      json.RawMessage  `json:"chunks,omitempty"`
	Quiz        json.RawMessage  `json:"quiz,omitempty"`
	RenderHints RenderHints      `json:"render_hints,omitempty"`
	Slides      []NarrativeSlide `json:"slides,omitempty"`
}
