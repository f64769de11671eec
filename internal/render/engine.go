package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"go.uber.org/zap"

	"lesson-server/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	defaultFontFamily = "'TikTokSans', 'Arial Black', Helvetica, sans-serif"
	cheatSheetFont    = "'Fredoka', Arial, Helvetica, sans-serif"
	defaultOverlay    = "rgba(0, 0, 0, 0.4)"
	defaultTextColor  = "#ffffff"
	defaultTextShadow = "4px 4px 0px #000000, -4px -4px 0px #000000, 4px -4px 0px #000000, -4px 4px 0px #000000"
	defaultGradient   = "linear-gradient(135deg, #667eea 0%, #764ba2 100%)"
)

// Visual carries the per-slide presentation inputs resolved by the
// caller: the background (a data URI or empty for the gradient
// fallback), overlay tint, and font CSS from the asset library.
type Visual struct {
	BackgroundURI string
	OverlayColor  string
	FontCSS       string
	FontFamily    string
	TextColor     string
	TextShadow    string
}

// SandboxBadge is the optional pill shown above a sandbox headline.
type SandboxBadge struct {
	Text  string `json:"text"`
	Align string `json:"align,omitempty"`
	Color string `json:"color,omitempty"`
}

// SandboxBullet is one card in the sandbox bullet grid.
type SandboxBullet struct {
	Title  string `json:"title"`
	Body   string `json:"body,omitempty"`
	Accent string `json:"accent,omitempty"`
}

// SandboxData is the free-form slide payload accepted by the sandbox
// template. Theme overrides merge over the configured sandbox preset.
type SandboxData struct {
	Headline   string          `json:"headline"`
	Lead       string          `json:"lead,omitempty"`
	Supporting string          `json:"supporting,omitempty"`
	Badge      *SandboxBadge   `json:"badge,omitempty"`
	Bullets    []SandboxBullet `json:"bullets,omitempty"`
	Footer     string          `json:"footer,omitempty"`
	Theme      *SandboxTheme   `json:"theme,omitempty"`
}

// Engine renders slide documents from the embedded HTML templates.
// Templates are parsed once at construction; rendering is safe for
// concurrent use.
type Engine struct {
	tmpl   *template.Template
	themes *Themes
	logger *zap.Logger
}

func NewEngine(themes *Themes, logger *zap.Logger) (*Engine, error) {
	funcs := template.FuncMap{
		"wrapAsian": WrapAsian,
		"seq": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i
			}
			return out
		},
	}

	tmpl, err := template.New("slides").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing slide templates: %w", err)
	}

	return &Engine{tmpl: tmpl, themes: themes, logger: logger}, nil
}

// backgroundStyle produces the background-image declaration for a
// slide. Gradients pass through as-is; file and data URIs are wrapped
// in url(). An empty value falls back to the default gradient.
func backgroundStyle(uri string) template.CSS {
	switch {
	case uri == "":
		return template.CSS("background-image: " + defaultGradient + ";")
	case strings.HasPrefix(uri, "linear"), strings.HasPrefix(uri, "radial"):
		return template.CSS("background-image: " + uri + ";")
	default:
		return template.CSS("background-image: url('" + uri + "');")
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (e *Engine) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering template %s: %w", name, err)
	}
	return buf.String(), nil
}

type lessonSlideView struct {
	Text            string
	Current         int
	TotalSlides     int
	BackgroundStyle template.CSS
	OverlayColor    template.CSS
	FontCSS         template.CSS
	FontFamily      template.CSS
	TextColor       template.CSS
	TextShadow      template.CSS
}

// LessonSlide renders one slide of a classic lesson document. index is
// zero-based and drives the active progress dot.
func (e *Engine) LessonSlide(slide model.LessonSlide, index, total int, visual Visual) (string, error) {
	view := lessonSlideView{
		Text:            slide.Text,
		Current:         index,
		TotalSlides:     total,
		BackgroundStyle: backgroundStyle(visual.BackgroundURI),
		OverlayColor:    template.CSS(orDefault(visual.OverlayColor, defaultOverlay)),
		FontCSS:         template.CSS(visual.FontCSS),
		FontFamily:      template.CSS(orDefault(visual.FontFamily, defaultFontFamily)),
		TextColor:       template.CSS(orDefault(visual.TextColor, defaultTextColor)),
		TextShadow:      template.CSS(orDefault(visual.TextShadow, defaultTextShadow)),
	}
	return e.execute("classic_lesson.tmpl", view)
}

type cheatSheetSlideView struct {
	Subtype         string
	Text            string
	Items           []model.VocabularyItem
	Current         int
	TotalSlides     int
	BackgroundStyle template.CSS
	FontCSS         template.CSS
	FontFamily      template.CSS
}

// CheatSheetSlide renders one cheat sheet slide. The slide's content
// variant picks the layout.
func (e *Engine) CheatSheetSlide(slide model.CheatSheetSlide, index, total int, visual Visual) (string, error) {
	view := cheatSheetSlideView{
		Current:         index,
		TotalSlides:     total,
		BackgroundStyle: backgroundStyle(visual.BackgroundURI),
		FontCSS:         template.CSS(visual.FontCSS),
		FontFamily:      template.CSS(orDefault(visual.FontFamily, cheatSheetFont)),
	}

	switch content := slide.Content.(type) {
	case model.TitleContent:
		view.Subtype = "title"
		view.Text = content.Text
	case model.CategoryContent:
		view.Subtype = "category"
		view.Text = content.Text
	case model.VocabularyContent:
		view.Subtype = "vocabulary"
		view.Items = content.Items
	case model.CtaContent:
		view.Subtype = "cta"
		view.Text = content.Text
	default:
		return "", fmt.Errorf("cheat sheet slide %d: unsupported content %T", index, slide.Content)
	}

	return e.execute("cheat_sheet.tmpl", view)
}

type tokenChipView struct {
	Text   string
	Color  template.CSS
	Active bool
}

type sentenceSlideView struct {
	Translation  string
	Romanization string
	Chips        []tokenChipView
	Surface      string
	TokenRoman   string
	Lemma        string
	Gloss        string
	POS          string
	Role         string
	Morphology   string
	Notes        string
	Highlight    template.CSS
	Accent       template.CSS
	Current      int
	TotalSlides  int
	FontCSS      template.CSS
	FontFamily   template.CSS
}

// TokenSlide renders the sentence analysis slide for one token. The
// full sentence appears as a chip row with the current token
// highlighted by its role color; the lower panel carries the token's
// grammatical breakdown.
func (e *Engine) TokenSlide(doc *model.SentenceAnalysisDocument, tokenIndex int, visual Visual) (string, error) {
	if tokenIndex < 0 || tokenIndex >= len(doc.Tokens) {
		return "", fmt.Errorf("token index %d out of range (%d tokens)", tokenIndex, len(doc.Tokens))
	}
	token := doc.Tokens[tokenIndex]

	overrides := doc.RenderHints.HighlightMap
	chips := make([]tokenChipView, len(doc.Tokens))
	for i, t := range doc.Tokens {
		chips[i] = tokenChipView{
			Text:   t.Surface,
			Color:  template.CSS(e.themes.RoleColor(t.Role, overrides)),
			Active: i == tokenIndex,
		}
	}

	accent := doc.RenderHints.PrimaryColor
	if accent == "" {
		accent = e.themes.SentenceAnalysis.AccentColor
	}

	view := sentenceSlideView{
		Translation:  doc.Sentence.Translation,
		Romanization: doc.Sentence.Romanization,
		Chips:        chips,
		Surface:      token.Surface,
		TokenRoman:   token.Romanization,
		Lemma:        token.Lemma,
		Gloss:        token.GlossEN,
		POS:          token.POS,
		Role:         token.Role,
		Morphology:   formatMorphology(token.Morphology),
		Notes:        token.Notes,
		Highlight:    template.CSS(e.themes.RoleColor(token.Role, overrides)),
		Accent:       template.CSS(accent),
		Current:      tokenIndex,
		TotalSlides:  len(doc.Tokens),
		FontCSS:      template.CSS(visual.FontCSS),
		FontFamily:   template.CSS(orDefault(visual.FontFamily, defaultFontFamily)),
	}
	return e.execute("sentence_analysis.tmpl", view)
}

func formatMorphology(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+m[k])
	}
	return strings.Join(parts, " · ")
}

type sandboxBulletView struct {
	Title      string
	Body       string
	Accent     template.CSS
	Background template.CSS
}

type sandboxView struct {
	Headline        string
	Lead            string
	Supporting      string
	Footer          string
	HasBadge        bool
	BadgeText       string
	BadgeJustify    template.CSS
	BadgeColor      template.CSS
	BadgeTextColor  template.CSS
	Bullets         []sandboxBulletView
	BackgroundStyle template.CSS
	OverlayColor    template.CSS
	Foreground      template.CSS
	Muted           template.CSS
	Panel           template.CSS
	FontFamily      template.CSS
	FontCSS         template.CSS
}

// Sandbox renders a free-form slide from caller-supplied content and
// theme overrides.
func (e *Engine) Sandbox(data SandboxData, fontCSS string) (string, error) {
	theme := e.sandboxTheme(data.Theme)

	view := sandboxView{
		Headline:        data.Headline,
		Lead:            data.Lead,
		Supporting:      data.Supporting,
		Footer:          data.Footer,
		BackgroundStyle: backgroundStyle(theme.Background),
		OverlayColor:    template.CSS(theme.Overlay),
		Foreground:      template.CSS(theme.Foreground),
		Muted:           template.CSS(theme.Muted),
		Panel:           template.CSS(theme.Panel),
		FontFamily:      template.CSS(theme.FontFamily),
		FontCSS:         template.CSS(fontCSS),
	}

	if data.Badge != nil && data.Badge.Text != "" {
		view.HasBadge = true
		view.BadgeText = data.Badge.Text
		view.BadgeJustify = template.CSS(badgeJustification(data.Badge.Align))
		if data.Badge.Color != "" {
			view.BadgeColor = template.CSS(data.Badge.Color)
			view.BadgeTextColor = template.CSS("#0b0f14")
		} else {
			view.BadgeColor = template.CSS(theme.Accent)
			view.BadgeTextColor = template.CSS("#111827")
		}
	}

	for _, b := range data.Bullets {
		view.Bullets = append(view.Bullets, sandboxBulletView{
			Title:      b.Title,
			Body:       b.Body,
			Accent:     template.CSS(orDefault(b.Accent, theme.Accent)),
			Background: template.CSS(theme.BulletBackground),
		})
	}

	return e.execute("sandbox.tmpl", view)
}

func (e *Engine) sandboxTheme(override *SandboxTheme) SandboxTheme {
	theme := e.themes.Sandbox
	if override == nil {
		return theme
	}
	merged := theme
	if override.Background != "" {
		merged.Background = override.Background
	}
	if override.Overlay != "" {
		merged.Overlay = override.Overlay
	}
	if override.Accent != "" {
		merged.Accent = override.Accent
	}
	if override.Foreground != "" {
		merged.Foreground = override.Foreground
	}
	if override.Muted != "" {
		merged.Muted = override.Muted
	}
	if override.Panel != "" {
		merged.Panel = override.Panel
	}
	if override.BulletBackground != "" {
		merged.BulletBackground = override.BulletBackground
	}
	if override.FontFamily != "" {
		merged.FontFamily = override.FontFamily
	}
	return merged
}

func badgeJustification(align string) string {
	switch align {
	case "center":
		return "center"
	case "right":
		return "flex-end"
	default:
		return "flex-start"
	}
}
