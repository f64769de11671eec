package render

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SentenceTheme holds the color defaults used by the sentence analysis
// slides when a document does not carry its own highlight map.
type SentenceTheme struct {
	DefaultHighlight string            `yaml:"default_highlight"`
	AccentColor      string            `yaml:"accent_color"`
	RoleColors       map[string]string `yaml:"role_colors"`
}

// SandboxTheme styles the free-form sandbox template.
type SandboxTheme struct {
	Background       string `yaml:"background"`
	Overlay          string `yaml:"overlay"`
	Accent           string `yaml:"accent"`
	Foreground       string `yaml:"foreground"`
	Muted            string `yaml:"muted"`
	Panel            string `yaml:"panel"`
	BulletBackground string `yaml:"bullet_background"`
	FontFamily       string `yaml:"font_family"`
}

// Themes aggregates all template presets loaded from the themes file.
type Themes struct {
	SentenceAnalysis SentenceTheme `yaml:"sentence_analysis"`
	Sandbox          SandboxTheme  `yaml:"sandbox"`
}

func defaultThemes() *Themes {
	return &Themes{
		SentenceAnalysis: SentenceTheme{
			DefaultHighlight: "#f2c14e",
			AccentColor:      "#f2c14e",
			RoleColors: map[string]string{
				"subject":   "#ef4444",
				"object":    "#3b82f6",
				"verb":      "#22c55e",
				"topic":     "#ef4444",
				"adverbial": "#a855f7",
				"particle":  "#f97316",
			},
		},
		Sandbox: SandboxTheme{
			Background:       "linear-gradient(135deg, #312e81 0%, #0f172a 100%)",
			Overlay:          "rgba(8, 16, 32, 0.58)",
			Accent:           "#f2c14e",
			Foreground:       "#ffffff",
			Muted:            "rgba(255, 255, 255, 0.78)",
			Panel:            "rgba(8, 14, 28, 0.75)",
			BulletBackground: "rgba(15, 23, 42, 0.64)",
			FontFamily:       "'TikTokSans', 'Arial Black', Helvetica, sans-serif",
		},
	}
}

// LoadThemes reads theme presets from path. A missing file falls back
// to the built-in defaults; a malformed file is an error. Values absent
// from the file keep their defaults.
func LoadThemes(path string, logger *zap.Logger) (*Themes, error) {
	themes := defaultThemes()
	if path == "" {
		return themes, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("themes file not found, using defaults", zap.String("path", path))
			return themes, nil
		}
		return nil, fmt.Errorf("reading themes file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, themes); err != nil {
		return nil, fmt.Errorf("parsing themes file %s: %w", path, err)
	}
	return themes, nil
}

// RoleColor resolves a highlight color for a grammatical role. The
// document-supplied map wins, then the theme's role table, then the
// theme default.
func (t *Themes) RoleColor(role string, overrides map[string]string) string {
	if c, ok := overrides[role]; ok && c != "" {
		return c
	}
	if c, ok := t.SentenceAnalysis.RoleColors[strings.ToLower(role)]; ok && c != "" {
		return c
	}
	return t.SentenceAnalysis.DefaultHighlight
}
