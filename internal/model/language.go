package model

// Language identifies the target language of a lesson.
type Language string

const (
	LanguageKorean   Language = "korean"
	LanguageJapanese Language = "japanese"
)

// LanguageInfo is the wire shape of the static languages enumeration.
type LanguageInfo struct {
	ID   Language `json:"id"`
	Name string   `json:"name"`
	Flag string   `json:"flag"`
}

// Languages returns the supported languages in a stable order.
func Languages() []LanguageInfo {
	return []LanguageInfo{
		{ID: LanguageKorean, Name: "Korean", Flag: "\U0001F1F0\U0001F1F7"},
		{ID: LanguageJapanese, Name: "Japanese", Flag: "\U0001F1EF\U0001F1F5"},
	}
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == LanguageKorean || l == LanguageJapanese
}

// Name returns the English display name used in prompts.
func (l Language) Name() string {
	if l == LanguageJapanese {
		return "Japanese"
	}
	return "Korean"
}
