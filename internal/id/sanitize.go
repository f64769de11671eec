// Package id derives filesystem-safe item identifiers from user input.
//
// The identifier doubles as the polling key: clients poll the library
// for the id returned by the generate endpoints, so Sanitize must be
// deterministic and idempotent for a given input.
package id

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const maxLength = 50

// keepRune reports whether r survives sanitization. ASCII word
// characters, hyphens and the CJK/Hangul/Kana blocks are kept so that
// native-script topics stay recognisable as directory names.
func keepRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	case r >= 0x1100 && r <= 0x11FF: // Hangul Jamo
		return true
	case r >= 0x3130 && r <= 0x318F: // Hangul compatibility Jamo
		return true
	case r >= 0x3200 && r <= 0x32FF: // Enclosed CJK letters
		return true
	case r >= 0xAC00 && r <= 0xD7AF: // Hangul syllables
		return true
	case r >= 0xFF00 && r <= 0xFFEF: // Half/fullwidth forms
		return true
	case r >= 0x3040 && r <= 0x309F: // Hiragana
		return true
	case r >= 0x30A0 && r <= 0x30FF: // Katakana
		return true
	case r >= 0x4E00 && r <= 0x9FAF: // CJK unified ideographs
		return true
	}
	return false
}

// Sanitize turns arbitrary topic text into a single safe path segment:
// whitespace, hyphen and underscore runs collapse to one hyphen,
// everything outside the allowed rune set is dropped, and the result
// is trimmed and capped at 50 runes. An input that sanitizes to fewer
// than 2 runes falls back to "<fallbackPrefix>-<unix-millis>".
func Sanitize(input, fallbackPrefix string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.TrimSpace(input) {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			pendingHyphen = b.Len() > 0
			continue
		}
		if !keepRune(r) {
			continue
		}
		if pendingHyphen {
			b.WriteRune('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}

	sanitized := b.String()
	if len([]rune(sanitized)) < 2 {
		return fmt.Sprintf("%s-%d", fallbackPrefix, time.Now().UnixMilli())
	}
	return truncate(sanitized, maxLength)
}

// ForLesson derives a lesson identifier from the topic.
func ForLesson(topic string) string {
	return Sanitize(topic, "lesson")
}

// ForCheatSheet derives a cheat-sheet identifier. The prefix is applied
// before the length cap, exactly as the original layout did.
func ForCheatSheet(topic string) string {
	sanitized := Sanitize(topic, "cheat-sheet")
	if strings.HasPrefix(sanitized, "cheat-sheet-") {
		// Fallback ids already carry the prefix.
		return sanitized
	}
	return truncate("cheat-sheet-"+sanitized, maxLength)
}

// ForSentence derives a sentence-analysis identifier from the first 40
// runes of the lowercased sentence.
func ForSentence(sentence string) string {
	head := []rune(strings.ToLower(sentence))
	if len(head) > 40 {
		head = head[:40]
	}
	sanitized := Sanitize(string(head), "sentence")
	if strings.HasPrefix(sanitized, "sentence-") {
		return sanitized
	}
	return truncate("sentence-"+sanitized, maxLength)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		s = string(runes[:n])
	}
	return strings.TrimRight(s, "-")
}
