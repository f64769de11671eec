package render

import (
	"html/template"
	"strings"
)

// Segment is one run of a slide text, classified by script.
type Segment struct {
	Text  string
	Asian bool
}

// asianRune reports whether r belongs to one of the highlighted script
// blocks: Hangul syllables and Jamo, Hiragana, Katakana, and the CJK
// unified ideographs.
func asianRune(r rune) bool {
	switch {
	case r >= 0xAC00 && r <= 0xD7AF:
		return true
	case r >= 0x1100 && r <= 0x11FF:
		return true
	case r >= 0x3130 && r <= 0x318F:
		return true
	case r >= 0x3040 && r <= 0x309F:
		return true
	case r >= 0x30A0 && r <= 0x30FF:
		return true
	case r >= 0x4E00 && r <= 0x9FAF:
		return true
	}
	return false
}

// SegmentText splits text into alternating plain and Asian-script runs,
// preserving order. Concatenating the segment texts reproduces the
// input exactly.
func SegmentText(text string) []Segment {
	var segments []Segment
	var current strings.Builder
	currentAsian := false

	flush := func() {
		if current.Len() > 0 {
			segments = append(segments, Segment{Text: current.String(), Asian: currentAsian})
			current.Reset()
		}
	}

	for _, r := range text {
		isAsian := asianRune(r)
		if current.Len() > 0 && isAsian != currentAsian {
			flush()
		}
		currentAsian = isAsian
		current.WriteRune(r)
	}
	flush()
	return segments
}

// WrapAsian renders text with Asian-script runs wrapped in highlight
// chips. Every segment is HTML-escaped individually.
func WrapAsian(text string) template.HTML {
	var b strings.Builder
	for _, seg := range SegmentText(text) {
		if seg.Asian {
			b.WriteString(`<span class="asian">`)
			b.WriteString(template.HTMLEscapeString(seg.Text))
			b.WriteString(`</span>`)
		} else {
			b.WriteString(template.HTMLEscapeString(seg.Text))
		}
	}
	return template.HTML(b.String())
}
