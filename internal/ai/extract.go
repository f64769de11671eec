package ai

import (
	"fmt"
	"regexp"
	"strings"

	"lesson-server/internal/model"
)

var fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ExtractJSON pulls the first well-formed JSON object out of an AI
// response. A fenced ```json block wins; otherwise the first
// brace-balanced substring is taken. Returns ErrContentGenerationFailed
// when no candidate object exists at all.
func ExtractJSON(content string) (string, error) {
	if m := fencedJSONRe.FindStringSubmatch(content); m != nil {
		return m[1], nil
	}
	start := strings.IndexByte(content, '{')
	if start < 0 {
		return "", fmt.Errorf("%w: no JSON object in response", model.ErrContentGenerationFailed)
	}
	if candidate, ok := braceMatched(content[start:]); ok {
		return candidate, nil
	}
	// Unbalanced braces: hand back everything from the first brace and
	// let the JSON decoder produce the real error.
	return content[start:], nil
}

// braceMatched returns the prefix of s up to the brace that closes the
// opening one, skipping braces inside JSON strings.
func braceMatched(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false
	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}
