package chat

import (
	"strings"
	"unicode"
)

// cleanTitle normalizes a model-generated title: first line only, surrounding
// quotes and whitespace removed, at most maxRunes characters
func cleanTitle(raw string, maxRunes int) string {
	title := strings.TrimSpace(raw)
	if i := strings.IndexAny(title, "\r\n"); i >= 0 {
		title = title[:i]
	}

	title = strings.TrimPrefix(title, "Title:")
	title = strings.TrimSpace(title)
	title = strings.Trim(title, "\"'`“”‘’*")
	title = strings.TrimSpace(title)

	runes := []rune(title)
	if len(runes) > maxRunes {
		title = strings.TrimRightFunc(string(runes[:maxRunes]), unicode.IsSpace)
	}
	return title
}
