package domain

import (
	"strings"
	"unicode"
	"unicode/utf16"

	"quill/internal/platform/markdown"
)

type Unit string

const (
	UnitWords      Unit = "words"
	UnitCharacters Unit = "characters"
)

// Count measures text after stripping a leading frontmatter block. Words are
// whitespace-separated tokens. Characters are the UTF-16 code units of the
// non-whitespace text, so a character outside the BMP counts as two. Any
// other unit counts words.
func Count(text string, unit Unit) int {
	body := markdown.StripFrontmatter(text)
	if unit == UnitCharacters {
		n := 0
		for _, r := range body {
			if !unicode.IsSpace(r) {
				n += max(utf16.RuneLen(r), 1)
			}
		}
		return n
	}
	return len(strings.Fields(body))
}
