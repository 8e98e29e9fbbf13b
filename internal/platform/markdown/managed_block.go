package markdown

import "strings"

// ReplaceManagedBlock swaps the text between the markers for generated. When
// the markers are missing or out of order a new block is appended instead.
func ReplaceManagedBlock(body, startMarker, endMarker, generated string) string {
	block := startMarker + "\n" + generated + "\n" + endMarker
	if before, rest, ok := strings.Cut(body, startMarker); ok {
		if _, after, ok := strings.Cut(rest, endMarker); ok {
			return before + block + after
		}
	}
	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}
