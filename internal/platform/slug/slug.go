package slug

import "strings"

// MaxLen caps a slug. Longer input is cut back to the last whole word.
const MaxLen = 48

// Make lowercases input and joins its ASCII letter and digit runs with
// dashes. Empty results become "untitled".
func Make(input string) string {
	var b strings.Builder
	gap := false
	for _, r := range strings.ToLower(input) {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			gap = true
			continue
		}
		if gap && b.Len() > 0 {
			b.WriteByte('-')
		}
		gap = false
		b.WriteRune(r)
	}
	s := b.String()
	if len(s) > MaxLen {
		s = s[:MaxLen]
		if i := strings.LastIndexByte(s, '-'); i > 0 {
			s = s[:i]
		}
	}
	if s == "" {
		return "untitled"
	}
	return s
}
