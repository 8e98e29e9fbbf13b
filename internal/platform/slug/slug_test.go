package slug

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Morning Pages":       "morning-pages",
		"  chapter 3: draft ": "chapter-3-draft",
		"--Élan--":            "lan",
		"???":                 "untitled",
	}
	for in, want := range cases {
		if got := Make(in); got != want {
			t.Fatalf("slug for %q: expected %q, got %q", in, want, got)
		}
	}
}

func TestMakeCutsLongInputAtWordBoundary(t *testing.T) {
	t.Parallel()
	got := Make(strings.Repeat("chapter ", 10))
	if len(got) > MaxLen || strings.HasSuffix(got, "-") || !strings.HasPrefix(got, "chapter-chapter") {
		t.Fatalf("unexpected long slug %q", got)
	}
	if strings.HasSuffix(got, "chap") {
		t.Fatalf("slug cut mid-word: %q", got)
	}
}
