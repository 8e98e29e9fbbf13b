package id

import (
	"regexp"
	"testing"
)

func TestShortIDsAreTypableHex(t *testing.T) {
	t.Parallel()
	hexID := regexp.MustCompile(`^[0-9a-f]{8}$`)
	seen := map[string]struct{}{}
	for i := 0; i < 64; i++ {
		got := Short{}.New()
		if !hexID.MatchString(got) {
			t.Fatalf("unexpected short id %q", got)
		}
		seen[got] = struct{}{}
	}
	if len(seen) < 60 {
		t.Fatalf("short ids repeat too often: %d distinct of 64", len(seen))
	}
}

func TestUUIDIsUnique(t *testing.T) {
	t.Parallel()
	if a, b := (UUID{}).New(), (UUID{}).New(); a == b || len(a) != 36 {
		t.Fatalf("unexpected uuids %q %q", a, b)
	}
}
