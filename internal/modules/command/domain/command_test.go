package domain

import (
	"strings"
	"testing"
)

func TestCatalogIDsAreUniqueAndResolvable(t *testing.T) {
	t.Parallel()
	seen := map[string]struct{}{}
	for _, d := range Catalog() {
		if _, dup := seen[d.ID]; dup {
			t.Fatalf("duplicate command id %s", d.ID)
		}
		seen[d.ID] = struct{}{}
		if got, ok := Lookup(d.ID); !ok || got.Title != d.Title {
			t.Fatalf("lookup %s failed", d.ID)
		}
	}
	if len(seen) != 10 {
		t.Fatalf("expected 10 commands, got %d", len(seen))
	}
	if _, ok := Lookup("rm-rf"); ok {
		t.Fatalf("unknown id must not resolve")
	}
}

func TestPluginRefValidate(t *testing.T) {
	t.Parallel()
	if err := (PluginRef{}).Validate(); err == nil {
		t.Fatalf("expected error for empty binary")
	}
	if err := (PluginRef{Binary: "/bin/p", SHA256: "ABC"}).Validate(); err == nil {
		t.Fatalf("expected error for malformed checksum")
	}
	if err := (PluginRef{Binary: "/bin/p", SHA256: strings.Repeat("a", 64)}).Validate(); err != nil {
		t.Fatalf("valid ref rejected: %v", err)
	}
	if err := (PluginRef{Binary: "/bin/p"}).Validate(); err != nil {
		t.Fatalf("checksum must be optional: %v", err)
	}
}
