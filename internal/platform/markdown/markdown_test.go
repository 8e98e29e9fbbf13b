package markdown

import (
	"strings"
	"testing"
)

func TestStripFrontmatter(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "hello world", want: "hello world"},
		{name: "block", in: "---\nfoo: bar\n---\nhello world", want: "hello world"},
		{name: "crlf", in: "---\r\nfoo: bar\r\n---\r\nbody", want: "body"},
		{name: "unclosed", in: "---\nfoo: bar\nbody", want: "---\nfoo: bar\nbody"},
		{name: "not at start", in: "intro\n---\nfoo\n---\n", want: "intro\n---\nfoo\n---\n"},
		{name: "indented separator", in: "--- \nfoo\n---\nbody", want: "--- \nfoo\n---\nbody"},
		{name: "empty", in: "", want: ""},
	}
	for _, tc := range cases {
		if got := StripFrontmatter(tc.in); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestRenderThenSplitFrontmatter(t *testing.T) {
	t.Parallel()
	rendered, err := RenderFrontmatter(map[string]any{"id": "s-1", "count": 42}, "# Session\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	meta, body, err := SplitFrontmatter(rendered)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["id"] != "s-1" || meta["count"] != 42 {
		t.Fatalf("unexpected meta: %v", meta)
	}
	if !strings.Contains(body, "# Session") {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestReplaceManagedBlock(t *testing.T) {
	t.Parallel()
	body := ReplaceManagedBlock("# Week\n", "<!-- s -->", "<!-- e -->", "first")
	if !strings.Contains(body, "<!-- s -->\nfirst\n<!-- e -->") {
		t.Fatalf("block not appended: %q", body)
	}
	body = ReplaceManagedBlock(body, "<!-- s -->", "<!-- e -->", "second")
	if strings.Contains(body, "first") || strings.Count(body, "<!-- s -->") != 1 {
		t.Fatalf("block not replaced in place: %q", body)
	}
}
