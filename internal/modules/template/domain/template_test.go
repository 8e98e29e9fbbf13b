package domain

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	apperrors "quill/internal/platform/errors"
)

func TestVariablesAreDerivedFromTitleAndBody(t *testing.T) {
	t.Parallel()
	tpl := Template{TitlePattern: "{{date}} {{ mood }}", Body: "{{date}} {{random_prompt}}"}
	want := []string{"date", "mood", "random_prompt"}
	if got := tpl.Variables(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRenderReplacesEveryDeclaredVariable(t *testing.T) {
	t.Parallel()
	tpl := Template{
		TitlePattern: "{{date}} {{time}} {{weekday}}",
		Body:         "{{datetime}} {{vault}} {{random_prompt}} {{title}} {{date}} again {{ date }}",
	}
	vars := map[string]string{}
	for _, name := range BuiltinVariables {
		vars[name] = "<" + name + ">"
	}
	for _, text := range []string{Render(tpl.TitlePattern, vars), Render(tpl.Body, vars)} {
		if strings.Contains(text, "{{") || strings.Contains(text, "}}") {
			t.Fatalf("placeholders left behind: %q", text)
		}
	}
	if got := Render("{{unknown}} {{date}}", vars); got != "{{unknown}} <date>" {
		t.Fatalf("unexpected render of unknown variable: %q", got)
	}
}

func TestValidateRejectsUnbalancedPlaceholders(t *testing.T) {
	t.Parallel()
	base := Template{ID: "my-template", Name: "Mine", TitlePattern: "{{date}}"}
	bad := []string{"{{date", "date}}", "{{}}", "{{ two words }}", "{{a{{b}}}}", "}}{{date}}"}
	for _, body := range bad {
		tpl := base
		tpl.Body = body
		if err := tpl.Validate(); !errors.Is(err, apperrors.ErrInvalidTemplate) {
			t.Fatalf("body %q: expected invalid template, got %v", body, err)
		}
	}
	good := base
	good.Body = "# {{title}}\n{{ date }} and {{random_prompt}}"
	if err := good.Validate(); err != nil {
		t.Fatalf("expected valid template: %v", err)
	}
	noTitle := base
	noTitle.TitlePattern = " "
	if err := noTitle.Validate(); err == nil {
		t.Fatalf("expected error for empty title pattern")
	}
	badID := base
	badID.ID = "Has Spaces"
	if err := badID.Validate(); err == nil {
		t.Fatalf("expected error for invalid id")
	}
}

func TestBuiltinsAreValid(t *testing.T) {
	t.Parallel()
	for _, tpl := range Builtins() {
		if err := tpl.Validate(); err != nil {
			t.Fatalf("builtin %s invalid: %v", tpl.ID, err)
		}
		if !tpl.BuiltIn {
			t.Fatalf("builtin %s not flagged", tpl.ID)
		}
	}
}

func TestFileName(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Quick note 2026-10-16 21:05": "Quick note 2026-10-16 21-05",
		"  a/b  c ":                   "a-b c",
		"...":                         "Untitled",
	}
	for in, want := range cases {
		if got := FileName(in); got != want {
			t.Fatalf("file name for %q: expected %q, got %q", in, want, got)
		}
	}
}
