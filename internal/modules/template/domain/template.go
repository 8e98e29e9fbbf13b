package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	apperrors "quill/internal/platform/errors"
)

const (
	VarDate         = "date"
	VarTime         = "time"
	VarDateTime     = "datetime"
	VarWeekday      = "weekday"
	VarVault        = "vault"
	VarRandomPrompt = "random_prompt"
	VarTitle        = "title"
)

// BuiltinVariables are filled in by the engine on every render.
var BuiltinVariables = []string{VarDate, VarTime, VarDateTime, VarWeekday, VarVault, VarRandomPrompt, VarTitle}

var (
	placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)
	validName   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	validID     = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	unsafeChars = regexp.MustCompile(`[\\/:*?"<>|#^\[\]]`)
	spaces      = regexp.MustCompile(`\s+`)
)

type Template struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TitlePattern string `json:"title_pattern"`
	Body         string `json:"body"`
	BuiltIn      bool   `json:"built_in"`
}

// Variables lists the distinct placeholder names used in the title pattern
// and the body, sorted.
func (t Template) Variables() []string {
	seen := map[string]struct{}{}
	for _, text := range []string{t.TitlePattern, t.Body} {
		for _, m := range placeholder.FindAllStringSubmatch(text, -1) {
			seen[m[1]] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (t Template) Validate() error {
	if !validID.MatchString(t.ID) {
		return fmt.Errorf("%w: id must be lowercase words joined by dashes", apperrors.ErrInvalidTemplate)
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrInvalidTemplate)
	}
	if strings.TrimSpace(t.TitlePattern) == "" {
		return fmt.Errorf("%w: title pattern is required", apperrors.ErrInvalidTemplate)
	}
	if err := checkPlaceholders(t.TitlePattern); err != nil {
		return fmt.Errorf("%w: title pattern: %v", apperrors.ErrInvalidTemplate, err)
	}
	if err := checkPlaceholders(t.Body); err != nil {
		return fmt.Errorf("%w: body: %v", apperrors.ErrInvalidTemplate, err)
	}
	return nil
}

// checkPlaceholders rejects unbalanced braces and malformed names.
func checkPlaceholders(text string) error {
	rest := text
	for {
		open := strings.Index(rest, "{{")
		closeIdx := strings.Index(rest, "}}")
		switch {
		case open < 0 && closeIdx < 0:
			return nil
		case open < 0 || (closeIdx >= 0 && closeIdx < open):
			return fmt.Errorf("unexpected }} without opening {{")
		}
		body := rest[open+2:]
		end := strings.Index(body, "}}")
		if end < 0 {
			return fmt.Errorf("unclosed {{")
		}
		inner := body[:end]
		if strings.Contains(inner, "{{") {
			return fmt.Errorf("nested {{ inside placeholder")
		}
		name := strings.TrimSpace(inner)
		if name == "" {
			return fmt.Errorf("empty placeholder")
		}
		if !validName.MatchString(name) {
			return fmt.Errorf("invalid placeholder name %q", name)
		}
		rest = body[end+2:]
	}
}

// Render replaces every known placeholder. Unknown names stay as written.
func Render(text string, vars map[string]string) string {
	return placeholder.ReplaceAllStringFunc(text, func(token string) string {
		name := placeholder.FindStringSubmatch(token)[1]
		if v, ok := vars[name]; ok {
			return v
		}
		return token
	})
}

// FileName turns a rendered title into a safe note file name without the
// extension.
func FileName(title string) string {
	name := unsafeChars.ReplaceAllString(title, "-")
	name = spaces.ReplaceAllString(name, " ")
	name = strings.Trim(name, " .-")
	if name == "" {
		return "Untitled"
	}
	return name
}

func Builtins() []Template {
	return []Template{
		{
			ID:           "quick-note",
			Name:         "Quick note",
			TitlePattern: "Quick note {{date}} {{time}}",
			Body:         "# {{title}}\n\n",
			BuiltIn:      true,
		},
		{
			ID:           "daily-journal",
			Name:         "Daily journal",
			TitlePattern: "Journal {{date}}",
			Body:         "# {{weekday}}, {{date}}\n\n## What happened today\n\n## What I'm grateful for\n\n## Tomorrow\n\n",
			BuiltIn:      true,
		},
		{
			ID:           "morning-pages",
			Name:         "Morning pages",
			TitlePattern: "Morning pages {{date}}",
			Body:         "# Morning pages, {{weekday}} {{date}}\n\nThree pages, no stopping, no editing.\n\n",
			BuiltIn:      true,
		},
		{
			ID:           "prompt-writing",
			Name:         "Prompt writing",
			TitlePattern: "Prompt {{date}} {{time}}",
			Body:         "# {{title}}\n\n> {{random_prompt}}\n\n",
			BuiltIn:      true,
		},
	}
}

func FindBuiltin(id string) (Template, bool) {
	for _, t := range Builtins() {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
