package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinLength = 20
	MaxLength = 300
	MaxCount  = 100
	// Freshness is how long a fetched feed is served without refetching.
	Freshness = 24 * time.Hour
)

var (
	leadingTags = regexp.MustCompile(`^(\s*[\[(][A-Za-z]{1,4}[\])])+\s*`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Feed is a normalized prompt list and the time it was fetched.
type Feed struct {
	Prompts   []string  `json:"prompts"`
	FetchedAt time.Time `json:"fetched_at"`
}

func (f Feed) Fresh(now time.Time) bool {
	return len(f.Prompts) > 0 && !f.FetchedAt.IsZero() && now.Sub(f.FetchedAt) < Freshness
}

type promptItem struct {
	Prompt string `json:"prompt"`
	Text   string `json:"text"`
	Title  string `json:"title"`
}

func (p promptItem) value() string {
	switch {
	case p.Prompt != "":
		return p.Prompt
	case p.Text != "":
		return p.Text
	default:
		return p.Title
	}
}

type listing struct {
	Data struct {
		Children []struct {
			Data promptItem `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// ParseFeed accepts an array of strings, an array of objects carrying
// prompt, text or title, or a listing of the form
// {"data":{"children":[{"data":{"title":...}}]}}. The result is normalized.
func ParseFeed(raw []byte) ([]string, error) {
	var strs []string
	if err := json.Unmarshal(raw, &strs); err == nil {
		return Normalize(strs), nil
	}
	var items []promptItem
	if err := json.Unmarshal(raw, &items); err == nil {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.value())
		}
		return Normalize(out), nil
	}
	var l listing
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("unrecognized prompt feed: %w", err)
	}
	out := make([]string, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		out = append(out, child.Data.value())
	}
	return Normalize(out), nil
}

// Normalize strips leading tags like "[WP]", collapses whitespace, keeps
// prompts of MinLength..MaxLength runes, drops case-insensitive duplicates and
// caps the list at MaxCount.
func Normalize(prompts []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, min(len(prompts), MaxCount))
	for _, p := range prompts {
		p = leadingTags.ReplaceAllString(p, "")
		p = strings.TrimSpace(whitespace.ReplaceAllString(p, " "))
		n := utf8.RuneCountInString(p)
		if n < MinLength || n > MaxLength {
			continue
		}
		key := strings.ToLower(p)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
		if len(out) == MaxCount {
			break
		}
	}
	return out
}

func Builtins() []string {
	return []string{
		"Write about a place you have not visited in years.",
		"Describe the last conversation that surprised you.",
		"A letter arrives addressed to someone who lived here before you.",
		"Write the scene just before the most important decision of your week.",
		"List five small things you noticed today and pick one to expand.",
		"Two characters want the same thing for opposite reasons.",
		"Describe a room using only sounds and smells.",
		"What would you tell yourself from one year ago?",
		"Start with the line: the power went out at exactly nine.",
		"Write about an object you keep but never use.",
	}
}
