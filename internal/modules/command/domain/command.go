package domain

import (
	"errors"
	"fmt"
	"regexp"
)

const (
	OpenDashboard   = "open-dashboard"
	SessionStart    = "session-start"
	SessionPause    = "session-pause"
	SessionResume   = "session-resume"
	SessionComplete = "session-complete"
	SessionSkip     = "session-skip"
	QuickNote       = "quick-note"
	InsertPrompt    = "insert-prompt"
	WeeklySummary   = "weekly-summary"
	Onboarding      = "onboarding"
)

var (
	ErrCommandNotFound  = errors.New("command not found")
	ErrNotInteractive   = errors.New("command needs an interactive terminal")
	ErrChecksumMismatch = errors.New("plugin checksum mismatch")
	ErrPluginTimeout    = errors.New("plugin timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Descriptor struct {
	ID          string
	Title       string
	Description string
}

type Result struct {
	Message    string
	OutputJSON string
}

// Catalog lists every zero-argument command in palette order.
func Catalog() []Descriptor {
	return []Descriptor{
		{ID: OpenDashboard, Title: "Open dashboard", Description: "Show progress, streak and recent sessions"},
		{ID: SessionStart, Title: "Start session", Description: "Track the most recently edited note"},
		{ID: SessionPause, Title: "Pause session", Description: "Stop the clock on the active session"},
		{ID: SessionResume, Title: "Resume session", Description: "Continue a paused session"},
		{ID: SessionComplete, Title: "Complete session", Description: "Finish and log the active session"},
		{ID: SessionSkip, Title: "Skip session", Description: "Log the active session as skipped"},
		{ID: QuickNote, Title: "Quick note", Description: "Create a note from the quick-note template and start writing"},
		{ID: InsertPrompt, Title: "Insert prompt", Description: "Append a random prompt to the note being written"},
		{ID: WeeklySummary, Title: "Weekly summary", Description: "Show this week's sessions against the goal"},
		{ID: Onboarding, Title: "Onboarding", Description: "Answer the questionnaire and set a writing profile"},
	}
}

func Lookup(id string) (Descriptor, bool) {
	for _, d := range Catalog() {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// PluginRef points at a plugin binary. SHA256 is optional; when set the
// binary must match it before it is started.
type PluginRef struct {
	Binary string
	SHA256 string
}

func (p PluginRef) Validate() error {
	if p.Binary == "" {
		return fmt.Errorf("plugin binary path is required")
	}
	if p.SHA256 != "" && !sha256Pattern.MatchString(p.SHA256) {
		return fmt.Errorf("plugin sha256 must be lowercase 64-char hex")
	}
	return nil
}
