package domain

import (
	"fmt"
	"strings"
	"time"

	"quill/internal/platform/civil"
	apperrors "quill/internal/platform/errors"
)

const (
	DefaultTemplateID    = "quick-note"
	DefaultSnoozeMinutes = 10
	maxSecondOffset      = 12 * 60
)

// Window is a do-not-disturb range. Start > End wraps past midnight.
type Window struct {
	Start civil.TimeOfDay `json:"start"`
	End   civil.TimeOfDay `json:"end"`
}

func (w Window) Contains(t civil.TimeOfDay) bool {
	m, start, end := t.Minutes(), w.Start.Minutes(), w.End.Minutes()
	if start <= end {
		return m >= start && m < end
	}
	return m >= start || m < end
}

func (w Window) String() string {
	return w.Start.String() + "-" + w.End.String()
}

// ParseWindow reads "HH:MM-HH:MM".
func ParseWindow(s string) (Window, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return Window{}, fmt.Errorf("%w: window must be HH:MM-HH:MM", apperrors.ErrInvalidSettings)
	}
	start, err := civil.ParseTimeOfDay(parts[0])
	if err != nil {
		return Window{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidSettings, err)
	}
	end, err := civil.ParseTimeOfDay(parts[1])
	if err != nil {
		return Window{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidSettings, err)
	}
	return Window{Start: start, End: end}, nil
}

type Reminder struct {
	ID                  string          `json:"id"`
	Label               string          `json:"label"`
	Days                []time.Weekday  `json:"days"`
	At                  civil.TimeOfDay `json:"at"`
	SecondOffsetMinutes int             `json:"second_offset_minutes,omitempty"`
	DND                 *Window         `json:"dnd,omitempty"`
	Enabled             bool            `json:"enabled"`
	TemplateID          string          `json:"template_id,omitempty"`
}

func (r Reminder) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: reminder id is required", apperrors.ErrInvalidSettings)
	}
	if strings.TrimSpace(r.Label) == "" {
		return fmt.Errorf("%w: reminder label is required", apperrors.ErrInvalidSettings)
	}
	if len(r.Days) == 0 {
		return fmt.Errorf("%w: reminder needs at least one day", apperrors.ErrInvalidSettings)
	}
	for _, d := range r.Days {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: invalid weekday %d", apperrors.ErrInvalidSettings, d)
		}
	}
	if r.At.Hour < 0 || r.At.Hour > 23 || r.At.Minute < 0 || r.At.Minute > 59 {
		return fmt.Errorf("%w: invalid reminder time", apperrors.ErrInvalidSettings)
	}
	if r.SecondOffsetMinutes < 0 || r.SecondOffsetMinutes > maxSecondOffset {
		return fmt.Errorf("%w: second reminder offset must be within 0..%d minutes", apperrors.ErrInvalidSettings, maxSecondOffset)
	}
	if r.DND != nil && r.DND.Start == r.DND.End {
		return fmt.Errorf("%w: do-not-disturb window must not be empty", apperrors.ErrInvalidSettings)
	}
	return nil
}

func (r Reminder) RunsOn(day time.Weekday) bool {
	for _, d := range r.Days {
		if d == day {
			return true
		}
	}
	return false
}

func (r Reminder) Template() string {
	if r.TemplateID == "" {
		return DefaultTemplateID
	}
	return r.TemplateID
}

// NextFire returns the next instant after now at which r should fire: today
// if the time is still ahead and today is enabled, otherwise the next enabled
// day. It reports false for disabled reminders and for fire times inside the
// do-not-disturb window.
func NextFire(r Reminder, now time.Time) (time.Time, bool) {
	if !r.Enabled || len(r.Days) == 0 {
		return time.Time{}, false
	}
	if r.DND != nil && r.DND.Contains(r.At) {
		return time.Time{}, false
	}
	today := civil.DateOf(now)
	for offset := 0; offset <= 7; offset++ {
		day := today.AddDays(offset)
		if !r.RunsOn(day.Weekday()) {
			continue
		}
		at := r.At.On(day, now.Location())
		if at.After(now) {
			return at, true
		}
	}
	return time.Time{}, false
}
