package domain

import (
	"time"

	profiledomain "quill/internal/modules/profile/domain"
	reminderdomain "quill/internal/modules/reminder/domain"
	templatedomain "quill/internal/modules/template/domain"
)

const MaxLogEntries = 500

type LogEvent string

const (
	EventStart     LogEvent = "start"
	EventPause     LogEvent = "pause"
	EventResume    LogEvent = "resume"
	EventMilestone LogEvent = "milestone"
	EventComplete  LogEvent = "complete"
	EventSkip      LogEvent = "skip"
)

type LogEntry struct {
	At        time.Time `json:"at"`
	SessionID string    `json:"session_id"`
	Event     LogEvent  `json:"event"`
	Detail    string    `json:"detail,omitempty"`
}

// Document is the single persisted data object. Every feature reads and
// writes its slice of it through the journal service.
type Document struct {
	SchemaVersion int                       `json:"schema_version"`
	Sessions      []Session                 `json:"sessions"`
	Streak        Streak                    `json:"streak"`
	Profile       *profiledomain.Profile    `json:"writing_profile,omitempty"`
	SessionLogs   []LogEntry                `json:"session_logs"`
	Settings      Settings                  `json:"settings"`
	Reminders     []reminderdomain.Reminder `json:"reminders"`
	Templates     []templatedomain.Template `json:"templates"`
}

func NewDocument(settings Settings) Document {
	return Document{
		SchemaVersion: SchemaVersion,
		Sessions:      []Session{},
		SessionLogs:   []LogEntry{},
		Settings:      settings,
		Reminders:     []reminderdomain.Reminder{},
		Templates:     []templatedomain.Template{},
	}
}

// AppendLog adds an entry and keeps only the newest MaxLogEntries.
func (d *Document) AppendLog(entry LogEntry) {
	d.SessionLogs = append(d.SessionLogs, entry)
	if over := len(d.SessionLogs) - MaxLogEntries; over > 0 {
		d.SessionLogs = append([]LogEntry(nil), d.SessionLogs[over:]...)
	}
}

func (d Document) FindSession(id string) (Session, bool) {
	for _, s := range d.Sessions {
		if s.ID == id {
			return s, true
		}
	}
	return Session{}, false
}
