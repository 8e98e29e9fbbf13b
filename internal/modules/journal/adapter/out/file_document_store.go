package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"quill/internal/modules/journal/domain"
	journalout "quill/internal/modules/journal/port/out"
)

// FileDocumentStore keeps the document as one JSON file, replaced whole on
// every save through a temp file and rename.
type FileDocumentStore struct {
	path string
}

func NewFileDocumentStore(path string) journalout.DocumentStore {
	return &FileDocumentStore{path: path}
}

func (s *FileDocumentStore) Load(_ context.Context, defaults domain.Document) (domain.Document, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return domain.Document{}, fmt.Errorf("read data document: %w", err)
	}
	doc := defaults
	if err := json.Unmarshal(payload, &doc); err != nil {
		return domain.Document{}, fmt.Errorf("decode data document: %w", err)
	}
	fillDefaults(&doc, defaults)
	return doc, nil
}

func fillDefaults(doc *domain.Document, defaults domain.Document) {
	if doc.Sessions == nil {
		doc.Sessions = []domain.Session{}
	}
	if doc.SessionLogs == nil {
		doc.SessionLogs = []domain.LogEntry{}
	}
	if doc.Reminders == nil {
		doc.Reminders = defaults.Reminders
	}
	if doc.Templates == nil {
		doc.Templates = defaults.Templates
	}
	if doc.Settings.StreakMode == "" {
		doc.Settings.StreakMode = defaults.Settings.StreakMode
	}
	if doc.Settings.WeeklyTarget == 0 {
		doc.Settings.WeeklyTarget = defaults.Settings.WeeklyTarget
	}
	if doc.Settings.Unit == "" {
		doc.Settings.Unit = defaults.Settings.Unit
	}
	if doc.Settings.NotesFolder == "" {
		doc.Settings.NotesFolder = defaults.Settings.NotesFolder
	}
	if doc.Settings.VaultName == "" {
		doc.Settings.VaultName = defaults.Settings.VaultName
	}
}

func (s *FileDocumentStore) Save(_ context.Context, document domain.Document) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	payload, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data document: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".data-*.json")
	if err != nil {
		return fmt.Errorf("create temp data file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write data document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync data document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close data document: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace data document: %w", err)
	}
	return nil
}
