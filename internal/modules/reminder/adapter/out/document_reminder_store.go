package out

import (
	"context"

	journaldomain "quill/internal/modules/journal/domain"
	journalin "quill/internal/modules/journal/port/in"
	"quill/internal/modules/reminder/domain"
	reminderout "quill/internal/modules/reminder/port/out"
)

type DocumentReminderStore struct {
	documents journalin.Documents
}

func NewDocumentReminderStore(documents journalin.Documents) reminderout.ReminderStore {
	return &DocumentReminderStore{documents: documents}
}

func (s *DocumentReminderStore) List(ctx context.Context) ([]domain.Reminder, error) {
	var out []domain.Reminder
	err := s.documents.View(ctx, func(doc journaldomain.Document) error {
		out = append(out, doc.Reminders...)
		return nil
	})
	return out, err
}

func (s *DocumentReminderStore) Update(ctx context.Context, fn func([]domain.Reminder) ([]domain.Reminder, error)) error {
	return s.documents.Update(ctx, func(doc *journaldomain.Document) error {
		next, err := fn(append([]domain.Reminder(nil), doc.Reminders...))
		if err != nil {
			return err
		}
		doc.Reminders = next
		return nil
	})
}
