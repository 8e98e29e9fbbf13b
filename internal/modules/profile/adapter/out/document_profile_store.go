package out

import (
	"context"

	journaldomain "quill/internal/modules/journal/domain"
	journalin "quill/internal/modules/journal/port/in"
	"quill/internal/modules/profile/domain"
	profileout "quill/internal/modules/profile/port/out"
)

// DocumentProfileStore keeps the profile in the shared data document.
type DocumentProfileStore struct {
	documents journalin.Documents
}

func NewDocumentProfileStore(documents journalin.Documents) profileout.ProfileStore {
	return &DocumentProfileStore{documents: documents}
}

func (s *DocumentProfileStore) Load(ctx context.Context) (*domain.Profile, error) {
	var out *domain.Profile
	err := s.documents.View(ctx, func(doc journaldomain.Document) error {
		if doc.Profile != nil {
			p := *doc.Profile
			out = &p
		}
		return nil
	})
	return out, err
}

func (s *DocumentProfileStore) Save(ctx context.Context, profile domain.Profile) error {
	return s.documents.Update(ctx, func(doc *journaldomain.Document) error {
		doc.Profile = &profile
		return nil
	})
}
