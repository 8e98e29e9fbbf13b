package out

import (
	"context"

	journaldomain "quill/internal/modules/journal/domain"
	journalin "quill/internal/modules/journal/port/in"
	"quill/internal/modules/template/domain"
	templateout "quill/internal/modules/template/port/out"
)

type DocumentTemplateStore struct {
	documents journalin.Documents
}

func NewDocumentTemplateStore(documents journalin.Documents) templateout.TemplateStore {
	return &DocumentTemplateStore{documents: documents}
}

func (s *DocumentTemplateStore) List(ctx context.Context) ([]domain.Template, error) {
	var out []domain.Template
	err := s.documents.View(ctx, func(doc journaldomain.Document) error {
		out = append(out, doc.Templates...)
		return nil
	})
	return out, err
}

func (s *DocumentTemplateStore) Update(ctx context.Context, fn func([]domain.Template) ([]domain.Template, error)) error {
	return s.documents.Update(ctx, func(doc *journaldomain.Document) error {
		next, err := fn(append([]domain.Template(nil), doc.Templates...))
		if err != nil {
			return err
		}
		doc.Templates = next
		return nil
	})
}
