package out

import (
	"context"

	"quill/internal/modules/journal/domain"
	"quill/internal/platform/civil"
)

// DocumentStore persists the whole data document. Load decodes over
// defaults, so missing fields keep their default values.
type DocumentStore interface {
	Load(ctx context.Context, defaults domain.Document) (domain.Document, error)
	Save(ctx context.Context, document domain.Document) error
}

type SessionProjector interface {
	Reset(ctx context.Context) error
	UpsertSession(ctx context.Context, session domain.Session) error
	ListBetween(ctx context.Context, from, to civil.Date) ([]domain.Session, error)
}

type SessionNoteWriter interface {
	Write(ctx context.Context, session domain.Session) (string, error)
}
