package out

import (
	"context"

	"quill/internal/modules/template/domain"
)

// TemplateStore holds user templates only. Built-ins are never persisted.
type TemplateStore interface {
	List(ctx context.Context) ([]domain.Template, error)
	Update(ctx context.Context, fn func([]domain.Template) ([]domain.Template, error)) error
}

// NoteFiles creates notes inside the vault. Paths are vault-relative and
// slash-separated; Create fails if the file already exists.
type NoteFiles interface {
	Exists(ctx context.Context, relPath string) (bool, error)
	Create(ctx context.Context, relPath, content string) (string, error)
}

type PromptSource interface {
	Random(ctx context.Context) (string, error)
}

type SessionStarter interface {
	Start(ctx context.Context, relPath string) error
}

type NoteSettings interface {
	NoteSettings(ctx context.Context) (folder, vaultName string, err error)
}
