package out

import (
	"context"

	"quill/internal/modules/profile/domain"
)

// ProfileStore loads the stored profile. A nil profile means onboarding has
// never run.
type ProfileStore interface {
	Load(ctx context.Context) (*domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
}
