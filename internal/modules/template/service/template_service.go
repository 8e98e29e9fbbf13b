package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"quill/internal/modules/template/domain"
	templateout "quill/internal/modules/template/port/out"
	"quill/internal/platform/clock"
	apperrors "quill/internal/platform/errors"
	"quill/internal/platform/slug"
)

const fallbackPrompt = "Write about something you noticed today."

// maxCollisions bounds the " 1", " 2", ... suffix search.
const maxCollisions = 1000

type Note struct {
	Path       string
	RelPath    string
	Title      string
	Started    bool
	SessionErr error
}

type TemplateService struct {
	clock    clock.Clock
	store    templateout.TemplateStore
	files    templateout.NoteFiles
	prompts  templateout.PromptSource
	sessions templateout.SessionStarter
	settings templateout.NoteSettings
	logger   hclog.Logger
}

func NewTemplateService(
	clock clock.Clock,
	store templateout.TemplateStore,
	files templateout.NoteFiles,
	prompts templateout.PromptSource,
	sessions templateout.SessionStarter,
	settings templateout.NoteSettings,
	logger hclog.Logger,
) *TemplateService {
	return &TemplateService{
		clock:    clock,
		store:    store,
		files:    files,
		prompts:  prompts,
		sessions: sessions,
		settings: settings,
		logger:   logger,
	}
}

// List returns built-ins first, then user templates in insertion order.
func (s *TemplateService) List(ctx context.Context) ([]domain.Template, error) {
	user, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return append(domain.Builtins(), user...), nil
}

func (s *TemplateService) Get(ctx context.Context, templateID string) (domain.Template, error) {
	if t, ok := domain.FindBuiltin(templateID); ok {
		return t, nil
	}
	user, err := s.store.List(ctx)
	if err != nil {
		return domain.Template{}, err
	}
	for _, t := range user {
		if t.ID == templateID {
			return t, nil
		}
	}
	return domain.Template{}, fmt.Errorf("%w: template %s", apperrors.ErrNotFound, templateID)
}

// Add stores a user template. An empty id is derived from the name.
func (s *TemplateService) Add(ctx context.Context, t domain.Template) (domain.Template, error) {
	t.BuiltIn = false
	if t.ID == "" {
		t.ID = slug.Make(t.Name)
	}
	if _, ok := domain.FindBuiltin(t.ID); ok {
		return domain.Template{}, fmt.Errorf("%w: %s", apperrors.ErrImmutableTemplate, t.ID)
	}
	if err := t.Validate(); err != nil {
		return domain.Template{}, err
	}
	err := s.store.Update(ctx, func(user []domain.Template) ([]domain.Template, error) {
		for _, existing := range user {
			if existing.ID == t.ID {
				return nil, fmt.Errorf("%w: template %s already exists", apperrors.ErrInvalidTemplate, t.ID)
			}
		}
		return append(user, t), nil
	})
	if err != nil {
		return domain.Template{}, err
	}
	return t, nil
}

func (s *TemplateService) Remove(ctx context.Context, templateID string) error {
	if _, ok := domain.FindBuiltin(templateID); ok {
		return fmt.Errorf("%w: %s", apperrors.ErrImmutableTemplate, templateID)
	}
	return s.store.Update(ctx, func(user []domain.Template) ([]domain.Template, error) {
		for i, t := range user {
			if t.ID == templateID {
				return append(user[:i], user[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%w: template %s", apperrors.ErrNotFound, templateID)
	})
}

// CreateNote renders the template into a new note under the notes folder and,
// when startSession is set, starts tracking it. A session that fails to start
// is reported in Note.SessionErr; the note is kept.
func (s *TemplateService) CreateNote(ctx context.Context, templateID string, overrides map[string]string, startSession bool) (Note, error) {
	t, err := s.Get(ctx, templateID)
	if err != nil {
		return Note{}, err
	}
	folder, vaultName, err := s.settings.NoteSettings(ctx)
	if err != nil {
		return Note{}, err
	}

	vars := s.variables(ctx, t, vaultName)
	for k, v := range overrides {
		vars[k] = v
	}
	// A title pattern can only refer to {{title}} as the template name.
	if _, ok := vars[domain.VarTitle]; !ok {
		vars[domain.VarTitle] = t.Name
	}
	title := strings.TrimSpace(domain.Render(t.TitlePattern, vars))
	if _, ok := overrides[domain.VarTitle]; !ok {
		vars[domain.VarTitle] = title
	}
	body := domain.Render(t.Body, vars)

	relPath, err := s.freePath(ctx, folder, domain.FileName(title))
	if err != nil {
		return Note{}, err
	}
	full, err := s.files.Create(ctx, relPath, body)
	if err != nil {
		return Note{}, err
	}
	note := Note{Path: full, RelPath: relPath, Title: title}
	s.logger.Info("note created", "template", t.ID, "path", relPath)

	if startSession {
		if err := s.sessions.Start(ctx, relPath); err != nil {
			s.logger.Warn("start session on new note", "path", relPath, "error", err)
			note.SessionErr = err
		} else {
			note.Started = true
		}
	}
	return note, nil
}

func (s *TemplateService) variables(ctx context.Context, t domain.Template, vaultName string) map[string]string {
	now := s.clock.Now()
	vars := map[string]string{
		domain.VarDate:     now.Format("2006-01-02"),
		domain.VarTime:     now.Format("15:04"),
		domain.VarDateTime: now.Format("2006-01-02 15:04"),
		domain.VarWeekday:  now.Weekday().String(),
		domain.VarVault:    vaultName,
	}
	for _, name := range t.Variables() {
		if name != domain.VarRandomPrompt {
			continue
		}
		prompt, err := s.prompts.Random(ctx)
		if err != nil || strings.TrimSpace(prompt) == "" {
			s.logger.Warn("random prompt unavailable", "error", err)
			prompt = fallbackPrompt
		}
		vars[domain.VarRandomPrompt] = prompt
	}
	return vars
}

// freePath finds "<folder>/<name>.md", then "<name> 1.md", "<name> 2.md", ...
func (s *TemplateService) freePath(ctx context.Context, folder, name string) (string, error) {
	for i := 0; i < maxCollisions; i++ {
		candidate := name
		if i > 0 {
			candidate = name + " " + strconv.Itoa(i)
		}
		rel := path.Join(folder, candidate+".md")
		exists, err := s.files.Exists(ctx, rel)
		if err != nil {
			return "", err
		}
		if !exists {
			return rel, nil
		}
	}
	return "", errors.New("too many notes with the same title")
}
