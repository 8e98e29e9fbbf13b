package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quill/internal/modules/template/domain"
	apperrors "quill/internal/platform/errors"
	"quill/internal/platform/logging"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

type memoryTemplates struct {
	user []domain.Template
}

func (m *memoryTemplates) List(context.Context) ([]domain.Template, error) {
	return append([]domain.Template(nil), m.user...), nil
}

func (m *memoryTemplates) Update(_ context.Context, fn func([]domain.Template) ([]domain.Template, error)) error {
	next, err := fn(append([]domain.Template(nil), m.user...))
	if err != nil {
		return err
	}
	m.user = next
	return nil
}

type dirFiles struct {
	root string
}

func (d dirFiles) Exists(_ context.Context, rel string) (bool, error) {
	_, err := os.Stat(filepath.Join(d.root, filepath.FromSlash(rel)))
	return err == nil, nil
}

func (d dirFiles) Create(_ context.Context, rel, content string) (string, error) {
	full := filepath.Join(d.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	return full, os.WriteFile(full, []byte(content), 0o644)
}

type stubPrompts struct {
	prompt string
	err    error
}

func (s stubPrompts) Random(context.Context) (string, error) { return s.prompt, s.err }

type recordingStarter struct {
	started []string
	err     error
}

func (r *recordingStarter) Start(_ context.Context, rel string) error {
	if r.err != nil {
		return r.err
	}
	r.started = append(r.started, rel)
	return nil
}

type staticSettings struct{}

func (staticSettings) NoteSettings(context.Context) (string, string, error) {
	return "Writing", "Notebook", nil
}

func newTemplates(t *testing.T, prompts stubPrompts, starter *recordingStarter) (*TemplateService, string) {
	t.Helper()
	vault := t.TempDir()
	now := time.Date(2026, 10, 16, 21, 5, 0, 0, time.UTC)
	svc := NewTemplateService(fixedClock(now), &memoryTemplates{}, dirFiles{root: vault}, prompts, starter, staticSettings{}, logging.Discard())
	return svc, vault
}

func TestCreateNoteRendersAndStartsSession(t *testing.T) {
	t.Parallel()
	starter := &recordingStarter{}
	svc, vault := newTemplates(t, stubPrompts{prompt: "Describe a door you never opened."}, starter)

	note, err := svc.CreateNote(context.Background(), "prompt-writing", nil, true)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if note.RelPath != "Writing/Prompt 2026-10-16 21-05.md" {
		t.Fatalf("unexpected path %q", note.RelPath)
	}
	raw, err := os.ReadFile(filepath.Join(vault, filepath.FromSlash(note.RelPath)))
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	body := string(raw)
	if !strings.Contains(body, "# Prompt 2026-10-16 21:05") || !strings.Contains(body, "> Describe a door you never opened.") {
		t.Fatalf("unexpected body:\n%s", body)
	}
	if !note.Started || len(starter.started) != 1 || starter.started[0] != note.RelPath {
		t.Fatalf("expected session on new note, got %+v %v", note, starter.started)
	}
}

func TestCreateNoteResolvesCollisionsWithSuffix(t *testing.T) {
	t.Parallel()
	svc, _ := newTemplates(t, stubPrompts{}, &recordingStarter{})
	var paths []string
	for i := 0; i < 3; i++ {
		note, err := svc.CreateNote(context.Background(), "daily-journal", nil, false)
		if err != nil {
			t.Fatalf("create note %d: %v", i, err)
		}
		paths = append(paths, note.RelPath)
	}
	want := []string{"Writing/Journal 2026-10-16.md", "Writing/Journal 2026-10-16 1.md", "Writing/Journal 2026-10-16 2.md"}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("note %d: expected %q, got %q", i, want[i], paths[i])
		}
	}
}

func TestCreateNoteKeepsNoteWhenSessionFails(t *testing.T) {
	t.Parallel()
	starter := &recordingStarter{err: apperrors.ErrActiveSessionExists}
	svc, vault := newTemplates(t, stubPrompts{err: errors.New("offline")}, starter)
	note, err := svc.CreateNote(context.Background(), "quick-note", map[string]string{"mood": "calm"}, true)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if note.Started || !errors.Is(note.SessionErr, apperrors.ErrActiveSessionExists) {
		t.Fatalf("expected reported session failure, got %+v", note)
	}
	if _, err := os.Stat(filepath.Join(vault, filepath.FromSlash(note.RelPath))); err != nil {
		t.Fatalf("note must be kept: %v", err)
	}
}

func TestUserTemplatesAndBuiltinImmutability(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTemplates(t, stubPrompts{}, &recordingStarter{})

	if _, err := svc.Add(ctx, domain.Template{ID: "quick-note", Name: "Mine", TitlePattern: "x"}); !errors.Is(err, apperrors.ErrImmutableTemplate) {
		t.Fatalf("expected immutable template error, got %v", err)
	}
	if err := svc.Remove(ctx, "daily-journal"); !errors.Is(err, apperrors.ErrImmutableTemplate) {
		t.Fatalf("expected immutable template error on remove, got %v", err)
	}
	if _, err := svc.Add(ctx, domain.Template{Name: "Broken", TitlePattern: "{{date"}); !errors.Is(err, apperrors.ErrInvalidTemplate) {
		t.Fatalf("expected invalid template, got %v", err)
	}

	added, err := svc.Add(ctx, domain.Template{Name: "Scene Sketch", TitlePattern: "Scene {{date}}", Body: "{{mood}}"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID != "scene-sketch" || added.BuiltIn {
		t.Fatalf("unexpected template %+v", added)
	}
	all, err := svc.List(ctx)
	if err != nil || len(all) != len(domain.Builtins())+1 {
		t.Fatalf("expected builtins plus one, got %d %v", len(all), err)
	}
	note, err := svc.CreateNote(ctx, "scene-sketch", map[string]string{"mood": "stormy"}, false)
	if err != nil || note.Title != "Scene 2026-10-16" {
		t.Fatalf("create from user template: %+v %v", note, err)
	}
	if err := svc.Remove(ctx, "scene-sketch"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := svc.Get(ctx, "scene-sketch"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found after remove, got %v", err)
	}
}

func TestCreateNoteTitlePatternUsesTemplateNameForTitle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, vault := newTemplates(t, stubPrompts{}, &recordingStarter{})
	if _, err := svc.Add(ctx, domain.Template{ID: "sprint-log", Name: "Sprint log", TitlePattern: "{{title}} {{date}}", Body: "# {{title}}\n"}); err != nil {
		t.Fatalf("add template: %v", err)
	}
	note, err := svc.CreateNote(ctx, "sprint-log", nil, false)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if note.Title != "Sprint log 2026-10-16" || note.RelPath != "Writing/Sprint log 2026-10-16.md" {
		t.Fatalf("title placeholder left unrendered: %+v", note)
	}
	raw, err := os.ReadFile(filepath.Join(vault, filepath.FromSlash(note.RelPath)))
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	if string(raw) != "# Sprint log 2026-10-16\n" {
		t.Fatalf("unexpected body %q", raw)
	}
}
