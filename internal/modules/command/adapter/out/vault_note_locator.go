package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	commandout "quill/internal/modules/command/port/out"
)

// VaultNoteLocator looks for notes under <vault>/<folder>. The folder is read
// on every call so settings changes apply without a restart.
type VaultNoteLocator struct {
	vaultPath string
	folder    func(ctx context.Context) (string, error)
}

func NewVaultNoteLocator(vaultPath string, folder func(ctx context.Context) (string, error)) commandout.NoteLocator {
	return &VaultNoteLocator{vaultPath: vaultPath, folder: folder}
}

// Latest returns the most recently modified Markdown note, vault-relative.
// Hidden directories and generated session and review notes are skipped.
func (l *VaultNoteLocator) Latest(ctx context.Context) (string, bool, error) {
	folder, err := l.folder(ctx)
	if err != nil {
		return "", false, err
	}
	root := filepath.Join(l.vaultPath, filepath.FromSlash(folder))
	var (
		best     string
		bestTime time.Time
	)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "sessions" || name == "reviews") {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if best == "" || info.ModTime().After(bestTime) {
			best, bestTime = path, info.ModTime()
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("scan notes folder: %w", err)
	}
	if best == "" {
		return "", false, nil
	}
	rel, err := filepath.Rel(l.vaultPath, best)
	if err != nil {
		return "", false, err
	}
	return filepath.ToSlash(rel), true, nil
}

func (l *VaultNoteLocator) Append(_ context.Context, relPath, text string) error {
	full := relPath
	if !filepath.IsAbs(full) {
		full = filepath.Join(l.vaultPath, filepath.FromSlash(relPath))
	}
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("open note: %w", err)
	}
	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return fmt.Errorf("append to note: %w", err)
	}
	return f.Close()
}
