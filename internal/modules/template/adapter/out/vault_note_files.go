package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	templateout "quill/internal/modules/template/port/out"
)

type VaultNoteFiles struct {
	vaultPath string
}

func NewVaultNoteFiles(vaultPath string) templateout.NoteFiles {
	return &VaultNoteFiles{vaultPath: vaultPath}
}

func (f *VaultNoteFiles) full(relPath string) string {
	return filepath.Join(f.vaultPath, filepath.FromSlash(relPath))
}

func (f *VaultNoteFiles) Exists(_ context.Context, relPath string) (bool, error) {
	_, err := os.Stat(f.full(relPath))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat note: %w", err)
}

func (f *VaultNoteFiles) Create(_ context.Context, relPath, content string) (string, error) {
	full := f.full(relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create notes folder: %w", err)
	}
	file, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create note: %w", err)
	}
	if _, err := file.WriteString(content); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("write note: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close note: %w", err)
	}
	return full, nil
}
