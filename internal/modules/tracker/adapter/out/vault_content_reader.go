package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	trackerout "quill/internal/modules/tracker/port/out"
)

// VaultContentReader reads tracked notes. Relative paths resolve against the
// vault root.
type VaultContentReader struct {
	vaultPath string
}

func NewVaultContentReader(vaultPath string) trackerout.ContentReader {
	return &VaultContentReader{vaultPath: vaultPath}
}

func (r *VaultContentReader) Read(_ context.Context, path string) (string, error) {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(r.vaultPath, filepath.FromSlash(path))
	}
	b, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("read note: %w", err)
	}
	return string(b), nil
}
