package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quill/internal/modules/planner/domain"
	plannerout "quill/internal/modules/planner/port/out"
	"quill/internal/platform/markdown"
)

// VaultReviewWriter keeps one review note per week. Only the managed block is
// regenerated; anything the writer added around it is kept.
type VaultReviewWriter struct {
	vaultPath string
	folder    func(ctx context.Context) (string, error)
}

func NewVaultReviewWriter(vaultPath string, folder func(ctx context.Context) (string, error)) plannerout.ReviewWriter {
	return &VaultReviewWriter{vaultPath: vaultPath, folder: folder}
}

func (w *VaultReviewWriter) Write(ctx context.Context, summary domain.Summary) (string, error) {
	folder, err := w.folder(ctx)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(w.vaultPath, filepath.FromSlash(folder), "reviews")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create review dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("Week of %s.md", summary.WeekStart))

	meta := map[string]any{
		"week_start": summary.WeekStart.String(),
		"sessions":   summary.Sessions,
		"goal":       summary.Goal,
		"goal_met":   summary.Met,
	}
	body := ""
	if existing, err := os.ReadFile(path); err == nil {
		existingMeta, existingBody, splitErr := markdown.SplitFrontmatter(string(existing))
		if splitErr == nil {
			body = existingBody
			for k, v := range existingMeta {
				if _, managed := meta[k]; !managed {
					meta[k] = v
				}
			}
		}
	}
	if strings.TrimSpace(body) == "" {
		body = "# Weekly review\n\n## What went well\n\n## What to change\n"
	}
	body = markdown.ReplaceManagedBlock(body, domain.ReviewStart, domain.ReviewEnd, summary.Markdown())

	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write review note: %w", err)
	}
	return path, nil
}
