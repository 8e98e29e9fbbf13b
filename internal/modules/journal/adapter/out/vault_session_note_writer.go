package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quill/internal/modules/journal/domain"
	journalout "quill/internal/modules/journal/port/out"
	"quill/internal/platform/markdown"
	"quill/internal/platform/slug"
)

// VaultSessionNoteWriter writes a frontmatter note per completed session
// under <vault>/<folder>/sessions/YYYY/MM/DD.
type VaultSessionNoteWriter struct {
	vaultPath string
	folder    string
}

func NewVaultSessionNoteWriter(vaultPath, folder string) journalout.SessionNoteWriter {
	return &VaultSessionNoteWriter{vaultPath: vaultPath, folder: folder}
}

func (w *VaultSessionNoteWriter) Write(_ context.Context, session domain.Session) (string, error) {
	started := session.StartedAt
	dir := filepath.Join(w.vaultPath, filepath.FromSlash(w.folder), "sessions", started.Format("2006"), started.Format("01"), started.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}
	label := "session"
	if len(session.Files) > 0 {
		label = strings.TrimSuffix(filepath.Base(session.Files[0]), filepath.Ext(session.Files[0]))
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.md", started.Format("150405"), slug.Make(label)))

	meta := map[string]any{
		"schema_version": domain.SchemaVersion,
		"id":             session.ID,
		"date":           session.Date.String(),
		"started_at":     started.Format(timeLayout),
		"count":          session.Count,
		"unit":           string(session.CountUnit),
		"active_minutes": session.ActiveMinutes,
		"status":         string(session.Status),
	}
	if session.EndedAt != nil {
		meta["ended_at"] = session.EndedAt.Format(timeLayout)
	}
	if session.HasTarget() {
		meta["target"] = fmt.Sprintf("%d %s", session.TargetValue, session.TargetUnit)
		meta["met_target"] = session.MetTarget()
	}

	var body strings.Builder
	fmt.Fprintf(&body, "# Writing session %s\n\n", session.Date)
	fmt.Fprintf(&body, "- Written: %d %s\n", session.Count, session.CountUnit)
	fmt.Fprintf(&body, "- Active: %d minutes\n", session.ActiveMinutes)
	if len(session.Files) > 0 {
		body.WriteString("\n## Files\n\n")
		for _, file := range session.Files {
			name := strings.TrimSuffix(filepath.ToSlash(file), ".md")
			fmt.Fprintf(&body, "- [[%s]]\n", name)
		}
	}
	rendered, err := markdown.RenderFrontmatter(meta, body.String())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	return path, nil
}
