package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewRequiresVaultPath(t *testing.T) {
	t.Parallel()
	if _, err := New(""); err == nil {
		t.Fatalf("expected error for empty vault path")
	}
	cfg, err := New("/tmp/vault")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.DataPath != filepath.Join("/tmp/vault", ".quill", "data.json") {
		t.Fatalf("unexpected data path: %s", cfg.DataPath)
	}
	if cfg.PollInterval != 2*time.Second || cfg.NudgeInterval != 30*time.Minute {
		t.Fatalf("unexpected default intervals: %s %s", cfg.PollInterval, cfg.NudgeInterval)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	dir := filepath.Join(vault, DataDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := "poll_interval: 30s\nnudge_interval: 45m\ntimezone: UTC\nnotes_folder: /Drafts/\nsession_notes: false\nlog_level: DEBUG\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(vault)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Fatalf("expected poll interval clamped to 5s, got %s", cfg.PollInterval)
	}
	if cfg.NudgeInterval != 45*time.Minute {
		t.Fatalf("expected nudge interval 45m, got %s", cfg.NudgeInterval)
	}
	if cfg.Location != time.UTC {
		t.Fatalf("expected UTC location, got %v", cfg.Location)
	}
	if cfg.NotesFolder != "Drafts" || cfg.SessionNotes {
		t.Fatalf("unexpected notes settings: %q %t", cfg.NotesFolder, cfg.SessionNotes)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected lowercased log level, got %s", cfg.LogLevel)
	}
}

func TestLoadWithoutConfigFileUsesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.NotesFolder != "Writing" || !cfg.SessionNotes {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadRejectsShortNudgeInterval(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	dir := filepath.Join(vault, DataDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("nudge_interval: 10s\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(vault); err == nil {
		t.Fatalf("expected error for nudge interval below one minute")
	}
}
